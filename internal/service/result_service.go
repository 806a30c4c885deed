package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"learner-results/backend/internal/dto"
	"learner-results/backend/internal/model"
	"learner-results/backend/internal/repository"
	pkgerrors "learner-results/backend/pkg/errors"
	"learner-results/backend/pkg/metrics"
)

// ── 成果模块业务错误 ──

var ErrResultNotFound = errors.New("成果不存在")

// ResultRelation 成果一侧可单独建立 / 解除的关联
type ResultRelation string

const (
	RelationActivities         ResultRelation = "activities"
	RelationProducts           ResultRelation = "products"
	RelationReflections        ResultRelation = "reflections"
	RelationEvaluations        ResultRelation = "evaluations"
	RelationFormalRecognitions ResultRelation = "formal-recognitions"
	RelationPortfolios         ResultRelation = "portfolios"
)

// ResultService 成果业务接口
type ResultService interface {
	Create(ctx context.Context, req *dto.ResultRequest) (*dto.ResultResponse, error)
	GetByID(ctx context.Context, id string) (*dto.ResultResponse, error)
	List(ctx context.Context, req *dto.ListRequest) ([]dto.ResultResponse, int64, error)
	// Update 全量更新；portfolio_ids 缺省视为清空作品集关联
	Update(ctx context.Context, id string, req *dto.ResultRequest) (*dto.ResultResponse, error)
	// Delete 先解除全部子实体与作品集关联，再删除成果
	Delete(ctx context.Context, id string) error
	// Link 把子实体挂到成果下（已挂在其他成果下的子实体会被改挂）
	Link(ctx context.Context, id string, rel ResultRelation, childID string) (*dto.ResultResponse, error)
	// Unlink 解除子实体与成果的关联；本就不在集合中时不做任何修改
	Unlink(ctx context.Context, id string, rel ResultRelation, childID string) (*dto.ResultResponse, error)
}

type resultService struct {
	repo    *repository.Repository
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewResultService 创建 ResultService 实例
func NewResultService(repo *repository.Repository, m *metrics.Metrics, logger *zap.Logger) ResultService {
	return &resultService{repo: repo, metrics: m, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *resultService) Create(ctx context.Context, req *dto.ResultRequest) (*dto.ResultResponse, error) {
	res := &model.Result{
		Name:        req.Name,
		Description: req.Description,
	}
	if err := validateEntity(res); err != nil {
		return nil, err
	}

	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := tx.Result.Create(ctx, res); err != nil {
			return err
		}
		if err := syncResultPortfolios(ctx, tx, res, req.PortfolioIDs); err != nil {
			return err
		}
		return recordChange(ctx, tx, model.ObjectResult, res.ResultID, model.ActionCreate, res)
	})
	if err != nil {
		if !isBusinessError(err) {
			s.logger.Error("创建成果失败", zap.Error(err))
		}
		return nil, err
	}

	s.metrics.IncEntityWrite(model.ObjectResult, model.ActionCreate)
	return toResultResponse(res), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *resultService) GetByID(ctx context.Context, id string) (*dto.ResultResponse, error) {
	res, err := s.repo.Result.GetGraph(ctx, id)
	if err != nil {
		err = notFound(err, ErrResultNotFound)
		if !isBusinessError(err) {
			s.logger.Error("查询成果失败", zap.String("id", id), zap.Error(err))
		}
		return nil, err
	}
	return toResultResponse(res), nil
}

// ────────────────────── List ──────────────────────

func (s *resultService) List(ctx context.Context, req *dto.ListRequest) ([]dto.ResultResponse, int64, error) {
	q, err := buildListQuery(req)
	if err != nil {
		return nil, 0, err
	}

	items, total, err := s.repo.Result.List(ctx, q)
	if err != nil {
		s.logger.Error("列出成果失败", zap.Error(err))
		return nil, 0, err
	}
	return toResponses(items, toResultResponse), total, nil
}

// ────────────────────── Update ──────────────────────

func (s *resultService) Update(ctx context.Context, id string, req *dto.ResultRequest) (*dto.ResultResponse, error) {
	var res *model.Result
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		var err error
		if res, err = tx.Result.GetGraph(ctx, id); err != nil {
			return notFound(err, ErrResultNotFound)
		}

		res.Name = req.Name
		res.Description = req.Description
		if err := validateEntity(res); err != nil {
			return err
		}

		if err := tx.Result.Update(ctx, res); err != nil {
			return err
		}
		if err := syncResultPortfolios(ctx, tx, res, req.PortfolioIDs); err != nil {
			return err
		}
		return recordChange(ctx, tx, model.ObjectResult, res.ResultID, model.ActionUpdate, res)
	})
	if err != nil {
		if !isBusinessError(err) {
			s.logger.Error("更新成果失败", zap.String("id", id), zap.Error(err))
		}
		return nil, err
	}

	s.metrics.IncEntityWrite(model.ObjectResult, model.ActionUpdate)
	return toResultResponse(res), nil
}

// ────────────────────── Delete ──────────────────────

func (s *resultService) Delete(ctx context.Context, id string) error {
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		res, err := tx.Result.GetGraph(ctx, id)
		if err != nil {
			return notFound(err, ErrResultNotFound)
		}

		if err := detachAll(ctx, tx, model.ObjectActivity, res.Activities, res.RemoveActivity, tx.Activity.Update); err != nil {
			return err
		}
		if err := detachAll(ctx, tx, model.ObjectProduct, res.Products, res.RemoveProduct, tx.Product.Update); err != nil {
			return err
		}
		if err := detachAll(ctx, tx, model.ObjectReflection, res.Reflections, res.RemoveReflection, tx.Reflection.Update); err != nil {
			return err
		}
		if err := detachAll(ctx, tx, model.ObjectEvaluation, res.Evaluations, res.RemoveEvaluation, tx.Evaluation.Update); err != nil {
			return err
		}
		if err := detachAll(ctx, tx, model.ObjectFormalRecognition, res.FormalRecognitions, res.RemoveFormalRecognition, tx.FormalRecognition.Update); err != nil {
			return err
		}
		if err := syncResultPortfolios(ctx, tx, res, nil); err != nil {
			return err
		}

		if err := tx.Result.Delete(ctx, id); err != nil {
			return err
		}
		return recordChange(ctx, tx, model.ObjectResult, id, model.ActionDelete, nil)
	})
	if err != nil {
		if !isBusinessError(err) {
			s.logger.Error("删除成果失败", zap.String("id", id), zap.Error(err))
		}
		return err
	}

	s.metrics.IncEntityWrite(model.ObjectResult, model.ActionDelete)
	return nil
}

// ────────────────────── Link / Unlink ──────────────────────

func (s *resultService) Link(ctx context.Context, id string, rel ResultRelation, childID string) (*dto.ResultResponse, error) {
	return s.relate(ctx, id, rel, childID, true)
}

func (s *resultService) Unlink(ctx context.Context, id string, rel ResultRelation, childID string) (*dto.ResultResponse, error) {
	return s.relate(ctx, id, rel, childID, false)
}

func (s *resultService) relate(ctx context.Context, id string, rel ResultRelation, childID string, link bool) (*dto.ResultResponse, error) {
	var (
		res     *model.Result
		changed bool
	)
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		var err error
		if res, err = tx.Result.GetGraph(ctx, id); err != nil {
			return notFound(err, ErrResultNotFound)
		}

		switch rel {
		case RelationActivities:
			changed, err = childOps[*model.Activity]{
				objectType: model.ObjectActivity,
				load:       tx.Activity.GetByID,
				save:       tx.Activity.Update,
				notFound:   ErrActivityNotFound,
				has:        res.HasActivity,
				add:        res.AddActivity,
				remove:     res.RemoveActivity,
			}.toggle(ctx, tx, childID, link)
		case RelationProducts:
			changed, err = childOps[*model.Product]{
				objectType: model.ObjectProduct,
				load:       tx.Product.GetByID,
				save:       tx.Product.Update,
				notFound:   ErrProductNotFound,
				has:        res.HasProduct,
				add:        res.AddProduct,
				remove:     res.RemoveProduct,
			}.toggle(ctx, tx, childID, link)
		case RelationReflections:
			changed, err = childOps[*model.Reflection]{
				objectType: model.ObjectReflection,
				load:       tx.Reflection.GetByID,
				save:       tx.Reflection.Update,
				notFound:   ErrReflectionNotFound,
				has:        res.HasReflection,
				add:        res.AddReflection,
				remove:     res.RemoveReflection,
			}.toggle(ctx, tx, childID, link)
		case RelationEvaluations:
			changed, err = childOps[*model.Evaluation]{
				objectType: model.ObjectEvaluation,
				load:       tx.Evaluation.GetByID,
				save:       tx.Evaluation.Update,
				notFound:   ErrEvaluationNotFound,
				has:        res.HasEvaluation,
				add:        res.AddEvaluation,
				remove:     res.RemoveEvaluation,
			}.toggle(ctx, tx, childID, link)
		case RelationFormalRecognitions:
			changed, err = childOps[*model.FormalRecognition]{
				objectType: model.ObjectFormalRecognition,
				load:       tx.FormalRecognition.GetByID,
				save:       tx.FormalRecognition.Update,
				notFound:   ErrFormalRecognitionNotFound,
				has:        res.HasFormalRecognition,
				add:        res.AddFormalRecognition,
				remove:     res.RemoveFormalRecognition,
			}.toggle(ctx, tx, childID, link)
		case RelationPortfolios:
			changed, err = s.togglePortfolio(ctx, tx, res, childID, link)
		default:
			return pkgerrors.ErrUnknownRelation
		}
		return err
	})
	if err != nil {
		if !isBusinessError(err) {
			s.logger.Error("修改成果关联失败",
				zap.String("id", id),
				zap.String("relation", string(rel)),
				zap.String("child_id", childID),
				zap.Error(err),
			)
		}
		return nil, err
	}

	if changed {
		s.metrics.IncRelationChange("result_"+string(rel), operation(link))
	}
	return toResultResponse(res), nil
}

// togglePortfolio 多对多关联：两侧集合由关系管理器同步，再以成果一侧落库
func (s *resultService) togglePortfolio(ctx context.Context, tx *repository.Repository, res *model.Result, portfolioID string, link bool) (bool, error) {
	p, err := tx.Portfolio.GetByID(ctx, portfolioID)
	if err != nil {
		return false, notFound(err, ErrPortfolioNotFound)
	}
	if res.HasPortfolio(p) == link {
		return false, nil
	}

	if link {
		res.AddPortfolio(p)
	} else {
		res.RemovePortfolio(p)
	}

	if err := tx.Result.SyncPortfolios(ctx, res); err != nil {
		return false, err
	}
	return true, recordChange(ctx, tx, model.ObjectResult, res.ResultID, model.ActionUpdate, res)
}

// syncResultPortfolios 让成果的作品集集合与 ids 一致并落库
func syncResultPortfolios(ctx context.Context, tx *repository.Repository, res *model.Result, ids []string) error {
	if len(ids) == 0 && len(res.Portfolios) == 0 {
		return nil
	}

	want, err := loadPortfolios(ctx, tx, ids)
	if err != nil {
		return err
	}

	for _, p := range append([]*model.Portfolio(nil), res.Portfolios...) {
		if _, ok := want[p.PortfolioID]; !ok {
			res.RemovePortfolio(p)
		}
	}
	for _, id := range ids {
		res.AddPortfolio(want[id])
	}

	return tx.Result.SyncPortfolios(ctx, res)
}

func loadPortfolios(ctx context.Context, tx *repository.Repository, ids []string) (map[string]*model.Portfolio, error) {
	items, err := tx.Portfolio.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*model.Portfolio, len(items))
	for i := range items {
		byID[items[i].PortfolioID] = &items[i]
	}
	for _, id := range ids {
		if _, ok := byID[id]; !ok {
			return nil, ErrPortfolioNotFound
		}
	}
	return byID, nil
}
