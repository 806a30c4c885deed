package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"learner-results/backend/internal/dto"
	"learner-results/backend/internal/model"
	"learner-results/backend/internal/repository"
	"learner-results/backend/pkg/metrics"
)

// ── 学习活动模块业务错误 ──

var ErrActivityNotFound = errors.New("学习活动不存在")

// ActivityService 学习活动业务接口
type ActivityService interface {
	Create(ctx context.Context, req *dto.ActivityRequest) (*dto.ActivityResponse, error)
	GetByID(ctx context.Context, id string) (*dto.ActivityResponse, error)
	List(ctx context.Context, req *dto.ListRequest) ([]dto.ActivityResponse, int64, error)
	// Update 全量更新；result_id 缺省表示解除与成果的关联
	Update(ctx context.Context, id string, req *dto.ActivityRequest) (*dto.ActivityResponse, error)
	Delete(ctx context.Context, id string) error
	LinkProduct(ctx context.Context, id, productID string) (*dto.ActivityResponse, error)
	UnlinkProduct(ctx context.Context, id, productID string) (*dto.ActivityResponse, error)
}

type activityService struct {
	repo    *repository.Repository
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewActivityService 创建 ActivityService 实例
func NewActivityService(repo *repository.Repository, m *metrics.Metrics, logger *zap.Logger) ActivityService {
	return &activityService{repo: repo, metrics: m, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *activityService) Create(ctx context.Context, req *dto.ActivityRequest) (*dto.ActivityResponse, error) {
	act := &model.Activity{}
	applyActivityRequest(act, req)
	if err := validateEntity(act); err != nil {
		return nil, err
	}

	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := s.setResult(ctx, tx, act, req.ResultID); err != nil {
			return err
		}
		if err := tx.Activity.Create(ctx, act); err != nil {
			return err
		}
		return recordChange(ctx, tx, model.ObjectActivity, act.ActivityID, model.ActionCreate, act)
	})
	if err != nil {
		if !isBusinessError(err) {
			s.logger.Error("创建学习活动失败", zap.Error(err))
		}
		return nil, err
	}

	s.metrics.IncEntityWrite(model.ObjectActivity, model.ActionCreate)
	return toActivityResponse(act), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *activityService) GetByID(ctx context.Context, id string) (*dto.ActivityResponse, error) {
	act, err := s.repo.Activity.GetGraph(ctx, id)
	if err != nil {
		err = notFound(err, ErrActivityNotFound)
		if !isBusinessError(err) {
			s.logger.Error("查询学习活动失败", zap.String("id", id), zap.Error(err))
		}
		return nil, err
	}
	return toActivityResponse(act), nil
}

// ────────────────────── List ──────────────────────

func (s *activityService) List(ctx context.Context, req *dto.ListRequest) ([]dto.ActivityResponse, int64, error) {
	q, err := buildListQuery(req)
	if err != nil {
		return nil, 0, err
	}

	items, total, err := s.repo.Activity.List(ctx, q)
	if err != nil {
		s.logger.Error("列出学习活动失败", zap.Error(err))
		return nil, 0, err
	}
	return toResponses(items, toActivityResponse), total, nil
}

// ────────────────────── Update ──────────────────────

func (s *activityService) Update(ctx context.Context, id string, req *dto.ActivityRequest) (*dto.ActivityResponse, error) {
	var act *model.Activity
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		var err error
		if act, err = tx.Activity.GetGraph(ctx, id); err != nil {
			return notFound(err, ErrActivityNotFound)
		}

		applyActivityRequest(act, req)
		if err := validateEntity(act); err != nil {
			return err
		}

		if err := s.setResult(ctx, tx, act, req.ResultID); err != nil {
			return err
		}
		if err := tx.Activity.Update(ctx, act); err != nil {
			return err
		}
		return recordChange(ctx, tx, model.ObjectActivity, act.ActivityID, model.ActionUpdate, act)
	})
	if err != nil {
		if !isBusinessError(err) {
			s.logger.Error("更新学习活动失败", zap.String("id", id), zap.Error(err))
		}
		return nil, err
	}

	s.metrics.IncEntityWrite(model.ObjectActivity, model.ActionUpdate)
	return toActivityResponse(act), nil
}

// ────────────────────── Delete ──────────────────────

func (s *activityService) Delete(ctx context.Context, id string) error {
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		act, err := tx.Activity.GetGraph(ctx, id)
		if err != nil {
			return notFound(err, ErrActivityNotFound)
		}

		if err := detachAll(ctx, tx, model.ObjectProduct, act.Products, act.RemoveProduct, tx.Product.Update); err != nil {
			return err
		}
		if err := tx.Activity.Delete(ctx, id); err != nil {
			return err
		}
		return recordChange(ctx, tx, model.ObjectActivity, id, model.ActionDelete, nil)
	})
	if err != nil {
		if !isBusinessError(err) {
			s.logger.Error("删除学习活动失败", zap.String("id", id), zap.Error(err))
		}
		return err
	}

	s.metrics.IncEntityWrite(model.ObjectActivity, model.ActionDelete)
	return nil
}

// ────────────────────── Link / Unlink Product ──────────────────────

func (s *activityService) LinkProduct(ctx context.Context, id, productID string) (*dto.ActivityResponse, error) {
	return s.relateProduct(ctx, id, productID, true)
}

func (s *activityService) UnlinkProduct(ctx context.Context, id, productID string) (*dto.ActivityResponse, error) {
	return s.relateProduct(ctx, id, productID, false)
}

func (s *activityService) relateProduct(ctx context.Context, id, productID string, link bool) (*dto.ActivityResponse, error) {
	var (
		act     *model.Activity
		changed bool
	)
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		var err error
		if act, err = tx.Activity.GetGraph(ctx, id); err != nil {
			return notFound(err, ErrActivityNotFound)
		}

		changed, err = childOps[*model.Product]{
			objectType: model.ObjectProduct,
			load:       tx.Product.GetByID,
			save:       tx.Product.Update,
			notFound:   ErrProductNotFound,
			has:        act.HasProduct,
			add:        act.AddProduct,
			remove:     act.RemoveProduct,
		}.toggle(ctx, tx, productID, link)
		return err
	})
	if err != nil {
		if !isBusinessError(err) {
			s.logger.Error("修改活动产出关联失败",
				zap.String("id", id),
				zap.String("product_id", productID),
				zap.Error(err),
			)
		}
		return nil, err
	}

	if changed {
		s.metrics.IncRelationChange("activity_products", operation(link))
	}
	return toActivityResponse(act), nil
}

// ── 内部辅助方法 ──

func (s *activityService) setResult(ctx context.Context, tx *repository.Repository, act *model.Activity, resultID *string) error {
	return resultParent(tx,
		func(r *model.Result) { r.AddActivity(act) },
		func(r *model.Result) { r.RemoveActivity(act) },
		func() { act.ResultID = nil },
	).apply(ctx, act.ResultID, resultID)
}

func applyActivityRequest(act *model.Activity, req *dto.ActivityRequest) {
	act.Name = req.Name
	act.Description = req.Description
	act.Type = req.Type
	act.StartDate = req.StartDate
	act.EndDate = req.EndDate
	act.GradeType = req.GradeType
	act.Evaluation = req.Evaluation
	act.Reference = req.Reference
}
