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

// ── 作品集模块业务错误 ──

var ErrPortfolioNotFound = errors.New("作品集不存在")

// PortfolioService 作品集业务接口
type PortfolioService interface {
	Create(ctx context.Context, req *dto.PortfolioRequest) (*dto.PortfolioResponse, error)
	GetByID(ctx context.Context, id string) (*dto.PortfolioResponse, error)
	List(ctx context.Context, req *dto.ListRequest) ([]dto.PortfolioResponse, int64, error)
	// Update 全量更新；result_ids 缺省视为清空成果关联
	Update(ctx context.Context, id string, req *dto.PortfolioRequest) (*dto.PortfolioResponse, error)
	Delete(ctx context.Context, id string) error
	LinkResult(ctx context.Context, id, resultID string) (*dto.PortfolioResponse, error)
	UnlinkResult(ctx context.Context, id, resultID string) (*dto.PortfolioResponse, error)
}

type portfolioService struct {
	repo    *repository.Repository
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewPortfolioService 创建 PortfolioService 实例
func NewPortfolioService(repo *repository.Repository, m *metrics.Metrics, logger *zap.Logger) PortfolioService {
	return &portfolioService{repo: repo, metrics: m, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *portfolioService) Create(ctx context.Context, req *dto.PortfolioRequest) (*dto.PortfolioResponse, error) {
	p := &model.Portfolio{
		Name:        req.Name,
		Description: req.Description,
	}
	if err := validateEntity(p); err != nil {
		return nil, err
	}

	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := tx.Portfolio.Create(ctx, p); err != nil {
			return err
		}
		if err := syncPortfolioResults(ctx, tx, p, req.ResultIDs); err != nil {
			return err
		}
		return recordChange(ctx, tx, model.ObjectPortfolio, p.PortfolioID, model.ActionCreate, p)
	})
	if err != nil {
		if !isBusinessError(err) {
			s.logger.Error("创建作品集失败", zap.Error(err))
		}
		return nil, err
	}

	s.metrics.IncEntityWrite(model.ObjectPortfolio, model.ActionCreate)
	return toPortfolioResponse(p), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *portfolioService) GetByID(ctx context.Context, id string) (*dto.PortfolioResponse, error) {
	p, err := s.repo.Portfolio.GetGraph(ctx, id)
	if err != nil {
		err = notFound(err, ErrPortfolioNotFound)
		if !isBusinessError(err) {
			s.logger.Error("查询作品集失败", zap.String("id", id), zap.Error(err))
		}
		return nil, err
	}
	return toPortfolioResponse(p), nil
}

// ────────────────────── List ──────────────────────

func (s *portfolioService) List(ctx context.Context, req *dto.ListRequest) ([]dto.PortfolioResponse, int64, error) {
	q, err := buildListQuery(req)
	if err != nil {
		return nil, 0, err
	}

	items, total, err := s.repo.Portfolio.List(ctx, q)
	if err != nil {
		s.logger.Error("列出作品集失败", zap.Error(err))
		return nil, 0, err
	}
	return toResponses(items, toPortfolioResponse), total, nil
}

// ────────────────────── Update ──────────────────────

func (s *portfolioService) Update(ctx context.Context, id string, req *dto.PortfolioRequest) (*dto.PortfolioResponse, error) {
	var p *model.Portfolio
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		var err error
		if p, err = tx.Portfolio.GetGraph(ctx, id); err != nil {
			return notFound(err, ErrPortfolioNotFound)
		}

		p.Name = req.Name
		p.Description = req.Description
		if err := validateEntity(p); err != nil {
			return err
		}

		if err := tx.Portfolio.Update(ctx, p); err != nil {
			return err
		}
		if err := syncPortfolioResults(ctx, tx, p, req.ResultIDs); err != nil {
			return err
		}
		return recordChange(ctx, tx, model.ObjectPortfolio, p.PortfolioID, model.ActionUpdate, p)
	})
	if err != nil {
		if !isBusinessError(err) {
			s.logger.Error("更新作品集失败", zap.String("id", id), zap.Error(err))
		}
		return nil, err
	}

	s.metrics.IncEntityWrite(model.ObjectPortfolio, model.ActionUpdate)
	return toPortfolioResponse(p), nil
}

// ────────────────────── Delete ──────────────────────

func (s *portfolioService) Delete(ctx context.Context, id string) error {
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		p, err := tx.Portfolio.GetGraph(ctx, id)
		if err != nil {
			return notFound(err, ErrPortfolioNotFound)
		}

		if err := syncPortfolioResults(ctx, tx, p, nil); err != nil {
			return err
		}
		if err := tx.Portfolio.Delete(ctx, id); err != nil {
			return err
		}
		return recordChange(ctx, tx, model.ObjectPortfolio, id, model.ActionDelete, nil)
	})
	if err != nil {
		if !isBusinessError(err) {
			s.logger.Error("删除作品集失败", zap.String("id", id), zap.Error(err))
		}
		return err
	}

	s.metrics.IncEntityWrite(model.ObjectPortfolio, model.ActionDelete)
	return nil
}

// ────────────────────── Link / Unlink Result ──────────────────────

func (s *portfolioService) LinkResult(ctx context.Context, id, resultID string) (*dto.PortfolioResponse, error) {
	return s.relateResult(ctx, id, resultID, true)
}

func (s *portfolioService) UnlinkResult(ctx context.Context, id, resultID string) (*dto.PortfolioResponse, error) {
	return s.relateResult(ctx, id, resultID, false)
}

func (s *portfolioService) relateResult(ctx context.Context, id, resultID string, link bool) (*dto.PortfolioResponse, error) {
	var (
		p       *model.Portfolio
		changed bool
	)
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		var err error
		if p, err = tx.Portfolio.GetGraph(ctx, id); err != nil {
			return notFound(err, ErrPortfolioNotFound)
		}
		res, err := tx.Result.GetByID(ctx, resultID)
		if err != nil {
			return notFound(err, ErrResultNotFound)
		}
		if p.HasResult(res) == link {
			return nil
		}

		if link {
			p.AddResult(res)
		} else {
			p.RemoveResult(res)
		}
		changed = true

		if err := tx.Portfolio.SyncResults(ctx, p); err != nil {
			return err
		}
		return recordChange(ctx, tx, model.ObjectPortfolio, p.PortfolioID, model.ActionUpdate, p)
	})
	if err != nil {
		if !isBusinessError(err) {
			s.logger.Error("修改作品集成果关联失败",
				zap.String("id", id),
				zap.String("result_id", resultID),
				zap.Error(err),
			)
		}
		return nil, err
	}

	if changed {
		s.metrics.IncRelationChange("portfolio_results", operation(link))
	}
	return toPortfolioResponse(p), nil
}

// syncPortfolioResults 让作品集的成果集合与 ids 一致并落库
func syncPortfolioResults(ctx context.Context, tx *repository.Repository, p *model.Portfolio, ids []string) error {
	if len(ids) == 0 && len(p.Results) == 0 {
		return nil
	}

	items, err := tx.Result.GetByIDs(ctx, ids)
	if err != nil {
		return err
	}
	want := make(map[string]*model.Result, len(items))
	for i := range items {
		want[items[i].ResultID] = &items[i]
	}
	for _, id := range ids {
		if _, ok := want[id]; !ok {
			return ErrResultNotFound
		}
	}

	for _, r := range append([]*model.Result(nil), p.Results...) {
		if _, ok := want[r.ResultID]; !ok {
			p.RemoveResult(r)
		}
	}
	for _, id := range ids {
		p.AddResult(want[id])
	}

	return tx.Portfolio.SyncResults(ctx, p)
}
