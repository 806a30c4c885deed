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

// ── 学习产出模块业务错误 ──

var ErrProductNotFound = errors.New("学习产出不存在")

// ProductService 学习产出业务接口
//
// Product 同时隶属于 Result 与 Activity，两条父关联互相独立：
// 修改其中一个不会影响另一个
type ProductService interface {
	Create(ctx context.Context, req *dto.ProductRequest) (*dto.ProductResponse, error)
	GetByID(ctx context.Context, id string) (*dto.ProductResponse, error)
	List(ctx context.Context, req *dto.ListRequest) ([]dto.ProductResponse, int64, error)
	Update(ctx context.Context, id string, req *dto.ProductRequest) (*dto.ProductResponse, error)
	Delete(ctx context.Context, id string) error
}

type productService struct {
	repo    *repository.Repository
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewProductService 创建 ProductService 实例
func NewProductService(repo *repository.Repository, m *metrics.Metrics, logger *zap.Logger) ProductService {
	return &productService{repo: repo, metrics: m, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *productService) Create(ctx context.Context, req *dto.ProductRequest) (*dto.ProductResponse, error) {
	p := &model.Product{
		Name:        req.Name,
		Description: req.Description,
		Type:        req.Type,
	}
	if err := validateEntity(p); err != nil {
		return nil, err
	}

	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := s.setParents(ctx, tx, p, req); err != nil {
			return err
		}
		if err := tx.Product.Create(ctx, p); err != nil {
			return err
		}
		return recordChange(ctx, tx, model.ObjectProduct, p.ProductID, model.ActionCreate, p)
	})
	if err != nil {
		if !isBusinessError(err) {
			s.logger.Error("创建学习产出失败", zap.Error(err))
		}
		return nil, err
	}

	s.metrics.IncEntityWrite(model.ObjectProduct, model.ActionCreate)
	return toProductResponse(p), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *productService) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	p, err := s.repo.Product.GetByID(ctx, id)
	if err != nil {
		err = notFound(err, ErrProductNotFound)
		if !isBusinessError(err) {
			s.logger.Error("查询学习产出失败", zap.String("id", id), zap.Error(err))
		}
		return nil, err
	}
	return toProductResponse(p), nil
}

// ────────────────────── List ──────────────────────

func (s *productService) List(ctx context.Context, req *dto.ListRequest) ([]dto.ProductResponse, int64, error) {
	q, err := buildListQuery(req)
	if err != nil {
		return nil, 0, err
	}

	items, total, err := s.repo.Product.List(ctx, q)
	if err != nil {
		s.logger.Error("列出学习产出失败", zap.Error(err))
		return nil, 0, err
	}
	return toResponses(items, toProductResponse), total, nil
}

// ────────────────────── Update ──────────────────────

func (s *productService) Update(ctx context.Context, id string, req *dto.ProductRequest) (*dto.ProductResponse, error) {
	var p *model.Product
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		var err error
		if p, err = tx.Product.GetByID(ctx, id); err != nil {
			return notFound(err, ErrProductNotFound)
		}

		p.Name = req.Name
		p.Description = req.Description
		p.Type = req.Type
		if err := validateEntity(p); err != nil {
			return err
		}

		if err := s.setParents(ctx, tx, p, req); err != nil {
			return err
		}
		if err := tx.Product.Update(ctx, p); err != nil {
			return err
		}
		return recordChange(ctx, tx, model.ObjectProduct, p.ProductID, model.ActionUpdate, p)
	})
	if err != nil {
		if !isBusinessError(err) {
			s.logger.Error("更新学习产出失败", zap.String("id", id), zap.Error(err))
		}
		return nil, err
	}

	s.metrics.IncEntityWrite(model.ObjectProduct, model.ActionUpdate)
	return toProductResponse(p), nil
}

// ────────────────────── Delete ──────────────────────

func (s *productService) Delete(ctx context.Context, id string) error {
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if _, err := tx.Product.GetByID(ctx, id); err != nil {
			return notFound(err, ErrProductNotFound)
		}
		if err := tx.Product.Delete(ctx, id); err != nil {
			return err
		}
		return recordChange(ctx, tx, model.ObjectProduct, id, model.ActionDelete, nil)
	})
	if err != nil {
		if !isBusinessError(err) {
			s.logger.Error("删除学习产出失败", zap.String("id", id), zap.Error(err))
		}
		return err
	}

	s.metrics.IncEntityWrite(model.ObjectProduct, model.ActionDelete)
	return nil
}

// ── 内部辅助方法 ──

func (s *productService) setParents(ctx context.Context, tx *repository.Repository, p *model.Product, req *dto.ProductRequest) error {
	err := resultParent(tx,
		func(r *model.Result) { r.AddProduct(p) },
		func(r *model.Result) { r.RemoveProduct(p) },
		func() { p.ResultID = nil },
	).apply(ctx, p.ResultID, req.ResultID)
	if err != nil {
		return err
	}

	return activityParent(tx,
		func(a *model.Activity) { a.AddProduct(p) },
		func(a *model.Activity) { a.RemoveProduct(p) },
		func() { p.ActivityID = nil },
	).apply(ctx, p.ActivityID, req.ActivityID)
}
