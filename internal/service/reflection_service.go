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

// ── 学习反思模块业务错误 ──

var ErrReflectionNotFound = errors.New("学习反思不存在")

// ReflectionService 学习反思业务接口
type ReflectionService interface {
	Create(ctx context.Context, req *dto.ReflectionRequest) (*dto.ReflectionResponse, error)
	GetByID(ctx context.Context, id string) (*dto.ReflectionResponse, error)
	List(ctx context.Context, req *dto.ListRequest) ([]dto.ReflectionResponse, int64, error)
	Update(ctx context.Context, id string, req *dto.ReflectionRequest) (*dto.ReflectionResponse, error)
	Delete(ctx context.Context, id string) error
}

type reflectionService struct {
	repo    *repository.Repository
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewReflectionService 创建 ReflectionService 实例
func NewReflectionService(repo *repository.Repository, m *metrics.Metrics, logger *zap.Logger) ReflectionService {
	return &reflectionService{repo: repo, metrics: m, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *reflectionService) Create(ctx context.Context, req *dto.ReflectionRequest) (*dto.ReflectionResponse, error) {
	rf := &model.Reflection{}
	applyReflectionRequest(rf, req)
	if err := validateEntity(rf); err != nil {
		return nil, err
	}

	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := s.setResult(ctx, tx, rf, req.ResultID); err != nil {
			return err
		}
		if err := tx.Reflection.Create(ctx, rf); err != nil {
			return err
		}
		return recordChange(ctx, tx, model.ObjectReflection, rf.ReflectionID, model.ActionCreate, rf)
	})
	if err != nil {
		if !isBusinessError(err) {
			s.logger.Error("创建学习反思失败", zap.Error(err))
		}
		return nil, err
	}

	s.metrics.IncEntityWrite(model.ObjectReflection, model.ActionCreate)
	return toReflectionResponse(rf), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *reflectionService) GetByID(ctx context.Context, id string) (*dto.ReflectionResponse, error) {
	rf, err := s.repo.Reflection.GetByID(ctx, id)
	if err != nil {
		err = notFound(err, ErrReflectionNotFound)
		if !isBusinessError(err) {
			s.logger.Error("查询学习反思失败", zap.String("id", id), zap.Error(err))
		}
		return nil, err
	}
	return toReflectionResponse(rf), nil
}

// ────────────────────── List ──────────────────────

func (s *reflectionService) List(ctx context.Context, req *dto.ListRequest) ([]dto.ReflectionResponse, int64, error) {
	q, err := buildListQuery(req)
	if err != nil {
		return nil, 0, err
	}

	items, total, err := s.repo.Reflection.List(ctx, q)
	if err != nil {
		s.logger.Error("列出学习反思失败", zap.Error(err))
		return nil, 0, err
	}
	return toResponses(items, toReflectionResponse), total, nil
}

// ────────────────────── Update ──────────────────────

func (s *reflectionService) Update(ctx context.Context, id string, req *dto.ReflectionRequest) (*dto.ReflectionResponse, error) {
	var rf *model.Reflection
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		var err error
		if rf, err = tx.Reflection.GetByID(ctx, id); err != nil {
			return notFound(err, ErrReflectionNotFound)
		}

		applyReflectionRequest(rf, req)
		if err := validateEntity(rf); err != nil {
			return err
		}

		if err := s.setResult(ctx, tx, rf, req.ResultID); err != nil {
			return err
		}
		if err := tx.Reflection.Update(ctx, rf); err != nil {
			return err
		}
		return recordChange(ctx, tx, model.ObjectReflection, rf.ReflectionID, model.ActionUpdate, rf)
	})
	if err != nil {
		if !isBusinessError(err) {
			s.logger.Error("更新学习反思失败", zap.String("id", id), zap.Error(err))
		}
		return nil, err
	}

	s.metrics.IncEntityWrite(model.ObjectReflection, model.ActionUpdate)
	return toReflectionResponse(rf), nil
}

// ────────────────────── Delete ──────────────────────

func (s *reflectionService) Delete(ctx context.Context, id string) error {
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if _, err := tx.Reflection.GetByID(ctx, id); err != nil {
			return notFound(err, ErrReflectionNotFound)
		}
		if err := tx.Reflection.Delete(ctx, id); err != nil {
			return err
		}
		return recordChange(ctx, tx, model.ObjectReflection, id, model.ActionDelete, nil)
	})
	if err != nil {
		if !isBusinessError(err) {
			s.logger.Error("删除学习反思失败", zap.String("id", id), zap.Error(err))
		}
		return err
	}

	s.metrics.IncEntityWrite(model.ObjectReflection, model.ActionDelete)
	return nil
}

// ── 内部辅助方法 ──

func (s *reflectionService) setResult(ctx context.Context, tx *repository.Repository, rf *model.Reflection, resultID *string) error {
	return resultParent(tx,
		func(r *model.Result) { r.AddReflection(rf) },
		func(r *model.Result) { r.RemoveReflection(rf) },
		func() { rf.ResultID = nil },
	).apply(ctx, rf.ResultID, resultID)
}

func applyReflectionRequest(rf *model.Reflection, req *dto.ReflectionRequest) {
	rf.Name = req.Name
	rf.Description = req.Description
	rf.Status = req.Status
	rf.Author = req.Author
	rf.Rights = req.Rights
}
