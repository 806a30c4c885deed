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

// ── 正式认定模块业务错误 ──

var ErrFormalRecognitionNotFound = errors.New("正式认定不存在")

// FormalRecognitionService 正式认定业务接口
type FormalRecognitionService interface {
	Create(ctx context.Context, req *dto.FormalRecognitionRequest) (*dto.FormalRecognitionResponse, error)
	GetByID(ctx context.Context, id string) (*dto.FormalRecognitionResponse, error)
	List(ctx context.Context, req *dto.ListRequest) ([]dto.FormalRecognitionResponse, int64, error)
	Update(ctx context.Context, id string, req *dto.FormalRecognitionRequest) (*dto.FormalRecognitionResponse, error)
	Delete(ctx context.Context, id string) error
}

type formalRecognitionService struct {
	repo    *repository.Repository
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewFormalRecognitionService 创建 FormalRecognitionService 实例
func NewFormalRecognitionService(repo *repository.Repository, m *metrics.Metrics, logger *zap.Logger) FormalRecognitionService {
	return &formalRecognitionService{repo: repo, metrics: m, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *formalRecognitionService) Create(ctx context.Context, req *dto.FormalRecognitionRequest) (*dto.FormalRecognitionResponse, error) {
	f := &model.FormalRecognition{}
	applyFormalRecognitionRequest(f, req)
	if err := validateEntity(f); err != nil {
		return nil, err
	}

	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := s.setResult(ctx, tx, f, req.ResultID); err != nil {
			return err
		}
		if err := tx.FormalRecognition.Create(ctx, f); err != nil {
			return err
		}
		return recordChange(ctx, tx, model.ObjectFormalRecognition, f.FormalRecognitionID, model.ActionCreate, f)
	})
	if err != nil {
		if !isBusinessError(err) {
			s.logger.Error("创建正式认定失败", zap.Error(err))
		}
		return nil, err
	}

	s.metrics.IncEntityWrite(model.ObjectFormalRecognition, model.ActionCreate)
	return toFormalRecognitionResponse(f), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *formalRecognitionService) GetByID(ctx context.Context, id string) (*dto.FormalRecognitionResponse, error) {
	f, err := s.repo.FormalRecognition.GetByID(ctx, id)
	if err != nil {
		err = notFound(err, ErrFormalRecognitionNotFound)
		if !isBusinessError(err) {
			s.logger.Error("查询正式认定失败", zap.String("id", id), zap.Error(err))
		}
		return nil, err
	}
	return toFormalRecognitionResponse(f), nil
}

// ────────────────────── List ──────────────────────

func (s *formalRecognitionService) List(ctx context.Context, req *dto.ListRequest) ([]dto.FormalRecognitionResponse, int64, error) {
	q, err := buildListQuery(req)
	if err != nil {
		return nil, 0, err
	}

	items, total, err := s.repo.FormalRecognition.List(ctx, q)
	if err != nil {
		s.logger.Error("列出正式认定失败", zap.Error(err))
		return nil, 0, err
	}
	return toResponses(items, toFormalRecognitionResponse), total, nil
}

// ────────────────────── Update ──────────────────────

func (s *formalRecognitionService) Update(ctx context.Context, id string, req *dto.FormalRecognitionRequest) (*dto.FormalRecognitionResponse, error) {
	var f *model.FormalRecognition
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		var err error
		if f, err = tx.FormalRecognition.GetByID(ctx, id); err != nil {
			return notFound(err, ErrFormalRecognitionNotFound)
		}

		applyFormalRecognitionRequest(f, req)
		if err := validateEntity(f); err != nil {
			return err
		}

		if err := s.setResult(ctx, tx, f, req.ResultID); err != nil {
			return err
		}
		if err := tx.FormalRecognition.Update(ctx, f); err != nil {
			return err
		}
		return recordChange(ctx, tx, model.ObjectFormalRecognition, f.FormalRecognitionID, model.ActionUpdate, f)
	})
	if err != nil {
		if !isBusinessError(err) {
			s.logger.Error("更新正式认定失败", zap.String("id", id), zap.Error(err))
		}
		return nil, err
	}

	s.metrics.IncEntityWrite(model.ObjectFormalRecognition, model.ActionUpdate)
	return toFormalRecognitionResponse(f), nil
}

// ────────────────────── Delete ──────────────────────

func (s *formalRecognitionService) Delete(ctx context.Context, id string) error {
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if _, err := tx.FormalRecognition.GetByID(ctx, id); err != nil {
			return notFound(err, ErrFormalRecognitionNotFound)
		}
		if err := tx.FormalRecognition.Delete(ctx, id); err != nil {
			return err
		}
		return recordChange(ctx, tx, model.ObjectFormalRecognition, id, model.ActionDelete, nil)
	})
	if err != nil {
		if !isBusinessError(err) {
			s.logger.Error("删除正式认定失败", zap.String("id", id), zap.Error(err))
		}
		return err
	}

	s.metrics.IncEntityWrite(model.ObjectFormalRecognition, model.ActionDelete)
	return nil
}

// ── 内部辅助方法 ──

func (s *formalRecognitionService) setResult(ctx context.Context, tx *repository.Repository, f *model.FormalRecognition, resultID *string) error {
	return resultParent(tx,
		func(r *model.Result) { r.AddFormalRecognition(f) },
		func(r *model.Result) { r.RemoveFormalRecognition(f) },
		func() { f.ResultID = nil },
	).apply(ctx, f.ResultID, resultID)
}

func applyFormalRecognitionRequest(f *model.FormalRecognition, req *dto.FormalRecognitionRequest) {
	f.Name = req.Name
	f.Description = req.Description
	f.Type = req.Type
	f.Issuer = req.Issuer
}
