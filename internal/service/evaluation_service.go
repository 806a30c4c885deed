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

// ── 成果评价模块业务错误 ──

var ErrEvaluationNotFound = errors.New("成果评价不存在")

// EvaluationService 成果评价业务接口
type EvaluationService interface {
	Create(ctx context.Context, req *dto.EvaluationRequest) (*dto.EvaluationResponse, error)
	GetByID(ctx context.Context, id string) (*dto.EvaluationResponse, error)
	List(ctx context.Context, req *dto.ListRequest) ([]dto.EvaluationResponse, int64, error)
	Update(ctx context.Context, id string, req *dto.EvaluationRequest) (*dto.EvaluationResponse, error)
	Delete(ctx context.Context, id string) error
}

type evaluationService struct {
	repo    *repository.Repository
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewEvaluationService 创建 EvaluationService 实例
func NewEvaluationService(repo *repository.Repository, m *metrics.Metrics, logger *zap.Logger) EvaluationService {
	return &evaluationService{repo: repo, metrics: m, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *evaluationService) Create(ctx context.Context, req *dto.EvaluationRequest) (*dto.EvaluationResponse, error) {
	e := &model.Evaluation{}
	applyEvaluationRequest(e, req)
	if err := validateEntity(e); err != nil {
		return nil, err
	}

	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := s.setResult(ctx, tx, e, req.ResultID); err != nil {
			return err
		}
		if err := tx.Evaluation.Create(ctx, e); err != nil {
			return err
		}
		return recordChange(ctx, tx, model.ObjectEvaluation, e.EvaluationID, model.ActionCreate, e)
	})
	if err != nil {
		if !isBusinessError(err) {
			s.logger.Error("创建成果评价失败", zap.Error(err))
		}
		return nil, err
	}

	s.metrics.IncEntityWrite(model.ObjectEvaluation, model.ActionCreate)
	return toEvaluationResponse(e), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *evaluationService) GetByID(ctx context.Context, id string) (*dto.EvaluationResponse, error) {
	e, err := s.repo.Evaluation.GetByID(ctx, id)
	if err != nil {
		err = notFound(err, ErrEvaluationNotFound)
		if !isBusinessError(err) {
			s.logger.Error("查询成果评价失败", zap.String("id", id), zap.Error(err))
		}
		return nil, err
	}
	return toEvaluationResponse(e), nil
}

// ────────────────────── List ──────────────────────

func (s *evaluationService) List(ctx context.Context, req *dto.ListRequest) ([]dto.EvaluationResponse, int64, error) {
	q, err := buildListQuery(req)
	if err != nil {
		return nil, 0, err
	}

	items, total, err := s.repo.Evaluation.List(ctx, q)
	if err != nil {
		s.logger.Error("列出成果评价失败", zap.Error(err))
		return nil, 0, err
	}
	return toResponses(items, toEvaluationResponse), total, nil
}

// ────────────────────── Update ──────────────────────

func (s *evaluationService) Update(ctx context.Context, id string, req *dto.EvaluationRequest) (*dto.EvaluationResponse, error) {
	var e *model.Evaluation
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		var err error
		if e, err = tx.Evaluation.GetByID(ctx, id); err != nil {
			return notFound(err, ErrEvaluationNotFound)
		}

		applyEvaluationRequest(e, req)
		if err := validateEntity(e); err != nil {
			return err
		}

		if err := s.setResult(ctx, tx, e, req.ResultID); err != nil {
			return err
		}
		if err := tx.Evaluation.Update(ctx, e); err != nil {
			return err
		}
		return recordChange(ctx, tx, model.ObjectEvaluation, e.EvaluationID, model.ActionUpdate, e)
	})
	if err != nil {
		if !isBusinessError(err) {
			s.logger.Error("更新成果评价失败", zap.String("id", id), zap.Error(err))
		}
		return nil, err
	}

	s.metrics.IncEntityWrite(model.ObjectEvaluation, model.ActionUpdate)
	return toEvaluationResponse(e), nil
}

// ────────────────────── Delete ──────────────────────

func (s *evaluationService) Delete(ctx context.Context, id string) error {
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if _, err := tx.Evaluation.GetByID(ctx, id); err != nil {
			return notFound(err, ErrEvaluationNotFound)
		}
		if err := tx.Evaluation.Delete(ctx, id); err != nil {
			return err
		}
		return recordChange(ctx, tx, model.ObjectEvaluation, id, model.ActionDelete, nil)
	})
	if err != nil {
		if !isBusinessError(err) {
			s.logger.Error("删除成果评价失败", zap.String("id", id), zap.Error(err))
		}
		return err
	}

	s.metrics.IncEntityWrite(model.ObjectEvaluation, model.ActionDelete)
	return nil
}

// ── 内部辅助方法 ──

func (s *evaluationService) setResult(ctx context.Context, tx *repository.Repository, e *model.Evaluation, resultID *string) error {
	return resultParent(tx,
		func(r *model.Result) { r.AddEvaluation(e) },
		func(r *model.Result) { r.RemoveEvaluation(e) },
		func() { e.ResultID = nil },
	).apply(ctx, e.ResultID, resultID)
}

func applyEvaluationRequest(e *model.Evaluation, req *dto.EvaluationRequest) {
	e.Name = req.Name
	e.Description = req.Description
	e.Grade = req.Grade
	e.Evaluator = req.Evaluator
}
