package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"learner-results/backend/internal/model"
	"learner-results/backend/internal/repository"
	pkgerrors "learner-results/backend/pkg/errors"
	"learner-results/backend/pkg/metrics"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Result            ResultService
	Activity          ActivityService
	Product           ProductService
	Reflection        ReflectionService
	Evaluation        EvaluationService
	FormalRecognition FormalRecognitionService
	Portfolio         PortfolioService
	ChangeLog         ChangeLogService
	Export            ExportService
}

// NewService 创建 Service 聚合；m 可为 nil（不采集业务指标）
func NewService(repo *repository.Repository, m *metrics.Metrics, logger *zap.Logger) *Service {
	return &Service{
		Result:            NewResultService(repo, m, logger),
		Activity:          NewActivityService(repo, m, logger),
		Product:           NewProductService(repo, m, logger),
		Reflection:        NewReflectionService(repo, m, logger),
		Evaluation:        NewEvaluationService(repo, m, logger),
		FormalRecognition: NewFormalRecognitionService(repo, m, logger),
		Portfolio:         NewPortfolioService(repo, m, logger),
		ChangeLog:         NewChangeLogService(repo, logger),
		Export:            NewExportService(repo, logger),
	}
}

// isBusinessError 业务错误直接返回给调用方，不记错误日志
func isBusinessError(err error) bool {
	for _, target := range []error{
		ErrValidation,
		ErrResultNotFound,
		ErrActivityNotFound,
		ErrProductNotFound,
		ErrReflectionNotFound,
		ErrEvaluationNotFound,
		ErrFormalRecognitionNotFound,
		ErrPortfolioNotFound,
		pkgerrors.ErrInvalidFilter,
		pkgerrors.ErrUnknownRelation,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// notFound 把 gorm.ErrRecordNotFound 换成模块自己的业务错误
func notFound(err, target error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return target
	}
	return err
}

func sameRef(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// ════════════════════════════════════════════════════════
// 子实体的父关联（result_id / activity_id）
// ════════════════════════════════════════════════════════
//
// 外键是唯一事实来源：
//   - 改挂到新父实体时，只需在新父实体上 attach（覆盖外键）
//   - 解除关联时，先加载旧父实体及其集合，再通过 detach 清空外键
//   - 旧父实体已不存在时直接 orphan

type parentLink[P any] struct {
	load     func(ctx context.Context, id string) (*P, error)
	attach   func(parent *P)
	detach   func(parent *P)
	orphan   func()
	notFound error
}

func (l parentLink[P]) apply(ctx context.Context, current, target *string) error {
	if sameRef(current, target) {
		return nil
	}

	if target != nil {
		parent, err := l.load(ctx, *target)
		if err != nil {
			return notFound(err, l.notFound)
		}
		l.attach(parent)
		return nil
	}

	parent, err := l.load(ctx, *current)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.orphan()
			return nil
		}
		return err
	}
	l.detach(parent)
	return nil
}

// resultParent 子实体 → Result 的父关联
func resultParent(tx *repository.Repository, attach, detach func(*model.Result), orphan func()) parentLink[model.Result] {
	return parentLink[model.Result]{
		load:     tx.Result.GetGraph,
		attach:   attach,
		detach:   detach,
		orphan:   orphan,
		notFound: ErrResultNotFound,
	}
}

// activityParent Product → Activity 的父关联
func activityParent(tx *repository.Repository, attach, detach func(*model.Activity), orphan func()) parentLink[model.Activity] {
	return parentLink[model.Activity]{
		load:     tx.Activity.GetGraph,
		attach:   attach,
		detach:   detach,
		orphan:   orphan,
		notFound: ErrActivityNotFound,
	}
}

// ════════════════════════════════════════════════════════
// 父实体一侧的子实体关联（link / unlink 接口）
// ════════════════════════════════════════════════════════

type childOps[C model.Entity] struct {
	objectType string
	load       func(ctx context.Context, id string) (C, error)
	save       func(ctx context.Context, child C) error
	notFound   error
	has        func(C) bool
	add        func(C)
	remove     func(C)
}

// toggle 建立或解除关联；已处于目标状态时不写库，返回 changed=false
func (o childOps[C]) toggle(ctx context.Context, tx *repository.Repository, childID string, link bool) (bool, error) {
	child, err := o.load(ctx, childID)
	if err != nil {
		return false, notFound(err, o.notFound)
	}
	if o.has(child) == link {
		return false, nil
	}

	if link {
		o.add(child)
	} else {
		o.remove(child)
	}

	if err := o.save(ctx, child); err != nil {
		return false, err
	}
	return true, recordChange(ctx, tx, o.objectType, child.EntityID(), model.ActionUpdate, child)
}

// detachAll 删除父实体前逐个解除子实体关联并落库
func detachAll[C model.Entity](ctx context.Context, tx *repository.Repository, objectType string, children []C, remove func(C), save func(context.Context, C) error) error {
	for _, child := range append([]C(nil), children...) {
		remove(child)
		if err := save(ctx, child); err != nil {
			return err
		}
		if err := recordChange(ctx, tx, objectType, child.EntityID(), model.ActionUpdate, child); err != nil {
			return err
		}
	}
	return nil
}

func operation(link bool) string {
	if link {
		return "link"
	}
	return "unlink"
}
