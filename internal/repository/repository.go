package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository 所有 Repository 的聚合入口
type Repository struct {
	db *gorm.DB

	Result            ResultRepository
	Activity          ActivityRepository
	Product           ProductRepository
	Reflection        ReflectionRepository
	Evaluation        EvaluationRepository
	FormalRecognition FormalRecognitionRepository
	Portfolio         PortfolioRepository
	ChangeLog         ChangeLogRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:                db,
		Result:            NewResultRepo(db),
		Activity:          NewActivityRepo(db),
		Product:           NewProductRepo(db),
		Reflection:        NewReflectionRepo(db),
		Evaluation:        NewEvaluationRepo(db),
		FormalRecognition: NewFormalRecognitionRepo(db),
		Portfolio:         NewPortfolioRepo(db),
		ChangeLog:         NewChangeLogRepo(db),
	}
}

// BeginTx 开启事务
func (r *Repository) BeginTx(ctx context.Context) (*gorm.DB, error) {
	tx := r.db.WithContext(ctx).Begin()
	return tx, tx.Error
}

// WithTx 返回绑定到事务连接的 Repository 副本
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return NewRepository(tx)
}

// Transaction 在单个事务中执行 fn，fn 返回错误时回滚
// 未绑定数据库连接时（单元测试注入 mock）直接在当前 Repository 上执行
func (r *Repository) Transaction(ctx context.Context, fn func(txRepo *Repository) error) error {
	if r.db == nil {
		return fn(r)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(r.WithTx(tx))
	})
}
