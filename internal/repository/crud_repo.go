package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CRUD 单表实体的通用数据访问接口
type CRUD[T any] interface {
	Create(ctx context.Context, e *T) error
	GetByID(ctx context.Context, id string) (*T, error)
	GetByIDs(ctx context.Context, ids []string) ([]T, error)
	Update(ctx context.Context, e *T) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, q *ListQuery) ([]T, int64, error)
}

// crudRepo CRUD 的 GORM 实现；关联集合由各实体仓库单独维护，这里一律 Omit
type crudRepo[T any] struct {
	db     *gorm.DB
	pk     string
	schema listSchema
}

func (r *crudRepo[T]) Create(ctx context.Context, e *T) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(e).Error
}

func (r *crudRepo[T]) GetByID(ctx context.Context, id string) (*T, error) {
	var e T
	err := r.db.WithContext(ctx).
		Where(clause.Eq{Column: clause.Column{Name: r.pk}, Value: id}).
		First(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *crudRepo[T]) GetByIDs(ctx context.Context, ids []string) ([]T, error) {
	var items []T
	if len(ids) == 0 {
		return items, nil
	}
	err := r.db.WithContext(ctx).
		Where(clause.IN{Column: clause.Column{Name: r.pk}, Values: toValues(ids)}).
		Find(&items).Error
	return items, err
}

func (r *crudRepo[T]) Update(ctx context.Context, e *T) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(e).Error
}

func (r *crudRepo[T]) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where(clause.Eq{Column: clause.Column{Name: r.pk}, Value: id}).
		Delete(new(T)).Error
}

func (r *crudRepo[T]) List(ctx context.Context, q *ListQuery) ([]T, int64, error) {
	return list[T](r.db.WithContext(ctx), r.schema, q)
}

func toValues(ids []string) []interface{} {
	values := make([]interface{}, len(ids))
	for i, id := range ids {
		values[i] = id
	}
	return values
}
