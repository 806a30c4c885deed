package repository

import (
	"context"

	"gorm.io/gorm"

	"learner-results/backend/internal/model"
)

// ActivityRepository 学习活动数据访问接口
type ActivityRepository interface {
	CRUD[model.Activity]
	// GetGraph 加载活动及其产出
	GetGraph(ctx context.Context, id string) (*model.Activity, error)
}

type activityRepo struct {
	crudRepo[model.Activity]
}

// NewActivityRepo 创建 ActivityRepository 实例
func NewActivityRepo(db *gorm.DB) ActivityRepository {
	return &activityRepo{crudRepo[model.Activity]{db: db, pk: "activity_id", schema: activitySchema}}
}

func (r *activityRepo) GetGraph(ctx context.Context, id string) (*model.Activity, error) {
	var act model.Activity
	err := r.db.WithContext(ctx).
		Preload("Products", orderByName).
		Where("activity_id = ?", id).
		First(&act).Error
	if err != nil {
		return nil, err
	}
	return &act, nil
}
