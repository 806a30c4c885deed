package repository

import (
	"context"

	"gorm.io/gorm"

	"learner-results/backend/internal/model"
)

// ChangeLogRepository 变更日志数据访问接口（只增不改）
type ChangeLogRepository interface {
	Create(ctx context.Context, log *model.ChangeLog) error
	// NextVersion 返回对象下一条日志的版本号，首条为 1
	NextVersion(ctx context.Context, objectType, objectID string) (int, error)
	// List objectType / objectID 为空时不过滤，按记录时间倒序
	List(ctx context.Context, objectType, objectID string, offset, limit int) ([]model.ChangeLog, int64, error)
}

type changeLogRepo struct {
	db *gorm.DB
}

// NewChangeLogRepo 创建 ChangeLogRepository 实例
func NewChangeLogRepo(db *gorm.DB) ChangeLogRepository {
	return &changeLogRepo{db: db}
}

func (r *changeLogRepo) Create(ctx context.Context, log *model.ChangeLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *changeLogRepo) NextVersion(ctx context.Context, objectType, objectID string) (int, error) {
	var current int
	err := r.db.WithContext(ctx).
		Model(&model.ChangeLog{}).
		Where("object_type = ? AND object_id = ?", objectType, objectID).
		Select("COALESCE(MAX(version), 0)").
		Scan(&current).Error
	if err != nil {
		return 0, err
	}
	return current + 1, nil
}

func (r *changeLogRepo) List(ctx context.Context, objectType, objectID string, offset, limit int) ([]model.ChangeLog, int64, error) {
	var logs []model.ChangeLog
	var total int64

	db := r.db.WithContext(ctx).Model(&model.ChangeLog{})
	if objectType != "" {
		db = db.Where("object_type = ?", objectType)
	}
	if objectID != "" {
		db = db.Where("object_id = ?", objectID)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Offset(offset).Limit(limit).
		Order("logged_at DESC, version DESC").
		Find(&logs).Error; err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}
