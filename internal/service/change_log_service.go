package service

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"learner-results/backend/internal/dto"
	"learner-results/backend/internal/model"
	"learner-results/backend/internal/repository"
)

// ChangeLogService 变更日志查询接口
type ChangeLogService interface {
	List(ctx context.Context, req *dto.ChangeLogListRequest) ([]dto.ChangeLogResponse, int64, error)
}

type changeLogService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewChangeLogService 创建 ChangeLogService 实例
func NewChangeLogService(repo *repository.Repository, logger *zap.Logger) ChangeLogService {
	return &changeLogService{repo: repo, logger: logger}
}

func (s *changeLogService) List(ctx context.Context, req *dto.ChangeLogListRequest) ([]dto.ChangeLogResponse, int64, error) {
	logs, total, err := s.repo.ChangeLog.List(ctx, req.ObjectType, req.ObjectID, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("查询变更日志失败", zap.Error(err))
		return nil, 0, err
	}

	list := make([]dto.ChangeLogResponse, 0, len(logs))
	for i := range logs {
		list = append(list, dto.ChangeLogResponse{
			ID:         logs[i].ChangeLogID,
			ObjectType: logs[i].ObjectType,
			ObjectID:   logs[i].ObjectID,
			Action:     logs[i].Action,
			Version:    logs[i].Version,
			Data:       json.RawMessage(logs[i].Data),
			LoggedAt:   formatTime(logs[i].LoggedAt),
		})
	}
	return list, total, nil
}

// recordChange 在调用方事务内追加一条变更日志；snapshot 为 nil 时不记录数据（删除）
func recordChange(ctx context.Context, repo *repository.Repository, objectType, objectID, action string, snapshot interface{}) error {
	version, err := repo.ChangeLog.NextVersion(ctx, objectType, objectID)
	if err != nil {
		return fmt.Errorf("读取变更日志版本失败: %w", err)
	}

	entry := &model.ChangeLog{
		ObjectType: objectType,
		ObjectID:   objectID,
		Action:     action,
		Version:    version,
	}
	if snapshot != nil {
		data, err := json.Marshal(snapshot)
		if err != nil {
			return fmt.Errorf("序列化变更快照失败: %w", err)
		}
		entry.Data = datatypes.JSON(data)
	}

	if err := repo.ChangeLog.Create(ctx, entry); err != nil {
		return fmt.Errorf("写入变更日志失败: %w", err)
	}
	return nil
}
