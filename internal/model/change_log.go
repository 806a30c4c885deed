package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// 变更动作
const (
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// ChangeLog 实体变更记录 — 对应 change_logs（纯审计日志，只增不改）
// Version 按 (object_type, object_id) 从 1 递增；Data 为写入后的字段快照
type ChangeLog struct {
	ChangeLogID string         `gorm:"type:uuid;primaryKey"          json:"id"`
	ObjectType  string         `gorm:"type:varchar(50);not null"     json:"object_type"`
	ObjectID    string         `gorm:"type:uuid;not null"            json:"object_id"`
	Action      string         `gorm:"type:varchar(10);not null"     json:"action"`
	Version     int            `gorm:"not null"                      json:"version"`
	Data        datatypes.JSON `gorm:"type:jsonb"                    json:"data,omitempty"`
	LoggedAt    time.Time      `gorm:"not null;autoCreateTime"       json:"logged_at"`
}

// TableName 指定表名
func (ChangeLog) TableName() string { return "change_logs" }

func (c *ChangeLog) BeforeCreate(*gorm.DB) error {
	assignID(&c.ChangeLogID)
	return nil
}
