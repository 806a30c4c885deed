package dto

import "encoding/json"

// ChangeLogListRequest 变更日志查询参数
type ChangeLogListRequest struct {
	PaginationRequest
	ObjectType string `form:"object_type" binding:"omitempty,oneof=result activity product reflection evaluation formal_recognition portfolio"`
	ObjectID   string `form:"object_id"   binding:"omitempty,uuid"`
}

// ChangeLogResponse 变更日志条目
type ChangeLogResponse struct {
	ID         string          `json:"id"`
	ObjectType string          `json:"object_type"`
	ObjectID   string          `json:"object_id"`
	Action     string          `json:"action"`
	Version    int             `json:"version"`
	Data       json.RawMessage `json:"data,omitempty"`
	LoggedAt   string          `json:"logged_at"`
}
