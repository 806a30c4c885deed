package model

import (
	"time"

	"github.com/google/uuid"
)

// BaseModel 通用时间戳字段（所有业务模型嵌入）
// date_created 只允许在创建时写入；date_modified 每次写入时由 GORM 刷新
type BaseModel struct {
	DateCreated  time.Time `gorm:"<-:create;not null;autoCreateTime" json:"date_created"`
	DateModified time.Time `gorm:"not null;autoUpdateTime"           json:"date_modified"`
}

// 对象类型，用于变更日志与指标标签
const (
	ObjectResult            = "result"
	ObjectActivity          = "activity"
	ObjectProduct           = "product"
	ObjectReflection        = "reflection"
	ObjectEvaluation        = "evaluation"
	ObjectFormalRecognition = "formal_recognition"
	ObjectPortfolio         = "portfolio"
)

// assignID 仅在 id 为空时生成 UUID，已有 id 永不覆盖
func assignID(id *string) string {
	if *id == "" {
		*id = uuid.NewString()
	}
	return *id
}

// StringPtr 返回字符串指针
func StringPtr(s string) *string { return &s }
