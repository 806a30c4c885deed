package model

import "gorm.io/gorm"

// Reflection 学习反思 — 对应 reflections
type Reflection struct {
	ReflectionID string  `gorm:"type:uuid;primaryKey"        json:"id"`
	Name         string  `gorm:"type:varchar(255);not null"  json:"name"        validate:"notblank,max=255"`
	Description  string  `gorm:"type:varchar(2550);not null" json:"description" validate:"notblank,max=2550"`
	Status       string  `gorm:"type:varchar(255)"           json:"status,omitempty" validate:"max=255"`
	Author       string  `gorm:"type:text"                   json:"author,omitempty" validate:"omitempty,url"`
	Rights       string  `gorm:"type:text"                   json:"rights,omitempty" validate:"omitempty,url"`
	ResultID     *string `gorm:"type:uuid;index"             json:"result_id,omitempty"`
	BaseModel
}

// TableName 指定表名
func (Reflection) TableName() string { return "reflections" }

// EntityID 实现 Entity
func (r *Reflection) EntityID() string { return r.ReflectionID }

func (r *Reflection) BelongsTo(res *Result) bool { return pointsTo(r.ResultID, res.ResultID) }

func (r *Reflection) BeforeCreate(*gorm.DB) error {
	assignID(&r.ReflectionID)
	return nil
}
