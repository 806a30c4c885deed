package model

import (
	"time"

	"gorm.io/gorm"
)

// Activity 学习活动 — 对应 activities
type Activity struct {
	ActivityID  string     `gorm:"type:uuid;primaryKey"       json:"id"`
	Name        string     `gorm:"type:varchar(255);not null" json:"name"        validate:"notblank,max=255"`
	Description string     `gorm:"type:varchar(2550)"         json:"description" validate:"max=2550"`
	Type        string     `gorm:"type:varchar(255);not null" json:"type"        validate:"notblank,max=255"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	GradeType   string     `gorm:"type:varchar(255);not null" json:"grade_type"  validate:"notblank,max=255"`
	Evaluation  string     `gorm:"type:varchar(255);not null" json:"evaluation"  validate:"notblank,max=255"`
	Reference   string     `gorm:"type:varchar(255);not null" json:"reference"   validate:"notblank,max=255"`
	ResultID    *string    `gorm:"type:uuid;index"            json:"result_id,omitempty"`
	BaseModel

	Products []*Product `gorm:"foreignKey:ActivityID;references:ActivityID" json:"-"`
}

// TableName 指定表名
func (Activity) TableName() string { return "activities" }

// EntityID 实现 Entity
func (a *Activity) EntityID() string { return a.ActivityID }

// BelongsTo 外键是否指向给定成果
func (a *Activity) BelongsTo(r *Result) bool { return pointsTo(a.ResultID, r.ResultID) }

func (a *Activity) BeforeCreate(*gorm.DB) error {
	assignID(&a.ActivityID)
	return nil
}
