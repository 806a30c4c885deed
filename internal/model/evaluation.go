package model

import "gorm.io/gorm"

// Evaluation 成果评价 — 对应 evaluations
type Evaluation struct {
	EvaluationID string  `gorm:"type:uuid;primaryKey"       json:"id"`
	Name         string  `gorm:"type:varchar(255);not null" json:"name"        validate:"notblank,max=255"`
	Description  string  `gorm:"type:varchar(2550)"         json:"description" validate:"max=2550"`
	Grade        string  `gorm:"type:varchar(255)"          json:"grade,omitempty"     validate:"max=255"`
	Evaluator    string  `gorm:"type:text"                  json:"evaluator,omitempty" validate:"omitempty,url"`
	ResultID     *string `gorm:"type:uuid;index"            json:"result_id,omitempty"`
	BaseModel
}

// TableName 指定表名
func (Evaluation) TableName() string { return "evaluations" }

// EntityID 实现 Entity
func (e *Evaluation) EntityID() string { return e.EvaluationID }

func (e *Evaluation) BelongsTo(r *Result) bool { return pointsTo(e.ResultID, r.ResultID) }

func (e *Evaluation) BeforeCreate(*gorm.DB) error {
	assignID(&e.EvaluationID)
	return nil
}
