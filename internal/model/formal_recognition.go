package model

import "gorm.io/gorm"

// FormalRecognition 正式认定（证书、学分等）— 对应 formal_recognitions
type FormalRecognition struct {
	FormalRecognitionID string  `gorm:"type:uuid;primaryKey"       json:"id"`
	Name                string  `gorm:"type:varchar(255);not null" json:"name"        validate:"notblank,max=255"`
	Description         string  `gorm:"type:varchar(2550)"         json:"description" validate:"max=2550"`
	Type                string  `gorm:"type:varchar(255)"          json:"type,omitempty"   validate:"max=255"`
	Issuer              string  `gorm:"type:text"                  json:"issuer,omitempty" validate:"omitempty,url"`
	ResultID            *string `gorm:"type:uuid;index"            json:"result_id,omitempty"`
	BaseModel
}

// TableName 指定表名
func (FormalRecognition) TableName() string { return "formal_recognitions" }

// EntityID 实现 Entity
func (f *FormalRecognition) EntityID() string { return f.FormalRecognitionID }

func (f *FormalRecognition) BelongsTo(r *Result) bool { return pointsTo(f.ResultID, r.ResultID) }

func (f *FormalRecognition) BeforeCreate(*gorm.DB) error {
	assignID(&f.FormalRecognitionID)
	return nil
}
