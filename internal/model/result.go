package model

import "gorm.io/gorm"

// Result 学习成果 — 对应 results（聚合根）
type Result struct {
	ResultID    string `gorm:"type:uuid;primaryKey"        json:"id"`
	Name        string `gorm:"type:varchar(255);not null"  json:"name"        validate:"notblank,max=255"`
	Description string `gorm:"type:varchar(2550)"          json:"description" validate:"max=2550"`
	BaseModel

	// 反向集合，由外键推导；序列化时不展开
	Activities         []*Activity          `gorm:"foreignKey:ResultID;references:ResultID" json:"-"`
	Products           []*Product           `gorm:"foreignKey:ResultID;references:ResultID" json:"-"`
	Reflections        []*Reflection        `gorm:"foreignKey:ResultID;references:ResultID" json:"-"`
	Evaluations        []*Evaluation        `gorm:"foreignKey:ResultID;references:ResultID" json:"-"`
	FormalRecognitions []*FormalRecognition `gorm:"foreignKey:ResultID;references:ResultID" json:"-"`
	Portfolios         []*Portfolio         `gorm:"many2many:portfolio_results;foreignKey:ResultID;joinForeignKey:ResultID;references:PortfolioID;joinReferences:PortfolioID" json:"-"`
}

// TableName 指定表名
func (Result) TableName() string { return "results" }

// EntityID 实现 Entity
func (r *Result) EntityID() string { return r.ResultID }

// BeforeCreate 创建前分配 UUID
func (r *Result) BeforeCreate(*gorm.DB) error {
	assignID(&r.ResultID)
	return nil
}
