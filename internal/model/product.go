package model

import "gorm.io/gorm"

// Product 学习产出 — 对应 products
// 同时隶属于一个 Result 与一个 Activity，两条关联互相独立
type Product struct {
	ProductID   string  `gorm:"type:uuid;primaryKey"        json:"id"`
	Name        string  `gorm:"type:varchar(255);not null"  json:"name"        validate:"notblank,max=255"`
	Description string  `gorm:"type:varchar(2550);not null" json:"description" validate:"notblank,max=2550"`
	Type        string  `gorm:"type:varchar(255);not null"  json:"type"        validate:"notblank,max=255"`
	ResultID    *string `gorm:"type:uuid;index"             json:"result_id,omitempty"`
	ActivityID  *string `gorm:"type:uuid;index"             json:"activity_id,omitempty"`
	BaseModel
}

// TableName 指定表名
func (Product) TableName() string { return "products" }

// EntityID 实现 Entity
func (p *Product) EntityID() string { return p.ProductID }

func (p *Product) BelongsToResult(r *Result) bool { return pointsTo(p.ResultID, r.ResultID) }

func (p *Product) BelongsToActivity(a *Activity) bool { return pointsTo(p.ActivityID, a.ActivityID) }

func (p *Product) BeforeCreate(*gorm.DB) error {
	assignID(&p.ProductID)
	return nil
}
