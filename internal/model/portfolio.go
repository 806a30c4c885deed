package model

import "gorm.io/gorm"

// Portfolio 作品集 — 对应 portfolios，与 Result 多对多（portfolio_results）
type Portfolio struct {
	PortfolioID string `gorm:"type:uuid;primaryKey"       json:"id"`
	Name        string `gorm:"type:varchar(255);not null" json:"name"        validate:"notblank,max=255"`
	Description string `gorm:"type:varchar(2550)"         json:"description" validate:"max=2550"`
	BaseModel

	Results []*Result `gorm:"many2many:portfolio_results;foreignKey:PortfolioID;joinForeignKey:PortfolioID;references:ResultID;joinReferences:ResultID" json:"-"`
}

// TableName 指定表名
func (Portfolio) TableName() string { return "portfolios" }

// EntityID 实现 Entity
func (p *Portfolio) EntityID() string { return p.PortfolioID }

func (p *Portfolio) BeforeCreate(*gorm.DB) error {
	assignID(&p.PortfolioID)
	return nil
}
