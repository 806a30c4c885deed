package repository

import (
	"context"

	"gorm.io/gorm"

	"learner-results/backend/internal/model"
)

// PortfolioRepository 作品集数据访问接口
type PortfolioRepository interface {
	CRUD[model.Portfolio]
	GetGraph(ctx context.Context, id string) (*model.Portfolio, error)
	// SyncResults 以 p.Results 覆盖 portfolio_results 中该作品集的关联行
	SyncResults(ctx context.Context, p *model.Portfolio) error
}

type portfolioRepo struct {
	crudRepo[model.Portfolio]
}

// NewPortfolioRepo 创建 PortfolioRepository 实例
func NewPortfolioRepo(db *gorm.DB) PortfolioRepository {
	return &portfolioRepo{crudRepo[model.Portfolio]{db: db, pk: "portfolio_id", schema: portfolioSchema}}
}

func (r *portfolioRepo) GetGraph(ctx context.Context, id string) (*model.Portfolio, error) {
	var p model.Portfolio
	err := r.db.WithContext(ctx).
		Preload("Results", orderByName).
		Where("portfolio_id = ?", id).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *portfolioRepo) SyncResults(ctx context.Context, p *model.Portfolio) error {
	owner := &model.Portfolio{PortfolioID: p.PortfolioID}
	assoc := r.db.WithContext(ctx).Model(owner).Association("Results")
	if len(p.Results) == 0 {
		return assoc.Clear()
	}
	refs := make([]*model.Result, 0, len(p.Results))
	for _, res := range p.Results {
		refs = append(refs, &model.Result{
			ResultID:    res.ResultID,
			Name:        res.Name,
			Description: res.Description,
			BaseModel:   res.BaseModel,
		})
	}
	return assoc.Replace(refs)
}
