package repository

import (
	"context"

	"gorm.io/gorm"

	"learner-results/backend/internal/model"
)

// ResultRepository 成果数据访问接口
type ResultRepository interface {
	CRUD[model.Result]
	// GetGraph 加载成果及其全部一层关联
	GetGraph(ctx context.Context, id string) (*model.Result, error)
	// SyncPortfolios 以 r.Portfolios 覆盖 portfolio_results 中该成果的关联行
	SyncPortfolios(ctx context.Context, r *model.Result) error
}

type resultRepo struct {
	crudRepo[model.Result]
}

// NewResultRepo 创建 ResultRepository 实例
func NewResultRepo(db *gorm.DB) ResultRepository {
	return &resultRepo{crudRepo[model.Result]{db: db, pk: "result_id", schema: resultSchema}}
}

func (r *resultRepo) GetGraph(ctx context.Context, id string) (*model.Result, error) {
	var res model.Result
	err := r.db.WithContext(ctx).
		Preload("Activities", orderByName).
		Preload("Products", orderByName).
		Preload("Reflections", orderByName).
		Preload("Evaluations", orderByName).
		Preload("FormalRecognitions", orderByName).
		Preload("Portfolios", orderByName).
		Where("result_id = ?", id).
		First(&res).Error
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *resultRepo) SyncPortfolios(ctx context.Context, res *model.Result) error {
	// 两侧集合互相引用，只传浅拷贝给 GORM，避免沿关联递归保存
	owner := &model.Result{ResultID: res.ResultID}
	assoc := r.db.WithContext(ctx).Model(owner).Association("Portfolios")
	if len(res.Portfolios) == 0 {
		return assoc.Clear()
	}
	refs := make([]*model.Portfolio, 0, len(res.Portfolios))
	for _, p := range res.Portfolios {
		refs = append(refs, &model.Portfolio{
			PortfolioID: p.PortfolioID,
			Name:        p.Name,
			Description: p.Description,
			BaseModel:   p.BaseModel,
		})
	}
	return assoc.Replace(refs)
}

func orderByName(db *gorm.DB) *gorm.DB {
	return db.Order("name ASC")
}
