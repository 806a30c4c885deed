package dto

// ── 成果模块请求 ──

// ResultRequest 创建 / 全量更新成果
type ResultRequest struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	PortfolioIDs []string `json:"portfolio_ids" binding:"omitempty,dive,uuid"`
}

// ── 成果模块响应 ──

// ResultResponse 成果详情，关联集合展开一层
type ResultResponse struct {
	ID                 string        `json:"id"`
	Name               string        `json:"name"`
	Description        string        `json:"description"`
	Activities         []RefResponse `json:"activities"`
	Products           []RefResponse `json:"products"`
	Reflections        []RefResponse `json:"reflections"`
	Evaluations        []RefResponse `json:"evaluations"`
	FormalRecognitions []RefResponse `json:"formal_recognitions"`
	Portfolios         []RefResponse `json:"portfolios"`
	DateCreated        string        `json:"date_created"`
	DateModified       string        `json:"date_modified"`
}
