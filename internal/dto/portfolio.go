package dto

// PortfolioRequest 创建 / 全量更新作品集
type PortfolioRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	ResultIDs   []string `json:"result_ids" binding:"omitempty,dive,uuid"`
}

// PortfolioResponse 作品集详情
type PortfolioResponse struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Description  string        `json:"description"`
	Results      []RefResponse `json:"results"`
	DateCreated  string        `json:"date_created"`
	DateModified string        `json:"date_modified"`
}
