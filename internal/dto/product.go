package dto

// ProductRequest 创建 / 全量更新学习产出
type ProductRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Type        string  `json:"type"`
	ResultID    *string `json:"result_id"   binding:"omitempty,uuid"`
	ActivityID  *string `json:"activity_id" binding:"omitempty,uuid"`
}

// ProductResponse 学习产出详情
type ProductResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Type         string  `json:"type"`
	ResultID     *string `json:"result_id,omitempty"`
	ActivityID   *string `json:"activity_id,omitempty"`
	DateCreated  string  `json:"date_created"`
	DateModified string  `json:"date_modified"`
}
