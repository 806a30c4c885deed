package dto

// ReflectionRequest 创建 / 全量更新学习反思
type ReflectionRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
	Author      string  `json:"author"`
	Rights      string  `json:"rights"`
	ResultID    *string `json:"result_id" binding:"omitempty,uuid"`
}

// ReflectionResponse 学习反思详情
type ReflectionResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Status       string  `json:"status,omitempty"`
	Author       string  `json:"author,omitempty"`
	Rights       string  `json:"rights,omitempty"`
	ResultID     *string `json:"result_id,omitempty"`
	DateCreated  string  `json:"date_created"`
	DateModified string  `json:"date_modified"`
}
