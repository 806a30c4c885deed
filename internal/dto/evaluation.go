package dto

// EvaluationRequest 创建 / 全量更新成果评价
type EvaluationRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Grade       string  `json:"grade"`
	Evaluator   string  `json:"evaluator"`
	ResultID    *string `json:"result_id" binding:"omitempty,uuid"`
}

// EvaluationResponse 成果评价详情
type EvaluationResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Grade        string  `json:"grade,omitempty"`
	Evaluator    string  `json:"evaluator,omitempty"`
	ResultID     *string `json:"result_id,omitempty"`
	DateCreated  string  `json:"date_created"`
	DateModified string  `json:"date_modified"`
}
