package dto

// FormalRecognitionRequest 创建 / 全量更新正式认定
type FormalRecognitionRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Type        string  `json:"type"`
	Issuer      string  `json:"issuer"`
	ResultID    *string `json:"result_id" binding:"omitempty,uuid"`
}

// FormalRecognitionResponse 正式认定详情
type FormalRecognitionResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Type         string  `json:"type,omitempty"`
	Issuer       string  `json:"issuer,omitempty"`
	ResultID     *string `json:"result_id,omitempty"`
	DateCreated  string  `json:"date_created"`
	DateModified string  `json:"date_modified"`
}
