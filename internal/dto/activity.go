package dto

import "time"

// ActivityRequest 创建 / 全量更新学习活动
// result_id 缺省表示不挂靠任何成果
type ActivityRequest struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Type        string     `json:"type"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	GradeType   string     `json:"grade_type"`
	Evaluation  string     `json:"evaluation"`
	Reference   string     `json:"reference"`
	ResultID    *string    `json:"result_id" binding:"omitempty,uuid"`
}

// ActivityResponse 学习活动详情
type ActivityResponse struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Description  string        `json:"description"`
	Type         string        `json:"type"`
	StartDate    *string       `json:"start_date,omitempty"`
	EndDate      *string       `json:"end_date,omitempty"`
	GradeType    string        `json:"grade_type"`
	Evaluation   string        `json:"evaluation"`
	Reference    string        `json:"reference"`
	ResultID     *string       `json:"result_id,omitempty"`
	Products     []RefResponse `json:"products"`
	DateCreated  string        `json:"date_created"`
	DateModified string        `json:"date_modified"`
}
