package dto

// ── 通用响应片段 ──

// RefResponse 关联实体的简要引用（读接口只展开一层）
type RefResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ── 分页请求 ──

// PaginationRequest 通用分页参数
type PaginationRequest struct {
	Page     int `form:"page"      binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// GetPage 获取页码（含默认值）
func (p *PaginationRequest) GetPage() int {
	if p.Page <= 0 {
		return 1
	}
	return p.Page
}

// GetPageSize 获取每页数量（含默认值）
func (p *PaginationRequest) GetPageSize() int {
	if p.PageSize <= 0 {
		return 30
	}
	return p.PageSize
}

// GetOffset 计算偏移量
func (p *PaginationRequest) GetOffset() int {
	return (p.GetPage() - 1) * p.GetPageSize()
}

// ── 列表请求 ──

// ListRequest 通用列表查询参数，由 Handler 从 query string 解析
//
//	?search=math                       模糊搜索
//	?type=internship                   精确过滤
//	?date_created[after]=2024-01-01    日期区间
//	?order[name]=desc                  排序
type ListRequest struct {
	PaginationRequest
	Search  string
	Filters map[string]string
	Dates   map[string]map[string]string
	Order   map[string]string
}
