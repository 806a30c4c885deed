package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	"learner-results/backend/internal/dto"
)

// 由 ListRequest 自身字段消费的参数
var reservedParams = map[string]bool{"page": true, "page_size": true, "search": true}

// bindListRequest 解析列表查询参数
//
//	order[name]=asc           → Order
//	date_created[after]=...   → Dates
//	type=internship           → Filters
//
// 字段是否允许过滤 / 排序由仓库层白名单决定，未知字段直接忽略
func bindListRequest(c *gin.Context) (*dto.ListRequest, bool) {
	req := &dto.ListRequest{
		Filters: make(map[string]string),
		Dates:   make(map[string]map[string]string),
		Order:   make(map[string]string),
	}
	if err := c.ShouldBindQuery(&req.PaginationRequest); err != nil {
		bindError(c, err)
		return nil, false
	}
	req.Search = c.Query("search")

	for key, values := range c.Request.URL.Query() {
		if reservedParams[key] || len(values) == 0 {
			continue
		}
		value := values[0]

		field, sub, ok := splitBracket(key)
		switch {
		case !ok:
			req.Filters[key] = value
		case field == "order":
			req.Order[sub] = value
		default:
			if req.Dates[field] == nil {
				req.Dates[field] = make(map[string]string)
			}
			req.Dates[field][sub] = value
		}
	}
	return req, true
}

// splitBracket 把 "a[b]" 拆成 ("a", "b", true)
func splitBracket(key string) (string, string, bool) {
	open := strings.IndexByte(key, '[')
	if open <= 0 || !strings.HasSuffix(key, "]") {
		return "", "", false
	}
	sub := key[open+1 : len(key)-1]
	if sub == "" {
		return "", "", false
	}
	return key[:open], sub, true
}
