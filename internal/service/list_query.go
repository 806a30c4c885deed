package service

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"learner-results/backend/internal/dto"
	"learner-results/backend/internal/repository"
	pkgerrors "learner-results/backend/pkg/errors"
)

// 日期过滤接受的格式
var dateLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

// buildListQuery 把请求参数转成仓库层查询条件
// 日期与排序参数按字段名排序，保证生成的 SQL 稳定
func buildListQuery(req *dto.ListRequest) (*repository.ListQuery, error) {
	q := &repository.ListQuery{
		Search: strings.TrimSpace(req.Search),
		Exact:  req.Filters,
		Offset: req.GetOffset(),
		Limit:  req.GetPageSize(),
	}

	for _, field := range slices.Sorted(maps.Keys(req.Dates)) {
		ops := req.Dates[field]
		for _, op := range slices.Sorted(maps.Keys(ops)) {
			switch op {
			case repository.DateBefore, repository.DateStrictlyBefore,
				repository.DateAfter, repository.DateStrictlyAfter:
			default:
				return nil, fmt.Errorf("%w: %s[%s]", pkgerrors.ErrInvalidFilter, field, op)
			}
			value, err := parseDate(ops[op])
			if err != nil {
				return nil, fmt.Errorf("%w: %s[%s]=%s", pkgerrors.ErrInvalidFilter, field, op, ops[op])
			}
			q.Dates = append(q.Dates, repository.DateRange{Field: field, Op: op, Value: value})
		}
	}

	for _, field := range slices.Sorted(maps.Keys(req.Order)) {
		switch strings.ToLower(req.Order[field]) {
		case "asc":
			q.Order = append(q.Order, repository.OrderBy{Field: field})
		case "desc":
			q.Order = append(q.Order, repository.OrderBy{Field: field, Desc: true})
		default:
			return nil, fmt.Errorf("%w: order[%s]", pkgerrors.ErrInvalidFilter, field)
		}
	}

	return q, nil
}

func parseDate(raw string) (time.Time, error) {
	var err error
	for _, layout := range dateLayouts {
		var t time.Time
		if t, err = time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, err
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatTime(*t)
	return &s
}
