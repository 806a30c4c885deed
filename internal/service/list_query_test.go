package service

import (
	"errors"
	"testing"
	"time"

	"learner-results/backend/internal/dto"
	"learner-results/backend/internal/repository"
	pkgerrors "learner-results/backend/pkg/errors"
)

func TestBuildListQuery_Defaults(t *testing.T) {
	q, err := buildListQuery(&dto.ListRequest{Search: "  math  "})
	if err != nil {
		t.Fatalf("构建查询失败: %v", err)
	}
	if q.Search != "math" {
		t.Errorf("期望去除首尾空白，实际: %q", q.Search)
	}
	if q.Offset != 0 || q.Limit != 30 {
		t.Errorf("期望默认分页 offset=0 limit=30，实际: %d/%d", q.Offset, q.Limit)
	}
}

func TestBuildListQuery_Pagination(t *testing.T) {
	q, err := buildListQuery(&dto.ListRequest{PaginationRequest: dto.PaginationRequest{Page: 3, PageSize: 10}})
	if err != nil {
		t.Fatalf("构建查询失败: %v", err)
	}
	if q.Offset != 20 || q.Limit != 10 {
		t.Errorf("期望 offset=20 limit=10，实际: %d/%d", q.Offset, q.Limit)
	}
}

func TestBuildListQuery_DatesAndOrder(t *testing.T) {
	q, err := buildListQuery(&dto.ListRequest{
		Dates: map[string]map[string]string{
			"start_date":   {"strictly_after": "2024-01-01", "before": "2024-06-30T12:00:00"},
			"date_created": {"after": "2024-01-01T08:00:00+08:00"},
		},
		Order: map[string]string{"name": "DESC", "date_created": "asc"},
	})
	if err != nil {
		t.Fatalf("构建查询失败: %v", err)
	}

	want := []repository.DateRange{
		{Field: "date_created", Op: repository.DateAfter, Value: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{Field: "start_date", Op: repository.DateBefore, Value: time.Date(2024, 6, 30, 12, 0, 0, 0, time.UTC)},
		{Field: "start_date", Op: repository.DateStrictlyAfter, Value: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	if len(q.Dates) != len(want) {
		t.Fatalf("期望 %d 个日期条件，实际: %+v", len(want), q.Dates)
	}
	for i, w := range want {
		got := q.Dates[i]
		if got.Field != w.Field || got.Op != w.Op || !got.Value.Equal(w.Value) {
			t.Errorf("第 %d 个日期条件期望 %+v，实际 %+v", i, w, got)
		}
	}

	if len(q.Order) != 2 || q.Order[0].Field != "date_created" || q.Order[0].Desc || q.Order[1].Field != "name" || !q.Order[1].Desc {
		t.Errorf("排序条件不符: %+v", q.Order)
	}
}

func TestBuildListQuery_Invalid(t *testing.T) {
	tests := []struct {
		name string
		req  *dto.ListRequest
	}{
		{"未知日期操作", &dto.ListRequest{Dates: map[string]map[string]string{"date_created": {"around": "2024-01-01"}}}},
		{"非法日期", &dto.ListRequest{Dates: map[string]map[string]string{"date_created": {"before": "01/02/2024"}}}},
		{"非法排序方向", &dto.ListRequest{Order: map[string]string{"name": "sideways"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := buildListQuery(tt.req); !errors.Is(err, pkgerrors.ErrInvalidFilter) {
				t.Errorf("期望 ErrInvalidFilter，实际: %v", err)
			}
		})
	}
}
