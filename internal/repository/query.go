package repository

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	pkgerrors "learner-results/backend/pkg/errors"
)

// 日期区间操作符
const (
	DateBefore         = "before"
	DateStrictlyBefore = "strictly_before"
	DateAfter          = "after"
	DateStrictlyAfter  = "strictly_after"
)

// DateRange 单个日期区间条件，如 date_created[after]=2024-01-01
type DateRange struct {
	Field string
	Op    string
	Value time.Time
}

// OrderBy 单个排序条件
type OrderBy struct {
	Field string
	Desc  bool
}

// ListQuery 列表查询条件（由 Service 层从请求参数构造）
// 未在白名单中的过滤与排序字段被忽略
type ListQuery struct {
	Search string
	Exact  map[string]string
	Dates  []DateRange
	Order  []OrderBy
	Offset int
	Limit  int
}

// listSchema 每个实体允许的查询列，preload 为列表结果需要展开的一层关联
type listSchema struct {
	search  []string
	exact   []string
	dates   []string
	order   []string
	preload []string
}

var (
	resultSchema = listSchema{
		search: []string{"name", "description"},
		exact:  []string{"name"},
		dates:  []string{"date_created", "date_modified"},
		order:  []string{"name", "date_created", "date_modified"},
		preload: []string{
			"Activities", "Products", "Reflections", "Evaluations", "FormalRecognitions", "Portfolios",
		},
	}
	activitySchema = listSchema{
		search:  []string{"name", "description", "type", "reference"},
		exact:   []string{"name", "type", "grade_type", "evaluation", "result_id"},
		dates:   []string{"start_date", "end_date", "date_created", "date_modified"},
		order:   []string{"name", "type", "start_date", "end_date", "date_created", "date_modified"},
		preload: []string{"Products"},
	}
	productSchema = listSchema{
		search: []string{"name", "description", "type"},
		exact:  []string{"name", "type", "result_id", "activity_id"},
		dates:  []string{"date_created", "date_modified"},
		order:  []string{"name", "type", "date_created", "date_modified"},
	}
	reflectionSchema = listSchema{
		search: []string{"name", "description", "status"},
		exact:  []string{"name", "status", "author", "result_id"},
		dates:  []string{"date_created", "date_modified"},
		order:  []string{"name", "status", "date_created", "date_modified"},
	}
	evaluationSchema = listSchema{
		search: []string{"name", "description", "grade"},
		exact:  []string{"name", "grade", "evaluator", "result_id"},
		dates:  []string{"date_created", "date_modified"},
		order:  []string{"name", "grade", "date_created", "date_modified"},
	}
	formalRecognitionSchema = listSchema{
		search: []string{"name", "description", "type", "issuer"},
		exact:  []string{"name", "type", "issuer", "result_id"},
		dates:  []string{"date_created", "date_modified"},
		order:  []string{"name", "type", "date_created", "date_modified"},
	}
	portfolioSchema = listSchema{
		search:  []string{"name", "description"},
		exact:   []string{"name"},
		dates:   []string{"date_created", "date_modified"},
		order:   []string{"name", "date_created", "date_modified"},
		preload: []string{"Results"},
	}
)

// uuidColumns 外键列，过滤值必须是合法 UUID
var uuidColumns = []string{"result_id", "activity_id"}

// filter 追加 WHERE 条件（不含分页与排序，便于先 Count）
func (s listSchema) filter(db *gorm.DB, q *ListQuery) (*gorm.DB, error) {
	if q == nil {
		return db, nil
	}

	if term := strings.TrimSpace(q.Search); term != "" && len(s.search) > 0 {
		like := "%" + escapeLike(term) + "%"
		conds := make([]string, 0, len(s.search))
		args := make([]interface{}, 0, len(s.search))
		for _, col := range s.search {
			conds = append(conds, col+" ILIKE ?")
			args = append(args, like)
		}
		db = db.Where("("+strings.Join(conds, " OR ")+")", args...)
	}

	for col, val := range q.Exact {
		if !slices.Contains(s.exact, col) {
			continue
		}
		if slices.Contains(uuidColumns, col) {
			if _, err := uuid.Parse(val); err != nil {
				return nil, fmt.Errorf("%w: %s", pkgerrors.ErrInvalidFilter, col)
			}
		}
		db = db.Where(clause.Eq{Column: clause.Column{Name: col}, Value: val})
	}

	for _, d := range q.Dates {
		if !slices.Contains(s.dates, d.Field) {
			continue
		}
		col := clause.Column{Name: d.Field}
		// 区间过滤排除 NULL
		db = db.Where(clause.Neq{Column: col, Value: nil})
		switch d.Op {
		case DateBefore:
			db = db.Where(clause.Lte{Column: col, Value: d.Value})
		case DateStrictlyBefore:
			db = db.Where(clause.Lt{Column: col, Value: d.Value})
		case DateAfter:
			db = db.Where(clause.Gte{Column: col, Value: d.Value})
		case DateStrictlyAfter:
			db = db.Where(clause.Gt{Column: col, Value: d.Value})
		default:
			return nil, fmt.Errorf("%w: %s[%s]", pkgerrors.ErrInvalidFilter, d.Field, d.Op)
		}
	}

	return db, nil
}

// page 追加排序与分页；无有效排序时按创建时间倒序
func (s listSchema) page(db *gorm.DB, q *ListQuery) *gorm.DB {
	ordered := false
	if q != nil {
		for _, o := range q.Order {
			if !slices.Contains(s.order, o.Field) {
				continue
			}
			db = db.Order(clause.OrderByColumn{Column: clause.Column{Name: o.Field}, Desc: o.Desc})
			ordered = true
		}
	}
	if !ordered {
		db = db.Order(clause.OrderByColumn{Column: clause.Column{Name: "date_created"}, Desc: true})
	}
	if q != nil && q.Limit > 0 {
		db = db.Offset(q.Offset).Limit(q.Limit)
	}
	for _, assoc := range s.preload {
		db = db.Preload(assoc, orderByName)
	}
	return db
}

// escapeLike 转义 LIKE 通配符
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// list 通用分页查询：先按条件计数，再取当前页
func list[T any](db *gorm.DB, schema listSchema, q *ListQuery) ([]T, int64, error) {
	var (
		items []T
		total int64
	)

	scoped, err := schema.filter(db.Model(new(T)), q)
	if err != nil {
		return nil, 0, err
	}
	scoped = scoped.Session(&gorm.Session{})
	if err := scoped.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := schema.page(scoped, q).Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
