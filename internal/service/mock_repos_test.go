package service

import (
	"context"
	"sort"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"learner-results/backend/internal/model"
	"learner-results/backend/internal/repository"
)

// ── 通用 Mock CRUD ──
// 存取均做值拷贝，模拟数据库读写边界

type mockCRUD[T any] struct {
	items     map[string]*T
	id        func(*T) string
	updateErr error
}

func newMockCRUD[T any](id func(*T) string) *mockCRUD[T] {
	return &mockCRUD[T]{items: make(map[string]*T), id: id}
}

func (m *mockCRUD[T]) Create(_ context.Context, e *T) error {
	if h, ok := any(e).(interface{ BeforeCreate(*gorm.DB) error }); ok {
		if err := h.BeforeCreate(nil); err != nil {
			return err
		}
	}
	c := *e
	m.items[m.id(e)] = &c
	return nil
}

func (m *mockCRUD[T]) GetByID(_ context.Context, id string) (*T, error) {
	if e, ok := m.items[id]; ok {
		c := *e
		return &c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCRUD[T]) GetByIDs(_ context.Context, ids []string) ([]T, error) {
	var result []T
	for _, id := range ids {
		if e, ok := m.items[id]; ok {
			result = append(result, *e)
		}
	}
	return result, nil
}

func (m *mockCRUD[T]) Update(_ context.Context, e *T) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	c := *e
	m.items[m.id(e)] = &c
	return nil
}

func (m *mockCRUD[T]) Delete(_ context.Context, id string) error {
	delete(m.items, id)
	return nil
}

func (m *mockCRUD[T]) List(_ context.Context, _ *repository.ListQuery) ([]T, int64, error) {
	var result []T
	for _, e := range m.sorted() {
		result = append(result, *e)
	}
	return result, int64(len(result)), nil
}

// get 直接读取存储内容（测试断言用）
func (m *mockCRUD[T]) get(id string) *T {
	return m.items[id]
}

func (m *mockCRUD[T]) put(e *T) {
	c := *e
	m.items[m.id(e)] = &c
}

func (m *mockCRUD[T]) sorted() []*T {
	ids := make([]string, 0, len(m.items))
	for id := range m.items {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	result := make([]*T, 0, len(ids))
	for _, id := range ids {
		result = append(result, m.items[id])
	}
	return result
}

// childrenOf 按外键筛选子实体，返回拷贝
func childrenOf[T any](m *mockCRUD[T], match func(*T) bool) []*T {
	var result []*T
	for _, e := range m.sorted() {
		if match(e) {
			c := *e
			result = append(result, &c)
		}
	}
	return result
}

func refersTo(fk *string, id string) bool {
	return fk != nil && *fk == id
}

// ── Mock 存储 ──

type portfolioLink struct {
	resultID    string
	portfolioID string
}

type mockStore struct {
	results            *mockCRUD[model.Result]
	activities         *mockCRUD[model.Activity]
	products           *mockCRUD[model.Product]
	reflections        *mockCRUD[model.Reflection]
	evaluations        *mockCRUD[model.Evaluation]
	formalRecognitions *mockCRUD[model.FormalRecognition]
	portfolios         *mockCRUD[model.Portfolio]
	links              map[portfolioLink]bool
	changeLogs         *mockChangeLogRepo
}

func newMockStore() *mockStore {
	return &mockStore{
		results:            newMockCRUD(func(r *model.Result) string { return r.ResultID }),
		activities:         newMockCRUD(func(a *model.Activity) string { return a.ActivityID }),
		products:           newMockCRUD(func(p *model.Product) string { return p.ProductID }),
		reflections:        newMockCRUD(func(r *model.Reflection) string { return r.ReflectionID }),
		evaluations:        newMockCRUD(func(e *model.Evaluation) string { return e.EvaluationID }),
		formalRecognitions: newMockCRUD(func(f *model.FormalRecognition) string { return f.FormalRecognitionID }),
		portfolios:         newMockCRUD(func(p *model.Portfolio) string { return p.PortfolioID }),
		links:              make(map[portfolioLink]bool),
		changeLogs:         &mockChangeLogRepo{},
	}
}

// repository 组装 Repository 聚合（无数据库连接，Transaction 直接执行）
func (s *mockStore) repository() *repository.Repository {
	return &repository.Repository{
		Result:            &mockResultRepo{mockCRUD: s.results, store: s},
		Activity:          &mockActivityRepo{mockCRUD: s.activities, store: s},
		Product:           s.products,
		Reflection:        s.reflections,
		Evaluation:        s.evaluations,
		FormalRecognition: s.formalRecognitions,
		Portfolio:         &mockPortfolioRepo{mockCRUD: s.portfolios, store: s},
		ChangeLog:         s.changeLogs,
	}
}

func (s *mockStore) linked(resultID, portfolioID string) bool {
	return s.links[portfolioLink{resultID: resultID, portfolioID: portfolioID}]
}

// ── Mock ResultRepository ──

type mockResultRepo struct {
	*mockCRUD[model.Result]
	store *mockStore
}

func (m *mockResultRepo) GetGraph(ctx context.Context, id string) (*model.Result, error) {
	res, err := m.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s := m.store
	res.Activities = childrenOf(s.activities, func(a *model.Activity) bool { return refersTo(a.ResultID, id) })
	res.Products = childrenOf(s.products, func(p *model.Product) bool { return refersTo(p.ResultID, id) })
	res.Reflections = childrenOf(s.reflections, func(r *model.Reflection) bool { return refersTo(r.ResultID, id) })
	res.Evaluations = childrenOf(s.evaluations, func(e *model.Evaluation) bool { return refersTo(e.ResultID, id) })
	res.FormalRecognitions = childrenOf(s.formalRecognitions, func(f *model.FormalRecognition) bool { return refersTo(f.ResultID, id) })
	res.Portfolios = childrenOf(s.portfolios, func(p *model.Portfolio) bool { return s.linked(id, p.PortfolioID) })
	return res, nil
}

func (m *mockResultRepo) SyncPortfolios(_ context.Context, res *model.Result) error {
	for link := range m.store.links {
		if link.resultID == res.ResultID {
			delete(m.store.links, link)
		}
	}
	for _, p := range res.Portfolios {
		m.store.links[portfolioLink{resultID: res.ResultID, portfolioID: p.PortfolioID}] = true
	}
	return nil
}

// ── Mock ActivityRepository ──

type mockActivityRepo struct {
	*mockCRUD[model.Activity]
	store *mockStore
}

func (m *mockActivityRepo) GetGraph(ctx context.Context, id string) (*model.Activity, error) {
	act, err := m.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	act.Products = childrenOf(m.store.products, func(p *model.Product) bool { return refersTo(p.ActivityID, id) })
	return act, nil
}

// ── Mock PortfolioRepository ──

type mockPortfolioRepo struct {
	*mockCRUD[model.Portfolio]
	store *mockStore
}

func (m *mockPortfolioRepo) GetGraph(ctx context.Context, id string) (*model.Portfolio, error) {
	p, err := m.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Results = childrenOf(m.store.results, func(r *model.Result) bool { return m.store.linked(r.ResultID, id) })
	return p, nil
}

func (m *mockPortfolioRepo) SyncResults(_ context.Context, p *model.Portfolio) error {
	for link := range m.store.links {
		if link.portfolioID == p.PortfolioID {
			delete(m.store.links, link)
		}
	}
	for _, r := range p.Results {
		m.store.links[portfolioLink{resultID: r.ResultID, portfolioID: p.PortfolioID}] = true
	}
	return nil
}

// ── Mock ChangeLogRepository ──

type mockChangeLogRepo struct {
	logs []model.ChangeLog
}

func (m *mockChangeLogRepo) Create(_ context.Context, log *model.ChangeLog) error {
	if err := log.BeforeCreate(nil); err != nil {
		return err
	}
	m.logs = append(m.logs, *log)
	return nil
}

func (m *mockChangeLogRepo) NextVersion(_ context.Context, objectType, objectID string) (int, error) {
	version := 0
	for _, l := range m.logs {
		if l.ObjectType == objectType && l.ObjectID == objectID && l.Version > version {
			version = l.Version
		}
	}
	return version + 1, nil
}

func (m *mockChangeLogRepo) List(_ context.Context, objectType, objectID string, offset, limit int) ([]model.ChangeLog, int64, error) {
	var matched []model.ChangeLog
	for _, l := range m.logs {
		if objectType != "" && l.ObjectType != objectType {
			continue
		}
		if objectID != "" && l.ObjectID != objectID {
			continue
		}
		matched = append(matched, l)
	}
	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

// forObject 某对象的全部日志（按写入顺序）
func (m *mockChangeLogRepo) forObject(objectType, objectID string) []model.ChangeLog {
	var result []model.ChangeLog
	for _, l := range m.logs {
		if l.ObjectType == objectType && l.ObjectID == objectID {
			result = append(result, l)
		}
	}
	return result
}

// ── 测试辅助 ──

func setupTestService() (*Service, *mockStore) {
	store := newMockStore()
	return NewService(store.repository(), nil, zap.NewNop()), store
}

func seedResult(s *mockStore, id, name string) *model.Result {
	r := &model.Result{ResultID: id, Name: name}
	s.results.put(r)
	return r
}

func seedActivity(s *mockStore, id string, resultID *string) *model.Activity {
	a := &model.Activity{
		ActivityID: id,
		Name:       "活动 " + id,
		Type:       "course",
		GradeType:  "pass/fail",
		Evaluation: "pass",
		Reference:  "https://example.org/" + id,
		ResultID:   resultID,
	}
	s.activities.put(a)
	return a
}

func seedProduct(s *mockStore, id string, resultID, activityID *string) *model.Product {
	p := &model.Product{
		ProductID:   id,
		Name:        "产出 " + id,
		Description: "desc",
		Type:        "essay",
		ResultID:    resultID,
		ActivityID:  activityID,
	}
	s.products.put(p)
	return p
}

func seedPortfolio(s *mockStore, id, name string) *model.Portfolio {
	p := &model.Portfolio{PortfolioID: id, Name: name}
	s.portfolios.put(p)
	return p
}
