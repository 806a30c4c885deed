package model

import "slices"

// Entity 可参与双向关联维护的实体（以指针形式出现）
type Entity interface {
	comparable
	EntityID() string
}

// sameEntity 同一指针，或 id 非空且相等
func sameEntity[E Entity](a, b E) bool {
	if a == b {
		return true
	}
	id := a.EntityID()
	return id != "" && id == b.EntityID()
}

func indexOf[E Entity](set []E, e E) int {
	return slices.IndexFunc(set, func(x E) bool { return sameEntity(x, e) })
}

// parentRef 子实体一侧（拥有方）的外键读写
type parentRef[C any] struct {
	get func(C) *string
	set func(C, *string)
}

// addChild 子实体不在集合中时追加，并把子实体外键指向 parentID；已存在时不做任何写入
func addChild[C Entity](set *[]C, child C, ref parentRef[C], parentID string) {
	if indexOf(*set, child) >= 0 {
		return
	}
	*set = append(*set, child)
	id := parentID
	ref.set(child, &id)
}

// removeChild 从集合移除子实体；仅当子实体外键仍指向 parentID 时才置空，
// 已被改挂到其他父实体的子实体保持不变
func removeChild[C Entity](set *[]C, child C, ref parentRef[C], parentID string) {
	i := indexOf(*set, child)
	if i < 0 {
		return
	}
	*set = slices.Delete(*set, i, i+1)
	if p := ref.get(child); p != nil && *p == parentID {
		ref.set(child, nil)
	}
}

func pointsTo(fk *string, id string) bool {
	return fk != nil && id != "" && *fk == id
}

// ── 拥有方外键描述 ──

var (
	activityResult = parentRef[*Activity]{
		get: func(a *Activity) *string { return a.ResultID },
		set: func(a *Activity, id *string) { a.ResultID = id },
	}
	productResult = parentRef[*Product]{
		get: func(p *Product) *string { return p.ResultID },
		set: func(p *Product, id *string) { p.ResultID = id },
	}
	productActivity = parentRef[*Product]{
		get: func(p *Product) *string { return p.ActivityID },
		set: func(p *Product, id *string) { p.ActivityID = id },
	}
	reflectionResult = parentRef[*Reflection]{
		get: func(r *Reflection) *string { return r.ResultID },
		set: func(r *Reflection, id *string) { r.ResultID = id },
	}
	evaluationResult = parentRef[*Evaluation]{
		get: func(e *Evaluation) *string { return e.ResultID },
		set: func(e *Evaluation, id *string) { e.ResultID = id },
	}
	formalRecognitionResult = parentRef[*FormalRecognition]{
		get: func(f *FormalRecognition) *string { return f.ResultID },
		set: func(f *FormalRecognition, id *string) { f.ResultID = id },
	}
)

// ── Result ↔ 子实体 ──

func (r *Result) AddActivity(a *Activity) {
	addChild(&r.Activities, a, activityResult, assignID(&r.ResultID))
}

func (r *Result) RemoveActivity(a *Activity) {
	removeChild(&r.Activities, a, activityResult, r.ResultID)
}

func (r *Result) AddProduct(p *Product) {
	addChild(&r.Products, p, productResult, assignID(&r.ResultID))
}

func (r *Result) RemoveProduct(p *Product) {
	removeChild(&r.Products, p, productResult, r.ResultID)
}

func (r *Result) AddReflection(rf *Reflection) {
	addChild(&r.Reflections, rf, reflectionResult, assignID(&r.ResultID))
}

func (r *Result) RemoveReflection(rf *Reflection) {
	removeChild(&r.Reflections, rf, reflectionResult, r.ResultID)
}

func (r *Result) AddEvaluation(e *Evaluation) {
	addChild(&r.Evaluations, e, evaluationResult, assignID(&r.ResultID))
}

func (r *Result) RemoveEvaluation(e *Evaluation) {
	removeChild(&r.Evaluations, e, evaluationResult, r.ResultID)
}

func (r *Result) AddFormalRecognition(f *FormalRecognition) {
	addChild(&r.FormalRecognitions, f, formalRecognitionResult, assignID(&r.ResultID))
}

func (r *Result) RemoveFormalRecognition(f *FormalRecognition) {
	removeChild(&r.FormalRecognitions, f, formalRecognitionResult, r.ResultID)
}

// ── Activity ↔ Product ──

func (a *Activity) AddProduct(p *Product) {
	addChild(&a.Products, p, productActivity, assignID(&a.ActivityID))
}

func (a *Activity) RemoveProduct(p *Product) {
	removeChild(&a.Products, p, productActivity, a.ActivityID)
}

// ── Result ↔ Portfolio（多对多，两侧集合都要维护）──

// AddPortfolio 双向建立关联；两侧均先检查是否已包含
func (r *Result) AddPortfolio(p *Portfolio) {
	if indexOf(r.Portfolios, p) >= 0 {
		return
	}
	r.Portfolios = append(r.Portfolios, p)
	p.AddResult(r)
}

// RemovePortfolio 双向解除关联
func (r *Result) RemovePortfolio(p *Portfolio) {
	i := indexOf(r.Portfolios, p)
	if i < 0 {
		return
	}
	r.Portfolios = slices.Delete(r.Portfolios, i, i+1)
	p.RemoveResult(r)
}

func (p *Portfolio) AddResult(r *Result) {
	if indexOf(p.Results, r) >= 0 {
		return
	}
	p.Results = append(p.Results, r)
	r.AddPortfolio(p)
}

func (p *Portfolio) RemoveResult(r *Result) {
	i := indexOf(p.Results, r)
	if i < 0 {
		return
	}
	p.Results = slices.Delete(p.Results, i, i+1)
	r.RemovePortfolio(p)
}

// ── 集合查询 ──

func (r *Result) HasActivity(a *Activity) bool { return indexOf(r.Activities, a) >= 0 }

func (r *Result) HasProduct(p *Product) bool { return indexOf(r.Products, p) >= 0 }

func (r *Result) HasReflection(rf *Reflection) bool { return indexOf(r.Reflections, rf) >= 0 }

func (r *Result) HasEvaluation(e *Evaluation) bool { return indexOf(r.Evaluations, e) >= 0 }

func (r *Result) HasFormalRecognition(f *FormalRecognition) bool {
	return indexOf(r.FormalRecognitions, f) >= 0
}

func (r *Result) HasPortfolio(p *Portfolio) bool { return indexOf(r.Portfolios, p) >= 0 }

func (a *Activity) HasProduct(p *Product) bool { return indexOf(a.Products, p) >= 0 }

func (p *Portfolio) HasResult(r *Result) bool { return indexOf(p.Results, r) >= 0 }
