package service

import (
	"learner-results/backend/internal/dto"
	"learner-results/backend/internal/model"
)

// ── model → dto ──

func toRefs[E model.Entity](items []E, name func(E) string) []dto.RefResponse {
	refs := make([]dto.RefResponse, 0, len(items))
	for _, e := range items {
		refs = append(refs, dto.RefResponse{ID: e.EntityID(), Name: name(e)})
	}
	return refs
}

func toResultResponse(r *model.Result) *dto.ResultResponse {
	return &dto.ResultResponse{
		ID:                 r.ResultID,
		Name:               r.Name,
		Description:        r.Description,
		Activities:         toRefs(r.Activities, func(a *model.Activity) string { return a.Name }),
		Products:           toRefs(r.Products, func(p *model.Product) string { return p.Name }),
		Reflections:        toRefs(r.Reflections, func(rf *model.Reflection) string { return rf.Name }),
		Evaluations:        toRefs(r.Evaluations, func(e *model.Evaluation) string { return e.Name }),
		FormalRecognitions: toRefs(r.FormalRecognitions, func(f *model.FormalRecognition) string { return f.Name }),
		Portfolios:         toRefs(r.Portfolios, func(p *model.Portfolio) string { return p.Name }),
		DateCreated:        formatTime(r.DateCreated),
		DateModified:       formatTime(r.DateModified),
	}
}

func toActivityResponse(a *model.Activity) *dto.ActivityResponse {
	return &dto.ActivityResponse{
		ID:           a.ActivityID,
		Name:         a.Name,
		Description:  a.Description,
		Type:         a.Type,
		StartDate:    formatTimePtr(a.StartDate),
		EndDate:      formatTimePtr(a.EndDate),
		GradeType:    a.GradeType,
		Evaluation:   a.Evaluation,
		Reference:    a.Reference,
		ResultID:     a.ResultID,
		Products:     toRefs(a.Products, func(p *model.Product) string { return p.Name }),
		DateCreated:  formatTime(a.DateCreated),
		DateModified: formatTime(a.DateModified),
	}
}

func toProductResponse(p *model.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:           p.ProductID,
		Name:         p.Name,
		Description:  p.Description,
		Type:         p.Type,
		ResultID:     p.ResultID,
		ActivityID:   p.ActivityID,
		DateCreated:  formatTime(p.DateCreated),
		DateModified: formatTime(p.DateModified),
	}
}

func toReflectionResponse(r *model.Reflection) *dto.ReflectionResponse {
	return &dto.ReflectionResponse{
		ID:           r.ReflectionID,
		Name:         r.Name,
		Description:  r.Description,
		Status:       r.Status,
		Author:       r.Author,
		Rights:       r.Rights,
		ResultID:     r.ResultID,
		DateCreated:  formatTime(r.DateCreated),
		DateModified: formatTime(r.DateModified),
	}
}

func toEvaluationResponse(e *model.Evaluation) *dto.EvaluationResponse {
	return &dto.EvaluationResponse{
		ID:           e.EvaluationID,
		Name:         e.Name,
		Description:  e.Description,
		Grade:        e.Grade,
		Evaluator:    e.Evaluator,
		ResultID:     e.ResultID,
		DateCreated:  formatTime(e.DateCreated),
		DateModified: formatTime(e.DateModified),
	}
}

func toFormalRecognitionResponse(f *model.FormalRecognition) *dto.FormalRecognitionResponse {
	return &dto.FormalRecognitionResponse{
		ID:           f.FormalRecognitionID,
		Name:         f.Name,
		Description:  f.Description,
		Type:         f.Type,
		Issuer:       f.Issuer,
		ResultID:     f.ResultID,
		DateCreated:  formatTime(f.DateCreated),
		DateModified: formatTime(f.DateModified),
	}
}

func toPortfolioResponse(p *model.Portfolio) *dto.PortfolioResponse {
	return &dto.PortfolioResponse{
		ID:           p.PortfolioID,
		Name:         p.Name,
		Description:  p.Description,
		Results:      toRefs(p.Results, func(r *model.Result) string { return r.Name }),
		DateCreated:  formatTime(p.DateCreated),
		DateModified: formatTime(p.DateModified),
	}
}

// toResponses 列表结果逐项转换
func toResponses[T, R any](items []T, conv func(*T) *R) []R {
	list := make([]R, 0, len(items))
	for i := range items {
		list = append(list, *conv(&items[i]))
	}
	return list
}
