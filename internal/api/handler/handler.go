package handler

import (
	"learner-results/backend/internal/dto"
	"learner-results/backend/internal/service"
)

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Result            *ResultHandler
	Activity          *ActivityHandler
	Product           *EntityHandler[dto.ProductRequest, dto.ProductResponse]
	Reflection        *EntityHandler[dto.ReflectionRequest, dto.ReflectionResponse]
	Evaluation        *EntityHandler[dto.EvaluationRequest, dto.EvaluationResponse]
	FormalRecognition *EntityHandler[dto.FormalRecognitionRequest, dto.FormalRecognitionResponse]
	Portfolio         *PortfolioHandler
	ChangeLog         *ChangeLogHandler
	Export            *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Result:            NewResultHandler(svc.Result),
		Activity:          NewActivityHandler(svc.Activity),
		Product:           NewEntityHandler[dto.ProductRequest, dto.ProductResponse](svc.Product),
		Reflection:        NewEntityHandler[dto.ReflectionRequest, dto.ReflectionResponse](svc.Reflection),
		Evaluation:        NewEntityHandler[dto.EvaluationRequest, dto.EvaluationResponse](svc.Evaluation),
		FormalRecognition: NewEntityHandler[dto.FormalRecognitionRequest, dto.FormalRecognitionResponse](svc.FormalRecognition),
		Portfolio:         NewPortfolioHandler(svc.Portfolio),
		ChangeLog:         NewChangeLogHandler(svc.ChangeLog),
		Export:            NewExportHandler(svc.Export),
	}
}
