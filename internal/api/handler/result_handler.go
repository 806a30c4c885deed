package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"learner-results/backend/internal/dto"
	"learner-results/backend/internal/service"
)

// ResultHandler 成果模块 HTTP 处理器
type ResultHandler struct {
	*EntityHandler[dto.ResultRequest, dto.ResultResponse]
	resultSvc service.ResultService
}

// NewResultHandler 创建 ResultHandler
func NewResultHandler(resultSvc service.ResultService) *ResultHandler {
	return &ResultHandler{
		EntityHandler: NewEntityHandler[dto.ResultRequest, dto.ResultResponse](resultSvc),
		resultSvc:     resultSvc,
	}
}

// Link 把子实体挂到成果下
// PUT /api/v1/results/:id/{relation}/:childId
func (h *ResultHandler) Link(rel service.ResultRelation) gin.HandlerFunc {
	return func(c *gin.Context) {
		relate(c, func(ctx context.Context, id, childID string) (*dto.ResultResponse, error) {
			return h.resultSvc.Link(ctx, id, rel, childID)
		})
	}
}

// Unlink 解除子实体与成果的关联
// DELETE /api/v1/results/:id/{relation}/:childId
func (h *ResultHandler) Unlink(rel service.ResultRelation) gin.HandlerFunc {
	return func(c *gin.Context) {
		relate(c, func(ctx context.Context, id, childID string) (*dto.ResultResponse, error) {
			return h.resultSvc.Unlink(ctx, id, rel, childID)
		})
	}
}
