package handler

import (
	"github.com/gin-gonic/gin"

	"learner-results/backend/internal/dto"
	"learner-results/backend/internal/service"
)

// ActivityHandler 学习活动模块 HTTP 处理器
type ActivityHandler struct {
	*EntityHandler[dto.ActivityRequest, dto.ActivityResponse]
	activitySvc service.ActivityService
}

// NewActivityHandler 创建 ActivityHandler
func NewActivityHandler(activitySvc service.ActivityService) *ActivityHandler {
	return &ActivityHandler{
		EntityHandler: NewEntityHandler[dto.ActivityRequest, dto.ActivityResponse](activitySvc),
		activitySvc:   activitySvc,
	}
}

// LinkProduct 把产出挂到活动下
// PUT /api/v1/activities/:id/products/:childId
func (h *ActivityHandler) LinkProduct(c *gin.Context) {
	relate(c, h.activitySvc.LinkProduct)
}

// UnlinkProduct 解除产出与活动的关联
// DELETE /api/v1/activities/:id/products/:childId
func (h *ActivityHandler) UnlinkProduct(c *gin.Context) {
	relate(c, h.activitySvc.UnlinkProduct)
}
