package handler

import (
	"github.com/gin-gonic/gin"

	"learner-results/backend/internal/dto"
	"learner-results/backend/internal/service"
	"learner-results/backend/pkg/response"
)

// ChangeLogHandler 变更日志 HTTP 处理器
type ChangeLogHandler struct {
	changeLogSvc service.ChangeLogService
}

// NewChangeLogHandler 创建 ChangeLogHandler
func NewChangeLogHandler(changeLogSvc service.ChangeLogService) *ChangeLogHandler {
	return &ChangeLogHandler{changeLogSvc: changeLogSvc}
}

// List 查询变更日志
// GET /api/v1/change-logs?object_type=result&object_id=xxx
func (h *ChangeLogHandler) List(c *gin.Context) {
	var req dto.ChangeLogListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}

	list, total, err := h.changeLogSvc.List(c.Request.Context(), &req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}
