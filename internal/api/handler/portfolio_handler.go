package handler

import (
	"github.com/gin-gonic/gin"

	"learner-results/backend/internal/dto"
	"learner-results/backend/internal/service"
)

// PortfolioHandler 作品集模块 HTTP 处理器
type PortfolioHandler struct {
	*EntityHandler[dto.PortfolioRequest, dto.PortfolioResponse]
	portfolioSvc service.PortfolioService
}

// NewPortfolioHandler 创建 PortfolioHandler
func NewPortfolioHandler(portfolioSvc service.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{
		EntityHandler: NewEntityHandler[dto.PortfolioRequest, dto.PortfolioResponse](portfolioSvc),
		portfolioSvc:  portfolioSvc,
	}
}

// LinkResult 把成果加入作品集
// PUT /api/v1/portfolios/:id/results/:childId
func (h *PortfolioHandler) LinkResult(c *gin.Context) {
	relate(c, h.portfolioSvc.LinkResult)
}

// UnlinkResult 从作品集移除成果
// DELETE /api/v1/portfolios/:id/results/:childId
func (h *PortfolioHandler) UnlinkResult(c *gin.Context) {
	relate(c, h.portfolioSvc.UnlinkResult)
}
