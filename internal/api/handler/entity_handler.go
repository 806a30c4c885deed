package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"learner-results/backend/internal/dto"
	"learner-results/backend/pkg/response"
)

// crudService 七类实体共享的 CRUD 接口形态
type crudService[Req, Resp any] interface {
	Create(ctx context.Context, req *Req) (*Resp, error)
	GetByID(ctx context.Context, id string) (*Resp, error)
	List(ctx context.Context, req *dto.ListRequest) ([]Resp, int64, error)
	Update(ctx context.Context, id string, req *Req) (*Resp, error)
	Delete(ctx context.Context, id string) error
}

// EntityHandler 单个实体的 CRUD HTTP 处理器
type EntityHandler[Req, Resp any] struct {
	svc crudService[Req, Resp]
}

// NewEntityHandler 创建 EntityHandler
func NewEntityHandler[Req, Resp any](svc crudService[Req, Resp]) *EntityHandler[Req, Resp] {
	return &EntityHandler[Req, Resp]{svc: svc}
}

// List 分页列表
// GET /api/v1/{entities}
func (h *EntityHandler[Req, Resp]) List(c *gin.Context) {
	req, ok := bindListRequest(c)
	if !ok {
		return
	}

	list, total, err := h.svc.List(c.Request.Context(), req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// Get 详情
// GET /api/v1/{entities}/:id
func (h *EntityHandler[Req, Resp]) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	item, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, item)
}

// Create 创建
// POST /api/v1/{entities}
func (h *EntityHandler[Req, Resp]) Create(c *gin.Context) {
	var req Req
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	item, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Created(c, item)
}

// Update 全量更新
// PUT /api/v1/{entities}/:id
func (h *EntityHandler[Req, Resp]) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req Req
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	item, err := h.svc.Update(c.Request.Context(), id, &req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, item)
}

// Delete 删除
// DELETE /api/v1/{entities}/:id
func (h *EntityHandler[Req, Resp]) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, nil)
}

// relate 路径为 /:id/{relation}/:childId 的关联操作
func relate[Resp any](c *gin.Context, fn func(ctx context.Context, id, childID string) (*Resp, error)) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	childID, ok := pathID(c, "childId")
	if !ok {
		return
	}

	item, err := fn(c.Request.Context(), id, childID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, item)
}
