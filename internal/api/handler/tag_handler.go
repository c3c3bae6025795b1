package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/yuanqiamanman-1/6667-sub001/internal/dto"
	"github.com/yuanqiamanman-1/6667-sub001/internal/service"
	"github.com/yuanqiamanman-1/6667-sub001/pkg/response"
)

// TagHandler 平台标签 HTTP 处理器
type TagHandler struct {
	tagSvc service.TagService
}

// NewTagHandler 创建 TagHandler
func NewTagHandler(tagSvc service.TagService) *TagHandler {
	return &TagHandler{tagSvc: tagSvc}
}

// ListEnabled 启用标签列表（公开）
// GET /api/v1/core/tags
func (h *TagHandler) ListEnabled(c *gin.Context) {
	list, err := h.tagSvc.ListEnabled(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, list)
}

// ListAll 全部标签（含停用，仅超管）
// GET /api/v1/core/tags/admin
func (h *TagHandler) ListAll(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	list, err := h.tagSvc.ListAll(c.Request.Context(), caller)
	if err != nil {
		fallbackError(c, err)
		return
	}

	response.OK(c, list)
}

// Create 新建标签
// POST /api/v1/core/tags
func (h *TagHandler) Create(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var req dto.CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.tagSvc.Create(c.Request.Context(), caller, &req)
	if err != nil {
		fallbackError(c, err)
		return
	}

	response.Created(c, result)
}

// Update 更新标签
// PUT /api/v1/core/tags/:id
func (h *TagHandler) Update(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var req dto.UpdateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.tagSvc.Update(c.Request.Context(), caller, c.Param("id"), &req)
	if err != nil {
		if errors.Is(err, service.ErrTagNotFound) {
			response.NotFound(c, 18001, "标签不存在")
			return
		}
		fallbackError(c, err)
		return
	}

	response.OK(c, result)
}

// Delete 删除标签
// DELETE /api/v1/core/tags/:id
func (h *TagHandler) Delete(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	if err := h.tagSvc.Delete(c.Request.Context(), caller, c.Param("id")); err != nil {
		if errors.Is(err, service.ErrTagNotFound) {
			response.NotFound(c, 18001, "标签不存在")
			return
		}
		fallbackError(c, err)
		return
	}

	response.OK(c, nil)
}
