package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/yuanqiamanman-1/6667-sub001/internal/dto"
	"github.com/yuanqiamanman-1/6667-sub001/internal/service"
	"github.com/yuanqiamanman-1/6667-sub001/pkg/response"
)

// AnnouncementHandler 公告模块 HTTP 处理器
type AnnouncementHandler struct {
	annSvc service.AnnouncementService
}

// NewAnnouncementHandler 创建 AnnouncementHandler
func NewAnnouncementHandler(annSvc service.AnnouncementService) *AnnouncementHandler {
	return &AnnouncementHandler{annSvc: annSvc}
}

// List 公告列表（公开，置顶优先）
// GET /api/v1/core/announcements
func (h *AnnouncementHandler) List(c *gin.Context) {
	var req dto.AnnouncementListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	list, total, err := h.annSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// Create 发布公告（范围/受众按角色判定）
// POST /api/v1/core/announcements
func (h *AnnouncementHandler) Create(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var req dto.CreateAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.annSvc.Create(c.Request.Context(), caller, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidAudience):
			response.BadRequest(c, 17001, "受众与公告范围不匹配")
		case errors.Is(err, service.ErrScopeFieldMissing):
			response.BadRequest(c, 17002, "该范围缺少必填字段")
		default:
			fallbackError(c, err)
		}
		return
	}

	response.Created(c, result)
}

// Update 更新公告（作者或平台管理）
// PATCH /api/v1/core/announcements/:id
func (h *AnnouncementHandler) Update(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var req dto.UpdateAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.annSvc.Update(c.Request.Context(), caller, c.Param("id"), &req)
	if err != nil {
		if errors.Is(err, service.ErrAnnouncementNotFound) {
			response.NotFound(c, 17003, "公告不存在")
			return
		}
		fallbackError(c, err)
		return
	}

	response.OK(c, result)
}

// Delete 删除公告（作者或平台管理）
// DELETE /api/v1/core/announcements/:id
func (h *AnnouncementHandler) Delete(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	if err := h.annSvc.Delete(c.Request.Context(), caller, c.Param("id")); err != nil {
		if errors.Is(err, service.ErrAnnouncementNotFound) {
			response.NotFound(c, 17003, "公告不存在")
			return
		}
		fallbackError(c, err)
		return
	}

	response.OK(c, nil)
}
