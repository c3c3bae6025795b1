package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/yuanqiamanman-1/6667-sub001/internal/dto"
	"github.com/yuanqiamanman-1/6667-sub001/internal/service"
	"github.com/yuanqiamanman-1/6667-sub001/pkg/response"
)

// OrgHandler 组织目录 HTTP 处理器
type OrgHandler struct {
	orgSvc service.OrgService
}

// NewOrgHandler 创建 OrgHandler
func NewOrgHandler(orgSvc service.OrgService) *OrgHandler {
	return &OrgHandler{orgSvc: orgSvc}
}

// List 组织目录列表（公开）
// GET /api/v1/core/orgs?type=&certified=&require_admin=
func (h *OrgHandler) List(c *gin.Context) {
	var req dto.OrgListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	list, err := h.orgSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, list)
}

// Get 组织详情
// GET /api/v1/core/orgs/:id
func (h *OrgHandler) Get(c *gin.Context) {
	result, err := h.orgSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrOrgNotFound) {
			response.NotFound(c, 12001, "组织不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// Resolve 按业务键定位组织
// GET /api/v1/core/orgs/resolve?type=&school_id=&aid_school_id=
func (h *OrgHandler) Resolve(c *gin.Context) {
	var req dto.OrgResolveRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.orgSvc.Resolve(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrgKey):
			response.BadRequest(c, 12002, "缺少组织业务键")
		case errors.Is(err, service.ErrOrgNotFound):
			response.NotFound(c, 12001, "组织不存在")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, result)
}

// Create 创建组织（仅超管）
// POST /api/v1/core/orgs
func (h *OrgHandler) Create(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var req dto.CreateOrgRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.orgSvc.Create(c.Request.Context(), caller, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrgExists):
			response.Conflict(c, 12003, "同类型组织已存在")
		case errors.Is(err, service.ErrOrgKey):
			response.BadRequest(c, 12002, "缺少组织业务键")
		default:
			fallbackError(c, err)
		}
		return
	}

	response.Created(c, result)
}

// Board 跨校驾驶舱：有管理员的高校聚合视图
// GET /api/v1/core/orgs/board
func (h *OrgHandler) Board(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	result, err := h.orgSvc.Board(c.Request.Context(), caller)
	if err != nil {
		fallbackError(c, err)
		return
	}

	response.OK(c, result)
}
