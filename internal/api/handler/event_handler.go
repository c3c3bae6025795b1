package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/yuanqiamanman-1/6667-sub001/internal/dto"
	"github.com/yuanqiamanman-1/6667-sub001/internal/service"
	pkgerrors "github.com/yuanqiamanman-1/6667-sub001/pkg/errors"
	"github.com/yuanqiamanman-1/6667-sub001/pkg/response"
)

// EventHandler 系统事件 HTTP 处理器
type EventHandler struct {
	eventSvc service.EventService
}

// NewEventHandler 创建 EventHandler
func NewEventHandler(eventSvc service.EventService) *EventHandler {
	return &EventHandler{eventSvc: eventSvc}
}

// Raise 上报系统事件
// POST /api/v1/system/events
func (h *EventHandler) Raise(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var req dto.RaiseEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.eventSvc.Raise(c.Request.Context(), caller, &req)
	if err != nil {
		fallbackError(c, err)
		return
	}

	response.Created(c, result)
}

// List 系统事件列表
// GET /api/v1/system/events
func (h *EventHandler) List(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var req dto.EventListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	list, total, err := h.eventSvc.List(c.Request.Context(), caller, &req)
	if err != nil {
		fallbackError(c, err)
		return
	}

	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// Transition 流转事件状态（open→ack→closed，非法边返回 409）
// POST /api/v1/system/events/:id/transition
func (h *EventHandler) Transition(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var req dto.TransitionEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.eventSvc.Transition(c.Request.Context(), caller, c.Param("id"), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEventNotFound):
			response.NotFound(c, 15001, "系统事件不存在")
		case errors.Is(err, pkgerrors.ErrInvalidTransition):
			response.Conflict(c, 15002, "非法的事件状态流转")
		default:
			fallbackError(c, err)
		}
		return
	}

	response.OK(c, result)
}

// UrgentCount 未关闭紧急事件角标
// GET /api/v1/system/events/urgent-count
func (h *EventHandler) UrgentCount(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	result, err := h.eventSvc.UrgentCount(c.Request.Context(), caller)
	if err != nil {
		fallbackError(c, err)
		return
	}

	response.OK(c, result)
}
