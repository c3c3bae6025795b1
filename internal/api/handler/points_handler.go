package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/yuanqiamanman-1/6667-sub001/internal/dto"
	"github.com/yuanqiamanman-1/6667-sub001/internal/service"
	pkgerrors "github.com/yuanqiamanman-1/6667-sub001/pkg/errors"
	"github.com/yuanqiamanman-1/6667-sub001/pkg/response"
)

// PointsHandler 积分账本 HTTP 处理器
type PointsHandler struct {
	pointsSvc service.PointsService
}

// NewPointsHandler 创建 PointsHandler
func NewPointsHandler(pointsSvc service.PointsService) *PointsHandler {
	return &PointsHandler{pointsSvc: pointsSvc}
}

// Balance 当前余额
// GET /api/v1/points/balance
func (h *PointsHandler) Balance(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	result, err := h.pointsSvc.Balance(c.Request.Context(), caller)
	if err != nil {
		fallbackError(c, err)
		return
	}

	response.OK(c, result)
}

// Transactions 本人积分流水（时间倒序，同时间按序号倒序）
// GET /api/v1/points/transactions
func (h *PointsHandler) Transactions(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var req dto.TransactionListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	list, total, err := h.pointsSvc.ListTransactions(c.Request.Context(), caller, &req)
	if err != nil {
		fallbackError(c, err)
		return
	}

	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// Redemptions 本人兑换记录
// GET /api/v1/points/redemptions
func (h *PointsHandler) Redemptions(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var req dto.PaginationRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	list, total, err := h.pointsSvc.ListRedemptions(c.Request.Context(), caller, &req)
	if err != nil {
		fallbackError(c, err)
		return
	}

	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// Redeem 积分兑换（余额不足时整笔回滚，不留流水）
// POST /api/v1/points/redeem
func (h *PointsHandler) Redeem(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var req dto.RedeemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.pointsSvc.Redeem(c.Request.Context(), caller, &req)
	if err != nil {
		if errors.Is(err, pkgerrors.ErrInsufficientPoints) {
			response.Conflict(c, 14001, "积分余额不足")
			return
		}
		fallbackError(c, err)
		return
	}

	response.Created(c, result)
}

// Credit 管理员调账，正数发放、负数扣减（仅平台管理能力）
// POST /api/v1/points/credit
func (h *PointsHandler) Credit(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var req dto.CreditPointsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.pointsSvc.Credit(c.Request.Context(), caller, &req)
	if err != nil {
		if errors.Is(err, pkgerrors.ErrInsufficientPoints) {
			response.Conflict(c, 14001, "积分余额不足")
			return
		}
		fallbackError(c, err)
		return
	}

	response.Created(c, result)
}
