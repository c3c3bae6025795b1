package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/yuanqiamanman-1/6667-sub001/internal/dto"
	"github.com/yuanqiamanman-1/6667-sub001/internal/service"
	pkgerrors "github.com/yuanqiamanman-1/6667-sub001/pkg/errors"
	"github.com/yuanqiamanman-1/6667-sub001/pkg/response"
)

// VerificationHandler 认证工作流 HTTP 处理器
type VerificationHandler struct {
	verifSvc service.VerificationService
}

// NewVerificationHandler 创建 VerificationHandler
func NewVerificationHandler(verifSvc service.VerificationService) *VerificationHandler {
	return &VerificationHandler{verifSvc: verifSvc}
}

// Submit 提交认证申请
// POST /api/v1/association/verifications/requests
func (h *VerificationHandler) Submit(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var req dto.SubmitVerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.verifSvc.Submit(c.Request.Context(), caller, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTargetSchoolEmpty):
			response.BadRequest(c, 13001, "讲师认证必须指定目标高校")
		case errors.Is(err, service.ErrSchoolNotCertified):
			response.BadRequest(c, 13002, "目标高校尚未认证开通")
		default:
			fallbackError(c, err)
		}
		return
	}

	response.Created(c, result)
}

// MyRequests 我提交的认证申请
// GET /api/v1/association/verifications/me/requests
func (h *VerificationHandler) MyRequests(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var req dto.VerificationListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	list, total, err := h.verifSvc.MyRequests(c.Request.Context(), caller, &req)
	if err != nil {
		fallbackError(c, err)
		return
	}

	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// List 认证申请列表（按审核人可见范围过滤）
// GET /api/v1/association/verifications/requests
func (h *VerificationHandler) List(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var req dto.VerificationListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	list, total, err := h.verifSvc.List(c.Request.Context(), caller, &req)
	if err != nil {
		fallbackError(c, err)
		return
	}

	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// Review 审核认证申请（单次 CAS 判定，重复审核返回 409）
// POST /api/v1/association/verifications/requests/:id/review
func (h *VerificationHandler) Review(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var req dto.ReviewVerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.verifSvc.Review(c.Request.Context(), caller, c.Param("id"), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRequestNotFound):
			response.NotFound(c, 13003, "认证申请不存在")
		case errors.Is(err, pkgerrors.ErrAlreadyReviewed):
			response.Conflict(c, 13004, "该申请已审核，不能重复操作")
		default:
			fallbackError(c, err)
		}
		return
	}

	response.OK(c, result)
}

// ApplicantDetail 申请人资料（与审核同一可见范围）
// GET /api/v1/association/verifications/requests/:id/applicant
func (h *VerificationHandler) ApplicantDetail(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	result, err := h.verifSvc.ApplicantDetail(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrRequestNotFound) {
			response.NotFound(c, 13003, "认证申请不存在")
			return
		}
		fallbackError(c, err)
		return
	}

	response.OK(c, result)
}
