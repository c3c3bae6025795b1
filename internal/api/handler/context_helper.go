package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/yuanqiamanman-1/6667-sub001/internal/authz"
	"github.com/yuanqiamanman-1/6667-sub001/internal/service"
	"github.com/yuanqiamanman-1/6667-sub001/pkg/response"
)

// MustGetUserID 从 Gin 上下文中安全提取 user_id。
// 如果 JWT 中间件未正确注入 user_id，返回 false 并写入 401 响应。
// 调用方应在 ok=false 时直接 return。
func MustGetUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	return s, true
}

// MustGetCaller 组装本次请求的调用方标识：JWT 主体 + 可选的审计选校。
// 审计选校仅透传，是否允许进入审计态由 Service 层判定。
func MustGetCaller(c *gin.Context) (service.Caller, bool) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return service.Caller{}, false
	}
	return service.Caller{
		UserID:        userID,
		AuditSchoolID: c.GetString("audit_school_id"),
	}, true
}

// fallbackError 跨模块通用错误兜底：
// 鉴权拒绝 → 403；调用方账号不存在（Token 尚在而账号已删） → 401；其余 → 500。
// 模块自有的业务错误应在各 Handler 内先行匹配。
func fallbackError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, authz.ErrForbidden), errors.Is(err, authz.ErrAuditNotAllowed):
		response.Forbidden(c, 10003, "无权限访问")
	case errors.Is(err, service.ErrUserNotFound):
		response.Unauthorized(c, 10002, "账号不存在或已删除")
	default:
		response.InternalError(c)
	}
}
