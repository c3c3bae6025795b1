package middleware

import (
	"github.com/gin-gonic/gin"
)

const auditSchoolIDKey = "audit_school_id"

// AuditContext 跨校审计上下文中间件
// 从请求头 X-Audit-School-ID 读取审计目标校编码并注入上下文。
// 仅做透传，能否进入审计模式由 Service 层根据调用者能力判定。
func AuditContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		if schoolID := c.GetHeader("X-Audit-School-ID"); schoolID != "" {
			c.Set(auditSchoolIDKey, schoolID)
		}

		c.Next()
	}
}
