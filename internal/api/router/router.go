package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yuanqiamanman-1/6667-sub001/config"
	"github.com/yuanqiamanman-1/6667-sub001/internal/api/handler"
	"github.com/yuanqiamanman-1/6667-sub001/internal/api/middleware"
	"github.com/yuanqiamanman-1/6667-sub001/pkg/jwt"
	"github.com/yuanqiamanman-1/6667-sub001/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(1 << 20))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证）
		auth := v1.Group("/auth")
		auth.Use(middleware.RateLimit(rdb, 20, time.Minute))
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
		}

		// 公开只读路由
		v1.GET("/core/orgs", h.Org.List)
		v1.GET("/core/tags", h.Tag.ListEnabled)
		v1.GET("/core/announcements", h.Announcement.List)
		v1.GET("/association/:school_id/tasks", h.Task.List)

		// 需要认证的路由；跨校审计选校随请求头透传
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		authorized.Use(middleware.AuditContext())
		{
			// 认证模块（需要认证）
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)

			// 组织目录
			orgs := authorized.Group("/core/orgs")
			{
				orgs.GET("/board", h.Org.Board)
				orgs.GET("/resolve", h.Org.Resolve)
				orgs.GET("/:id", h.Org.Get)
				orgs.POST("", h.Org.Create) // 仅超管（Service 层鉴权）
			}

			// 平台标签
			tags := authorized.Group("/core/tags")
			{
				tags.GET("/admin", h.Tag.ListAll)
				tags.POST("", h.Tag.Create)
				tags.PUT("/:id", h.Tag.Update)
				tags.DELETE("/:id", h.Tag.Delete)
			}

			// 公告
			announcements := authorized.Group("/core/announcements")
			{
				announcements.POST("", h.Announcement.Create)
				announcements.PATCH("/:id", h.Announcement.Update)
				announcements.DELETE("/:id", h.Announcement.Delete)
			}

			// 认证工作流
			verifications := authorized.Group("/association/verifications")
			{
				verifications.POST("/requests", h.Verification.Submit)
				verifications.GET("/requests", h.Verification.List)
				verifications.GET("/me/requests", h.Verification.MyRequests)
				verifications.POST("/requests/:id/review", h.Verification.Review)
				verifications.GET("/requests/:id/applicant", h.Verification.ApplicantDetail)
			}

			// 讲师档案池
			teachers := authorized.Group("/association/teachers")
			{
				teachers.GET("", h.Teacher.List)
				teachers.POST("/:user_id/pool", h.Teacher.TogglePool)
			}

			// 协会任务发布
			authorized.POST("/association/:school_id/tasks", h.Task.Create)

			// 积分账本
			points := authorized.Group("/points")
			{
				points.GET("/balance", h.Points.Balance)
				points.GET("/transactions", h.Points.Transactions)
				points.GET("/redemptions", h.Points.Redemptions)
				points.POST("/redeem", h.Points.Redeem)
				points.POST("/credit", h.Points.Credit) // 平台管理能力（Service 层鉴权）
			}

			// 系统事件
			events := authorized.Group("/system/events")
			{
				events.GET("", h.Event.List)
				events.POST("", h.Event.Raise)
				events.GET("/urgent-count", h.Event.UrgentCount)
				events.POST("/:id/transition", h.Event.Transition)
			}

			// 平台管理
			admin := authorized.Group("/admin")
			{
				admin.GET("/users", h.Admin.ListUsers)
				admin.DELETE("/users/:id", h.Admin.DeleteUser)
				admin.GET("/org-admins", h.Admin.ListOrgAdmins)
				admin.POST("/org-admins", h.Admin.CreateOrgAdmin)
				admin.DELETE("/org-admins/:id", h.Admin.DeleteOrgAdmin)
				admin.POST("/universities/purge-orphans", h.Admin.PurgeOrphans)
				admin.GET("/onboarding-requests", h.Admin.ListOnboarding)
				admin.POST("/onboarding-requests", h.Admin.SubmitOnboarding) // 申请人提交
				admin.POST("/onboarding-requests/:id/review", h.Admin.ReviewOnboarding)
				admin.GET("/export/points", h.Export.ExportPoints)
				admin.GET("/export/users", h.Export.ExportUsers)
			}
		}
	}

	return r
}
