package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/praveensharma0809/planner-app/config"
	"github.com/praveensharma0809/planner-app/internal/api/handler"
	"github.com/praveensharma0809/planner-app/internal/api/middleware"
	"github.com/praveensharma0809/planner-app/pkg/jwt"
)

const (
	maxBodyBytes   int64 = 1 << 20
	maxUploadBytes int64 = 4 << 20
	routeImportICS       = "/api/v1/off-days/import"
)

// Deps 路由依赖；Blacklist 与 Limiter 在 Redis 不可用时为 nil
type Deps struct {
	JWT       *jwt.Manager
	Blacklist middleware.BlacklistChecker
	Limiter   middleware.RateLimiter
}

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, deps Deps, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(maxBodyBytes, map[string]int64{routeImportICS: maxUploadBytes}))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	// 公开接口按 IP 限流，认证接口在 JWTAuth 之后按用户限流
	var limit gin.HandlerFunc = func(c *gin.Context) { c.Next() }
	if cfg.RateLimit.Enabled {
		limit = middleware.RateLimit(deps.Limiter, cfg.RateLimit.Requests, cfg.RateLimit.Window, logger)
	}

	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证）
		auth := v1.Group("/auth")
		auth.Use(limit)
		{
			auth.POST("/register", h.Auth.Register)
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(deps.JWT, deps.Blacklist), limit)
		{
			authorized.POST("/auth/logout", h.Auth.Logout)

			// 学习档案
			authorized.GET("/profile", h.Profile.GetProfile)
			authorized.PUT("/profile", h.Profile.UpdateProfile)

			// 科目模块
			subjects := authorized.Group("/subjects")
			{
				subjects.GET("", h.Subject.ListSubjects)
				subjects.GET("/:id", h.Subject.GetSubject)
				subjects.POST("", h.Subject.CreateSubject)
				subjects.PUT("/:id", h.Subject.UpdateSubject)
				subjects.PUT("/:id/archive", h.Subject.ToggleArchive)
				subjects.DELETE("/:id", h.Subject.DeleteSubject)
			}

			// 休息日模块
			offDays := authorized.Group("/off-days")
			{
				offDays.GET("", h.OffDay.ListOffDays)
				offDays.POST("", h.OffDay.CreateOffDay)
				offDays.DELETE("/:id", h.OffDay.DeleteOffDay)
				offDays.POST("/import", h.OffDay.ImportICS)
			}

			// 计划模块
			plan := authorized.Group("/plan")
			{
				plan.POST("/analyze", h.Plan.Analyze)
				plan.POST("/resolve", h.Plan.Resolve)
				plan.POST("/commit", h.Plan.Commit)
				plan.GET("/history", h.Plan.History)
			}

			// 任务模块
			tasks := authorized.Group("/tasks")
			{
				tasks.POST("", h.Task.CreateTask)
				tasks.PUT("/:id/complete", h.Task.CompleteTask)
				tasks.PUT("/:id/uncomplete", h.Task.UncompleteTask)
				tasks.PUT("/:id/reschedule", h.Task.RescheduleTask)
				tasks.GET("/backlog", h.Task.Backlog)
				tasks.GET("/week", h.Task.Week)
				tasks.GET("/month-counts", h.Task.MonthCounts)
			}

			// 看板
			dashboard := authorized.Group("/dashboard")
			{
				dashboard.GET("/progress", h.Dashboard.Progress)
				dashboard.GET("/deadlines", h.Dashboard.Deadlines)
			}

			// 导出模块
			export := authorized.Group("/export")
			{
				export.GET("/plan.xlsx", h.Export.ExportPlan)
				export.GET("/plan.ics", h.Export.ExportCalendar)
			}
		}
	}

	return r
}
