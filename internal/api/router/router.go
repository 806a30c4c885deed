package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"learner-results/backend/config"
	"learner-results/backend/internal/api/handler"
	"learner-results/backend/internal/api/middleware"
	"learner-results/backend/internal/service"
	"learner-results/backend/pkg/metrics"
	"learner-results/backend/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
// db 仅用于健康检查；rdb 为 nil 或未启用限流时写接口不限流
func Setup(cfg *config.Config, h *handler.Handler, m *metrics.Metrics, db *gorm.DB, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Metrics(m))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.BodyLimit(cfg.Server.MaxBodyBytes))

	// ── 健康检查 / 指标 ──
	r.GET("/health", health(db))
	r.GET("/metrics", gin.WrapH(m.Handler()))

	if !cfg.RateLimit.Enabled {
		rdb = nil
	}
	limit := middleware.RateLimit(rdb, cfg.RateLimit.Limit, cfg.RateLimit.Window, logger)

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 成果模块
		results := v1.Group("/results")
		{
			crudRoutes(results, h.Result.EntityHandler, limit)
			results.GET("/:id/export", h.Export.ExportResult)
			for _, rel := range []service.ResultRelation{
				service.RelationActivities,
				service.RelationProducts,
				service.RelationReflections,
				service.RelationEvaluations,
				service.RelationFormalRecognitions,
				service.RelationPortfolios,
			} {
				path := "/:id/" + string(rel) + "/:childId"
				results.PUT(path, limit, h.Result.Link(rel))
				results.DELETE(path, limit, h.Result.Unlink(rel))
			}
		}

		// 学习活动模块
		activities := v1.Group("/activities")
		{
			crudRoutes(activities, h.Activity.EntityHandler, limit)
			activities.PUT("/:id/products/:childId", limit, h.Activity.LinkProduct)
			activities.DELETE("/:id/products/:childId", limit, h.Activity.UnlinkProduct)
		}

		// 仅挂在成果 / 活动下的子实体
		crudRoutes(v1.Group("/products"), h.Product, limit)
		crudRoutes(v1.Group("/reflections"), h.Reflection, limit)
		crudRoutes(v1.Group("/evaluations"), h.Evaluation, limit)
		crudRoutes(v1.Group("/formal-recognitions"), h.FormalRecognition, limit)

		// 作品集模块
		portfolios := v1.Group("/portfolios")
		{
			crudRoutes(portfolios, h.Portfolio.EntityHandler, limit)
			portfolios.PUT("/:id/results/:childId", limit, h.Portfolio.LinkResult)
			portfolios.DELETE("/:id/results/:childId", limit, h.Portfolio.UnlinkResult)
		}

		// 变更日志
		v1.GET("/change-logs", h.ChangeLog.List)
	}

	return r
}

// crudRoutes 注册标准五个 CRUD 路由，写接口经过限流
func crudRoutes[Req, Resp any](g *gin.RouterGroup, h *handler.EntityHandler[Req, Resp], limit gin.HandlerFunc) {
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.POST("", limit, h.Create)
	g.PUT("/:id", limit, h.Update)
	g.DELETE("/:id", limit, h.Delete)
}

// health 数据库不可达时返回 503
func health(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			sqlDB, err := db.DB()
			if err == nil {
				err = sqlDB.PingContext(ctx)
			}
			if err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "database": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

