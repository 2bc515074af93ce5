package api

import (
	"net/http"
	"time"

	"mixology-engine/internal/api/handlers/health"
	recommendHandler "mixology-engine/internal/api/handlers/recommend"
	shoppingHandler "mixology-engine/internal/api/handlers/shopping"
	"mixology-engine/internal/api/middleware"
	"mixology-engine/internal/core/recommend"
	"mixology-engine/internal/core/shopping"
	"mixology-engine/internal/infrastructure/config"
	"mixology-engine/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Dependencies 路由所需的服務
type Dependencies struct {
	Recommend *recommend.Service
	Shopping  *shopping.Service
	Checks    map[string]health.Checker
}

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config, deps Dependencies) *gin.Engine {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	// 設置 gin 模式
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(requestid.New())
	router.Use(middleware.Logger())

	// CORS 設置
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.Use(middleware.BodySizeLimit(cfg.Request.MaxBodyBytes))
	router.Use(middleware.Timeout(cfg.Request.Timeout))

	// 健康檢查與指標不受限流影響
	healthHandler := health.NewHandler(cfg.App.Version, deps.Checks)
	router.GET("/health", healthHandler.HealthCheck)
	router.GET("/ready", healthHandler.ReadinessCheck)
	router.GET("/live", healthHandler.LivenessCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API 路由組
	api := router.Group("/api/v1")
	if cfg.RateLimit.Enabled {
		api.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}
	if cfg.DedupWindow > 0 {
		api.Use(middleware.Deduplication(cfg.DedupWindow))
	}

	if deps.Recommend != nil {
		h := recommendHandler.NewHandler(deps.Recommend, recommendHandler.Limits{
			Default:     cfg.Recommend.DefaultLimit,
			Challenging: cfg.Recommend.ChallengingLimit,
			Bar:         cfg.Recommend.BarLimit,
		})

		users := api.Group("/users/:userId")
		{
			users.GET("/recommendations", h.HandleTopRecommendations)
			users.GET("/recommendations/challenging", h.HandleChallenging)
			users.GET("/recommendations/bar", h.HandleFromBar)
			users.GET("/feed", h.HandleFeed)
			users.GET("/recipes/:recipeId/score", h.HandleScore)
			users.GET("/recipes/:recipeId/availability", h.HandleRecipeAvailability)
		}
		api.POST("/availability", h.HandleAvailability)
	}

	if deps.Shopping != nil {
		h := shoppingHandler.NewHandler(deps.Shopping)

		shop := api.Group("/shopping")
		{
			shop.GET("/lists", h.HandleListLists)
			shop.POST("/lists", h.HandleCreateList)
			shop.GET("/consolidated", h.HandleConsolidated)
			shop.PATCH("/items/:itemId", h.HandleSetChecked)
			shop.DELETE("/items/:itemId", h.HandleDeleteItem)
			shop.POST("/migrate", h.HandleMigrate)
		}
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, common.ErrorResponse{
			Code:    common.ErrCodeNotFound,
			Message: "route not found",
		})
	})

	common.LogInfo("Router setup completed successfully",
		zap.Bool("recommend_enabled", deps.Recommend != nil),
		zap.Bool("shopping_enabled", deps.Shopping != nil),
		zap.Bool("rate_limit_enabled", cfg.RateLimit.Enabled),
		zap.Int64("max_body_size", cfg.Request.MaxBodyBytes),
	)

	return router
}
