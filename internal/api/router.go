package api

import (
	"context"
	"net/http"
	"time"

	fusionHandler "fusion-recipe-generator/internal/api/handlers/fusion"
	"fusion-recipe-generator/internal/api/handlers/health"
	recipeHandler "fusion-recipe-generator/internal/api/handlers/recipe"
	"fusion-recipe-generator/internal/api/middleware"
	"fusion-recipe-generator/internal/core/fusion"
	"fusion-recipe-generator/internal/core/source"
	"fusion-recipe-generator/internal/core/source/cache"
	"fusion-recipe-generator/internal/infrastructure/config"
	"fusion-recipe-generator/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// 請求超時
	timeoutDuration = 30 * time.Second
	// 請求體大小限制 (1MB)
	maxBodySize = 1 << 20
)

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config, store cache.Store) (*gin.Engine, error) {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// 基礎中間件
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(requestid.New())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.Use(middleware.BodySizeLimit(maxBodySize))

	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}
	router.Use(middleware.Deduplication(cfg))

	common.LogInfo("Initializing services",
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
		zap.Bool("recipedb_enabled", cfg.RecipeDB.Enabled),
		zap.Bool("nutrition_remote_enabled", cfg.Nutrition.RemoteEnabled),
		zap.Duration("timeout", timeoutDuration),
	)

	// 外部資料源客戶端
	var recipeDB *source.RecipeDBClient
	var recipeSource fusion.RecipeSource
	var ofDaySource recipeHandler.OfDaySource
	if cfg.RecipeDB.Enabled {
		recipeDB = source.NewRecipeDBClient(cfg, store)
		recipeSource = recipeDB
		ofDaySource = recipeDB
	}
	flavorDB := source.NewFlavorDBClient(cfg, store)

	// 核心服務
	selectorSvc := fusion.NewSelectorService(recipeSource, cfg.RecipeDB.PageLimit)

	var primaryLookup fusion.NutrientLookup
	if recipeDB != nil {
		primaryLookup = recipeDB
	}
	nutritionSvc := fusion.NewNutritionService(primaryLookup, flavorDB, cfg.Nutrition.RemoteEnabled)

	tokens := &fusion.TokenSource{}

	// 全局中間件：設置超時和配置
	router.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Set("config", cfg)

		c.Next()

		if ctx.Err() == context.DeadlineExceeded {
			common.LogError("Request timeout",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", c.GetHeader("X-Request-ID")),
				zap.Duration("timeout", timeoutDuration),
			)
			c.JSON(http.StatusGatewayTimeout, gin.H{
				"error": "Request timeout",
				"code":  "REQUEST_TIMEOUT",
				"details": gin.H{
					"timeout": timeoutDuration.String(),
				},
			})
			c.Abort()
			return
		}
	})

	// 健康檢查路由
	router.GET("/health", health.HealthCheck)
	router.GET("/ready", health.ReadinessCheck)
	router.GET("/live", health.LivenessCheck)

	// API 路由組
	api := router.Group("/api/v1")
	{
		handler := fusionHandler.NewHandler(selectorSvc, nutritionSvc, flavorDB, tokens)

		fusionGroup := api.Group("/fusion")
		{
			// 生成融合食譜
			fusionGroup.POST("/generate", handler.HandleGenerate)

			// 依偏好調整既有食譜
			fusionGroup.POST("/adapt", handler.HandleAdapt)

			// 匯出食譜文件
			fusionGroup.POST("/export", handler.HandleExport)
		}

		recipeGroup := api.Group("/recipes")
		{
			// 每日精選食譜
			recipeGroup.GET("/of-day", recipeHandler.HandleRecipeOfDay(ofDaySource))
		}
	}

	common.LogInfo("Router setup completed successfully",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
		zap.Bool("recipedb_enabled", recipeDB != nil),
		zap.Duration("timeout", timeoutDuration),
		zap.Int64("max_body_size", maxBodySize),
	)

	return router, nil
}
