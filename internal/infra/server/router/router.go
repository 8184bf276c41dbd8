// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/realtytrack/backend/internal/infra/observability"
	"github.com/realtytrack/backend/internal/integration/entrypoint/controller"
	"github.com/realtytrack/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                *gin.Engine
	healthController      *controller.HealthController
	categoryController    *controller.CategoryController
	transactionController *controller.TransactionController
	dashboardController   *controller.DashboardController
	insightController     *controller.InsightController
	insightRateLimiter    *middleware.RateLimiter
	metrics               *observability.Metrics
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	categoryController *controller.CategoryController,
	transactionController *controller.TransactionController,
	dashboardController *controller.DashboardController,
	insightController *controller.InsightController,
	insightRateLimiter *middleware.RateLimiter,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		healthController:      healthController,
		categoryController:    categoryController,
		transactionController: transactionController,
		dashboardController:   dashboardController,
		insightController:     insightController,
		insightRateLimiter:    insightRateLimiter,
		metrics:               metrics,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Request logging goes through slog instead of gin's default logger
	r.engine = gin.New()
	var recorder middleware.HTTPRecorder
	if r.metrics != nil {
		recorder = r.metrics
	}
	r.engine.Use(gin.Recovery(), middleware.RequestLogger(recorder))

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check and metrics endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)

	if r.metrics != nil {
		r.engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(r.metrics.Registry, promhttp.HandlerOpts{})))
	}
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	// API v1 group
	v1 := r.engine.Group("/api/v1")
	{
		if r.categoryController != nil {
			v1.GET("/categories", r.categoryController.List)
		}

		if r.transactionController != nil {
			transactions := v1.Group("/transactions")
			{
				transactions.GET("", r.transactionController.List)
				transactions.POST("", r.transactionController.Create)
				transactions.GET("/export", r.transactionController.Export)
				transactions.DELETE("/:id", r.transactionController.Delete)
			}
		}

		if r.dashboardController != nil {
			dashboard := v1.Group("/dashboard")
			{
				dashboard.GET("/summary", r.dashboardController.GetSummary)
				dashboard.GET("/breakdown", r.dashboardController.GetCategoryBreakdown)
				dashboard.GET("/trend", r.dashboardController.GetTrends)
				dashboard.GET("/trend.png", r.dashboardController.GetTrendChart)
				dashboard.GET("/projects", r.dashboardController.GetProjectStatus)
			}
		}

		if r.insightController != nil {
			insights := v1.Group("/insights")
			if r.insightRateLimiter != nil {
				insights.Use(r.insightRateLimiter.Middleware())
			}
			{
				insights.POST("", r.insightController.Generate)
				insights.POST("/category-suggestion", r.insightController.SuggestCategory)
			}
		}
	}
}
