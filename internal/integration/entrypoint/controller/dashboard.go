// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/realtytrack/backend/internal/application/usecase/dashboard"
	"github.com/realtytrack/backend/internal/domain/entity"
	domainerror "github.com/realtytrack/backend/internal/domain/error"
	"github.com/realtytrack/backend/internal/integration/entrypoint/dto"
)

// DashboardController handles dashboard endpoints.
type DashboardController struct {
	getSummaryUseCase           *dashboard.GetSummaryUseCase
	getCategoryBreakdownUseCase *dashboard.GetCategoryBreakdownUseCase
	getTrendsUseCase            *dashboard.GetTrendsUseCase
	renderTrendChartUseCase     *dashboard.RenderTrendChartUseCase
	getProjectStatusUseCase     *dashboard.GetProjectStatusUseCase
}

// NewDashboardController creates a new dashboard controller instance.
func NewDashboardController(
	getSummaryUseCase *dashboard.GetSummaryUseCase,
	getCategoryBreakdownUseCase *dashboard.GetCategoryBreakdownUseCase,
	getTrendsUseCase *dashboard.GetTrendsUseCase,
	renderTrendChartUseCase *dashboard.RenderTrendChartUseCase,
	getProjectStatusUseCase *dashboard.GetProjectStatusUseCase,
) *DashboardController {
	return &DashboardController{
		getSummaryUseCase:           getSummaryUseCase,
		getCategoryBreakdownUseCase: getCategoryBreakdownUseCase,
		getTrendsUseCase:            getTrendsUseCase,
		renderTrendChartUseCase:     renderTrendChartUseCase,
		getProjectStatusUseCase:     getProjectStatusUseCase,
	}
}

// GetSummary handles GET /dashboard/summary requests.
func (c *DashboardController) GetSummary(ctx *gin.Context) {
	output, err := c.getSummaryUseCase.Execute(ctx.Request.Context())
	if err != nil {
		c.handleDashboardError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToDashboardSummaryResponse(output))
}

// GetCategoryBreakdown handles GET /dashboard/breakdown requests.
func (c *DashboardController) GetCategoryBreakdown(ctx *gin.Context) {
	input := dashboard.GetCategoryBreakdownInput{
		Range: entity.ReportRange(ctx.DefaultQuery("range", string(entity.ReportRangeMonth))),
	}

	output, err := c.getCategoryBreakdownUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleDashboardError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBreakdownResponse(output))
}

// GetTrends handles GET /dashboard/trend requests.
func (c *DashboardController) GetTrends(ctx *gin.Context) {
	output, err := c.getTrendsUseCase.Execute(ctx.Request.Context())
	if err != nil {
		c.handleDashboardError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTrendResponse(output))
}

// GetTrendChart handles GET /dashboard/trend.png requests.
func (c *DashboardController) GetTrendChart(ctx *gin.Context) {
	png, err := c.renderTrendChartUseCase.Execute(ctx.Request.Context())
	if err != nil {
		c.handleDashboardError(ctx, err)
		return
	}

	ctx.Data(http.StatusOK, "image/png", png)
}

// GetProjectStatus handles GET /dashboard/projects requests.
func (c *DashboardController) GetProjectStatus(ctx *gin.Context) {
	statuses, err := c.getProjectStatusUseCase.Execute(ctx.Request.Context())
	if err != nil {
		c.handleDashboardError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToProjectStatusListResponse(statuses))
}

// handleDashboardError handles dashboard errors and returns appropriate HTTP responses.
func (c *DashboardController) handleDashboardError(ctx *gin.Context, err error) {
	var dashErr *domainerror.DashboardError
	if errors.As(err, &dashErr) {
		statusCode := c.getStatusCodeForDashboardError(dashErr.Code)
		if statusCode >= http.StatusInternalServerError {
			slog.Error("Dashboard request failed", "path", ctx.FullPath(), "error", err)
		}
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: dashErr.Message,
			Code:  string(dashErr.Code),
		})
		return
	}

	slog.Error("Dashboard request failed", "path", ctx.FullPath(), "error", err)

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
		Code:  string(domainerror.ErrCodeDashboardInternalError),
	})
}

// getStatusCodeForDashboardError maps dashboard error codes to HTTP status codes.
func (c *DashboardController) getStatusCodeForDashboardError(code domainerror.DashboardErrorCode) int {
	switch code {
	case domainerror.ErrCodeInvalidRange:
		return http.StatusBadRequest
	case domainerror.ErrCodeChartUnavailable:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
