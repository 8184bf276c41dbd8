// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/realtytrack/backend/internal/application/usecase/insight"
	"github.com/realtytrack/backend/internal/domain/entity"
	domainerror "github.com/realtytrack/backend/internal/domain/error"
	"github.com/realtytrack/backend/internal/integration/entrypoint/dto"
)

// InsightController handles the language model backed endpoints. Model
// failures are reported inside successful responses as fallback results.
type InsightController struct {
	generateInsightsUseCase *insight.GenerateInsightsUseCase
	suggestCategoryUseCase  *insight.SuggestCategoryUseCase
}

// NewInsightController creates a new insight controller instance.
func NewInsightController(
	generateInsightsUseCase *insight.GenerateInsightsUseCase,
	suggestCategoryUseCase *insight.SuggestCategoryUseCase,
) *InsightController {
	return &InsightController{
		generateInsightsUseCase: generateInsightsUseCase,
		suggestCategoryUseCase:  suggestCategoryUseCase,
	}
}

// Generate handles POST /insights requests.
func (c *InsightController) Generate(ctx *gin.Context) {
	var req dto.GenerateInsightsRequest
	if ctx.Request.ContentLength != 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error:   "Invalid request body",
				Code:    string(domainerror.ErrCodeInvalidRange),
				Details: err.Error(),
			})
			return
		}
	}

	output, err := c.generateInsightsUseCase.Execute(ctx.Request.Context(), insight.GenerateInsightsInput{
		Range: entity.ReportRange(req.Range),
	})
	if err != nil {
		var dashErr *domainerror.DashboardError
		if errors.As(err, &dashErr) && dashErr.Code == domainerror.ErrCodeInvalidRange {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: dashErr.Message,
				Code:  string(dashErr.Code),
			})
			return
		}

		slog.Error("Insight request failed", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "An internal error occurred",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToInsightResponse(output))
}

// SuggestCategory handles POST /insights/category-suggestion requests. A
// short note or any model failure yields a null suggestion.
func (c *InsightController) SuggestCategory(ctx *gin.Context) {
	var req dto.CategorySuggestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	output, err := c.suggestCategoryUseCase.Execute(ctx.Request.Context(), insight.SuggestCategoryInput{
		Note: req.Note,
	})
	if err != nil {
		slog.Error("Category suggestion request failed", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "An internal error occurred",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCategorySuggestionResponse(output))
}
