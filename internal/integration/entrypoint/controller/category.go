// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/realtytrack/backend/internal/application/usecase/category"
	"github.com/realtytrack/backend/internal/integration/entrypoint/dto"
)

// CategoryController handles category registry endpoints.
type CategoryController struct {
	listCategoriesUseCase *category.ListCategoriesUseCase
}

// NewCategoryController creates a new category controller instance.
func NewCategoryController(listCategoriesUseCase *category.ListCategoriesUseCase) *CategoryController {
	return &CategoryController{
		listCategoriesUseCase: listCategoriesUseCase,
	}
}

// List handles GET /categories requests.
func (c *CategoryController) List(ctx *gin.Context) {
	output, err := c.listCategoriesUseCase.Execute(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "An internal error occurred",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCategoryListResponse(output))
}
