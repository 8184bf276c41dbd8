// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"github.com/realtytrack/backend/internal/application/usecase/category"
)

// CategoryResponse represents a single registry category in API responses.
type CategoryResponse struct {
	Name          string   `json:"name"`
	Subcategories []string `json:"subcategories"`
	DefaultType   *string  `json:"default_type,omitempty"`
	Project       bool     `json:"project"`
}

// CategoryListResponse represents the response for listing categories.
type CategoryListResponse struct {
	Categories []CategoryResponse `json:"categories"`
	Projects   []string           `json:"projects"`
}

// ToCategoryListResponse converts a ListCategoriesOutput to CategoryListResponse.
func ToCategoryListResponse(output *category.ListCategoriesOutput) CategoryListResponse {
	categories := make([]CategoryResponse, len(output.Categories))
	for i, def := range output.Categories {
		categories[i] = CategoryResponse{
			Name:          def.Name,
			Subcategories: def.Subcategories,
			Project:       def.Project,
		}
		if def.DefaultType != nil {
			t := string(*def.DefaultType)
			categories[i].DefaultType = &t
		}
	}

	projects := output.Projects
	if projects == nil {
		projects = []string{}
	}

	return CategoryListResponse{
		Categories: categories,
		Projects:   projects,
	}
}
