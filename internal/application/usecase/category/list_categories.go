// Package category contains category-related use cases.
package category

import (
	"context"

	"github.com/realtytrack/backend/internal/domain/entity"
)

// ListCategoriesOutput represents the category registry in declaration order.
type ListCategoriesOutput struct {
	Categories []entity.CategoryDefinition
	Projects   []string
}

// ListCategoriesUseCase handles listing the category registry.
type ListCategoriesUseCase struct {
	registry *entity.CategoryRegistry
}

// NewListCategoriesUseCase creates a new ListCategoriesUseCase instance.
func NewListCategoriesUseCase(registry *entity.CategoryRegistry) *ListCategoriesUseCase {
	return &ListCategoriesUseCase{
		registry: registry,
	}
}

// Execute returns every category definition.
func (uc *ListCategoriesUseCase) Execute(ctx context.Context) (*ListCategoriesOutput, error) {
	return &ListCategoriesOutput{
		Categories: uc.registry.Definitions(),
		Projects:   uc.registry.Projects(),
	}, nil
}
