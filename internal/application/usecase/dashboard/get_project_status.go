package dashboard

import (
	"context"

	"github.com/realtytrack/backend/internal/domain/entity"
)

// GetProjectStatusUseCase handles the per-project net position report.
type GetProjectStatusUseCase struct {
	source   TransactionSource
	registry *entity.CategoryRegistry
}

// NewGetProjectStatusUseCase creates a new GetProjectStatusUseCase instance.
func NewGetProjectStatusUseCase(source TransactionSource, registry *entity.CategoryRegistry) *GetProjectStatusUseCase {
	return &GetProjectStatusUseCase{
		source:   source,
		registry: registry,
	}
}

// Execute lists every registry project with its all-time net.
func (uc *GetProjectStatusUseCase) Execute(ctx context.Context) ([]ProjectStatus, error) {
	return ComputeProjectStatus(uc.source.Snapshot(), uc.registry), nil
}
