package dashboard

import (
	"context"

	"github.com/realtytrack/backend/internal/application/adapter"
	"github.com/realtytrack/backend/internal/domain/entity"
	domainerror "github.com/realtytrack/backend/internal/domain/error"
)

// GetCategoryBreakdownInput represents the input for a period breakdown.
type GetCategoryBreakdownInput struct {
	Range entity.ReportRange
}

// GetCategoryBreakdownUseCase handles the per-category breakdown of a reporting window.
type GetCategoryBreakdownUseCase struct {
	source TransactionSource
	clock  adapter.Clock
}

// NewGetCategoryBreakdownUseCase creates a new GetCategoryBreakdownUseCase instance.
func NewGetCategoryBreakdownUseCase(source TransactionSource, clock adapter.Clock) *GetCategoryBreakdownUseCase {
	return &GetCategoryBreakdownUseCase{
		source: source,
		clock:  clock,
	}
}

// Execute computes the breakdown for the requested range ending now.
func (uc *GetCategoryBreakdownUseCase) Execute(
	ctx context.Context,
	input GetCategoryBreakdownInput,
) (*PeriodBreakdown, error) {
	if input.Range == "" {
		input.Range = entity.ReportRangeMonth
	}
	if !input.Range.IsValid() {
		return nil, domainerror.NewDashboardError(
			domainerror.ErrCodeInvalidRange,
			"range must be: month, quarter, or year",
			domainerror.ErrInvalidRange,
		)
	}

	return ComputePeriodBreakdown(uc.source.Snapshot(), input.Range, uc.clock.Now())
}
