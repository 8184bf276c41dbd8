package dashboard

import (
	"context"

	"github.com/realtytrack/backend/internal/domain/entity"
)

// GetSummaryOutput represents the all-time totals of the ledger.
type GetSummaryOutput struct {
	Summary          entity.FinancialSummary
	TransactionCount int
}

// GetSummaryUseCase handles the all-time financial summary.
type GetSummaryUseCase struct {
	source TransactionSource
}

// NewGetSummaryUseCase creates a new GetSummaryUseCase instance.
func NewGetSummaryUseCase(source TransactionSource) *GetSummaryUseCase {
	return &GetSummaryUseCase{source: source}
}

// Execute totals every transaction in the ledger.
func (uc *GetSummaryUseCase) Execute(ctx context.Context) (*GetSummaryOutput, error) {
	transactions := uc.source.Snapshot()
	return &GetSummaryOutput{
		Summary:          ComputeSummary(transactions),
		TransactionCount: len(transactions),
	}, nil
}
