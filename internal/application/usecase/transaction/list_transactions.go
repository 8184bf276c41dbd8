package transaction

import (
	"context"
	"slices"
	"strings"

	"github.com/realtytrack/backend/internal/application/usecase/dashboard"
	"github.com/realtytrack/backend/internal/domain/entity"
)

// AllCategories is the category filter value that matches every category.
const AllCategories = "All"

// ListTransactionsInput represents the filters of the transaction list.
type ListTransactionsInput struct {
	Search   string
	Category string
}

// ListTransactionsOutput represents the filtered list and its totals.
type ListTransactionsOutput struct {
	Transactions []*entity.Transaction
	Summary      entity.FinancialSummary
}

// ListTransactionsUseCase handles the filtered transaction list.
type ListTransactionsUseCase struct {
	ledger Ledger
}

// NewListTransactionsUseCase creates a new ListTransactionsUseCase instance.
func NewListTransactionsUseCase(ledger Ledger) *ListTransactionsUseCase {
	return &ListTransactionsUseCase{
		ledger: ledger,
	}
}

// Execute returns the matching transactions, newest date first.
func (uc *ListTransactionsUseCase) Execute(ctx context.Context, input ListTransactionsInput) (*ListTransactionsOutput, error) {
	filtered := FilterTransactions(uc.ledger.Snapshot(), input)
	return &ListTransactionsOutput{
		Transactions: filtered,
		Summary:      dashboard.ComputeSummary(filtered),
	}, nil
}

// FilterTransactions keeps the transactions whose notes (case-insensitively)
// or amount text contain the search term and whose category matches, sorted
// by date descending. Transactions on the same date keep their ledger order.
func FilterTransactions(transactions []*entity.Transaction, input ListTransactionsInput) []*entity.Transaction {
	search := strings.ToLower(input.Search)

	filtered := make([]*entity.Transaction, 0, len(transactions))
	for _, t := range transactions {
		if input.Category != "" && input.Category != AllCategories && t.Category != input.Category {
			continue
		}
		if !strings.Contains(strings.ToLower(t.Notes), search) &&
			!strings.Contains(t.Amount.String(), input.Search) {
			continue
		}
		filtered = append(filtered, t)
	}

	slices.SortStableFunc(filtered, func(a, b *entity.Transaction) int {
		return b.Date.Compare(a.Date)
	})
	return filtered
}
