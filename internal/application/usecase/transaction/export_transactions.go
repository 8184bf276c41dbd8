package transaction

import (
	"context"
	"strings"

	"github.com/realtytrack/backend/internal/application/adapter"
	"github.com/realtytrack/backend/internal/domain/entity"
)

// csvHeader is the first line of every export.
const csvHeader = "Date,Type,Category,Subcategory,Amount,Notes"

// ExportTransactionsOutput represents a CSV export ready for download.
type ExportTransactionsOutput struct {
	Filename string
	Content  []byte
	Rows     int
}

// ExportTransactionsUseCase handles CSV export of the filtered list.
type ExportTransactionsUseCase struct {
	ledger Ledger
	clock  adapter.Clock
}

// NewExportTransactionsUseCase creates a new ExportTransactionsUseCase instance.
func NewExportTransactionsUseCase(ledger Ledger, clock adapter.Clock) *ExportTransactionsUseCase {
	return &ExportTransactionsUseCase{
		ledger: ledger,
		clock:  clock,
	}
}

// Execute exports the transactions matching the list filters.
func (uc *ExportTransactionsUseCase) Execute(ctx context.Context, input ListTransactionsInput) (*ExportTransactionsOutput, error) {
	filtered := FilterTransactions(uc.ledger.Snapshot(), input)
	return &ExportTransactionsOutput{
		Filename: "realty_track_export_" + uc.clock.Now().UTC().Format(entity.DateLayout) + ".csv",
		Content:  []byte(FormatCSV(filtered)),
		Rows:     len(filtered),
	}, nil
}

// FormatCSV renders the transactions in export order. Text columns are
// always quoted; type and amount never are. Lines are joined with "\n" and
// there is no trailing newline.
func FormatCSV(transactions []*entity.Transaction) string {
	var b strings.Builder
	b.WriteString(csvHeader)

	for _, t := range transactions {
		b.WriteByte('\n')
		b.WriteString(quote(t.DateString()))
		b.WriteByte(',')
		b.WriteString(string(t.Type))
		b.WriteByte(',')
		b.WriteString(quote(t.Category))
		b.WriteByte(',')
		b.WriteString(quote(t.Subcategory))
		b.WriteByte(',')
		b.WriteString(t.Amount.String())
		b.WriteByte(',')
		b.WriteString(quote(t.Notes))
	}
	return b.String()
}

func quote(field string) string {
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}
