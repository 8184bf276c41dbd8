// Package entity defines the core business entities for the domain layer.
package entity

// ReportRange is the symbolic reporting window of a period breakdown.
type ReportRange string

const (
	ReportRangeMonth   ReportRange = "month"
	ReportRangeQuarter ReportRange = "quarter"
	ReportRangeYear    ReportRange = "year"
)

// IsValid reports whether r is a supported reporting window.
func (r ReportRange) IsValid() bool {
	switch r {
	case ReportRangeMonth, ReportRangeQuarter, ReportRangeYear:
		return true
	}
	return false
}

// CategorySuggestion is a validated category guess for a transaction note.
type CategorySuggestion struct {
	Category    string
	Subcategory string
	Type        TransactionType
}
