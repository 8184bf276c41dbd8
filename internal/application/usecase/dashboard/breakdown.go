package dashboard

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/realtytrack/backend/internal/domain/entity"
)

// CategoryTotals accumulates one category's activity within a period.
// TopSubcategories maps subcategory name to accumulated expense and is used
// to surface the major cost centers.
type CategoryTotals struct {
	Income           decimal.Decimal
	Expense          decimal.Decimal
	TopSubcategories map[string]decimal.Decimal
}

// PeriodBreakdown is the per-category view of a reporting window.
type PeriodBreakdown struct {
	Range            entity.ReportRange
	StartDate        time.Time
	TransactionCount int
	Categories       map[string]*CategoryTotals
}

// ComputePeriodBreakdown buckets the transactions dated on or after the
// range's start date by category. Category and subcategory labels are kept
// exactly as stored.
func ComputePeriodBreakdown(
	transactions []*entity.Transaction,
	r entity.ReportRange,
	now time.Time,
) (*PeriodBreakdown, error) {
	start, err := RangeStartDate(r, now)
	if err != nil {
		return nil, err
	}

	breakdown := &PeriodBreakdown{
		Range:      r,
		StartDate:  start,
		Categories: make(map[string]*CategoryTotals),
	}

	for _, t := range transactions {
		if t.Date.Before(start) {
			continue
		}
		breakdown.TransactionCount++

		bucket, ok := breakdown.Categories[t.Category]
		if !ok {
			bucket = &CategoryTotals{
				Income:           decimal.Zero,
				Expense:          decimal.Zero,
				TopSubcategories: make(map[string]decimal.Decimal),
			}
			breakdown.Categories[t.Category] = bucket
		}

		if t.Type == entity.TransactionTypeIncome {
			bucket.Income = bucket.Income.Add(t.Amount)
			continue
		}

		bucket.Expense = bucket.Expense.Add(t.Amount)
		sub := t.Subcategory
		if sub == "" {
			sub = entity.OtherSubcategory
		}
		bucket.TopSubcategories[sub] = bucket.TopSubcategories[sub].Add(t.Amount)
	}

	return breakdown, nil
}
