package dashboard

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/realtytrack/backend/internal/domain/entity"
)

// TrendPoint holds one calendar month of activity.
type TrendPoint struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
	Net     decimal.Decimal
}

// ComputeTrend buckets the transactions of the trailing trend window by
// month key. The window runs from TrendWindowStart(now) through now's
// calendar date inclusive.
//
// The result is sparse: a month without transactions has no key, which
// callers must read as zero activity.
func ComputeTrend(transactions []*entity.Transaction, now time.Time) map[string]TrendPoint {
	start := TrendWindowStart(now)
	end := entity.CalendarDate(now)

	trend := make(map[string]TrendPoint)
	for _, t := range transactions {
		if t.Date.Before(start) || t.Date.After(end) {
			continue
		}

		key := MonthKey(t.Date)
		point, ok := trend[key]
		if !ok {
			point = TrendPoint{Income: decimal.Zero, Expense: decimal.Zero, Net: decimal.Zero}
		}

		if t.Type == entity.TransactionTypeIncome {
			point.Income = point.Income.Add(t.Amount)
		} else {
			point.Expense = point.Expense.Add(t.Amount)
		}
		point.Net = point.Net.Add(t.SignedAmount())
		trend[key] = point
	}

	return trend
}

// SortedMonthKeys returns the trend keys in chronological order.
func SortedMonthKeys(trend map[string]TrendPoint) []string {
	keys := make([]string, 0, len(trend))
	for k := range trend {
		keys = append(keys, k)
	}
	// YYYY-MM sorts lexically in date order.
	sort.Strings(keys)
	return keys
}
