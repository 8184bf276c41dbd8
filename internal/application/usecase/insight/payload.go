package insight

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/realtytrack/backend/internal/application/usecase/dashboard"
	"github.com/realtytrack/backend/internal/domain/entity"
)

// Payload is the aggregated data sent to the model in place of raw transactions.
type Payload struct {
	AnalysisPeriod            entity.ReportRange        `json:"analysisPeriod"`
	StartDate                 string                    `json:"startDate"`
	TotalTransactionsInPeriod int                       `json:"totalTransactionsInPeriod"`
	Breakdown                 map[string]CategoryData   `json:"breakdown"`
	SixMonthTrend             map[string]MonthTrendData `json:"sixMonthTrend"`
}

// CategoryData is one breakdown bucket with amounts as JSON numbers.
type CategoryData struct {
	Income           json.Number            `json:"income"`
	Expense          json.Number            `json:"expense"`
	TopSubcategories map[string]json.Number `json:"topSubcategories"`
}

// MonthTrendData is one trend month with amounts as JSON numbers.
type MonthTrendData struct {
	Income  json.Number `json:"income"`
	Expense json.Number `json:"expense"`
	Net     json.Number `json:"net"`
}

// BuildPayload aggregates the transactions for the range ending at now.
func BuildPayload(transactions []*entity.Transaction, r entity.ReportRange, now time.Time) (*Payload, error) {
	breakdown, err := dashboard.ComputePeriodBreakdown(transactions, r, now)
	if err != nil {
		return nil, err
	}
	trend := dashboard.ComputeTrend(transactions, now)

	payload := &Payload{
		AnalysisPeriod:            r,
		StartDate:                 breakdown.StartDate.Format(entity.DateLayout),
		TotalTransactionsInPeriod: breakdown.TransactionCount,
		Breakdown:                 make(map[string]CategoryData, len(breakdown.Categories)),
		SixMonthTrend:             make(map[string]MonthTrendData, len(trend)),
	}

	for name, totals := range breakdown.Categories {
		subs := make(map[string]json.Number, len(totals.TopSubcategories))
		for sub, amount := range totals.TopSubcategories {
			subs[sub] = number(amount)
		}
		payload.Breakdown[name] = CategoryData{
			Income:           number(totals.Income),
			Expense:          number(totals.Expense),
			TopSubcategories: subs,
		}
	}

	for month, point := range trend {
		payload.SixMonthTrend[month] = MonthTrendData{
			Income:  number(point.Income),
			Expense: number(point.Expense),
			Net:     number(point.Net),
		}
	}

	return payload, nil
}

// JSON renders the payload indented for the prompt.
func (p *Payload) JSON() (string, error) {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal insight payload: %w", err)
	}
	return string(data), nil
}

func number(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}
