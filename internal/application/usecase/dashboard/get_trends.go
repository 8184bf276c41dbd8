package dashboard

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/realtytrack/backend/internal/application/adapter"
	"github.com/realtytrack/backend/internal/domain/entity"
)

// MonthTrend is one populated month of the trend, keyed YYYY-MM.
type MonthTrend struct {
	Month string
	TrendPoint
}

// GetTrendsOutput represents the trailing six-month trend.
type GetTrendsOutput struct {
	StartDate time.Time
	EndDate   time.Time
	Months    []MonthTrend // Chronological, populated months only
}

// Series converts the trend to a chart series covering every month of the
// window. Months without transactions are plotted as zero.
func (o *GetTrendsOutput) Series() adapter.TrendSeries {
	populated := make(map[string]TrendPoint, len(o.Months))
	for _, m := range o.Months {
		populated[m.Month] = m.TrendPoint
	}

	series := adapter.TrendSeries{}
	last := MonthKey(o.EndDate)
	for month := o.StartDate; ; month = month.AddDate(0, 1, 0) {
		key := MonthKey(month)
		point, ok := populated[key]
		if !ok {
			point = TrendPoint{Income: decimal.Zero, Expense: decimal.Zero, Net: decimal.Zero}
		}
		series.Months = append(series.Months, key)
		series.Income = append(series.Income, point.Income)
		series.Expense = append(series.Expense, point.Expense)
		series.Net = append(series.Net, point.Net)
		if key >= last {
			break
		}
	}
	return series
}

// GetTrendsUseCase handles the monthly trend report.
type GetTrendsUseCase struct {
	source TransactionSource
	clock  adapter.Clock
}

// NewGetTrendsUseCase creates a new GetTrendsUseCase instance.
func NewGetTrendsUseCase(source TransactionSource, clock adapter.Clock) *GetTrendsUseCase {
	return &GetTrendsUseCase{
		source: source,
		clock:  clock,
	}
}

// Execute buckets the ledger into months for the window ending today.
func (uc *GetTrendsUseCase) Execute(ctx context.Context) (*GetTrendsOutput, error) {
	now := uc.clock.Now()
	trend := ComputeTrend(uc.source.Snapshot(), now)

	output := &GetTrendsOutput{
		StartDate: TrendWindowStart(now),
		EndDate:   entity.CalendarDate(now),
		Months:    make([]MonthTrend, 0, len(trend)),
	}
	for _, key := range SortedMonthKeys(trend) {
		output.Months = append(output.Months, MonthTrend{Month: key, TrendPoint: trend[key]})
	}
	return output, nil
}
