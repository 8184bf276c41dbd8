package adapter

import "github.com/shopspring/decimal"

// TrendSeries is the chronological month-by-month trend handed to a chart renderer.
type TrendSeries struct {
	Months  []string
	Income  []decimal.Decimal
	Expense []decimal.Decimal
	Net     []decimal.Decimal
}

// ChartRenderer draws report charts.
type ChartRenderer interface {
	// RenderTrend returns a PNG image of the series.
	RenderTrend(series TrendSeries) ([]byte, error)
}
