// Package charts renders report charts as PNG images.
package charts

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/wcharczuk/go-chart/v2"

	"github.com/realtytrack/backend/internal/application/adapter"
)

// TrendChartRenderer draws the monthly income, expense and net lines.
type TrendChartRenderer struct {
	width  int
	height int
}

// NewTrendChartRenderer creates a new TrendChartRenderer.
func NewTrendChartRenderer() *TrendChartRenderer {
	return &TrendChartRenderer{width: 1200, height: 600}
}

// RenderTrend implements adapter.ChartRenderer.
func (r *TrendChartRenderer) RenderTrend(series adapter.TrendSeries) ([]byte, error) {
	n := len(series.Months)
	if n == 0 {
		return nil, errors.New("trend series is empty")
	}
	if len(series.Income) != n || len(series.Expense) != n || len(series.Net) != n {
		return nil, fmt.Errorf("trend series lengths differ: %d months", n)
	}

	// The x range follows the tick span, so unlabeled ticks half a slot
	// outside the months keep a single month from giving a zero-width range.
	xValues := make([]float64, n)
	ticks := make([]chart.Tick, 0, n+2)
	ticks = append(ticks, chart.Tick{Value: -0.5})
	for i, month := range series.Months {
		xValues[i] = float64(i)
		ticks = append(ticks, chart.Tick{Value: float64(i), Label: month})
	}
	ticks = append(ticks, chart.Tick{Value: float64(n) - 0.5})
	income := floats(series.Income)
	expense := floats(series.Expense)
	net := floats(series.Net)

	graph := chart.Chart{
		Width:  r.width,
		Height: r.height,
		Background: chart.Style{
			Padding: chart.Box{
				Top:    50,
				Left:   50,
				Right:  50,
				Bottom: 50,
			},
			FillColor: chart.ColorWhite,
		},
		XAxis: chart.XAxis{
			Ticks: ticks,
			Style: chart.Style{
				FontSize:  12,
				FontColor: chart.ColorBlack,
			},
		},
		YAxis: chart.YAxis{
			Range: valueRange(income, expense, net),
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("₹%.0f", v.(float64))
			},
			Style: chart.Style{
				FontSize:  12,
				FontColor: chart.ColorBlack,
			},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Income",
				XValues: xValues,
				YValues: income,
				Style: chart.Style{
					StrokeColor: chart.ColorGreen,
					StrokeWidth: 2,
					DotWidth:    4,
					DotColor:    chart.ColorGreen,
				},
			},
			chart.ContinuousSeries{
				Name:    "Expense",
				XValues: xValues,
				YValues: expense,
				Style: chart.Style{
					StrokeColor: chart.ColorRed,
					StrokeWidth: 2,
					DotWidth:    4,
					DotColor:    chart.ColorRed,
				},
			},
			chart.ContinuousSeries{
				Name:    "Net",
				XValues: xValues,
				YValues: net,
				Style: chart.Style{
					StrokeColor:     chart.ColorBlue,
					StrokeWidth:     3,
					StrokeDashArray: []float64{5.0, 5.0},
				},
			},
		},
	}

	graph.Elements = []chart.Renderable{
		chart.Legend(&graph, chart.Style{
			FontSize:  12,
			FontColor: chart.ColorBlack,
		}),
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("failed to render trend chart: %w", err)
	}
	return buffer.Bytes(), nil
}

func floats(values []decimal.Decimal) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = v.InexactFloat64()
	}
	return out
}

// valueRange spans every value and zero, with 10% headroom.
func valueRange(series ...[]float64) *chart.ContinuousRange {
	lo, hi := 0.0, 0.0
	for _, values := range series {
		for _, v := range values {
			lo = min(lo, v)
			hi = max(hi, v)
		}
	}
	if hi == lo {
		hi = lo + 1
	}
	pad := (hi - lo) * 0.1
	return &chart.ContinuousRange{Min: lo - pad, Max: hi + pad}
}
