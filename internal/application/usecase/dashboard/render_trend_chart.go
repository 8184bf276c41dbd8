package dashboard

import (
	"context"
	"fmt"

	"github.com/realtytrack/backend/internal/application/adapter"
	domainerror "github.com/realtytrack/backend/internal/domain/error"
)

// RenderTrendChartUseCase draws the monthly trend as a PNG.
type RenderTrendChartUseCase struct {
	trends   *GetTrendsUseCase
	renderer adapter.ChartRenderer
}

// NewRenderTrendChartUseCase creates a new RenderTrendChartUseCase instance.
func NewRenderTrendChartUseCase(trends *GetTrendsUseCase, renderer adapter.ChartRenderer) *RenderTrendChartUseCase {
	return &RenderTrendChartUseCase{
		trends:   trends,
		renderer: renderer,
	}
}

// Execute returns the chart image bytes.
func (uc *RenderTrendChartUseCase) Execute(ctx context.Context) ([]byte, error) {
	output, err := uc.trends.Execute(ctx)
	if err != nil {
		return nil, err
	}
	if len(output.Months) == 0 {
		return nil, domainerror.NewDashboardError(
			domainerror.ErrCodeChartUnavailable,
			"no transactions in the last six months",
			domainerror.ErrChartUnavailable,
		)
	}

	png, err := uc.renderer.RenderTrend(output.Series())
	if err != nil {
		return nil, domainerror.NewDashboardError(
			domainerror.ErrCodeDashboardInternalError,
			"failed to render trend chart",
			fmt.Errorf("render trend: %w", err),
		)
	}
	return png, nil
}
