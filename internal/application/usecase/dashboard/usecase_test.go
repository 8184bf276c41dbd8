package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/realtytrack/backend/internal/application/adapter"
	"github.com/realtytrack/backend/internal/domain/entity"
	domainerror "github.com/realtytrack/backend/internal/domain/error"
)

type staticSource []*entity.Transaction

func (s staticSource) Snapshot() []*entity.Transaction { return s }

type fakeRenderer struct {
	series adapter.TrendSeries
	err    error
}

func (f *fakeRenderer) RenderTrend(series adapter.TrendSeries) ([]byte, error) {
	f.series = series
	if f.err != nil {
		return nil, f.err
	}
	return []byte("png"), nil
}

func fixedClock(value string) adapter.Clock {
	return adapter.ClockFunc(func() time.Time { return day(value) })
}

func TestGetCategoryBreakdownUseCase(t *testing.T) {
	source := staticSource{
		tx("2024-03-02", "10", entity.TransactionTypeExpense, "Loans", "Car Loan"),
	}
	uc := NewGetCategoryBreakdownUseCase(source, fixedClock("2024-03-15"))

	t.Run("defaults to month", func(t *testing.T) {
		got, err := uc.Execute(context.Background(), GetCategoryBreakdownInput{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Range != entity.ReportRangeMonth {
			t.Errorf("Range = %s, want month", got.Range)
		}
		if got.StartDate.Format(entity.DateLayout) != "2024-03-01" {
			t.Errorf("StartDate = %s", got.StartDate.Format(entity.DateLayout))
		}
	})

	t.Run("rejects unknown range", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), GetCategoryBreakdownInput{Range: "week"})

		var dashErr *domainerror.DashboardError
		if !errors.As(err, &dashErr) {
			t.Fatalf("expected DashboardError, got %v", err)
		}
		if dashErr.Code != domainerror.ErrCodeInvalidRange {
			t.Errorf("Code = %s, want %s", dashErr.Code, domainerror.ErrCodeInvalidRange)
		}
	})
}

func TestGetTrendsUseCase(t *testing.T) {
	source := staticSource{
		tx("2024-03-01", "5", entity.TransactionTypeExpense, "Loans", "Car Loan"),
		tx("2023-10-01", "8", entity.TransactionTypeIncome, "Galaxy", "Part Profits"),
		tx("2024-01-01", "2", entity.TransactionTypeIncome, "Galaxy", "Part Profits"),
	}
	uc := NewGetTrendsUseCase(source, fixedClock("2024-03-15"))

	got, err := uc.Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"2023-10", "2024-01", "2024-03"}
	if len(got.Months) != len(want) {
		t.Fatalf("got %d months, want %d", len(got.Months), len(want))
	}
	for i, m := range got.Months {
		if m.Month != want[i] {
			t.Errorf("Months[%d] = %s, want %s", i, m.Month, want[i])
		}
	}
	if got.StartDate.Format(entity.DateLayout) != "2023-09-01" {
		t.Errorf("StartDate = %s", got.StartDate.Format(entity.DateLayout))
	}
}

func TestRenderTrendChartUseCase(t *testing.T) {
	t.Run("renders populated months", func(t *testing.T) {
		source := staticSource{
			tx("2024-03-01", "5", entity.TransactionTypeExpense, "Loans", "Car Loan"),
		}
		renderer := &fakeRenderer{}
		uc := NewRenderTrendChartUseCase(NewGetTrendsUseCase(source, fixedClock("2024-03-15")), renderer)

		png, err := uc.Execute(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(png) != "png" {
			t.Errorf("unexpected image %q", png)
		}
		want := []string{"2023-09", "2023-10", "2023-11", "2023-12", "2024-01", "2024-02", "2024-03"}
		if len(renderer.series.Months) != len(want) {
			t.Fatalf("got %d chart months, want %d: %+v", len(renderer.series.Months), len(want), renderer.series.Months)
		}
		for i, month := range want {
			if renderer.series.Months[i] != month {
				t.Errorf("Months[%d] = %s, want %s", i, renderer.series.Months[i], month)
			}
		}
		for i := 0; i < len(want)-1; i++ {
			if !renderer.series.Expense[i].IsZero() || !renderer.series.Net[i].IsZero() {
				t.Errorf("month %s should be empty, got expense %s net %s",
					want[i], renderer.series.Expense[i], renderer.series.Net[i])
			}
		}
		if got := renderer.series.Expense[len(want)-1].String(); got != "5" {
			t.Errorf("March expense = %s, want 5", got)
		}
		if got := renderer.series.Net[len(want)-1].String(); got != "-5" {
			t.Errorf("March net = %s, want -5", got)
		}
	})

	t.Run("no data", func(t *testing.T) {
		uc := NewRenderTrendChartUseCase(NewGetTrendsUseCase(staticSource{}, fixedClock("2024-03-15")), &fakeRenderer{})

		_, err := uc.Execute(context.Background())
		if !errors.Is(err, domainerror.ErrChartUnavailable) {
			t.Errorf("expected ErrChartUnavailable, got %v", err)
		}
	})

	t.Run("renderer failure", func(t *testing.T) {
		source := staticSource{
			tx("2024-03-01", "5", entity.TransactionTypeExpense, "Loans", "Car Loan"),
		}
		uc := NewRenderTrendChartUseCase(
			NewGetTrendsUseCase(source, fixedClock("2024-03-15")),
			&fakeRenderer{err: errors.New("font missing")},
		)

		_, err := uc.Execute(context.Background())
		var dashErr *domainerror.DashboardError
		if !errors.As(err, &dashErr) || dashErr.Code != domainerror.ErrCodeDashboardInternalError {
			t.Errorf("expected internal DashboardError, got %v", err)
		}
	})
}
