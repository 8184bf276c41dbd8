package dashboard

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/realtytrack/backend/internal/domain/entity"
)

func tx(date, amount string, txType entity.TransactionType, category, subcategory string) *entity.Transaction {
	d, err := time.Parse(entity.DateLayout, date)
	if err != nil {
		panic(err)
	}
	return &entity.Transaction{
		ID:          uuid.New(),
		Date:        d,
		Amount:      decimal.RequireFromString(amount),
		Type:        txType,
		Category:    category,
		Subcategory: subcategory,
	}
}

func day(value string) time.Time {
	d, err := time.Parse(entity.DateLayout, value)
	if err != nil {
		panic(err)
	}
	return d
}

func assertDecimal(t *testing.T, name string, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(decimal.RequireFromString(want)) {
		t.Errorf("%s = %s, want %s", name, got, want)
	}
}

func TestComputeSummary(t *testing.T) {
	tests := []struct {
		name        string
		input       []*entity.Transaction
		wantIncome  string
		wantExpense string
		wantNet     string
	}{
		{
			name:        "empty collection",
			input:       nil,
			wantIncome:  "0",
			wantExpense: "0",
			wantNet:     "0",
		},
		{
			name: "mixed types",
			input: []*entity.Transaction{
				tx("2024-01-05", "1000", entity.TransactionTypeIncome, "Galaxy", "Investor Funds"),
				tx("2024-01-06", "250.50", entity.TransactionTypeExpense, "Galaxy", "Labor Cost"),
				tx("2024-02-01", "49.50", entity.TransactionTypeExpense, "Loans", "Car Loan"),
			},
			wantIncome:  "1000",
			wantExpense: "300",
			wantNet:     "700",
		},
		{
			name: "expenses exceed income",
			input: []*entity.Transaction{
				tx("2024-01-05", "10", entity.TransactionTypeIncome, "Investments", "SIP"),
				tx("2024-01-06", "35", entity.TransactionTypeExpense, "Insurance", "Mediclaim"),
			},
			wantIncome:  "10",
			wantExpense: "35",
			wantNet:     "-25",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeSummary(tt.input)
			assertDecimal(t, "TotalIncome", got.TotalIncome, tt.wantIncome)
			assertDecimal(t, "TotalExpense", got.TotalExpense, tt.wantExpense)
			assertDecimal(t, "NetBalance", got.NetBalance, tt.wantNet)
		})
	}
}

func TestComputeSummary_OrderIndependent(t *testing.T) {
	a := tx("2024-01-05", "0.1", entity.TransactionTypeIncome, "Galaxy", "Other")
	b := tx("2024-01-06", "0.2", entity.TransactionTypeIncome, "Galaxy", "Other")
	c := tx("2024-01-07", "0.3", entity.TransactionTypeExpense, "Galaxy", "Other")

	first := ComputeSummary([]*entity.Transaction{a, b, c})
	second := ComputeSummary([]*entity.Transaction{c, b, a})

	if !first.NetBalance.Equal(second.NetBalance) {
		t.Errorf("net differs by order: %s vs %s", first.NetBalance, second.NetBalance)
	}
	assertDecimal(t, "NetBalance", first.NetBalance, "0")
}

func TestRangeStartDate(t *testing.T) {
	tests := []struct {
		name  string
		r     entity.ReportRange
		now   time.Time
		want  string
		isErr bool
	}{
		{name: "month", r: entity.ReportRangeMonth, now: day("2024-03-15"), want: "2024-03-01"},
		{name: "quarter", r: entity.ReportRangeQuarter, now: day("2024-03-15"), want: "2023-12-15"},
		{name: "year", r: entity.ReportRangeYear, now: day("2024-03-15"), want: "2023-03-15"},
		{name: "quarter clamps to leap day", r: entity.ReportRangeQuarter, now: day("2024-05-31"), want: "2024-02-29"},
		{name: "quarter clamps to short month", r: entity.ReportRangeQuarter, now: day("2023-07-31"), want: "2023-04-30"},
		{name: "year from leap day", r: entity.ReportRangeYear, now: day("2024-02-29"), want: "2023-02-28"},
		{
			name: "time of day is ignored",
			r:    entity.ReportRangeMonth,
			now:  time.Date(2024, 3, 15, 23, 59, 0, 0, time.UTC),
			want: "2024-03-01",
		},
		{name: "unknown range", r: entity.ReportRange("week"), now: day("2024-03-15"), isErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RangeStartDate(tt.r, tt.now)
			if tt.isErr {
				if err == nil {
					t.Fatalf("expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Format(entity.DateLayout) != tt.want {
				t.Errorf("start = %s, want %s", got.Format(entity.DateLayout), tt.want)
			}
		})
	}
}

func TestComputePeriodBreakdown(t *testing.T) {
	now := day("2024-03-15")

	t.Run("month window excludes earlier dates", func(t *testing.T) {
		input := []*entity.Transaction{
			tx("2024-02-28", "10", entity.TransactionTypeExpense, "Loans", "Home Loan"),
			tx("2024-03-01", "20", entity.TransactionTypeExpense, "Loans", "Home Loan"),
		}

		got, err := ComputePeriodBreakdown(input, entity.ReportRangeMonth, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.TransactionCount != 1 {
			t.Errorf("TransactionCount = %d, want 1", got.TransactionCount)
		}
		assertDecimal(t, "Loans expense", got.Categories["Loans"].Expense, "20")
	})

	t.Run("project example", func(t *testing.T) {
		input := []*entity.Transaction{
			tx("2024-03-10", "1200", entity.TransactionTypeIncome, "Galaxy", "Investor Funds"),
			tx("2024-03-12", "500", entity.TransactionTypeExpense, "Galaxy", "Labor Cost"),
		}

		got, err := ComputePeriodBreakdown(input, entity.ReportRangeMonth, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		galaxy, ok := got.Categories["Galaxy"]
		if !ok {
			t.Fatal("Galaxy bucket missing")
		}
		assertDecimal(t, "income", galaxy.Income, "1200")
		assertDecimal(t, "expense", galaxy.Expense, "500")
		if len(galaxy.TopSubcategories) != 1 {
			t.Fatalf("TopSubcategories = %v, want only Labor Cost", galaxy.TopSubcategories)
		}
		assertDecimal(t, "Labor Cost", galaxy.TopSubcategories["Labor Cost"], "500")
	})

	t.Run("income never reaches subcategory totals", func(t *testing.T) {
		input := []*entity.Transaction{
			tx("2024-03-02", "75", entity.TransactionTypeIncome, "Investments", "Stocks"),
		}

		got, err := ComputePeriodBreakdown(input, entity.ReportRangeQuarter, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if subs := got.Categories["Investments"].TopSubcategories; len(subs) != 0 {
			t.Errorf("TopSubcategories = %v, want empty", subs)
		}
	})

	t.Run("empty subcategory is reported as Other", func(t *testing.T) {
		input := []*entity.Transaction{
			tx("2024-03-02", "5", entity.TransactionTypeExpense, "Regular Expenses", ""),
		}

		got, err := ComputePeriodBreakdown(input, entity.ReportRangeMonth, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		assertDecimal(t, "Other", got.Categories["Regular Expenses"].TopSubcategories[entity.OtherSubcategory], "5")
	})

	t.Run("bucket sums match window summary", func(t *testing.T) {
		input := []*entity.Transaction{
			tx("2023-11-30", "999", entity.TransactionTypeIncome, "Galaxy", "Part Profits"),
			tx("2023-12-15", "100", entity.TransactionTypeIncome, "Galaxy", "Part Profits"),
			tx("2024-01-10", "40", entity.TransactionTypeExpense, "Bouganvilla", "Labor Cost"),
			tx("2024-02-20", "60", entity.TransactionTypeExpense, "Insurance", "LIC Policy"),
		}

		got, err := ComputePeriodBreakdown(input, entity.ReportRangeQuarter, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		income, expense := decimal.Zero, decimal.Zero
		for _, b := range got.Categories {
			income = income.Add(b.Income)
			expense = expense.Add(b.Expense)
		}
		window := ComputeSummary(input[1:])
		if !income.Equal(window.TotalIncome) || !expense.Equal(window.TotalExpense) {
			t.Errorf("buckets = (%s, %s), window summary = (%s, %s)",
				income, expense, window.TotalIncome, window.TotalExpense)
		}
		if got.TransactionCount != 3 {
			t.Errorf("TransactionCount = %d, want 3", got.TransactionCount)
		}
	})

	t.Run("unknown range", func(t *testing.T) {
		if _, err := ComputePeriodBreakdown(nil, entity.ReportRange("decade"), now); err == nil {
			t.Error("expected error for unknown range")
		}
	})
}

func TestComputeTrend(t *testing.T) {
	now := day("2024-03-15")

	input := []*entity.Transaction{
		tx("2023-08-31", "1", entity.TransactionTypeIncome, "Galaxy", "Other"),
		tx("2023-09-01", "100", entity.TransactionTypeIncome, "Galaxy", "Investor Funds"),
		tx("2023-09-20", "30", entity.TransactionTypeExpense, "Galaxy", "Labor Cost"),
		tx("2024-03-15", "50", entity.TransactionTypeExpense, "Loans", "Home Loan"),
		tx("2024-03-16", "7", entity.TransactionTypeExpense, "Loans", "Home Loan"),
	}

	got := ComputeTrend(input, now)

	if len(got) != 2 {
		t.Fatalf("got %d months, want 2: %v", len(got), got)
	}
	if _, ok := got["2023-08"]; ok {
		t.Error("month before the window was included")
	}

	sep := got["2023-09"]
	assertDecimal(t, "2023-09 income", sep.Income, "100")
	assertDecimal(t, "2023-09 expense", sep.Expense, "30")
	assertDecimal(t, "2023-09 net", sep.Net, "70")

	mar := got["2024-03"]
	assertDecimal(t, "2024-03 expense", mar.Expense, "50")
	assertDecimal(t, "2024-03 net", mar.Net, "-50")
}

func TestComputeTrend_NetIsIncomeMinusExpense(t *testing.T) {
	now := day("2024-06-30")
	input := []*entity.Transaction{
		tx("2024-01-02", "12.25", entity.TransactionTypeIncome, "Investments", "Gold SIP"),
		tx("2024-01-03", "2.5", entity.TransactionTypeExpense, "Investments", "Gold SIP"),
		tx("2024-04-10", "3", entity.TransactionTypeExpense, "Loans", "Personal Loan"),
	}

	for key, point := range ComputeTrend(input, now) {
		if !point.Net.Equal(point.Income.Sub(point.Expense)) {
			t.Errorf("%s: net %s != %s - %s", key, point.Net, point.Income, point.Expense)
		}
	}
}

func TestTrendWindowStart(t *testing.T) {
	tests := []struct {
		now  string
		want string
	}{
		{now: "2024-03-15", want: "2023-09-01"},
		{now: "2024-08-31", want: "2024-02-01"},
		{now: "2024-01-01", want: "2023-07-01"},
	}

	for _, tt := range tests {
		t.Run(tt.now, func(t *testing.T) {
			got := TrendWindowStart(day(tt.now)).Format(entity.DateLayout)
			if got != tt.want {
				t.Errorf("TrendWindowStart(%s) = %s, want %s", tt.now, got, tt.want)
			}
		})
	}
}

func TestSortedMonthKeys(t *testing.T) {
	trend := map[string]TrendPoint{
		"2024-01": {},
		"2023-11": {},
		"2023-12": {},
		"2024-03": {},
	}

	got := SortedMonthKeys(trend)
	want := []string{"2023-11", "2023-12", "2024-01", "2024-03"}

	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got %v, want %v", got, want)
			break
		}
	}
}

func TestComputeProjectStatus(t *testing.T) {
	registry, err := entity.NewCategoryRegistry([]entity.CategoryDefinition{
		{Name: "Galaxy", Subcategories: []string{"Labor Cost"}, Project: true},
		{Name: "Loans", Subcategories: []string{"Home Loan"}},
		{Name: "Varaj Vihar", Subcategories: []string{"Labor Cost"}, Project: true},
	})
	if err != nil {
		t.Fatalf("registry: %v", err)
	}

	input := []*entity.Transaction{
		tx("2024-01-01", "1000", entity.TransactionTypeIncome, "Galaxy", "Labor Cost"),
		tx("2024-01-02", "400", entity.TransactionTypeExpense, "Galaxy", "Labor Cost"),
		tx("2024-01-03", "5000", entity.TransactionTypeExpense, "Loans", "Home Loan"),
	}

	got := ComputeProjectStatus(input, registry)

	if len(got) != 2 {
		t.Fatalf("got %d rows, want 2", len(got))
	}
	if got[0].Project != "Galaxy" || got[1].Project != "Varaj Vihar" {
		t.Errorf("unexpected order: %+v", got)
	}
	assertDecimal(t, "Galaxy net", got[0].Net, "600")
	assertDecimal(t, "Varaj Vihar net", got[1].Net, "0")
}
