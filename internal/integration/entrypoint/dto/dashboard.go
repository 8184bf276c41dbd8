// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"github.com/shopspring/decimal"

	"github.com/realtytrack/backend/internal/application/usecase/dashboard"
	"github.com/realtytrack/backend/internal/domain/entity"
)

// DashboardSummaryResponse represents the all-time summary.
type DashboardSummaryResponse struct {
	SummaryResponse
	TransactionCount int `json:"transaction_count"`
}

// CategoryTotalsResponse represents one category of a period breakdown.
type CategoryTotalsResponse struct {
	Income           string            `json:"income"`
	Expense          string            `json:"expense"`
	TopSubcategories map[string]string `json:"top_subcategories"`
}

// BreakdownResponse represents the response for the category breakdown API.
type BreakdownResponse struct {
	Range            string                            `json:"range"`
	StartDate        string                            `json:"start_date"`
	TransactionCount int                               `json:"transaction_count"`
	Categories       map[string]CategoryTotalsResponse `json:"categories"`
}

// MonthTrendResponse represents one month of the trend.
type MonthTrendResponse struct {
	Month   string `json:"month"`
	Income  string `json:"income"`
	Expense string `json:"expense"`
	Net     string `json:"net"`
}

// TrendResponse represents the response for the trend API.
type TrendResponse struct {
	StartDate string               `json:"start_date"`
	EndDate   string               `json:"end_date"`
	Months    []MonthTrendResponse `json:"months"`
}

// ProjectStatusResponse represents the net position of one project.
type ProjectStatusResponse struct {
	Project string `json:"project"`
	Net     string `json:"net"`
}

// ProjectStatusListResponse represents the response for the project status API.
type ProjectStatusListResponse struct {
	Projects []ProjectStatusResponse `json:"projects"`
}

// ToDashboardSummaryResponse converts a GetSummaryOutput to DashboardSummaryResponse.
func ToDashboardSummaryResponse(output *dashboard.GetSummaryOutput) DashboardSummaryResponse {
	return DashboardSummaryResponse{
		SummaryResponse:  ToSummaryResponse(output.Summary),
		TransactionCount: output.TransactionCount,
	}
}

// ToBreakdownResponse converts a PeriodBreakdown to BreakdownResponse.
func ToBreakdownResponse(breakdown *dashboard.PeriodBreakdown) BreakdownResponse {
	categories := make(map[string]CategoryTotalsResponse, len(breakdown.Categories))
	for name, totals := range breakdown.Categories {
		categories[name] = CategoryTotalsResponse{
			Income:           FormatAmount(totals.Income),
			Expense:          FormatAmount(totals.Expense),
			TopSubcategories: formatAmounts(totals.TopSubcategories),
		}
	}

	return BreakdownResponse{
		Range:            string(breakdown.Range),
		StartDate:        breakdown.StartDate.Format(entity.DateLayout),
		TransactionCount: breakdown.TransactionCount,
		Categories:       categories,
	}
}

// ToTrendResponse converts a GetTrendsOutput to TrendResponse.
func ToTrendResponse(output *dashboard.GetTrendsOutput) TrendResponse {
	months := make([]MonthTrendResponse, len(output.Months))
	for i, m := range output.Months {
		months[i] = MonthTrendResponse{
			Month:   m.Month,
			Income:  FormatAmount(m.Income),
			Expense: FormatAmount(m.Expense),
			Net:     FormatAmount(m.Net),
		}
	}

	return TrendResponse{
		StartDate: output.StartDate.Format(entity.DateLayout),
		EndDate:   output.EndDate.Format(entity.DateLayout),
		Months:    months,
	}
}

// ToProjectStatusListResponse converts project statuses to ProjectStatusListResponse.
func ToProjectStatusListResponse(statuses []dashboard.ProjectStatus) ProjectStatusListResponse {
	projects := make([]ProjectStatusResponse, len(statuses))
	for i, s := range statuses {
		projects[i] = ProjectStatusResponse{
			Project: s.Project,
			Net:     FormatAmount(s.Net),
		}
	}
	return ProjectStatusListResponse{Projects: projects}
}

func formatAmounts(values map[string]decimal.Decimal) map[string]string {
	out := make(map[string]string, len(values))
	for k, v := range values {
		out[k] = FormatAmount(v)
	}
	return out
}
