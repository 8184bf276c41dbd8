package insight

import (
	"fmt"
	"strings"

	"github.com/realtytrack/backend/internal/application/adapter"
	"github.com/realtytrack/backend/internal/domain/entity"
)

func buildInsightPrompt(r entity.ReportRange, data string) string {
	var sb strings.Builder

	sb.WriteString("You are a smart financial controller for a Real Estate business owner.\n\n")
	sb.WriteString("FINANCIAL DATA (JSON):\n")
	sb.WriteString(data)
	sb.WriteString("\n\nINSTRUCTIONS:\n")
	sb.WriteString(fmt.Sprintf(
		"1. **Expense & Project Analysis**: Break down expenses by Project and Category for the selected period ('%s'). "+
			"Identify major cost drivers (subcategories) and profitable projects.\n", r))
	sb.WriteString("2. **Cash Flow Prediction**: Using the 'sixMonthTrend' data, analyze the volatility and recent trend. " +
		"Predict the likely cash flow (Net Balance) for the *upcoming month*. " +
		"Explain your reasoning briefly based on the historical data.\n")
	sb.WriteString("3. **Strategic Advice**: Provide 2 specific, actionable financial tips based on this data " +
		"(e.g., cost cutting in specific subcategories, or investment adjustments).\n\n")
	sb.WriteString("OUTPUT FORMAT:\n")
	sb.WriteString("Markdown. Use ### Headers, **bold** for amounts, and bullet points. " +
		"Be concise, professional, and insightful.\n")

	return sb.String()
}

func buildSuggestionPrompt(note string, registry *entity.CategoryRegistry) string {
	var sb strings.Builder

	sb.WriteString("You are a financial assistant for a real estate developer.\n")
	sb.WriteString(fmt.Sprintf("Analyze the transaction note: %q\n\n", note))

	sb.WriteString("Available Categories and Subcategories:\n")
	for _, def := range registry.Definitions() {
		sb.WriteString(fmt.Sprintf("%s: [%s]\n", def.Name, strings.Join(def.Subcategories, ", ")))
	}

	sb.WriteString("\nRules:\n")
	sb.WriteString("1. Select the best fitting Category and Subcategory.\n")
	sb.WriteString("2. Determine if it is likely INCOME or EXPENSE.\n")
	if projects := registry.Projects(); len(projects) > 0 {
		quoted := make([]string, len(projects))
		for i, p := range projects {
			quoted[i] = fmt.Sprintf("%q", p)
		}
		sb.WriteString(fmt.Sprintf("3. If %s are mentioned, prioritize those projects.\n", strings.Join(quoted, ", ")))
	}
	sb.WriteString("Return JSON only.\n")

	return sb.String()
}

// suggestionSchema constrains the category suggestion answer.
func suggestionSchema() *adapter.ResponseSchema {
	return &adapter.ResponseSchema{
		Type: adapter.SchemaTypeObject,
		Properties: map[string]*adapter.ResponseSchema{
			"category":    {Type: adapter.SchemaTypeString},
			"subcategory": {Type: adapter.SchemaTypeString},
			"type": {
				Type: adapter.SchemaTypeString,
				Enum: []string{string(entity.TransactionTypeIncome), string(entity.TransactionTypeExpense)},
			},
		},
		Required: []string{"category", "subcategory", "type"},
	}
}
