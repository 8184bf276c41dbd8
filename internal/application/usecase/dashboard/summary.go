package dashboard

import (
	"github.com/shopspring/decimal"

	"github.com/realtytrack/backend/internal/domain/entity"
)

// ComputeSummary totals income and expense over the transactions.
// The result does not depend on input order; an empty input yields zeros.
func ComputeSummary(transactions []*entity.Transaction) entity.FinancialSummary {
	income := decimal.Zero
	expense := decimal.Zero

	for _, t := range transactions {
		if t.Type == entity.TransactionTypeIncome {
			income = income.Add(t.Amount)
		} else {
			expense = expense.Add(t.Amount)
		}
	}

	return entity.FinancialSummary{
		TotalIncome:  income,
		TotalExpense: expense,
		NetBalance:   income.Sub(expense),
	}
}
