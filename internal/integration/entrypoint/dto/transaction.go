// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/realtytrack/backend/internal/application/usecase/transaction"
	"github.com/realtytrack/backend/internal/domain/entity"
)

// CreateTransactionRequest represents the request body for transaction creation.
// Amount accepts a JSON number or a numeric string.
type CreateTransactionRequest struct {
	Date        string           `json:"date" binding:"required"`
	Amount      *decimal.Decimal `json:"amount" binding:"required"`
	Type        string           `json:"type,omitempty" binding:"omitempty,oneof=INCOME EXPENSE"`
	Category    string           `json:"category" binding:"required"`
	Subcategory string           `json:"subcategory,omitempty"`
	Notes       string           `json:"notes,omitempty"`
}

// TransactionResponse represents a single transaction in API responses.
type TransactionResponse struct {
	ID          string    `json:"id"`
	Date        string    `json:"date"`
	Amount      string    `json:"amount"`
	Type        string    `json:"type"`
	Category    string    `json:"category"`
	Subcategory string    `json:"subcategory"`
	Notes       string    `json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
}

// SummaryResponse represents income, expense and net totals.
type SummaryResponse struct {
	TotalIncome  string `json:"total_income"`
	TotalExpense string `json:"total_expense"`
	NetBalance   string `json:"net_balance"`
}

// TransactionListResponse represents the response for listing transactions.
type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Count        int                   `json:"count"`
	Summary      SummaryResponse       `json:"summary"`
}

// TransactionMutationResponse is returned by create and delete. Persisted is
// false when the change is applied in memory but could not be saved.
type TransactionMutationResponse struct {
	Transaction TransactionResponse `json:"transaction"`
	Persisted   bool                `json:"persisted"`
}

// FormatAmount renders a decimal amount with two fraction digits.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// ToTransactionResponse converts a domain Transaction entity to a TransactionResponse DTO.
func ToTransactionResponse(tx *entity.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          tx.ID.String(),
		Date:        tx.DateString(),
		Amount:      FormatAmount(tx.Amount),
		Type:        string(tx.Type),
		Category:    tx.Category,
		Subcategory: tx.Subcategory,
		Notes:       tx.Notes,
		CreatedAt:   tx.Timestamp,
	}
}

// ToSummaryResponse converts a FinancialSummary to a SummaryResponse DTO.
func ToSummaryResponse(summary entity.FinancialSummary) SummaryResponse {
	return SummaryResponse{
		TotalIncome:  FormatAmount(summary.TotalIncome),
		TotalExpense: FormatAmount(summary.TotalExpense),
		NetBalance:   FormatAmount(summary.NetBalance),
	}
}

// ToTransactionListResponse converts a ListTransactionsOutput to TransactionListResponse.
func ToTransactionListResponse(output *transaction.ListTransactionsOutput) TransactionListResponse {
	transactions := make([]TransactionResponse, len(output.Transactions))
	for i, tx := range output.Transactions {
		transactions[i] = ToTransactionResponse(tx)
	}

	return TransactionListResponse{
		Transactions: transactions,
		Count:        len(transactions),
		Summary:      ToSummaryResponse(output.Summary),
	}
}
