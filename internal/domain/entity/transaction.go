// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType represents the type of transaction (income or expense).
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "INCOME"
	TransactionTypeExpense TransactionType = "EXPENSE"
)

// IsValid reports whether t is one of the known transaction types.
func (t TransactionType) IsValid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

// DateLayout is the calendar date format used for transaction dates.
const DateLayout = "2006-01-02"

// Transaction represents one logged financial event.
type Transaction struct {
	ID          uuid.UUID
	Date        time.Time       // Calendar date, midnight UTC
	Amount      decimal.Decimal // Always non-negative, sign is carried by Type
	Type        TransactionType
	Category    string
	Subcategory string
	Notes       string
	Timestamp   time.Time // Creation instant, ordering only
}

// NewTransaction creates a new Transaction entity with a fresh ID and creation timestamp.
func NewTransaction(
	date time.Time,
	amount decimal.Decimal,
	transactionType TransactionType,
	category string,
	subcategory string,
	notes string,
	createdAt time.Time,
) *Transaction {
	return &Transaction{
		ID:          uuid.New(),
		Date:        CalendarDate(date),
		Amount:      amount,
		Type:        transactionType,
		Category:    category,
		Subcategory: subcategory,
		Notes:       notes,
		Timestamp:   createdAt.UTC().Truncate(time.Millisecond),
	}
}

// SignedAmount returns +amount for income and -amount for expenses.
func (t *Transaction) SignedAmount() decimal.Decimal {
	if t.Type == TransactionTypeIncome {
		return t.Amount
	}
	return t.Amount.Neg()
}

// DateString returns the transaction date as YYYY-MM-DD.
func (t *Transaction) DateString() string {
	return t.Date.Format(DateLayout)
}

// CalendarDate drops the time-of-day component of t, keeping its calendar day
// as seen in t's own location, and returns it as midnight UTC.
func CalendarDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD date. Full RFC 3339 timestamps are accepted
// too and reduced to their calendar date.
func ParseDate(value string) (time.Time, error) {
	if d, err := time.Parse(DateLayout, value); err == nil {
		return d, nil
	}
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, err
	}
	return CalendarDate(ts), nil
}

// FinancialSummary represents aggregated totals over a set of transactions.
type FinancialSummary struct {
	TotalIncome  decimal.Decimal
	TotalExpense decimal.Decimal
	NetBalance   decimal.Decimal
}
