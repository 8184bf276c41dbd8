// Package model defines database models for persistence layer.
package model

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/realtytrack/backend/internal/domain/entity"
)

// TransactionRecord is the stored form of one transaction.
// Amounts are JSON numbers and timestamps are Unix milliseconds.
type TransactionRecord struct {
	ID          string      `json:"id"`
	Date        string      `json:"date"`
	Amount      json.Number `json:"amount"`
	Type        string      `json:"type"`
	Category    string      `json:"category"`
	Subcategory string      `json:"subcategory"`
	Notes       string      `json:"notes"`
	Timestamp   int64       `json:"timestamp"`
}

// TransactionRecordFromEntity converts a domain Transaction entity to a TransactionRecord.
func TransactionRecordFromEntity(t *entity.Transaction) TransactionRecord {
	return TransactionRecord{
		ID:          t.ID.String(),
		Date:        t.DateString(),
		Amount:      json.Number(t.Amount.String()),
		Type:        string(t.Type),
		Category:    t.Category,
		Subcategory: t.Subcategory,
		Notes:       t.Notes,
		Timestamp:   t.Timestamp.UnixMilli(),
	}
}

// ToEntity converts a TransactionRecord to a domain Transaction entity.
func (r *TransactionRecord) ToEntity() (*entity.Transaction, error) {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid id %q: %w", r.ID, err)
	}

	date, err := entity.ParseDate(r.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", r.Date, err)
	}

	amount, err := decimal.NewFromString(r.Amount.String())
	if err != nil {
		return nil, fmt.Errorf("invalid amount %q: %w", r.Amount, err)
	}

	txType := entity.TransactionType(r.Type)
	if !txType.IsValid() {
		return nil, fmt.Errorf("invalid type %q", r.Type)
	}

	return &entity.Transaction{
		ID:          id,
		Date:        date,
		Amount:      amount,
		Type:        txType,
		Category:    r.Category,
		Subcategory: r.Subcategory,
		Notes:       r.Notes,
		Timestamp:   time.UnixMilli(r.Timestamp).UTC(),
	}, nil
}

// EncodeTransactions serializes the collection as a JSON array in order.
func EncodeTransactions(transactions []*entity.Transaction) ([]byte, error) {
	records := make([]TransactionRecord, len(transactions))
	for i, t := range transactions {
		records[i] = TransactionRecordFromEntity(t)
	}

	data, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("failed to encode transactions: %w", err)
	}
	return data, nil
}

// DecodeTransactions parses a stored JSON array. A malformed document is an
// error; individual records that cannot be converted are skipped with a warning.
func DecodeTransactions(data []byte) ([]*entity.Transaction, error) {
	var records []TransactionRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to decode transactions: %w", err)
	}

	transactions := make([]*entity.Transaction, 0, len(records))
	for i := range records {
		t, err := records[i].ToEntity()
		if err != nil {
			slog.Warn("Skipping unreadable transaction record",
				"id", records[i].ID,
				"position", i,
				"error", err,
			)
			continue
		}
		transactions = append(transactions, t)
	}
	return transactions, nil
}
