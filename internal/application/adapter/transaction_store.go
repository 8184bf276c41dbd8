// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/realtytrack/backend/internal/domain/entity"
)

// TransactionStore persists the whole transaction collection as one unit.
type TransactionStore interface {
	// Load returns the persisted collection in stored order.
	// A missing state yields an empty slice and no error.
	Load(ctx context.Context) ([]*entity.Transaction, error)

	// Save overwrites the persisted state with the given collection.
	Save(ctx context.Context, transactions []*entity.Transaction) error
}
