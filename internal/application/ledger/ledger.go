// Package ledger holds the in-memory transaction collection and keeps the
// transaction store in step with it.
package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/realtytrack/backend/internal/application/adapter"
	"github.com/realtytrack/backend/internal/domain/entity"
	domainerror "github.com/realtytrack/backend/internal/domain/error"
)

// PersistError reports that a mutation was applied in memory but the
// collection could not be written to the store.
type PersistError struct {
	Operation string
	Err       error
}

// Error implements the error interface.
func (e *PersistError) Error() string {
	return fmt.Sprintf("failed to persist transactions after %s: %v", e.Operation, e.Err)
}

// Unwrap returns the underlying store error.
func (e *PersistError) Unwrap() error {
	return e.Err
}

// Ledger is the ordered transaction collection, newest first.
// Every mutation rewrites the whole collection to the store before returning.
type Ledger struct {
	mu           sync.RWMutex
	transactions []*entity.Transaction
	store        adapter.TransactionStore
	metrics      adapter.MetricsRecorder
}

// Open loads the persisted collection once. A failing or corrupt store is
// treated as "no prior data": the error is logged and the ledger starts empty.
func Open(ctx context.Context, store adapter.TransactionStore, metrics adapter.MetricsRecorder) *Ledger {
	if metrics == nil {
		metrics = adapter.NopMetrics{}
	}

	loaded, err := store.Load(ctx)
	if err != nil {
		slog.Warn("Failed to load transactions, starting with an empty ledger", "error", err)
		loaded = nil
	}

	slog.Info("Ledger loaded", "transactions", len(loaded))

	return &Ledger{
		transactions: loaded,
		store:        store,
		metrics:      metrics,
	}
}

// Snapshot returns a copy of the collection in display order.
// The transactions themselves are shared; they are never mutated after creation.
func (l *Ledger) Snapshot() []*entity.Transaction {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Clone(l.transactions)
}

// Len returns the number of transactions.
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.transactions)
}

// Add puts the transaction at the front of the collection and saves.
// A non-nil error is always a *PersistError; the transaction stays in memory.
func (l *Ledger) Add(ctx context.Context, transaction *entity.Transaction) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	next := make([]*entity.Transaction, 0, len(l.transactions)+1)
	next = append(next, transaction)
	next = append(next, l.transactions...)
	l.transactions = next
	l.metrics.IncLedgerMutation("add")

	return l.persist(ctx, "add")
}

// Remove deletes exactly the transaction with the given id, keeping the
// relative order of all others, and saves.
// It returns domainerror.ErrTransactionNotFound when no such id exists, or a
// *PersistError when the removal could not be saved.
func (l *Ledger) Remove(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := slices.IndexFunc(l.transactions, func(t *entity.Transaction) bool {
		return t.ID == id
	})
	if idx < 0 {
		return nil, domainerror.ErrTransactionNotFound
	}

	removed := l.transactions[idx]
	l.transactions = slices.Delete(slices.Clone(l.transactions), idx, idx+1)
	l.metrics.IncLedgerMutation("remove")

	return removed, l.persist(ctx, "remove")
}

// persist must be called with the write lock held.
func (l *Ledger) persist(ctx context.Context, operation string) error {
	if err := l.store.Save(ctx, l.transactions); err != nil {
		l.metrics.IncPersistFailure()
		slog.Error("Failed to save transactions",
			"operation", operation,
			"transactions", len(l.transactions),
			"error", err,
		)
		return &PersistError{Operation: operation, Err: err}
	}
	return nil
}
