package dashboard

import "github.com/realtytrack/backend/internal/domain/entity"

// TransactionSource provides a read-only view of the current collection.
// It is implemented by the ledger.
type TransactionSource interface {
	Snapshot() []*entity.Transaction
}
