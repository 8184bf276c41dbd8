// Package persistence implements the transaction store on SQL databases and Redis.
package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/realtytrack/backend/internal/domain/entity"
	"github.com/realtytrack/backend/internal/integration/persistence/model"
)

// GormTransactionStore keeps the collection as a single row of kv_entries.
// It works with any gorm dialector that supports ON CONFLICT upserts.
type GormTransactionStore struct {
	db  *gorm.DB
	key string
}

// NewGormTransactionStore creates a new GormTransactionStore instance.
func NewGormTransactionStore(db *gorm.DB, key string) *GormTransactionStore {
	return &GormTransactionStore{
		db:  db,
		key: key,
	}
}

// Load reads the collection. A missing row means no prior data.
func (s *GormTransactionStore) Load(ctx context.Context) ([]*entity.Transaction, error) {
	var entry model.KVEntryModel
	result := s.db.WithContext(ctx).Where(&model.KVEntryModel{Key: s.key}).Take(&entry)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", s.key, result.Error)
	}

	return model.DecodeTransactions([]byte(entry.Value))
}

// Save overwrites the row with the full collection.
func (s *GormTransactionStore) Save(ctx context.Context, transactions []*entity.Transaction) error {
	data, err := model.EncodeTransactions(transactions)
	if err != nil {
		return err
	}

	entry := model.KVEntryModel{
		Key:       s.key,
		Value:     string(data),
		UpdatedAt: time.Now().UTC(),
	}
	result := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry)
	if result.Error != nil {
		return fmt.Errorf("failed to write %s: %w", s.key, result.Error)
	}
	return nil
}
