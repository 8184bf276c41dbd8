package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/realtytrack/backend/internal/domain/entity"
	"github.com/realtytrack/backend/internal/integration/persistence/model"
)

// RedisTransactionStore keeps the collection as one Redis string value.
type RedisTransactionStore struct {
	client *redis.Client
	key    string
}

// NewRedisTransactionStore creates a new RedisTransactionStore instance.
func NewRedisTransactionStore(client *redis.Client, key string) *RedisTransactionStore {
	return &RedisTransactionStore{
		client: client,
		key:    key,
	}
}

// Load reads the collection. A missing key means no prior data.
func (s *RedisTransactionStore) Load(ctx context.Context) ([]*entity.Transaction, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", s.key, err)
	}

	return model.DecodeTransactions(data)
}

// Save overwrites the key with the full collection. The key never expires.
func (s *RedisTransactionStore) Save(ctx context.Context, transactions []*entity.Transaction) error {
	data, err := model.EncodeTransactions(transactions)
	if err != nil {
		return err
	}

	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.key, err)
	}
	return nil
}
