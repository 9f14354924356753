package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/you/accountsvc/domain"
)

// TokenRepositoryImpl implements domain.TokenStore using Redis. One record
// per account: SET on the account key replaces the previous credential pair,
// so no history accumulates.
type TokenRepositoryImpl struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewTokenRepository creates a new token repository. Records expire with the
// refresh token so stale pairs are reaped by Redis itself.
func NewTokenRepository(client *redis.Client, ttl time.Duration) domain.TokenStore {
	return &TokenRepositoryImpl{
		client: client,
		prefix: "token:",
		ttl:    ttl,
	}
}

// Upsert implements domain.TokenStore
func (r *TokenRepositoryImpl) Upsert(ctx context.Context, record *domain.TokenRecord) error {
	key := r.prefix + record.AccountID
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal token record: %w", err)
	}
	return r.client.Set(ctx, key, data, r.ttl).Err()
}

// FindByAccountID implements domain.TokenStore. Absence is (nil, nil).
func (r *TokenRepositoryImpl) FindByAccountID(ctx context.Context, accountID string) (*domain.TokenRecord, error) {
	key := r.prefix + accountID
	data, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var record domain.TokenRecord
	if err := json.Unmarshal([]byte(data), &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal token record: %w", err)
	}
	return &record, nil
}
