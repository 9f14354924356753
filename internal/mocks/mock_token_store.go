package mocks

import (
	"context"

	"github.com/you/accountsvc/domain"
)

// MockTokenStore implements domain.TokenStore for testing
type MockTokenStore struct {
	UpsertFunc          func(ctx context.Context, record *domain.TokenRecord) error
	FindByAccountIDFunc func(ctx context.Context, accountID string) (*domain.TokenRecord, error)

	// Upserted records the last record passed to Upsert when no UpsertFunc
	// override is set.
	Upserted *domain.TokenRecord
}

// NewMockTokenStore creates a new MockTokenStore with default behaviors
func NewMockTokenStore() *MockTokenStore {
	return &MockTokenStore{}
}

// Upsert stores the credential pair
func (m *MockTokenStore) Upsert(ctx context.Context, record *domain.TokenRecord) error {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, record)
	}
	m.Upserted = record
	return nil
}

// FindByAccountID looks up the stored credential pair
func (m *MockTokenStore) FindByAccountID(ctx context.Context, accountID string) (*domain.TokenRecord, error) {
	if m.FindByAccountIDFunc != nil {
		return m.FindByAccountIDFunc(ctx, accountID)
	}
	if m.Upserted != nil && m.Upserted.AccountID == accountID {
		return m.Upserted, nil
	}
	return nil, nil
}

// Compile-time interface compliance verification
var _ domain.TokenStore = (*MockTokenStore)(nil)
