package mocks

import (
	"context"

	"github.com/you/accountsvc/domain"
)

// MockBusinessStore implements domain.BusinessStore for testing
type MockBusinessStore struct {
	FindByNameFunc func(ctx context.Context, name string) (*domain.Business, error)
	FindByIDFunc   func(ctx context.Context, id string) (*domain.Business, error)
	FindByIDsFunc  func(ctx context.Context, ids []string) ([]domain.Business, error)
}

// NewMockBusinessStore creates a new MockBusinessStore with default behaviors
func NewMockBusinessStore() *MockBusinessStore {
	return &MockBusinessStore{}
}

// FindByName finds a business by name
func (m *MockBusinessStore) FindByName(ctx context.Context, name string) (*domain.Business, error) {
	if m.FindByNameFunc != nil {
		return m.FindByNameFunc(ctx, name)
	}
	// Default behavior: not found
	return nil, nil
}

// FindByID finds a business by id
func (m *MockBusinessStore) FindByID(ctx context.Context, id string) (*domain.Business, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	// Default behavior: not found
	return nil, nil
}

// FindByIDs finds businesses by ids
func (m *MockBusinessStore) FindByIDs(ctx context.Context, ids []string) ([]domain.Business, error) {
	if m.FindByIDsFunc != nil {
		return m.FindByIDsFunc(ctx, ids)
	}
	// Default behavior: none found
	return nil, nil
}

// Compile-time interface compliance verification
var _ domain.BusinessStore = (*MockBusinessStore)(nil)
