package mocks

import (
	"context"
	"time"

	"github.com/you/accountsvc/domain"
)

// MockAccountStore implements domain.AccountStore for testing
type MockAccountStore struct {
	FindByEmailFunc              func(ctx context.Context, email string) (*domain.Account, error)
	FindByIDFunc                 func(ctx context.Context, id string) (*domain.Account, error)
	CreateAccountAndBusinessFunc func(ctx context.Context, account *domain.Account, businessName string) (*domain.Account, error)
	UpdateAccountFunc            func(ctx context.Context, id string, update domain.AccountUpdate) (*domain.Account, error)
	MarkEmailVerifiedFunc        func(ctx context.Context, id string) (*domain.Account, error)
	SetOTPFunc                   func(ctx context.Context, id, code string, expiresAt time.Time) error
}

// NewMockAccountStore creates a new MockAccountStore with default behaviors
func NewMockAccountStore() *MockAccountStore {
	return &MockAccountStore{}
}

// FindByEmail finds an account by email
func (m *MockAccountStore) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	// Default behavior: not found
	return nil, nil
}

// FindByID finds an account by id
func (m *MockAccountStore) FindByID(ctx context.Context, id string) (*domain.Account, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	// Default behavior: not found
	return nil, nil
}

// CreateAccountAndBusiness creates an account with its business
func (m *MockAccountStore) CreateAccountAndBusiness(ctx context.Context, account *domain.Account, businessName string) (*domain.Account, error) {
	if m.CreateAccountAndBusinessFunc != nil {
		return m.CreateAccountAndBusinessFunc(ctx, account, businessName)
	}
	// Default behavior: echo back with generated ids
	created := *account
	created.ID = "acc_1"
	created.BusinessID = "biz_1"
	return &created, nil
}

// UpdateAccount applies partial updates to an account
func (m *MockAccountStore) UpdateAccount(ctx context.Context, id string, update domain.AccountUpdate) (*domain.Account, error) {
	if m.UpdateAccountFunc != nil {
		return m.UpdateAccountFunc(ctx, id, update)
	}
	// Default behavior: not found
	return nil, nil
}

// MarkEmailVerified flips the verification flag
func (m *MockAccountStore) MarkEmailVerified(ctx context.Context, id string) (*domain.Account, error) {
	if m.MarkEmailVerifiedFunc != nil {
		return m.MarkEmailVerifiedFunc(ctx, id)
	}
	// Default behavior: not found
	return nil, nil
}

// SetOTP replaces the stored OTP fields
func (m *MockAccountStore) SetOTP(ctx context.Context, id, code string, expiresAt time.Time) error {
	if m.SetOTPFunc != nil {
		return m.SetOTPFunc(ctx, id, code, expiresAt)
	}
	// Default behavior: success
	return nil
}

// Compile-time interface compliance verification
var _ domain.AccountStore = (*MockAccountStore)(nil)
