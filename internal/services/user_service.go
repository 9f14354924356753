package services

import (
	"context"
	"fmt"

	"github.com/you/accountsvc/domain"
)

// UserServiceImpl implements domain.UserService
type UserServiceImpl struct {
	accountStore  domain.AccountStore
	businessStore domain.BusinessStore
}

// NewUserService creates a new user service.
func NewUserService(accountStore domain.AccountStore, businessStore domain.BusinessStore) domain.UserService {
	return &UserServiceImpl{accountStore: accountStore, businessStore: businessStore}
}

// GetAccount implements domain.UserService. Returns the account projection
// together with the businesses it owns.
func (s *UserServiceImpl) GetAccount(ctx context.Context, accountID string) (*domain.AccountProfile, []domain.Business, error) {
	account, err := s.accountStore.FindByID(ctx, accountID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to look up account: %w", err)
	}
	if account == nil || account.PasswordHash == "" {
		return nil, nil, domain.E(domain.KindNotFound, "account not found")
	}

	businesses, err := s.businessStore.FindByIDs(ctx, []string{account.BusinessID})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to look up businesses: %w", err)
	}

	return account.Profile(), businesses, nil
}
