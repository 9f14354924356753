package services

import (
	"context"
	"fmt"

	"github.com/you/accountsvc/domain"
)

// BusinessServiceImpl implements domain.BusinessService
type BusinessServiceImpl struct {
	businessStore domain.BusinessStore
}

// NewBusinessService creates a new business service.
func NewBusinessService(businessStore domain.BusinessStore) domain.BusinessService {
	return &BusinessServiceImpl{businessStore: businessStore}
}

// GetBusiness implements domain.BusinessService
func (s *BusinessServiceImpl) GetBusiness(ctx context.Context, businessID string) (*domain.Business, error) {
	business, err := s.businessStore.FindByID(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up business: %w", err)
	}
	if business == nil {
		return nil, domain.E(domain.KindBusinessNotFound, "business not found")
	}
	return business, nil
}

// GetBusinesses implements domain.BusinessService
func (s *BusinessServiceImpl) GetBusinesses(ctx context.Context, businessIDs []string) ([]domain.Business, error) {
	businesses, err := s.businessStore.FindByIDs(ctx, businessIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to look up businesses: %w", err)
	}
	if len(businesses) == 0 {
		return nil, domain.E(domain.KindBusinessNotFound, "businesses not found")
	}
	return businesses, nil
}
