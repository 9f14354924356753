package mocks

import (
	"time"

	"github.com/you/accountsvc/domain"
)

// MockOTPService implements domain.OTPService for testing
type MockOTPService struct {
	GenerateFunc        func() (domain.OTPChallenge, error)
	IsExpiredFunc       func(expiresAt time.Time) bool
	IsResendTooSoonFunc func(expiresAt time.Time) bool
}

// NewMockOTPService creates a new MockOTPService with default behaviors
func NewMockOTPService() *MockOTPService {
	return &MockOTPService{}
}

// Generate produces a one-time code
func (m *MockOTPService) Generate() (domain.OTPChallenge, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	return domain.OTPChallenge{Code: "123456", ExpiresAt: time.Now().Add(5 * time.Minute)}, nil
}

// IsExpired reports whether the stored code has expired
func (m *MockOTPService) IsExpired(expiresAt time.Time) bool {
	if m.IsExpiredFunc != nil {
		return m.IsExpiredFunc(expiresAt)
	}
	return time.Now().After(expiresAt)
}

// IsResendTooSoon reports whether a resend is throttled
func (m *MockOTPService) IsResendTooSoon(expiresAt time.Time) bool {
	if m.IsResendTooSoonFunc != nil {
		return m.IsResendTooSoonFunc(expiresAt)
	}
	return false
}

// Compile-time interface compliance verification
var _ domain.OTPService = (*MockOTPService)(nil)
