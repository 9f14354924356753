package mocks

import (
	"sync"

	"github.com/you/accountsvc/domain"
)

// MockNotificationService implements domain.NotificationService for testing.
// Sends are recorded under a mutex because dispatch happens on goroutines.
type MockNotificationService struct {
	SendOTPEmailFunc           func(account *domain.Account) bool
	SendVerificationEmailFunc  func(account *domain.Account) bool
	SendResetPasswordEmailFunc func(account *domain.Account, resetURL string) bool

	mu         sync.Mutex
	otpSends   []string
	resetSends []string
}

// NewMockNotificationService creates a new MockNotificationService with default behaviors
func NewMockNotificationService() *MockNotificationService {
	return &MockNotificationService{}
}

// SendOTPEmail records and reports success
func (m *MockNotificationService) SendOTPEmail(account *domain.Account) bool {
	if m.SendOTPEmailFunc != nil {
		return m.SendOTPEmailFunc(account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.otpSends = append(m.otpSends, account.Email)
	return true
}

// SendVerificationEmail records and reports success
func (m *MockNotificationService) SendVerificationEmail(account *domain.Account) bool {
	if m.SendVerificationEmailFunc != nil {
		return m.SendVerificationEmailFunc(account)
	}
	return true
}

// SendResetPasswordEmail records and reports success
func (m *MockNotificationService) SendResetPasswordEmail(account *domain.Account, resetURL string) bool {
	if m.SendResetPasswordEmailFunc != nil {
		return m.SendResetPasswordEmailFunc(account, resetURL)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resetSends = append(m.resetSends, resetURL)
	return true
}

// OTPSends returns the recipients of recorded OTP emails.
func (m *MockNotificationService) OTPSends() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.otpSends...)
}

// ResetSends returns the reset URLs of recorded reset emails.
func (m *MockNotificationService) ResetSends() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.resetSends...)
}

// Compile-time interface compliance verification
var _ domain.NotificationService = (*MockNotificationService)(nil)
