package mocks

import (
	"context"

	"github.com/you/accountsvc/domain"
)

// MockAuthService implements domain.AuthService for handler testing
type MockAuthService struct {
	SignUpFunc               func(ctx context.Context, name, email, password, businessName string) (*domain.Account, error)
	SignInFunc               func(ctx context.Context, email, password string) (*domain.AuthResult, error)
	GetTokensFunc            func(ctx context.Context, account *domain.Account) (*domain.AuthResult, error)
	GetTokensByAccountIDFunc func(ctx context.Context, accountID string) (*domain.AuthResult, error)
	VerifyRefreshFunc        func(token, accountID string) bool
	VerifyEmailOTPFunc       func(ctx context.Context, accountID, code string) (*domain.AuthResult, error)
	ResendOTPFunc            func(ctx context.Context, accountID string) (*domain.AuthResult, error)
	ForgetPasswordFunc       func(ctx context.Context, email, locale string) (bool, error)
	ResetPasswordFunc        func(ctx context.Context, newPassword, resetToken string) (*domain.AccountProfile, error)
}

// NewMockAuthService creates a new MockAuthService with default behaviors
func NewMockAuthService() *MockAuthService {
	return &MockAuthService{}
}

func defaultAuthResult() *domain.AuthResult {
	return &domain.AuthResult{
		AccessToken:  "access_token",
		RefreshToken: "refresh_token",
		Account:      &domain.AccountProfile{ID: "acc_1", Email: "user@example.com"},
	}
}

// SignUp registers an account
func (m *MockAuthService) SignUp(ctx context.Context, name, email, password, businessName string) (*domain.Account, error) {
	if m.SignUpFunc != nil {
		return m.SignUpFunc(ctx, name, email, password, businessName)
	}
	return &domain.Account{ID: "acc_1", Name: name, Email: email, BusinessID: "biz_1"}, nil
}

// SignIn authenticates an account
func (m *MockAuthService) SignIn(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	if m.SignInFunc != nil {
		return m.SignInFunc(ctx, email, password)
	}
	return defaultAuthResult(), nil
}

// GetTokens mints a credential pair
func (m *MockAuthService) GetTokens(ctx context.Context, account *domain.Account) (*domain.AuthResult, error) {
	if m.GetTokensFunc != nil {
		return m.GetTokensFunc(ctx, account)
	}
	return defaultAuthResult(), nil
}

// GetTokensByAccountID mints a credential pair by account id
func (m *MockAuthService) GetTokensByAccountID(ctx context.Context, accountID string) (*domain.AuthResult, error) {
	if m.GetTokensByAccountIDFunc != nil {
		return m.GetTokensByAccountIDFunc(ctx, accountID)
	}
	return defaultAuthResult(), nil
}

// VerifyRefresh checks refresh-token ownership
func (m *MockAuthService) VerifyRefresh(token, accountID string) bool {
	if m.VerifyRefreshFunc != nil {
		return m.VerifyRefreshFunc(token, accountID)
	}
	return true
}

// VerifyEmailOTP checks a submitted email code
func (m *MockAuthService) VerifyEmailOTP(ctx context.Context, accountID, code string) (*domain.AuthResult, error) {
	if m.VerifyEmailOTPFunc != nil {
		return m.VerifyEmailOTPFunc(ctx, accountID, code)
	}
	return defaultAuthResult(), nil
}

// ResendOTP reissues the email code
func (m *MockAuthService) ResendOTP(ctx context.Context, accountID string) (*domain.AuthResult, error) {
	if m.ResendOTPFunc != nil {
		return m.ResendOTPFunc(ctx, accountID)
	}
	return defaultAuthResult(), nil
}

// ForgetPassword mints and mails a reset token
func (m *MockAuthService) ForgetPassword(ctx context.Context, email, locale string) (bool, error) {
	if m.ForgetPasswordFunc != nil {
		return m.ForgetPasswordFunc(ctx, email, locale)
	}
	return true, nil
}

// ResetPassword sets a new password
func (m *MockAuthService) ResetPassword(ctx context.Context, newPassword, resetToken string) (*domain.AccountProfile, error) {
	if m.ResetPasswordFunc != nil {
		return m.ResetPasswordFunc(ctx, newPassword, resetToken)
	}
	return &domain.AccountProfile{ID: "acc_1"}, nil
}

// Compile-time interface compliance verification
var _ domain.AuthService = (*MockAuthService)(nil)
