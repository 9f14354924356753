package mocks

import (
	"time"

	"github.com/you/accountsvc/domain"
)

// MockTokenService implements domain.TokenService for testing
type MockTokenService struct {
	IssueAccessTokenFunc      func(account *domain.Account, tokenType domain.TokenType) (string, error)
	IssueRefreshTokenFunc     func(account *domain.Account, tokenType domain.TokenType) (string, error)
	IssueResetTokenFunc       func(accountID string) (string, error)
	ParseAccessTokenFunc      func(token string) (*domain.TokenClaims, error)
	ParseResetTokenFunc       func(token string) (*domain.TokenClaims, error)
	RefreshSubjectMatchesFunc func(token, accountID string) bool
	AccessTTLFunc             func() time.Duration
}

// NewMockTokenService creates a new MockTokenService with default behaviors
func NewMockTokenService() *MockTokenService {
	return &MockTokenService{}
}

// IssueAccessToken mints an access token
func (m *MockTokenService) IssueAccessToken(account *domain.Account, tokenType domain.TokenType) (string, error) {
	if m.IssueAccessTokenFunc != nil {
		return m.IssueAccessTokenFunc(account, tokenType)
	}
	return "access_" + account.ID + "_" + string(tokenType), nil
}

// IssueRefreshToken mints a refresh token
func (m *MockTokenService) IssueRefreshToken(account *domain.Account, tokenType domain.TokenType) (string, error) {
	if m.IssueRefreshTokenFunc != nil {
		return m.IssueRefreshTokenFunc(account, tokenType)
	}
	return "refresh_" + account.ID + "_" + string(tokenType), nil
}

// IssueResetToken mints a password-reset token
func (m *MockTokenService) IssueResetToken(accountID string) (string, error) {
	if m.IssueResetTokenFunc != nil {
		return m.IssueResetTokenFunc(accountID)
	}
	return "reset_" + accountID, nil
}

// ParseAccessToken verifies an access token
func (m *MockTokenService) ParseAccessToken(token string) (*domain.TokenClaims, error) {
	if m.ParseAccessTokenFunc != nil {
		return m.ParseAccessTokenFunc(token)
	}
	return &domain.TokenClaims{Subject: "acc_1"}, nil
}

// ParseResetToken verifies a reset token
func (m *MockTokenService) ParseResetToken(token string) (*domain.TokenClaims, error) {
	if m.ParseResetTokenFunc != nil {
		return m.ParseResetTokenFunc(token)
	}
	return &domain.TokenClaims{Subject: "acc_1"}, nil
}

// RefreshSubjectMatches checks refresh-token ownership
func (m *MockTokenService) RefreshSubjectMatches(token, accountID string) bool {
	if m.RefreshSubjectMatchesFunc != nil {
		return m.RefreshSubjectMatchesFunc(token, accountID)
	}
	return true
}

// AccessTTL reports the access token lifetime
func (m *MockTokenService) AccessTTL() time.Duration {
	if m.AccessTTLFunc != nil {
		return m.AccessTTLFunc()
	}
	return 24 * time.Hour
}

// Compile-time interface compliance verification
var _ domain.TokenService = (*MockTokenService)(nil)
