package domain

import (
	"context"
	"time"
)

// AccountStore defines account data access. Lookups return (nil, nil) when no
// record exists; callers translate absence into the domain failure that fits
// the operation.
type AccountStore interface {
	FindByEmail(ctx context.Context, email string) (*Account, error)
	FindByID(ctx context.Context, id string) (*Account, error)
	CreateAccountAndBusiness(ctx context.Context, account *Account, businessName string) (*Account, error)
	UpdateAccount(ctx context.Context, id string, update AccountUpdate) (*Account, error)
	MarkEmailVerified(ctx context.Context, id string) (*Account, error)
	SetOTP(ctx context.Context, id, code string, expiresAt time.Time) error
}

// BusinessStore defines business data access. Lookups return (nil, nil) when
// no record exists.
type BusinessStore interface {
	FindByName(ctx context.Context, name string) (*Business, error)
	FindByID(ctx context.Context, id string) (*Business, error)
	FindByIDs(ctx context.Context, ids []string) ([]Business, error)
}

// TokenStore persists the credential pair, one record per account. Upsert
// replaces any prior record for the account.
type TokenStore interface {
	Upsert(ctx context.Context, record *TokenRecord) error
	FindByAccountID(ctx context.Context, accountID string) (*TokenRecord, error)
}

// PasswordService defines one-way password hashing.
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
}

// TokenService defines signed token issuing and verification.
type TokenService interface {
	IssueAccessToken(account *Account, tokenType TokenType) (string, error)
	IssueRefreshToken(account *Account, tokenType TokenType) (string, error)
	IssueResetToken(accountID string) (string, error)
	ParseAccessToken(token string) (*TokenClaims, error)
	ParseResetToken(token string) (*TokenClaims, error)
	RefreshSubjectMatches(token, accountID string) bool
	AccessTTL() time.Duration
}

// OTPService produces one-time verification codes and evaluates their
// validity and resend-throttle windows.
type OTPService interface {
	Generate() (OTPChallenge, error)
	IsExpired(expiresAt time.Time) bool
	IsResendTooSoon(expiresAt time.Time) bool
}

// NotificationService sends account emails. Delivery failure is reported as
// a boolean and logged at the boundary, never propagated to callers.
type NotificationService interface {
	SendOTPEmail(account *Account) bool
	SendVerificationEmail(account *Account) bool
	SendResetPasswordEmail(account *Account, resetURL string) bool
}

// AuthService defines the authentication orchestration.
type AuthService interface {
	SignUp(ctx context.Context, name, email, password, businessName string) (*Account, error)
	SignIn(ctx context.Context, email, password string) (*AuthResult, error)
	GetTokens(ctx context.Context, account *Account) (*AuthResult, error)
	GetTokensByAccountID(ctx context.Context, accountID string) (*AuthResult, error)
	VerifyRefresh(token, accountID string) bool
	VerifyEmailOTP(ctx context.Context, accountID, code string) (*AuthResult, error)
	ResendOTP(ctx context.Context, accountID string) (*AuthResult, error)
	ForgetPassword(ctx context.Context, email, locale string) (bool, error)
	ResetPassword(ctx context.Context, newPassword, resetToken string) (*AccountProfile, error)
}

// UserService defines read-only account lookups.
type UserService interface {
	GetAccount(ctx context.Context, accountID string) (*AccountProfile, []Business, error)
}

// BusinessService defines read-only business lookups.
type BusinessService interface {
	GetBusiness(ctx context.Context, businessID string) (*Business, error)
	GetBusinesses(ctx context.Context, businessIDs []string) ([]Business, error)
}
