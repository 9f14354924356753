package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/you/accountsvc/domain"
)

// AuthServiceImpl implements domain.AuthService. It is the state machine
// tying together the account store, password hasher, token issuer, OTP
// generator and notifier.
type AuthServiceImpl struct {
	accountStore  domain.AccountStore
	businessStore domain.BusinessStore
	tokenStore    domain.TokenStore
	passwordSvc   domain.PasswordService
	tokenSvc      domain.TokenService
	otpSvc        domain.OTPService
	notifier      domain.NotificationService
	dashboardURL  string
}

// NewAuthService creates a new auth service.
func NewAuthService(
	accountStore domain.AccountStore,
	businessStore domain.BusinessStore,
	tokenStore domain.TokenStore,
	passwordSvc domain.PasswordService,
	tokenSvc domain.TokenService,
	otpSvc domain.OTPService,
	notifier domain.NotificationService,
	dashboardURL string,
) domain.AuthService {
	return &AuthServiceImpl{
		accountStore:  accountStore,
		businessStore: businessStore,
		tokenStore:    tokenStore,
		passwordSvc:   passwordSvc,
		tokenSvc:      tokenSvc,
		otpSvc:        otpSvc,
		notifier:      notifier,
		dashboardURL:  dashboardURL,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SignUp implements domain.AuthService. The account and its business are
// created atomically; the OTP email is dispatched fire-and-forget so a
// delivery failure never rolls back the registration.
func (s *AuthServiceImpl) SignUp(ctx context.Context, name, email, password, businessName string) (*domain.Account, error) {
	email = normalizeEmail(email)

	existing, err := s.accountStore.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up email: %w", err)
	}
	if existing != nil {
		return nil, domain.E(domain.KindEmailExisted, "account email already exists")
	}

	existingBusiness, err := s.businessStore.FindByName(ctx, businessName)
	if err != nil {
		return nil, fmt.Errorf("failed to look up business name: %w", err)
	}
	if existingBusiness != nil {
		return nil, domain.E(domain.KindBusinessNameExisted, "business name already exists")
	}

	hashedPassword, err := s.passwordSvc.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	challenge, err := s.otpSvc.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate OTP: %w", err)
	}

	account := &domain.Account{
		Name:            name,
		Email:           email,
		PasswordHash:    hashedPassword,
		Role:            domain.RoleBusinessOwner,
		IsEmailVerified: false,
		InviteStatus:    domain.InviteStatusSignUp,
		OTPCode:         challenge.Code,
		OTPExpiresAt:    &challenge.ExpiresAt,
	}

	created, err := s.accountStore.CreateAccountAndBusiness(ctx, account, businessName)
	if err != nil || created == nil {
		return nil, domain.E(domain.KindCreatedAccountFails, "creating account fails")
	}

	s.dispatch(func() bool { return s.notifier.SendOTPEmail(created) }, "OTP_EMAIL", created.ID)

	return created, nil
}

// SignIn implements domain.AuthService. A missing account and a wrong
// password produce the identical failure so callers cannot probe which
// emails are registered.
func (s *AuthServiceImpl) SignIn(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	account, err := s.accountStore.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, fmt.Errorf("failed to look up email: %w", err)
	}
	if account == nil || !s.passwordSvc.Verify(account.PasswordHash, password) {
		return nil, domain.E(domain.KindWrongEmailAndPassword, "wrong email and password")
	}

	return s.GetTokens(ctx, account)
}

// GetTokens implements domain.AuthService. Mints a credential pair labeled
// with the token type derived from account state, and overwrites any prior
// persisted pair for the account.
func (s *AuthServiceImpl) GetTokens(ctx context.Context, account *domain.Account) (*domain.AuthResult, error) {
	tokenType := account.TokenTypeForState()

	accessToken, err := s.tokenSvc.IssueAccessToken(account, tokenType)
	if err != nil {
		return nil, fmt.Errorf("failed to issue access token: %w", err)
	}

	refreshToken, err := s.tokenSvc.IssueRefreshToken(account, tokenType)
	if err != nil {
		return nil, fmt.Errorf("failed to issue refresh token: %w", err)
	}

	expiresAt := time.Now().Add(s.tokenSvc.AccessTTL())
	record := &domain.TokenRecord{
		AccountID:    account.ID,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Type:         tokenType,
		ExpiresAt:    expiresAt,
	}
	if err := s.tokenStore.Upsert(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to persist credential pair: %w", err)
	}

	return &domain.AuthResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenExpires: expiresAt,
		Account:      account.Profile(),
	}, nil
}

// VerifyRefresh implements domain.AuthService. Non-throwing ownership check
// used before re-minting credentials on refresh.
func (s *AuthServiceImpl) VerifyRefresh(token, accountID string) bool {
	return s.tokenSvc.RefreshSubjectMatches(token, accountID)
}

// GetTokensByAccountID implements domain.AuthService
func (s *AuthServiceImpl) GetTokensByAccountID(ctx context.Context, accountID string) (*domain.AuthResult, error) {
	account, err := s.accountStore.FindByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up account: %w", err)
	}
	if account == nil || account.PasswordHash == "" {
		return nil, domain.E(domain.KindAccessDenied, "access denied")
	}
	return s.GetTokens(ctx, account)
}

// VerifyEmailOTP implements domain.AuthService. An expired code is a
// self-healing failure: a replacement code is persisted and mailed before
// the expiry error is returned.
func (s *AuthServiceImpl) VerifyEmailOTP(ctx context.Context, accountID, code string) (*domain.AuthResult, error) {
	account, err := s.accountStore.FindByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up account: %w", err)
	}
	if account == nil {
		return nil, domain.E(domain.KindNotFound, "account not found")
	}
	if account.IsEmailVerified {
		return nil, domain.E(domain.KindEmailAlreadyVerified, "email already verified")
	}

	if account.OTPExpiresAt == nil || s.otpSvc.IsExpired(*account.OTPExpiresAt) {
		if err := s.reissueOTP(ctx, account); err != nil {
			return nil, err
		}
		return nil, domain.E(domain.KindOTPExpired, "OTP has expired, a new code has been sent")
	}

	if account.OTPCode != code {
		return nil, domain.E(domain.KindOTPCodeNotMatch, "OTP code does not match")
	}

	updated, err := s.accountStore.MarkEmailVerified(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to mark email verified: %w", err)
	}

	log.Printf("EMAIL_VERIFIED: account_id=%s email=%s", updated.ID, updated.Email)

	return s.GetTokens(ctx, updated)
}

// ResendOTP implements domain.AuthService. Resend doubles as a
// re-authentication refresh, so a fresh credential pair is returned with the
// new code.
func (s *AuthServiceImpl) ResendOTP(ctx context.Context, accountID string) (*domain.AuthResult, error) {
	account, err := s.accountStore.FindByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up account: %w", err)
	}
	if account == nil {
		return nil, domain.E(domain.KindNotFound, "account not found")
	}
	if account.IsEmailVerified {
		return nil, domain.E(domain.KindEmailAlreadyVerified, "email already verified")
	}
	if account.OTPExpiresAt != nil && s.otpSvc.IsResendTooSoon(*account.OTPExpiresAt) {
		return nil, domain.E(domain.KindTooManyRequests, "OTP was requested too recently")
	}

	if err := s.reissueOTP(ctx, account); err != nil {
		return nil, err
	}

	return s.GetTokens(ctx, account)
}

// reissueOTP replaces the stored code wholesale and dispatches the email.
func (s *AuthServiceImpl) reissueOTP(ctx context.Context, account *domain.Account) error {
	challenge, err := s.otpSvc.Generate()
	if err != nil {
		return fmt.Errorf("failed to generate OTP: %w", err)
	}
	if err := s.accountStore.SetOTP(ctx, account.ID, challenge.Code, challenge.ExpiresAt); err != nil {
		return fmt.Errorf("failed to persist OTP: %w", err)
	}

	account.OTPCode = challenge.Code
	account.OTPExpiresAt = &challenge.ExpiresAt

	s.dispatch(func() bool { return s.notifier.SendOTPEmail(account) }, "OTP_EMAIL", account.ID)
	return nil
}

// ForgetPassword implements domain.AuthService. The reset token is only ever
// delivered by email, never returned to the caller.
func (s *AuthServiceImpl) ForgetPassword(ctx context.Context, email, locale string) (bool, error) {
	account, err := s.accountStore.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return false, fmt.Errorf("failed to look up email: %w", err)
	}
	if account == nil {
		return false, domain.E(domain.KindNotFound, "account not found")
	}
	if !account.IsEmailVerified {
		return false, domain.E(domain.KindEmailNotVerified, "email is not verified")
	}

	resetToken, err := s.tokenSvc.IssueResetToken(account.ID)
	if err != nil {
		return false, fmt.Errorf("failed to issue reset token: %w", err)
	}

	resetURL := fmt.Sprintf("%s/%s/reset-password?token=%s", strings.TrimRight(s.dashboardURL, "/"), locale, resetToken)
	s.dispatch(func() bool { return s.notifier.SendResetPasswordEmail(account, resetURL) }, "RESET_EMAIL", account.ID)

	return true, nil
}

// ResetPassword implements domain.AuthService. Possession of the mailed token
// is the proof of ownership; the old password is not re-verified.
func (s *AuthServiceImpl) ResetPassword(ctx context.Context, newPassword, resetToken string) (*domain.AccountProfile, error) {
	if resetToken == "" {
		return nil, domain.E(domain.KindTokenNotFound, "reset token is missing")
	}

	claims, err := s.tokenSvc.ParseResetToken(resetToken)
	if err != nil {
		return nil, domain.E(domain.KindInvalidToken, "invalid or expired reset token")
	}

	account, err := s.accountStore.FindByID(ctx, claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("failed to look up account: %w", err)
	}
	if account == nil || account.PasswordHash == "" {
		return nil, domain.E(domain.KindNotFound, "account not found")
	}

	hashedPassword, err := s.passwordSvc.Hash(newPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	updated, err := s.accountStore.UpdateAccount(ctx, account.ID, domain.AccountUpdate{PasswordHash: &hashedPassword})
	if err != nil {
		return nil, fmt.Errorf("failed to update password: %w", err)
	}

	log.Printf("PASSWORD_RESET: account_id=%s", updated.ID)

	return updated.Profile(), nil
}

// dispatch runs an email send on its own goroutine. Delivery failure is
// logged and swallowed; it never blocks or fails the primary operation.
func (s *AuthServiceImpl) dispatch(send func() bool, label, accountID string) {
	go func() {
		if !send() {
			log.Printf("%s_SEND_FAILED: account_id=%s", label, accountID)
		}
	}()
}
