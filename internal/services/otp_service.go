package services

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/you/accountsvc/domain"
)

// OTPConfig controls code validity and resend throttling.
type OTPConfig struct {
	TTL          time.Duration
	ResendWindow time.Duration
}

// OTPServiceImpl implements domain.OTPService. Codes are uniformly random
// six-digit decimals; the validity window is fixed at generation time and the
// resend throttle is anchored to the original issuance instant, recovered by
// subtracting the TTL from the stored expiry.
type OTPServiceImpl struct {
	config OTPConfig
	now    func() time.Time
}

// NewOTPService creates a new OTP service.
func NewOTPService(config OTPConfig) domain.OTPService {
	return &OTPServiceImpl{config: config, now: time.Now}
}

// Generate implements domain.OTPService
func (s *OTPServiceImpl) Generate() (domain.OTPChallenge, error) {
	// Uniform over 100000..999999.
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return domain.OTPChallenge{}, fmt.Errorf("failed to generate OTP code: %w", err)
	}
	return domain.OTPChallenge{
		Code:      fmt.Sprintf("%06d", n.Int64()+100000),
		ExpiresAt: s.now().Add(s.config.TTL),
	}, nil
}

// IsExpired implements domain.OTPService
func (s *OTPServiceImpl) IsExpired(expiresAt time.Time) bool {
	return s.now().After(expiresAt)
}

// IsResendTooSoon implements domain.OTPService. The throttle is relative to
// the original issuance time, not the last resend.
func (s *OTPServiceImpl) IsResendTooSoon(expiresAt time.Time) bool {
	issuedAt := expiresAt.Add(-s.config.TTL)
	return s.now().Before(issuedAt.Add(s.config.ResendWindow))
}
