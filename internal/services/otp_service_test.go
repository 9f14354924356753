package services

import (
	"strconv"
	"testing"
	"time"
)

// newClockedOTPService returns an OTP service whose clock the test controls.
func newClockedOTPService(t *testing.T, start time.Time) (*OTPServiceImpl, *time.Time) {
	t.Helper()

	current := start
	svc := &OTPServiceImpl{
		config: OTPConfig{
			TTL:          5 * time.Minute,
			ResendWindow: 30 * time.Second,
		},
		now: func() time.Time { return current },
	}
	return svc, &current
}

func TestOTPServiceImpl_Generate(t *testing.T) {
	start := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	svc, _ := newClockedOTPService(t, start)

	for i := 0; i < 50; i++ {
		challenge, err := svc.Generate()
		if err != nil {
			t.Fatalf("Generate() returned error: %v", err)
		}
		if len(challenge.Code) != 6 {
			t.Fatalf("expected 6-digit code, got %q", challenge.Code)
		}
		n, err := strconv.Atoi(challenge.Code)
		if err != nil {
			t.Fatalf("code %q is not numeric: %v", challenge.Code, err)
		}
		if n < 100000 || n > 999999 {
			t.Fatalf("code %d outside the 100000..999999 range", n)
		}
		if !challenge.ExpiresAt.Equal(start.Add(5 * time.Minute)) {
			t.Fatalf("expected expiry %v, got %v", start.Add(5*time.Minute), challenge.ExpiresAt)
		}
	}
}

func TestOTPServiceImpl_ResendThrottleRoundTrip(t *testing.T) {
	start := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	svc, current := newClockedOTPService(t, start)

	challenge, err := svc.Generate()
	if err != nil {
		t.Fatalf("Generate() returned error: %v", err)
	}

	// Immediately after issuance: resend throttled, not expired.
	if !svc.IsResendTooSoon(challenge.ExpiresAt) {
		t.Error("expected resend to be throttled immediately after issuance")
	}
	if svc.IsExpired(challenge.ExpiresAt) {
		t.Error("fresh code must not be expired")
	}

	// 31 seconds later the throttle window has passed.
	*current = start.Add(31 * time.Second)
	if svc.IsResendTooSoon(challenge.ExpiresAt) {
		t.Error("expected resend to be allowed after 31 seconds")
	}
	if svc.IsExpired(challenge.ExpiresAt) {
		t.Error("code must still be valid after 31 seconds")
	}

	// At exactly the expiry instant the code is still valid (expiry is
	// crossed only once now moves past it).
	*current = challenge.ExpiresAt
	if svc.IsExpired(challenge.ExpiresAt) {
		t.Error("code at exactly its expiry instant is not yet expired")
	}

	*current = challenge.ExpiresAt.Add(time.Second)
	if !svc.IsExpired(challenge.ExpiresAt) {
		t.Error("expected code to be expired after the validity window")
	}
}

func TestOTPServiceImpl_ThrottleAnchoredToOriginalIssuance(t *testing.T) {
	start := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	svc, current := newClockedOTPService(t, start)

	challenge, err := svc.Generate()
	if err != nil {
		t.Fatalf("Generate() returned error: %v", err)
	}

	// The throttle is computed from expiresAt - TTL, so it tracks the
	// stored expiry, not any external resend bookkeeping.
	issuedAt := challenge.ExpiresAt.Add(-5 * time.Minute)
	if !issuedAt.Equal(start) {
		t.Fatalf("recovered issuance time %v, want %v", issuedAt, start)
	}

	*current = start.Add(29 * time.Second)
	if !svc.IsResendTooSoon(challenge.ExpiresAt) {
		t.Error("29s after issuance should still be throttled")
	}
	*current = start.Add(30 * time.Second)
	if svc.IsResendTooSoon(challenge.ExpiresAt) {
		t.Error("exactly 30s after issuance the throttle has elapsed")
	}
}
