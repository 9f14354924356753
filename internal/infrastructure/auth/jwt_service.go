package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/you/accountsvc/domain"
)

// resetPurpose marks single-use password-reset tokens. Reset tokens are
// signed with the access secret, so the purpose claim is what keeps them
// from being replayed as access tokens.
const resetPurpose = "password_reset"

// JWTServiceImpl implements domain.TokenService. Access and refresh tokens
// are signed with distinct secrets so compromise of one cannot forge the
// other.
type JWTServiceImpl struct {
	accessSecret  []byte
	refreshSecret []byte
	issuer        string
	accessTTL     time.Duration
	refreshTTL    time.Duration
	resetTTL      time.Duration
	now           func() time.Time
}

// NewJWTService creates a new JWT token service.
func NewJWTService(accessSecret, refreshSecret, issuer string, accessTTL, refreshTTL, resetTTL time.Duration) domain.TokenService {
	return &JWTServiceImpl{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		issuer:        issuer,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		resetTTL:      resetTTL,
		now:           time.Now,
	}
}

// AccessTTL implements domain.TokenService
func (j *JWTServiceImpl) AccessTTL() time.Duration {
	return j.accessTTL
}

// IssueAccessToken implements domain.TokenService
func (j *JWTServiceImpl) IssueAccessToken(account *domain.Account, tokenType domain.TokenType) (string, error) {
	now := j.now()
	claims := jwt.MapClaims{
		"sub":               account.ID,
		"email":             account.Email,
		"username":          account.Name,
		"is_email_verified": account.IsEmailVerified,
		"type":              string(tokenType),
		"iss":               j.issuer,
		"iat":               now.Unix(),
		"exp":               now.Add(j.accessTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.accessSecret)
}

// IssueRefreshToken implements domain.TokenService. Same claim shape as the
// access token minus the username.
func (j *JWTServiceImpl) IssueRefreshToken(account *domain.Account, tokenType domain.TokenType) (string, error) {
	now := j.now()
	claims := jwt.MapClaims{
		"sub":               account.ID,
		"email":             account.Email,
		"is_email_verified": account.IsEmailVerified,
		"type":              string(tokenType),
		"iss":               j.issuer,
		"iat":               now.Unix(),
		"exp":               now.Add(j.refreshTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.refreshSecret)
}

// IssueResetToken implements domain.TokenService
func (j *JWTServiceImpl) IssueResetToken(accountID string) (string, error) {
	now := j.now()
	claims := jwt.MapClaims{
		"sub":     accountID,
		"purpose": resetPurpose,
		"iss":     j.issuer,
		"iat":     now.Unix(),
		"exp":     now.Add(j.resetTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.accessSecret)
}

// ParseAccessToken implements domain.TokenService. Reset tokens share the
// access secret, so anything carrying the reset purpose claim is rejected
// here regardless of signature validity.
func (j *JWTServiceImpl) ParseAccessToken(tokenString string) (*domain.TokenClaims, error) {
	claims, err := j.parse(tokenString, j.accessSecret)
	if err != nil {
		return nil, err
	}
	if purpose, ok := claims["purpose"].(string); ok && purpose == resetPurpose {
		return nil, domain.E(domain.KindInvalidToken, "reset token cannot be used for authentication")
	}
	return j.extract(claims)
}

// ParseResetToken implements domain.TokenService. Only tokens carrying the
// reset purpose claim are accepted; an access token presented here fails
// even though the signature checks out.
func (j *JWTServiceImpl) ParseResetToken(tokenString string) (*domain.TokenClaims, error) {
	claims, err := j.parse(tokenString, j.accessSecret)
	if err != nil {
		return nil, err
	}
	purpose, ok := claims["purpose"].(string)
	if !ok || purpose != resetPurpose {
		return nil, domain.E(domain.KindInvalidToken, "token is not a password reset token")
	}
	return j.extract(claims)
}

// RefreshSubjectMatches implements domain.TokenService. Any verification
// failure is reported as false, never as an error.
func (j *JWTServiceImpl) RefreshSubjectMatches(tokenString, accountID string) bool {
	claims, err := j.parse(tokenString, j.refreshSecret)
	if err != nil {
		return false
	}
	sub, ok := claims["sub"].(string)
	return ok && sub == accountID
}

// parse verifies signature and expiry against the given secret. Expiry is
// exclusive: a token inspected at exactly exp is already invalid.
func (j *JWTServiceImpl) parse(tokenString string, secret []byte) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.E(domain.KindInvalidToken, "unexpected signing method")
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return nil, domain.E(domain.KindInvalidToken, "invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domain.E(domain.KindInvalidToken, "malformed token claims")
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		return nil, domain.E(domain.KindInvalidToken, "missing expiry claim")
	}
	if !j.now().Before(time.Unix(int64(exp), 0)) {
		return nil, domain.E(domain.KindInvalidToken, "token has expired")
	}

	return claims, nil
}

// extract maps verified raw claims into domain.TokenClaims.
func (j *JWTServiceImpl) extract(claims jwt.MapClaims) (*domain.TokenClaims, error) {
	sub, ok := claims["sub"].(string)
	if !ok {
		return nil, domain.E(domain.KindInvalidToken, "missing subject claim")
	}

	tc := &domain.TokenClaims{Subject: sub}
	if email, ok := claims["email"].(string); ok {
		tc.Email = email
	}
	if username, ok := claims["username"].(string); ok {
		tc.Username = username
	}
	if verified, ok := claims["is_email_verified"].(bool); ok {
		tc.IsEmailVerified = verified
	}
	if tokenType, ok := claims["type"].(string); ok {
		tc.Type = domain.TokenType(tokenType)
	}
	if iat, ok := claims["iat"].(float64); ok {
		tc.IssuedAt = int64(iat)
	}
	if exp, ok := claims["exp"].(float64); ok {
		tc.ExpiresAt = int64(exp)
	}
	return tc, nil
}
