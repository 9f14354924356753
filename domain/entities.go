package domain

import "time"

// InviteStatus tracks where an account sits in its invite lifecycle.
type InviteStatus string

const (
	InviteStatusSignUp         InviteStatus = "SIGNUP"
	InviteStatusInvited        InviteStatus = "INVITED"
	InviteStatusReadyForUpdate InviteStatus = "READY_TO_UPDATE_PASSWORD"
	InviteStatusVerified       InviteStatus = "VERIFIED"
)

// TokenType labels issued credentials with the account lifecycle stage they
// were minted in. It is derived from account state, never caller-supplied.
type TokenType string

const (
	TokenTypeVerifyEmail   TokenType = "VERIFY_EMAIL"
	TokenTypeResetPassword TokenType = "RESET_PASSWORD"
	TokenTypeVerified      TokenType = "VERIFIED"
)

// Role labels stored with an account. Flat labels only, no permission engine.
const (
	RoleBusinessOwner = "business_owner"
	RoleMember        = "member"
)

// Account represents a registered person scoped to one business.
type Account struct {
	ID              string
	Name            string
	Email           string
	PasswordHash    string
	Role            string
	IsEmailVerified bool
	InviteStatus    InviteStatus
	OTPCode         string
	OTPExpiresAt    *time.Time
	BusinessID      string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// AccountProfile is the response-safe projection of an Account. It omits the
// password hash and OTP secret at the type level so they can never leak into
// a serialized response.
type AccountProfile struct {
	ID              string       `json:"id"`
	Name            string       `json:"name"`
	Email           string       `json:"email"`
	Role            string       `json:"role"`
	IsEmailVerified bool         `json:"is_email_verified"`
	InviteStatus    InviteStatus `json:"invite_status"`
	BusinessID      string       `json:"business_id"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}

// Profile returns the response-safe projection of the account.
func (a *Account) Profile() *AccountProfile {
	return &AccountProfile{
		ID:              a.ID,
		Name:            a.Name,
		Email:           a.Email,
		Role:            a.Role,
		IsEmailVerified: a.IsEmailVerified,
		InviteStatus:    a.InviteStatus,
		BusinessID:      a.BusinessID,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

// TokenTypeForState derives the token type from the account lifecycle state.
func (a *Account) TokenTypeForState() TokenType {
	if a.InviteStatus == InviteStatusInvited || !a.IsEmailVerified {
		return TokenTypeVerifyEmail
	}
	if a.InviteStatus == InviteStatusReadyForUpdate {
		return TokenTypeResetPassword
	}
	return TokenTypeVerified
}

// Business is a tenant owning one or more accounts.
type Business struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TokenRecord is the persisted credential pair. Exactly one record exists per
// account; every mint overwrites the previous one.
type TokenRecord struct {
	AccountID    string    `json:"account_id"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	Type         TokenType `json:"type"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// AuthResult is the credential bundle returned by token-minting operations.
type AuthResult struct {
	AccessToken  string          `json:"accessToken"`
	RefreshToken string          `json:"refreshToken"`
	TokenExpires time.Time       `json:"tokenExpires"`
	Account      *AccountProfile `json:"account"`
}

// OTPChallenge is an issued one-time code with its validity window.
type OTPChallenge struct {
	Code      string
	ExpiresAt time.Time
}

// AccountUpdate carries partial field updates for an account. Nil fields are
// left untouched.
type AccountUpdate struct {
	Name         *string
	PasswordHash *string
	InviteStatus *InviteStatus
}

// TokenClaims are the verified claims extracted from a signed token.
type TokenClaims struct {
	Subject         string
	Email           string
	Username        string
	IsEmailVerified bool
	Type            TokenType
	IssuedAt        int64
	ExpiresAt       int64
}
