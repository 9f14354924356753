package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/you/accountsvc/domain"
)

// AuthHandlers handles authentication HTTP requests
type AuthHandlers struct {
	authSvc   domain.AuthService
	cookieTTL time.Duration
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(authSvc domain.AuthService, cookieTTL time.Duration) *AuthHandlers {
	return &AuthHandlers{authSvc: authSvc, cookieTTL: cookieTTL}
}

// SignUpRequest represents the registration payload
type SignUpRequest struct {
	Name         string `json:"name" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=8"`
	BusinessName string `json:"business_name" binding:"required"`
}

// SignInRequest represents the login payload
type SignInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// RefreshRequest represents the token refresh payload
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// OTPVerifyRequest represents the email OTP verification payload
type OTPVerifyRequest struct {
	EmailOTPCode string `json:"emailOtpCode" binding:"required,len=6,numeric"`
}

// ForgotPasswordRequest represents the forgot-password payload
type ForgotPasswordRequest struct {
	Email  string `json:"email" binding:"required,email"`
	Locale string `json:"locale,omitempty"`
}

// ResetPasswordRequest represents the reset-password payload
type ResetPasswordRequest struct {
	Password string `json:"password" binding:"required,min=8"`
	Token    string `json:"token" binding:"required"`
}

// SignUp handles account + business registration.
func (h *AuthHandlers) SignUp(c *gin.Context) {
	var req SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, bindingError(err))
		return
	}

	account, err := h.authSvc.SignUp(c.Request.Context(), req.Name, req.Email, req.Password, req.BusinessName)
	if err != nil {
		writeError(c, err)
		return
	}

	result, err := h.authSvc.GetTokens(c.Request.Context(), account)
	if err != nil {
		writeError(c, err)
		return
	}

	h.setTokenCookies(c, result)
	c.JSON(http.StatusCreated, result)
}

// SignIn handles login.
func (h *AuthHandlers) SignIn(c *gin.Context) {
	var req SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, bindingError(err))
		return
	}

	result, err := h.authSvc.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	h.setTokenCookies(c, result)
	c.JSON(http.StatusOK, result)
}

// SignOut clears the token cookies. Tokens themselves stay valid until their
// TTLs elapse; there is no revocation list.
func (h *AuthHandlers) SignOut(c *gin.Context) {
	h.clearTokenCookies(c)
	c.JSON(http.StatusOK, gin.H{"message": "ok"})
}

// Refresh validates refresh-token ownership and re-mints the credential pair.
func (h *AuthHandlers) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, bindingError(err))
		return
	}

	accountID, ok := accountIDFromContext(c)
	if !ok {
		writeError(c, domain.E(domain.KindTokenNotFound, "authorization token is missing"))
		return
	}

	if !h.authSvc.VerifyRefresh(req.RefreshToken, accountID) {
		writeError(c, domain.E(domain.KindInvalidToken, "invalid token, try login again"))
		return
	}

	result, err := h.authSvc.GetTokensByAccountID(c.Request.Context(), accountID)
	if err != nil {
		writeError(c, err)
		return
	}

	h.setTokenCookies(c, result)
	c.JSON(http.StatusCreated, result)
}

// VerifyOTP checks the submitted email code and, on success, marks the email
// verified and returns fresh credentials.
func (h *AuthHandlers) VerifyOTP(c *gin.Context) {
	var req OTPVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, bindingError(err))
		return
	}

	accountID, ok := accountIDFromContext(c)
	if !ok {
		writeError(c, domain.E(domain.KindTokenNotFound, "authorization token is missing"))
		return
	}

	result, err := h.authSvc.VerifyEmailOTP(c.Request.Context(), accountID, req.EmailOTPCode)
	if err != nil {
		writeError(c, err)
		return
	}

	h.setTokenCookies(c, result)
	c.JSON(http.StatusOK, result)
}

// ResendOTP reissues the email code and returns fresh credentials.
func (h *AuthHandlers) ResendOTP(c *gin.Context) {
	accountID, ok := accountIDFromContext(c)
	if !ok {
		writeError(c, domain.E(domain.KindTokenNotFound, "authorization token is missing"))
		return
	}

	result, err := h.authSvc.ResendOTP(c.Request.Context(), accountID)
	if err != nil {
		writeError(c, err)
		return
	}

	h.setTokenCookies(c, result)
	c.JSON(http.StatusOK, result)
}

// ForgotPassword mints a reset token and emails it; the token is never part
// of the response.
func (h *AuthHandlers) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, bindingError(err))
		return
	}

	locale := req.Locale
	if locale == "" {
		locale = "en"
	}

	success, err := h.authSvc.ForgetPassword(c.Request.Context(), req.Email, locale)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": success})
}

// ResetPassword sets a new password for the account named by the mailed
// reset token.
func (h *AuthHandlers) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, bindingError(err))
		return
	}

	account, err := h.authSvc.ResetPassword(c.Request.Context(), req.Password, req.Token)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"account": account})
}

func (h *AuthHandlers) setTokenCookies(c *gin.Context, result *domain.AuthResult) {
	maxAge := int(h.cookieTTL.Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie("accessToken", result.AccessToken, maxAge, "/", "", false, true)
	c.SetCookie("refreshToken", result.RefreshToken, maxAge, "/", "", false, true)
}

func (h *AuthHandlers) clearTokenCookies(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie("accessToken", "", -1, "/", "", false, true)
	c.SetCookie("refreshToken", "", -1, "/", "", false, true)
}
