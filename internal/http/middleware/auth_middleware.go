package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/you/accountsvc/domain"
)

// Context keys set by the auth middleware.
const (
	CtxAccountID = "account_id"
	CtxTokenType = "token_type"
)

// AuthMW wraps the token service for the access guard.
type AuthMW struct {
	tokenSvc domain.TokenService
}

// NewAuthMW creates new auth middleware wrapper
func NewAuthMW(tokenSvc domain.TokenService) *AuthMW {
	return &AuthMW{tokenSvc: tokenSvc}
}

// WithJWT returns the access guard middleware. Resolution is stateless: the
// token alone identifies the caller, no account record is loaded.
func (mw *AuthMW) WithJWT() gin.HandlerFunc {
	return AuthMiddleware(mw.tokenSvc)
}

// AuthMiddleware resolves a bearer token into an account id and attaches it
// to the request context for downstream handlers.
func AuthMiddleware(tokenSvc domain.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortWithError(c, domain.E(domain.KindTokenNotFound, "authorization token is missing"))
			return
		}

		tokenParts := strings.SplitN(authHeader, " ", 2)
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" || tokenParts[1] == "" {
			abortWithError(c, domain.E(domain.KindTokenNotFound, "authorization token is missing"))
			return
		}

		claims, err := tokenSvc.ParseAccessToken(tokenParts[1])
		if err != nil {
			abortWithError(c, domain.E(domain.KindInvalidToken, "invalid or expired token"))
			return
		}

		c.Set(CtxAccountID, claims.Subject)
		c.Set(CtxTokenType, string(claims.Type))
		c.Next()
	}
}

func abortWithError(c *gin.Context, err *domain.Error) {
	c.AbortWithStatusJSON(domain.HTTPStatus(err.Kind), gin.H{
		"error_code": string(err.Kind),
		"message":    err.Message,
	})
}
