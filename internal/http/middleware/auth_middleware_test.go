package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/you/accountsvc/domain"
	"github.com/you/accountsvc/internal/mocks"
)

func setupGuardedRouter(t *testing.T, tokenSvc domain.TokenService) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", AuthMiddleware(tokenSvc), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"account_id": c.GetString(CtxAccountID),
			"token_type": c.GetString(CtxTokenType),
		})
	})
	return router
}

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name              string
		authHeader        string
		setupTokenSvc     func(m *mocks.MockTokenService)
		expectedStatus    int
		expectedErrorCode string
	}{
		{
			name:           "valid bearer token",
			authHeader:     "Bearer good-token",
			setupTokenSvc:  func(m *mocks.MockTokenService) {},
			expectedStatus: http.StatusOK,
		},
		{
			name:              "missing header",
			authHeader:        "",
			setupTokenSvc:     func(m *mocks.MockTokenService) {},
			expectedStatus:    http.StatusUnauthorized,
			expectedErrorCode: "TOKEN_NOT_FOUND",
		},
		{
			name:              "missing bearer prefix",
			authHeader:        "good-token",
			setupTokenSvc:     func(m *mocks.MockTokenService) {},
			expectedStatus:    http.StatusUnauthorized,
			expectedErrorCode: "TOKEN_NOT_FOUND",
		},
		{
			name:              "wrong scheme",
			authHeader:        "Basic Zm9vOmJhcg==",
			setupTokenSvc:     func(m *mocks.MockTokenService) {},
			expectedStatus:    http.StatusUnauthorized,
			expectedErrorCode: "TOKEN_NOT_FOUND",
		},
		{
			name:       "rejected token",
			authHeader: "Bearer bad-token",
			setupTokenSvc: func(m *mocks.MockTokenService) {
				m.ParseAccessTokenFunc = func(token string) (*domain.TokenClaims, error) {
					return nil, domain.E(domain.KindInvalidToken, "invalid or expired token")
				}
			},
			expectedStatus:    http.StatusUnauthorized,
			expectedErrorCode: "INVALID_TOKEN",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokenSvc := mocks.NewMockTokenService()
			tt.setupTokenSvc(tokenSvc)
			router := setupGuardedRouter(t, tokenSvc)

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}
			if tt.expectedErrorCode != "" {
				var body map[string]string
				if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
					t.Fatalf("failed to decode body: %v", err)
				}
				if body["error_code"] != tt.expectedErrorCode {
					t.Errorf("expected error_code %s, got %s", tt.expectedErrorCode, body["error_code"])
				}
			}
		})
	}
}

func TestAuthMiddlewareAttachesClaims(t *testing.T) {
	tokenSvc := mocks.NewMockTokenService()
	tokenSvc.ParseAccessTokenFunc = func(token string) (*domain.TokenClaims, error) {
		return &domain.TokenClaims{Subject: "acc_42", Type: domain.TokenTypeVerifyEmail}, nil
	}
	router := setupGuardedRouter(t, tokenSvc)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body["account_id"] != "acc_42" {
		t.Errorf("expected account_id acc_42, got %s", body["account_id"])
	}
	if body["token_type"] != string(domain.TokenTypeVerifyEmail) {
		t.Errorf("expected token_type VERIFY_EMAIL, got %s", body["token_type"])
	}
}

func TestAPIKeyMiddleware(t *testing.T) {
	tests := []struct {
		name           string
		configuredKey  string
		requestKey     string
		expectedStatus int
	}{
		{"no key configured lets everything pass", "", "", http.StatusOK},
		{"matching key", "secret-key", "secret-key", http.StatusOK},
		{"missing key", "secret-key", "", http.StatusUnauthorized},
		{"wrong key", "secret-key", "other-key", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gin.SetMode(gin.TestMode)
			router := gin.New()
			router.GET("/ping", APIKeyMiddleware(tt.configuredKey), func(c *gin.Context) {
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			if tt.requestKey != "" {
				req.Header.Set("x-api-key", tt.requestKey)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}
		})
	}
}
