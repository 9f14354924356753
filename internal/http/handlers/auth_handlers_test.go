package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/you/accountsvc/domain"
	"github.com/you/accountsvc/internal/mocks"
)

// stubAccountID attaches an account id the way the access guard does.
func stubAccountID(id string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if id != "" {
			c.Set("account_id", id)
		}
		c.Next()
	}
}

func setupAuthRouter(t *testing.T, authSvc domain.AuthService, accountID string) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)
	h := NewAuthHandlers(authSvc, 24*time.Hour)

	router := gin.New()
	router.POST("/auth/signup", h.SignUp)
	router.POST("/auth/signin", h.SignIn)
	router.POST("/auth/forgot-password", h.ForgotPassword)
	router.POST("/auth/reset-password", h.ResetPassword)

	guarded := router.Group("", stubAccountID(accountID))
	guarded.POST("/auth/signout", h.SignOut)
	guarded.POST("/auth/refresh", h.Refresh)
	guarded.POST("/auth/otp", h.VerifyOTP)
	guarded.GET("/auth/resendotp", h.ResendOTP)
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	return body
}

func TestAuthHandlers_SignUp(t *testing.T) {
	tests := []struct {
		name              string
		body              string
		setupAuthSvc      func(m *mocks.MockAuthService)
		expectedStatus    int
		expectedErrorCode string
	}{
		{
			name:           "successful sign up",
			body:           `{"name":"Ada","email":"ada@example.com","password":"password-123","business_name":"Acme"}`,
			setupAuthSvc:   func(m *mocks.MockAuthService) {},
			expectedStatus: http.StatusCreated,
		},
		{
			name:              "malformed json",
			body:              `{"name":`,
			setupAuthSvc:      func(m *mocks.MockAuthService) {},
			expectedStatus:    http.StatusBadRequest,
			expectedErrorCode: "BAD_REQUEST",
		},
		{
			name:              "invalid email",
			body:              `{"name":"Ada","email":"not-an-email","password":"password-123","business_name":"Acme"}`,
			setupAuthSvc:      func(m *mocks.MockAuthService) {},
			expectedStatus:    http.StatusBadRequest,
			expectedErrorCode: "API_VALIDATION_ERROR",
		},
		{
			name:              "short password",
			body:              `{"name":"Ada","email":"ada@example.com","password":"short","business_name":"Acme"}`,
			setupAuthSvc:      func(m *mocks.MockAuthService) {},
			expectedStatus:    http.StatusBadRequest,
			expectedErrorCode: "API_VALIDATION_ERROR",
		},
		{
			name: "duplicate email",
			body: `{"name":"Ada","email":"ada@example.com","password":"password-123","business_name":"Acme"}`,
			setupAuthSvc: func(m *mocks.MockAuthService) {
				m.SignUpFunc = func(ctx context.Context, name, email, password, businessName string) (*domain.Account, error) {
					return nil, domain.E(domain.KindEmailExisted, "this email already registered")
				}
			},
			expectedStatus:    http.StatusConflict,
			expectedErrorCode: "EMAIL_EXISTED",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authSvc := mocks.NewMockAuthService()
			tt.setupAuthSvc(authSvc)
			router := setupAuthRouter(t, authSvc, "")

			w := postJSON(t, router, "/auth/signup", tt.body)

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
			if tt.expectedErrorCode != "" {
				body := decodeBody(t, w)
				if body["error_code"] != tt.expectedErrorCode {
					t.Errorf("expected error_code %s, got %v", tt.expectedErrorCode, body["error_code"])
				}
				return
			}
			body := decodeBody(t, w)
			if body["accessToken"] == "" {
				t.Error("expected an access token in the response")
			}
		})
	}
}

func TestAuthHandlers_SignUpSetsCookies(t *testing.T) {
	router := setupAuthRouter(t, mocks.NewMockAuthService(), "")

	w := postJSON(t, router, "/auth/signup", `{"name":"Ada","email":"ada@example.com","password":"password-123","business_name":"Acme"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", w.Code)
	}

	cookies := w.Result().Cookies()
	var access, refresh *http.Cookie
	for _, c := range cookies {
		switch c.Name {
		case "accessToken":
			access = c
		case "refreshToken":
			refresh = c
		}
	}
	if access == nil || refresh == nil {
		t.Fatal("expected both token cookies to be set")
	}
	if !access.HttpOnly || !refresh.HttpOnly {
		t.Error("token cookies must be httpOnly")
	}
}

func TestAuthHandlers_SignIn(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		router := setupAuthRouter(t, mocks.NewMockAuthService(), "")

		w := postJSON(t, router, "/auth/signin", `{"email":"ada@example.com","password":"password-123"}`)
		if w.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", w.Code)
		}
		body := decodeBody(t, w)
		if _, ok := body["account"]; !ok {
			t.Error("expected the account projection in the response")
		}
	})

	t.Run("wrong credentials map to 400", func(t *testing.T) {
		authSvc := mocks.NewMockAuthService()
		authSvc.SignInFunc = func(ctx context.Context, email, password string) (*domain.AuthResult, error) {
			return nil, domain.E(domain.KindWrongEmailAndPassword, "wrong email or password")
		}
		router := setupAuthRouter(t, authSvc, "")

		w := postJSON(t, router, "/auth/signin", `{"email":"ada@example.com","password":"password-124"}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected status 400, got %d", w.Code)
		}
		body := decodeBody(t, w)
		if body["error_code"] != "WRONG_EMAIL_AND_PASSWORD" {
			t.Errorf("expected error_code WRONG_EMAIL_AND_PASSWORD, got %v", body["error_code"])
		}
	})
}

func TestAuthHandlers_Refresh(t *testing.T) {
	t.Run("success re-mints the pair", func(t *testing.T) {
		router := setupAuthRouter(t, mocks.NewMockAuthService(), "acc_1")

		w := postJSON(t, router, "/auth/refresh", `{"refreshToken":"refresh_acc_1"}`)
		if w.Code != http.StatusCreated {
			t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("mismatched refresh token", func(t *testing.T) {
		authSvc := mocks.NewMockAuthService()
		authSvc.VerifyRefreshFunc = func(token, accountID string) bool { return false }
		router := setupAuthRouter(t, authSvc, "acc_1")

		w := postJSON(t, router, "/auth/refresh", `{"refreshToken":"someone-elses-token"}`)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected status 401, got %d", w.Code)
		}
		body := decodeBody(t, w)
		if body["error_code"] != "INVALID_TOKEN" {
			t.Errorf("expected error_code INVALID_TOKEN, got %v", body["error_code"])
		}
	})

	t.Run("no account in context", func(t *testing.T) {
		router := setupAuthRouter(t, mocks.NewMockAuthService(), "")

		w := postJSON(t, router, "/auth/refresh", `{"refreshToken":"refresh_acc_1"}`)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected status 401, got %d", w.Code)
		}
	})
}

func TestAuthHandlers_VerifyOTP(t *testing.T) {
	tests := []struct {
		name              string
		body              string
		setupAuthSvc      func(m *mocks.MockAuthService)
		expectedStatus    int
		expectedErrorCode string
	}{
		{
			name:           "valid code",
			body:           `{"emailOtpCode":"123456"}`,
			setupAuthSvc:   func(m *mocks.MockAuthService) {},
			expectedStatus: http.StatusOK,
		},
		{
			name:              "non-numeric code rejected at binding",
			body:              `{"emailOtpCode":"12345x"}`,
			setupAuthSvc:      func(m *mocks.MockAuthService) {},
			expectedStatus:    http.StatusBadRequest,
			expectedErrorCode: "API_VALIDATION_ERROR",
		},
		{
			name:              "wrong length rejected at binding",
			body:              `{"emailOtpCode":"1234"}`,
			setupAuthSvc:      func(m *mocks.MockAuthService) {},
			expectedStatus:    http.StatusBadRequest,
			expectedErrorCode: "API_VALIDATION_ERROR",
		},
		{
			name: "expired code",
			body: `{"emailOtpCode":"123456"}`,
			setupAuthSvc: func(m *mocks.MockAuthService) {
				m.VerifyEmailOTPFunc = func(ctx context.Context, accountID, code string) (*domain.AuthResult, error) {
					return nil, domain.E(domain.KindOTPExpired, "otp code expired, a new one was sent")
				}
			},
			expectedStatus:    http.StatusGone,
			expectedErrorCode: "OTP_EXPIRED",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authSvc := mocks.NewMockAuthService()
			tt.setupAuthSvc(authSvc)
			router := setupAuthRouter(t, authSvc, "acc_1")

			w := postJSON(t, router, "/auth/otp", tt.body)

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
			if tt.expectedErrorCode != "" {
				body := decodeBody(t, w)
				if body["error_code"] != tt.expectedErrorCode {
					t.Errorf("expected error_code %s, got %v", tt.expectedErrorCode, body["error_code"])
				}
			}
		})
	}
}

func TestAuthHandlers_ResendOTP(t *testing.T) {
	t.Run("throttled maps to 429", func(t *testing.T) {
		authSvc := mocks.NewMockAuthService()
		authSvc.ResendOTPFunc = func(ctx context.Context, accountID string) (*domain.AuthResult, error) {
			return nil, domain.E(domain.KindTooManyRequests, "otp was just sent, retry later")
		}
		router := setupAuthRouter(t, authSvc, "acc_1")

		req := httptest.NewRequest(http.MethodGet, "/auth/resendotp", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != http.StatusTooManyRequests {
			t.Fatalf("expected status 429, got %d", w.Code)
		}
	})
}

func TestAuthHandlers_ForgotPassword(t *testing.T) {
	t.Run("success never includes the token", func(t *testing.T) {
		router := setupAuthRouter(t, mocks.NewMockAuthService(), "")

		w := postJSON(t, router, "/auth/forgot-password", `{"email":"ada@example.com"}`)
		if w.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", w.Code)
		}
		body := decodeBody(t, w)
		if body["success"] != true {
			t.Error("expected success=true")
		}
		if strings.Contains(w.Body.String(), "token") {
			t.Error("the reset token must never appear in the response")
		}
	})

	t.Run("defaults the locale", func(t *testing.T) {
		authSvc := mocks.NewMockAuthService()
		var gotLocale string
		authSvc.ForgetPasswordFunc = func(ctx context.Context, email, locale string) (bool, error) {
			gotLocale = locale
			return true, nil
		}
		router := setupAuthRouter(t, authSvc, "")

		postJSON(t, router, "/auth/forgot-password", `{"email":"ada@example.com"}`)
		if gotLocale != "en" {
			t.Errorf("expected default locale en, got %q", gotLocale)
		}
	})
}

func TestAuthHandlers_ResetPassword(t *testing.T) {
	t.Run("success returns the profile", func(t *testing.T) {
		router := setupAuthRouter(t, mocks.NewMockAuthService(), "")

		w := postJSON(t, router, "/auth/reset-password", `{"password":"new-password-1","token":"reset_acc_1"}`)
		if w.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", w.Code)
		}
		body := decodeBody(t, w)
		if _, ok := body["account"]; !ok {
			t.Error("expected the account projection in the response")
		}
	})

	t.Run("missing token rejected at binding", func(t *testing.T) {
		router := setupAuthRouter(t, mocks.NewMockAuthService(), "")

		w := postJSON(t, router, "/auth/reset-password", `{"password":"new-password-1"}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected status 400, got %d", w.Code)
		}
	})
}

func TestAuthHandlers_SignOutClearsCookies(t *testing.T) {
	router := setupAuthRouter(t, mocks.NewMockAuthService(), "acc_1")

	w := postJSON(t, router, "/auth/signout", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	for _, c := range w.Result().Cookies() {
		if c.Name == "accessToken" || c.Name == "refreshToken" {
			if c.MaxAge >= 0 {
				t.Errorf("cookie %s should be expired, got MaxAge=%d", c.Name, c.MaxAge)
			}
		}
	}
}
