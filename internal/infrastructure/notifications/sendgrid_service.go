package notifications

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/you/accountsvc/domain"
)

const mailSendURL = "https://api.sendgrid.com/v3/mail/send"

// SendGridConfig carries the mail credentials and template ids.
type SendGridConfig struct {
	APIKey           string
	FromEmail        string
	OTPTemplateID    string
	VerifyTemplateID string
	ResetTemplateID  string
}

// SendGridServiceImpl implements domain.NotificationService over the
// SendGrid v3 mail-send API. Failures are logged at this boundary and
// reported as false, never propagated.
type SendGridServiceImpl struct {
	config  SendGridConfig
	client  *http.Client
	baseURL string
}

// NewSendGridService creates a new SendGrid notification service
func NewSendGridService(config SendGridConfig) domain.NotificationService {
	return &SendGridServiceImpl{
		config:  config,
		client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: mailSendURL,
	}
}

type mailPersonalization struct {
	To           []mailAddress          `json:"to"`
	TemplateData map[string]interface{} `json:"dynamic_template_data,omitempty"`
}

type mailAddress struct {
	Email string `json:"email"`
}

type mailRequest struct {
	Personalizations []mailPersonalization `json:"personalizations"`
	From             mailAddress           `json:"from"`
	Subject          string                `json:"subject"`
	TemplateID       string                `json:"template_id"`
}

// SendOTPEmail implements domain.NotificationService
func (s *SendGridServiceImpl) SendOTPEmail(account *domain.Account) bool {
	return s.send(account.Email, "Email OTP Verification", s.config.OTPTemplateID, map[string]interface{}{
		"otp_code":  account.OTPCode,
		"user_name": account.Name,
	})
}

// SendVerificationEmail implements domain.NotificationService
func (s *SendGridServiceImpl) SendVerificationEmail(account *domain.Account) bool {
	return s.send(account.Email, "Verify your email", s.config.VerifyTemplateID, map[string]interface{}{
		"user_name": account.Name,
	})
}

// SendResetPasswordEmail implements domain.NotificationService
func (s *SendGridServiceImpl) SendResetPasswordEmail(account *domain.Account, resetURL string) bool {
	return s.send(account.Email, "Password reset", s.config.ResetTemplateID, map[string]interface{}{
		"reset_url": resetURL,
		"user_name": account.Name,
	})
}

// send posts one templated mail. When no API key is configured the mail is
// logged instead of sent, which keeps local development working without
// credentials.
func (s *SendGridServiceImpl) send(to, subject, templateID string, data map[string]interface{}) bool {
	if s.config.APIKey == "" {
		log.Printf("[MOCK EMAIL] to=%s subject=%q template=%s data=%v", to, subject, templateID, data)
		return true
	}

	payload := mailRequest{
		Personalizations: []mailPersonalization{{
			To:           []mailAddress{{Email: to}},
			TemplateData: data,
		}},
		From:       mailAddress{Email: s.config.FromEmail},
		Subject:    subject,
		TemplateID: templateID,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("EMAIL_MARSHAL_FAILED: to=%s error=%v", to, err)
		return false
	}

	req, err := http.NewRequest(http.MethodPost, s.baseURL, bytes.NewReader(body))
	if err != nil {
		log.Printf("EMAIL_REQUEST_FAILED: to=%s error=%v", to, err)
		return false
	}
	req.Header.Set("Authorization", "Bearer "+s.config.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		log.Printf("EMAIL_SEND_FAILED: to=%s error=%v", to, err)
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		log.Printf("EMAIL_SEND_FAILED: to=%s status=%s", to, resp.Status)
		return false
	}
	return true
}
