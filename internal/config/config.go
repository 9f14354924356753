package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	Port    int    `yaml:"port"`
	GinMode string `yaml:"gin_mode"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWTConfig struct {
	AccessSecret  string `yaml:"access_secret"`
	RefreshSecret string `yaml:"refresh_secret"`
	Issuer        string `yaml:"issuer"`
	AccessTTL     string `yaml:"access_ttl"`
	RefreshTTL    string `yaml:"refresh_ttl"`
	ResetTTL      string `yaml:"reset_ttl"`
}

type OTPConfig struct {
	TTL          string `yaml:"ttl"`
	ResendWindow string `yaml:"resend_window"`
}

type SendGridConfig struct {
	APIKey           string `yaml:"api_key"`
	FromEmail        string `yaml:"from_email"`
	OTPTemplateID    string `yaml:"otp_template_id"`
	VerifyTemplateID string `yaml:"verify_template_id"`
	ResetTemplateID  string `yaml:"reset_template_id"`
}

type ConfigFile struct {
	App          AppConfig      `yaml:"app"`
	Database     DatabaseConfig `yaml:"database"`
	Redis        RedisConfig    `yaml:"redis"`
	JWT          JWTConfig      `yaml:"jwt"`
	OTP          OTPConfig      `yaml:"otp"`
	SendGrid     SendGridConfig `yaml:"sendgrid"`
	APIKey       string         `yaml:"api_key"`
	DashboardURL string         `yaml:"dashboard_url"`
}

// Config is the resolved runtime configuration. Secrets live here and are
// injected into constructors; services never read the environment themselves.
type Config struct {
	Port             string
	GinMode          string
	DSN              string
	RedisAddr        string
	RedisPassword    string
	RedisDB          int
	JWTAccessSecret  string
	JWTRefreshSecret string
	JWTIssuer        string
	AccessTTL        time.Duration
	RefreshTTL       time.Duration
	ResetTTL         time.Duration
	OTPTTL           time.Duration
	OTPResendWindow  time.Duration
	SendGridAPIKey   string
	SendGridFrom     string
	OTPTemplateID    string
	VerifyTemplateID string
	ResetTemplateID  string
	APIKey           string
	DashboardURL     string
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// Load reads config/config.yml, applies environment overrides for secrets,
// and parses the duration fields. A .env file is honored when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	configFile, err := loadConfigFile(env("CONFIG_PATH", "config/config.yml"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	accTTL, err := time.ParseDuration(configFile.JWT.AccessTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT access TTL: %w", err)
	}
	refTTL, err := time.ParseDuration(configFile.JWT.RefreshTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT refresh TTL: %w", err)
	}
	resTTL, err := time.ParseDuration(configFile.JWT.ResetTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT reset TTL: %w", err)
	}
	otpTTL, err := time.ParseDuration(configFile.OTP.TTL)
	if err != nil {
		return nil, fmt.Errorf("invalid OTP TTL: %w", err)
	}
	resendWindow, err := time.ParseDuration(configFile.OTP.ResendWindow)
	if err != nil {
		return nil, fmt.Errorf("invalid OTP resend window: %w", err)
	}

	return &Config{
		Port:             fmt.Sprintf("%d", configFile.App.Port),
		GinMode:          configFile.App.GinMode,
		DSN:              env("DATABASE_URL", configFile.Database.DSN),
		RedisAddr:        env("REDIS_ADDR", configFile.Redis.Addr),
		RedisPassword:    env("REDIS_PASSWORD", configFile.Redis.Password),
		RedisDB:          configFile.Redis.DB,
		JWTAccessSecret:  env("JWT_SECRET", configFile.JWT.AccessSecret),
		JWTRefreshSecret: env("JWT_REFRESH_SECRET", configFile.JWT.RefreshSecret),
		JWTIssuer:        configFile.JWT.Issuer,
		AccessTTL:        accTTL,
		RefreshTTL:       refTTL,
		ResetTTL:         resTTL,
		OTPTTL:           otpTTL,
		OTPResendWindow:  resendWindow,
		SendGridAPIKey:   env("SENDGRID_API_KEY", configFile.SendGrid.APIKey),
		SendGridFrom:     configFile.SendGrid.FromEmail,
		OTPTemplateID:    configFile.SendGrid.OTPTemplateID,
		VerifyTemplateID: configFile.SendGrid.VerifyTemplateID,
		ResetTemplateID:  configFile.SendGrid.ResetTemplateID,
		APIKey:           env("API_KEY", configFile.APIKey),
		DashboardURL:     env("DASHBOARD_URL", configFile.DashboardURL),
	}, nil
}

func loadConfigFile(path string) (*ConfigFile, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	var config ConfigFile
	if err := yaml.Unmarshal(bytes, &config); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}
	return &config, nil
}
