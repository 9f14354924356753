package app

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/accountsvc/internal/config"
	httpx "github.com/you/accountsvc/internal/http"
	"github.com/you/accountsvc/internal/http/handlers"
	"github.com/you/accountsvc/internal/http/middleware"
	"github.com/you/accountsvc/internal/infrastructure/auth"
	"github.com/you/accountsvc/internal/infrastructure/database"
	"github.com/you/accountsvc/internal/infrastructure/notifications"
	"github.com/you/accountsvc/internal/infrastructure/repositories"
	"github.com/you/accountsvc/internal/services"
)

func Run(cfg *config.Config) error {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	gdb, err := database.Open(cfg.DSN)
	if err != nil {
		return err
	}
	if err := database.AutoMigrate(gdb); err != nil {
		return err
	}

	rdb := database.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err := rdb.Ping(context.Background()); err != nil {
		return err
	}

	// Infrastructure services
	passwordSvc := auth.NewPasswordService()
	tokenSvc := auth.NewJWTService(cfg.JWTAccessSecret, cfg.JWTRefreshSecret, cfg.JWTIssuer, cfg.AccessTTL, cfg.RefreshTTL, cfg.ResetTTL)
	notifier := notifications.NewSendGridService(notifications.SendGridConfig{
		APIKey:           cfg.SendGridAPIKey,
		FromEmail:        cfg.SendGridFrom,
		OTPTemplateID:    cfg.OTPTemplateID,
		VerifyTemplateID: cfg.VerifyTemplateID,
		ResetTemplateID:  cfg.ResetTemplateID,
	})

	// Repositories
	accountRepo := repositories.NewAccountRepository(gdb)
	businessRepo := repositories.NewBusinessRepository(gdb)
	tokenRepo := repositories.NewTokenRepository(rdb.Client, cfg.RefreshTTL)

	// Services
	otpSvc := services.NewOTPService(services.OTPConfig{
		TTL:          cfg.OTPTTL,
		ResendWindow: cfg.OTPResendWindow,
	})
	authSvc := services.NewAuthService(accountRepo, businessRepo, tokenRepo, passwordSvc, tokenSvc, otpSvc, notifier, cfg.DashboardURL)
	userSvc := services.NewUserService(accountRepo, businessRepo)
	businessSvc := services.NewBusinessService(businessRepo)

	// Handlers and middleware
	authH := handlers.NewAuthHandlers(authSvc, cfg.AccessTTL)
	userH := handlers.NewUserHandlers(userSvc)
	businessH := handlers.NewBusinessHandlers(businessSvc)
	jwtMW := middleware.NewAuthMW(tokenSvc)

	r := httpx.BuildRouter(authH, userH, businessH, jwtMW, cfg.APIKey)

	addr := ":" + cfg.Port
	log.Printf("listening on %s", addr)
	return http.ListenAndServe(addr, r)
}
