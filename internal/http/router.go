package httpx

import (
	"github.com/gin-gonic/gin"

	"github.com/you/accountsvc/internal/http/handlers"
	"github.com/you/accountsvc/internal/http/middleware"
)

// BuildRouter wires the HTTP surface. Sign-up, sign-in and the password
// flows are public; everything else sits behind the access guard.
func BuildRouter(ah *handlers.AuthHandlers, uh *handlers.UserHandlers, bh *handlers.BusinessHandlers, jwtmw *middleware.AuthMW, apiKey string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	v1 := r.Group("/api/v1", middleware.APIKeyMiddleware(apiKey))

	auth := v1.Group("/auth")
	auth.POST("/signup", ah.SignUp)
	auth.POST("/signin", ah.SignIn)
	auth.POST("/forgot-password", ah.ForgotPassword)
	auth.POST("/reset-password", ah.ResetPassword)

	authed := v1.Group("/auth").Use(jwtmw.WithJWT())
	authed.POST("/signout", ah.SignOut)
	authed.POST("/refresh", ah.Refresh)
	authed.POST("/otp", ah.VerifyOTP)
	authed.GET("/resendotp", ah.ResendOTP)

	users := v1.Group("/users").Use(jwtmw.WithJWT())
	users.GET("/me", uh.Me)

	businesses := v1.Group("/businesses").Use(jwtmw.WithJWT())
	businesses.GET("/:id", bh.Get)

	return r
}
