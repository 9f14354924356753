package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/accountsvc/domain"
)

// UserHandlers handles read-only account lookups
type UserHandlers struct {
	userSvc domain.UserService
}

// NewUserHandlers creates new user handlers
func NewUserHandlers(userSvc domain.UserService) *UserHandlers {
	return &UserHandlers{userSvc: userSvc}
}

// Me returns the calling account together with its businesses.
func (h *UserHandlers) Me(c *gin.Context) {
	accountID, ok := accountIDFromContext(c)
	if !ok {
		writeError(c, domain.E(domain.KindTokenNotFound, "authorization token is missing"))
		return
	}

	profile, businesses, err := h.userSvc.GetAccount(c.Request.Context(), accountID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"account":    profile,
		"businesses": businesses,
	})
}
