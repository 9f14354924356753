package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/accountsvc/domain"
)

// BusinessHandlers handles read-only business lookups
type BusinessHandlers struct {
	businessSvc domain.BusinessService
}

// NewBusinessHandlers creates new business handlers
func NewBusinessHandlers(businessSvc domain.BusinessService) *BusinessHandlers {
	return &BusinessHandlers{businessSvc: businessSvc}
}

// Get returns a single business by id.
func (h *BusinessHandlers) Get(c *gin.Context) {
	business, err := h.businessSvc.GetBusiness(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, business)
}
