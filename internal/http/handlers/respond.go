package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/you/accountsvc/domain"
)

// writeError translates a failure into the wire error shape. Domain errors
// map through the static kind table; anything else is a 500 with no internal
// detail exposed.
func writeError(c *gin.Context, err error) {
	var domainErr *domain.Error
	if errors.As(err, &domainErr) {
		body := gin.H{
			"error_code": string(domainErr.Kind),
			"message":    domainErr.Message,
		}
		if len(domainErr.Fields) > 0 {
			body["errors"] = domainErr.Fields
		}
		c.JSON(domain.HTTPStatus(domainErr.Kind), body)
		return
	}

	log.Printf("UNHANDLED_ERROR: path=%s error=%v", c.FullPath(), err)
	c.JSON(http.StatusInternalServerError, gin.H{
		"error_code": string(domain.KindServerError),
		"message":    "Something unexpected happened, we are investigating this issue right now",
	})
}

// bindingError converts a gin binding failure into an API validation error
// carrying a {path, message} entry per failed field.
func bindingError(err error) *domain.Error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]domain.FieldError, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, domain.FieldError{
				Path:    fe.Field(),
				Message: "failed on the '" + fe.Tag() + "' rule",
			})
		}
		return domain.ValidationError(fields)
	}
	return domain.E(domain.KindBadRequest, "malformed request payload")
}

// accountIDFromContext reads the account id attached by the access guard.
func accountIDFromContext(c *gin.Context) (string, bool) {
	accountID := c.GetString("account_id")
	return accountID, accountID != ""
}
