package handlers

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	apierrors "github.com/yukikurage/task-management-api/internal/errors"
	"github.com/yukikurage/task-management-api/internal/utils"
)

// respondBindingError turns a request binding failure into a 400 response.
// Validation failures carry one message per offending field.
func respondBindingError(c *gin.Context, err error) {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		details := make([]string, len(validationErrors))
		for i, fieldErr := range validationErrors {
			details[i] = fmt.Sprintf("field %s failed on the '%s' rule", fieldErr.Field(), fieldErr.Tag())
		}
		apierrors.BadRequestWithDetails(c, "Validation failed", details)
		return
	}

	apierrors.BadRequest(c, "Invalid request body")
}

// getPageQuery parses pagination/sorting query params, answering 400 itself
// when they are missing or malformed.
func getPageQuery(c *gin.Context, allowedFields map[string]bool) (utils.PageQuery, bool) {
	query, err := utils.GetPageQuery(c, allowedFields)
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return utils.PageQuery{}, false
	}
	return query, true
}
