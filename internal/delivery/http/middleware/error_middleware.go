package middleware

import (
	"errors"
	"net/http"

	"devhire-backend/internal/delivery/http/response"
	"devhire-backend/internal/domain"
	"devhire-backend/pkg/apperror"
	"devhire-backend/pkg/logger"
	"devhire-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		switch {
		case errors.Is(err, domain.ErrNotFound) && !isAppError(err):
			response.Error(c, http.StatusNotFound, "Resource not found", nil)
			return
		case errors.Is(err, domain.ErrConflict) && !isAppError(err):
			response.Error(c, http.StatusConflict, "Resource already exists", nil)
			return
		}

		appErr := apperror.From(err)
		if appErr.IsInternal() {
			// Internal details stay in the log
			logger.Log.Error().Err(err).
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Str("request_id", c.GetString(string(domain.KeyRequestID))).
				Msg(appErr.Message)
		}

		var details interface{}
		var validationErrs validator.ValidationErrors
		if errors.As(appErr.Err, &validationErrs) {
			details = validation.FormatValidationErrors(validationErrs)
		}
		response.Error(c, appErr.Code, appErr.Message, details)
	}
}

func isAppError(err error) bool {
	var appErr *apperror.AppError
	return errors.As(err, &appErr)
}
