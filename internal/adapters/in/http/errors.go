package http

import (
	"errors"
	"fmt"
	"net/http"

	"ordering/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// statusFor maps the error classes of the core onto HTTP statuses.
func statusFor(err error) (int, string) {
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code, fmt.Sprint(httpErr.Message)
	}

	switch {
	case errs.IsValidation(err):
		return http.StatusUnprocessableEntity, err.Error()
	case errs.IsNotFound(err):
		return http.StatusNotFound, err.Error()
	case errs.IsInvalidTransition(err):
		return http.StatusConflict, err.Error()
	default:
		return http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
	}
}

// NewErrorHandler renders errors returned by handlers and middleware as
// ErrorResponse. Server errors are logged, client errors are not.
func NewErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, message := statusFor(err)
		if code >= http.StatusInternalServerError {
			logger.Error("request failed",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Path()),
				zap.Error(err),
			)
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(code)
		} else {
			writeErr = c.JSON(code, ErrorResponse{Code: code, Message: message})
		}
		if writeErr != nil {
			logger.Warn("error response was not written", zap.Error(writeErr))
		}
	}
}
