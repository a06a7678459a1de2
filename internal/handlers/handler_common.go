package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/synchroai/synchro_backend/internal/apperrors"
	"github.com/synchroai/synchro_backend/internal/middleware"
)

// ErrorResponse is a generic error response structure for handlers.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError maps service-layer sentinel errors onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "Internal server error"

	switch {
	case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrImmutableField):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, apperrors.ErrUnauthorized), errors.Is(err, apperrors.ErrRefreshTokenExpired), errors.Is(err, apperrors.ErrInvalidRefreshToken):
		status = http.StatusUnauthorized
		message = "Unauthorized"
	case errors.Is(err, apperrors.ErrForbidden):
		status = http.StatusForbidden
		message = "Forbidden"
	case errors.Is(err, apperrors.ErrNotFound):
		status = http.StatusNotFound
		message = "Not found"
	case errors.Is(err, apperrors.ErrInsufficientFunds):
		status = http.StatusPaymentRequired
		message = err.Error()
	case errors.Is(err, apperrors.ErrDuplicate), errors.Is(err, apperrors.ErrConflict), errors.Is(err, apperrors.ErrInvalidTransition):
		status = http.StatusConflict
		message = err.Error()
	case errors.Is(err, apperrors.ErrPaymentNotCompleted):
		status = http.StatusConflict
		message = err.Error()
	case errors.Is(err, apperrors.ErrGatewayUnavailable):
		status = http.StatusBadGateway
		message = "Payment gateway unavailable"
	}

	if status == http.StatusInternalServerError {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Unhandled service error", "error", err.Error())
	}
	c.JSON(status, ErrorResponse{Error: message})
}

// requireUserID pulls the authenticated user id from the request context,
// writing a 401 response when it is missing.
func requireUserID(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return "", false
	}
	return userID, true
}
