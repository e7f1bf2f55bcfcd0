package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rizzedin/rizzedin-backend/internal/domain"
)

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// statusFor maps domain sentinels to HTTP statuses. Unknown errors are
// internal; their details never leak to the client.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "user not found"
	case errors.Is(err, domain.ErrChatNotFound):
		return http.StatusNotFound, "chat not found"
	case errors.Is(err, domain.ErrMatchNotFound):
		return http.StatusNotFound, "match not found"
	case errors.Is(err, domain.ErrCannotSwipeSelf):
		return http.StatusBadRequest, "cannot swipe on yourself"
	case errors.Is(err, domain.ErrMaxMessagesReached):
		return http.StatusConflict, "conversation is complete"
	case errors.Is(err, domain.ErrChatBusy):
		return http.StatusConflict, "another message is being processed"
	case errors.Is(err, domain.ErrDuplicatePersona):
		return http.StatusConflict, "persona already imported"
	case errors.Is(err, domain.ErrNotMatchParticipant), errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "forbidden"
	case errors.Is(err, domain.ErrNotPersona):
		return http.StatusBadRequest, "user is not a persona"
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		return http.StatusBadGateway, "ai service unavailable"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

func respondError(c *gin.Context, err error) {
	status, msg := statusFor(err)
	c.JSON(status, ErrorResponse{Error: msg})
}

// currentUserID reads the authenticated subject set by the auth middleware.
func currentUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return "", false
	}
	id, ok := v.(string)
	if !ok || id == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return "", false
	}
	return id, true
}
