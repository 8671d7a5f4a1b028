package ginserver

import (
	"errors"
	"log/slog"
	"net/http"

	gin "github.com/gin-gonic/gin"

	"milahouse/internal/app/access"
	"milahouse/internal/app/commands"
	"milahouse/internal/app/handlers/adminboard"
	"milahouse/internal/app/policies"
	"milahouse/internal/app/queries"
	"milahouse/internal/domain/booking"
	"milahouse/internal/domain/rooms"
	"milahouse/internal/infra/validation"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, rooms.ErrUnknownRoom),
		errors.Is(err, adminboard.ErrNoRooms):
		return http.StatusNotFound
	case errors.Is(err, access.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, validation.ErrInvalid):
		return http.StatusUnprocessableEntity
	case errors.Is(err, booking.ErrDatesUnavailable):
		return http.StatusConflict
	case errors.Is(err, booking.ErrInvalidDates):
		return http.StatusBadRequest
	case errors.Is(err, policies.ErrSnapshotUnavailable),
		errors.Is(err, queries.ErrNilBus),
		errors.Is(err, commands.ErrNilBus):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// handleError answers with the status the error maps to. Server-side
// failures are logged at error level and their text is not shown.
func handleError(c *gin.Context, logger *slog.Logger, msg string, err error) {
	status := statusFor(err)
	_ = c.Error(err)
	if logger != nil {
		level := slog.LevelWarn
		if status >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		logger.Log(c.Request.Context(), level, msg, "status", status, "error", err, "path", c.FullPath())
	}
	respondWithError(c, status, err)
}

func respondWithError(c *gin.Context, status int, err error) {
	text := err.Error()
	if status >= http.StatusInternalServerError {
		text = http.StatusText(status)
	}
	c.AbortWithStatusJSON(status, gin.H{"error": text})
}
