package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/counselling-appointment/booking-system/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrPastDate):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, domain.ErrHoliday):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, domain.ErrSlotTaken):
		return http.StatusConflict, "slot already booked"
	case errors.Is(err, domain.ErrSlotBlocked):
		return http.StatusConflict, "slot is blocked"
	case errors.Is(err, domain.ErrSlotNotFree):
		return http.StatusConflict, "slot is not free"
	case errors.Is(err, domain.ErrNotBooked):
		return http.StatusConflict, "slot is not booked"
	case errors.Is(err, domain.ErrSlotNotFound):
		return http.StatusNotFound, "slot record not found"
	case errors.Is(err, domain.ErrNotSlotOwner):
		return http.StatusForbidden, "booking belongs to another user"
	case errors.Is(err, domain.ErrUnknownTimeSlot):
		return http.StatusBadRequest, "unknown time slot"
	case errors.Is(err, domain.ErrBadDate):
		return http.StatusBadRequest, "malformed date, want YYYY-MM-DD"
	case errors.Is(err, domain.ErrBadVerificationToken):
		return http.StatusBadRequest, "invalid or expired verification token"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, domain.ErrRoleNotFound):
		return http.StatusForbidden, err.Error()
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "user not found"
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, "user already exists"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
