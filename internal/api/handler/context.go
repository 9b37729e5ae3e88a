package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/counselling-appointment/booking-system/internal/core/domain"
)

// timeNow is a seam for tests pinning the export window.
var timeNow = time.Now

// ctxIdentity extracts the auth claims injected by the Auth middleware and
// performs a fast-fail check before any service call: both the subject and a
// parseable role must be present, otherwise the token is structurally valid
// but operationally unusable.
func ctxIdentity(c echo.Context) (userID string, role domain.Role, err error) {
	userID, _ = c.Get("user_id").(string)
	if userID == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	claim, _ := c.Get("role").(string)
	role, parseErr := domain.ParseRole(claim)
	if parseErr != nil {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "token missing role claim")
	}

	return userID, role, nil
}
