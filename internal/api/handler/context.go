package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// callerID extracts the caller's user id injected by the Auth middleware and
// performs a fast-fail check before any service call: a non-empty id proves
// the middleware ran and the token carried a subject.
func callerID(c echo.Context) (string, error) {
	userID, _ := c.Get("user_id").(string)
	if userID == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return userID, nil
}
