package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxActor extracts the authenticated caller's username injected by the Auth
// middleware. Presence proves the middleware ran; without it the request
// must not reach a protected handler.
func ctxActor(c echo.Context) (string, error) {
	username, _ := c.Get("username").(string)
	if username == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "Not authorized, no token")
	}
	return username, nil
}
