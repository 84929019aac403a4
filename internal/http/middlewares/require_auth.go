package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireAuth gates protected routes. Unauthenticated requests are redirected
// to the login page, with the requested URL recorded for the post-login
// redirect.
func RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess := CurrentSession(c)
			if sess == nil || !sess.Authenticated() {
				if sess != nil {
					sess.Flash("error", "Please log in to continue")
					sess.RedirectTo = c.Request().RequestURI
				}
				return c.Redirect(http.StatusFound, "/api/auth/login")
			}
			return next(c)
		}
	}
}
