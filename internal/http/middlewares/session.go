package middleware

import (
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"assignment-tracker.com/assignment-tracker/internal/session"
)

const (
	CookieName        = "session_id"
	SessionContextKey = "session"
)

// Session loads the request's session from the store (creating one on first
// contact) and saves it back after the handler runs, so flashes and login state
// set by handlers persist.
func Session(store session.Store) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()

			var sess *session.Session
			if cookie, err := c.Cookie(CookieName); err == nil {
				if existing, getErr := store.Get(ctx, cookie.Value); getErr == nil {
					sess = existing
				}
			}
			if sess == nil {
				sess = session.New()
				SetSessionCookie(c, sess.ID)
			}
			c.Set(SessionContextKey, sess)

			err := next(c)

			// Handlers may have swapped the session (logout does).
			if current, ok := c.Get(SessionContextKey).(*session.Session); ok {
				if saveErr := store.Save(ctx, current); saveErr != nil {
					log.Printf("session save failed: %v", saveErr)
				}
			}
			return err
		}
	}
}

func CurrentSession(c echo.Context) *session.Session {
	sess, _ := c.Get(SessionContextKey).(*session.Session)
	return sess
}

func SetSessionCookie(c echo.Context, id string) {
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		MaxAge:   int(session.DefaultTTL / time.Second),
	})
}
