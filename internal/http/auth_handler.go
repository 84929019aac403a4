package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	dto "assignment-tracker.com/assignment-tracker/internal/data_models"
	apperrors "assignment-tracker.com/assignment-tracker/internal/errors"
	middleware "assignment-tracker.com/assignment-tracker/internal/http/middlewares"
	"assignment-tracker.com/assignment-tracker/internal/http/validators"
	"assignment-tracker.com/assignment-tracker/internal/session"
)

func (h *Handler) LoginForm(c echo.Context) error {
	return h.render(c, http.StatusOK, "login.html", echo.Map{
		"Title": "Login",
		"Form":  dto.CredentialsForm{},
	})
}

func (h *Handler) Login(c echo.Context) error {
	var form dto.CredentialsForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form payload")
	}
	form.Username = strings.TrimSpace(form.Username)

	user, err := h.auth.Login(c.Request().Context(), form.Username, form.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidCredentials) {
			return h.render(c, http.StatusUnauthorized, "login.html", echo.Map{
				"Title": "Login",
				"Error": "Invalid credentials",
				"Form":  dto.CredentialsForm{Username: form.Username},
			})
		}
		return h.renderError(c, err)
	}

	sess := middleware.CurrentSession(c)
	sess.UserID = user.ID

	target := sess.RedirectTo
	if target == "" {
		target = "/"
	}
	sess.RedirectTo = ""

	return c.Redirect(http.StatusFound, target)
}

func (h *Handler) RegisterForm(c echo.Context) error {
	return h.render(c, http.StatusOK, "register.html", echo.Map{
		"Title": "Register",
		"Form":  dto.CredentialsForm{},
	})
}

func (h *Handler) Register(c echo.Context) error {
	var form dto.CredentialsForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form payload")
	}

	err := validators.ValidateCredentials(&form)
	if err == nil {
		_, err = h.auth.Register(c.Request().Context(), form.Username, form.Password)
	}
	if err != nil {
		var verr *apperrors.ValidationError
		if errors.As(err, &verr) {
			return h.render(c, http.StatusBadRequest, "register.html", echo.Map{
				"Title":  "Register",
				"Errors": verr.Fields,
				"Form":   dto.CredentialsForm{Username: form.Username},
			})
		}
		if errors.Is(err, apperrors.ErrUsernameTaken) {
			return h.render(c, http.StatusConflict, "register.html", echo.Map{
				"Title": "Register",
				"Error": "Username already exists",
				"Form":  dto.CredentialsForm{Username: form.Username},
			})
		}
		return h.renderError(c, err)
	}

	middleware.CurrentSession(c).Flash("success", "Registration successful. Please log in.")
	return c.Redirect(http.StatusFound, "/api/auth/login")
}

// Logout drops the server-side session entirely and hands the client a fresh
// anonymous one carrying the confirmation flash.
func (h *Handler) Logout(c echo.Context) error {
	if sess := middleware.CurrentSession(c); sess != nil {
		_ = h.sessions.Delete(c.Request().Context(), sess.ID)
	}

	fresh := session.New()
	fresh.Flash("success", "You have been logged out")
	c.Set(middleware.SessionContextKey, fresh)
	middleware.SetSessionCookie(c, fresh.ID)

	return c.Redirect(http.StatusFound, "/api/auth/login")
}
