package http

import (
	"time"

	"github.com/labstack/echo/v4"

	middleware "assignment-tracker.com/assignment-tracker/internal/http/middlewares"
	"assignment-tracker.com/assignment-tracker/internal/session"
)

func Register(e *echo.Echo, h *Handler, store session.Store, rateLimitPerMinute int) {
	e.Use(middleware.RateLimiter(rateLimitPerMinute, time.Minute))
	e.Use(middleware.Session(store))

	e.GET("/", h.Home)
	e.GET("/assignments", h.ListAssignments)
	e.POST("/assignments", h.CreateAssignment, middleware.RequireAuth())

	e.GET("/add-assignment", h.AddAssignmentForm, middleware.RequireAuth())
	e.POST("/add-assignment", h.CreateAssignment, middleware.RequireAuth())
	e.GET("/edit-assignment/:id", h.EditAssignmentForm, middleware.RequireAuth())
	e.POST("/edit-assignment/:id", h.UpdateAssignment, middleware.RequireAuth())
	e.GET("/delete-assignment/:id", h.DeleteAssignment, middleware.RequireAuth())

	auth := e.Group("/api/auth")
	auth.GET("/login", h.LoginForm)
	auth.POST("/login", h.Login)
	auth.GET("/register", h.RegisterForm)
	auth.POST("/register", h.Register)
	auth.GET("/logout", h.Logout)
}
