package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"assignment-tracker.com/assignment-tracker/internal/constants"
	dto "assignment-tracker.com/assignment-tracker/internal/data_models"
	apperrors "assignment-tracker.com/assignment-tracker/internal/errors"
	middleware "assignment-tracker.com/assignment-tracker/internal/http/middlewares"
	"assignment-tracker.com/assignment-tracker/internal/http/validators"
	model "assignment-tracker.com/assignment-tracker/internal/models"
	repository "assignment-tracker.com/assignment-tracker/internal/repositories"
	"assignment-tracker.com/assignment-tracker/internal/services"
	"assignment-tracker.com/assignment-tracker/internal/session"
)

type Handler struct {
	assignments *services.AssignmentService
	auth        *services.AuthService
	sessions    session.Store
}

func NewHandler(assignments *services.AssignmentService, auth *services.AuthService, sessions session.Store) *Handler {
	return &Handler{
		assignments: assignments,
		auth:        auth,
		sessions:    sessions,
	}
}

func (h *Handler) Home(c echo.Context) error {
	stats, err := h.assignments.Stats(c.Request().Context())
	if err != nil {
		return h.renderError(c, err)
	}

	return h.render(c, http.StatusOK, "home.html", echo.Map{
		"Title": "Assignment Tracker Dashboard",
		"Stats": stats,
	})
}

func (h *Handler) ListAssignments(c echo.Context) error {
	filter := repository.AssignmentFilter{
		Status:   constants.Status(c.QueryParam("status")),
		Priority: constants.Priority(c.QueryParam("priority")),
		Course:   c.QueryParam("course"),
	}

	assignments, err := h.assignments.List(c.Request().Context(), filter)
	if err != nil {
		return h.renderError(c, err)
	}

	return h.render(c, http.StatusOK, "assignments.html", echo.Map{
		"Title":       "All Assignments",
		"Assignments": assignments,
		"Filter":      filter,
	})
}

func (h *Handler) AddAssignmentForm(c echo.Context) error {
	return h.render(c, http.StatusOK, "add-assignment.html", echo.Map{
		"Title": "Add New Assignment",
		"Form":  dto.AssignmentForm{Priority: string(constants.PriorityMedium)},
	})
}

func (h *Handler) CreateAssignment(c echo.Context) error {
	var form dto.AssignmentForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form payload")
	}

	changes, err := validators.AssignmentChanges(&form)
	if err == nil {
		_, err = h.assignments.Create(c.Request().Context(), changes)
	}
	if err != nil {
		var verr *apperrors.ValidationError
		if errors.As(err, &verr) {
			// Re-render the form with the submitted input echoed back.
			return h.render(c, http.StatusBadRequest, "add-assignment.html", echo.Map{
				"Title":  "Add New Assignment",
				"Errors": verr.Fields,
				"Form":   form,
			})
		}
		return h.renderError(c, err)
	}

	middleware.CurrentSession(c).Flash("success", "Assignment added successfully")
	return c.Redirect(http.StatusFound, "/assignments")
}

func (h *Handler) EditAssignmentForm(c echo.Context) error {
	assignment, err := h.assignments.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, apperrors.ErrAssignmentNotFound) {
			middleware.CurrentSession(c).Flash("error", "Assignment not found")
			return c.Redirect(http.StatusFound, "/assignments")
		}
		return h.renderError(c, err)
	}

	return h.render(c, http.StatusOK, "edit-assignment.html", echo.Map{
		"Title":      "Edit Assignment",
		"ID":         assignment.ID,
		"Form":       formFromAssignment(assignment),
		"ShowStatus": true,
	})
}

func (h *Handler) UpdateAssignment(c echo.Context) error {
	id := c.Param("id")

	var form dto.AssignmentForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form payload")
	}

	changes, err := validators.AssignmentChanges(&form)
	if err == nil {
		_, err = h.assignments.Update(c.Request().Context(), id, changes)
	}
	if err != nil {
		var verr *apperrors.ValidationError
		if errors.As(err, &verr) {
			// The submitted values, not the stored ones, go back to the form.
			return h.render(c, http.StatusBadRequest, "edit-assignment.html", echo.Map{
				"Title":      "Edit Assignment",
				"ID":         id,
				"Errors":     verr.Fields,
				"Form":       form,
				"ShowStatus": true,
			})
		}
		if errors.Is(err, apperrors.ErrAssignmentNotFound) {
			middleware.CurrentSession(c).Flash("error", "Assignment not found")
			return c.Redirect(http.StatusFound, "/assignments")
		}
		return h.renderError(c, err)
	}

	middleware.CurrentSession(c).Flash("success", "Assignment updated successfully")
	return c.Redirect(http.StatusFound, "/assignments")
}

// DeleteAssignment removes permanently. Deleting an id that is already gone
// reports not found rather than succeeding silently.
func (h *Handler) DeleteAssignment(c echo.Context) error {
	sess := middleware.CurrentSession(c)

	err := h.assignments.Delete(c.Request().Context(), c.Param("id"))
	switch {
	case err == nil:
		sess.Flash("success", "Assignment deleted successfully")
	case errors.Is(err, apperrors.ErrAssignmentNotFound):
		sess.Flash("error", "Assignment not found")
	default:
		return h.renderError(c, err)
	}

	return c.Redirect(http.StatusFound, "/assignments")
}

func (h *Handler) render(c echo.Context, status int, view string, data echo.Map) error {
	if data == nil {
		data = echo.Map{}
	}
	if sess := middleware.CurrentSession(c); sess != nil {
		data["Flashes"] = sess.PopFlashes()
		data["LoggedIn"] = sess.Authenticated()
	}
	return c.Render(status, view, data)
}

// renderError logs the detail server-side and shows the caller a generic page.
func (h *Handler) renderError(c echo.Context, err error) error {
	log.Printf("%s %s failed: %v", c.Request().Method, c.Request().URL.Path, err)
	return h.render(c, http.StatusInternalServerError, "error.html", echo.Map{
		"Title":   "Server Error",
		"Message": "Something went wrong",
	})
}

func formFromAssignment(a *model.Assignment) dto.AssignmentForm {
	return dto.AssignmentForm{
		Title:       a.Title,
		Course:      a.Course,
		DueDate:     a.DueDate.Format("2006-01-02T15:04"),
		Priority:    string(a.Priority),
		Status:      string(a.Status),
		Description: a.Description,
	}
}
