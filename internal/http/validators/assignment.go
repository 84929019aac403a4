package validators

import (
	"strings"
	"time"

	"assignment-tracker.com/assignment-tracker/internal/constants"
	dto "assignment-tracker.com/assignment-tracker/internal/data_models"
	apperrors "assignment-tracker.com/assignment-tracker/internal/errors"
)

// Layouts accepted from the date inputs on the add/edit forms.
var dueDateLayouts = []string{"2006-01-02T15:04", "2006-01-02"}

// AssignmentChanges trims the submitted form and converts it into a partial
// update. Empty fields count as not submitted, except the description, which is
// always applied so it can be cleared from the edit form.
func AssignmentChanges(f *dto.AssignmentForm) (dto.AssignmentChanges, error) {
	f.Title = strings.TrimSpace(f.Title)
	f.Course = strings.TrimSpace(f.Course)
	f.DueDate = strings.TrimSpace(f.DueDate)
	f.Description = strings.TrimSpace(f.Description)

	var changes dto.AssignmentChanges
	verr := apperrors.NewValidationError()

	if f.Title != "" {
		changes.Title = &f.Title
	}
	if f.Course != "" {
		changes.Course = &f.Course
	}
	if f.DueDate != "" {
		due, err := parseDueDate(f.DueDate)
		if err != nil {
			verr.Add("dueDate", "Due date must be a valid date")
		} else {
			changes.DueDate = &due
		}
	}
	if f.Priority != "" {
		p := constants.Priority(f.Priority)
		if !constants.ValidPriority(p) {
			verr.Add("priority", "Priority must be Low, Medium or High")
		} else {
			changes.Priority = &p
		}
	}
	if f.Status != "" {
		s := constants.Status(f.Status)
		if !constants.ValidStatus(s) {
			verr.Add("status", "Status must be Not Started, In Progress or Completed")
		} else {
			changes.Status = &s
		}
	}
	changes.Description = &f.Description

	if verr.HasErrors() {
		return dto.AssignmentChanges{}, verr
	}
	return changes, nil
}

func parseDueDate(value string) (time.Time, error) {
	var lastErr error
	for _, layout := range dueDateLayouts {
		due, err := time.Parse(layout, value)
		if err == nil {
			return due, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
