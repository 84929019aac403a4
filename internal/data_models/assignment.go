package dto

import (
	"time"

	"assignment-tracker.com/assignment-tracker/internal/constants"
)

// AssignmentForm mirrors the add/edit form fields as submitted; DueDate stays a
// string until the validators parse it.
type AssignmentForm struct {
	Title       string `form:"title"`
	Course      string `form:"course"`
	DueDate     string `form:"dueDate"`
	Priority    string `form:"priority"`
	Status      string `form:"status"`
	Description string `form:"description"`
}

// AssignmentChanges is a partial update: nil means the field was not submitted
// and keeps its stored value.
type AssignmentChanges struct {
	Title       *string
	Course      *string
	DueDate     *time.Time
	Priority    *constants.Priority
	Status      *constants.Status
	Description *string
}
