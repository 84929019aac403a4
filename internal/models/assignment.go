package model

import (
	"time"

	"assignment-tracker.com/assignment-tracker/internal/constants"
)

type Assignment struct {
	ID          string             `gorm:"primaryKey;size:36" json:"id"`
	Title       string             `gorm:"not null" json:"title" validate:"required,min=3"`
	Course      string             `gorm:"not null" json:"course" validate:"required"`
	DueDate     time.Time          `gorm:"not null" json:"due_date" validate:"required"`
	Priority    constants.Priority `gorm:"type:varchar(10);not null" json:"priority" validate:"required,oneof=Low Medium High"`
	Status      constants.Status   `gorm:"type:varchar(20);not null" json:"status" validate:"required,oneof='Not Started' 'In Progress' Completed"`
	Description string             `json:"description"`
	CreatedAt   time.Time          `json:"created_at"`
}

// IsOverdue is computed at read time and never stored.
func (a *Assignment) IsOverdue() bool {
	return a.DueDate.Before(time.Now()) && a.Status != constants.StatusCompleted
}
