package services

import (
	"context"

	"github.com/go-playground/validator/v10"

	"assignment-tracker.com/assignment-tracker/internal/constants"
	dto "assignment-tracker.com/assignment-tracker/internal/data_models"
	apperrors "assignment-tracker.com/assignment-tracker/internal/errors"
	model "assignment-tracker.com/assignment-tracker/internal/models"
	repository "assignment-tracker.com/assignment-tracker/internal/repositories"
)

var validate = validator.New()

type AssignmentService struct {
	repo *repository.AssignmentRepository
}

func NewAssignmentService(repo *repository.AssignmentRepository) *AssignmentService {
	return &AssignmentService{repo: repo}
}

func (s *AssignmentService) Stats(ctx context.Context) (*repository.Stats, error) {
	return s.repo.Stats(ctx)
}

func (s *AssignmentService) List(ctx context.Context, filter repository.AssignmentFilter) ([]model.Assignment, error) {
	return s.repo.List(ctx, filter)
}

func (s *AssignmentService) Get(ctx context.Context, id string) (*model.Assignment, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *AssignmentService) Create(ctx context.Context, changes dto.AssignmentChanges) (*model.Assignment, error) {
	assignment := &model.Assignment{
		Priority: constants.PriorityMedium,
	}
	applyChanges(assignment, changes)

	// New assignments always start in Not Started, whatever the client sent.
	assignment.Status = constants.StatusNotStarted

	if err := validateRecord(assignment); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, assignment); err != nil {
		return nil, err
	}
	return assignment, nil
}

// Update applies only the supplied fields, then re-validates the whole record
// against the same constraints as creation. CreatedAt is never touched.
func (s *AssignmentService) Update(ctx context.Context, id string, changes dto.AssignmentChanges) (*model.Assignment, error) {
	assignment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	applyChanges(assignment, changes)

	if err := validateRecord(assignment); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, assignment); err != nil {
		return nil, err
	}
	return assignment, nil
}

func (s *AssignmentService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func applyChanges(assignment *model.Assignment, changes dto.AssignmentChanges) {
	if changes.Title != nil {
		assignment.Title = *changes.Title
	}
	if changes.Course != nil {
		assignment.Course = *changes.Course
	}
	if changes.DueDate != nil {
		assignment.DueDate = *changes.DueDate
	}
	if changes.Priority != nil {
		assignment.Priority = *changes.Priority
	}
	if changes.Status != nil {
		assignment.Status = *changes.Status
	}
	if changes.Description != nil {
		assignment.Description = *changes.Description
	}
}

func validateRecord(assignment *model.Assignment) error {
	err := validate.Struct(assignment)
	if err == nil {
		return nil
	}

	verr := apperrors.NewValidationError()
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	for _, fe := range fieldErrs {
		switch fe.Field() {
		case "Title":
			if fe.Tag() == "required" {
				verr.Add("title", "Assignment title is required")
			} else {
				verr.Add("title", "Title must be at least 3 characters long")
			}
		case "Course":
			verr.Add("course", "Course name is required")
		case "DueDate":
			verr.Add("dueDate", "Due date is required")
		case "Priority":
			verr.Add("priority", "Priority must be Low, Medium or High")
		case "Status":
			verr.Add("status", "Status must be Not Started, In Progress or Completed")
		}
	}
	return verr
}
