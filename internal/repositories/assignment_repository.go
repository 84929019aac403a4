package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"assignment-tracker.com/assignment-tracker/internal/constants"
	apperrors "assignment-tracker.com/assignment-tracker/internal/errors"
	model "assignment-tracker.com/assignment-tracker/internal/models"
)

// AssignmentFilter combines optional criteria with AND. Empty fields are
// ignored; Course is a case-insensitive substring match.
type AssignmentFilter struct {
	Status   constants.Status
	Priority constants.Priority
	Course   string
}

type Stats struct {
	Total      int64
	Overdue    int64
	Completed  int64
	InProgress int64
}

// String priorities do not sort meaningfully, so listing orders by an explicit
// weight: High before Medium before Low.
const priorityWeight = "CASE priority WHEN 'High' THEN 0 WHEN 'Medium' THEN 1 ELSE 2 END"

type AssignmentRepository struct {
	db *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

func (r *AssignmentRepository) Create(ctx context.Context, assignment *model.Assignment) error {
	assignment.ID = uuid.NewString()
	assignment.CreatedAt = time.Now().UTC()

	return r.db.WithContext(ctx).Create(assignment).Error
}

func (r *AssignmentRepository) FindByID(ctx context.Context, id string) (*model.Assignment, error) {
	var assignment model.Assignment
	err := r.db.WithContext(ctx).First(&assignment, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAssignmentNotFound
		}
		return nil, err
	}
	return &assignment, nil
}

func (r *AssignmentRepository) List(ctx context.Context, filter AssignmentFilter) ([]model.Assignment, error) {
	query := r.db.WithContext(ctx).Model(&model.Assignment{})

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Priority != "" {
		query = query.Where("priority = ?", filter.Priority)
	}
	if filter.Course != "" {
		query = query.Where("LOWER(course) LIKE ?", "%"+strings.ToLower(filter.Course)+"%")
	}

	var assignments []model.Assignment
	err := query.Order(priorityWeight + ", due_date asc").Find(&assignments).Error
	return assignments, err
}

func (r *AssignmentRepository) Update(ctx context.Context, assignment *model.Assignment) error {
	res := r.db.WithContext(ctx).Model(&model.Assignment{}).
		Where("id = ?", assignment.ID).
		Updates(map[string]interface{}{
			"title":       assignment.Title,
			"course":      assignment.Course,
			"due_date":    assignment.DueDate,
			"priority":    assignment.Priority,
			"status":      assignment.Status,
			"description": assignment.Description,
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrAssignmentNotFound
	}
	return nil
}

func (r *AssignmentRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&model.Assignment{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrAssignmentNotFound
	}
	return nil
}

// Stats issues four independent counts; each reflects the table at its own
// evaluation instant, not a single snapshot.
func (r *AssignmentRepository) Stats(ctx context.Context) (*Stats, error) {
	now := time.Now().UTC()
	base := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&model.Assignment{})
	}

	var stats Stats
	if err := base().Count(&stats.Total).Error; err != nil {
		return nil, err
	}
	if err := base().
		Where("due_date < ? AND status <> ?", now, constants.StatusCompleted).
		Count(&stats.Overdue).Error; err != nil {
		return nil, err
	}
	if err := base().Where("status = ?", constants.StatusCompleted).Count(&stats.Completed).Error; err != nil {
		return nil, err
	}
	if err := base().Where("status = ?", constants.StatusInProgress).Count(&stats.InProgress).Error; err != nil {
		return nil, err
	}

	return &stats, nil
}
