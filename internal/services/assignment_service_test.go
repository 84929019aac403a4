package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"assignment-tracker.com/assignment-tracker/internal/constants"
	dto "assignment-tracker.com/assignment-tracker/internal/data_models"
	apperrors "assignment-tracker.com/assignment-tracker/internal/errors"
	model "assignment-tracker.com/assignment-tracker/internal/models"
	repository "assignment-tracker.com/assignment-tracker/internal/repositories"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to connect database")

	require.NoError(t, db.AutoMigrate(&model.Assignment{}, &model.User{}), "failed to migrate database")

	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)

	return db
}

func newAssignmentService(t *testing.T) *AssignmentService {
	return NewAssignmentService(repository.NewAssignmentRepository(setupTestDB(t)))
}

func ptr[T any](v T) *T { return &v }

func mustCreate(t *testing.T, s *AssignmentService, title, course string, due time.Time, priority constants.Priority) *model.Assignment {
	t.Helper()
	a, err := s.Create(context.Background(), dto.AssignmentChanges{
		Title:    &title,
		Course:   &course,
		DueDate:  &due,
		Priority: &priority,
	})
	require.NoError(t, err)
	return a
}

func TestCreateForcesNotStarted(t *testing.T) {
	s := newAssignmentService(t)
	ctx := context.Background()

	a, err := s.Create(ctx, dto.AssignmentChanges{
		Title:   ptr("Essay draft"),
		Course:  ptr("English"),
		DueDate: ptr(time.Now().Add(48 * time.Hour)),
		Status:  ptr(constants.StatusCompleted),
	})
	require.NoError(t, err)
	assert.Equal(t, constants.StatusNotStarted, a.Status)
	assert.Equal(t, constants.PriorityMedium, a.Priority)
	assert.NotEmpty(t, a.ID)
	assert.False(t, a.CreatedAt.IsZero())

	fetched, err := s.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.StatusNotStarted, fetched.Status)
}

func TestCreateValidationMessages(t *testing.T) {
	s := newAssignmentService(t)

	_, err := s.Create(context.Background(), dto.AssignmentChanges{
		Title: ptr("ab"),
	})

	var verr *apperrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Title must be at least 3 characters long", verr.Fields["title"])
	assert.Equal(t, "Course name is required", verr.Fields["course"])
	assert.Equal(t, "Due date is required", verr.Fields["dueDate"])
}

func TestListDefaultOrdering(t *testing.T) {
	s := newAssignmentService(t)
	base := time.Now().Add(24 * time.Hour).Truncate(time.Second)

	mustCreate(t, s, "Low early", "Math", base, constants.PriorityLow)
	mustCreate(t, s, "Medium late", "Math", base.Add(48*time.Hour), constants.PriorityMedium)
	mustCreate(t, s, "High late", "Math", base.Add(72*time.Hour), constants.PriorityHigh)
	mustCreate(t, s, "Medium early", "Math", base, constants.PriorityMedium)

	list, err := s.List(context.Background(), repository.AssignmentFilter{})
	require.NoError(t, err)
	require.Len(t, list, 4)

	titles := []string{list[0].Title, list[1].Title, list[2].Title, list[3].Title}
	assert.Equal(t, []string{"High late", "Medium early", "Medium late", "Low early"}, titles)
}

func TestListCourseFilterCaseInsensitive(t *testing.T) {
	s := newAssignmentService(t)
	due := time.Now().Add(24 * time.Hour)

	mustCreate(t, s, "Cell report", "Biology101", due, constants.PriorityMedium)
	mustCreate(t, s, "Field notes", "BIO-201", due, constants.PriorityMedium)
	mustCreate(t, s, "Problem set", "Math 55", due, constants.PriorityMedium)

	list, err := s.List(context.Background(), repository.AssignmentFilter{Course: "bio"})
	require.NoError(t, err)
	require.Len(t, list, 2)
	for _, a := range list {
		assert.Contains(t, []string{"Biology101", "BIO-201"}, a.Course)
	}
}

func TestListFiltersCombineWithAnd(t *testing.T) {
	s := newAssignmentService(t)
	ctx := context.Background()
	due := time.Now().Add(24 * time.Hour)

	a := mustCreate(t, s, "Cell report", "Biology101", due, constants.PriorityHigh)
	mustCreate(t, s, "Field notes", "BIO-201", due, constants.PriorityLow)

	_, err := s.Update(ctx, a.ID, dto.AssignmentChanges{Status: ptr(constants.StatusInProgress)})
	require.NoError(t, err)

	list, err := s.List(ctx, repository.AssignmentFilter{
		Status:   constants.StatusInProgress,
		Priority: constants.PriorityHigh,
		Course:   "bio",
	})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Cell report", list[0].Title)
}

func TestUpdateStatusOnlyPreservesOtherFields(t *testing.T) {
	s := newAssignmentService(t)
	ctx := context.Background()

	pastDue := time.Now().Add(-24 * time.Hour).Truncate(time.Second)
	a, err := s.Create(ctx, dto.AssignmentChanges{
		Title:       ptr("Lab writeup"),
		Course:      ptr("Chemistry"),
		DueDate:     ptr(pastDue),
		Priority:    ptr(constants.PriorityHigh),
		Description: ptr("bring goggles"),
	})
	require.NoError(t, err)
	require.True(t, a.IsOverdue())

	updated, err := s.Update(ctx, a.ID, dto.AssignmentChanges{
		Status: ptr(constants.StatusCompleted),
	})
	require.NoError(t, err)

	assert.Equal(t, "Lab writeup", updated.Title)
	assert.Equal(t, "Chemistry", updated.Course)
	assert.Equal(t, constants.PriorityHigh, updated.Priority)
	assert.Equal(t, "bring goggles", updated.Description)
	assert.True(t, updated.DueDate.Equal(pastDue))
	assert.WithinDuration(t, a.CreatedAt, updated.CreatedAt, time.Second)
	assert.Equal(t, constants.StatusCompleted, updated.Status)
	assert.False(t, updated.IsOverdue(), "completed assignments are never overdue")

	// Applying the same change again yields the same final state.
	again, err := s.Update(ctx, a.ID, dto.AssignmentChanges{
		Status: ptr(constants.StatusCompleted),
	})
	require.NoError(t, err)
	assert.Equal(t, updated.Status, again.Status)
	assert.Equal(t, updated.Title, again.Title)
}

func TestUpdateRevalidatesRecord(t *testing.T) {
	s := newAssignmentService(t)
	ctx := context.Background()

	a := mustCreate(t, s, "Reading log", "History", time.Now().Add(24*time.Hour), constants.PriorityLow)

	_, err := s.Update(ctx, a.ID, dto.AssignmentChanges{Title: ptr("ab")})

	var verr *apperrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Title must be at least 3 characters long", verr.Fields["title"])

	// The stored record is untouched after a failed update.
	fetched, err := s.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Reading log", fetched.Title)
}

func TestUpdateMissingAssignment(t *testing.T) {
	s := newAssignmentService(t)

	_, err := s.Update(context.Background(), "no-such-id", dto.AssignmentChanges{
		Status: ptr(constants.StatusCompleted),
	})
	assert.ErrorIs(t, err, apperrors.ErrAssignmentNotFound)
}

func TestDeleteMissingReportsNotFoundEveryTime(t *testing.T) {
	s := newAssignmentService(t)
	ctx := context.Background()

	a := mustCreate(t, s, "Quiz prep", "Physics", time.Now().Add(24*time.Hour), constants.PriorityMedium)

	require.NoError(t, s.Delete(ctx, a.ID))
	assert.ErrorIs(t, s.Delete(ctx, a.ID), apperrors.ErrAssignmentNotFound)
	assert.ErrorIs(t, s.Delete(ctx, a.ID), apperrors.ErrAssignmentNotFound)
}

func TestStats(t *testing.T) {
	s := newAssignmentService(t)
	ctx := context.Background()

	past := time.Now().Add(-24 * time.Hour)
	future := time.Now().Add(24 * time.Hour)

	mustCreate(t, s, "Overdue one", "Math", past, constants.PriorityMedium)

	done := mustCreate(t, s, "Finished late", "Math", past, constants.PriorityMedium)
	_, err := s.Update(ctx, done.ID, dto.AssignmentChanges{Status: ptr(constants.StatusCompleted)})
	require.NoError(t, err)

	active := mustCreate(t, s, "Ongoing", "Math", future, constants.PriorityMedium)
	_, err = s.Update(ctx, active.ID, dto.AssignmentChanges{Status: ptr(constants.StatusInProgress)})
	require.NoError(t, err)

	stats, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.Total)
	assert.Equal(t, int64(1), stats.Overdue, "completed assignments never count as overdue")
	assert.Equal(t, int64(1), stats.Completed)
	assert.Equal(t, int64(1), stats.InProgress)
}
