package services

import (
	"testing"

	"jobhub_backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func reviewFixture() (*models.User, *models.User, *models.Application) {
	employer := &models.User{Role: models.UserRoleEmployer}
	employer.ID = "employer-1"
	worker := &models.User{Role: models.UserRoleWorker}
	worker.ID = "worker-1"

	job := &models.Job{EmployerID: employer.ID}
	job.ID = "job-1"

	application := &models.Application{
		JobID:    job.ID,
		WorkerID: worker.ID,
		Status:   models.ApplicationStatusCompleted,
		Job:      job,
	}
	application.ID = "app-1"

	return employer, worker, application
}

func TestCanLeaveReview_BothDirections(t *testing.T) {
	employer, worker, application := reviewFixture()

	assert.True(t, CanLeaveReview(employer, worker, application, false))
	assert.True(t, CanLeaveReview(worker, employer, application, false))
}

func TestCanLeaveReview_RequiresCompletedApplication(t *testing.T) {
	employer, worker, application := reviewFixture()

	for _, status := range []models.ApplicationStatus{
		models.ApplicationStatusPending,
		models.ApplicationStatusAccepted,
		models.ApplicationStatusRejected,
		models.ApplicationStatusWithdrawn,
	} {
		application.Status = status
		assert.False(t, CanLeaveReview(employer, worker, application, false), "status %s", status)
	}
}

func TestCanLeaveReview_SelfReviewRejected(t *testing.T) {
	employer, _, application := reviewFixture()

	assert.False(t, CanLeaveReview(employer, employer, application, false))
}

func TestCanLeaveReview_OutsiderRejected(t *testing.T) {
	employer, worker, application := reviewFixture()

	outsider := &models.User{Role: models.UserRoleWorker}
	outsider.ID = "outsider-1"

	assert.False(t, CanLeaveReview(outsider, worker, application, false))
	assert.False(t, CanLeaveReview(employer, outsider, application, false))
	assert.False(t, CanLeaveReview(worker, outsider, application, false))
}

func TestCanLeaveReview_ExistingReviewBlocks(t *testing.T) {
	employer, worker, application := reviewFixture()

	assert.False(t, CanLeaveReview(employer, worker, application, true))
}

func TestCanLeaveReview_NilInputs(t *testing.T) {
	employer, worker, application := reviewFixture()

	assert.False(t, CanLeaveReview(nil, worker, application, false))
	assert.False(t, CanLeaveReview(employer, nil, application, false))
	assert.False(t, CanLeaveReview(employer, worker, nil, false))

	application.Job = nil
	assert.False(t, CanLeaveReview(employer, worker, application, false))
}

func TestReviewCounterpart(t *testing.T) {
	employer, worker, application := reviewFixture()

	assert.Equal(t, worker.ID, ReviewCounterpart(employer.ID, application))
	assert.Equal(t, employer.ID, ReviewCounterpart(worker.ID, application))
	assert.Equal(t, "", ReviewCounterpart("someone-else", application))
	assert.Equal(t, "", ReviewCounterpart(employer.ID, nil))
}
