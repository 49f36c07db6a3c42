package services

import (
	"testing"

	"jobhub_backend/internal/models"
	"jobhub_backend/internal/services/dto"
	"jobhub_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func applicationServiceFixture() (ApplicationService, *fakeApplicationRepo, *fakeJobRepo, *models.User, *models.User) {
	employer := &models.User{Role: models.UserRoleEmployer}
	employer.ID = "employer-1"
	worker := &models.User{Role: models.UserRoleWorker}
	worker.ID = "worker-1"

	job := &models.Job{EmployerID: employer.ID, Title: "Deck build", Status: models.JobStatusPublished}
	job.ID = "job-1"

	apps := newFakeApplicationRepo()
	jobs := newFakeJobRepo(job)
	return NewApplicationService(apps, jobs), apps, jobs, employer, worker
}

func TestApply_CreatesPendingApplication(t *testing.T) {
	svc, _, _, _, worker := applicationServiceFixture()

	resp, err := svc.Apply(nil, worker, &dto.CreateApplicationRequest{JobID: "job-1", ProposedRate: 40})
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusPending, resp.Status)
	assert.Equal(t, worker.ID, resp.WorkerID)
}

func TestApply_SecondApplicationToSameJobRejected(t *testing.T) {
	svc, _, _, _, worker := applicationServiceFixture()

	_, err := svc.Apply(nil, worker, &dto.CreateApplicationRequest{JobID: "job-1"})
	require.NoError(t, err)

	_, err = svc.Apply(nil, worker, &dto.CreateApplicationRequest{JobID: "job-1"})
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeAlreadyExists, appErr.Code)
}

func TestApply_RejectsUnpublishedJobAndOwnJob(t *testing.T) {
	svc, _, jobs, employer, worker := applicationServiceFixture()

	jobs.jobs["job-1"].Status = models.JobStatusDraft
	_, err := svc.Apply(nil, worker, &dto.CreateApplicationRequest{JobID: "job-1"})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrInvalidJobStatus, err)

	jobs.jobs["job-1"].Status = models.JobStatusPublished
	employerAsWorker := &models.User{Role: models.UserRoleWorker}
	employerAsWorker.ID = employer.ID
	_, err = svc.Apply(nil, employerAsWorker, &dto.CreateApplicationRequest{JobID: "job-1"})
	require.Error(t, err)
}

func TestAcceptThenComplete_MovesJobAlong(t *testing.T) {
	svc, apps, jobs, employer, worker := applicationServiceFixture()
	db, mock := newTestDB(t)

	resp, err := svc.Apply(nil, worker, &dto.CreateApplicationRequest{JobID: "job-1"})
	require.NoError(t, err)

	// Link the fake application to its job so ownership checks pass.
	apps.applications[resp.ID].Job = jobs.jobs["job-1"]

	expectTx(mock)
	require.NoError(t, svc.Accept(db, employer, resp.ID))
	assert.Equal(t, models.ApplicationStatusAccepted, apps.applications[resp.ID].Status)
	assert.Equal(t, models.JobStatusInProgress, jobs.jobs["job-1"].Status)

	expectTx(mock)
	require.NoError(t, svc.Complete(db, employer, resp.ID))
	assert.Equal(t, models.ApplicationStatusCompleted, apps.applications[resp.ID].Status)
	assert.Equal(t, models.JobStatusCompleted, jobs.jobs["job-1"].Status)
	require.NotNil(t, apps.applications[resp.ID].CompletedAt)
}

func TestAccept_OnlyJobOwner(t *testing.T) {
	svc, apps, jobs, _, worker := applicationServiceFixture()
	db, _ := newTestDB(t)

	resp, err := svc.Apply(nil, worker, &dto.CreateApplicationRequest{JobID: "job-1"})
	require.NoError(t, err)
	apps.applications[resp.ID].Job = jobs.jobs["job-1"]

	stranger := &models.User{Role: models.UserRoleEmployer}
	stranger.ID = "employer-2"

	err = svc.Accept(db, stranger, resp.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrNotJobOwner, err)
}

func TestWithdraw_WorkerOwnPendingApplication(t *testing.T) {
	svc, apps, _, _, worker := applicationServiceFixture()

	resp, err := svc.Apply(nil, worker, &dto.CreateApplicationRequest{JobID: "job-1"})
	require.NoError(t, err)

	require.NoError(t, svc.Withdraw(nil, worker, resp.ID))
	assert.Equal(t, models.ApplicationStatusWithdrawn, apps.applications[resp.ID].Status)

	// Terminal states cannot be withdrawn again.
	err = svc.Withdraw(nil, worker, resp.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrInvalidApplicationStatus, err)
}
