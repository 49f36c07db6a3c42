package services

import (
	"context"
	"testing"
	"time"

	"jobhub_backend/internal/events"
	"jobhub_backend/internal/models"
	"jobhub_backend/internal/services/dto"
	"jobhub_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const editableWindow = 30 * 24 * time.Hour

type reviewServiceFixture struct {
	svc      ReviewService
	reviews  *fakeReviewRepo
	employer *models.User
	worker   *models.User
	app      *models.Application
}

func newReviewServiceFixture(t *testing.T, seed ...*models.Review) *reviewServiceFixture {
	t.Helper()

	employer, worker, application := reviewFixture()

	reviews := newFakeReviewRepo(seed...)
	svc := NewReviewService(
		reviews,
		newFakeUserRepo(employer, worker),
		newFakeApplicationRepo(application),
		newFakeProfileRepo(),
		events.Noop{},
		editableWindow,
	)

	return &reviewServiceFixture{
		svc:      svc,
		reviews:  reviews,
		employer: employer,
		worker:   worker,
		app:      application,
	}
}

func TestCreateReview_EmployerReviewsWorker(t *testing.T) {
	f := newReviewServiceFixture(t)
	db, mock := newTestDB(t)
	expectTx(mock)

	resp, err := f.svc.CreateReview(context.Background(), db, f.employer, &dto.CreateReviewRequest{
		ApplicationID: f.app.ID,
		RevieweeID:    f.worker.ID,
		Rating:        5,
		Comment:       "great work",
	})

	require.NoError(t, err)
	assert.Equal(t, f.employer.ID, resp.ReviewerID)
	assert.Equal(t, f.worker.ID, resp.RevieweeID)
	assert.Equal(t, models.ReviewTypeEmployerToEmployee, resp.Type)
	assert.Equal(t, 5, resp.Rating)
}

func TestCreateReview_WorkerReviewsEmployer(t *testing.T) {
	f := newReviewServiceFixture(t)
	db, mock := newTestDB(t)
	expectTx(mock)

	resp, err := f.svc.CreateReview(context.Background(), db, f.worker, &dto.CreateReviewRequest{
		ApplicationID: f.app.ID,
		RevieweeID:    f.employer.ID,
		Rating:        4,
	})

	require.NoError(t, err)
	assert.Equal(t, models.ReviewTypeEmployeeToEmployer, resp.Type)
}

func TestCreateReview_NonCompletedApplicationIneligible(t *testing.T) {
	f := newReviewServiceFixture(t)
	f.app.Status = models.ApplicationStatusAccepted
	db, _ := newTestDB(t)

	_, err := f.svc.CreateReview(context.Background(), db, f.employer, &dto.CreateReviewRequest{
		ApplicationID: f.app.ID,
		RevieweeID:    f.worker.ID,
		Rating:        5,
	})

	require.Error(t, err)
	assert.Equal(t, apperrors.ErrIneligibleReview, err)
}

func TestCreateReview_SecondReviewForSameTripleFails(t *testing.T) {
	f := newReviewServiceFixture(t)
	db, mock := newTestDB(t)
	expectTx(mock)

	req := &dto.CreateReviewRequest{
		ApplicationID: f.app.ID,
		RevieweeID:    f.worker.ID,
		Rating:        5,
	}

	_, err := f.svc.CreateReview(context.Background(), db, f.employer, req)
	require.NoError(t, err)

	_, err = f.svc.CreateReview(context.Background(), db, f.employer, req)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrIneligibleReview, err)
}

func TestUpdateReview_OwnerWithinWindow(t *testing.T) {
	review := &models.Review{
		ReviewerID:    "employer-1",
		RevieweeID:    "worker-1",
		ApplicationID: "app-1",
		Rating:        3,
		Type:          models.ReviewTypeEmployerToEmployee,
	}
	review.ID = "review-1"
	review.CreatedAt = time.Now().Add(-24 * time.Hour)

	f := newReviewServiceFixture(t, review)
	db, mock := newTestDB(t)
	expectTx(mock)

	newRating := 5
	resp, err := f.svc.UpdateReview(db, f.employer, review.ID, &dto.UpdateReviewRequest{Rating: &newRating})

	require.NoError(t, err)
	assert.Equal(t, 5, resp.Rating)
}

func TestUpdateReview_NotOwnerForbidden(t *testing.T) {
	review := &models.Review{ReviewerID: "employer-1", RevieweeID: "worker-1", ApplicationID: "app-1", Rating: 3}
	review.ID = "review-1"
	review.CreatedAt = time.Now()

	f := newReviewServiceFixture(t, review)
	db, _ := newTestDB(t)

	newRating := 1
	_, err := f.svc.UpdateReview(db, f.worker, review.ID, &dto.UpdateReviewRequest{Rating: &newRating})

	require.Error(t, err)
	assert.Equal(t, apperrors.ErrNotReviewOwner, err)
}

func TestUpdateReview_OutsideWindowNotEditable(t *testing.T) {
	review := &models.Review{ReviewerID: "employer-1", RevieweeID: "worker-1", ApplicationID: "app-1", Rating: 3}
	review.ID = "review-1"
	review.CreatedAt = time.Now().Add(-editableWindow - time.Hour)

	f := newReviewServiceFixture(t, review)
	db, _ := newTestDB(t)

	newRating := 5
	_, err := f.svc.UpdateReview(db, f.employer, review.ID, &dto.UpdateReviewRequest{Rating: &newRating})

	require.Error(t, err)
	assert.Equal(t, apperrors.ErrReviewNotEditable, err)
}

func TestDeleteReview_OwnerOnly(t *testing.T) {
	review := &models.Review{ReviewerID: "employer-1", RevieweeID: "worker-1", ApplicationID: "app-1", Rating: 3}
	review.ID = "review-1"
	review.CreatedAt = time.Now()

	f := newReviewServiceFixture(t, review)
	db, mock := newTestDB(t)

	err := f.svc.DeleteReview(db, f.worker, review.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrNotReviewOwner, err)

	expectTx(mock)
	require.NoError(t, f.svc.DeleteReview(db, f.employer, review.ID))

	_, err = f.svc.GetReview(db, review.ID)
	assert.Error(t, err)
}

func TestDeleteReview_AdminAllowed(t *testing.T) {
	review := &models.Review{ReviewerID: "employer-1", RevieweeID: "worker-1", ApplicationID: "app-1", Rating: 2}
	review.ID = "review-1"
	review.CreatedAt = time.Now()

	f := newReviewServiceFixture(t, review)
	db, mock := newTestDB(t)
	expectTx(mock)

	admin := &models.User{Role: models.UserRoleAdmin}
	admin.ID = "admin-1"

	require.NoError(t, f.svc.DeleteReview(db, admin, review.ID))
}

func TestGetReviewsForUser_AppliesBothDateBounds(t *testing.T) {
	now := time.Now()

	old := &models.Review{ReviewerID: "employer-1", RevieweeID: "worker-1", ApplicationID: "app-old", Rating: 4}
	old.ID = "review-old"
	old.CreatedAt = now.AddDate(0, -3, 0)

	recent := &models.Review{ReviewerID: "employer-1", RevieweeID: "worker-1", ApplicationID: "app-recent", Rating: 5}
	recent.ID = "review-recent"
	recent.CreatedAt = now.AddDate(0, 0, -2)

	f := newReviewServiceFixture(t, old, recent)
	db, _ := newTestDB(t)

	from := now.AddDate(0, -1, 0)
	to := now.AddDate(0, 0, -1)
	reviews, err := f.svc.GetReviewsForUser(db, "worker-1", &dto.ReviewListFilters{FromDate: &from, ToDate: &to})

	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, "review-recent", reviews[0].ID)

	// An upper bound before both reviews excludes everything.
	to = now.AddDate(0, -6, 0)
	reviews, err = f.svc.GetReviewsForUser(db, "worker-1", &dto.ReviewListFilters{ToDate: &to})
	require.NoError(t, err)
	assert.Empty(t, reviews)
}

func TestCanReviewApplication_Scenario(t *testing.T) {
	f := newReviewServiceFixture(t)
	db, mock := newTestDB(t)

	resp, err := f.svc.CanReviewApplication(db, f.employer, f.app.ID)
	require.NoError(t, err)
	assert.True(t, resp.CanReview)
	require.NotNil(t, resp.Reviewee)
	assert.Equal(t, f.worker.ID, resp.Reviewee.ID)
	assert.Nil(t, resp.ExistingReview)

	expectTx(mock)
	created, err := f.svc.CreateReview(context.Background(), db, f.employer, &dto.CreateReviewRequest{
		ApplicationID: f.app.ID,
		RevieweeID:    f.worker.ID,
		Rating:        5,
	})
	require.NoError(t, err)

	resp, err = f.svc.CanReviewApplication(db, f.employer, f.app.ID)
	require.NoError(t, err)
	assert.False(t, resp.CanReview)
	require.NotNil(t, resp.ExistingReview)
	assert.Equal(t, created.ID, resp.ExistingReview.ID)
}

func TestCanReviewApplication_OutsiderCannotReview(t *testing.T) {
	f := newReviewServiceFixture(t)
	db, _ := newTestDB(t)

	outsider := &models.User{Role: models.UserRoleWorker}
	outsider.ID = "outsider-1"

	resp, err := f.svc.CanReviewApplication(db, outsider, f.app.ID)
	require.NoError(t, err)
	assert.False(t, resp.CanReview)
	assert.Nil(t, resp.Reviewee)
}
