package services

import (
	"context"
	"time"

	"jobhub_backend/internal/events"
	"jobhub_backend/internal/logger"
	"jobhub_backend/internal/models"
	"jobhub_backend/internal/repositories"
	"jobhub_backend/internal/services/dto"
	"jobhub_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type ReviewService interface {
	CreateReview(ctx context.Context, db *gorm.DB, actor *models.User, req *dto.CreateReviewRequest) (*dto.ReviewResponse, error)
	UpdateReview(db *gorm.DB, actor *models.User, reviewID string, req *dto.UpdateReviewRequest) (*dto.ReviewResponse, error)
	DeleteReview(db *gorm.DB, actor *models.User, reviewID string) error
	GetReview(db *gorm.DB, reviewID string) (*dto.ReviewResponse, error)
	GetReviewsForUser(db *gorm.DB, userID string, filters *dto.ReviewListFilters) ([]*dto.ReviewResponse, error)
	GetReviewStats(db *gorm.DB, userID string) (*dto.ReviewStatsResponse, error)
	GetAverageRating(db *gorm.DB, userID string) (float64, error)
	CanReviewApplication(db *gorm.DB, actor *models.User, applicationID string) (*dto.CanReviewResponse, error)
}

type reviewService struct {
	reviewRepo      repositories.ReviewRepository
	userRepo        repositories.UserRepository
	applicationRepo repositories.ApplicationRepository
	profileRepo     repositories.ProfileRepository
	publisher       events.Publisher
	editableWindow  time.Duration
}

func NewReviewService(
	reviewRepo repositories.ReviewRepository,
	userRepo repositories.UserRepository,
	applicationRepo repositories.ApplicationRepository,
	profileRepo repositories.ProfileRepository,
	publisher events.Publisher,
	editableWindow time.Duration,
) ReviewService {
	return &reviewService{
		reviewRepo:      reviewRepo,
		userRepo:        userRepo,
		applicationRepo: applicationRepo,
		profileRepo:     profileRepo,
		publisher:       publisher,
		editableWindow:  editableWindow,
	}
}

// CreateReview re-validates eligibility even though the UI has usually
// checked already, then inserts inside one transaction. The unique index on
// (application_id, reviewer_id, reviewee_id) closes the remaining
// check-then-act race.
func (s *reviewService) CreateReview(ctx context.Context, db *gorm.DB, actor *models.User, req *dto.CreateReviewRequest) (*dto.ReviewResponse, error) {
	application, err := s.applicationRepo.FindByID(db, req.ApplicationID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}

	reviewee, err := s.userRepo.FindByID(db, req.RevieweeID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}

	exists, err := s.reviewRepo.ExistsForApplication(db, application.ID, actor.ID, reviewee.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	if !CanLeaveReview(actor, reviewee, application, exists) {
		return nil, apperrors.ErrIneligibleReview
	}

	reviewType := models.ReviewTypeEmployeeToEmployer
	if actor.ID == application.Job.EmployerID {
		reviewType = models.ReviewTypeEmployerToEmployee
	}

	review := &models.Review{
		ReviewerID:    actor.ID,
		RevieweeID:    reviewee.ID,
		ApplicationID: application.ID,
		JobID:         application.JobID,
		Rating:        req.Rating,
		Comment:       req.Comment,
		Type:          reviewType,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.reviewRepo.Create(tx, review); err != nil {
			return err
		}
		// Keep the reviewee's profile rating in sync with the aggregate.
		avg, err := s.reviewRepo.GetAverageRating(tx, reviewee.ID)
		if err != nil {
			return err
		}
		if reviewType == models.ReviewTypeEmployerToEmployee {
			return s.profileRepo.UpdateWorkerRating(tx, reviewee.ID, avg)
		}
		return s.profileRepo.UpdateEmployerRating(tx, reviewee.ID, avg)
	})
	if err != nil {
		if err == repositories.ErrReviewAlreadyExists {
			return nil, apperrors.ErrAlreadyExists(err)
		}
		return nil, apperrors.InternalError(err)
	}

	// Post-commit event; delivery failures must not fail the request.
	go func() {
		pubCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.publisher.Publish(pubCtx, events.ReviewCreated{
			ReviewID:      review.ID,
			ApplicationID: application.ID,
			JobID:         application.JobID,
			JobTitle:      application.Job.Title,
			ReviewerID:    actor.ID,
			ReviewerName:  actor.Name,
			RevieweeID:    reviewee.ID,
			RevieweeName:  reviewee.Name,
			RevieweeEmail: reviewee.Email,
			Rating:        review.Rating,
			CreatedAt:     review.CreatedAt,
		})
	}()

	logger.CtxInfo(ctx, "review created",
		"review_id", review.ID,
		"application_id", application.ID,
		"reviewer_id", actor.ID,
		"reviewee_id", reviewee.ID,
	)

	return s.buildReviewResponse(review), nil
}

func (s *reviewService) UpdateReview(db *gorm.DB, actor *models.User, reviewID string, req *dto.UpdateReviewRequest) (*dto.ReviewResponse, error) {
	review, err := s.reviewRepo.FindByID(db, reviewID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}

	if review.ReviewerID != actor.ID {
		return nil, apperrors.ErrNotReviewOwner
	}

	if !s.isEditable(review) {
		return nil, apperrors.ErrReviewNotEditable
	}

	if req.Rating != nil {
		review.Rating = *req.Rating
	}
	if req.Comment != nil {
		review.Comment = *req.Comment
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.reviewRepo.Update(tx, review); err != nil {
			return err
		}
		avg, err := s.reviewRepo.GetAverageRating(tx, review.RevieweeID)
		if err != nil {
			return err
		}
		if review.Type == models.ReviewTypeEmployerToEmployee {
			return s.profileRepo.UpdateWorkerRating(tx, review.RevieweeID, avg)
		}
		return s.profileRepo.UpdateEmployerRating(tx, review.RevieweeID, avg)
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	refreshed, err := s.reviewRepo.FindByID(db, reviewID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return s.buildReviewResponse(refreshed), nil
}

func (s *reviewService) DeleteReview(db *gorm.DB, actor *models.User, reviewID string) error {
	review, err := s.reviewRepo.FindByID(db, reviewID)
	if err != nil {
		return apperrors.ErrNotFound(err)
	}

	if review.ReviewerID != actor.ID && actor.Role != models.UserRoleAdmin {
		return apperrors.ErrNotReviewOwner
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.reviewRepo.Delete(tx, reviewID); err != nil {
			return err
		}
		avg, err := s.reviewRepo.GetAverageRating(tx, review.RevieweeID)
		if err != nil {
			return err
		}
		if review.Type == models.ReviewTypeEmployerToEmployee {
			return s.profileRepo.UpdateWorkerRating(tx, review.RevieweeID, avg)
		}
		return s.profileRepo.UpdateEmployerRating(tx, review.RevieweeID, avg)
	})
	if err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *reviewService) GetReview(db *gorm.DB, reviewID string) (*dto.ReviewResponse, error) {
	review, err := s.reviewRepo.FindByID(db, reviewID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}
	return s.buildReviewResponse(review), nil
}

// GetReviewsForUser lists reviews received by userID. Both date bounds are
// applied; the upstream behavior of dropping the upper bound was a defect
// and is not preserved.
func (s *reviewService) GetReviewsForUser(db *gorm.DB, userID string, filters *dto.ReviewListFilters) ([]*dto.ReviewResponse, error) {
	repoFilters := repositories.ReviewFilters{}
	if filters != nil {
		if filters.Type != "" {
			t := models.ReviewType(filters.Type)
			repoFilters.Type = &t
		}
		repoFilters.Rating = filters.Rating
		repoFilters.FromDate = filters.FromDate
		repoFilters.ToDate = filters.ToDate
	}

	reviews, err := s.reviewRepo.FindForReviewee(db, userID, repoFilters)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]*dto.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		responses = append(responses, s.buildReviewResponse(&reviews[i]))
	}
	return responses, nil
}

func (s *reviewService) GetReviewStats(db *gorm.DB, userID string) (*dto.ReviewStatsResponse, error) {
	stats, err := s.reviewRepo.GetRatingStats(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.ReviewStatsResponse{
		AverageRating:   stats.AverageRating,
		TotalReviews:    stats.TotalReviews,
		RatingBreakdown: stats.RatingCounts,
		RecentReviews:   stats.RecentReviews,
	}, nil
}

func (s *reviewService) GetAverageRating(db *gorm.DB, userID string) (float64, error) {
	avg, err := s.reviewRepo.GetAverageRating(db, userID)
	if err != nil {
		return 0, apperrors.InternalError(err)
	}
	return avg, nil
}

// CanReviewApplication reports whether the actor may review the counterpart
// of a completed application, and returns the existing review when one was
// already left.
func (s *reviewService) CanReviewApplication(db *gorm.DB, actor *models.User, applicationID string) (*dto.CanReviewResponse, error) {
	application, err := s.applicationRepo.FindByID(db, applicationID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}

	counterpartID := ReviewCounterpart(actor.ID, application)
	if counterpartID == "" {
		return &dto.CanReviewResponse{CanReview: false}, nil
	}

	reviewee, err := s.userRepo.FindByID(db, counterpartID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}

	existing, err := s.reviewRepo.FindByApplicationAndReviewer(db, application.ID, actor.ID, reviewee.ID)
	if err != nil && err != repositories.ErrReviewNotFound {
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.CanReviewResponse{
		CanReview: CanLeaveReview(actor, reviewee, application, existing != nil),
		Reviewee: &dto.UserInfo{
			ID:   reviewee.ID,
			Name: reviewee.Name,
			Role: reviewee.Role,
		},
	}
	if existing != nil {
		resp.ExistingReview = s.buildReviewResponse(existing)
	}
	return resp, nil
}

// isEditable: a review may be edited while it is younger than the
// configured window.
func (s *reviewService) isEditable(review *models.Review) bool {
	return time.Since(review.CreatedAt) <= s.editableWindow
}

func (s *reviewService) buildReviewResponse(review *models.Review) *dto.ReviewResponse {
	resp := &dto.ReviewResponse{
		ID:            review.ID,
		ReviewerID:    review.ReviewerID,
		RevieweeID:    review.RevieweeID,
		ApplicationID: review.ApplicationID,
		JobID:         review.JobID,
		Rating:        review.Rating,
		Comment:       review.Comment,
		Type:          review.Type,
		CreatedAt:     review.CreatedAt,
		UpdatedAt:     review.UpdatedAt,
	}

	if review.Reviewer != nil && review.Reviewer.ID != "" {
		resp.Reviewer = &dto.UserInfo{
			ID:   review.Reviewer.ID,
			Name: review.Reviewer.Name,
			Role: review.Reviewer.Role,
		}
	}
	if review.Reviewee != nil && review.Reviewee.ID != "" {
		resp.Reviewee = &dto.UserInfo{
			ID:   review.Reviewee.ID,
			Name: review.Reviewee.Name,
			Role: review.Reviewee.Role,
		}
	}

	return resp
}
