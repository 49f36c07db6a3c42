package dto

import (
	"time"

	"jobhub_backend/internal/models"
)

// ======================
// Request DTOs
// ======================

type CreateReviewRequest struct {
	ApplicationID string `json:"application_id" validate:"required"`
	RevieweeID    string `json:"reviewee_id" validate:"required"`
	Rating        int    `json:"rating" validate:"required,min=1,max=5"`
	Comment       string `json:"comment" validate:"omitempty,max=1000"`
}

type UpdateReviewRequest struct {
	Rating  *int    `json:"rating,omitempty" validate:"omitempty,min=1,max=5"`
	Comment *string `json:"comment,omitempty" validate:"omitempty,max=1000"`
}

// ReviewListFilters binds the optional query predicates of the listing.
type ReviewListFilters struct {
	Type     string     `form:"type" validate:"omitempty,is-review-type"`
	Rating   *int       `form:"rating" validate:"omitempty,min=1,max=5"`
	FromDate *time.Time `form:"from_date" validate:"omitempty"`
	ToDate   *time.Time `form:"to_date" validate:"omitempty"`
}

// ======================
// Response DTOs
// ======================

type ReviewResponse struct {
	ID            string            `json:"id"`
	ReviewerID    string            `json:"reviewer_id"`
	RevieweeID    string            `json:"reviewee_id"`
	ApplicationID string            `json:"application_id"`
	JobID         string            `json:"job_id"`
	Rating        int               `json:"rating"`
	Comment       string            `json:"comment"`
	Type          models.ReviewType `json:"type"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`

	Reviewer *UserInfo `json:"reviewer,omitempty"`
	Reviewee *UserInfo `json:"reviewee,omitempty"`
}

type ReviewStatsResponse struct {
	AverageRating   float64       `json:"average_rating"`
	TotalReviews    int64         `json:"total_reviews"`
	RatingBreakdown map[int]int64 `json:"rating_breakdown"`
	RecentReviews   int64         `json:"recent_reviews"`
}

// CanReviewResponse answers "may this user review this application, and of
// whom". ExistingReview is set when the user already left one.
type CanReviewResponse struct {
	CanReview      bool            `json:"can_review"`
	Reviewee       *UserInfo       `json:"reviewee,omitempty"`
	ExistingReview *ReviewResponse `json:"existing_review,omitempty"`
}

type UserInfo struct {
	ID   string          `json:"id"`
	Name string          `json:"name"`
	Role models.UserRole `json:"role"`
}
