package dto

import (
	"time"

	"jobhub_backend/internal/models"
	"jobhub_backend/internal/repositories"
)

// DashboardResponse is the full worker dashboard payload. Everything in it
// is derived; nothing here mutates state.
type DashboardResponse struct {
	Stats              DashboardStats        `json:"stats"`
	RecentApplications []ApplicationResponse `json:"recent_applications"`
	RecommendedJobs    []JobResponse         `json:"recommended_jobs"`
	ActiveJobs         []ApplicationResponse `json:"active_jobs"`
	Earnings           EarningsResponse      `json:"earnings"`
}

type DashboardStats struct {
	ApplicationCounts map[models.ApplicationStatus]int64 `json:"application_counts"`
	TotalReviews      int64                              `json:"total_reviews"`
	AverageRating     float64                            `json:"average_rating"`
	ProfileCompletion int                                `json:"profile_completion"` // percent
}

type EarningsResponse struct {
	ThisMonth float64                       `json:"this_month"`
	LastMonth float64                       `json:"last_month"`
	Growth    float64                       `json:"growth"` // percent; 0 when last month was 0
	Daily     []repositories.DailyEarning   `json:"daily"`  // last 30 days, date-grouped
}

type ApplicationResponse struct {
	ID           string                   `json:"id"`
	JobID        string                   `json:"job_id"`
	WorkerID     string                   `json:"worker_id"`
	CoverLetter  string                   `json:"cover_letter,omitempty"`
	ProposedRate float64                  `json:"proposed_rate,omitempty"`
	Status       models.ApplicationStatus `json:"status"`
	CreatedAt    time.Time                `json:"created_at"`
	CompletedAt  *time.Time               `json:"completed_at,omitempty"`

	Job *JobResponse `json:"job,omitempty"`
}
