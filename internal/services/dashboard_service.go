package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"jobhub_backend/internal/algorithms"
	"jobhub_backend/internal/logger"
	"jobhub_backend/internal/models"
	"jobhub_backend/internal/repositories"
	"jobhub_backend/internal/services/dto"
	"jobhub_backend/pkg/apperrors"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const (
	recentApplicationsLimit = 5
	recommendedJobsLimit    = 5
	earningsSeriesDays      = 30
)

type DashboardService interface {
	GetDashboardData(ctx context.Context, db *gorm.DB, worker *models.User) (*dto.DashboardResponse, error)
}

type dashboardService struct {
	applicationRepo repositories.ApplicationRepository
	reviewRepo      repositories.ReviewRepository
	jobRepo         repositories.JobRepository
	paymentRepo     repositories.PaymentRepository
	profileRepo     repositories.ProfileRepository
	redis           *redis.Client
	cacheTTL        time.Duration
}

func NewDashboardService(
	applicationRepo repositories.ApplicationRepository,
	reviewRepo repositories.ReviewRepository,
	jobRepo repositories.JobRepository,
	paymentRepo repositories.PaymentRepository,
	profileRepo repositories.ProfileRepository,
	redisClient *redis.Client,
	cacheTTL time.Duration,
) DashboardService {
	return &dashboardService{
		applicationRepo: applicationRepo,
		reviewRepo:      reviewRepo,
		jobRepo:         jobRepo,
		paymentRepo:     paymentRepo,
		profileRepo:     profileRepo,
		redis:           redisClient,
		cacheTTL:        cacheTTL,
	}
}

// GetDashboardData assembles the worker dashboard in one pass. Every block
// is read-only; a failure in one block fails the whole call rather than
// returning a partial dashboard.
func (s *dashboardService) GetDashboardData(ctx context.Context, db *gorm.DB, worker *models.User) (*dto.DashboardResponse, error) {
	if !worker.IsWorker() {
		return nil, apperrors.ErrInvalidUserRole
	}

	if cached := s.fromCache(ctx, worker.ID); cached != nil {
		return cached, nil
	}

	counts, err := s.applicationRepo.CountByStatusForWorker(db, worker.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	ratingStats, err := s.reviewRepo.GetRatingStats(db, worker.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	completion := s.profileCompletion(db, worker.ID)

	recent, err := s.applicationRepo.FindRecentByWorker(db, worker.ID, recentApplicationsLimit)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	recommended, err := s.recommendedJobs(db, worker.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	active, err := s.applicationRepo.FindAcceptedByWorker(db, worker.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	earnings, err := s.earnings(db, worker.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.DashboardResponse{
		Stats: dto.DashboardStats{
			ApplicationCounts: counts,
			TotalReviews:      ratingStats.TotalReviews,
			AverageRating:     ratingStats.AverageRating,
			ProfileCompletion: completion,
		},
		RecentApplications: buildApplicationResponses(recent),
		RecommendedJobs:    buildJobResponses(recommended),
		ActiveJobs:         buildApplicationResponses(active),
		Earnings:           *earnings,
	}

	s.toCache(ctx, worker.ID, resp)
	return resp, nil
}

// recommendedJobs ranks published jobs the worker has not applied to by
// skill overlap with the worker profile. Without a profile the newest
// published jobs are returned as-is.
func (s *dashboardService) recommendedJobs(db *gorm.DB, workerID string) ([]models.Job, error) {
	jobs, err := s.jobRepo.FindPublishedNotAppliedBy(db, workerID, recommendedJobsLimit*4)
	if err != nil {
		return nil, err
	}

	profile, err := s.profileRepo.FindWorkerProfileByUserID(db, workerID)
	if err == nil && profile != nil {
		if skills := profile.GetSkills(); len(skills) > 0 {
			jobs = algorithms.RankJobsBySkills(jobs, skills)
		}
	}

	if len(jobs) > recommendedJobsLimit {
		jobs = jobs[:recommendedJobsLimit]
	}
	return jobs, nil
}

// earnings sums completed payments for calendar this-month vs last-month,
// computes the growth percentage, and attaches a 30-day daily series.
// Growth is 0 when last month had no earnings so the value never divides
// by zero or reports a meaningless infinity.
func (s *dashboardService) earnings(db *gorm.DB, workerID string) (*dto.EarningsResponse, error) {
	now := time.Now()
	thisMonthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	lastMonthStart := thisMonthStart.AddDate(0, -1, 0)

	thisMonth, err := s.paymentRepo.SumCompletedForPayee(db, workerID, thisMonthStart, now)
	if err != nil {
		return nil, err
	}

	lastMonth, err := s.paymentRepo.SumCompletedForPayee(db, workerID, lastMonthStart, thisMonthStart)
	if err != nil {
		return nil, err
	}

	var growth float64
	if lastMonth > 0 {
		growth = (thisMonth - lastMonth) / lastMonth * 100
	}

	daily, err := s.paymentRepo.DailyEarningsSeries(db, workerID, earningsSeriesDays)
	if err != nil {
		return nil, err
	}

	return &dto.EarningsResponse{
		ThisMonth: thisMonth,
		LastMonth: lastMonth,
		Growth:    growth,
		Daily:     daily,
	}, nil
}

// profileCompletion scores how filled-in the worker profile is. A missing
// profile scores 0; errors degrade to 0 rather than failing the dashboard.
func (s *dashboardService) profileCompletion(db *gorm.DB, workerID string) int {
	profile, err := s.profileRepo.FindWorkerProfileByUserID(db, workerID)
	if err != nil || profile == nil {
		return 0
	}

	filled := 0
	const fields = 6
	if profile.Title != "" {
		filled++
	}
	if profile.Bio != "" {
		filled++
	}
	if len(profile.GetSkills()) > 0 {
		filled++
	}
	if profile.Location != "" {
		filled++
	}
	if profile.HourlyRate > 0 {
		filled++
	}
	if profile.ExperienceYears > 0 {
		filled++
	}
	return filled * 100 / fields
}

func (s *dashboardService) cacheKey(workerID string) string {
	return fmt.Sprintf("dashboard:worker:%s", workerID)
}

func (s *dashboardService) fromCache(ctx context.Context, workerID string) *dto.DashboardResponse {
	if s.redis == nil {
		return nil
	}
	raw, err := s.redis.Get(ctx, s.cacheKey(workerID)).Bytes()
	if err != nil {
		return nil
	}
	var resp dto.DashboardResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		logger.CtxWarn(ctx, "dropping corrupt dashboard cache entry", "worker_id", workerID)
		s.redis.Del(ctx, s.cacheKey(workerID))
		return nil
	}
	return &resp
}

func (s *dashboardService) toCache(ctx context.Context, workerID string, resp *dto.DashboardResponse) {
	if s.redis == nil {
		return
	}
	raw, err := json.Marshal(resp)
	if err != nil {
		return
	}
	if err := s.redis.Set(ctx, s.cacheKey(workerID), raw, s.cacheTTL).Err(); err != nil {
		logger.CtxWithError(ctx, "failed to cache dashboard", err, "worker_id", workerID)
	}
}

func buildApplicationResponses(applications []models.Application) []dto.ApplicationResponse {
	responses := make([]dto.ApplicationResponse, 0, len(applications))
	for i := range applications {
		responses = append(responses, buildApplicationResponse(&applications[i]))
	}
	return responses
}

func buildApplicationResponse(application *models.Application) dto.ApplicationResponse {
	resp := dto.ApplicationResponse{
		ID:           application.ID,
		JobID:        application.JobID,
		WorkerID:     application.WorkerID,
		CoverLetter:  application.CoverLetter,
		ProposedRate: application.ProposedRate,
		Status:       application.Status,
		CreatedAt:    application.CreatedAt,
		CompletedAt:  application.CompletedAt,
	}
	if application.Job != nil && application.Job.ID != "" {
		job := buildJobResponse(application.Job)
		resp.Job = &job
	}
	return resp
}

func buildJobResponses(jobs []models.Job) []dto.JobResponse {
	responses := make([]dto.JobResponse, 0, len(jobs))
	for i := range jobs {
		responses = append(responses, buildJobResponse(&jobs[i]))
	}
	return responses
}

func buildJobResponse(job *models.Job) dto.JobResponse {
	resp := dto.JobResponse{
		ID:              job.ID,
		EmployerID:      job.EmployerID,
		Title:           job.Title,
		Description:     job.Description,
		Category:        job.Category,
		Budget:          job.Budget,
		Deadline:        job.Deadline,
		RequiredSkills:  job.GetRequiredSkills(),
		Location:        job.Location,
		JobType:         job.JobType,
		ExperienceLevel: job.ExperienceLevel,
		Status:          job.Status,
		PaymentStatus:   job.PaymentStatus,
		CreatedAt:       job.CreatedAt,
	}
	if job.Employer != nil && job.Employer.ID != "" {
		resp.Employer = &dto.UserInfo{
			ID:   job.Employer.ID,
			Name: job.Employer.Name,
			Role: job.Employer.Role,
		}
	}
	return resp
}
