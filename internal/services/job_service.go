package services

import (
	"encoding/json"

	"jobhub_backend/internal/models"
	"jobhub_backend/internal/repositories"
	"jobhub_backend/internal/services/dto"
	"jobhub_backend/pkg/apperrors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type JobService interface {
	CreateJob(db *gorm.DB, actor *models.User, req *dto.CreateJobRequest) (*dto.JobResponse, error)
	UpdateJob(db *gorm.DB, actor *models.User, jobID string, req *dto.UpdateJobRequest) (*dto.JobResponse, error)
	PublishJob(db *gorm.DB, actor *models.User, jobID string) (*dto.JobResponse, error)
	CloseJob(db *gorm.DB, actor *models.User, jobID string) error
	GetJob(db *gorm.DB, jobID string) (*dto.JobResponse, error)
	ListEmployerJobs(db *gorm.DB, employerID string, page, pageSize int) (*dto.JobListResponse, error)
	SearchPublished(db *gorm.DB, req *dto.JobSearchRequest) (*dto.JobListResponse, error)
}

type jobService struct {
	jobRepo repositories.JobRepository
}

func NewJobService(jobRepo repositories.JobRepository) JobService {
	return &jobService{jobRepo: jobRepo}
}

func (s *jobService) CreateJob(db *gorm.DB, actor *models.User, req *dto.CreateJobRequest) (*dto.JobResponse, error) {
	if !actor.IsEmployer() {
		return nil, apperrors.ErrInvalidUserRole
	}

	job := &models.Job{
		EmployerID:      actor.ID,
		Title:           req.Title,
		Description:     req.Description,
		Category:        req.Category,
		Budget:          req.Budget,
		Deadline:        req.Deadline,
		RequiredSkills:  marshalSkills(req.RequiredSkills),
		Location:        req.Location,
		JobType:         req.JobType,
		ExperienceLevel: req.ExperienceLevel,
		Status:          models.JobStatusDraft,
	}

	if err := s.jobRepo.Create(db, job); err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := buildJobResponse(job)
	return &resp, nil
}

func (s *jobService) UpdateJob(db *gorm.DB, actor *models.User, jobID string, req *dto.UpdateJobRequest) (*dto.JobResponse, error) {
	job, err := s.ownedJob(db, actor, jobID)
	if err != nil {
		return nil, err
	}

	// Published jobs stay editable; in-progress and later do not.
	if job.Status != models.JobStatusDraft && job.Status != models.JobStatusPublished {
		return nil, apperrors.ErrInvalidJobStatus
	}

	if req.Title != nil {
		job.Title = *req.Title
	}
	if req.Description != nil {
		job.Description = *req.Description
	}
	if req.Category != nil {
		job.Category = *req.Category
	}
	if req.Budget != nil {
		job.Budget = *req.Budget
	}
	if req.Deadline != nil {
		job.Deadline = req.Deadline
	}
	if req.RequiredSkills != nil {
		job.RequiredSkills = marshalSkills(req.RequiredSkills)
	}
	if req.Location != nil {
		job.Location = *req.Location
	}
	if req.JobType != nil {
		job.JobType = *req.JobType
	}
	if req.ExperienceLevel != nil {
		job.ExperienceLevel = *req.ExperienceLevel
	}

	if err := s.jobRepo.Update(db, job); err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := buildJobResponse(job)
	return &resp, nil
}

func (s *jobService) PublishJob(db *gorm.DB, actor *models.User, jobID string) (*dto.JobResponse, error) {
	job, err := s.ownedJob(db, actor, jobID)
	if err != nil {
		return nil, err
	}
	if job.Status != models.JobStatusDraft {
		return nil, apperrors.ErrInvalidJobStatus
	}

	if err := s.jobRepo.UpdateStatus(db, job.ID, models.JobStatusPublished); err != nil {
		return nil, apperrors.InternalError(err)
	}

	job.Status = models.JobStatusPublished
	resp := buildJobResponse(job)
	return &resp, nil
}

func (s *jobService) CloseJob(db *gorm.DB, actor *models.User, jobID string) error {
	job, err := s.ownedJob(db, actor, jobID)
	if err != nil {
		return err
	}
	if job.Status == models.JobStatusCompleted || job.Status == models.JobStatusClosed {
		return apperrors.ErrInvalidJobStatus
	}
	if err := s.jobRepo.UpdateStatus(db, job.ID, models.JobStatusClosed); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *jobService) GetJob(db *gorm.DB, jobID string) (*dto.JobResponse, error) {
	job, err := s.jobRepo.FindByID(db, jobID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}
	resp := buildJobResponse(job)
	return &resp, nil
}

func (s *jobService) ListEmployerJobs(db *gorm.DB, employerID string, page, pageSize int) (*dto.JobListResponse, error) {
	limit, offset := paginate(page, pageSize)
	jobs, total, err := s.jobRepo.FindByEmployer(db, employerID, limit, offset)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return buildJobListResponse(jobs, total, page, limit), nil
}

func (s *jobService) SearchPublished(db *gorm.DB, req *dto.JobSearchRequest) (*dto.JobListResponse, error) {
	limit, offset := paginate(req.Page, req.PageSize)
	criteria := repositories.JobSearchCriteria{
		Category:        req.Category,
		JobType:         req.JobType,
		ExperienceLevel: req.ExperienceLevel,
		Location:        req.Location,
	}
	jobs, total, err := s.jobRepo.FindPublished(db, criteria, limit, offset)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return buildJobListResponse(jobs, total, req.Page, limit), nil
}

// ownedJob loads the job and checks the actor may mutate it (owner or admin).
func (s *jobService) ownedJob(db *gorm.DB, actor *models.User, jobID string) (*models.Job, error) {
	job, err := s.jobRepo.FindByID(db, jobID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}
	if job.EmployerID != actor.ID && actor.Role != models.UserRoleAdmin {
		return nil, apperrors.ErrNotJobOwner
	}
	return job, nil
}

func buildJobListResponse(jobs []models.Job, total int64, page, pageSize int) *dto.JobListResponse {
	if page < 1 {
		page = 1
	}
	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return &dto.JobListResponse{
		Jobs:       buildJobResponses(jobs),
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}

func marshalSkills(skills []string) datatypes.JSON {
	if len(skills) == 0 {
		return nil
	}
	raw, err := json.Marshal(skills)
	if err != nil {
		return nil
	}
	return datatypes.JSON(raw)
}

func paginate(page, pageSize int) (limit, offset int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return pageSize, (page - 1) * pageSize
}
