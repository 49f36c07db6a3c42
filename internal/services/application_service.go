package services

import (
	"time"

	"jobhub_backend/internal/models"
	"jobhub_backend/internal/repositories"
	"jobhub_backend/internal/services/dto"
	"jobhub_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type ApplicationService interface {
	Apply(db *gorm.DB, actor *models.User, req *dto.CreateApplicationRequest) (*dto.ApplicationResponse, error)
	Withdraw(db *gorm.DB, actor *models.User, applicationID string) error
	Accept(db *gorm.DB, actor *models.User, applicationID string) error
	Reject(db *gorm.DB, actor *models.User, applicationID string) error
	Complete(db *gorm.DB, actor *models.User, applicationID string) error
	GetApplication(db *gorm.DB, actor *models.User, applicationID string) (*dto.ApplicationResponse, error)
	ListForJob(db *gorm.DB, actor *models.User, jobID string) ([]dto.ApplicationResponse, error)
	ListForWorker(db *gorm.DB, workerID string, page, pageSize int) (*dto.ApplicationListResponse, error)
}

type applicationService struct {
	applicationRepo repositories.ApplicationRepository
	jobRepo         repositories.JobRepository
}

func NewApplicationService(applicationRepo repositories.ApplicationRepository, jobRepo repositories.JobRepository) ApplicationService {
	return &applicationService{
		applicationRepo: applicationRepo,
		jobRepo:         jobRepo,
	}
}

// Apply creates a pending application for a published job. The unique
// index on (job_id, worker_id) rejects a second application to the same
// job regardless of request interleaving.
func (s *applicationService) Apply(db *gorm.DB, actor *models.User, req *dto.CreateApplicationRequest) (*dto.ApplicationResponse, error) {
	if !actor.IsWorker() {
		return nil, apperrors.ErrInvalidUserRole
	}

	job, err := s.jobRepo.FindByID(db, req.JobID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}
	if job.Status != models.JobStatusPublished {
		return nil, apperrors.ErrInvalidJobStatus
	}
	if job.EmployerID == actor.ID {
		return nil, apperrors.ErrInvalidOperation("application", "Cannot apply to your own job")
	}

	application := &models.Application{
		JobID:        job.ID,
		WorkerID:     actor.ID,
		CoverLetter:  req.CoverLetter,
		ProposedRate: req.ProposedRate,
		Status:       models.ApplicationStatusPending,
	}

	if err := s.applicationRepo.Create(db, application); err != nil {
		if err == repositories.ErrDuplicateApplication {
			return nil, apperrors.ErrAlreadyExists(err)
		}
		return nil, apperrors.InternalError(err)
	}

	resp := buildApplicationResponse(application)
	return &resp, nil
}

func (s *applicationService) Withdraw(db *gorm.DB, actor *models.User, applicationID string) error {
	application, err := s.applicationRepo.FindByID(db, applicationID)
	if err != nil {
		return apperrors.ErrNotFound(err)
	}
	if application.WorkerID != actor.ID {
		return apperrors.ErrInsufficientPermissions
	}
	if application.Status != models.ApplicationStatusPending && application.Status != models.ApplicationStatusAccepted {
		return apperrors.ErrInvalidApplicationStatus
	}
	return s.updateStatus(db, application.ID, models.ApplicationStatusWithdrawn)
}

func (s *applicationService) Accept(db *gorm.DB, actor *models.User, applicationID string) error {
	application, err := s.employerOwnedApplication(db, actor, applicationID)
	if err != nil {
		return err
	}
	if application.Status != models.ApplicationStatusPending {
		return apperrors.ErrInvalidApplicationStatus
	}

	// Accepting also moves the job into progress.
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.applicationRepo.UpdateStatus(tx, application.ID, models.ApplicationStatusAccepted); err != nil {
			return err
		}
		return s.jobRepo.UpdateStatus(tx, application.JobID, models.JobStatusInProgress)
	})
	if err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *applicationService) Reject(db *gorm.DB, actor *models.User, applicationID string) error {
	application, err := s.employerOwnedApplication(db, actor, applicationID)
	if err != nil {
		return err
	}
	if application.Status != models.ApplicationStatusPending {
		return apperrors.ErrInvalidApplicationStatus
	}
	return s.updateStatus(db, application.ID, models.ApplicationStatusRejected)
}

// Complete moves an accepted application to its terminal state, which
// unlocks reviews between the two sides, and marks the job completed.
func (s *applicationService) Complete(db *gorm.DB, actor *models.User, applicationID string) error {
	application, err := s.employerOwnedApplication(db, actor, applicationID)
	if err != nil {
		return err
	}
	if application.Status != models.ApplicationStatusAccepted {
		return apperrors.ErrInvalidApplicationStatus
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.applicationRepo.MarkCompleted(tx, application.ID, time.Now()); err != nil {
			return err
		}
		return s.jobRepo.UpdateStatus(tx, application.JobID, models.JobStatusCompleted)
	})
	if err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *applicationService) GetApplication(db *gorm.DB, actor *models.User, applicationID string) (*dto.ApplicationResponse, error) {
	application, err := s.applicationRepo.FindByID(db, applicationID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}
	if !s.canView(actor, application) {
		return nil, apperrors.ErrInsufficientPermissions
	}
	resp := buildApplicationResponse(application)
	return &resp, nil
}

func (s *applicationService) ListForJob(db *gorm.DB, actor *models.User, jobID string) ([]dto.ApplicationResponse, error) {
	job, err := s.jobRepo.FindByID(db, jobID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}
	if job.EmployerID != actor.ID && actor.Role != models.UserRoleAdmin {
		return nil, apperrors.ErrNotJobOwner
	}

	applications, err := s.applicationRepo.FindByJob(db, jobID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return buildApplicationResponses(applications), nil
}

func (s *applicationService) ListForWorker(db *gorm.DB, workerID string, page, pageSize int) (*dto.ApplicationListResponse, error) {
	limit, offset := paginate(page, pageSize)
	applications, total, err := s.applicationRepo.FindByWorker(db, workerID, limit, offset)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if page < 1 {
		page = 1
	}
	return &dto.ApplicationListResponse{
		Applications: buildApplicationResponses(applications),
		Total:        total,
		Page:         page,
		PageSize:     limit,
		TotalPages:   int((total + int64(limit) - 1) / int64(limit)),
	}, nil
}

func (s *applicationService) employerOwnedApplication(db *gorm.DB, actor *models.User, applicationID string) (*models.Application, error) {
	application, err := s.applicationRepo.FindByID(db, applicationID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}
	if application.Job == nil || (application.Job.EmployerID != actor.ID && actor.Role != models.UserRoleAdmin) {
		return nil, apperrors.ErrNotJobOwner
	}
	return application, nil
}

func (s *applicationService) canView(actor *models.User, application *models.Application) bool {
	if actor.Role == models.UserRoleAdmin {
		return true
	}
	if application.WorkerID == actor.ID {
		return true
	}
	return application.Job != nil && application.Job.EmployerID == actor.ID
}

func (s *applicationService) updateStatus(db *gorm.DB, id string, status models.ApplicationStatus) error {
	if err := s.applicationRepo.UpdateStatus(db, id, status); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}
