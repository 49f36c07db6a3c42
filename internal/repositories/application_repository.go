package repositories

import (
	"errors"
	"time"

	"jobhub_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrApplicationNotFound = errors.New("application not found")
	ErrDuplicateApplication = errors.New("application already exists for this job and worker")
)

type ApplicationRepository interface {
	Create(db *gorm.DB, application *models.Application) error
	FindByID(db *gorm.DB, id string) (*models.Application, error)
	FindByJob(db *gorm.DB, jobID string) ([]models.Application, error)
	FindByWorker(db *gorm.DB, workerID string, limit, offset int) ([]models.Application, int64, error)
	FindRecentByWorker(db *gorm.DB, workerID string, limit int) ([]models.Application, error)
	FindAcceptedByWorker(db *gorm.DB, workerID string) ([]models.Application, error)
	CountByStatusForWorker(db *gorm.DB, workerID string) (map[models.ApplicationStatus]int64, error)
	UpdateStatus(db *gorm.DB, id string, status models.ApplicationStatus) error
	MarkCompleted(db *gorm.DB, id string, completedAt time.Time) error
}

type ApplicationRepositoryImpl struct{}

func NewApplicationRepository() ApplicationRepository {
	return &ApplicationRepositoryImpl{}
}

func (r *ApplicationRepositoryImpl) Create(db *gorm.DB, application *models.Application) error {
	if err := db.Create(application).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateApplication
		}
		return err
	}
	return nil
}

// FindByID loads the application with its job (and the job's employer) and
// the worker, so callers never traverse lazy relations.
func (r *ApplicationRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Application, error) {
	var application models.Application
	err := db.Preload("Job").Preload("Job.Employer").Preload("Worker").
		First(&application, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return &application, nil
}

func (r *ApplicationRepositoryImpl) FindByJob(db *gorm.DB, jobID string) ([]models.Application, error) {
	var applications []models.Application
	err := db.Preload("Worker").
		Where("job_id = ?", jobID).
		Order("created_at DESC").
		Find(&applications).Error
	return applications, err
}

func (r *ApplicationRepositoryImpl) FindByWorker(db *gorm.DB, workerID string, limit, offset int) ([]models.Application, int64, error) {
	var total int64
	if err := db.Model(&models.Application{}).Where("worker_id = ?", workerID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var applications []models.Application
	err := db.Preload("Job").
		Where("worker_id = ?", workerID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&applications).Error
	return applications, total, err
}

func (r *ApplicationRepositoryImpl) FindRecentByWorker(db *gorm.DB, workerID string, limit int) ([]models.Application, error) {
	var applications []models.Application
	err := db.Preload("Job").
		Where("worker_id = ?", workerID).
		Order("created_at DESC").
		Limit(limit).
		Find(&applications).Error
	return applications, err
}

func (r *ApplicationRepositoryImpl) FindAcceptedByWorker(db *gorm.DB, workerID string) ([]models.Application, error) {
	var applications []models.Application
	err := db.Preload("Job").
		Where("worker_id = ? AND status = ?", workerID, models.ApplicationStatusAccepted).
		Order("created_at DESC").
		Find(&applications).Error
	return applications, err
}

func (r *ApplicationRepositoryImpl) CountByStatusForWorker(db *gorm.DB, workerID string) (map[models.ApplicationStatus]int64, error) {
	type statusCount struct {
		Status models.ApplicationStatus
		Count  int64
	}

	var rows []statusCount
	err := db.Model(&models.Application{}).
		Select("status, COUNT(*) as count").
		Where("worker_id = ?", workerID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[models.ApplicationStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

func (r *ApplicationRepositoryImpl) UpdateStatus(db *gorm.DB, id string, status models.ApplicationStatus) error {
	result := db.Model(&models.Application{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrApplicationNotFound
	}
	return nil
}

func (r *ApplicationRepositoryImpl) MarkCompleted(db *gorm.DB, id string, completedAt time.Time) error {
	result := db.Model(&models.Application{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":       models.ApplicationStatusCompleted,
		"completed_at": completedAt,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrApplicationNotFound
	}
	return nil
}
