package repositories

import (
	"errors"

	"jobhub_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrJobNotFound = errors.New("job not found")
)

// JobSearchCriteria narrows the public listing of published jobs. Every
// field is optional and AND-ed.
type JobSearchCriteria struct {
	Category        string
	JobType         string
	ExperienceLevel string
	Location        string
}

type JobRepository interface {
	Create(db *gorm.DB, job *models.Job) error
	FindByID(db *gorm.DB, id string) (*models.Job, error)
	Update(db *gorm.DB, job *models.Job) error
	UpdateStatus(db *gorm.DB, id string, status models.JobStatus) error
	FindByEmployer(db *gorm.DB, employerID string, limit, offset int) ([]models.Job, int64, error)
	FindPublished(db *gorm.DB, criteria JobSearchCriteria, limit, offset int) ([]models.Job, int64, error)
	FindPublishedNotAppliedBy(db *gorm.DB, workerID string, limit int) ([]models.Job, error)
}

type JobRepositoryImpl struct{}

func NewJobRepository() JobRepository {
	return &JobRepositoryImpl{}
}

func (r *JobRepositoryImpl) Create(db *gorm.DB, job *models.Job) error {
	return db.Create(job).Error
}

func (r *JobRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Job, error) {
	var job models.Job
	err := db.Preload("Employer").First(&job, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return &job, nil
}

func (r *JobRepositoryImpl) Update(db *gorm.DB, job *models.Job) error {
	result := db.Model(&models.Job{}).Where("id = ?", job.ID).Updates(map[string]interface{}{
		"title":            job.Title,
		"description":      job.Description,
		"category":         job.Category,
		"budget":           job.Budget,
		"deadline":         job.Deadline,
		"required_skills":  job.RequiredSkills,
		"location":         job.Location,
		"job_type":         job.JobType,
		"experience_level": job.ExperienceLevel,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *JobRepositoryImpl) UpdateStatus(db *gorm.DB, id string, status models.JobStatus) error {
	result := db.Model(&models.Job{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *JobRepositoryImpl) FindByEmployer(db *gorm.DB, employerID string, limit, offset int) ([]models.Job, int64, error) {
	var jobs []models.Job
	var total int64

	if err := db.Model(&models.Job{}).Where("employer_id = ?", employerID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Where("employer_id = ?", employerID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&jobs).Error
	return jobs, total, err
}

func (r *JobRepositoryImpl) FindPublished(db *gorm.DB, criteria JobSearchCriteria, limit, offset int) ([]models.Job, int64, error) {
	query := db.Model(&models.Job{}).Where("status = ?", models.JobStatusPublished)

	if criteria.Category != "" {
		query = query.Where("category = ?", criteria.Category)
	}
	if criteria.JobType != "" {
		query = query.Where("job_type = ?", criteria.JobType)
	}
	if criteria.ExperienceLevel != "" {
		query = query.Where("experience_level = ?", criteria.ExperienceLevel)
	}
	if criteria.Location != "" {
		query = query.Where("location = ?", criteria.Location)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var jobs []models.Job
	err := query.Preload("Employer").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&jobs).Error
	return jobs, total, err
}

// FindPublishedNotAppliedBy returns published jobs the worker has not applied
// to yet, newest first. Feeds the dashboard recommendations.
func (r *JobRepositoryImpl) FindPublishedNotAppliedBy(db *gorm.DB, workerID string, limit int) ([]models.Job, error) {
	var jobs []models.Job
	err := db.Where("status = ?", models.JobStatusPublished).
		Where("id NOT IN (?)",
			db.Session(&gorm.Session{NewDB: true}).
				Model(&models.Application{}).
				Select("job_id").
				Where("worker_id = ?", workerID)).
		Order("created_at DESC").
		Limit(limit).
		Find(&jobs).Error
	return jobs, err
}
