package repositories

import (
	"errors"

	"jobhub_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
)

type ProfileRepository interface {
	CreateWorkerProfile(db *gorm.DB, profile *models.WorkerProfile) error
	CreateEmployerProfile(db *gorm.DB, profile *models.EmployerProfile) error
	FindWorkerProfileByUserID(db *gorm.DB, userID string) (*models.WorkerProfile, error)
	FindEmployerProfileByUserID(db *gorm.DB, userID string) (*models.EmployerProfile, error)
	UpdateWorkerRating(db *gorm.DB, userID string, rating float64) error
	UpdateEmployerRating(db *gorm.DB, userID string, rating float64) error
}

type ProfileRepositoryImpl struct{}

func NewProfileRepository() ProfileRepository {
	return &ProfileRepositoryImpl{}
}

func (r *ProfileRepositoryImpl) CreateWorkerProfile(db *gorm.DB, profile *models.WorkerProfile) error {
	return db.Create(profile).Error
}

func (r *ProfileRepositoryImpl) CreateEmployerProfile(db *gorm.DB, profile *models.EmployerProfile) error {
	return db.Create(profile).Error
}

func (r *ProfileRepositoryImpl) FindWorkerProfileByUserID(db *gorm.DB, userID string) (*models.WorkerProfile, error) {
	var profile models.WorkerProfile
	err := db.First(&profile, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *ProfileRepositoryImpl) FindEmployerProfileByUserID(db *gorm.DB, userID string) (*models.EmployerProfile, error) {
	var profile models.EmployerProfile
	err := db.First(&profile, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *ProfileRepositoryImpl) UpdateWorkerRating(db *gorm.DB, userID string, rating float64) error {
	return db.Model(&models.WorkerProfile{}).Where("user_id = ?", userID).
		Update("rating", rating).Error
}

func (r *ProfileRepositoryImpl) UpdateEmployerRating(db *gorm.DB, userID string, rating float64) error {
	return db.Model(&models.EmployerProfile{}).Where("user_id = ?", userID).
		Update("rating", rating).Error
}
