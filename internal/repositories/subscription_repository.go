package repositories

import (
	"errors"

	"jobhub_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrSubscriptionNotFound = errors.New("subscription not found")
)

type SubscriptionRepository interface {
	FindByID(db *gorm.DB, id string) (*models.Subscription, error)
	// FindLatestForUser matches on the provider subscription id or the
	// provider payment id, most recent first. Either id may be empty.
	FindLatestForUser(db *gorm.DB, userID, paddleSubscriptionID, paddlePaymentID string) (*models.Subscription, error)
	FindActiveForUser(db *gorm.DB, userID string) (*models.Subscription, error)
}

type SubscriptionRepositoryImpl struct{}

func NewSubscriptionRepository() SubscriptionRepository {
	return &SubscriptionRepositoryImpl{}
}

func (r *SubscriptionRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Subscription, error) {
	var subscription models.Subscription
	err := db.First(&subscription, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, err
	}
	return &subscription, nil
}

func (r *SubscriptionRepositoryImpl) FindLatestForUser(db *gorm.DB, userID, paddleSubscriptionID, paddlePaymentID string) (*models.Subscription, error) {
	var subscription models.Subscription
	err := db.Where("user_id = ?", userID).
		Where("paddle_subscription_id = ? OR paddle_payment_id = ?", paddleSubscriptionID, paddlePaymentID).
		Order("created_at DESC").
		First(&subscription).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, err
	}
	return &subscription, nil
}

func (r *SubscriptionRepositoryImpl) FindActiveForUser(db *gorm.DB, userID string) (*models.Subscription, error) {
	var subscription models.Subscription
	err := db.Where("user_id = ? AND status = ?", userID, models.SubscriptionStatusActive).
		Order("created_at DESC").
		First(&subscription).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, err
	}
	return &subscription, nil
}
