package repositories

import (
	"errors"
	"time"

	"jobhub_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrReviewNotFound      = errors.New("review not found")
	ErrReviewAlreadyExists = errors.New("review already exists for this application")
)

// ReviewFilters are the optional AND-ed predicates of the review listing.
type ReviewFilters struct {
	Type     *models.ReviewType
	Rating   *int
	FromDate *time.Time
	ToDate   *time.Time
}

// RatingStats aggregates the reviews received by one user.
type RatingStats struct {
	AverageRating float64       `json:"average_rating"`
	TotalReviews  int64         `json:"total_reviews"`
	RatingCounts  map[int]int64 `json:"rating_counts"`  // 1-5 stars
	RecentReviews int64         `json:"recent_reviews"` // last 30 days
}

type ReviewRepository interface {
	Create(db *gorm.DB, review *models.Review) error
	FindByID(db *gorm.DB, id string) (*models.Review, error)
	FindByApplicationAndReviewer(db *gorm.DB, applicationID, reviewerID, revieweeID string) (*models.Review, error)
	ExistsForApplication(db *gorm.DB, applicationID, reviewerID, revieweeID string) (bool, error)
	FindForReviewee(db *gorm.DB, revieweeID string, filters ReviewFilters) ([]models.Review, error)
	Update(db *gorm.DB, review *models.Review) error
	Delete(db *gorm.DB, id string) error
	GetRatingStats(db *gorm.DB, revieweeID string) (*RatingStats, error)
	GetAverageRating(db *gorm.DB, revieweeID string) (float64, error)
}

type ReviewRepositoryImpl struct{}

func NewReviewRepository() ReviewRepository {
	return &ReviewRepositoryImpl{}
}

// Create inserts the review. The unique index on
// (application_id, reviewer_id, reviewee_id) backs the pre-insert existence
// check, so a lost check-then-act race still cannot produce a duplicate.
func (r *ReviewRepositoryImpl) Create(db *gorm.DB, review *models.Review) error {
	if err := db.Create(review).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrReviewAlreadyExists
		}
		return err
	}
	return nil
}

func (r *ReviewRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Review, error) {
	var review models.Review
	err := db.Preload("Reviewer").Preload("Reviewee").
		First(&review, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return &review, nil
}

func (r *ReviewRepositoryImpl) FindByApplicationAndReviewer(db *gorm.DB, applicationID, reviewerID, revieweeID string) (*models.Review, error) {
	var review models.Review
	err := db.Where("application_id = ? AND reviewer_id = ? AND reviewee_id = ?",
		applicationID, reviewerID, revieweeID).
		First(&review).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return &review, nil
}

func (r *ReviewRepositoryImpl) ExistsForApplication(db *gorm.DB, applicationID, reviewerID, revieweeID string) (bool, error) {
	var count int64
	err := db.Model(&models.Review{}).
		Where("application_id = ? AND reviewer_id = ? AND reviewee_id = ?",
			applicationID, reviewerID, revieweeID).
		Count(&count).Error
	return count > 0, err
}

func (r *ReviewRepositoryImpl) FindForReviewee(db *gorm.DB, revieweeID string, filters ReviewFilters) ([]models.Review, error) {
	query := db.Preload("Reviewer").Preload("Job").
		Where("reviewee_id = ?", revieweeID)

	if filters.Type != nil {
		query = query.Where("type = ?", *filters.Type)
	}
	if filters.Rating != nil {
		query = query.Where("rating = ?", *filters.Rating)
	}
	if filters.FromDate != nil {
		query = query.Where("created_at >= ?", *filters.FromDate)
	}
	if filters.ToDate != nil {
		query = query.Where("created_at <= ?", *filters.ToDate)
	}

	var reviews []models.Review
	err := query.Order("created_at DESC").Find(&reviews).Error
	return reviews, err
}

func (r *ReviewRepositoryImpl) Update(db *gorm.DB, review *models.Review) error {
	result := db.Model(&models.Review{}).Where("id = ?", review.ID).Updates(map[string]interface{}{
		"rating":     review.Rating,
		"comment":    review.Comment,
		"updated_at": time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrReviewNotFound
	}
	return nil
}

func (r *ReviewRepositoryImpl) Delete(db *gorm.DB, id string) error {
	result := db.Where("id = ?", id).Delete(&models.Review{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrReviewNotFound
	}
	return nil
}

func (r *ReviewRepositoryImpl) GetRatingStats(db *gorm.DB, revieweeID string) (*RatingStats, error) {
	var stats RatingStats

	if err := db.Model(&models.Review{}).Where("reviewee_id = ?", revieweeID).
		Select("COUNT(*) as total_reviews, COALESCE(AVG(rating), 0) as average_rating").
		Scan(&stats).Error; err != nil {
		return nil, err
	}

	type ratingCount struct {
		Rating int
		Count  int64
	}
	var rows []ratingCount
	if err := db.Model(&models.Review{}).
		Select("rating, COUNT(*) as count").
		Where("reviewee_id = ?", revieweeID).
		Group("rating").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	stats.RatingCounts = make(map[int]int64)
	for i := 1; i <= 5; i++ {
		stats.RatingCounts[i] = 0
	}
	for _, row := range rows {
		stats.RatingCounts[row.Rating] = row.Count
	}

	monthAgo := time.Now().AddDate(0, -1, 0)
	if err := db.Model(&models.Review{}).
		Where("reviewee_id = ? AND created_at >= ?", revieweeID, monthAgo).
		Count(&stats.RecentReviews).Error; err != nil {
		return nil, err
	}

	return &stats, nil
}

func (r *ReviewRepositoryImpl) GetAverageRating(db *gorm.DB, revieweeID string) (float64, error) {
	var avgRating float64
	err := db.Model(&models.Review{}).Where("reviewee_id = ?", revieweeID).
		Select("COALESCE(AVG(rating), 0)").Scan(&avgRating).Error
	return avgRating, err
}
