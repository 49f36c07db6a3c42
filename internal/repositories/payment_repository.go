package repositories

import (
	"errors"
	"time"

	"jobhub_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrPaymentNotFound = errors.New("payment not found")
)

// DailyEarning is one point of the date-grouped earnings series.
type DailyEarning struct {
	Date  time.Time `json:"date"`
	Total float64   `json:"total"`
}

type PaymentRepository interface {
	Create(db *gorm.DB, payment *models.Payment) error
	// CreateIfAbsent inserts the payment unless one already exists for its
	// (transaction_id, type) pair. Reports whether a row was inserted.
	CreateIfAbsent(db *gorm.DB, payment *models.Payment) (bool, error)
	ExistsByTransactionIDAndType(db *gorm.DB, transactionID string, paymentType models.PaymentType) (bool, error)
	SumCompletedForPayee(db *gorm.DB, payeeID string, from, to time.Time) (float64, error)
	DailyEarningsSeries(db *gorm.DB, payeeID string, days int) ([]DailyEarning, error)
}

type PaymentRepositoryImpl struct{}

func NewPaymentRepository() PaymentRepository {
	return &PaymentRepositoryImpl{}
}

func (r *PaymentRepositoryImpl) Create(db *gorm.DB, payment *models.Payment) error {
	return db.Create(payment).Error
}

// CreateIfAbsent relies on the unique index over (transaction_id, type):
// a concurrent duplicate insert degrades to a no-op instead of an error,
// which keeps external-transaction recording at-most-once even when two
// deliveries race past the existence check.
func (r *PaymentRepositoryImpl) CreateIfAbsent(db *gorm.DB, payment *models.Payment) (bool, error) {
	result := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "transaction_id"}, {Name: "type"}},
		DoNothing: true,
	}).Create(payment)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *PaymentRepositoryImpl) ExistsByTransactionIDAndType(db *gorm.DB, transactionID string, paymentType models.PaymentType) (bool, error) {
	var count int64
	err := db.Model(&models.Payment{}).
		Where("transaction_id = ? AND type = ?", transactionID, paymentType).
		Count(&count).Error
	return count > 0, err
}

func (r *PaymentRepositoryImpl) SumCompletedForPayee(db *gorm.DB, payeeID string, from, to time.Time) (float64, error) {
	var total float64
	err := db.Model(&models.Payment{}).
		Where("payee_id = ? AND status = ? AND processed_at >= ? AND processed_at < ?",
			payeeID, models.PaymentStatusCompleted, from, to).
		Select("COALESCE(SUM(net_amount), 0)").
		Scan(&total).Error
	return total, err
}

func (r *PaymentRepositoryImpl) DailyEarningsSeries(db *gorm.DB, payeeID string, days int) ([]DailyEarning, error) {
	since := time.Now().AddDate(0, 0, -days)

	var series []DailyEarning
	err := db.Model(&models.Payment{}).
		Select("DATE(processed_at) as date, COALESCE(SUM(net_amount), 0) as total").
		Where("payee_id = ? AND status = ? AND processed_at >= ?",
			payeeID, models.PaymentStatusCompleted, since).
		Group("DATE(processed_at)").
		Order("date ASC").
		Scan(&series).Error
	return series, err
}
