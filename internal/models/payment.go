package models

import "time"

type Payment struct {
	BaseModel
	PayerID          string  `gorm:"not null;index"`
	PayeeID          *string `gorm:"index"` // nil for platform-level subscription revenue
	SubscriptionID   *string `gorm:"index"`
	Amount           float64 `gorm:"not null"`
	CommissionAmount float64 `gorm:"default:0"`
	NetAmount        float64 `gorm:"not null"`
	Currency         string  `gorm:"type:varchar(3);default:'CAD'"`
	Status           PaymentStatus `gorm:"type:varchar(20);default:'pending'"`
	Type             PaymentType   `gorm:"type:varchar(20);not null;uniqueIndex:idx_payments_txn_type"`
	TransactionID    string        `gorm:"not null;uniqueIndex:idx_payments_txn_type"` // external idempotency key
	ProcessedAt      *time.Time

	// Relations
	Payer        *User         `gorm:"foreignKey:PayerID"`
	Payee        *User         `gorm:"foreignKey:PayeeID"`
	Subscription *Subscription `gorm:"foreignKey:SubscriptionID"`
}
