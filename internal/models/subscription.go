package models

import "time"

type Subscription struct {
	BaseModel
	UserID               string             `gorm:"not null;index"`
	Plan                 string             `gorm:"not null"`
	Status               SubscriptionStatus `gorm:"type:varchar(20);default:'active'"`
	PaddleSubscriptionID string             `gorm:"index"`
	PaddlePaymentID      string             `gorm:"index"`
	StartsAt             time.Time
	EndsAt               time.Time

	// Relations
	User *User `gorm:"foreignKey:UserID"`
}
