// Package events defines the post-commit domain events published by the
// services and the publishers that fan them out. Events replace model
// lifecycle hooks: a service publishes after its transaction commits, and
// listeners act on the payload alone.
package events

import "time"

const (
	NameReviewCreated   = "review.created"
	NamePaymentRecorded = "payment.recorded"
)

// Event is any payload that names itself for routing.
type Event interface {
	EventName() string
}

// ReviewCreated carries enough information for downstream consumers to
// notify or aggregate without querying the primary database.
type ReviewCreated struct {
	ReviewID      string    `json:"review_id"`
	ApplicationID string    `json:"application_id"`
	JobID         string    `json:"job_id"`
	JobTitle      string    `json:"job_title"`
	ReviewerID    string    `json:"reviewer_id"`
	ReviewerName  string    `json:"reviewer_name"`
	RevieweeID    string    `json:"reviewee_id"`
	RevieweeName  string    `json:"reviewee_name"`
	RevieweeEmail string    `json:"reviewee_email"`
	Rating        int       `json:"rating"`
	CreatedAt     time.Time `json:"created_at"`
}

func (ReviewCreated) EventName() string { return NameReviewCreated }

// PaymentRecorded is published once a reconciled payment row exists.
type PaymentRecorded struct {
	PaymentID     string    `json:"payment_id"`
	TransactionID string    `json:"transaction_id"`
	PayerID       string    `json:"payer_id"`
	Amount        float64   `json:"amount"`
	NetAmount     float64   `json:"net_amount"`
	Currency      string    `json:"currency"`
	RecordedAt    time.Time `json:"recorded_at"`
}

func (PaymentRecorded) EventName() string { return NamePaymentRecorded }
