// Package listeners holds the queue consumers: handlers invoked once per
// delivered message, with swallow-and-log failure semantics where the
// message must not be redelivered forever.
package listeners

import (
	"context"
	"strconv"
	"strings"
	"time"

	"jobhub_backend/internal/events"
	"jobhub_backend/internal/logger"
	"jobhub_backend/internal/models"
	"jobhub_backend/internal/repositories"

	"gorm.io/gorm"
)

// TransactionCompletedEvent is the billing provider's notification that an
// external transaction has settled. Amounts arrive as numeric strings and
// may carry comma thousands separators ("1,234.50").
type TransactionCompletedEvent struct {
	TransactionID        string `json:"transaction_id"`
	UserID               string `json:"user_id"`
	PaddleSubscriptionID string `json:"paddle_subscription_id,omitempty"`
	PaddlePaymentID      string `json:"paddle_payment_id,omitempty"`
	Amount               string `json:"amount"`
	Tax                  string `json:"tax,omitempty"`
	Currency             string `json:"currency,omitempty"`
	Status               string `json:"status"`
	BilledAt             *time.Time `json:"billed_at,omitempty"`
}

// PaymentReconciliationListener records external subscription transactions
// as Payment rows, at most once per (transaction_id, type).
type PaymentReconciliationListener struct {
	userRepo         repositories.UserRepository
	subscriptionRepo repositories.SubscriptionRepository
	paymentRepo      repositories.PaymentRepository
	publisher        events.Publisher
}

func NewPaymentReconciliationListener(
	userRepo repositories.UserRepository,
	subscriptionRepo repositories.SubscriptionRepository,
	paymentRepo repositories.PaymentRepository,
	publisher events.Publisher,
) *PaymentReconciliationListener {
	return &PaymentReconciliationListener{
		userRepo:         userRepo,
		subscriptionRepo: subscriptionRepo,
		paymentRepo:      paymentRepo,
		publisher:        publisher,
	}
}

// Handle processes one transaction-completed event. It never returns an
// error and never panics out: delivery is fire-and-forget, so every failure
// is logged with the transaction id and the event is considered consumed.
// Duplicate deliveries are absorbed by the pre-insert check plus the unique
// index over (transaction_id, type).
func (l *PaymentReconciliationListener) Handle(ctx context.Context, db *gorm.DB, evt *TransactionCompletedEvent) {
	defer func() {
		if r := recover(); r != nil {
			logger.CtxError(ctx, "transaction reconciliation panicked",
				"transaction_id", evt.TransactionID, "panic", r)
		}
	}()

	user, err := l.userRepo.FindByID(db, evt.UserID)
	if err != nil {
		// Unresolvable billable user: skip permanently rather than retry.
		logger.CtxWarn(ctx, "skipping transaction for unknown user",
			"transaction_id", evt.TransactionID, "user_id", evt.UserID)
		return
	}

	// Subscription match is best effort; a payment without one is valid.
	var subscriptionID *string
	subscription, err := l.subscriptionRepo.FindLatestForUser(db, user.ID, evt.PaddleSubscriptionID, evt.PaddlePaymentID)
	if err == nil && subscription != nil {
		subscriptionID = &subscription.ID
	}

	exists, err := l.paymentRepo.ExistsByTransactionIDAndType(db, evt.TransactionID, models.PaymentTypeSubscription)
	if err != nil {
		logger.CtxWithError(ctx, "transaction reconciliation: idempotency lookup failed", err,
			"transaction_id", evt.TransactionID)
		return
	}
	if exists {
		logger.CtxInfo(ctx, "transaction already recorded, skipping",
			"transaction_id", evt.TransactionID)
		return
	}

	amount, err := parseAmount(evt.Amount)
	if err != nil {
		logger.CtxWithError(ctx, "transaction reconciliation: malformed amount", err,
			"transaction_id", evt.TransactionID, "amount", evt.Amount)
		return
	}
	tax := 0.0
	if evt.Tax != "" {
		if tax, err = parseAmount(evt.Tax); err != nil {
			logger.CtxWithError(ctx, "transaction reconciliation: malformed tax", err,
				"transaction_id", evt.TransactionID, "tax", evt.Tax)
			return
		}
	}

	currency := evt.Currency
	if currency == "" {
		currency = "CAD"
	}

	status := models.PaymentStatusProcessing
	if evt.Status == "completed" {
		status = models.PaymentStatusCompleted
	}

	processedAt := time.Now()
	if evt.BilledAt != nil {
		processedAt = *evt.BilledAt
	}

	payment := &models.Payment{
		PayerID:          user.ID,
		PayeeID:          nil, // subscription revenue belongs to the platform
		SubscriptionID:   subscriptionID,
		Amount:           amount,
		CommissionAmount: 0,
		NetAmount:        amount - tax,
		Currency:         currency,
		Status:           status,
		Type:             models.PaymentTypeSubscription,
		TransactionID:    evt.TransactionID,
		ProcessedAt:      &processedAt,
	}

	inserted, err := l.paymentRepo.CreateIfAbsent(db, payment)
	if err != nil {
		logger.CtxWithError(ctx, "transaction reconciliation: payment insert failed", err,
			"transaction_id", evt.TransactionID)
		return
	}
	if !inserted {
		// Lost a race with a concurrent delivery of the same transaction.
		logger.CtxInfo(ctx, "transaction recorded concurrently, skipping",
			"transaction_id", evt.TransactionID)
		return
	}

	logger.CtxInfo(ctx, "payment recorded",
		"payment_id", payment.ID,
		"transaction_id", evt.TransactionID,
		"user_id", user.ID,
		"amount", amount,
		"net_amount", payment.NetAmount,
	)

	if l.publisher != nil {
		_ = l.publisher.Publish(ctx, events.PaymentRecorded{
			PaymentID:     payment.ID,
			TransactionID: evt.TransactionID,
			PayerID:       user.ID,
			Amount:        amount,
			NetAmount:     payment.NetAmount,
			Currency:      currency,
			RecordedAt:    processedAt,
		})
	}
}

// parseAmount converts provider amount strings like "1,234.50" to float64.
// Commas are thousands separators only.
func parseAmount(raw string) (float64, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	return strconv.ParseFloat(cleaned, 64)
}
