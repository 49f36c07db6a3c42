package listeners

import (
	"context"
	"testing"
	"time"

	"jobhub_backend/internal/models"
	"jobhub_backend/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Minimal in-memory fakes. The listener never touches the *gorm.DB itself,
// so nil is passed everywhere.

type fakeUserRepo struct {
	users map[string]*models.User
}

func (r *fakeUserRepo) Create(_ *gorm.DB, u *models.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) FindByID(_ *gorm.DB, id string) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) FindByEmail(_ *gorm.DB, email string) (*models.User, error) {
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) EmailExists(_ *gorm.DB, email string) (bool, error) {
	return false, nil
}

type fakeSubscriptionRepo struct {
	subscriptions map[string]*models.Subscription // keyed by user id
}

func (r *fakeSubscriptionRepo) FindByID(_ *gorm.DB, id string) (*models.Subscription, error) {
	return nil, repositories.ErrSubscriptionNotFound
}

func (r *fakeSubscriptionRepo) FindLatestForUser(_ *gorm.DB, userID, paddleSubscriptionID, paddlePaymentID string) (*models.Subscription, error) {
	s, ok := r.subscriptions[userID]
	if !ok {
		return nil, repositories.ErrSubscriptionNotFound
	}
	if s.PaddleSubscriptionID != paddleSubscriptionID && s.PaddlePaymentID != paddlePaymentID {
		return nil, repositories.ErrSubscriptionNotFound
	}
	return s, nil
}

func (r *fakeSubscriptionRepo) FindActiveForUser(_ *gorm.DB, userID string) (*models.Subscription, error) {
	return nil, repositories.ErrSubscriptionNotFound
}

type fakePaymentRepo struct {
	payments []*models.Payment
}

func (r *fakePaymentRepo) Create(_ *gorm.DB, p *models.Payment) error {
	r.payments = append(r.payments, p)
	return nil
}

func (r *fakePaymentRepo) CreateIfAbsent(_ *gorm.DB, p *models.Payment) (bool, error) {
	exists, _ := r.ExistsByTransactionIDAndType(nil, p.TransactionID, p.Type)
	if exists {
		return false, nil
	}
	p.ID = "payment-1"
	r.payments = append(r.payments, p)
	return true, nil
}

func (r *fakePaymentRepo) ExistsByTransactionIDAndType(_ *gorm.DB, transactionID string, paymentType models.PaymentType) (bool, error) {
	for _, p := range r.payments {
		if p.TransactionID == transactionID && p.Type == paymentType {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakePaymentRepo) SumCompletedForPayee(_ *gorm.DB, payeeID string, from, to time.Time) (float64, error) {
	return 0, nil
}

func (r *fakePaymentRepo) DailyEarningsSeries(_ *gorm.DB, payeeID string, days int) ([]repositories.DailyEarning, error) {
	return nil, nil
}

type listenerFixture struct {
	listener      *PaymentReconciliationListener
	payments      *fakePaymentRepo
	subscriptions *fakeSubscriptionRepo
	user          *models.User
}

func newListenerFixture() *listenerFixture {
	user := &models.User{Name: "Subscriber", Role: models.UserRoleEmployer}
	user.ID = "user-1"

	users := &fakeUserRepo{users: map[string]*models.User{user.ID: user}}
	subscriptions := &fakeSubscriptionRepo{subscriptions: make(map[string]*models.Subscription)}
	payments := &fakePaymentRepo{}

	return &listenerFixture{
		listener:      NewPaymentReconciliationListener(users, subscriptions, payments, nil),
		payments:      payments,
		subscriptions: subscriptions,
		user:          user,
	}
}

func completedEvent() *TransactionCompletedEvent {
	return &TransactionCompletedEvent{
		TransactionID: "txn-1",
		UserID:        "user-1",
		Amount:        "1,234.50",
		Tax:           "134.50",
		Currency:      "CAD",
		Status:        "completed",
	}
}

func TestHandle_RecordsPayment(t *testing.T) {
	f := newListenerFixture()

	f.listener.Handle(context.Background(), nil, completedEvent())

	require.Len(t, f.payments.payments, 1)
	p := f.payments.payments[0]
	assert.Equal(t, "txn-1", p.TransactionID)
	assert.Equal(t, f.user.ID, p.PayerID)
	assert.Nil(t, p.PayeeID)
	assert.InDelta(t, 1234.50, p.Amount, 0.001)
	assert.InDelta(t, 1100.00, p.NetAmount, 0.001)
	assert.Zero(t, p.CommissionAmount)
	assert.Equal(t, models.PaymentStatusCompleted, p.Status)
	assert.Equal(t, models.PaymentTypeSubscription, p.Type)
	require.NotNil(t, p.ProcessedAt)
}

func TestHandle_IdempotentAcrossDuplicateDeliveries(t *testing.T) {
	f := newListenerFixture()
	evt := completedEvent()

	f.listener.Handle(context.Background(), nil, evt)
	f.listener.Handle(context.Background(), nil, evt)

	assert.Len(t, f.payments.payments, 1)
}

func TestHandle_UnknownUserSkippedSilently(t *testing.T) {
	f := newListenerFixture()
	evt := completedEvent()
	evt.UserID = "who-is-this"

	f.listener.Handle(context.Background(), nil, evt)

	assert.Empty(t, f.payments.payments)
}

func TestHandle_MalformedAmountSwallowed(t *testing.T) {
	f := newListenerFixture()
	evt := completedEvent()
	evt.Amount = "not-a-number"

	f.listener.Handle(context.Background(), nil, evt)

	assert.Empty(t, f.payments.payments)
}

func TestHandle_NonCompletedStatusMapsToProcessing(t *testing.T) {
	f := newListenerFixture()
	evt := completedEvent()
	evt.Status = "pending"

	f.listener.Handle(context.Background(), nil, evt)

	require.Len(t, f.payments.payments, 1)
	assert.Equal(t, models.PaymentStatusProcessing, f.payments.payments[0].Status)
}

func TestHandle_LinksMatchingSubscription(t *testing.T) {
	f := newListenerFixture()

	sub := &models.Subscription{UserID: f.user.ID, PaddleSubscriptionID: "paddle-sub-9"}
	sub.ID = "sub-1"
	f.subscriptions.subscriptions[f.user.ID] = sub

	evt := completedEvent()
	evt.PaddleSubscriptionID = "paddle-sub-9"

	f.listener.Handle(context.Background(), nil, evt)

	require.Len(t, f.payments.payments, 1)
	require.NotNil(t, f.payments.payments[0].SubscriptionID)
	assert.Equal(t, "sub-1", *f.payments.payments[0].SubscriptionID)
}

func TestHandle_DefaultsCurrencyAndBilledAt(t *testing.T) {
	f := newListenerFixture()
	evt := completedEvent()
	evt.Currency = ""
	evt.BilledAt = nil

	before := time.Now()
	f.listener.Handle(context.Background(), nil, evt)

	require.Len(t, f.payments.payments, 1)
	p := f.payments.payments[0]
	assert.Equal(t, "CAD", p.Currency)
	require.NotNil(t, p.ProcessedAt)
	assert.False(t, p.ProcessedAt.Before(before))
}

func TestHandle_UsesBilledAtWhenPresent(t *testing.T) {
	f := newListenerFixture()
	billedAt := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	evt := completedEvent()
	evt.BilledAt = &billedAt

	f.listener.Handle(context.Background(), nil, evt)

	require.Len(t, f.payments.payments, 1)
	require.NotNil(t, f.payments.payments[0].ProcessedAt)
	assert.True(t, billedAt.Equal(*f.payments.payments[0].ProcessedAt))
}

func TestParseAmount(t *testing.T) {
	cases := map[string]float64{
		"1,234.50":     1234.50,
		"134.50":       134.50,
		"1,000,000.00": 1000000,
		" 42 ":         42,
	}
	for raw, want := range cases {
		got, err := parseAmount(raw)
		require.NoError(t, err, raw)
		assert.InDelta(t, want, got, 0.001, raw)
	}

	_, err := parseAmount("abc")
	assert.Error(t, err)
}
