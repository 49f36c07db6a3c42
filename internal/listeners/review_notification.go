package listeners

import (
	"context"
	"fmt"

	"jobhub_backend/internal/email"
	"jobhub_backend/internal/events"
	"jobhub_backend/internal/logger"
)

// ReviewNotificationListener emails the reviewee when a review is created.
// It implements events.Publisher so it can be registered as a fanout sink;
// events it does not care about pass through untouched.
type ReviewNotificationListener struct {
	sender email.Sender
}

func NewReviewNotificationListener(sender email.Sender) *ReviewNotificationListener {
	return &ReviewNotificationListener{sender: sender}
}

func (l *ReviewNotificationListener) Publish(ctx context.Context, event events.Event) error {
	created, ok := event.(events.ReviewCreated)
	if !ok {
		return nil
	}

	subject := fmt.Sprintf("You received a new review for \"%s\"", created.JobTitle)
	body := fmt.Sprintf(
		`<h2>Hello %s,</h2>
<p>%s left you a %d-star review for the job <strong>%s</strong>.</p>
<p>Log in to your account to read it and keep your profile up to date.</p>`,
		created.RevieweeName, created.ReviewerName, created.Rating, created.JobTitle,
	)

	if err := l.sender.Send(created.RevieweeEmail, subject, body); err != nil {
		logger.CtxWithError(ctx, "review notification email failed", err,
			"review_id", created.ReviewID, "reviewee_id", created.RevieweeID)
		return err
	}

	logger.CtxInfo(ctx, "review notification sent",
		"review_id", created.ReviewID, "reviewee_id", created.RevieweeID)
	return nil
}
