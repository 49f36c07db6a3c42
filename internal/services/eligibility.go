package services

import (
	"jobhub_backend/internal/models"
)

// CanLeaveReview decides whether reviewer may review reviewee for the given
// application. The application must come pre-loaded with its Job; the
// existence of a prior review is looked up by the caller and passed in, so
// the predicate itself stays pure.
//
// All rules must hold:
//  1. the application is completed;
//  2. reviewer and reviewee are different users;
//  3. reviewer is one of the application's two sides (job employer or worker);
//  4. reviewee is the other side of the same application;
//  5. no review exists yet for (application, reviewer, reviewee).
//
// A failed rule yields false, never an error.
func CanLeaveReview(reviewer, reviewee *models.User, application *models.Application, hasExistingReview bool) bool {
	if reviewer == nil || reviewee == nil || application == nil || application.Job == nil {
		return false
	}

	if application.Status != models.ApplicationStatusCompleted {
		return false
	}

	if reviewer.ID == reviewee.ID {
		return false
	}

	employerID := application.Job.EmployerID
	workerID := application.WorkerID

	switch reviewer.ID {
	case employerID:
		if reviewee.ID != workerID {
			return false
		}
	case workerID:
		if reviewee.ID != employerID {
			return false
		}
	default:
		return false
	}

	return !hasExistingReview
}

// ReviewCounterpart returns the id of the other side of the application
// relative to userID, or "" when userID is not a side of the application.
func ReviewCounterpart(userID string, application *models.Application) string {
	if application == nil || application.Job == nil {
		return ""
	}
	switch userID {
	case application.Job.EmployerID:
		return application.WorkerID
	case application.WorkerID:
		return application.Job.EmployerID
	default:
		return ""
	}
}
