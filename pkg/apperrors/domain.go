package apperrors

import (
	"net/http"
)

// Factories for wrapping repository-level errors.

// ErrNotFound converts a lookup miss (e.g. gorm.ErrRecordNotFound) into a 404.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrAlreadyExists converts a uniqueness violation into a 409.
func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

// ErrConflict is the general conflict factory.
func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

// ErrInvalidOperation builds a 400 for operations the current state forbids.
func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// ErrInvalidStatus builds a 400 for status-transition violations.
func ErrInvalidStatus(domain, message string) *AppError {
	return New(CodeInvalidStatus, domain, message, http.StatusBadRequest)
}

// Predefined errors for frequent static cases.

// ErrIneligibleReview: the reviewer/reviewee/application triple does not
// satisfy the review eligibility rules.
var ErrIneligibleReview = New(
	CodeIneligibleReview,
	"review",
	"You are not eligible to leave a review for this application",
	http.StatusConflict,
)

// ErrReviewNotEditable: the review is outside its editable window.
var ErrReviewNotEditable = New(
	CodeReviewNotEditable,
	"review",
	"Review can no longer be edited",
	http.StatusConflict,
)

// ErrNotReviewOwner: only the author of a review may modify or delete it.
var ErrNotReviewOwner = New(
	CodeForbidden,
	"review",
	"Only the review author can perform this action",
	http.StatusForbidden,
)

// ErrNotJobOwner: a job may only be mutated by its owning employer or an admin.
var ErrNotJobOwner = New(
	CodeForbidden,
	"job",
	"Only the job owner can perform this action",
	http.StatusForbidden,
)

var ErrInvalidUserRole = New(
	CodeInvalidOperation,
	"business_logic",
	"Invalid user role for this operation",
	http.StatusBadRequest,
)

var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)

var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Email already in use",
	http.StatusConflict,
)

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

// ErrInvalidJobStatus: operation not allowed for the current job status.
var ErrInvalidJobStatus = New(
	CodeInvalidStatus,
	"job",
	"Operation not allowed for the current job status",
	http.StatusConflict,
)

// ErrInvalidApplicationStatus: operation not allowed for the current
// application status.
var ErrInvalidApplicationStatus = New(
	CodeInvalidStatus,
	"application",
	"Operation not allowed for the current application status",
	http.StatusConflict,
)

// ErrAlreadyApplied: a worker may apply to a job at most once.
var ErrAlreadyApplied = New(
	CodeAlreadyExists,
	"application",
	"You have already applied to this job",
	http.StatusConflict,
)
