package models

type UserStatus string
type UserRole string
type JobStatus string
type ApplicationStatus string
type ReviewType string
type SubscriptionStatus string
type PaymentStatus string
type PaymentType string

const (
	UserStatusPending   UserStatus = "pending"
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"
	UserStatusBanned    UserStatus = "banned"

	UserRoleWorker   UserRole = "worker"
	UserRoleEmployer UserRole = "employer"
	UserRoleAdmin    UserRole = "admin"

	JobStatusDraft      JobStatus = "draft"
	JobStatusPublished  JobStatus = "published"
	JobStatusInProgress JobStatus = "in_progress"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusClosed     JobStatus = "closed"

	ApplicationStatusPending   ApplicationStatus = "pending"
	ApplicationStatusAccepted  ApplicationStatus = "accepted"
	ApplicationStatusRejected  ApplicationStatus = "rejected"
	ApplicationStatusCompleted ApplicationStatus = "completed"
	ApplicationStatusWithdrawn ApplicationStatus = "withdrawn"

	ReviewTypeEmployerToEmployee ReviewType = "employer_to_employee"
	ReviewTypeEmployeeToEmployer ReviewType = "employee_to_employer"

	SubscriptionStatusActive    SubscriptionStatus = "active"
	SubscriptionStatusExpired   SubscriptionStatus = "expired"
	SubscriptionStatusCancelled SubscriptionStatus = "cancelled"

	PaymentStatusPending    PaymentStatus = "pending"
	PaymentStatusProcessing PaymentStatus = "processing"
	PaymentStatusCompleted  PaymentStatus = "completed"

	PaymentTypeSubscription PaymentType = "subscription"
	PaymentTypeJobPayment   PaymentType = "job_payment"
)
