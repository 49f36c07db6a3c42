package validator

import (
	"jobhub_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// Domain rules used in request DTO tags.
func registerDomainRules(v *validator.Validate) {
	_ = v.RegisterValidation("is-user-role", func(fl validator.FieldLevel) bool {
		// Admins are seeded, never self-registered.
		switch models.UserRole(fl.Field().String()) {
		case models.UserRoleWorker, models.UserRoleEmployer:
			return true
		}
		return false
	})

	_ = v.RegisterValidation("is-job-type", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case models.JobTypeFullTime, models.JobTypePartTime, models.JobTypeContract, models.JobTypeOneTime:
			return true
		}
		return false
	})

	_ = v.RegisterValidation("is-experience-level", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case models.ExperienceLevelEntry, models.ExperienceLevelIntermediate, models.ExperienceLevelExpert:
			return true
		}
		return false
	})

	_ = v.RegisterValidation("is-review-type", func(fl validator.FieldLevel) bool {
		switch models.ReviewType(fl.Field().String()) {
		case models.ReviewTypeEmployerToEmployee, models.ReviewTypeEmployeeToEmployer:
			return true
		}
		return false
	})
}
