package dto

import (
	"time"

	"jobhub_backend/internal/models"
)

type CreateJobRequest struct {
	Title           string     `json:"title" validate:"required,max=200"`
	Description     string     `json:"description" validate:"omitempty,max=5000"`
	Category        string     `json:"category" validate:"required"`
	Budget          float64    `json:"budget" validate:"required,min=0"`
	Deadline        *time.Time `json:"deadline,omitempty"`
	RequiredSkills  []string   `json:"required_skills" validate:"omitempty,max=20,dive,max=50"`
	Location        string     `json:"location" validate:"omitempty,max=100"`
	JobType         string     `json:"job_type" validate:"required,is-job-type"`
	ExperienceLevel string     `json:"experience_level" validate:"required,is-experience-level"`
}

type UpdateJobRequest struct {
	Title           *string    `json:"title,omitempty" validate:"omitempty,max=200"`
	Description     *string    `json:"description,omitempty" validate:"omitempty,max=5000"`
	Category        *string    `json:"category,omitempty"`
	Budget          *float64   `json:"budget,omitempty" validate:"omitempty,min=0"`
	Deadline        *time.Time `json:"deadline,omitempty"`
	RequiredSkills  []string   `json:"required_skills,omitempty" validate:"omitempty,max=20,dive,max=50"`
	Location        *string    `json:"location,omitempty" validate:"omitempty,max=100"`
	JobType         *string    `json:"job_type,omitempty" validate:"omitempty,is-job-type"`
	ExperienceLevel *string    `json:"experience_level,omitempty" validate:"omitempty,is-experience-level"`
}

type JobSearchRequest struct {
	Category        string `form:"category"`
	JobType         string `form:"job_type" validate:"omitempty,is-job-type"`
	ExperienceLevel string `form:"experience_level" validate:"omitempty,is-experience-level"`
	Location        string `form:"location"`
	Page            int    `form:"page" validate:"omitempty,min=1"`
	PageSize        int    `form:"page_size" validate:"omitempty,min=1,max=100"`
}

type JobResponse struct {
	ID              string               `json:"id"`
	EmployerID      string               `json:"employer_id"`
	Title           string               `json:"title"`
	Description     string               `json:"description"`
	Category        string               `json:"category"`
	Budget          float64              `json:"budget"`
	Deadline        *time.Time           `json:"deadline,omitempty"`
	RequiredSkills  []string             `json:"required_skills"`
	Location        string               `json:"location"`
	JobType         string               `json:"job_type"`
	ExperienceLevel string               `json:"experience_level"`
	Status          models.JobStatus     `json:"status"`
	PaymentStatus   models.PaymentStatus `json:"payment_status"`
	CreatedAt       time.Time            `json:"created_at"`

	Employer *UserInfo `json:"employer,omitempty"`
}

type JobListResponse struct {
	Jobs       []JobResponse `json:"jobs"`
	Total      int64         `json:"total"`
	Page       int           `json:"page"`
	PageSize   int           `json:"page_size"`
	TotalPages int           `json:"total_pages"`
}
