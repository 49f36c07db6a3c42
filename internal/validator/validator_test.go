package validator

import (
	"testing"

	"jobhub_backend/internal/services/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_CreateReviewRequest(t *testing.T) {
	v := NewValidator()

	valid := dto.CreateReviewRequest{
		ApplicationID: "app-1",
		RevieweeID:    "user-1",
		Rating:        5,
	}
	assert.NoError(t, v.Validate(valid))

	invalid := dto.CreateReviewRequest{Rating: 6}
	err := v.Validate(invalid)
	require.Error(t, err)

	vErr, ok := err.(*ValidationError)
	require.True(t, ok)
	// Field names come from json tags.
	assert.Contains(t, vErr.Errors, "application_id")
	assert.Contains(t, vErr.Errors, "reviewee_id")
	assert.Contains(t, vErr.Errors, "rating")
}

func TestValidate_DomainRules(t *testing.T) {
	v := NewValidator()

	req := dto.RegisterRequest{Name: "Ann", Email: "ann@example.com", Password: "secret1", Role: "worker"}
	assert.NoError(t, v.Validate(req))

	req.Role = "admin" // never self-registered
	assert.Error(t, v.Validate(req))

	req.Role = "alien"
	assert.Error(t, v.Validate(req))

	job := dto.CreateJobRequest{
		Title:           "Deck build",
		Category:        "construction",
		Budget:          1500,
		JobType:         "one_time",
		ExperienceLevel: "intermediate",
	}
	assert.NoError(t, v.Validate(job))

	job.JobType = "gig"
	assert.Error(t, v.Validate(job))
}
