package models

import "time"

type Application struct {
	BaseModel
	JobID       string            `gorm:"not null;index;uniqueIndex:idx_applications_job_worker"`
	WorkerID    string            `gorm:"not null;index;uniqueIndex:idx_applications_job_worker"`
	CoverLetter string
	ProposedRate float64
	Status      ApplicationStatus `gorm:"type:varchar(20);default:'pending';index"`
	CompletedAt *time.Time

	// Relations
	Job    *Job  `gorm:"foreignKey:JobID"`
	Worker *User `gorm:"foreignKey:WorkerID"`
}

// IsCompleted reports whether the application reached its terminal state,
// which unlocks reviews and payment settlement.
func (a *Application) IsCompleted() bool {
	return a.Status == ApplicationStatusCompleted
}
