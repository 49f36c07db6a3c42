package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

type Job struct {
	BaseModel
	EmployerID      string `gorm:"not null;index"`
	Title           string `gorm:"not null"`
	Description     string
	Category        string         `gorm:"index"`
	Budget          float64        `gorm:"not null;check:budget >= 0"`
	Deadline        *time.Time
	RequiredSkills  datatypes.JSON `gorm:"type:jsonb"` // ["carpentry", "painting", ...]
	Location        string
	JobType         string `gorm:"type:varchar(20)"` // full_time, part_time, contract, one_time
	ExperienceLevel string `gorm:"type:varchar(20)"` // entry, intermediate, expert
	Status          JobStatus `gorm:"type:varchar(20);default:'draft';index"`
	PaymentStatus   PaymentStatus `gorm:"type:varchar(20);default:'pending'"`

	// Relations
	Employer     *User         `gorm:"foreignKey:EmployerID"`
	Applications []Application `gorm:"foreignKey:JobID"`
}

// GetRequiredSkills decodes the JSONB skill set. Returns nil on malformed data.
func (j *Job) GetRequiredSkills() []string {
	var skills []string
	if len(j.RequiredSkills) == 0 {
		return nil
	}
	if err := json.Unmarshal(j.RequiredSkills, &skills); err != nil {
		return nil
	}
	return skills
}

const (
	JobTypeFullTime = "full_time"
	JobTypePartTime = "part_time"
	JobTypeContract = "contract"
	JobTypeOneTime  = "one_time"

	ExperienceLevelEntry        = "entry"
	ExperienceLevelIntermediate = "intermediate"
	ExperienceLevelExpert       = "expert"
)
