package models

import (
	"encoding/json"

	"gorm.io/datatypes"
)

type WorkerProfile struct {
	BaseModel
	UserID         string `gorm:"not null;uniqueIndex"`
	Title          string
	Bio            string
	Skills         datatypes.JSON `gorm:"type:jsonb"` // ["plumbing", "wiring", ...]
	Location       string
	HourlyRate     float64
	ExperienceYears int
	Rating         float64 `gorm:"default:0"`

	User *User `gorm:"foreignKey:UserID"`
}

// GetSkills decodes the JSONB skill set. Returns nil on malformed data.
func (p *WorkerProfile) GetSkills() []string {
	var skills []string
	if len(p.Skills) == 0 {
		return nil
	}
	if err := json.Unmarshal(p.Skills, &skills); err != nil {
		return nil
	}
	return skills
}

type EmployerProfile struct {
	BaseModel
	UserID      string `gorm:"not null;uniqueIndex"`
	CompanyName string
	Description string
	Location    string
	Website     string
	IsVerified  bool    `gorm:"default:false"`
	Rating      float64 `gorm:"default:0"`

	User *User `gorm:"foreignKey:UserID"`
}
