package models

type Review struct {
	BaseModel
	ReviewerID    string     `gorm:"not null;index;uniqueIndex:idx_reviews_app_reviewer_reviewee"`
	RevieweeID    string     `gorm:"not null;index;uniqueIndex:idx_reviews_app_reviewer_reviewee"`
	ApplicationID string     `gorm:"not null;index;uniqueIndex:idx_reviews_app_reviewer_reviewee"`
	JobID         string     `gorm:"not null;index"`
	Rating        int        `gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Comment       string     `gorm:"size:1000"`
	Type          ReviewType `gorm:"type:varchar(30);not null"`

	// Relations
	Reviewer    *User        `gorm:"foreignKey:ReviewerID"`
	Reviewee    *User        `gorm:"foreignKey:RevieweeID"`
	Application *Application `gorm:"foreignKey:ApplicationID"`
	Job         *Job         `gorm:"foreignKey:JobID"`
}
