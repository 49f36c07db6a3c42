package models

type User struct {
	BaseModel
	Name         string     `gorm:"not null"`
	Email        string     `gorm:"uniqueIndex;not null"`
	PasswordHash string     `gorm:"not null"`
	Role         UserRole   `gorm:"type:varchar(20);not null"`
	Status       UserStatus `gorm:"type:varchar(20);default:'pending'"`
	IsVerified   bool       `gorm:"default:false"`

	// Relations
	WorkerProfile   *WorkerProfile   `gorm:"foreignKey:UserID"`
	EmployerProfile *EmployerProfile `gorm:"foreignKey:UserID"`
	Subscriptions   []Subscription   `gorm:"foreignKey:UserID"`
}

func (u *User) IsEmployer() bool {
	return u.Role == UserRoleEmployer
}

func (u *User) IsWorker() bool {
	return u.Role == UserRoleWorker
}
