package models

type User struct {
	BaseModel
	Email        string   `gorm:"size:254;uniqueIndex;not null" json:"email"`
	Username     string   `gorm:"size:150;uniqueIndex;not null" json:"username"`
	Name         string   `gorm:"size:255;not null" json:"name"`
	PasswordHash string   `gorm:"not null" json:"-"`
	Role         UserRole `gorm:"size:20;not null;index" json:"usertype"`
	IsActive     bool     `gorm:"not null" json:"is_active"`
}

func (u *User) IsCreator() bool {
	return u.Role == UserRoleCreator
}

func (u *User) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}
