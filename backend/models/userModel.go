// backend/models/userModel.go
package models

import "time"

// Roles: admin, alguacil
type User struct {
	ID        string     `gorm:"primaryKey" json:"id"`
	Username  string     `gorm:"unique;not null" json:"username"`
	Password  string     `gorm:"not null" json:"-"`
	Role      string     `gorm:"not null;default:'alguacil'" json:"role"`
	FullName  string     `gorm:"not null" json:"full_name"`
	CreatedAt time.Time  `gorm:"autoCreateTime:false" json:"created_at"`
	UpdatedAt *time.Time `gorm:"autoUpdateTime:false" json:"updated_at,omitempty"`
}

func (u User) IsAdmin() bool {
	return u.Role == "admin"
}
