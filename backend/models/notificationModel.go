// backend/models/notificationModel.go
package models

import "time"

type Notification struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Type      string    `gorm:"not null" json:"type"`
	Title     string    `gorm:"not null" json:"title"`
	Message   string    `gorm:"not null" json:"message"`
	Read      bool      `gorm:"not null;default:false" json:"read"`
	ReportID  string    `gorm:"index" json:"report_id"`
	CreatedAt time.Time `gorm:"autoCreateTime:false" json:"created_at"`
}

type Announcement struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"not null" json:"title"`
	Message   string    `gorm:"not null" json:"message"`
	CreatedBy string    `gorm:"not null" json:"created_by"`
	CreatedAt time.Time `gorm:"autoCreateTime:false" json:"created_at"`
}
