// backend/models/reportModel.go
package models

import "time"

type Report struct {
	ID             string     `gorm:"primaryKey" json:"id"`
	Expediente     string     `gorm:"not null" json:"expediente"`
	Tribunal       string     `gorm:"not null" json:"tribunal"`
	Decision       string     `gorm:"not null" json:"decision"`
	Observacion    string     `json:"observacion"`
	NombreAcusado  string     `gorm:"not null" json:"nombre_acusado"`
	Fecha          string     `gorm:"not null" json:"fecha"`
	Hora           string     `gorm:"not null" json:"hora"`
	NombreAlguacil string     `gorm:"not null" json:"nombre_alguacil"`
	CreatedBy      string     `gorm:"not null;index" json:"created_by"`
	CreatedAt      time.Time  `gorm:"autoCreateTime:false" json:"created_at"`
	UpdatedAt      *time.Time `gorm:"autoUpdateTime:false" json:"updated_at,omitempty"`
}
