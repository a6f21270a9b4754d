// backend/services/reportService.go
package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/molirenH-tech/SistemaInformes9-8-25/backend/models"
	"github.com/molirenH-tech/SistemaInformes9-8-25/backend/websocket"
	"gorm.io/gorm"
)

// ReportInput son los datos del reporte enviados por el alguacil.
type ReportInput struct {
	Expediente    string `json:"expediente" binding:"required"`
	Tribunal      string `json:"tribunal" binding:"required"`
	Decision      string `json:"decision" binding:"required"`
	Observacion   string `json:"observacion"`
	NombreAcusado string `json:"nombre_acusado" binding:"required"`
	Fecha         string `json:"fecha" binding:"required"`
	Hora          string `json:"hora" binding:"required"`
}

// SubmitReport persiste el reporte, registra la notificación para los
// administradores y la difunde a los clientes conectados. Si la persistencia
// del reporte falla no se genera ningún efecto visible: la difusión ocurre
// solo después de confirmar la escritura.
func SubmitReport(db *gorm.DB, hub *websocket.Hub, input ReportInput, author models.User) (*models.Report, error) {
	report := models.Report{
		ID:             uuid.NewString(),
		Expediente:     input.Expediente,
		Tribunal:       input.Tribunal,
		Decision:       input.Decision,
		Observacion:    input.Observacion,
		NombreAcusado:  input.NombreAcusado,
		Fecha:          input.Fecha,
		Hora:           input.Hora,
		NombreAlguacil: author.FullName,
		CreatedBy:      author.ID,
		CreatedAt:      time.Now().UTC(),
	}

	if err := db.Create(&report).Error; err != nil {
		return nil, fmt.Errorf("failed to create report: %w", err)
	}

	notification := models.Notification{
		ID:        uuid.NewString(),
		Type:      "new_report",
		Title:     "Nuevo Reporte Creado",
		Message:   fmt.Sprintf("El alguacil %s ha creado un nuevo reporte para el expediente %s", author.FullName, report.Expediente),
		Read:      false,
		ReportID:  report.ID,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.Create(&notification).Error; err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}

	hub.Broadcast(websocket.Envelope{Type: "notification", Data: notification})

	return &report, nil
}

// AnnouncementInput son los datos de un anuncio de administrador.
type AnnouncementInput struct {
	Title   string `json:"title" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// PublishAnnouncement persiste el anuncio y lo difunde a todas las
// conexiones activas.
func PublishAnnouncement(db *gorm.DB, hub *websocket.Hub, input AnnouncementInput, admin models.User) (*models.Announcement, error) {
	announcement := models.Announcement{
		ID:        uuid.NewString(),
		Title:     input.Title,
		Message:   input.Message,
		CreatedBy: admin.FullName,
		CreatedAt: time.Now().UTC(),
	}

	if err := db.Create(&announcement).Error; err != nil {
		return nil, fmt.Errorf("failed to create announcement: %w", err)
	}

	hub.Broadcast(websocket.Envelope{Type: "announcement", Data: announcement})

	return &announcement, nil
}
