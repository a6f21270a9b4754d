// backend/controllers/reportController.go
package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/molirenH-tech/SistemaInformes9-8-25/backend/initializers"
	"github.com/molirenH-tech/SistemaInformes9-8-25/backend/models"
	"github.com/molirenH-tech/SistemaInformes9-8-25/backend/services"
	"github.com/molirenH-tech/SistemaInformes9-8-25/backend/websocket"
)

// CreateReport registra un reporte del usuario autenticado y notifica a los
// administradores en tiempo real.
func CreateReport(hub *websocket.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		userInterface, _ := c.Get("user")
		currentUser := userInterface.(models.User)

		var body services.ReportInput
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Entrada inválida. Todos los campos son requeridos."})
			return
		}

		report, err := services.SubmitReport(initializers.DB, hub, body, currentUser)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Fallo al crear el reporte"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Reporte creado exitosamente", "report_id": report.ID})
	}
}

// GetReports lista todos los reportes para administradores; un alguacil solo
// ve los suyos.
func GetReports(c *gin.Context) {
	userInterface, _ := c.Get("user")
	currentUser := userInterface.(models.User)

	reports := []models.Report{}
	query := initializers.DB.Order("created_at DESC")
	if !currentUser.IsAdmin() {
		query = query.Where("created_by = ?", currentUser.ID)
	}
	if err := query.Find(&reports).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Fallo al listar los reportes"})
		return
	}

	c.JSON(http.StatusOK, reports)
}

// reportUpdate distingue campo ausente (nil) de campo vacío.
type reportUpdate struct {
	Expediente    *string `json:"expediente"`
	Tribunal      *string `json:"tribunal"`
	Decision      *string `json:"decision"`
	Observacion   *string `json:"observacion"`
	NombreAcusado *string `json:"nombre_acusado"`
	Fecha         *string `json:"fecha"`
	Hora          *string `json:"hora"`
}

// UpdateReport aplica solo los campos presentes en el cuerpo y sella
// updated_at. El campo created_by nunca cambia.
func UpdateReport(c *gin.Context) {
	reportID := c.Param("id")

	var body reportUpdate
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Entrada inválida"})
		return
	}

	updates := map[string]any{}
	if body.Expediente != nil {
		updates["expediente"] = *body.Expediente
	}
	if body.Tribunal != nil {
		updates["tribunal"] = *body.Tribunal
	}
	if body.Decision != nil {
		updates["decision"] = *body.Decision
	}
	if body.Observacion != nil {
		updates["observacion"] = *body.Observacion
	}
	if body.NombreAcusado != nil {
		updates["nombre_acusado"] = *body.NombreAcusado
	}
	if body.Fecha != nil {
		updates["fecha"] = *body.Fecha
	}
	if body.Hora != nil {
		updates["hora"] = *body.Hora
	}
	updates["updated_at"] = time.Now().UTC()

	result := initializers.DB.Model(&models.Report{}).Where("id = ?", reportID).Updates(updates)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Fallo al actualizar el reporte"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Reporte no encontrado"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Reporte actualizado exitosamente"})
}

func DeleteReport(c *gin.Context) {
	reportID := c.Param("id")

	result := initializers.DB.Where("id = ?", reportID).Delete(&models.Report{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Fallo al eliminar el reporte"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Reporte no encontrado"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Reporte eliminado exitosamente"})
}
