// backend/controllers/notificationController.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/molirenH-tech/SistemaInformes9-8-25/backend/initializers"
	"github.com/molirenH-tech/SistemaInformes9-8-25/backend/models"
	"github.com/molirenH-tech/SistemaInformes9-8-25/backend/services"
	"github.com/molirenH-tech/SistemaInformes9-8-25/backend/websocket"
)

// GetNotifications lista todas las notificaciones, más recientes primero.
func GetNotifications(c *gin.Context) {
	notifications := []models.Notification{}
	if err := initializers.DB.Order("created_at DESC").Find(&notifications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Fallo al listar las notificaciones"})
		return
	}
	c.JSON(http.StatusOK, notifications)
}

func MarkNotificationRead(c *gin.Context) {
	notificationID := c.Param("id")

	result := initializers.DB.Model(&models.Notification{}).Where("id = ?", notificationID).Update("read", true)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Fallo al actualizar la notificación"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notificación no encontrada"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notificación marcada como leída"})
}

// CreateAnnouncement publica un anuncio de administrador y lo difunde a
// todas las conexiones activas.
func CreateAnnouncement(hub *websocket.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		userInterface, _ := c.Get("user")
		currentUser := userInterface.(models.User)

		var body services.AnnouncementInput
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Se requiere título y mensaje"})
			return
		}

		if _, err := services.PublishAnnouncement(initializers.DB, hub, body, currentUser); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Fallo al crear el anuncio"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Anuncio enviado exitosamente"})
	}
}

// GetAnnouncements devuelve los diez anuncios más recientes.
func GetAnnouncements(c *gin.Context) {
	announcements := []models.Announcement{}
	if err := initializers.DB.Order("created_at DESC").Limit(10).Find(&announcements).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Fallo al listar los anuncios"})
		return
	}
	c.JSON(http.StatusOK, announcements)
}

// GetStats calcula los conteos agregados en vivo, sin caché.
func GetStats(c *gin.Context) {
	var totalReports, totalAlguaciles, totalAdmins, unreadNotifications int64

	db := initializers.DB
	if err := db.Model(&models.Report{}).Count(&totalReports).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Fallo al calcular las estadísticas"})
		return
	}
	db.Model(&models.User{}).Where("role = ?", "alguacil").Count(&totalAlguaciles)
	db.Model(&models.User{}).Where("role = ?", "admin").Count(&totalAdmins)
	db.Model(&models.Notification{}).Where("read = ?", false).Count(&unreadNotifications)

	c.JSON(http.StatusOK, gin.H{
		"total_reports":        totalReports,
		"total_alguaciles":     totalAlguaciles,
		"total_admins":         totalAdmins,
		"unread_notifications": unreadNotifications,
	})
}
