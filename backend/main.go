// backend/main.go
package main

import (
	"log"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/molirenH-tech/SistemaInformes9-8-25/backend/auth"
	"github.com/molirenH-tech/SistemaInformes9-8-25/backend/config"
	"github.com/molirenH-tech/SistemaInformes9-8-25/backend/controllers"
	"github.com/molirenH-tech/SistemaInformes9-8-25/backend/initializers"
	"github.com/molirenH-tech/SistemaInformes9-8-25/backend/middleware"
	"github.com/molirenH-tech/SistemaInformes9-8-25/backend/models"
	"github.com/molirenH-tech/SistemaInformes9-8-25/backend/websocket"
)

func init() {
	config.LoadConfig()
	initializers.ConnectToDB()
}

func main() {
	log.Println("Iniciando la migración de la base de datos...")
	err := initializers.DB.AutoMigrate(&models.User{}, &models.Report{}, &models.Notification{}, &models.Announcement{})
	if err != nil {
		log.Fatalf("Fallo en la migración de la base de datos: %v", err)
	}

	seedAdminUser()

	hub := websocket.NewHub()
	go hub.Run()

	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	if config.AppConfig.CORSOrigins == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = strings.Split(config.AppConfig.CORSOrigins, ",")
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	r.POST("/api/login", controllers.Login)
	r.GET("/ws", websocket.ServeWs(hub))

	api := r.Group("/api")
	api.Use(middleware.RequireAuth)
	{
		api.GET("/me", controllers.Me)
		api.POST("/reports", controllers.CreateReport(hub))
		api.GET("/reports", controllers.GetReports)
		api.GET("/announcements", controllers.GetAnnouncements)

		admin := api.Group("")
		admin.Use(middleware.RequireAdmin)
		{
			admin.PUT("/reports/:id", controllers.UpdateReport)
			admin.DELETE("/reports/:id", controllers.DeleteReport)
			admin.POST("/users", controllers.CreateUser)
			admin.GET("/users", controllers.GetUsers)
			admin.GET("/users/:id/password", controllers.GetUserPassword)
			admin.PUT("/users/:id/password", controllers.UpdateUserPassword)
			admin.DELETE("/users/:id", controllers.DeleteUser)
			admin.GET("/notifications", controllers.GetNotifications)
			admin.PUT("/notifications/:id/read", controllers.MarkNotificationRead)
			admin.POST("/announcements", controllers.CreateAnnouncement(hub))
			admin.GET("/stats", controllers.GetStats)
		}
	}

	log.Printf("Iniciando el servidor en el puerto %s...", config.AppConfig.Port)
	r.Run(":" + config.AppConfig.Port)
}

// seedAdminUser crea el administrador por defecto si no existe ninguno.
// Credenciales fijas admin/admin123: cambiarlas al desplegar.
func seedAdminUser() {
	var adminCount int64
	initializers.DB.Model(&models.User{}).Where("role = ?", "admin").Count(&adminCount)
	if adminCount > 0 {
		return
	}

	hash, err := auth.HashPassword("admin123")
	if err != nil {
		log.Fatalf("Fallo al crear el usuario admin: %v", err)
	}

	admin := models.User{
		ID:        uuid.NewString(),
		Username:  "admin",
		Password:  hash,
		Role:      "admin",
		FullName:  "Administrador Principal",
		CreatedAt: time.Now().UTC(),
	}
	if err := initializers.DB.Create(&admin).Error; err != nil {
		log.Fatalf("Fallo al crear el usuario admin: %v", err)
	}
	log.Println("Usuario admin por defecto creado: admin/admin123")
}
