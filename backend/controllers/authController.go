// backend/controllers/authController.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/molirenH-tech/SistemaInformes9-8-25/backend/auth"
	"github.com/molirenH-tech/SistemaInformes9-8-25/backend/config"
	"github.com/molirenH-tech/SistemaInformes9-8-25/backend/initializers"
	"github.com/molirenH-tech/SistemaInformes9-8-25/backend/models"
)

func Login(c *gin.Context) {
	var body struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Se requiere nombre de usuario y contraseña"})
		return
	}

	var user models.User
	if err := initializers.DB.First(&user, "username = ?", body.Username).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Nombre de usuario o contraseña incorrectos"})
		return
	}

	if err := auth.CheckPassword(body.Password, user.Password); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Nombre de usuario o contraseña incorrectos"})
		return
	}

	tokenString, err := auth.GenerateToken(user, config.AppConfig.JWTSecret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Fallo al crear el token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": tokenString,
		"token_type":   "bearer",
		"user": gin.H{
			"id":        user.ID,
			"username":  user.Username,
			"role":      user.Role,
			"full_name": user.FullName,
		},
	})
}

func Me(c *gin.Context) {
	userInterface, _ := c.Get("user")
	user := userInterface.(models.User)

	c.JSON(http.StatusOK, gin.H{
		"id":        user.ID,
		"username":  user.Username,
		"role":      user.Role,
		"full_name": user.FullName,
	})
}
