// backend/controllers/userController.go
package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/molirenH-tech/SistemaInformes9-8-25/backend/auth"
	"github.com/molirenH-tech/SistemaInformes9-8-25/backend/initializers"
	"github.com/molirenH-tech/SistemaInformes9-8-25/backend/models"
)

// CreateUser crea un nuevo usuario (acción de administrador).
func CreateUser(c *gin.Context) {
	var body struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
		Role     string `json:"role"`
		FullName string `json:"full_name" binding:"required"`
	}

	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Se requiere nombre de usuario, contraseña y nombre completo"})
		return
	}

	if body.Role == "" {
		body.Role = "alguacil"
	}

	var existing models.User
	if err := initializers.DB.First(&existing, "username = ?", body.Username).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "El nombre de usuario ya está registrado"})
		return
	}

	hash, err := auth.HashPassword(body.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Fallo al procesar la contraseña"})
		return
	}

	user := models.User{
		ID:        uuid.NewString(),
		Username:  body.Username,
		Password:  hash,
		Role:      body.Role,
		FullName:  body.FullName,
		CreatedAt: time.Now().UTC(),
	}
	if err := initializers.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "El nombre de usuario ya está registrado"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Usuario creado exitosamente", "user_id": user.ID})
}

// GetUsers lista todos los usuarios sin las contraseñas.
func GetUsers(c *gin.Context) {
	users := []models.User{}
	if err := initializers.DB.Omit("password").Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Fallo al listar los usuarios"})
		return
	}
	c.JSON(http.StatusOK, users)
}

// GetUserPassword nunca revela la credencial real: responde con un texto
// fijo para que el administrador dirija al usuario a un reseteo.
func GetUserPassword(c *gin.Context) {
	userID := c.Param("id")

	var user models.User
	if err := initializers.DB.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Usuario no encontrado"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"username": user.Username,
		"password": "Contraseña cifrada - contacte IT para resetear",
	})
}

// UpdateUserPassword permite a un administrador restablecer la contraseña de
// cualquier usuario.
func UpdateUserPassword(c *gin.Context) {
	userID := c.Param("id")

	var body struct {
		NewPassword string `json:"new_password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Se requiere la nueva contraseña"})
		return
	}

	hash, err := auth.HashPassword(body.NewPassword)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Fallo al procesar la nueva contraseña"})
		return
	}

	result := initializers.DB.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]any{
		"password":   hash,
		"updated_at": time.Now().UTC(),
	})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Fallo al actualizar la contraseña"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Usuario no encontrado"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Contraseña actualizada exitosamente"})
}

// DeleteUser elimina un usuario. Un administrador no puede eliminar su
// propia cuenta.
func DeleteUser(c *gin.Context) {
	userInterface, _ := c.Get("user")
	currentUser := userInterface.(models.User)

	userID := c.Param("id")
	if userID == currentUser.ID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No puede eliminar su propia cuenta"})
		return
	}

	result := initializers.DB.Where("id = ?", userID).Delete(&models.User{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Fallo al eliminar el usuario"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Usuario no encontrado"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Usuario eliminado exitosamente"})
}
