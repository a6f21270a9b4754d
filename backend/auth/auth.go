// backend/auth/auth.go
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/molirenH-tech/SistemaInformes9-8-25/backend/models"
	"golang.org/x/crypto/bcrypt"
)

// TokenTTL is how long an issued token remains valid.
const TokenTTL = 720 * time.Minute

// HashPassword genera el hash bcrypt de una contraseña en texto plano.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword compara una contraseña en texto plano con su hash almacenado.
func CheckPassword(password, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// GenerateToken emite un JWT firmado con HS256 para el usuario dado.
func GenerateToken(user models.User, secret string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  user.ID,
		"user": user.Username,
		"role": user.Role,
		"exp":  time.Now().Add(TokenTTL).Unix(),
	})
	return token.SignedString([]byte(secret))
}
