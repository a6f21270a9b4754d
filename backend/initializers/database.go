// backend/initializers/database.go
package initializers

import (
	"log"

	"github.com/molirenH-tech/SistemaInformes9-8-25/backend/config"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectToDB() {
	var err error
	DB, err = gorm.Open(sqlite.Open(config.AppConfig.DatabaseURL), &gorm.Config{})
	if err != nil {
		log.Fatalf("Fallo al conectar con la base de datos: %v", err)
	}
}
