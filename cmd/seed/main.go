package main

import (
	"fmt"
	"log"

	"github.com/umg-robotica/pistas-backend/internal/config"
	"github.com/umg-robotica/pistas-backend/internal/database"
	"github.com/umg-robotica/pistas-backend/internal/models"
	"github.com/umg-robotica/pistas-backend/internal/services"
)

// Development helper: migrates the schema, ensures the default admin and
// loads a handful of sample pistas.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	db, err := database.Open(cfg.DatabasePath)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.Administrador{},
		&models.Pista{},
		&models.Bitacora{},
		&models.Estadistica{},
	); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}
	fmt.Println("✓ Database migrated successfully")

	if err := services.NewAdministradorService(db).EnsureDefaultAdmin(); err != nil {
		log.Fatal("Failed to ensure default administrator:", err)
	}

	pistas := []models.Pista{
		{
			Nombre:            "Laberinto Inicial",
			ConfiguracionJSON: `{"nivel": 1, "obstaculos": ["pared", "pared", "giro"]}`,
			Activa:            true,
		},
		{
			Nombre:            "Circuito de Colores",
			ConfiguracionJSON: `{"nivel": 2, "colores": ["rojo", "verde", "azul"]}`,
			Activa:            true,
		},
		{
			Nombre:            "Reto del Puente",
			ConfiguracionJSON: `{"nivel": 3, "obstaculos": ["puente", "rampa"]}`,
			Activa:            false,
		},
	}
	for _, pista := range pistas {
		var count int64
		db.Model(&models.Pista{}).Where("nombre = ?", pista.Nombre).Count(&count)
		if count > 0 {
			continue
		}
		if err := db.Create(&pista).Error; err != nil {
			log.Fatal("Failed to seed pista:", err)
		}
	}
	fmt.Println("✓ Sample pistas seeded")
}
