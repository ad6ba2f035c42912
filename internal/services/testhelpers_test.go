package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/umg-robotica/pistas-backend/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsnName := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_journal_mode=WAL&_busy_timeout=5000", dsnName)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Administrador{},
		&models.Pista{},
		&models.Bitacora{},
		&models.Estadistica{},
	))
	return db
}

func crearAdminDePrueba(t *testing.T, db *gorm.DB, username string) *models.Administrador {
	t.Helper()
	admin := models.Administrador{
		Username: username,
		Nombre:   "Admin " + username,
		Email:    username + "@robot.edu",
		Activo:   true,
	}
	require.NoError(t, admin.SetPassword("password123"))
	require.NoError(t, db.Create(&admin).Error)
	return &admin
}

func crearPistaDePrueba(t *testing.T, db *gorm.DB, nombre string, activa bool) *models.Pista {
	t.Helper()
	pista := models.Pista{
		Nombre:            nombre,
		ConfiguracionJSON: "{}",
		Activa:            activa,
	}
	require.NoError(t, db.Create(&pista).Error)
	if !activa {
		// GORM drops a zero-value Activa=false on create in favor of the
		// column's default:true, so persist it explicitly.
		require.NoError(t, db.Model(&pista).UpdateColumn("activa", false).Error)
	}
	return &pista
}
