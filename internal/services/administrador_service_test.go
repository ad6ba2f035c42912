package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umg-robotica/pistas-backend/internal/models"
)

func TestAdministradorService_EnsureDefaultAdmin(t *testing.T) {
	db := setupTestDB(t)
	service := NewAdministradorService(db)

	require.NoError(t, service.EnsureDefaultAdmin())

	admin, err := service.PorUsername("admin")
	require.NoError(t, err)
	assert.True(t, admin.Activo)
	assert.True(t, admin.CheckPassword("admin123"))

	// Idempotent.
	require.NoError(t, service.EnsureDefaultAdmin())
	var count int64
	require.NoError(t, db.Model(&models.Administrador{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestAdministradorService_EnsureDefaultAdmin_NoResucita(t *testing.T) {
	db := setupTestDB(t)
	service := NewAdministradorService(db)
	alice := crearAdminDePrueba(t, db, "alice")

	// Any existing administrator, even a deactivated one, suppresses the
	// bootstrap account.
	require.NoError(t, service.Eliminar(alice.ID, ""))
	require.NoError(t, service.EnsureDefaultAdmin())

	_, err := service.PorUsername("admin")
	assert.ErrorIs(t, err, ErrAdministradorNoEncontrado)
}

func TestAdministradorService_Crear(t *testing.T) {
	db := setupTestDB(t)
	service := NewAdministradorService(db)
	crearAdminDePrueba(t, db, "root")

	admin, err := service.Crear("alice", "password123", "Alice", "alice@robot.edu", "root")
	require.NoError(t, err)
	assert.True(t, admin.Activo)
	assert.True(t, admin.CheckPassword("password123"))

	var entradas []models.Bitacora
	require.NoError(t, db.Where("accion = ?", models.AccionCrearAdmin).Find(&entradas).Error)
	assert.Len(t, entradas, 1)

	_, err = service.Crear("alice", "x", "Otra", "otra@robot.edu", "root")
	assert.ErrorIs(t, err, ErrUsernameEnUso)

	_, err = service.Crear("alicia", "x", "Otra", "alice@robot.edu", "root")
	assert.ErrorIs(t, err, ErrEmailEnUso)
}

func TestAdministradorService_Actualizar(t *testing.T) {
	db := setupTestDB(t)
	service := NewAdministradorService(db)
	alice := crearAdminDePrueba(t, db, "alice")
	crearAdminDePrueba(t, db, "bob")

	inactivo := false
	actualizado, err := service.Actualizar(alice.ID, "alice2", "Alice Segunda", "alice2@robot.edu", &inactivo, "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice2", actualizado.Username)
	assert.False(t, actualizado.Activo)

	// Keeping own values is not a collision.
	_, err = service.Actualizar(alice.ID, "alice2", "Alice Segunda", "alice2@robot.edu", nil, "")
	require.NoError(t, err)

	_, err = service.Actualizar(alice.ID, "bob", "Alice", "alice2@robot.edu", nil, "")
	assert.ErrorIs(t, err, ErrUsernameEnUso)

	_, err = service.Actualizar(alice.ID, "alice2", "Alice", "bob@robot.edu", nil, "")
	assert.ErrorIs(t, err, ErrEmailEnUso)

	_, err = service.Actualizar(9999, "x", "X", "x@robot.edu", nil, "")
	assert.ErrorIs(t, err, ErrAdministradorNoEncontrado)
}

func TestAdministradorService_CambiarPassword(t *testing.T) {
	db := setupTestDB(t)
	service := NewAdministradorService(db)
	alice := crearAdminDePrueba(t, db, "alice")

	require.NoError(t, service.CambiarPassword(alice.ID, "nueva-clave", "alice"))

	actual, err := service.PorID(alice.ID)
	require.NoError(t, err)
	assert.True(t, actual.CheckPassword("nueva-clave"))
	assert.False(t, actual.CheckPassword("password123"))

	assert.ErrorIs(t, service.CambiarPassword(9999, "x", ""), ErrAdministradorNoEncontrado)
}

func TestAdministradorService_Eliminar(t *testing.T) {
	db := setupTestDB(t)
	service := NewAdministradorService(db)
	alice := crearAdminDePrueba(t, db, "alice")
	crearAdminDePrueba(t, db, "bob")

	require.NoError(t, service.Eliminar(alice.ID, "bob"))

	// Soft delete: the record survives for the audit trail.
	actual, err := service.PorID(alice.ID)
	require.NoError(t, err)
	assert.False(t, actual.Activo)

	activos, err := service.Activos()
	require.NoError(t, err)
	require.Len(t, activos, 1)
	assert.Equal(t, "bob", activos[0].Username)

	todos, err := service.Todos()
	require.NoError(t, err)
	assert.Len(t, todos, 2)
}

func TestAdministradorService_BuscarPorNombre(t *testing.T) {
	db := setupTestDB(t)
	service := NewAdministradorService(db)
	crearAdminDePrueba(t, db, "alice")
	crearAdminDePrueba(t, db, "bob")

	encontrados, err := service.BuscarPorNombre("ADMIN ALICE")
	require.NoError(t, err)
	require.Len(t, encontrados, 1)
	assert.Equal(t, "alice", encontrados[0].Username)
}
