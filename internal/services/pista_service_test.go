package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umg-robotica/pistas-backend/internal/models"
)

func TestPistaService_Crear(t *testing.T) {
	db := setupTestDB(t)
	service := NewPistaService(db)
	admin := crearAdminDePrueba(t, db, "alice")

	pista, err := service.Crear("Laberinto", `{"nivel": 1}`, "alice")
	require.NoError(t, err)
	assert.True(t, pista.Activa)
	require.NotNil(t, pista.CreadoPorID)
	assert.Equal(t, admin.ID, *pista.CreadoPorID)

	var entradas []models.Bitacora
	require.NoError(t, db.Where("accion = ?", models.AccionCrearPista).Find(&entradas).Error)
	assert.Len(t, entradas, 1)

	// Name collisions include soft-deleted pistas.
	require.NoError(t, service.Eliminar(pista.ID, "alice"))
	_, err = service.Crear("Laberinto", "{}", "alice")
	assert.ErrorIs(t, err, ErrNombrePistaEnUso)
}

func TestPistaService_Crear_SinActor(t *testing.T) {
	db := setupTestDB(t)
	service := NewPistaService(db)

	// Unresolvable actor: the pista is created with a nil creator and no
	// audit entry.
	pista, err := service.Crear("Circuito", "{}", "")
	require.NoError(t, err)
	assert.Nil(t, pista.CreadoPorID)

	var count int64
	require.NoError(t, db.Model(&models.Bitacora{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestPistaService_Aleatoria(t *testing.T) {
	db := setupTestDB(t)
	service := NewPistaService(db)

	_, err := service.Aleatoria()
	assert.ErrorIs(t, err, ErrSinPistasActivas)

	crearPistaDePrueba(t, db, "Inactiva", false)
	_, err = service.Aleatoria()
	assert.ErrorIs(t, err, ErrSinPistasActivas)

	activa := crearPistaDePrueba(t, db, "Activa", true)
	pista, err := service.Aleatoria()
	require.NoError(t, err)
	assert.Equal(t, activa.ID, pista.ID)
}

func TestPistaService_Actualizar(t *testing.T) {
	db := setupTestDB(t)
	service := NewPistaService(db)
	crearAdminDePrueba(t, db, "alice")
	pista := crearPistaDePrueba(t, db, "Laberinto", true)
	crearPistaDePrueba(t, db, "Circuito", true)

	inactiva := false
	actualizada, err := service.Actualizar(pista.ID, "Laberinto 2", `{"nivel": 2}`, &inactiva, "alice")
	require.NoError(t, err)
	assert.Equal(t, "Laberinto 2", actualizada.Nombre)
	assert.False(t, actualizada.Activa)
	assert.True(t, actualizada.UpdatedAt.After(pista.UpdatedAt) || actualizada.UpdatedAt.Equal(pista.UpdatedAt))

	// Keeping the same name is not a collision.
	_, err = service.Actualizar(pista.ID, "Laberinto 2", "{}", nil, "alice")
	require.NoError(t, err)

	// Renaming onto another pista is.
	_, err = service.Actualizar(pista.ID, "Circuito", "{}", nil, "alice")
	assert.ErrorIs(t, err, ErrNombrePistaEnUso)

	_, err = service.Actualizar(9999, "Nada", "{}", nil, "alice")
	assert.ErrorIs(t, err, ErrPistaNoEncontrada)
}

func TestPistaService_Eliminar(t *testing.T) {
	db := setupTestDB(t)
	service := NewPistaService(db)
	pista := crearPistaDePrueba(t, db, "Laberinto", true)

	require.NoError(t, service.Eliminar(pista.ID, ""))

	// Soft-deleted: out of the active set but still retrievable.
	recuperada, err := service.PorID(pista.ID)
	require.NoError(t, err)
	assert.False(t, recuperada.Activa)

	count, err := service.ContarActivas()
	require.NoError(t, err)
	assert.Zero(t, count)

	// Idempotent.
	require.NoError(t, service.Eliminar(pista.ID, ""))

	assert.ErrorIs(t, service.Eliminar(9999, ""), ErrPistaNoEncontrada)
}

func TestPistaService_EliminarDefinitivamente(t *testing.T) {
	db := setupTestDB(t)
	service := NewPistaService(db)
	crearAdminDePrueba(t, db, "alice")
	pista := crearPistaDePrueba(t, db, "Laberinto", true)

	require.NoError(t, service.EliminarDefinitivamente(pista.ID, "alice"))

	_, err := service.PorID(pista.ID)
	assert.ErrorIs(t, err, ErrPistaNoEncontrada)

	var entradas []models.Bitacora
	require.NoError(t, db.Where("accion = ?", models.AccionEliminarPistaDef).Find(&entradas).Error)
	assert.Len(t, entradas, 1)
}

func TestPistaService_BuscarPorNombre(t *testing.T) {
	db := setupTestDB(t)
	service := NewPistaService(db)
	crearPistaDePrueba(t, db, "Laberinto Inicial", true)
	crearPistaDePrueba(t, db, "Circuito de Colores", false)

	encontradas, err := service.BuscarPorNombre("LABERINTO")
	require.NoError(t, err)
	require.Len(t, encontradas, 1)
	assert.Equal(t, "Laberinto Inicial", encontradas[0].Nombre)

	// Inactive pistas are searchable too.
	encontradas, err = service.BuscarPorNombre("colores")
	require.NoError(t, err)
	assert.Len(t, encontradas, 1)

	encontradas, err = service.BuscarPorNombre("nada")
	require.NoError(t, err)
	assert.Empty(t, encontradas)
}

func TestPistaService_Creador(t *testing.T) {
	db := setupTestDB(t)
	service := NewPistaService(db)
	crearAdminDePrueba(t, db, "alice")

	pista, err := service.Crear("Laberinto", "{}", "alice")
	require.NoError(t, err)

	creador := service.Creador(pista)
	require.NotNil(t, creador)
	assert.Equal(t, "alice", creador.Username)

	sinCreador := crearPistaDePrueba(t, db, "Anonima", true)
	assert.Nil(t, service.Creador(sinCreador))
}
