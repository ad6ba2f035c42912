package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umg-robotica/pistas-backend/internal/config"
	"github.com/umg-robotica/pistas-backend/internal/models"
)

func testConfig() config.Config {
	return config.Config{JWTSecret: "test-secret", TokenTTL: time.Hour}
}

func TestAuthService_Register(t *testing.T) {
	db := setupTestDB(t)
	service := NewAuthService(db, testConfig())

	token, admin, err := service.Register("alice", "password123", "Alice", "alice@robot.edu", "127.0.0.1")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, admin.Activo)
	assert.NotEmpty(t, admin.PasswordHash)
	assert.NotEqual(t, "password123", admin.PasswordHash)

	// Registration writes one REGISTRO entry.
	var entradas []models.Bitacora
	require.NoError(t, db.Where("accion = ?", models.AccionRegistro).Find(&entradas).Error)
	assert.Len(t, entradas, 1)

	// Duplicate username, even against the same account.
	_, _, err = service.Register("alice", "otherpass", "Alicia", "alicia@robot.edu", "")
	assert.ErrorIs(t, err, ErrUsernameEnUso)

	// Duplicate email.
	_, _, err = service.Register("alicia", "otherpass", "Alicia", "alice@robot.edu", "")
	assert.ErrorIs(t, err, ErrEmailEnUso)
}

func TestAuthService_Register_RechazaInactivos(t *testing.T) {
	db := setupTestDB(t)
	service := NewAuthService(db, testConfig())

	admin := crearAdminDePrueba(t, db, "bob")
	admin.Activo = false
	require.NoError(t, db.Save(admin).Error)

	// Uniqueness covers inactive accounts too.
	_, _, err := service.Register("bob", "password123", "Bob", "bob2@robot.edu", "")
	assert.ErrorIs(t, err, ErrUsernameEnUso)
}

func TestAuthService_Login(t *testing.T) {
	db := setupTestDB(t)
	service := NewAuthService(db, testConfig())
	crearAdminDePrueba(t, db, "alice")

	token, admin, err := service.Login("alice", "password123", "10.0.0.1")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "alice", admin.Username)

	var entrada models.Bitacora
	require.NoError(t, db.Where("accion = ?", models.AccionLogin).First(&entrada).Error)
	assert.Equal(t, "10.0.0.1", entrada.IPAddress)
	require.NotNil(t, entrada.AdministradorID)
	assert.Equal(t, admin.ID, *entrada.AdministradorID)
}

func TestAuthService_Login_CredencialesInvalidas(t *testing.T) {
	db := setupTestDB(t)
	service := NewAuthService(db, testConfig())
	admin := crearAdminDePrueba(t, db, "alice")

	// Wrong password.
	_, _, err := service.Login("alice", "wrongpass", "10.0.0.1")
	assert.ErrorIs(t, err, ErrCredencialesInvalidas)

	// Unknown username: the failed attempt is still audited, with a nil
	// actor reference.
	_, _, err = service.Login("nadie", "password123", "10.0.0.2")
	assert.ErrorIs(t, err, ErrCredencialesInvalidas)

	// Inactive account.
	admin.Activo = false
	require.NoError(t, db.Save(admin).Error)
	_, _, err = service.Login("alice", "password123", "10.0.0.1")
	assert.ErrorIs(t, err, ErrCredencialesInvalidas)

	var entradas []models.Bitacora
	require.NoError(t, db.Where("accion = ?", models.AccionLoginFallido).
		Order("id").Find(&entradas).Error)
	require.Len(t, entradas, 3)
	assert.Nil(t, entradas[1].AdministradorID)
}

func TestAuthService_Tokens(t *testing.T) {
	db := setupTestDB(t)
	service := NewAuthService(db, testConfig())

	token, err := service.GenerateToken("alice")
	require.NoError(t, err)

	subject, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", subject)

	assert.True(t, service.TokenEsValido(token, "alice"))
	assert.False(t, service.TokenEsValido(token, "bob"))
	assert.False(t, service.TokenEsValido("not-a-token", "alice"))
	assert.False(t, service.TokenEsValido("", "alice"))

	// A token signed with a different secret does not verify.
	otro := NewAuthService(db, config.Config{JWTSecret: "other-secret", TokenTTL: time.Hour})
	ajeno, err := otro.GenerateToken("alice")
	require.NoError(t, err)
	assert.False(t, service.TokenEsValido(ajeno, "alice"))
}

func TestAuthService_TokenExpirado(t *testing.T) {
	db := setupTestDB(t)
	service := NewAuthService(db, config.Config{JWTSecret: "test-secret", TokenTTL: -time.Minute})

	token, err := service.GenerateToken("alice")
	require.NoError(t, err)

	_, err = service.ValidateToken(token)
	assert.Error(t, err)
	assert.False(t, service.TokenEsValido(token, "alice"))
}
