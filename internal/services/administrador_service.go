package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/umg-robotica/pistas-backend/internal/logger"
	"github.com/umg-robotica/pistas-backend/internal/models"
)

var ErrAdministradorNoEncontrado = errors.New("administrador no encontrado")

// Default credentials created on an empty database. Meant to be changed
// immediately after first login.
const (
	defaultAdminUsername = "admin"
	defaultAdminPassword = "admin123"
)

// AdministradorService owns administrator CRUD. Accounts are only ever
// soft-deactivated; username and email stay unique across active and
// inactive accounts.
type AdministradorService struct {
	db       *gorm.DB
	bitacora *BitacoraService
}

func NewAdministradorService(db *gorm.DB) *AdministradorService {
	return &AdministradorService{db: db, bitacora: NewBitacoraService(db)}
}

// EnsureDefaultAdmin creates the bootstrap administrator when the store
// holds zero administrators. Idempotent; called once at process start.
func (s *AdministradorService) EnsureDefaultAdmin() error {
	var count int64
	if err := s.db.Model(&models.Administrador{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	admin := models.Administrador{
		Username: defaultAdminUsername,
		Nombre:   "Administrador Principal",
		Email:    "admin@robot.edu",
		Activo:   true,
	}
	if err := admin.SetPassword(defaultAdminPassword); err != nil {
		return err
	}
	if err := s.db.Create(&admin).Error; err != nil {
		return err
	}

	logger.WithFields(map[string]interface{}{
		"username": defaultAdminUsername,
	}).Warn("created default administrator, change the password immediately")
	return nil
}

// Activos returns all active administrators.
func (s *AdministradorService) Activos() ([]models.Administrador, error) {
	var admins []models.Administrador
	if err := s.db.Where("activo = ?", true).Find(&admins).Error; err != nil {
		return nil, err
	}
	return admins, nil
}

// Todos returns every administrator, active or not.
func (s *AdministradorService) Todos() ([]models.Administrador, error) {
	var admins []models.Administrador
	if err := s.db.Find(&admins).Error; err != nil {
		return nil, err
	}
	return admins, nil
}

// PorID retrieves one administrator.
func (s *AdministradorService) PorID(id uint) (*models.Administrador, error) {
	var admin models.Administrador
	if err := s.db.First(&admin, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdministradorNoEncontrado
		}
		return nil, err
	}
	return &admin, nil
}

// PorUsername retrieves one administrator by username.
func (s *AdministradorService) PorUsername(username string) (*models.Administrador, error) {
	var admin models.Administrador
	if err := s.db.Where("username = ?", username).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdministradorNoEncontrado
		}
		return nil, err
	}
	return &admin, nil
}

// Crear registers a new administrator with a hashed password.
func (s *AdministradorService) Crear(username, password, nombre, email, actingUsername string) (*models.Administrador, error) {
	var count int64
	if err := s.db.Model(&models.Administrador{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrUsernameEnUso
	}
	if err := s.db.Model(&models.Administrador{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrEmailEnUso
	}

	admin := models.Administrador{
		Username: username,
		Nombre:   nombre,
		Email:    email,
		Activo:   true,
	}
	if err := admin.SetPassword(password); err != nil {
		return nil, err
	}
	if err := s.db.Create(&admin).Error; err != nil {
		return nil, err
	}

	if actingUsername != "" {
		s.bitacora.RegistrarAccion(actingUsername, models.AccionCrearAdmin,
			"Administrador creado: "+admin.Username, "")
	}
	return &admin, nil
}

// Actualizar rewrites profile fields and, when activo is non-nil, the
// lifecycle state. Uniqueness is re-checked only for fields that changed.
func (s *AdministradorService) Actualizar(id uint, username, nombre, email string, activo *bool, actingUsername string) (*models.Administrador, error) {
	admin, err := s.PorID(id)
	if err != nil {
		return nil, err
	}

	var count int64
	if admin.Username != username {
		if err := s.db.Model(&models.Administrador{}).
			Where("username = ? AND id <> ?", username, id).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrUsernameEnUso
		}
	}
	if admin.Email != email {
		if err := s.db.Model(&models.Administrador{}).
			Where("email = ? AND id <> ?", email, id).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrEmailEnUso
		}
	}

	admin.Username = username
	admin.Nombre = nombre
	admin.Email = email
	if activo != nil {
		admin.Activo = *activo
	}
	if err := s.db.Save(admin).Error; err != nil {
		return nil, err
	}

	if actingUsername != "" {
		s.bitacora.RegistrarAccion(actingUsername, models.AccionActualizarAdmin,
			"Administrador actualizado: "+admin.Username, "")
	}
	return admin, nil
}

// CambiarPassword replaces the stored hash.
func (s *AdministradorService) CambiarPassword(id uint, nuevaPassword, actingUsername string) error {
	admin, err := s.PorID(id)
	if err != nil {
		return err
	}

	if err := admin.SetPassword(nuevaPassword); err != nil {
		return err
	}
	if err := s.db.Save(admin).Error; err != nil {
		return err
	}

	if actingUsername != "" {
		s.bitacora.RegistrarAccion(actingUsername, models.AccionCambiarPassword,
			"Contraseña cambiada para: "+admin.Username, "")
	}
	return nil
}

// Eliminar soft-deactivates an administrator; the record is never removed.
func (s *AdministradorService) Eliminar(id uint, actingUsername string) error {
	admin, err := s.PorID(id)
	if err != nil {
		return err
	}

	admin.Activo = false
	if err := s.db.Save(admin).Error; err != nil {
		return err
	}

	if actingUsername != "" {
		s.bitacora.RegistrarAccion(actingUsername, models.AccionEliminarAdmin,
			"Administrador desactivado: "+admin.Username, "")
	}
	return nil
}

// BuscarPorNombre does a case-insensitive substring match on the display
// name.
func (s *AdministradorService) BuscarPorNombre(nombre string) ([]models.Administrador, error) {
	var admins []models.Administrador
	if err := s.db.Where("LOWER(nombre) LIKE ?", "%"+strings.ToLower(nombre)+"%").
		Find(&admins).Error; err != nil {
		return nil, err
	}
	return admins, nil
}
