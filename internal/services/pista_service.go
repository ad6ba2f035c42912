package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/umg-robotica/pistas-backend/internal/models"
)

var (
	ErrPistaNoEncontrada = errors.New("pista no encontrada")
	ErrNombrePistaEnUso  = errors.New("ya existe una pista con ese nombre")
	ErrSinPistasActivas  = errors.New("no hay pistas activas disponibles")
)

// PistaService owns the pista lifecycle: active/inactive soft state, a
// destructive hard delete kept off the default routing, and the random
// pick the game client calls on every session start. Every mutation with
// a non-empty acting username appends exactly one bitácora entry.
type PistaService struct {
	db       *gorm.DB
	bitacora *BitacoraService
}

func NewPistaService(db *gorm.DB) *PistaService {
	return &PistaService{db: db, bitacora: NewBitacoraService(db)}
}

// Aleatoria picks one active pista uniformly at random. Selection happens
// inside the store (ORDER BY RANDOM() LIMIT 1) so the hot path stays a
// single query.
func (s *PistaService) Aleatoria() (*models.Pista, error) {
	var pista models.Pista
	err := s.db.Where("activa = ?", true).Order("RANDOM()").First(&pista).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSinPistasActivas
		}
		return nil, err
	}
	return &pista, nil
}

// Activas returns all active pistas.
func (s *PistaService) Activas() ([]models.Pista, error) {
	var pistas []models.Pista
	if err := s.db.Where("activa = ?", true).Find(&pistas).Error; err != nil {
		return nil, err
	}
	return pistas, nil
}

// Todas returns every pista, active or not.
func (s *PistaService) Todas() ([]models.Pista, error) {
	var pistas []models.Pista
	if err := s.db.Find(&pistas).Error; err != nil {
		return nil, err
	}
	return pistas, nil
}

// PorID retrieves one pista. Soft-deleted pistas remain retrievable.
func (s *PistaService) PorID(id uint) (*models.Pista, error) {
	var pista models.Pista
	if err := s.db.First(&pista, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPistaNoEncontrada
		}
		return nil, err
	}
	return &pista, nil
}

// Crear registers a new active pista. Name uniqueness is global across
// active and inactive pistas. The creator reference stays nil when the
// username does not resolve to an administrator.
func (s *PistaService) Crear(nombre, configuracionJSON, actingUsername string) (*models.Pista, error) {
	var count int64
	if err := s.db.Model(&models.Pista{}).Where("nombre = ?", nombre).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrNombrePistaEnUso
	}

	pista := models.Pista{
		Nombre:            nombre,
		ConfiguracionJSON: configuracionJSON,
		Activa:            true,
	}
	if actingUsername != "" {
		var admin models.Administrador
		if err := s.db.Where("username = ?", actingUsername).First(&admin).Error; err == nil {
			pista.CreadoPorID = &admin.ID
		}
	}
	if err := s.db.Create(&pista).Error; err != nil {
		return nil, err
	}

	if actingUsername != "" {
		s.bitacora.RegistrarAccion(actingUsername, models.AccionCrearPista,
			"Pista creada: "+pista.Nombre, "")
	}
	return &pista, nil
}

// Actualizar rewrites name and configuration and, when activa is non-nil,
// the lifecycle state. UpdatedAt is refreshed on every successful update
// regardless of which fields changed.
func (s *PistaService) Actualizar(id uint, nombre, configuracionJSON string, activa *bool, actingUsername string) (*models.Pista, error) {
	pista, err := s.PorID(id)
	if err != nil {
		return nil, err
	}

	if pista.Nombre != nombre {
		var count int64
		if err := s.db.Model(&models.Pista{}).
			Where("nombre = ? AND id <> ?", nombre, id).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrNombrePistaEnUso
		}
	}

	pista.Nombre = nombre
	pista.ConfiguracionJSON = configuracionJSON
	if activa != nil {
		pista.Activa = *activa
	}
	if err := s.db.Save(pista).Error; err != nil {
		return nil, err
	}

	if actingUsername != "" {
		s.bitacora.RegistrarAccion(actingUsername, models.AccionActualizarPista,
			"Pista actualizada: "+pista.Nombre, "")
	}
	return pista, nil
}

// Eliminar soft-deletes a pista. Idempotent: deactivating an inactive
// pista succeeds.
func (s *PistaService) Eliminar(id uint, actingUsername string) error {
	pista, err := s.PorID(id)
	if err != nil {
		return err
	}

	pista.Activa = false
	if err := s.db.Save(pista).Error; err != nil {
		return err
	}

	if actingUsername != "" {
		s.bitacora.RegistrarAccion(actingUsername, models.AccionEliminarPista,
			"Pista eliminada (desactivada): "+pista.Nombre, "")
	}
	return nil
}

// EliminarDefinitivamente removes the pista from the store entirely. This
// is the destructive escape hatch and is not exposed by default routing.
func (s *PistaService) EliminarDefinitivamente(id uint, actingUsername string) error {
	pista, err := s.PorID(id)
	if err != nil {
		return err
	}

	nombre := pista.Nombre
	if err := s.db.Delete(&models.Pista{}, id).Error; err != nil {
		return err
	}

	if actingUsername != "" {
		s.bitacora.RegistrarAccion(actingUsername, models.AccionEliminarPistaDef,
			"Pista eliminada permanentemente: "+nombre, "")
	}
	return nil
}

// BuscarPorNombre does a case-insensitive substring match.
func (s *PistaService) BuscarPorNombre(nombre string) ([]models.Pista, error) {
	var pistas []models.Pista
	if err := s.db.Where("LOWER(nombre) LIKE ?", "%"+strings.ToLower(nombre)+"%").
		Find(&pistas).Error; err != nil {
		return nil, err
	}
	return pistas, nil
}

// ContarActivas counts the pistas currently in the active set.
func (s *PistaService) ContarActivas() (int64, error) {
	var count int64
	err := s.db.Model(&models.Pista{}).Where("activa = ?", true).Count(&count).Error
	return count, err
}

// Creador resolves the explicit creator FK. Returns nil without error when
// the pista has no creator or the administrator no longer resolves.
func (s *PistaService) Creador(pista *models.Pista) *models.Administrador {
	if pista.CreadoPorID == nil {
		return nil
	}
	var admin models.Administrador
	if err := s.db.First(&admin, *pista.CreadoPorID).Error; err != nil {
		return nil
	}
	return &admin
}
