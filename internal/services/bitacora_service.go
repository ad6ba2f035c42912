package services

import (
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/umg-robotica/pistas-backend/internal/logger"
	"github.com/umg-robotica/pistas-backend/internal/models"
)

// BitacoraService owns the append-only audit log. Writes never fail the
// calling operation: an unresolvable actor is recorded with a nil
// administrator reference and storage errors are logged and swallowed.
type BitacoraService struct {
	db *gorm.DB
}

func NewBitacoraService(db *gorm.DB) *BitacoraService {
	return &BitacoraService{db: db}
}

// RegistrarAccion appends one audit entry. The username is resolved to an
// administrator id when possible; FechaHora is set exactly once, here.
func (s *BitacoraService) RegistrarAccion(username, accion, descripcion, ipAddress string) {
	var adminID *uint
	if username != "" {
		var admin models.Administrador
		if err := s.db.Where("username = ?", username).First(&admin).Error; err == nil {
			adminID = &admin.ID
		}
	}

	entrada := models.Bitacora{
		AdministradorID: adminID,
		Accion:          accion,
		Descripcion:     descripcion,
		FechaHora:       time.Now(),
		IPAddress:       ipAddress,
	}
	if err := s.db.Create(&entrada).Error; err != nil {
		logger.WithFields(map[string]interface{}{
			"accion":   accion,
			"username": username,
		}).WithError(err).Error("failed to write bitacora entry")
	}
}

// Todas returns every audit entry, newest first.
func (s *BitacoraService) Todas() ([]models.Bitacora, error) {
	var entradas []models.Bitacora
	if err := s.db.Order("fecha_hora DESC").Find(&entradas).Error; err != nil {
		return nil, err
	}
	return entradas, nil
}

// Ultimas returns the most recent limite entries.
func (s *BitacoraService) Ultimas(limite int) ([]models.Bitacora, error) {
	var entradas []models.Bitacora
	if err := s.db.Order("fecha_hora DESC").Limit(limite).Find(&entradas).Error; err != nil {
		return nil, err
	}
	return entradas, nil
}

// PorAdministrador returns the entries recorded for one administrator.
func (s *BitacoraService) PorAdministrador(adminID uint) ([]models.Bitacora, error) {
	var entradas []models.Bitacora
	if err := s.db.Where("administrador_id = ?", adminID).
		Order("fecha_hora DESC").Find(&entradas).Error; err != nil {
		return nil, err
	}
	return entradas, nil
}

// PorAccion filters entries by action tag.
func (s *BitacoraService) PorAccion(accion string) ([]models.Bitacora, error) {
	var entradas []models.Bitacora
	if err := s.db.Where("accion = ?", accion).
		Order("fecha_hora DESC").Find(&entradas).Error; err != nil {
		return nil, err
	}
	return entradas, nil
}

// PorRango returns entries with FechaHora inside [desde, hasta].
func (s *BitacoraService) PorRango(desde, hasta time.Time) ([]models.Bitacora, error) {
	var entradas []models.Bitacora
	if err := s.db.Where("fecha_hora BETWEEN ? AND ?", desde, hasta).
		Order("fecha_hora DESC").Find(&entradas).Error; err != nil {
		return nil, err
	}
	return entradas, nil
}

// BuscarPorDescripcion does a case-insensitive substring search over the
// free-text description.
func (s *BitacoraService) BuscarPorDescripcion(texto string) ([]models.Bitacora, error) {
	var entradas []models.Bitacora
	if err := s.db.Where("LOWER(descripcion) LIKE ?", "%"+strings.ToLower(texto)+"%").
		Order("fecha_hora DESC").Find(&entradas).Error; err != nil {
		return nil, err
	}
	return entradas, nil
}

// ConteoAccion is one row of the grouped count-by-action report.
type ConteoAccion struct {
	Accion string `json:"accion"`
	Total  int64  `json:"total"`
}

// ConteoPorAccion groups entries by action tag, most frequent first.
func (s *BitacoraService) ConteoPorAccion() ([]ConteoAccion, error) {
	var conteos []ConteoAccion
	if err := s.db.Model(&models.Bitacora{}).
		Select("accion, COUNT(*) AS total").
		Group("accion").
		Order("total DESC").
		Scan(&conteos).Error; err != nil {
		return nil, err
	}
	return conteos, nil
}
