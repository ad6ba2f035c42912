package services

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/umg-robotica/pistas-backend/internal/metrics"
	"github.com/umg-robotica/pistas-backend/internal/models"
)

// EstadisticaService maintains the per-(pista, day) counters. Increments
// must survive concurrent game clients hitting the same pista on the same
// day, so both paths are atomic in the store: a single UPDATE when the row
// exists, and an INSERT .. ON CONFLICT DO UPDATE when it does not. The
// (pista_id, fecha) unique index serializes racing creators.
type EstadisticaService struct {
	db *gorm.DB
}

func NewEstadisticaService(db *gorm.DB) *EstadisticaService {
	return &EstadisticaService{db: db}
}

// RegistrarVisita counts one visit for the pista today.
func (s *EstadisticaService) RegistrarVisita(pistaID uint) error {
	return s.incrementar(pistaID, "total_visitas", metrics.IncVisita)
}

// RegistrarExito counts one successful completion for the pista today.
func (s *EstadisticaService) RegistrarExito(pistaID uint) error {
	return s.incrementar(pistaID, "completaciones_exitosas", metrics.IncExito)
}

// RegistrarFallo counts one failed completion for the pista today.
func (s *EstadisticaService) RegistrarFallo(pistaID uint) error {
	return s.incrementar(pistaID, "completaciones_fallidas", metrics.IncFallo)
}

// incrementar bumps one counter for (pistaID, today). The pista existence
// check runs only on the creation path; once a row exists the increment is
// a single UPDATE that cannot fail for a missing pista.
func (s *EstadisticaService) incrementar(pistaID uint, columna string, bump func()) error {
	hoy := time.Now().Format(models.FechaLayout)

	res := s.db.Model(&models.Estadistica{}).
		Where("pista_id = ? AND fecha = ?", pistaID, hoy).
		UpdateColumn(columna, gorm.Expr(columna+" + 1"))
	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		var count int64
		if err := s.db.Model(&models.Pista{}).Where("id = ?", pistaID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrPistaNoEncontrada
		}

		stat := models.Estadistica{PistaID: pistaID, Fecha: hoy}
		switch columna {
		case "total_visitas":
			stat.TotalVisitas = 1
		case "completaciones_exitosas":
			stat.Exitos = 1
		case "completaciones_fallidas":
			stat.Fallos = 1
		}
		// A concurrent creator may have won the race since the UPDATE
		// above; the conflict clause folds this insert into an increment.
		if err := s.db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "pista_id"}, {Name: "fecha"}},
			DoUpdates: clause.Assignments(map[string]interface{}{columna: gorm.Expr(columna + " + 1")}),
		}).Create(&stat).Error; err != nil {
			return err
		}
	}

	bump()
	return nil
}

// Resumen is the global statistics summary across all rows ever created.
type Resumen struct {
	TotalVisitas          int64   `json:"total_visitas"`
	TotalExitos           int64   `json:"total_exitos"`
	TotalFallos           int64   `json:"total_fallos"`
	TotalPistasActivas    int64   `json:"total_pistas_activas"`
	TotalAdministradores  int64   `json:"total_administradores"`
	PorcentajeExitoGlobal float64 `json:"porcentaje_exito_global"`
}

// ObtenerResumen aggregates all counters plus the active pista and
// administrator counts.
func (s *EstadisticaService) ObtenerResumen() (*Resumen, error) {
	var sums struct {
		Visitas int64
		Exitos  int64
		Fallos  int64
	}
	if err := s.db.Model(&models.Estadistica{}).
		Select("COALESCE(SUM(total_visitas), 0) AS visitas, " +
			"COALESCE(SUM(completaciones_exitosas), 0) AS exitos, " +
			"COALESCE(SUM(completaciones_fallidas), 0) AS fallos").
		Scan(&sums).Error; err != nil {
		return nil, err
	}

	var pistasActivas, adminsActivos int64
	if err := s.db.Model(&models.Pista{}).Where("activa = ?", true).Count(&pistasActivas).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Administrador{}).Where("activo = ?", true).Count(&adminsActivos).Error; err != nil {
		return nil, err
	}

	return &Resumen{
		TotalVisitas:          sums.Visitas,
		TotalExitos:           sums.Exitos,
		TotalFallos:           sums.Fallos,
		TotalPistasActivas:    pistasActivas,
		TotalAdministradores:  adminsActivos,
		PorcentajeExitoGlobal: models.TasaExito(sums.Exitos, sums.Fallos),
	}, nil
}

// EstadisticaDiaria is one daily counter row joined with the pista name.
type EstadisticaDiaria struct {
	ID              uint    `json:"id"`
	PistaID         uint    `json:"pista_id"`
	PistaNombre     string  `json:"pista_nombre"`
	Fecha           string  `json:"fecha"`
	TotalVisitas    int64   `json:"total_visitas"`
	Exitos          int64   `json:"completaciones_exitosas"`
	Fallos          int64   `json:"completaciones_fallidas"`
	PorcentajeExito float64 `json:"porcentaje_exito"`
}

// PorPista returns every daily row of one pista, newest day first.
func (s *EstadisticaService) PorPista(pistaID uint) ([]EstadisticaDiaria, error) {
	return s.diarias("estadisticas.pista_id = ?", pistaID)
}

// PorRango returns the rows inside [desde, hasta], both YYYY-MM-DD.
func (s *EstadisticaService) PorRango(desde, hasta string) ([]EstadisticaDiaria, error) {
	return s.diarias("estadisticas.fecha BETWEEN ? AND ?", desde, hasta)
}

// Hoy returns the rows of the current server-local day.
func (s *EstadisticaService) Hoy() ([]EstadisticaDiaria, error) {
	return s.diarias("estadisticas.fecha = ?", time.Now().Format(models.FechaLayout))
}

func (s *EstadisticaService) diarias(cond string, args ...interface{}) ([]EstadisticaDiaria, error) {
	var filas []EstadisticaDiaria
	if err := s.db.Model(&models.Estadistica{}).
		Select("estadisticas.id, estadisticas.pista_id, pistas.nombre AS pista_nombre, "+
			"estadisticas.fecha, estadisticas.total_visitas, "+
			"estadisticas.completaciones_exitosas AS exitos, "+
			"estadisticas.completaciones_fallidas AS fallos").
		Joins("JOIN pistas ON pistas.id = estadisticas.pista_id").
		Where(cond, args...).
		Order("estadisticas.fecha DESC").
		Scan(&filas).Error; err != nil {
		return nil, err
	}
	for i := range filas {
		filas[i].PorcentajeExito = models.TasaExito(filas[i].Exitos, filas[i].Fallos)
	}
	return filas, nil
}

// ResumenPista aggregates one pista's counters across all days.
type ResumenPista struct {
	PistaID         uint    `json:"pista_id"`
	PistaNombre     string  `json:"pista_nombre"`
	TotalVisitas    int64   `json:"total_visitas"`
	Exitos          int64   `json:"completaciones_exitosas"`
	Fallos          int64   `json:"completaciones_fallidas"`
	PorcentajeExito float64 `json:"porcentaje_exito"`
}

// ResumenPorPista returns per-pista lifetime totals, most visited first.
// Pistas without any recorded events appear with zeroed counters.
func (s *EstadisticaService) ResumenPorPista() ([]ResumenPista, error) {
	return s.agregadoPorPista("total_visitas DESC, pistas.id ASC", 0)
}

// MasVisitadas returns the limite most visited pistas. Ties break on
// pista id ascending so the ranking is deterministic.
func (s *EstadisticaService) MasVisitadas(limite int) ([]ResumenPista, error) {
	return s.agregadoPorPista("total_visitas DESC, pistas.id ASC", limite)
}

// MejorTasaExito ranks pistas by lifetime success percentage, same
// deterministic tiebreak as MasVisitadas.
func (s *EstadisticaService) MejorTasaExito(limite int) ([]ResumenPista, error) {
	filas, err := s.agregadoPorPista(
		"CASE WHEN (exitos + fallos) > 0 THEN (exitos * 100.0) / (exitos + fallos) ELSE 0 END DESC, pistas.id ASC",
		limite)
	if err != nil {
		return nil, err
	}
	return filas, nil
}

func (s *EstadisticaService) agregadoPorPista(orden string, limite int) ([]ResumenPista, error) {
	var filas []ResumenPista
	q := s.db.Model(&models.Pista{}).
		Select("pistas.id AS pista_id, pistas.nombre AS pista_nombre, " +
			"COALESCE(SUM(estadisticas.total_visitas), 0) AS total_visitas, " +
			"COALESCE(SUM(estadisticas.completaciones_exitosas), 0) AS exitos, " +
			"COALESCE(SUM(estadisticas.completaciones_fallidas), 0) AS fallos").
		Joins("LEFT JOIN estadisticas ON estadisticas.pista_id = pistas.id").
		Group("pistas.id, pistas.nombre").
		Order(orden)
	if limite > 0 {
		q = q.Limit(limite)
	}
	if err := q.Scan(&filas).Error; err != nil {
		return nil, err
	}
	for i := range filas {
		filas[i].PorcentajeExito = models.TasaExito(filas[i].Exitos, filas[i].Fallos)
	}
	return filas, nil
}

// TotalesDelDia sums the three counters for one calendar day. Used by the
// nightly summary job.
func (s *EstadisticaService) TotalesDelDia(fecha string) (visitas, exitos, fallos int64, err error) {
	var sums struct {
		Visitas int64
		Exitos  int64
		Fallos  int64
	}
	err = s.db.Model(&models.Estadistica{}).
		Select("COALESCE(SUM(total_visitas), 0) AS visitas, "+
			"COALESCE(SUM(completaciones_exitosas), 0) AS exitos, "+
			"COALESCE(SUM(completaciones_fallidas), 0) AS fallos").
		Where("fecha = ?", fecha).
		Scan(&sums).Error
	return sums.Visitas, sums.Exitos, sums.Fallos, err
}
