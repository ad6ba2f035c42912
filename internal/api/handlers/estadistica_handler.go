package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/umg-robotica/pistas-backend/internal/models"
	"github.com/umg-robotica/pistas-backend/internal/services"
)

type EstadisticaHandler struct {
	service *services.EstadisticaService
}

func NewEstadisticaHandler(db *gorm.DB) *EstadisticaHandler {
	return &EstadisticaHandler{service: services.NewEstadisticaService(db)}
}

// Resumen handles GET /api/estadisticas/resumen
func (h *EstadisticaHandler) Resumen(c *gin.Context) {
	resumen, err := h.service.ObtenerResumen()
	if err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}
	respond(c, http.StatusOK, "Resumen obtenido", resumen)
}

// Hoy handles GET /api/estadisticas/hoy
func (h *EstadisticaHandler) Hoy(c *gin.Context) {
	filas, err := h.service.Hoy()
	if err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}
	respond(c, http.StatusOK, "Estadísticas de hoy obtenidas", filas)
}

// PorPista handles GET /api/estadisticas/pista/:pistaId
func (h *EstadisticaHandler) PorPista(c *gin.Context) {
	pistaID, err := strconv.ParseUint(c.Param("pistaId"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "ID inválido")
		return
	}

	filas, err := h.service.PorPista(uint(pistaID))
	if err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}
	respond(c, http.StatusOK, "Estadísticas obtenidas", filas)
}

// PorRango handles GET /api/estadisticas/rango?fechaInicio=&fechaFin=
// with YYYY-MM-DD bounds, inclusive.
func (h *EstadisticaHandler) PorRango(c *gin.Context) {
	desde, okDesde := parseFecha(c.Query("fechaInicio"))
	hasta, okHasta := parseFecha(c.Query("fechaFin"))
	if !okDesde || !okHasta {
		respondError(c, http.StatusBadRequest, "fechaInicio y fechaFin deben tener formato YYYY-MM-DD")
		return
	}

	filas, err := h.service.PorRango(desde, hasta)
	if err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}
	respond(c, http.StatusOK, "Estadísticas obtenidas", filas)
}

// ResumenPorPista handles GET /api/estadisticas/por-pista
func (h *EstadisticaHandler) ResumenPorPista(c *gin.Context) {
	filas, err := h.service.ResumenPorPista()
	if err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}
	respond(c, http.StatusOK, "Resumen por pista obtenido", filas)
}

// MasVisitadas handles GET /api/estadisticas/mas-visitadas?limite=
func (h *EstadisticaHandler) MasVisitadas(c *gin.Context) {
	filas, err := h.service.MasVisitadas(parseLimite(c, 10))
	if err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}
	respond(c, http.StatusOK, "Pistas más visitadas obtenidas", filas)
}

// MejorTasaExito handles GET /api/estadisticas/mejor-tasa-exito?limite=
func (h *EstadisticaHandler) MejorTasaExito(c *gin.Context) {
	filas, err := h.service.MejorTasaExito(parseLimite(c, 10))
	if err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}
	respond(c, http.StatusOK, "Pistas con mejor tasa de éxito obtenidas", filas)
}

func parseFecha(raw string) (string, bool) {
	if _, err := time.Parse(models.FechaLayout, raw); err != nil {
		return "", false
	}
	return raw, true
}

func parseLimite(c *gin.Context, fallback int) int {
	raw := c.Query("limite")
	if raw == "" {
		return fallback
	}
	limite, err := strconv.Atoi(raw)
	if err != nil || limite <= 0 {
		return fallback
	}
	return limite
}
