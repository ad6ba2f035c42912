package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/umg-robotica/pistas-backend/internal/services"
)

type BitacoraHandler struct {
	service *services.BitacoraService
}

func NewBitacoraHandler(db *gorm.DB) *BitacoraHandler {
	return &BitacoraHandler{service: services.NewBitacoraService(db)}
}

// Todas handles GET /api/bitacora
func (h *BitacoraHandler) Todas(c *gin.Context) {
	entradas, err := h.service.Todas()
	if err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}
	respond(c, http.StatusOK, "Bitácora obtenida", entradas)
}

// Ultimas handles GET /api/bitacora/ultimas?limite=
func (h *BitacoraHandler) Ultimas(c *gin.Context) {
	entradas, err := h.service.Ultimas(parseLimite(c, 50))
	if err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}
	respond(c, http.StatusOK, "Últimas entradas obtenidas", entradas)
}

// PorAdministrador handles GET /api/bitacora/administrador/:administradorId
func (h *BitacoraHandler) PorAdministrador(c *gin.Context) {
	adminID, err := strconv.ParseUint(c.Param("administradorId"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "ID inválido")
		return
	}

	entradas, err := h.service.PorAdministrador(uint(adminID))
	if err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}
	respond(c, http.StatusOK, "Bitácora del administrador obtenida", entradas)
}

// PorAccion handles GET /api/bitacora/accion/:accion
func (h *BitacoraHandler) PorAccion(c *gin.Context) {
	entradas, err := h.service.PorAccion(c.Param("accion"))
	if err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}
	respond(c, http.StatusOK, "Bitácora por acción obtenida", entradas)
}

// PorRango handles GET /api/bitacora/rango?fechaInicio=&fechaFin= with
// RFC 3339 timestamps.
func (h *BitacoraHandler) PorRango(c *gin.Context) {
	desde, errDesde := time.Parse(time.RFC3339, c.Query("fechaInicio"))
	hasta, errHasta := time.Parse(time.RFC3339, c.Query("fechaFin"))
	if errDesde != nil || errHasta != nil {
		respondError(c, http.StatusBadRequest, "fechaInicio y fechaFin deben tener formato RFC 3339")
		return
	}

	entradas, err := h.service.PorRango(desde, hasta)
	if err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}
	respond(c, http.StatusOK, "Bitácora por rango obtenida", entradas)
}

// Buscar handles GET /api/bitacora/buscar?texto=
func (h *BitacoraHandler) Buscar(c *gin.Context) {
	texto := c.Query("texto")
	if texto == "" {
		respondError(c, http.StatusBadRequest, "el parámetro texto es obligatorio")
		return
	}

	entradas, err := h.service.BuscarPorDescripcion(texto)
	if err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}
	respond(c, http.StatusOK, "Búsqueda completada", entradas)
}

// Estadisticas handles GET /api/bitacora/estadisticas, the grouped
// count-by-action report ordered by descending count.
func (h *BitacoraHandler) Estadisticas(c *gin.Context) {
	conteos, err := h.service.ConteoPorAccion()
	if err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}
	respond(c, http.StatusOK, "Estadísticas de acciones obtenidas", conteos)
}
