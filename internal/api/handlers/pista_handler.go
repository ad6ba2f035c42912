package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/umg-robotica/pistas-backend/internal/api/middleware"
	"github.com/umg-robotica/pistas-backend/internal/models"
	"github.com/umg-robotica/pistas-backend/internal/services"
)

type PistaHandler struct {
	service      *services.PistaService
	estadisticas *services.EstadisticaService
}

func NewPistaHandler(db *gorm.DB) *PistaHandler {
	return &PistaHandler{
		service:      services.NewPistaService(db),
		estadisticas: services.NewEstadisticaService(db),
	}
}

// PistaResponse mirrors the persisted pista with the creator resolved to a
// display name.
type PistaResponse struct {
	ID                uint      `json:"id"`
	Nombre            string    `json:"nombre"`
	ConfiguracionJSON string    `json:"configuracion_json"`
	CreadoPor         string    `json:"creado_por,omitempty"`
	Activa            bool      `json:"activa"`
	FechaCreacion     time.Time `json:"fecha_creacion"`
	FechaModificacion time.Time `json:"fecha_modificacion"`
}

type CrearPistaRequest struct {
	Nombre            string `json:"nombre" binding:"required,max=100"`
	ConfiguracionJSON string `json:"configuracion_json" binding:"required"`
}

type ActualizarPistaRequest struct {
	Nombre            string `json:"nombre" binding:"required,max=100"`
	ConfiguracionJSON string `json:"configuracion_json" binding:"required"`
	Activa            *bool  `json:"activa"`
}

// Aleatoria handles GET /api/pistas/aleatoria. The game client calls this
// on every session start; the returned pista implicitly counts one visit.
func (h *PistaHandler) Aleatoria(c *gin.Context) {
	pista, err := h.service.Aleatoria()
	if err != nil {
		if errors.Is(err, services.ErrSinPistasActivas) {
			respondError(c, http.StatusNotFound, err.Error())
			return
		}
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	if err := h.estadisticas.RegistrarVisita(pista.ID); err != nil {
		// A lost visit must not break the game session.
		middleware.GetRequestLogger(c).WithError(err).Warn("failed to record visit")
	}

	respond(c, http.StatusOK, "Pista obtenida", h.toResponse(pista))
}

// RegistrarExito handles POST /api/pistas/:id/exito
func (h *PistaHandler) RegistrarExito(c *gin.Context) {
	h.registrarResultado(c, h.estadisticas.RegistrarExito, "Completación exitosa registrada")
}

// RegistrarFallo handles POST /api/pistas/:id/fallo
func (h *PistaHandler) RegistrarFallo(c *gin.Context) {
	h.registrarResultado(c, h.estadisticas.RegistrarFallo, "Completación fallida registrada")
}

func (h *PistaHandler) registrarResultado(c *gin.Context, registrar func(uint) error, mensaje string) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := registrar(id); err != nil {
		if errors.Is(err, services.ErrPistaNoEncontrada) {
			respondError(c, http.StatusNotFound, err.Error())
			return
		}
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}
	respond(c, http.StatusOK, mensaje, nil)
}

// Activas handles GET /api/pistas
func (h *PistaHandler) Activas(c *gin.Context) {
	pistas, err := h.service.Activas()
	if err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}
	respond(c, http.StatusOK, "Pistas activas obtenidas", h.toResponses(pistas))
}

// Todas handles GET /api/pistas/todas
func (h *PistaHandler) Todas(c *gin.Context) {
	pistas, err := h.service.Todas()
	if err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}
	respond(c, http.StatusOK, "Pistas obtenidas", h.toResponses(pistas))
}

// PorID handles GET /api/pistas/:id
func (h *PistaHandler) PorID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	pista, err := h.service.PorID(id)
	if err != nil {
		if errors.Is(err, services.ErrPistaNoEncontrada) {
			respondError(c, http.StatusNotFound, err.Error())
			return
		}
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}
	respond(c, http.StatusOK, "Pista obtenida", h.toResponse(pista))
}

// Crear handles POST /api/pistas
func (h *PistaHandler) Crear(c *gin.Context) {
	var req CrearPistaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	pista, err := h.service.Crear(req.Nombre, req.ConfiguracionJSON, middleware.GetUsername(c))
	if err != nil {
		if errors.Is(err, services.ErrNombrePistaEnUso) {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}
	respond(c, http.StatusCreated, "Pista creada", h.toResponse(pista))
}

// Actualizar handles PUT /api/pistas/:id
func (h *PistaHandler) Actualizar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req ActualizarPistaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	pista, err := h.service.Actualizar(id, req.Nombre, req.ConfiguracionJSON, req.Activa, middleware.GetUsername(c))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPistaNoEncontrada):
			respondError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, services.ErrNombrePistaEnUso):
			respondError(c, http.StatusBadRequest, err.Error())
		default:
			respondError(c, http.StatusInternalServerError, err.Error())
		}
		return
	}
	respond(c, http.StatusOK, "Pista actualizada", h.toResponse(pista))
}

// Eliminar handles DELETE /api/pistas/:id (soft delete).
func (h *PistaHandler) Eliminar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.Eliminar(id, middleware.GetUsername(c)); err != nil {
		if errors.Is(err, services.ErrPistaNoEncontrada) {
			respondError(c, http.StatusNotFound, err.Error())
			return
		}
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}
	respond(c, http.StatusOK, "Pista eliminada", nil)
}

// Buscar handles GET /api/pistas/buscar?nombre=
func (h *PistaHandler) Buscar(c *gin.Context) {
	nombre := c.Query("nombre")
	if nombre == "" {
		respondError(c, http.StatusBadRequest, "el parámetro nombre es obligatorio")
		return
	}

	pistas, err := h.service.BuscarPorNombre(nombre)
	if err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}
	respond(c, http.StatusOK, "Búsqueda completada", h.toResponses(pistas))
}

func (h *PistaHandler) toResponse(pista *models.Pista) PistaResponse {
	resp := PistaResponse{
		ID:                pista.ID,
		Nombre:            pista.Nombre,
		ConfiguracionJSON: pista.ConfiguracionJSON,
		Activa:            pista.Activa,
		FechaCreacion:     pista.CreatedAt,
		FechaModificacion: pista.UpdatedAt,
	}
	if creador := h.service.Creador(pista); creador != nil {
		resp.CreadoPor = creador.Nombre
	}
	return resp
}

func (h *PistaHandler) toResponses(pistas []models.Pista) []PistaResponse {
	resps := make([]PistaResponse, 0, len(pistas))
	for i := range pistas {
		resps = append(resps, h.toResponse(&pistas[i]))
	}
	return resps
}

// parseID reads the :id path parameter, answering 400 on garbage.
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "ID inválido")
		return 0, false
	}
	return uint(id), true
}
