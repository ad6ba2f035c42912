package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/umg-robotica/pistas-backend/internal/api/middleware"
	"github.com/umg-robotica/pistas-backend/internal/services"
)

type AdministradorHandler struct {
	service *services.AdministradorService
}

func NewAdministradorHandler(db *gorm.DB) *AdministradorHandler {
	return &AdministradorHandler{service: services.NewAdministradorService(db)}
}

type CrearAdministradorRequest struct {
	Username string `json:"username" binding:"required,max=50"`
	Password string `json:"password" binding:"required,min=6"`
	Nombre   string `json:"nombre" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email"`
}

type ActualizarAdministradorRequest struct {
	Username string `json:"username" binding:"required,max=50"`
	Nombre   string `json:"nombre" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Activo   *bool  `json:"activo"`
}

type CambiarPasswordRequest struct {
	Password string `json:"password" binding:"required,min=6"`
}

// Activos handles GET /api/administradores
func (h *AdministradorHandler) Activos(c *gin.Context) {
	admins, err := h.service.Activos()
	if err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}
	respond(c, http.StatusOK, "Administradores activos obtenidos", admins)
}

// Todos handles GET /api/administradores/todos
func (h *AdministradorHandler) Todos(c *gin.Context) {
	admins, err := h.service.Todos()
	if err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}
	respond(c, http.StatusOK, "Administradores obtenidos", admins)
}

// PorID handles GET /api/administradores/:id
func (h *AdministradorHandler) PorID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	admin, err := h.service.PorID(id)
	if err != nil {
		if errors.Is(err, services.ErrAdministradorNoEncontrado) {
			respondError(c, http.StatusNotFound, err.Error())
			return
		}
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}
	respond(c, http.StatusOK, "Administrador obtenido", admin)
}

// PorUsername handles GET /api/administradores/username/:username
func (h *AdministradorHandler) PorUsername(c *gin.Context) {
	admin, err := h.service.PorUsername(c.Param("username"))
	if err != nil {
		if errors.Is(err, services.ErrAdministradorNoEncontrado) {
			respondError(c, http.StatusNotFound, err.Error())
			return
		}
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}
	respond(c, http.StatusOK, "Administrador obtenido", admin)
}

// Crear handles POST /api/administradores
func (h *AdministradorHandler) Crear(c *gin.Context) {
	var req CrearAdministradorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	admin, err := h.service.Crear(req.Username, req.Password, req.Nombre, req.Email, middleware.GetUsername(c))
	if err != nil {
		if errors.Is(err, services.ErrUsernameEnUso) || errors.Is(err, services.ErrEmailEnUso) {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}
	respond(c, http.StatusCreated, "Administrador creado", admin)
}

// Actualizar handles PUT /api/administradores/:id
func (h *AdministradorHandler) Actualizar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req ActualizarAdministradorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	admin, err := h.service.Actualizar(id, req.Username, req.Nombre, req.Email, req.Activo, middleware.GetUsername(c))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAdministradorNoEncontrado):
			respondError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, services.ErrUsernameEnUso), errors.Is(err, services.ErrEmailEnUso):
			respondError(c, http.StatusBadRequest, err.Error())
		default:
			respondError(c, http.StatusInternalServerError, err.Error())
		}
		return
	}
	respond(c, http.StatusOK, "Administrador actualizado", admin)
}

// CambiarPassword handles PUT /api/administradores/:id/password
func (h *AdministradorHandler) CambiarPassword(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req CambiarPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.service.CambiarPassword(id, req.Password, middleware.GetUsername(c)); err != nil {
		if errors.Is(err, services.ErrAdministradorNoEncontrado) {
			respondError(c, http.StatusNotFound, err.Error())
			return
		}
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}
	respond(c, http.StatusOK, "Contraseña actualizada", nil)
}

// Eliminar handles DELETE /api/administradores/:id (soft deactivation).
func (h *AdministradorHandler) Eliminar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.Eliminar(id, middleware.GetUsername(c)); err != nil {
		if errors.Is(err, services.ErrAdministradorNoEncontrado) {
			respondError(c, http.StatusNotFound, err.Error())
			return
		}
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}
	respond(c, http.StatusOK, "Administrador desactivado", nil)
}

// Buscar handles GET /api/administradores/buscar?nombre=
func (h *AdministradorHandler) Buscar(c *gin.Context) {
	nombre := c.Query("nombre")
	if nombre == "" {
		respondError(c, http.StatusBadRequest, "el parámetro nombre es obligatorio")
		return
	}

	admins, err := h.service.BuscarPorNombre(nombre)
	if err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}
	respond(c, http.StatusOK, "Búsqueda completada", admins)
}
