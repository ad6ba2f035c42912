package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/umg-robotica/pistas-backend/internal/models"
	"github.com/umg-robotica/pistas-backend/internal/services"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RegistroRequest struct {
	Username string `json:"username" binding:"required,max=50"`
	Password string `json:"password" binding:"required,min=6"`
	Nombre   string `json:"nombre" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email"`
}

// LoginResponse carries the bearer token plus the profile of the
// authenticated administrator.
type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Nombre   string `json:"nombre"`
	Email    string `json:"email"`
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	token, admin, err := h.authService.Login(req.Username, req.Password, c.ClientIP())
	if err != nil {
		respondError(c, http.StatusUnauthorized, err.Error())
		return
	}

	respond(c, http.StatusOK, "Login exitoso", loginResponse(token, admin))
}

// Registrar handles POST /api/auth/registrar
func (h *AuthHandler) Registrar(c *gin.Context) {
	var req RegistroRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	token, admin, err := h.authService.Register(req.Username, req.Password, req.Nombre, req.Email, c.ClientIP())
	if err != nil {
		if errors.Is(err, services.ErrUsernameEnUso) || errors.Is(err, services.ErrEmailEnUso) {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	respond(c, http.StatusCreated, "Registro exitoso", loginResponse(token, admin))
}

// Validar handles GET /api/auth/validar. It always answers 200: any
// malformed, unsigned, expired or mismatched token yields data=false.
func (h *AuthHandler) Validar(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		respond(c, http.StatusOK, "Token inválido", false)
		return
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	username, err := h.authService.ValidateToken(tokenString)
	if err != nil {
		respond(c, http.StatusOK, "Token inválido", false)
		return
	}

	respond(c, http.StatusOK, "Token validado", h.authService.TokenEsValido(tokenString, username))
}

func loginResponse(token string, admin *models.Administrador) LoginResponse {
	return LoginResponse{
		Token:    token,
		Username: admin.Username,
		Nombre:   admin.Nombre,
		Email:    admin.Email,
	}
}
