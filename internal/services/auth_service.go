package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/containrrr/shoutrrr"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"github.com/umg-robotica/pistas-backend/internal/config"
	"github.com/umg-robotica/pistas-backend/internal/logger"
	"github.com/umg-robotica/pistas-backend/internal/metrics"
	"github.com/umg-robotica/pistas-backend/internal/models"
)

var (
	ErrCredencialesInvalidas = errors.New("credenciales inválidas")
	ErrUsernameEnUso         = errors.New("el username ya existe")
	ErrEmailEnUso            = errors.New("el email ya está registrado")
)

// AuthService authenticates administrators and mints HS256 bearer tokens
// whose subject is the username. Login outcomes, successful or not, are
// recorded in the bitácora.
type AuthService struct {
	db       *gorm.DB
	cfg      config.Config
	bitacora *BitacoraService
}

func NewAuthService(db *gorm.DB, cfg config.Config) *AuthService {
	return &AuthService{db: db, cfg: cfg, bitacora: NewBitacoraService(db)}
}

// Login verifies the credentials and returns a signed token plus the
// administrator profile. Unknown username, inactive account and password
// mismatch are indistinguishable to the caller.
func (s *AuthService) Login(username, password, ipAddress string) (string, *models.Administrador, error) {
	var admin models.Administrador
	err := s.db.Where("username = ?", username).First(&admin).Error
	if err != nil || !admin.Activo || !admin.CheckPassword(password) {
		s.bitacora.RegistrarAccion(username, models.AccionLoginFallido,
			"Intento de login fallido para: "+username, ipAddress)
		metrics.IncLoginFallido()
		s.alertarLoginFallido(username, ipAddress)
		return "", nil, ErrCredencialesInvalidas
	}

	token, err := s.GenerateToken(admin.Username)
	if err != nil {
		return "", nil, fmt.Errorf("generate token: %w", err)
	}

	s.bitacora.RegistrarAccion(admin.Username, models.AccionLogin,
		"Inicio de sesión exitoso", ipAddress)
	metrics.IncLogin()
	return token, &admin, nil
}

// Register creates a new administrator and mints a token identical in
// shape to Login's. Username and email uniqueness is checked among all
// administrators, inactive ones included.
func (s *AuthService) Register(username, password, nombre, email, ipAddress string) (string, *models.Administrador, error) {
	var count int64
	if err := s.db.Model(&models.Administrador{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return "", nil, err
	}
	if count > 0 {
		return "", nil, ErrUsernameEnUso
	}
	if err := s.db.Model(&models.Administrador{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return "", nil, err
	}
	if count > 0 {
		return "", nil, ErrEmailEnUso
	}

	admin := models.Administrador{
		Username: username,
		Nombre:   nombre,
		Email:    email,
		Activo:   true,
	}
	if err := admin.SetPassword(password); err != nil {
		return "", nil, fmt.Errorf("hash password: %w", err)
	}
	if err := s.db.Create(&admin).Error; err != nil {
		return "", nil, err
	}

	s.bitacora.RegistrarAccion(admin.Username, models.AccionRegistro,
		"Nuevo administrador registrado", ipAddress)

	token, err := s.GenerateToken(admin.Username)
	if err != nil {
		return "", nil, fmt.Errorf("generate token: %w", err)
	}
	return token, &admin, nil
}

// GenerateToken mints a signed token with the username as subject and the
// configured lifetime.
func (s *AuthService) GenerateToken(username string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TokenTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

// ValidateToken verifies signature and expiry and returns the subject.
func (s *AuthService) ValidateToken(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return "", err
	}
	if !token.Valid || claims.Subject == "" {
		return "", ErrCredencialesInvalidas
	}
	return claims.Subject, nil
}

// TokenEsValido reports whether the token verifies against the given
// username. It fails open to false, never an error.
func (s *AuthService) TokenEsValido(tokenString, username string) bool {
	subject, err := s.ValidateToken(tokenString)
	if err != nil {
		return false
	}
	return subject == username
}

// alertarLoginFallido pushes a fire-and-forget notification when an alert
// destination is configured. Failures only get logged.
func (s *AuthService) alertarLoginFallido(username, ipAddress string) {
	if s.cfg.AlertURL == "" {
		return
	}
	url := s.cfg.AlertURL
	go func() {
		msg := fmt.Sprintf("Login fallido para %q desde %s", username, ipAddress)
		if err := shoutrrr.Send(url, msg); err != nil {
			logger.Log().WithError(err).Warn("failed to send login alert")
		}
	}()
}
