package models

import "time"

// Action tags recorded in the bitácora. Stable strings so queries keep
// working across releases.
const (
	AccionLogin            = "LOGIN"
	AccionLoginFallido     = "LOGIN_FALLIDO"
	AccionRegistro         = "REGISTRO"
	AccionCrearPista       = "CREAR_PISTA"
	AccionActualizarPista  = "ACTUALIZAR_PISTA"
	AccionEliminarPista    = "ELIMINAR_PISTA"
	AccionEliminarPistaDef = "ELIMINAR_PISTA_DEFINITIVO"
	AccionCrearAdmin       = "CREAR_ADMINISTRADOR"
	AccionActualizarAdmin  = "ACTUALIZAR_ADMINISTRADOR"
	AccionCambiarPassword  = "CAMBIAR_PASSWORD"
	AccionEliminarAdmin    = "ELIMINAR_ADMINISTRADOR"
)

// Bitacora is one append-only audit entry. AdministradorID is nil when the
// actor could not be resolved, for example a failed login attempt against
// an unknown username.
type Bitacora struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	AdministradorID *uint     `gorm:"index" json:"administrador_id,omitempty"`
	Accion          string    `gorm:"size:100;index;not null" json:"accion"`
	Descripcion     string    `gorm:"type:text" json:"descripcion"`
	FechaHora       time.Time `gorm:"index" json:"fecha_hora"`
	IPAddress       string    `gorm:"size:45" json:"ip_address,omitempty"`
}

func (Bitacora) TableName() string {
	return "bitacora"
}
