package models

import "time"

// Pista is one playable track configuration. The configuration itself is
// an opaque JSON document the game client interprets; the backend only
// stores and serves it. Activa is the soft-delete flag: inactive pistas
// stay retrievable by id but never leave the random pick.
type Pista struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	Nombre            string    `gorm:"uniqueIndex;size:100;not null" json:"nombre"`
	ConfiguracionJSON string    `gorm:"type:text;not null" json:"configuracion_json"`
	CreadoPorID       *uint     `gorm:"index" json:"creado_por_id,omitempty"`
	Activa            bool      `gorm:"default:true" json:"activa"`
	CreatedAt         time.Time `json:"fecha_creacion"`
	UpdatedAt         time.Time `json:"fecha_modificacion"`
}

func (Pista) TableName() string {
	return "pistas"
}
