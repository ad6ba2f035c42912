package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Administrador is an account with access to the management API. Accounts
// are soft-deactivated via Activo, never removed, so bitácora entries keep
// a valid actor reference.
type Administrador struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;size:50;not null" json:"username"`
	PasswordHash string    `gorm:"size:100;not null" json:"-"`
	Nombre       string    `gorm:"size:100;not null" json:"nombre"`
	Email        string    `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Activo       bool      `gorm:"default:true" json:"activo"`
	CreatedAt    time.Time `json:"fecha_creacion"`
	UpdatedAt    time.Time `json:"fecha_modificacion"`
}

func (Administrador) TableName() string {
	return "administradores"
}

// SetPassword hashes and stores the plaintext. The plaintext is never
// persisted.
func (a *Administrador) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	a.PasswordHash = string(hash)
	return nil
}

// CheckPassword reports whether the plaintext matches the stored hash.
func (a *Administrador) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)) == nil
}
