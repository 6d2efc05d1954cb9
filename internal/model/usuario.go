package model

import "time"

// Roles de usuario del panel.
const (
	RolAdmin    = "ADMIN"
	RolVendedor = "VENDEDOR"
)

// Usuario stores staff accounts with role-based access.
type Usuario struct {
	ID              int64     `gorm:"primaryKey"`
	Nombre          string    `gorm:"type:varchar(100);not null"`
	ApellidoPaterno string    `gorm:"type:varchar(100);not null"`
	ApellidoMaterno *string   `gorm:"type:varchar(100)"`
	Username        string    `gorm:"type:varchar(50);uniqueIndex;not null"`
	PasswordHash    string    `gorm:"type:varchar(100);not null"`
	Rol             string    `gorm:"type:varchar(20);not null"`
	FechaCreacion   time.Time `gorm:"autoCreateTime"`
}

func (Usuario) TableName() string { return "usuarios" }
