package dto

import "time"

type CrearUsuarioRequest struct {
	Nombre          string  `json:"nombre"           validate:"required,max=100"`
	ApellidoPaterno string  `json:"apellido_paterno" validate:"required,max=100"`
	ApellidoMaterno *string `json:"apellido_materno" validate:"omitempty,max=100"`
	Username        string  `json:"username"         validate:"required,min=3,max=50"`
	Password        string  `json:"password"         validate:"required,min=6,max=72"`
	Rol             string  `json:"rol"              validate:"required,oneof=ADMIN VENDEDOR"`
}

// ActualizarUsuarioRequest is a partial update: nil fields are left untouched.
// An omitted or empty password keeps the current hash.
type ActualizarUsuarioRequest struct {
	Nombre          *string `json:"nombre"           validate:"omitempty,min=1,max=100"`
	ApellidoPaterno *string `json:"apellido_paterno" validate:"omitempty,min=1,max=100"`
	ApellidoMaterno *string `json:"apellido_materno" validate:"omitempty,max=100"`
	Username        *string `json:"username"         validate:"omitempty,min=3,max=50"`
	Password        *string `json:"password"         validate:"omitempty,max=72"`
	Rol             *string `json:"rol"              validate:"omitempty,oneof=ADMIN VENDEDOR"`
}

type UsuarioResponse struct {
	ID              int64     `json:"id"`
	Nombre          string    `json:"nombre"`
	ApellidoPaterno string    `json:"apellido_paterno"`
	ApellidoMaterno *string   `json:"apellido_materno"`
	Username        string    `json:"username"`
	Rol             string    `json:"rol"`
	FechaCreacion   time.Time `json:"fecha_creacion"`
}
