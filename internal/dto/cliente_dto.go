package dto

import "time"

type CrearClienteRequest struct {
	Nombre           string  `json:"nombre"            validate:"required,max=100"`
	ApellidoPaterno  *string `json:"apellido_paterno"  validate:"omitempty,max=100"`
	ApellidoMaterno  *string `json:"apellido_materno"  validate:"omitempty,max=100"`
	TelefonoWhatsapp string  `json:"telefono_whatsapp" validate:"required,min=7,max=20"`
	Email            *string `json:"email"             validate:"omitempty,email,max=150"`
}

// ActualizarClienteRequest is a partial update. An empty string on an optional
// field clears it.
type ActualizarClienteRequest struct {
	Nombre           *string `json:"nombre"            validate:"omitempty,max=100"`
	ApellidoPaterno  *string `json:"apellido_paterno"  validate:"omitempty,max=100"`
	ApellidoMaterno  *string `json:"apellido_materno"  validate:"omitempty,max=100"`
	TelefonoWhatsapp *string `json:"telefono_whatsapp" validate:"omitempty,min=7,max=20"`
	Email            *string `json:"email"             validate:"omitempty,max=150"`
}

type ClienteResponse struct {
	ID               int64     `json:"id"`
	Nombre           *string   `json:"nombre"`
	ApellidoPaterno  *string   `json:"apellido_paterno"`
	ApellidoMaterno  *string   `json:"apellido_materno"`
	TelefonoWhatsapp string    `json:"telefono_whatsapp"`
	Email            *string   `json:"email"`
	FechaRegistro    time.Time `json:"fecha_registro"`
}

// BusquedaQuery is the ?term= parameter of the search endpoints.
type BusquedaQuery struct {
	Term string `form:"term"`
}
