package dto

type CrearProveedorRequest struct {
	Nombre           string  `json:"nombre"            validate:"required,max=150"`
	TelefonoContacto *string `json:"telefono_contacto" validate:"omitempty,max=20"`
	Direccion        *string `json:"direccion"         validate:"omitempty,max=255"`
}

type ActualizarProveedorRequest struct {
	Nombre           *string `json:"nombre"            validate:"omitempty,min=1,max=150"`
	TelefonoContacto *string `json:"telefono_contacto" validate:"omitempty,max=20"`
	Direccion        *string `json:"direccion"         validate:"omitempty,max=255"`
}

type ProveedorResponse struct {
	ID               int64   `json:"id"`
	Nombre           string  `json:"nombre"`
	TelefonoContacto *string `json:"telefono_contacto"`
	Direccion        *string `json:"direccion"`
}
