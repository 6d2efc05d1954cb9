package dto

type CrearCategoriaRequest struct {
	Nombre      string  `json:"nombre"      validate:"required,max=100"`
	Descripcion *string `json:"descripcion" validate:"omitempty,max=255"`
}

type ActualizarCategoriaRequest struct {
	Nombre      *string `json:"nombre"      validate:"omitempty,min=1,max=100"`
	Descripcion *string `json:"descripcion" validate:"omitempty,max=255"`
}

type CategoriaResponse struct {
	ID          int64   `json:"id"`
	Nombre      string  `json:"nombre"`
	Descripcion *string `json:"descripcion"`
}
