package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearProductoRequest struct {
	Nombre         string           `json:"nombre"          validate:"required,max=150"`
	Descripcion    *string          `json:"descripcion"`
	StockActual    int              `json:"stock_actual"    validate:"min=0"`
	PrecioUnitario *decimal.Decimal `json:"precio_unitario" validate:"required,min=0"`
	Dimensiones    *string          `json:"dimensiones"     validate:"omitempty,max=100"`
	Material       *string          `json:"material"        validate:"omitempty,max=100"`
	Color          *string          `json:"color"           validate:"omitempty,max=50"`
	UnidadMedida   *string          `json:"unidad_medida"   validate:"omitempty,max=30"`
	Estado         *string          `json:"estado"          validate:"omitempty,oneof=ACTIVO INACTIVO AGOTADO"`
	CategoriaID    int64            `json:"id_categoria"    validate:"required,gt=0"`
	URLImagen      *string          `json:"url_imagen"      validate:"omitempty,max=255"`
}

// ActualizarProductoRequest is a partial update. A changed stock_actual is
// recorded as a manual adjustment movement.
type ActualizarProductoRequest struct {
	Nombre         *string          `json:"nombre"          validate:"omitempty,min=1,max=150"`
	Descripcion    *string          `json:"descripcion"`
	StockActual    *int             `json:"stock_actual"    validate:"omitempty,min=0"`
	PrecioUnitario *decimal.Decimal `json:"precio_unitario" validate:"omitempty,min=0"`
	Dimensiones    *string          `json:"dimensiones"     validate:"omitempty,max=100"`
	Material       *string          `json:"material"        validate:"omitempty,max=100"`
	Color          *string          `json:"color"           validate:"omitempty,max=50"`
	UnidadMedida   *string          `json:"unidad_medida"   validate:"omitempty,max=30"`
	Estado         *string          `json:"estado"          validate:"omitempty,oneof=ACTIVO INACTIVO AGOTADO"`
	CategoriaID    *int64           `json:"id_categoria"    validate:"omitempty,gt=0"`
	URLImagen      *string          `json:"url_imagen"      validate:"omitempty,max=255"`
}

type CambiarEstadoProductoRequest struct {
	Estado string `json:"estado" validate:"required"`
}

// CatalogoFilter is the query of the public product list.
type CatalogoFilter struct {
	CategoriaID int64 `form:"categoria"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductoResponse struct {
	ID              int64           `json:"id"`
	Nombre          string          `json:"nombre"`
	Descripcion     *string         `json:"descripcion"`
	StockActual     int             `json:"stock_actual"`
	PrecioUnitario  decimal.Decimal `json:"precio_unitario"`
	Dimensiones     *string         `json:"dimensiones"`
	Material        *string         `json:"material"`
	Color           *string         `json:"color"`
	UnidadMedida    *string         `json:"unidad_medida"`
	Estado          string          `json:"estado"`
	CategoriaID     int64           `json:"id_categoria"`
	CategoriaNombre string          `json:"nombre_categoria"`
	URLImagen       *string         `json:"url_imagen"`
	FechaCreacion   time.Time       `json:"fecha_creacion"`
}

// ProductoBusqueda is the compact row used by the sale form autocompletion.
type ProductoBusqueda struct {
	ID             int64           `json:"id"`
	Nombre         string          `json:"nombre"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	StockActual    int             `json:"stock_actual"`
}

// FilasAfectadasResponse is returned by partial updates.
type FilasAfectadasResponse struct {
	FilasAfectadas int64 `json:"filas_afectadas"`
}

type CreadoResponse struct {
	ID int64 `json:"id"`
}

type MensajeResponse struct {
	Mensaje string `json:"mensaje"`
}

type ImagenResponse struct {
	ImageURL string `json:"imageUrl"`
}
