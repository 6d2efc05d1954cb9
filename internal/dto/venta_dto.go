package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type ItemVentaRequest struct {
	ProductoID     int64            `json:"id_producto"     validate:"required,gt=0"`
	Cantidad       int              `json:"cantidad"        validate:"required,min=1"`
	PrecioUnitario *decimal.Decimal `json:"precio_unitario" validate:"required,min=0"`
}

type RegistrarVentaRequest struct {
	ClienteID int64              `json:"id_cliente" validate:"required,gt=0"`
	Items     []ItemVentaRequest `json:"items"      validate:"required,min=1,dive"`
	Descuento *decimal.Decimal   `json:"descuento"  validate:"omitempty,min=0"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ItemVentaResponse struct {
	ProductoID     int64           `json:"id_producto"`
	Nombre         string          `json:"nombre,omitempty"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

type VentaResponse struct {
	ID         int64               `json:"id"`
	MontoTotal decimal.Decimal     `json:"monto_total"`
	Descuento  decimal.Decimal     `json:"descuento"`
	Items      []ItemVentaResponse `json:"items"`
}

// VentaDetalleResponse backs both the sale detail endpoint and the PDF receipt.
type VentaDetalleResponse struct {
	ID            int64               `json:"id"`
	FechaVenta    time.Time           `json:"fecha_venta"`
	ClienteID     int64               `json:"id_cliente"`
	ClienteNombre string              `json:"nombre_cliente"`
	ClienteTel    string              `json:"telefono_cliente"`
	UsuarioID     int64               `json:"id_usuario"`
	Vendedor      string              `json:"vendedor"`
	Bruto         decimal.Decimal     `json:"monto_bruto"`
	Descuento     decimal.Decimal     `json:"descuento"`
	MontoTotal    decimal.Decimal     `json:"monto_total"`
	Items         []ItemVentaResponse `json:"items"`
}
