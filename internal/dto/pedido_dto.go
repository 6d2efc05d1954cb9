package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type ItemPedidoRequest struct {
	ProductoID     int64            `json:"id_producto"     validate:"required,gt=0"`
	Cantidad       int              `json:"cantidad"        validate:"required,min=1"`
	PrecioUnitario *decimal.Decimal `json:"precio_unitario" validate:"required,min=0"`
}

type RegistrarPedidoRequest struct {
	TelefonoWhatsapp string              `json:"telefono_whatsapp" validate:"required,min=7,max=20"`
	Items            []ItemPedidoRequest `json:"items"             validate:"required,min=1,dive"`
}

// CambiarEstadoPedidoRequest carries the target state. The value itself is
// checked by the service so an invalid state is reported as a domain error.
type CambiarEstadoPedidoRequest struct {
	NuevoEstado string `json:"nuevo_estado" validate:"required"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type PedidoCreadoResponse struct {
	ID            int64           `json:"id"`
	MontoEstimado decimal.Decimal `json:"monto_estimado"`
	Items         int             `json:"items"`
}

type ItemPedidoResponse struct {
	ProductoID     int64           `json:"id_producto"`
	Nombre         string          `json:"nombre"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
}

type PedidoResponse struct {
	ID               int64                `json:"id"`
	TelefonoWhatsapp string               `json:"telefono_whatsapp"`
	MontoEstimado    decimal.Decimal      `json:"monto_estimado"`
	Estado           string               `json:"estado"`
	FechaPedido      time.Time            `json:"fecha_pedido"`
	Items            []ItemPedidoResponse `json:"items,omitempty"`
}

// PedidoCreadoEvento is published to notifiers after a web order commits.
type PedidoCreadoEvento struct {
	PedidoID         int64           `json:"id_pedido"`
	TelefonoWhatsapp string          `json:"telefono_whatsapp"`
	MontoEstimado    decimal.Decimal `json:"monto_estimado"`
	Items            int             `json:"items"`
	FechaPedido      time.Time       `json:"fecha_pedido"`
}
