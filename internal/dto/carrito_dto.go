package dto

import (
	"mimbres/internal/carrito"

	"github.com/shopspring/decimal"
)

type AccionCarritoRequest struct {
	Tipo       string `json:"tipo"        validate:"required,oneof=AGREGAR INCREMENTAR DECREMENTAR QUITAR VACIAR"`
	ProductoID int64  `json:"id_producto" validate:"omitempty,gt=0"`
}

type ConfirmarCarritoRequest struct {
	TelefonoWhatsapp string `json:"telefono_whatsapp" validate:"required,min=7,max=20"`
}

type CarritoResponse struct {
	ID          string          `json:"id"`
	Items       []carrito.Item  `json:"items"`
	TotalItems  int             `json:"total_items"`
	TotalPrecio decimal.Decimal `json:"total_precio"`
}
