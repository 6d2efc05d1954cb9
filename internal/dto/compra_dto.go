package dto

import "github.com/shopspring/decimal"

type ItemCompraRequest struct {
	ProductoID    int64            `json:"id_producto"    validate:"required,gt=0"`
	Cantidad      int              `json:"cantidad"       validate:"required,min=1"`
	CostoUnitario *decimal.Decimal `json:"costo_unitario" validate:"required,min=0"`
}

type RegistrarCompraRequest struct {
	ProveedorID int64               `json:"id_proveedor" validate:"required,gt=0"`
	Items       []ItemCompraRequest `json:"items"        validate:"required,min=1,dive"`
}

type CompraResponse struct {
	ID         int64           `json:"id"`
	MontoTotal decimal.Decimal `json:"monto_total"`
	Items      int             `json:"items"`
}
