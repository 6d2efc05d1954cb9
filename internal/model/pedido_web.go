package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de pedido web. CONCRETADO and CANCELADO are terminal.
const (
	EstadoPedidoIniciado   = "INICIADO"
	EstadoPedidoConcretado = "CONCRETADO"
	EstadoPedidoCancelado  = "CANCELADO"
)

// PedidoWeb is a provisional storefront order. It never moves stock; staff
// confirm it by phone and register the actual Venta separately.
type PedidoWeb struct {
	ID               int64           `gorm:"primaryKey"`
	TelefonoWhatsapp string          `gorm:"type:varchar(20);not null"`
	MontoEstimado    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Estado           string          `gorm:"type:varchar(20);not null;default:'INICIADO';index"`
	FechaPedido      time.Time       `gorm:"autoCreateTime;index"`

	Items []PedidoWebItem `gorm:"foreignKey:PedidoWebID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

func (PedidoWeb) TableName() string { return "pedidos_web" }

type PedidoWebItem struct {
	ID             int64           `gorm:"primaryKey"`
	PedidoWebID    int64           `gorm:"not null;index"`
	ProductoID     int64           `gorm:"not null;index"`
	Cantidad       int             `gorm:"not null"`
	PrecioUnitario decimal.Decimal `gorm:"type:decimal(10,2);not null"`

	Producto *Producto `gorm:"foreignKey:ProductoID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

func (PedidoWebItem) TableName() string { return "pedido_web_items" }
