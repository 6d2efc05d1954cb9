package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Venta is a sale header. MontoTotal is the net amount after Descuento.
type Venta struct {
	ID         int64           `gorm:"primaryKey"`
	ClienteID  int64           `gorm:"not null;index"`
	UsuarioID  int64           `gorm:"not null;index"`
	MontoTotal decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Descuento  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	FechaVenta time.Time       `gorm:"autoCreateTime;index"`

	Items   []VentaItem `gorm:"foreignKey:VentaID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Cliente *Cliente    `gorm:"foreignKey:ClienteID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Usuario *Usuario    `gorm:"foreignKey:UsuarioID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

func (Venta) TableName() string { return "ventas" }

// VentaItem is one sold line; PrecioUnitario is the price at the time of sale.
type VentaItem struct {
	ID             int64           `gorm:"primaryKey"`
	VentaID        int64           `gorm:"not null;index"`
	ProductoID     int64           `gorm:"not null;index"`
	Cantidad       int             `gorm:"not null"`
	PrecioUnitario decimal.Decimal `gorm:"type:decimal(10,2);not null"`

	Producto *Producto `gorm:"foreignKey:ProductoID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

func (VentaItem) TableName() string { return "venta_items" }

// Subtotal returns Cantidad × PrecioUnitario.
func (i VentaItem) Subtotal() decimal.Decimal {
	return i.PrecioUnitario.Mul(decimal.NewFromInt(int64(i.Cantidad)))
}
