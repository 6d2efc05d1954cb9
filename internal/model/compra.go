package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Compra is a purchase from a supplier; MontoTotal is the total cost.
type Compra struct {
	ID          int64           `gorm:"primaryKey"`
	ProveedorID int64           `gorm:"not null;index"`
	UsuarioID   int64           `gorm:"not null;index"`
	MontoTotal  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	FechaCompra time.Time       `gorm:"autoCreateTime;index"`

	Items     []CompraItem `gorm:"foreignKey:CompraID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Proveedor *Proveedor   `gorm:"foreignKey:ProveedorID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Usuario   *Usuario     `gorm:"foreignKey:UsuarioID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

func (Compra) TableName() string { return "compras" }

type CompraItem struct {
	ID            int64           `gorm:"primaryKey"`
	CompraID      int64           `gorm:"not null;index"`
	ProductoID    int64           `gorm:"not null;index"`
	Cantidad      int             `gorm:"not null"`
	CostoUnitario decimal.Decimal `gorm:"type:decimal(10,2);not null"`

	Producto *Producto `gorm:"foreignKey:ProductoID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

func (CompraItem) TableName() string { return "compra_items" }
