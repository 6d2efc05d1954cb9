package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de producto.
const (
	EstadoProductoActivo   = "ACTIVO"
	EstadoProductoInactivo = "INACTIVO"
	EstadoProductoAgotado  = "AGOTADO"
)

// EstadoProductoValido reports whether e is one of the product states.
func EstadoProductoValido(e string) bool {
	switch e {
	case EstadoProductoActivo, EstadoProductoInactivo, EstadoProductoAgotado:
		return true
	}
	return false
}

// Producto is a sellable item. StockActual is only changed together with a
// MovimientoInventario row, so the ledger always reconciles with it.
type Producto struct {
	ID             int64           `gorm:"primaryKey"`
	Nombre         string          `gorm:"type:varchar(150);index;not null"`
	Descripcion    *string         `gorm:"type:text"`
	StockActual    int             `gorm:"not null;default:0;check:chk_productos_stock,stock_actual >= 0"`
	PrecioUnitario decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Dimensiones    *string         `gorm:"type:varchar(100)"`
	Material       *string         `gorm:"type:varchar(100)"`
	Color          *string         `gorm:"type:varchar(50)"`
	UnidadMedida   *string         `gorm:"type:varchar(30)"`
	Estado         string          `gorm:"type:varchar(20);not null;default:'ACTIVO';index"`
	CategoriaID    int64           `gorm:"not null;index"`
	URLImagen      *string         `gorm:"column:url_imagen;type:varchar(255)"`
	CreatedAt      time.Time       `gorm:"column:fecha_creacion"`

	Categoria *Categoria `gorm:"foreignKey:CategoriaID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

func (Producto) TableName() string { return "productos" }
