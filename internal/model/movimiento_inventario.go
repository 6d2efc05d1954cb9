package model

import "time"

// Tipos de movimiento de inventario.
const (
	MovimientoEntrada = "ENTRADA"
	MovimientoSalida  = "SALIDA"
)

// MovimientoInventario is an append-only ledger row. Every change of
// Producto.StockActual has exactly one row with the same quantity and direction.
type MovimientoInventario struct {
	ID            int64     `gorm:"primaryKey"`
	ProductoID    int64     `gorm:"not null;index"`
	UsuarioID     int64     `gorm:"not null;index"`
	Tipo          string    `gorm:"type:varchar(10);not null"`
	Cantidad      int       `gorm:"not null;check:chk_movimientos_cantidad,cantidad > 0"`
	StockAnterior int       `gorm:"not null"`
	StockNuevo    int       `gorm:"not null"`
	Referencia    string    `gorm:"type:varchar(100);not null"`
	Fecha         time.Time `gorm:"autoCreateTime;index"`

	Producto *Producto `gorm:"foreignKey:ProductoID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Usuario  *Usuario  `gorm:"foreignKey:UsuarioID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

func (MovimientoInventario) TableName() string { return "movimientos_inventario" }
