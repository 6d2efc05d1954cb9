package model

// Proveedor is a supplier that purchases (Compra) are registered against.
type Proveedor struct {
	ID               int64   `gorm:"primaryKey"`
	Nombre           string  `gorm:"type:varchar(150);uniqueIndex;not null"`
	TelefonoContacto *string `gorm:"type:varchar(20)"`
	Direccion        *string `gorm:"type:varchar(255)"`
}

func (Proveedor) TableName() string { return "proveedores" }
