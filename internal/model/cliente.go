package model

import "time"

// Cliente is a shop customer identified by a unique WhatsApp phone.
type Cliente struct {
	ID               int64     `gorm:"primaryKey"`
	Nombre           *string   `gorm:"type:varchar(100)"`
	ApellidoPaterno  *string   `gorm:"type:varchar(100)"`
	ApellidoMaterno  *string   `gorm:"type:varchar(100)"`
	TelefonoWhatsapp string    `gorm:"type:varchar(20);uniqueIndex;not null"`
	Email            *string   `gorm:"type:varchar(150)"`
	FechaRegistro    time.Time `gorm:"autoCreateTime;index"`
}

func (Cliente) TableName() string { return "clientes" }

// NombreCompleto joins the non-empty name parts.
func (c Cliente) NombreCompleto() string {
	nombre := ""
	for _, p := range []*string{c.Nombre, c.ApellidoPaterno, c.ApellidoMaterno} {
		if p == nil || *p == "" {
			continue
		}
		if nombre != "" {
			nombre += " "
		}
		nombre += *p
	}
	return nombre
}
