package model

// Categoria classifies products in the catalog. Nombre is unique.
type Categoria struct {
	ID          int64   `gorm:"primaryKey"`
	Nombre      string  `gorm:"type:varchar(100);uniqueIndex;not null"`
	Descripcion *string `gorm:"type:varchar(255)"`
}

// TableName overrides GORM's default singular → plural logic for Spanish names.
func (Categoria) TableName() string { return "categorias" }
