package repository

import (
	"context"

	"mimbres/internal/model"

	"gorm.io/gorm"
)

type VentaRepository interface {
	// Create inserts the header and its Items in tx.
	Create(ctx context.Context, tx *gorm.DB, v *model.Venta) error
	FindDetalle(ctx context.Context, id int64) (*model.Venta, error)
	DB() *gorm.DB // exposes the DB for transaction creation in service layer
}

type ventaRepo struct{ db *gorm.DB }

func NewVentaRepository(db *gorm.DB) VentaRepository { return &ventaRepo{db: db} }

func (r *ventaRepo) DB() *gorm.DB { return r.db }

func (r *ventaRepo) Create(ctx context.Context, tx *gorm.DB, v *model.Venta) error {
	return ClassifyError(tx.WithContext(ctx).Omit("Cliente", "Usuario").Create(v).Error)
}

func (r *ventaRepo) FindDetalle(ctx context.Context, id int64) (*model.Venta, error) {
	var v model.Venta
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Items.Producto").
		Preload("Cliente").
		Preload("Usuario").
		First(&v, id).Error
	if err != nil {
		return nil, err
	}
	return &v, nil
}
