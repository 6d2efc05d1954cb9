package repository

import (
	"context"

	"mimbres/internal/model"

	"gorm.io/gorm"
)

type CompraRepository interface {
	Create(ctx context.Context, tx *gorm.DB, c *model.Compra) error
	DB() *gorm.DB
}

type compraRepo struct{ db *gorm.DB }

func NewCompraRepository(db *gorm.DB) CompraRepository { return &compraRepo{db: db} }

func (r *compraRepo) DB() *gorm.DB { return r.db }

func (r *compraRepo) Create(ctx context.Context, tx *gorm.DB, c *model.Compra) error {
	return ClassifyError(tx.WithContext(ctx).Omit("Proveedor", "Usuario").Create(c).Error)
}
