package repository

import (
	"context"

	"mimbres/internal/model"

	"gorm.io/gorm"
)

type PedidoWebRepository interface {
	Create(ctx context.Context, tx *gorm.DB, p *model.PedidoWeb) error
	FindByID(ctx context.Context, id int64) (*model.PedidoWeb, error)
	ListByEstado(ctx context.Context, estado string) ([]model.PedidoWeb, error)
	// CambiarEstado moves the order from desde to hacia only if it is still in
	// desde. It returns the number of rows changed (0 or 1).
	CambiarEstado(ctx context.Context, id int64, desde, hacia string) (int64, error)
	DB() *gorm.DB
}

type pedidoWebRepo struct{ db *gorm.DB }

func NewPedidoWebRepository(db *gorm.DB) PedidoWebRepository { return &pedidoWebRepo{db: db} }

func (r *pedidoWebRepo) DB() *gorm.DB { return r.db }

func (r *pedidoWebRepo) Create(ctx context.Context, tx *gorm.DB, p *model.PedidoWeb) error {
	return ClassifyError(tx.WithContext(ctx).Create(p).Error)
}

func (r *pedidoWebRepo) FindByID(ctx context.Context, id int64) (*model.PedidoWeb, error) {
	var p model.PedidoWeb
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Items.Producto").
		First(&p, id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *pedidoWebRepo) ListByEstado(ctx context.Context, estado string) ([]model.PedidoWeb, error) {
	var list []model.PedidoWeb
	err := r.db.WithContext(ctx).Where("estado = ?", estado).Order("fecha_pedido DESC").Find(&list).Error
	return list, err
}

func (r *pedidoWebRepo) CambiarEstado(ctx context.Context, id int64, desde, hacia string) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.PedidoWeb{}).
		Where("id = ? AND estado = ?", id, desde).
		Update("estado", hacia)
	return res.RowsAffected, res.Error
}
