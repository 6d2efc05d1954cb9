package repository

import (
	"context"

	"mimbres/internal/model"

	"gorm.io/gorm"
)

// TotalesMovimiento are the per-direction sums of a product's ledger.
type TotalesMovimiento struct {
	Entradas int
	Salidas  int
}

// MovimientoRepository is append-only: there is no update or delete.
type MovimientoRepository interface {
	CreateTx(tx *gorm.DB, m *model.MovimientoInventario) error
	ListByProducto(ctx context.Context, productoID int64) ([]model.MovimientoInventario, error)
	Totales(ctx context.Context, productoID int64) (TotalesMovimiento, error)
}

type movimientoRepo struct{ db *gorm.DB }

func NewMovimientoRepository(db *gorm.DB) MovimientoRepository {
	return &movimientoRepo{db: db}
}

func (r *movimientoRepo) CreateTx(tx *gorm.DB, m *model.MovimientoInventario) error {
	return ClassifyError(tx.Omit("Producto", "Usuario").Create(m).Error)
}

func (r *movimientoRepo) ListByProducto(ctx context.Context, productoID int64) ([]model.MovimientoInventario, error) {
	var list []model.MovimientoInventario
	err := r.db.WithContext(ctx).
		Where("producto_id = ?", productoID).
		Order("fecha DESC, id DESC").
		Find(&list).Error
	return list, err
}

func (r *movimientoRepo) Totales(ctx context.Context, productoID int64) (TotalesMovimiento, error) {
	var t TotalesMovimiento
	err := r.db.WithContext(ctx).Model(&model.MovimientoInventario{}).
		Select(`COALESCE(SUM(CASE WHEN tipo = ? THEN cantidad ELSE 0 END), 0) AS entradas,
		        COALESCE(SUM(CASE WHEN tipo = ? THEN cantidad ELSE 0 END), 0) AS salidas`,
			model.MovimientoEntrada, model.MovimientoSalida).
		Where("producto_id = ?", productoID).
		Scan(&t).Error
	return t, err
}
