package repository

import (
	"context"

	"mimbres/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProductoRepository defines the data access contract for products.
// Services depend on this interface so they can be tested against stubs.
type ProductoRepository interface {
	Create(ctx context.Context, p *model.Producto) error
	FindByID(ctx context.Context, id int64) (*model.Producto, error)
	FindByIDs(ctx context.Context, ids []int64) ([]model.Producto, error)
	List(ctx context.Context) ([]model.Producto, error)
	ListCatalogo(ctx context.Context, categoriaID int64) ([]model.Producto, error)
	Search(ctx context.Context, term string, limit int) ([]model.Producto, error)
	Update(ctx context.Context, id int64, campos map[string]any) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
	Exists(ctx context.Context, id int64) (bool, error)

	// Used inside transactions; callers must pass the tx instance
	CreateTx(tx *gorm.DB, p *model.Producto) error
	// LockForUpdateTx reads the rows with SELECT ... FOR UPDATE in ascending id order.
	LockForUpdateTx(tx *gorm.DB, ids []int64) ([]model.Producto, error)
	UpdateStockTx(tx *gorm.DB, id int64, stock int) error
	UpdateTx(tx *gorm.DB, id int64, campos map[string]any) (int64, error)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type productoRepo struct{ db *gorm.DB }

func NewProductoRepository(db *gorm.DB) ProductoRepository { return &productoRepo{db: db} }

func (r *productoRepo) DB() *gorm.DB { return r.db }

func (r *productoRepo) Create(ctx context.Context, p *model.Producto) error {
	return r.CreateTx(r.db.WithContext(ctx), p)
}

func (r *productoRepo) CreateTx(tx *gorm.DB, p *model.Producto) error {
	return ClassifyError(tx.Omit("Categoria").Create(p).Error)
}

func (r *productoRepo) FindByID(ctx context.Context, id int64) (*model.Producto, error) {
	var p model.Producto
	if err := r.db.WithContext(ctx).Preload("Categoria").First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productoRepo) FindByIDs(ctx context.Context, ids []int64) ([]model.Producto, error) {
	var list []model.Producto
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("id").Find(&list).Error
	return list, err
}

func (r *productoRepo) List(ctx context.Context) ([]model.Producto, error) {
	var list []model.Producto
	err := r.db.WithContext(ctx).Preload("Categoria").Order("nombre ASC").Find(&list).Error
	return list, err
}

func (r *productoRepo) ListCatalogo(ctx context.Context, categoriaID int64) ([]model.Producto, error) {
	q := r.db.WithContext(ctx).Preload("Categoria").Where("estado = ?", model.EstadoProductoActivo)
	if categoriaID > 0 {
		q = q.Where("categoria_id = ?", categoriaID)
	}
	var list []model.Producto
	err := q.Order("nombre ASC").Find(&list).Error
	return list, err
}

func (r *productoRepo) Search(ctx context.Context, term string, limit int) ([]model.Producto, error) {
	var list []model.Producto
	err := r.db.WithContext(ctx).
		Where("estado = ? AND LOWER(nombre) LIKE LOWER(?)", model.EstadoProductoActivo, likeTerm(term)).
		Order("nombre ASC").
		Limit(limit).
		Find(&list).Error
	return list, err
}

func (r *productoRepo) Update(ctx context.Context, id int64, campos map[string]any) (int64, error) {
	return r.UpdateTx(r.db.WithContext(ctx), id, campos)
}

func (r *productoRepo) UpdateTx(tx *gorm.DB, id int64, campos map[string]any) (int64, error) {
	res := tx.Model(&model.Producto{}).Where("id = ?", id).Updates(campos)
	return res.RowsAffected, ClassifyError(res.Error)
}

func (r *productoRepo) Delete(ctx context.Context, id int64) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&model.Producto{}, id)
	return res.RowsAffected, ClassifyError(res.Error)
}

func (r *productoRepo) Exists(ctx context.Context, id int64) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Producto{}).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}

func (r *productoRepo) LockForUpdateTx(tx *gorm.DB, ids []int64) ([]model.Producto, error) {
	var list []model.Producto
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id IN ?", ids).
		Order("id ASC").
		Find(&list).Error
	return list, err
}

func (r *productoRepo) UpdateStockTx(tx *gorm.DB, id int64, stock int) error {
	return tx.Model(&model.Producto{}).Where("id = ?", id).Update("stock_actual", stock).Error
}
