package repository

import (
	"context"

	"mimbres/internal/model"

	"gorm.io/gorm"
)

type ProveedorRepository interface {
	Create(ctx context.Context, p *model.Proveedor) error
	FindByID(ctx context.Context, id int64) (*model.Proveedor, error)
	List(ctx context.Context) ([]model.Proveedor, error)
	Update(ctx context.Context, id int64, campos map[string]any) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

type proveedorRepo struct{ db *gorm.DB }

func NewProveedorRepository(db *gorm.DB) ProveedorRepository { return &proveedorRepo{db: db} }

func (r *proveedorRepo) Create(ctx context.Context, p *model.Proveedor) error {
	return ClassifyError(r.db.WithContext(ctx).Create(p).Error)
}

func (r *proveedorRepo) FindByID(ctx context.Context, id int64) (*model.Proveedor, error) {
	var p model.Proveedor
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *proveedorRepo) List(ctx context.Context) ([]model.Proveedor, error) {
	var list []model.Proveedor
	err := r.db.WithContext(ctx).Order("nombre ASC").Find(&list).Error
	return list, err
}

func (r *proveedorRepo) Update(ctx context.Context, id int64, campos map[string]any) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Proveedor{}).Where("id = ?", id).Updates(campos)
	return res.RowsAffected, ClassifyError(res.Error)
}

func (r *proveedorRepo) Delete(ctx context.Context, id int64) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&model.Proveedor{}, id)
	return res.RowsAffected, ClassifyError(res.Error)
}

func (r *proveedorRepo) Exists(ctx context.Context, id int64) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Proveedor{}).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}
