package repository

import (
	"context"

	"mimbres/internal/model"

	"gorm.io/gorm"
)

type ClienteRepository interface {
	Create(ctx context.Context, c *model.Cliente) error
	FindByID(ctx context.Context, id int64) (*model.Cliente, error)
	List(ctx context.Context) ([]model.Cliente, error)
	Search(ctx context.Context, term string, limit int) ([]model.Cliente, error)
	Update(ctx context.Context, id int64, campos map[string]any) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

type clienteRepo struct{ db *gorm.DB }

func NewClienteRepository(db *gorm.DB) ClienteRepository { return &clienteRepo{db: db} }

func (r *clienteRepo) Create(ctx context.Context, c *model.Cliente) error {
	return ClassifyError(r.db.WithContext(ctx).Create(c).Error)
}

func (r *clienteRepo) FindByID(ctx context.Context, id int64) (*model.Cliente, error) {
	var c model.Cliente
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *clienteRepo) List(ctx context.Context) ([]model.Cliente, error) {
	var list []model.Cliente
	err := r.db.WithContext(ctx).Order("apellido_paterno ASC, nombre ASC").Find(&list).Error
	return list, err
}

// Search matches term against given name, paternal surname and phone.
func (r *clienteRepo) Search(ctx context.Context, term string, limit int) ([]model.Cliente, error) {
	like := likeTerm(term)
	var list []model.Cliente
	err := r.db.WithContext(ctx).
		Where("LOWER(nombre) LIKE LOWER(?) OR LOWER(apellido_paterno) LIKE LOWER(?) OR telefono_whatsapp LIKE ?", like, like, like).
		Order("apellido_paterno ASC, nombre ASC").
		Limit(limit).
		Find(&list).Error
	return list, err
}

func (r *clienteRepo) Update(ctx context.Context, id int64, campos map[string]any) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Cliente{}).Where("id = ?", id).Updates(campos)
	return res.RowsAffected, ClassifyError(res.Error)
}

func (r *clienteRepo) Delete(ctx context.Context, id int64) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&model.Cliente{}, id)
	return res.RowsAffected, ClassifyError(res.Error)
}

func (r *clienteRepo) Exists(ctx context.Context, id int64) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Cliente{}).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}
