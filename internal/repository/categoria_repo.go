package repository

import (
	"context"

	"mimbres/internal/model"

	"gorm.io/gorm"
)

// CategoriaRepository defines CRUD operations for Categoria.
type CategoriaRepository interface {
	Create(ctx context.Context, c *model.Categoria) error
	FindByID(ctx context.Context, id int64) (*model.Categoria, error)
	List(ctx context.Context) ([]model.Categoria, error)
	Update(ctx context.Context, id int64, campos map[string]any) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

type categoriaRepository struct{ db *gorm.DB }

func NewCategoriaRepository(db *gorm.DB) CategoriaRepository {
	return &categoriaRepository{db: db}
}

func (r *categoriaRepository) Create(ctx context.Context, c *model.Categoria) error {
	return ClassifyError(r.db.WithContext(ctx).Create(c).Error)
}

func (r *categoriaRepository) FindByID(ctx context.Context, id int64) (*model.Categoria, error) {
	var c model.Categoria
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *categoriaRepository) List(ctx context.Context) ([]model.Categoria, error) {
	var list []model.Categoria
	err := r.db.WithContext(ctx).Order("nombre ASC").Find(&list).Error
	return list, err
}

func (r *categoriaRepository) Update(ctx context.Context, id int64, campos map[string]any) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Categoria{}).Where("id = ?", id).Updates(campos)
	return res.RowsAffected, ClassifyError(res.Error)
}

func (r *categoriaRepository) Delete(ctx context.Context, id int64) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&model.Categoria{}, id)
	return res.RowsAffected, ClassifyError(res.Error)
}

func (r *categoriaRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Categoria{}).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}
