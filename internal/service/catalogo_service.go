package service

import (
	"context"
	"errors"
	"fmt"

	"mimbres/internal/apierror"
	"mimbres/internal/dto"
	"mimbres/internal/repository"

	"gorm.io/gorm"
)

// CatalogoService serves the public storefront reads. List responses go
// through the versioned cache; every product or category write bumps the
// version, so a read after a committed write never sees the old list.
type CatalogoService interface {
	ListarProductos(ctx context.Context, categoriaID int64) ([]dto.ProductoResponse, error)
	ObtenerProducto(ctx context.Context, id int64) (*dto.ProductoResponse, error)
	ListarCategorias(ctx context.Context) ([]dto.CategoriaResponse, error)
}

type catalogoService struct {
	productos  repository.ProductoRepository
	categorias repository.CategoriaRepository
	cache      CatalogoCache
}

func NewCatalogoService(productos repository.ProductoRepository, categorias repository.CategoriaRepository, cache CatalogoCache) CatalogoService {
	return &catalogoService{productos: productos, categorias: categorias, cache: cache}
}

// cached runs load on a miss and stores its result. Cache errors degrade to
// a plain database read.
func cached[T any](ctx context.Context, c CatalogoCache, clave string, load func() (T, error)) (T, error) {
	if c == nil {
		return load()
	}
	version, err := c.Version(ctx)
	if err != nil {
		return load()
	}
	var hit T
	if c.Get(ctx, version, clave, &hit) {
		return hit, nil
	}
	v, err := load()
	if err != nil {
		return v, err
	}
	c.Set(ctx, version, clave, v)
	return v, nil
}

func (s *catalogoService) ListarProductos(ctx context.Context, categoriaID int64) ([]dto.ProductoResponse, error) {
	return cached(ctx, s.cache, fmt.Sprintf("productos:cat:%d", categoriaID), func() ([]dto.ProductoResponse, error) {
		list, err := s.productos.ListCatalogo(ctx, categoriaID)
		if err != nil {
			return nil, err
		}
		out := make([]dto.ProductoResponse, 0, len(list))
		for _, p := range list {
			out = append(out, mapProducto(p))
		}
		return out, nil
	})
}

func (s *catalogoService) ObtenerProducto(ctx context.Context, id int64) (*dto.ProductoResponse, error) {
	p, err := s.productos.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NoEncontrado("Producto no encontrado")
		}
		return nil, err
	}
	resp := mapProducto(*p)
	return &resp, nil
}

func (s *catalogoService) ListarCategorias(ctx context.Context) ([]dto.CategoriaResponse, error) {
	return cached(ctx, s.cache, "categorias", func() ([]dto.CategoriaResponse, error) {
		list, err := s.categorias.List(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]dto.CategoriaResponse, 0, len(list))
		for _, c := range list {
			out = append(out, mapCategoria(c))
		}
		return out, nil
	})
}
