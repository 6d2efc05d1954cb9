package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"mimbres/internal/apierror"
	"mimbres/internal/dto"
	"mimbres/internal/model"
	"mimbres/internal/repository"

	"gorm.io/gorm"
)

// CategoriaService defines business operations for product categories.
type CategoriaService interface {
	Crear(ctx context.Context, req dto.CrearCategoriaRequest) (*dto.CategoriaResponse, error)
	Listar(ctx context.Context) ([]dto.CategoriaResponse, error)
	ObtenerPorID(ctx context.Context, id int64) (*dto.CategoriaResponse, error)
	Actualizar(ctx context.Context, id int64, req dto.ActualizarCategoriaRequest) (int64, error)
	Eliminar(ctx context.Context, id int64) error
}

type categoriaService struct {
	repo  repository.CategoriaRepository
	cache CatalogoCache
}

func NewCategoriaService(repo repository.CategoriaRepository, cache CatalogoCache) CategoriaService {
	return &categoriaService{repo: repo, cache: cache}
}

// mapCategoria converts a model to a DTO response.
func mapCategoria(c model.Categoria) dto.CategoriaResponse {
	return dto.CategoriaResponse{
		ID:          c.ID,
		Nombre:      c.Nombre,
		Descripcion: c.Descripcion,
	}
}

func categoriaDuplicada(nombre string) error {
	return apierror.Conflicto(fmt.Sprintf("La categoría '%s' ya existe.", nombre))
}

func (s *categoriaService) Crear(ctx context.Context, req dto.CrearCategoriaRequest) (*dto.CategoriaResponse, error) {
	nombre := strings.TrimSpace(req.Nombre)
	if nombre == "" {
		return nil, apierror.Validacion("El nombre es obligatorio")
	}
	c := &model.Categoria{Nombre: nombre, Descripcion: textoOpcional(req.Descripcion)}
	if err := s.repo.Create(ctx, c); err != nil {
		if errors.Is(err, repository.ErrDuplicado) {
			return nil, categoriaDuplicada(nombre)
		}
		return nil, err
	}
	invalidarCatalogo(ctx, s.cache)
	resp := mapCategoria(*c)
	return &resp, nil
}

func (s *categoriaService) Listar(ctx context.Context) ([]dto.CategoriaResponse, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoriaResponse, 0, len(list))
	for _, c := range list {
		out = append(out, mapCategoria(c))
	}
	return out, nil
}

func (s *categoriaService) ObtenerPorID(ctx context.Context, id int64) (*dto.CategoriaResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NoEncontrado("Categoría no encontrada")
		}
		return nil, err
	}
	resp := mapCategoria(*c)
	return &resp, nil
}

func (s *categoriaService) Actualizar(ctx context.Context, id int64, req dto.ActualizarCategoriaRequest) (int64, error) {
	campos := map[string]any{}
	if err := setRequerido(campos, "nombre", req.Nombre); err != nil {
		return 0, err
	}
	setTexto(campos, "descripcion", req.Descripcion)
	if len(campos) == 0 {
		return 0, nil
	}

	n, err := s.repo.Update(ctx, id, campos)
	if errors.Is(err, repository.ErrDuplicado) {
		return 0, categoriaDuplicada(fmt.Sprint(campos["nombre"]))
	}
	n, err = resultadoUpdate(ctx, n, err, s.repo.Exists, id, "Categoría no encontrada")
	if err != nil {
		return 0, err
	}
	invalidarCatalogo(ctx, s.cache)
	return n, nil
}

func (s *categoriaService) Eliminar(ctx context.Context, id int64) error {
	n, err := s.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrReferenciado) {
			return apierror.Conflicto("No se puede eliminar la categoría porque tiene productos asociados.")
		}
		return err
	}
	if n == 0 {
		return apierror.NoEncontrado("Categoría no encontrada")
	}
	invalidarCatalogo(ctx, s.cache)
	return nil
}
