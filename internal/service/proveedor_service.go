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

type ProveedorService interface {
	Crear(ctx context.Context, req dto.CrearProveedorRequest) (*dto.ProveedorResponse, error)
	Listar(ctx context.Context) ([]dto.ProveedorResponse, error)
	ObtenerPorID(ctx context.Context, id int64) (*dto.ProveedorResponse, error)
	Actualizar(ctx context.Context, id int64, req dto.ActualizarProveedorRequest) (int64, error)
	Eliminar(ctx context.Context, id int64) error
}

type proveedorService struct {
	repo repository.ProveedorRepository
}

func NewProveedorService(repo repository.ProveedorRepository) ProveedorService {
	return &proveedorService{repo: repo}
}

func mapProveedor(p model.Proveedor) dto.ProveedorResponse {
	return dto.ProveedorResponse{
		ID:               p.ID,
		Nombre:           p.Nombre,
		TelefonoContacto: p.TelefonoContacto,
		Direccion:        p.Direccion,
	}
}

func proveedorDuplicado(nombre string) error {
	return apierror.Conflicto(fmt.Sprintf("El proveedor '%s' ya existe.", nombre))
}

func (s *proveedorService) Crear(ctx context.Context, req dto.CrearProveedorRequest) (*dto.ProveedorResponse, error) {
	nombre := strings.TrimSpace(req.Nombre)
	if nombre == "" {
		return nil, apierror.Validacion("El nombre es obligatorio")
	}
	p := &model.Proveedor{
		Nombre:           nombre,
		TelefonoContacto: textoOpcional(req.TelefonoContacto),
		Direccion:        textoOpcional(req.Direccion),
	}
	if err := s.repo.Create(ctx, p); err != nil {
		if errors.Is(err, repository.ErrDuplicado) {
			return nil, proveedorDuplicado(nombre)
		}
		return nil, err
	}
	resp := mapProveedor(*p)
	return &resp, nil
}

func (s *proveedorService) Listar(ctx context.Context) ([]dto.ProveedorResponse, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProveedorResponse, 0, len(list))
	for _, p := range list {
		out = append(out, mapProveedor(p))
	}
	return out, nil
}

func (s *proveedorService) ObtenerPorID(ctx context.Context, id int64) (*dto.ProveedorResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NoEncontrado("Proveedor no encontrado")
		}
		return nil, err
	}
	resp := mapProveedor(*p)
	return &resp, nil
}

func (s *proveedorService) Actualizar(ctx context.Context, id int64, req dto.ActualizarProveedorRequest) (int64, error) {
	campos := map[string]any{}
	if err := setRequerido(campos, "nombre", req.Nombre); err != nil {
		return 0, err
	}
	setTexto(campos, "telefono_contacto", req.TelefonoContacto)
	setTexto(campos, "direccion", req.Direccion)
	if len(campos) == 0 {
		return 0, nil
	}

	n, err := s.repo.Update(ctx, id, campos)
	if errors.Is(err, repository.ErrDuplicado) {
		return 0, proveedorDuplicado(fmt.Sprint(campos["nombre"]))
	}
	return resultadoUpdate(ctx, n, err, s.repo.Exists, id, "Proveedor no encontrado")
}

func (s *proveedorService) Eliminar(ctx context.Context, id int64) error {
	n, err := s.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrReferenciado) {
			return apierror.Conflicto("No se puede eliminar el proveedor porque tiene compras asociadas.")
		}
		return err
	}
	if n == 0 {
		return apierror.NoEncontrado("Proveedor no encontrado")
	}
	return nil
}
