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

type ClienteService interface {
	Crear(ctx context.Context, req dto.CrearClienteRequest) (*dto.ClienteResponse, error)
	Listar(ctx context.Context) ([]dto.ClienteResponse, error)
	ObtenerPorID(ctx context.Context, id int64) (*dto.ClienteResponse, error)
	Buscar(ctx context.Context, term string) ([]dto.ClienteResponse, error)
	Actualizar(ctx context.Context, id int64, req dto.ActualizarClienteRequest) (int64, error)
	Eliminar(ctx context.Context, id int64) error
}

type clienteService struct {
	repo        repository.ClienteRepository
	searchLimit int
}

func NewClienteService(repo repository.ClienteRepository, searchLimit int) ClienteService {
	return &clienteService{repo: repo, searchLimit: searchLimit}
}

func mapCliente(c model.Cliente) dto.ClienteResponse {
	return dto.ClienteResponse{
		ID:               c.ID,
		Nombre:           c.Nombre,
		ApellidoPaterno:  c.ApellidoPaterno,
		ApellidoMaterno:  c.ApellidoMaterno,
		TelefonoWhatsapp: c.TelefonoWhatsapp,
		Email:            c.Email,
		FechaRegistro:    c.FechaRegistro,
	}
}

func telefonoDuplicado(tel string) error {
	return apierror.Conflicto(fmt.Sprintf("El número de WhatsApp '%s' ya está registrado.", tel))
}

func (s *clienteService) Crear(ctx context.Context, req dto.CrearClienteRequest) (*dto.ClienteResponse, error) {
	nombre := strings.TrimSpace(req.Nombre)
	tel := strings.TrimSpace(req.TelefonoWhatsapp)
	if nombre == "" || tel == "" {
		return nil, apierror.Validacion("Nombre y teléfono de WhatsApp son obligatorios")
	}
	c := &model.Cliente{
		Nombre:           &nombre,
		ApellidoPaterno:  textoOpcional(req.ApellidoPaterno),
		ApellidoMaterno:  textoOpcional(req.ApellidoMaterno),
		TelefonoWhatsapp: tel,
		Email:            textoOpcional(req.Email),
	}
	if err := s.repo.Create(ctx, c); err != nil {
		if errors.Is(err, repository.ErrDuplicado) {
			return nil, telefonoDuplicado(tel)
		}
		return nil, err
	}
	resp := mapCliente(*c)
	return &resp, nil
}

func (s *clienteService) Listar(ctx context.Context) ([]dto.ClienteResponse, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return mapClientes(list), nil
}

func (s *clienteService) ObtenerPorID(ctx context.Context, id int64) (*dto.ClienteResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NoEncontrado("Cliente no encontrado")
		}
		return nil, err
	}
	resp := mapCliente(*c)
	return &resp, nil
}

func (s *clienteService) Buscar(ctx context.Context, term string) ([]dto.ClienteResponse, error) {
	term, err := terminoBusqueda(term)
	if err != nil {
		return nil, err
	}
	list, err := s.repo.Search(ctx, term, s.searchLimit)
	if err != nil {
		return nil, err
	}
	return mapClientes(list), nil
}

func (s *clienteService) Actualizar(ctx context.Context, id int64, req dto.ActualizarClienteRequest) (int64, error) {
	campos := map[string]any{}
	if err := setRequerido(campos, "nombre", req.Nombre); err != nil {
		return 0, err
	}
	if err := setRequerido(campos, "telefono_whatsapp", req.TelefonoWhatsapp); err != nil {
		return 0, err
	}
	setTexto(campos, "apellido_paterno", req.ApellidoPaterno)
	setTexto(campos, "apellido_materno", req.ApellidoMaterno)
	setTexto(campos, "email", req.Email)
	if len(campos) == 0 {
		return 0, nil
	}

	n, err := s.repo.Update(ctx, id, campos)
	if errors.Is(err, repository.ErrDuplicado) {
		return 0, telefonoDuplicado(fmt.Sprint(campos["telefono_whatsapp"]))
	}
	return resultadoUpdate(ctx, n, err, s.repo.Exists, id, "Cliente no encontrado")
}

func (s *clienteService) Eliminar(ctx context.Context, id int64) error {
	n, err := s.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrReferenciado) {
			return apierror.Conflicto("No se puede eliminar el cliente porque tiene ventas asociadas.")
		}
		return err
	}
	if n == 0 {
		return apierror.NoEncontrado("Cliente no encontrado")
	}
	return nil
}

func mapClientes(list []model.Cliente) []dto.ClienteResponse {
	out := make([]dto.ClienteResponse, 0, len(list))
	for _, c := range list {
		out = append(out, mapCliente(c))
	}
	return out
}
