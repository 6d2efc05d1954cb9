package service

import (
	"context"
	"errors"

	"mimbres/internal/apierror"
	"mimbres/internal/carrito"
	"mimbres/internal/dto"
	"mimbres/internal/model"
	"mimbres/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// CarritoService drives the storefront cart: it loads the state, applies
// one reducer transition and saves the result.
type CarritoService interface {
	Crear(ctx context.Context) (*dto.CarritoResponse, error)
	Obtener(ctx context.Context, id string) (*dto.CarritoResponse, error)
	Aplicar(ctx context.Context, id string, req dto.AccionCarritoRequest) (*dto.CarritoResponse, error)
	Eliminar(ctx context.Context, id string) error
	// Confirmar turns the cart into a web order and clears it.
	Confirmar(ctx context.Context, id string, telefono string) (*dto.PedidoCreadoResponse, error)
}

type carritoService struct {
	almacen   carrito.Almacen
	productos repository.ProductoRepository
	pedidos   PedidoService
}

func NewCarritoService(almacen carrito.Almacen, productos repository.ProductoRepository, pedidos PedidoService) CarritoService {
	return &carritoService{almacen: almacen, productos: productos, pedidos: pedidos}
}

func carritoResponse(id string, e carrito.Estado) *dto.CarritoResponse {
	items := e.Items
	if items == nil {
		items = []carrito.Item{}
	}
	return &dto.CarritoResponse{
		ID:          id,
		Items:       items,
		TotalItems:  e.TotalItems(),
		TotalPrecio: e.TotalPrecio(),
	}
}

func idCarrito(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apierror.Solicitud("Identificador de carrito inválido")
	}
	return nil
}

func (s *carritoService) Crear(ctx context.Context) (*dto.CarritoResponse, error) {
	id := uuid.NewString()
	e := carrito.Estado{Items: []carrito.Item{}}
	if err := s.almacen.Guardar(ctx, id, e); err != nil {
		return nil, err
	}
	return carritoResponse(id, e), nil
}

func (s *carritoService) Obtener(ctx context.Context, id string) (*dto.CarritoResponse, error) {
	if err := idCarrito(id); err != nil {
		return nil, err
	}
	e, err := s.almacen.Obtener(ctx, id)
	if err != nil {
		return nil, err
	}
	return carritoResponse(id, e), nil
}

func (s *carritoService) Aplicar(ctx context.Context, id string, req dto.AccionCarritoRequest) (*dto.CarritoResponse, error) {
	if err := idCarrito(id); err != nil {
		return nil, err
	}
	accion := carrito.Accion{Tipo: req.Tipo, ProductoID: req.ProductoID}
	if req.Tipo != carrito.Vaciar && req.ProductoID <= 0 {
		return nil, apierror.Validacion("La acción requiere id_producto")
	}

	if req.Tipo == carrito.Agregar {
		p, err := s.productos.FindByID(ctx, req.ProductoID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apierror.NoEncontrado("Producto no encontrado")
			}
			return nil, err
		}
		if p.Estado != model.EstadoProductoActivo {
			return nil, apierror.Conflicto("El producto no está disponible")
		}
		accion.Item = &carrito.Item{
			ProductoID:     p.ID,
			Nombre:         p.Nombre,
			PrecioUnitario: p.PrecioUnitario,
			URLImagen:      p.URLImagen,
		}
	}

	next, err := s.almacen.Actualizar(ctx, id, func(e carrito.Estado) (carrito.Estado, error) {
		r, err := carrito.Reducir(e, accion)
		if err != nil {
			return e, apierror.Validacion(err.Error())
		}
		return r, nil
	})
	if errors.Is(err, carrito.ErrConcurrente) {
		return nil, apierror.Conflicto("El carrito cambió mientras se actualizaba, intente de nuevo")
	}
	if err != nil {
		return nil, err
	}
	return carritoResponse(id, next), nil
}

func (s *carritoService) Eliminar(ctx context.Context, id string) error {
	if err := idCarrito(id); err != nil {
		return err
	}
	return s.almacen.Eliminar(ctx, id)
}

func (s *carritoService) Confirmar(ctx context.Context, id string, telefono string) (*dto.PedidoCreadoResponse, error) {
	if err := idCarrito(id); err != nil {
		return nil, err
	}
	e, err := s.almacen.Obtener(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(e.Items) == 0 {
		return nil, apierror.Validacion("El carrito está vacío")
	}

	req := dto.RegistrarPedidoRequest{TelefonoWhatsapp: telefono}
	for _, it := range e.Items {
		precio := it.PrecioUnitario
		req.Items = append(req.Items, dto.ItemPedidoRequest{
			ProductoID:     it.ProductoID,
			Cantidad:       it.Cantidad,
			PrecioUnitario: &precio,
		})
	}
	resp, err := s.pedidos.Registrar(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := s.almacen.Eliminar(ctx, id); err != nil {
		log.Warn().Err(err).Str("carrito", id).Msg("no se pudo vaciar el carrito confirmado")
	}
	return resp, nil
}
