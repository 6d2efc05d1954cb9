package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mimbres/internal/apierror"
	"mimbres/internal/dto"
	"mimbres/internal/model"
	"mimbres/internal/repository"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// NotificadorPedidos receives an event for every committed web order.
// Implemented by infra.KafkaNotificador and infra.Mailer.
type NotificadorPedidos interface {
	Nombre() string
	PedidoCreado(ctx context.Context, ev dto.PedidoCreadoEvento) error
}

const notificacionTimeout = 3 * time.Second

type PedidoService interface {
	Registrar(ctx context.Context, req dto.RegistrarPedidoRequest) (*dto.PedidoCreadoResponse, error)
	ListarPendientes(ctx context.Context) ([]dto.PedidoResponse, error)
	Obtener(ctx context.Context, id int64) (*dto.PedidoResponse, error)
	CambiarEstado(ctx context.Context, id int64, nuevoEstado string) error
}

type pedidoService struct {
	repo          repository.PedidoWebRepository
	productos     repository.ProductoRepository
	notificadores []NotificadorPedidos
}

func NewPedidoService(
	repo repository.PedidoWebRepository,
	productos repository.ProductoRepository,
	notificadores ...NotificadorPedidos,
) PedidoService {
	return &pedidoService{repo: repo, productos: productos, notificadores: notificadores}
}

// Registrar stores a storefront order. Prices must match the catalog and
// every product must be ACTIVO. Stock is not touched: the order only becomes
// a Venta after staff confirm it.
func (s *pedidoService) Registrar(ctx context.Context, req dto.RegistrarPedidoRequest) (*dto.PedidoCreadoResponse, error) {
	if n := len(req.TelefonoWhatsapp); n < 7 || n > 20 {
		return nil, apierror.Validacion("El teléfono de WhatsApp debe tener entre 7 y 20 caracteres")
	}
	if len(req.Items) == 0 {
		return nil, apierror.Validacion("El pedido debe tener al menos un producto")
	}

	ids := make([]int64, 0, len(req.Items))
	for _, it := range req.Items {
		if it.ProductoID <= 0 || it.Cantidad < 1 {
			return nil, apierror.Validacion("Cada producto requiere id_producto y una cantidad de al menos 1")
		}
		if it.PrecioUnitario == nil || it.PrecioUnitario.IsNegative() {
			return nil, apierror.Validacion("Cada producto requiere un precio_unitario mayor o igual a 0")
		}
		ids = append(ids, it.ProductoID)
	}

	productos, err := s.productos.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	catalogo := make(map[int64]model.Producto, len(productos))
	for _, p := range productos {
		catalogo[p.ID] = p
	}

	total := decimal.Zero
	items := make([]model.PedidoWebItem, 0, len(req.Items))
	for _, it := range req.Items {
		p, ok := catalogo[it.ProductoID]
		if !ok || p.Estado != model.EstadoProductoActivo {
			return nil, apierror.NoEncontrado(fmt.Sprintf("El producto %d no está disponible", it.ProductoID))
		}
		if !p.PrecioUnitario.Equal(*it.PrecioUnitario) {
			return nil, apierror.Conflicto(fmt.Sprintf(
				"el precio cambió para %q: ahora es $%s, actualice el carrito",
				p.Nombre, p.PrecioUnitario.StringFixed(2)))
		}
		total = total.Add(p.PrecioUnitario.Mul(decimal.NewFromInt(int64(it.Cantidad))))
		items = append(items, model.PedidoWebItem{
			ProductoID:     p.ID,
			Cantidad:       it.Cantidad,
			PrecioUnitario: p.PrecioUnitario,
		})
	}

	pedido := model.PedidoWeb{
		TelefonoWhatsapp: req.TelefonoWhatsapp,
		MontoEstimado:    total,
		Estado:           model.EstadoPedidoIniciado,
		Items:            items,
	}
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		return s.repo.Create(ctx, tx, &pedido)
	})
	if txErr != nil {
		return nil, txErr
	}

	s.notificar(ctx, dto.PedidoCreadoEvento{
		PedidoID:         pedido.ID,
		TelefonoWhatsapp: pedido.TelefonoWhatsapp,
		MontoEstimado:    total,
		Items:            len(items),
		FechaPedido:      pedido.FechaPedido,
	})

	return &dto.PedidoCreadoResponse{ID: pedido.ID, MontoEstimado: total, Items: len(items)}, nil
}

// notificar fans the event out to every notifier. Failures are logged only.
func (s *pedidoService) notificar(ctx context.Context, ev dto.PedidoCreadoEvento) {
	if len(s.notificadores) == 0 {
		return
	}
	nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notificacionTimeout)
	defer cancel()
	for _, n := range s.notificadores {
		if err := n.PedidoCreado(nctx, ev); err != nil {
			log.Warn().Err(err).
				Str("notificador", n.Nombre()).
				Int64("pedido_id", ev.PedidoID).
				Msg("notificacion de pedido fallida")
		}
	}
}

func (s *pedidoService) ListarPendientes(ctx context.Context) ([]dto.PedidoResponse, error) {
	list, err := s.repo.ListByEstado(ctx, model.EstadoPedidoIniciado)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PedidoResponse, 0, len(list))
	for _, p := range list {
		out = append(out, pedidoToResponse(p))
	}
	return out, nil
}

func (s *pedidoService) Obtener(ctx context.Context, id int64) (*dto.PedidoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NoEncontrado("Pedido no encontrado")
		}
		return nil, err
	}
	resp := pedidoToResponse(*p)
	return &resp, nil
}

// CambiarEstado closes a started order as CONCRETADO or CANCELADO. The
// update is conditional on the order still being INICIADO, so of two
// concurrent transitions only one wins.
func (s *pedidoService) CambiarEstado(ctx context.Context, id int64, nuevoEstado string) error {
	if nuevoEstado != model.EstadoPedidoConcretado && nuevoEstado != model.EstadoPedidoCancelado {
		return apierror.Validacion("Estado inválido. Use CONCRETADO o CANCELADO")
	}
	n, err := s.repo.CambiarEstado(ctx, id, model.EstadoPedidoIniciado, nuevoEstado)
	if err != nil {
		return err
	}
	if n > 0 {
		log.Info().Int64("pedido_id", id).Str("estado", nuevoEstado).Msg("pedido actualizado")
		return nil
	}

	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.NoEncontrado("Pedido no encontrado")
		}
		return err
	}
	return apierror.Conflicto(fmt.Sprintf("El pedido ya está %s y no puede cambiar de estado", p.Estado))
}

func pedidoToResponse(p model.PedidoWeb) dto.PedidoResponse {
	resp := dto.PedidoResponse{
		ID:               p.ID,
		TelefonoWhatsapp: p.TelefonoWhatsapp,
		MontoEstimado:    p.MontoEstimado,
		Estado:           p.Estado,
		FechaPedido:      p.FechaPedido,
	}
	for _, it := range p.Items {
		item := dto.ItemPedidoResponse{
			ProductoID:     it.ProductoID,
			Cantidad:       it.Cantidad,
			PrecioUnitario: it.PrecioUnitario,
		}
		if it.Producto != nil {
			item.Nombre = it.Producto.Nombre
		}
		resp.Items = append(resp.Items, item)
	}
	return resp
}
