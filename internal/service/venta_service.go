package service

import (
	"context"
	"errors"

	"mimbres/internal/apierror"
	"mimbres/internal/dto"
	"mimbres/internal/model"
	"mimbres/internal/repository"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type VentaService interface {
	RegistrarVenta(ctx context.Context, usuarioID int64, req dto.RegistrarVentaRequest) (*dto.VentaResponse, error)
	ObtenerDetalle(ctx context.Context, id int64) (*dto.VentaDetalleResponse, error)
}

type ventaService struct {
	repo       repository.VentaRepository
	clientes   repository.ClienteRepository
	inventario InventarioService
	cache      CatalogoCache
}

func NewVentaService(
	repo repository.VentaRepository,
	clientes repository.ClienteRepository,
	inventario InventarioService,
	cache CatalogoCache,
) VentaService {
	return &ventaService{repo: repo, clientes: clientes, inventario: inventario, cache: cache}
}

// ── RegistrarVenta ────────────────────────────────────────────────────────────
//  1. Validate lines and discount, resolve the client
//  2. BEGIN TX: lock products (ascending id) and check stock, insert venta +
//     items, decrement stock with a SALIDA movement per line ("Venta #id")
//  3. COMMIT, then bump the catalog cache version

func (s *ventaService) RegistrarVenta(ctx context.Context, usuarioID int64, req dto.RegistrarVentaRequest) (*dto.VentaResponse, error) {
	if req.ClienteID <= 0 {
		return nil, apierror.Validacion("El cliente es obligatorio")
	}
	if len(req.Items) == 0 {
		return nil, apierror.Validacion("La venta debe tener al menos un producto")
	}

	bruto := decimal.Zero
	items := make([]model.VentaItem, 0, len(req.Items))
	lineas := make([]LineaStock, 0, len(req.Items))
	for _, it := range req.Items {
		if it.ProductoID <= 0 || it.Cantidad < 1 {
			return nil, apierror.Validacion("Cada producto requiere id_producto y una cantidad de al menos 1")
		}
		if it.PrecioUnitario == nil || it.PrecioUnitario.IsNegative() {
			return nil, apierror.Validacion("Cada producto requiere un precio_unitario mayor o igual a 0")
		}
		item := model.VentaItem{
			ProductoID:     it.ProductoID,
			Cantidad:       it.Cantidad,
			PrecioUnitario: *it.PrecioUnitario,
		}
		bruto = bruto.Add(item.Subtotal())
		items = append(items, item)
		lineas = append(lineas, LineaStock{ProductoID: it.ProductoID, Cantidad: it.Cantidad})
	}

	descuento := decimal.Zero
	if req.Descuento != nil {
		descuento = *req.Descuento
	}
	if descuento.IsNegative() {
		return nil, apierror.Validacion("El descuento no puede ser negativo")
	}
	if descuento.GreaterThan(bruto) {
		return nil, apierror.Validacion("El descuento no puede superar el total de la venta")
	}
	neto := bruto.Sub(descuento)

	ok, err := s.clientes.Exists(ctx, req.ClienteID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apierror.NoEncontrado("Cliente no encontrado")
	}

	venta := model.Venta{
		ClienteID:  req.ClienteID,
		UsuarioID:  usuarioID,
		MontoTotal: neto,
		Descuento:  descuento,
		Items:      items,
	}
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		reserva, err := s.inventario.BloquearTx(ctx, tx, model.MovimientoSalida, lineas)
		if err != nil {
			return err
		}
		if err := s.repo.Create(ctx, tx, &venta); err != nil {
			return referenciaNoEncontrada(err, "Cliente o usuario no encontrado")
		}
		return reserva.AplicarTx(tx, usuarioID, RefVenta(venta.ID))
	})
	if txErr != nil {
		return nil, txErr
	}
	invalidarCatalogo(ctx, s.cache)

	log.Info().
		Int64("venta_id", venta.ID).
		Str("total", neto.StringFixed(2)).
		Int("items", len(items)).
		Msg("venta registrada")

	resp := &dto.VentaResponse{
		ID:         venta.ID,
		MontoTotal: neto,
		Descuento:  descuento,
		Items:      make([]dto.ItemVentaResponse, 0, len(items)),
	}
	for _, it := range venta.Items {
		resp.Items = append(resp.Items, dto.ItemVentaResponse{
			ProductoID:     it.ProductoID,
			Cantidad:       it.Cantidad,
			PrecioUnitario: it.PrecioUnitario,
			Subtotal:       it.Subtotal(),
		})
	}
	return resp, nil
}

func (s *ventaService) ObtenerDetalle(ctx context.Context, id int64) (*dto.VentaDetalleResponse, error) {
	v, err := s.repo.FindDetalle(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NoEncontrado("Venta no encontrada")
		}
		return nil, err
	}

	resp := &dto.VentaDetalleResponse{
		ID:         v.ID,
		FechaVenta: v.FechaVenta,
		ClienteID:  v.ClienteID,
		UsuarioID:  v.UsuarioID,
		Descuento:  v.Descuento,
		MontoTotal: v.MontoTotal,
		Bruto:      v.MontoTotal.Add(v.Descuento),
		Items:      make([]dto.ItemVentaResponse, 0, len(v.Items)),
	}
	if v.Cliente != nil {
		resp.ClienteNombre = v.Cliente.NombreCompleto()
		resp.ClienteTel = v.Cliente.TelefonoWhatsapp
	}
	if v.Usuario != nil {
		resp.Vendedor = v.Usuario.Nombre + " " + v.Usuario.ApellidoPaterno
	}
	for _, it := range v.Items {
		item := dto.ItemVentaResponse{
			ProductoID:     it.ProductoID,
			Cantidad:       it.Cantidad,
			PrecioUnitario: it.PrecioUnitario,
			Subtotal:       it.Subtotal(),
		}
		if it.Producto != nil {
			item.Nombre = it.Producto.Nombre
		}
		resp.Items = append(resp.Items, item)
	}
	return resp, nil
}
