package service

import (
	"context"

	"mimbres/internal/apierror"
	"mimbres/internal/dto"
	"mimbres/internal/model"
	"mimbres/internal/repository"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CompraService interface {
	RegistrarCompra(ctx context.Context, usuarioID int64, req dto.RegistrarCompraRequest) (*dto.CompraResponse, error)
}

type compraService struct {
	repo        repository.CompraRepository
	proveedores repository.ProveedorRepository
	inventario  InventarioService
	cache       CatalogoCache
}

func NewCompraService(
	repo repository.CompraRepository,
	proveedores repository.ProveedorRepository,
	inventario InventarioService,
	cache CatalogoCache,
) CompraService {
	return &compraService{repo: repo, proveedores: proveedores, inventario: inventario, cache: cache}
}

// RegistrarCompra inserts the purchase and its lines, increments stock and
// writes one ENTRADA movement per line ("Compra #id"), all in one transaction.
func (s *compraService) RegistrarCompra(ctx context.Context, usuarioID int64, req dto.RegistrarCompraRequest) (*dto.CompraResponse, error) {
	if req.ProveedorID <= 0 {
		return nil, apierror.Validacion("El proveedor es obligatorio")
	}
	if len(req.Items) == 0 {
		return nil, apierror.Validacion("La compra debe tener al menos un producto")
	}

	total := decimal.Zero
	items := make([]model.CompraItem, 0, len(req.Items))
	lineas := make([]LineaStock, 0, len(req.Items))
	for _, it := range req.Items {
		if it.ProductoID <= 0 || it.Cantidad < 1 {
			return nil, apierror.Validacion("Cada producto requiere id_producto y una cantidad de al menos 1")
		}
		if it.CostoUnitario == nil || it.CostoUnitario.IsNegative() {
			return nil, apierror.Validacion("Cada producto requiere un costo_unitario mayor o igual a 0")
		}
		total = total.Add(it.CostoUnitario.Mul(decimal.NewFromInt(int64(it.Cantidad))))
		items = append(items, model.CompraItem{
			ProductoID:    it.ProductoID,
			Cantidad:      it.Cantidad,
			CostoUnitario: *it.CostoUnitario,
		})
		lineas = append(lineas, LineaStock{ProductoID: it.ProductoID, Cantidad: it.Cantidad})
	}

	ok, err := s.proveedores.Exists(ctx, req.ProveedorID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apierror.NoEncontrado("Proveedor no encontrado")
	}

	compra := model.Compra{
		ProveedorID: req.ProveedorID,
		UsuarioID:   usuarioID,
		MontoTotal:  total,
		Items:       items,
	}
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		reserva, err := s.inventario.BloquearTx(ctx, tx, model.MovimientoEntrada, lineas)
		if err != nil {
			return err
		}
		if err := s.repo.Create(ctx, tx, &compra); err != nil {
			return referenciaNoEncontrada(err, "Proveedor o usuario no encontrado")
		}
		return reserva.AplicarTx(tx, usuarioID, RefCompra(compra.ID))
	})
	if txErr != nil {
		return nil, txErr
	}
	invalidarCatalogo(ctx, s.cache)

	log.Info().
		Int64("compra_id", compra.ID).
		Str("total", total.StringFixed(2)).
		Int("items", len(items)).
		Msg("compra registrada")

	return &dto.CompraResponse{ID: compra.ID, MontoTotal: total, Items: len(items)}, nil
}
