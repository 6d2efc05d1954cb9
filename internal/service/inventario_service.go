package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"mimbres/internal/apierror"
	"mimbres/internal/dto"
	"mimbres/internal/model"
	"mimbres/internal/repository"

	"gorm.io/gorm"
)

// LineaStock is one product quantity to move through the ledger.
type LineaStock struct {
	ProductoID int64
	Cantidad   int
}

// Document references written on movements.
func RefVenta(id int64) string                { return fmt.Sprintf("Venta #%d", id) }
func RefCompra(id int64) string               { return fmt.Sprintf("Compra #%d", id) }
func RefStockInicial(productoID int64) string { return fmt.Sprintf("Stock inicial producto #%d", productoID) }
func RefAjuste(productoID int64) string       { return fmt.Sprintf("Ajuste manual producto #%d", productoID) }

// InventarioService is the stock ledger engine. It is the only path that
// changes productos.stock_actual, and it always appends the matching
// movimiento in the same transaction.
type InventarioService interface {
	// BloquearTx locks every referenced product (ascending id), checks that
	// they exist and that SALIDA lines fit the stock. It must run before the
	// caller inserts rows that reference the products, so concurrent
	// documents queue on the row lock instead of deadlocking on FK checks.
	BloquearTx(ctx context.Context, tx *gorm.DB, tipo string, lineas []LineaStock) (*Reserva, error)
	// AplicarTx is BloquearTx followed by Reserva.AplicarTx.
	AplicarTx(ctx context.Context, tx *gorm.DB, usuarioID int64, tipo, referencia string, lineas []LineaStock) error
	Kardex(ctx context.Context, productoID int64) (*dto.KardexResponse, error)
}

type inventarioService struct {
	productos   repository.ProductoRepository
	movimientos repository.MovimientoRepository
}

func NewInventarioService(productos repository.ProductoRepository, movimientos repository.MovimientoRepository) InventarioService {
	return &inventarioService{productos: productos, movimientos: movimientos}
}

// Reserva holds products locked and checked by BloquearTx. Apply it in the
// same transaction.
type Reserva struct {
	movimientos repository.MovimientoRepository
	productos   repository.ProductoRepository
	tipo        string
	lineas      []LineaStock
	stock       map[int64]int
}

func (s *inventarioService) BloquearTx(ctx context.Context, tx *gorm.DB, tipo string, lineas []LineaStock) (*Reserva, error) {
	if tipo != model.MovimientoEntrada && tipo != model.MovimientoSalida {
		return nil, fmt.Errorf("tipo de movimiento desconocido %q", tipo)
	}
	r := &Reserva{productos: s.productos, movimientos: s.movimientos, tipo: tipo, lineas: lineas}
	if len(lineas) == 0 {
		return r, nil
	}
	for _, l := range lineas {
		if l.Cantidad <= 0 {
			return nil, apierror.Validacion("La cantidad debe ser mayor a cero")
		}
	}

	ids := idsOrdenados(lineas)
	locked, err := s.productos.LockForUpdateTx(tx, ids)
	if err != nil {
		return nil, err
	}
	r.stock = make(map[int64]int, len(locked))
	for _, p := range locked {
		r.stock[p.ID] = p.StockActual
	}
	for _, id := range ids {
		if _, ok := r.stock[id]; !ok {
			return nil, apierror.NoEncontrado(fmt.Sprintf("Producto %d no encontrado", id))
		}
	}

	if tipo == model.MovimientoSalida {
		pedido := make(map[int64]int, len(ids))
		for _, l := range lineas {
			pedido[l.ProductoID] += l.Cantidad
			if disp := r.stock[l.ProductoID]; pedido[l.ProductoID] > disp {
				return nil, apierror.Conflicto(fmt.Sprintf(
					"stock insuficiente para el producto #%d (disponible %d, solicitado %d)",
					l.ProductoID, disp, pedido[l.ProductoID]))
			}
		}
	}
	return r, nil
}

// AplicarTx writes the new stock and one movement per line with referencia.
func (r *Reserva) AplicarTx(tx *gorm.DB, usuarioID int64, referencia string) error {
	for _, l := range r.lineas {
		antes := r.stock[l.ProductoID]
		despues := antes + l.Cantidad
		if r.tipo == model.MovimientoSalida {
			despues = antes - l.Cantidad
		}

		if err := r.productos.UpdateStockTx(tx, l.ProductoID, despues); err != nil {
			return err
		}
		mov := &model.MovimientoInventario{
			ProductoID:    l.ProductoID,
			UsuarioID:     usuarioID,
			Tipo:          r.tipo,
			Cantidad:      l.Cantidad,
			StockAnterior: antes,
			StockNuevo:    despues,
			Referencia:    referencia,
		}
		if err := r.movimientos.CreateTx(tx, mov); err != nil {
			if errors.Is(err, repository.ErrReferenciado) {
				return apierror.NoEncontrado("El usuario de la sesión ya no existe")
			}
			return err
		}
		r.stock[l.ProductoID] = despues
	}
	return nil
}

func (s *inventarioService) AplicarTx(ctx context.Context, tx *gorm.DB, usuarioID int64, tipo, referencia string, lineas []LineaStock) error {
	r, err := s.BloquearTx(ctx, tx, tipo, lineas)
	if err != nil {
		return err
	}
	return r.AplicarTx(tx, usuarioID, referencia)
}

func (s *inventarioService) Kardex(ctx context.Context, productoID int64) (*dto.KardexResponse, error) {
	p, err := s.productos.FindByID(ctx, productoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NoEncontrado("Producto no encontrado")
		}
		return nil, err
	}
	movs, err := s.movimientos.ListByProducto(ctx, productoID)
	if err != nil {
		return nil, err
	}
	tot, err := s.movimientos.Totales(ctx, productoID)
	if err != nil {
		return nil, err
	}

	resp := &dto.KardexResponse{
		ProductoID:    p.ID,
		Nombre:        p.Nombre,
		StockActual:   p.StockActual,
		TotalEntradas: tot.Entradas,
		TotalSalidas:  tot.Salidas,
		Conciliado:    tot.Entradas-tot.Salidas == p.StockActual,
		Movimientos:   make([]dto.MovimientoResponse, 0, len(movs)),
	}
	for _, m := range movs {
		resp.Movimientos = append(resp.Movimientos, dto.MovimientoResponse{
			ID:            m.ID,
			Tipo:          m.Tipo,
			Cantidad:      m.Cantidad,
			StockAnterior: m.StockAnterior,
			StockNuevo:    m.StockNuevo,
			Referencia:    m.Referencia,
			UsuarioID:     m.UsuarioID,
			Fecha:         m.Fecha,
		})
	}
	return resp, nil
}

func idsOrdenados(lineas []LineaStock) []int64 {
	seen := make(map[int64]bool, len(lineas))
	ids := make([]int64, 0, len(lineas))
	for _, l := range lineas {
		if !seen[l.ProductoID] {
			seen[l.ProductoID] = true
			ids = append(ids, l.ProductoID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
