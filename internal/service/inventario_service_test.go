package service_test

import (
	"context"
	"fmt"
	"testing"

	"mimbres/internal/apierror"
	"mimbres/internal/model"
	"mimbres/internal/repository"
	"mimbres/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLedger(t *testing.T) (*stubProductoRepo, *stubMovimientoRepo, service.InventarioService) {
	t.Helper()
	prods := newStubProductoRepo()
	movs := &stubMovimientoRepo{}
	return prods, movs, service.NewInventarioService(prods, movs)
}

func TestAplicarTx_EntradaYSalidaRegistranMovimientos(t *testing.T) {
	prods, movs, inv := newLedger(t)
	prods.seed(model.Producto{ID: 1, Nombre: "Canasta", StockActual: 4, PrecioUnitario: decimal.NewFromInt(10)})

	require.NoError(t, inv.AplicarTx(context.Background(), nil, 7, model.MovimientoEntrada, service.RefCompra(1),
		[]service.LineaStock{{ProductoID: 1, Cantidad: 6}}))
	require.NoError(t, inv.AplicarTx(context.Background(), nil, 7, model.MovimientoSalida, service.RefVenta(3),
		[]service.LineaStock{{ProductoID: 1, Cantidad: 9}}))

	assert.Equal(t, 1, prods.productos[1].StockActual)
	require.Len(t, movs.movs, 2)
	assert.Equal(t, 4, movs.movs[0].StockAnterior)
	assert.Equal(t, 10, movs.movs[0].StockNuevo)
	assert.Equal(t, "Compra #1", movs.movs[0].Referencia)
	assert.Equal(t, model.MovimientoSalida, movs.movs[1].Tipo)
	assert.Equal(t, 9, movs.movs[1].Cantidad)
	assert.Equal(t, "Venta #3", movs.movs[1].Referencia)
	assert.Equal(t, int64(7), movs.movs[1].UsuarioID)
}

func TestAplicarTx_StockInsuficienteEsConflicto(t *testing.T) {
	prods, movs, inv := newLedger(t)
	prods.seed(model.Producto{ID: 1, Nombre: "Canasta", StockActual: 1})

	err := inv.AplicarTx(context.Background(), nil, 1, model.MovimientoSalida, "Venta #1",
		[]service.LineaStock{{ProductoID: 1, Cantidad: 2}})

	require.Error(t, err)
	assert.ErrorIs(t, err, apierror.ErrConflicto)
	assert.Contains(t, err.Error(), "disponible 1, solicitado 2")
	assert.Equal(t, 1, prods.productos[1].StockActual)
	assert.Empty(t, movs.movs)
}

func TestAplicarTx_LineasRepetidasAcumulan(t *testing.T) {
	prods, movs, inv := newLedger(t)
	prods.seed(model.Producto{ID: 1, Nombre: "Canasta", StockActual: 3})

	err := inv.AplicarTx(context.Background(), nil, 1, model.MovimientoSalida, "Venta #1",
		[]service.LineaStock{{ProductoID: 1, Cantidad: 2}, {ProductoID: 1, Cantidad: 2}})

	require.Error(t, err, "repeated lines are summed before anything is written")
	assert.ErrorIs(t, err, apierror.ErrConflicto)
	assert.Contains(t, err.Error(), "disponible 3, solicitado 4")
	assert.Empty(t, movs.movs)
	assert.Equal(t, 3, prods.productos[1].StockActual)
}

func TestBloquearTx_NoEscribeHastaAplicar(t *testing.T) {
	prods, movs, inv := newLedger(t)
	prods.seed(model.Producto{ID: 1, Nombre: "Canasta", StockActual: 5})

	r, err := inv.BloquearTx(context.Background(), nil, model.MovimientoSalida,
		[]service.LineaStock{{ProductoID: 1, Cantidad: 2}})
	require.NoError(t, err)
	assert.Empty(t, movs.movs)
	assert.Equal(t, 5, prods.productos[1].StockActual)

	require.NoError(t, r.AplicarTx(nil, 3, service.RefVenta(8)))
	require.Len(t, movs.movs, 1)
	assert.Equal(t, "Venta #8", movs.movs[0].Referencia)
	assert.Equal(t, 3, prods.productos[1].StockActual)
}

func TestBloquearTx_ProductoInexistenteEsNoEncontrado(t *testing.T) {
	_, _, inv := newLedger(t)
	_, err := inv.BloquearTx(context.Background(), nil, model.MovimientoSalida,
		[]service.LineaStock{{ProductoID: 42, Cantidad: 1}})
	assert.ErrorIs(t, err, apierror.ErrNoEncontrado)
	assert.Contains(t, err.Error(), "Producto 42")
}

func TestAplicarTx_UsuarioInexistenteEsNoEncontrado(t *testing.T) {
	prods, movs, inv := newLedger(t)
	prods.seed(model.Producto{ID: 1, Nombre: "Canasta", StockActual: 5})
	movs.createErr = fmt.Errorf("insert movimiento: %w", repository.ErrReferenciado)

	err := inv.AplicarTx(context.Background(), nil, 99, model.MovimientoEntrada, "Compra #1",
		[]service.LineaStock{{ProductoID: 1, Cantidad: 1}})
	assert.ErrorIs(t, err, apierror.ErrNoEncontrado)
	assert.Contains(t, err.Error(), "usuario")
}

func TestAplicarTx_ProductoInexistente(t *testing.T) {
	_, _, inv := newLedger(t)
	err := inv.AplicarTx(context.Background(), nil, 1, model.MovimientoEntrada, "Compra #1",
		[]service.LineaStock{{ProductoID: 99, Cantidad: 1}})
	assert.ErrorIs(t, err, apierror.ErrNoEncontrado)
}

func TestAplicarTx_TipoDesconocido(t *testing.T) {
	_, _, inv := newLedger(t)
	err := inv.AplicarTx(context.Background(), nil, 1, "AJUSTE", "x", []service.LineaStock{{ProductoID: 1, Cantidad: 1}})
	assert.Error(t, err)
}

func TestKardex_Concilia(t *testing.T) {
	prods, _, inv := newLedger(t)
	prods.seed(model.Producto{ID: 1, Nombre: "Canasta"})
	ctx := context.Background()

	require.NoError(t, inv.AplicarTx(ctx, nil, 1, model.MovimientoEntrada, "Compra #1", []service.LineaStock{{ProductoID: 1, Cantidad: 5}}))
	require.NoError(t, inv.AplicarTx(ctx, nil, 1, model.MovimientoSalida, "Venta #1", []service.LineaStock{{ProductoID: 1, Cantidad: 2}}))

	k, err := inv.Kardex(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, k.StockActual)
	assert.Equal(t, 5, k.TotalEntradas)
	assert.Equal(t, 2, k.TotalSalidas)
	assert.True(t, k.Conciliado)
	require.Len(t, k.Movimientos, 2)
	assert.Equal(t, "Venta #1", k.Movimientos[0].Referencia, "newest first")

	_, err = inv.Kardex(ctx, 42)
	assert.ErrorIs(t, err, apierror.ErrNoEncontrado)
}
