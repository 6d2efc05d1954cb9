package service_test

import (
	"context"
	"fmt"
	"testing"

	"mimbres/internal/apierror"
	"mimbres/internal/dto"
	"mimbres/internal/model"
	"mimbres/internal/repository"
	"mimbres/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type productoFixture struct {
	prods *stubProductoRepo
	movs  *stubMovimientoRepo
	cache *memCache
	svc   service.ProductoService
}

func newProductoFixture(t *testing.T) *productoFixture {
	t.Helper()
	f := &productoFixture{prods: newStubProductoRepo(), movs: &stubMovimientoRepo{}, cache: newMemCache()}
	inv := service.NewInventarioService(f.prods, f.movs)
	f.svc = service.NewProductoService(f.prods, newStubCategoriaRepo(1), inv, f.cache, 10)
	return f
}

func TestCrearProducto_StockInicialGeneraEntrada(t *testing.T) {
	f := newProductoFixture(t)

	resp, err := f.svc.Crear(context.Background(), 2, dto.CrearProductoRequest{
		Nombre:         "  Canasta grande ",
		StockActual:    5,
		PrecioUnitario: dec("120.50"),
		CategoriaID:    1,
		Color:          ptr(""),
	})
	require.NoError(t, err)

	assert.Equal(t, "Canasta grande", resp.Nombre)
	assert.Equal(t, 5, resp.StockActual)
	assert.Equal(t, model.EstadoProductoActivo, resp.Estado)
	assert.Nil(t, resp.Color, "blank optional text is stored as NULL")
	assert.Equal(t, 5, f.prods.productos[resp.ID].StockActual)
	require.Len(t, f.movs.movs, 1)
	assert.Equal(t, model.MovimientoEntrada, f.movs.movs[0].Tipo)
	assert.Equal(t, 0, f.movs.movs[0].StockAnterior)
	assert.Equal(t, service.RefStockInicial(resp.ID), f.movs.movs[0].Referencia)
	assert.Equal(t, int64(1), f.cache.version)
}

func TestCrearProducto_SinStockNoGeneraMovimiento(t *testing.T) {
	f := newProductoFixture(t)
	_, err := f.svc.Crear(context.Background(), 2, dto.CrearProductoRequest{
		Nombre: "Bandeja", PrecioUnitario: dec("10"), CategoriaID: 1,
	})
	require.NoError(t, err)
	assert.Empty(t, f.movs.movs)
}

func TestCrearProducto_CategoriaInexistente(t *testing.T) {
	f := newProductoFixture(t)
	_, err := f.svc.Crear(context.Background(), 2, dto.CrearProductoRequest{
		Nombre: "Bandeja", PrecioUnitario: dec("10"), CategoriaID: 8,
	})
	assert.ErrorIs(t, err, apierror.ErrNoEncontrado)
}

func TestCrearProducto_UsuarioBorradoNoSeReportaComoCategoria(t *testing.T) {
	f := newProductoFixture(t)
	f.movs.createErr = fmt.Errorf("insert movimiento: %w", repository.ErrReferenciado)

	_, err := f.svc.Crear(context.Background(), 2, dto.CrearProductoRequest{
		Nombre: "Bandeja", StockActual: 3, PrecioUnitario: dec("10"), CategoriaID: 1,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, apierror.ErrNoEncontrado)
	assert.Contains(t, err.Error(), "usuario")
	assert.NotContains(t, err.Error(), "Categoría")
}

func TestActualizarProducto_AjusteDeStockPasaPorElLibro(t *testing.T) {
	f := newProductoFixture(t)
	f.prods.seed(model.Producto{ID: 3, Nombre: "Cesto", StockActual: 5, CategoriaID: 1})

	n, err := f.svc.Actualizar(context.Background(), 2, 3, dto.ActualizarProductoRequest{StockActual: ptr(2)})
	require.NoError(t, err)

	assert.Equal(t, int64(1), n)
	assert.Equal(t, 2, f.prods.productos[3].StockActual)
	require.Len(t, f.movs.movs, 1)
	assert.Equal(t, model.MovimientoSalida, f.movs.movs[0].Tipo)
	assert.Equal(t, 3, f.movs.movs[0].Cantidad)
	assert.Equal(t, service.RefAjuste(3), f.movs.movs[0].Referencia)
}

func TestActualizarProducto_MismoStockNoGeneraMovimiento(t *testing.T) {
	f := newProductoFixture(t)
	f.prods.seed(model.Producto{ID: 3, Nombre: "Cesto", StockActual: 5, CategoriaID: 1})

	_, err := f.svc.Actualizar(context.Background(), 2, 3, dto.ActualizarProductoRequest{StockActual: ptr(5)})
	require.NoError(t, err)
	assert.Empty(t, f.movs.movs)
}

func TestActualizarProducto_SinCamposNoConsulta(t *testing.T) {
	f := newProductoFixture(t)
	f.prods.seed(model.Producto{ID: 3, Nombre: "Cesto", CategoriaID: 1})

	n, err := f.svc.Actualizar(context.Background(), 2, 3, dto.ActualizarProductoRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
	assert.Equal(t, 0, f.prods.updates)
}

func TestActualizarProducto_TextoVacioLimpiaColumna(t *testing.T) {
	f := newProductoFixture(t)
	desc := "vieja"
	f.prods.seed(model.Producto{ID: 3, Nombre: "Cesto", CategoriaID: 1, Descripcion: &desc})

	n, err := f.svc.Actualizar(context.Background(), 2, 3, dto.ActualizarProductoRequest{
		Descripcion:    ptr(""),
		PrecioUnitario: dec("99"),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Nil(t, f.prods.productos[3].Descripcion)
	assert.True(t, f.prods.productos[3].PrecioUnitario.Equal(decimal.NewFromInt(99)))
}

func TestActualizarProducto_NombreVacioEsValidacion(t *testing.T) {
	f := newProductoFixture(t)
	_, err := f.svc.Actualizar(context.Background(), 2, 3, dto.ActualizarProductoRequest{Nombre: ptr("  ")})
	assert.ErrorIs(t, err, apierror.ErrValidacion)
}

func TestActualizarProducto_Inexistente(t *testing.T) {
	f := newProductoFixture(t)
	_, err := f.svc.Actualizar(context.Background(), 2, 40, dto.ActualizarProductoRequest{Nombre: ptr("x")})
	assert.ErrorIs(t, err, apierror.ErrNoEncontrado)
}

func TestCambiarEstadoProducto(t *testing.T) {
	f := newProductoFixture(t)
	f.prods.seed(model.Producto{ID: 3, Nombre: "Cesto", CategoriaID: 1})

	assert.ErrorIs(t, f.svc.CambiarEstado(context.Background(), 3, "BORRADO"), apierror.ErrValidacion)
	require.NoError(t, f.svc.CambiarEstado(context.Background(), 3, model.EstadoProductoAgotado))
	assert.Equal(t, model.EstadoProductoAgotado, f.prods.productos[3].Estado)
	assert.ErrorIs(t, f.svc.CambiarEstado(context.Background(), 9, model.EstadoProductoActivo), apierror.ErrNoEncontrado)
}

func TestEliminarProducto_ConMovimientosEsConflicto(t *testing.T) {
	f := newProductoFixture(t)
	f.prods.seed(model.Producto{ID: 3, Nombre: "Cesto", CategoriaID: 1})
	f.prods.referenciados[3] = true

	err := f.svc.Eliminar(context.Background(), 3)
	assert.ErrorIs(t, err, apierror.ErrConflicto)
	assert.Contains(t, f.prods.productos, int64(3))

	assert.ErrorIs(t, f.svc.Eliminar(context.Background(), 9), apierror.ErrNoEncontrado)
}

func TestBuscarProducto_TerminoCortoEsSolicitudInvalida(t *testing.T) {
	f := newProductoFixture(t)
	f.prods.seed(model.Producto{ID: 1, Nombre: "Canasta chica"})
	f.prods.seed(model.Producto{ID: 2, Nombre: "Canasta grande", Estado: model.EstadoProductoInactivo})

	_, err := f.svc.Buscar(context.Background(), " c ")
	assert.ErrorIs(t, err, apierror.ErrSolicitud)

	list, err := f.svc.Buscar(context.Background(), "cana")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, int64(1), list[0].ID)
}
