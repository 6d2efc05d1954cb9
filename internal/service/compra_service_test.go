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

func TestRegistrarCompra_IncrementaStock(t *testing.T) {
	prods := newStubProductoRepo()
	movs := &stubMovimientoRepo{}
	prods.seed(model.Producto{ID: 1, Nombre: "Cesto", StockActual: 2})
	prods.seed(model.Producto{ID: 2, Nombre: "Bandeja"})
	compras := &stubCompraRepo{}
	svc := service.NewCompraService(compras, &stubProveedorRepo{stubExistencia{5: true}},
		service.NewInventarioService(prods, movs), nil)

	resp, err := svc.RegistrarCompra(context.Background(), 1, dto.RegistrarCompraRequest{
		ProveedorID: 5,
		Items: []dto.ItemCompraRequest{
			{ProductoID: 2, Cantidad: 4, CostoUnitario: dec("12.50")},
			{ProductoID: 1, Cantidad: 3, CostoUnitario: dec("8")},
		},
	})
	require.NoError(t, err)

	assert.True(t, resp.MontoTotal.Equal(decimal.RequireFromString("74")))
	assert.Equal(t, 2, resp.Items)
	assert.Equal(t, 5, prods.productos[1].StockActual)
	assert.Equal(t, 4, prods.productos[2].StockActual)
	require.Len(t, movs.movs, 2)
	for _, m := range movs.movs {
		assert.Equal(t, model.MovimientoEntrada, m.Tipo)
		assert.Equal(t, service.RefCompra(resp.ID), m.Referencia)
	}
}

func TestRegistrarCompra_ProveedorInexistente(t *testing.T) {
	prods := newStubProductoRepo()
	svc := service.NewCompraService(&stubCompraRepo{}, &stubProveedorRepo{stubExistencia{}},
		service.NewInventarioService(prods, &stubMovimientoRepo{}), nil)

	_, err := svc.RegistrarCompra(context.Background(), 1, dto.RegistrarCompraRequest{
		ProveedorID: 9,
		Items:       []dto.ItemCompraRequest{{ProductoID: 1, Cantidad: 1, CostoUnitario: dec("1")}},
	})
	assert.ErrorIs(t, err, apierror.ErrNoEncontrado)
}

func TestRegistrarCompra_ProductoInexistenteNoInsertaCompra(t *testing.T) {
	compras := &stubCompraRepo{}
	movs := &stubMovimientoRepo{}
	svc := service.NewCompraService(compras, &stubProveedorRepo{stubExistencia{5: true}},
		service.NewInventarioService(newStubProductoRepo(), movs), nil)

	_, err := svc.RegistrarCompra(context.Background(), 1, dto.RegistrarCompraRequest{
		ProveedorID: 5,
		Items:       []dto.ItemCompraRequest{{ProductoID: 31, Cantidad: 2, CostoUnitario: dec("4")}},
	})

	assert.ErrorIs(t, err, apierror.ErrNoEncontrado)
	assert.Empty(t, compras.compras)
	assert.Empty(t, movs.movs)
}

func TestRegistrarCompra_ReferenciaRotaAlInsertarEsNoEncontrado(t *testing.T) {
	prods := newStubProductoRepo()
	prods.seed(model.Producto{ID: 1, Nombre: "Cesto", StockActual: 2})
	compras := &stubCompraRepo{createErr: fmt.Errorf("insert compra: %w", repository.ErrReferenciado)}
	svc := service.NewCompraService(compras, &stubProveedorRepo{stubExistencia{5: true}},
		service.NewInventarioService(prods, &stubMovimientoRepo{}), nil)

	_, err := svc.RegistrarCompra(context.Background(), 1, dto.RegistrarCompraRequest{
		ProveedorID: 5,
		Items:       []dto.ItemCompraRequest{{ProductoID: 1, Cantidad: 1, CostoUnitario: dec("1")}},
	})

	assert.ErrorIs(t, err, apierror.ErrNoEncontrado)
	assert.Equal(t, 2, prods.productos[1].StockActual)
}

func TestRegistrarCompra_CostoNegativo(t *testing.T) {
	svc := service.NewCompraService(&stubCompraRepo{}, &stubProveedorRepo{stubExistencia{5: true}},
		service.NewInventarioService(newStubProductoRepo(), &stubMovimientoRepo{}), nil)

	_, err := svc.RegistrarCompra(context.Background(), 1, dto.RegistrarCompraRequest{
		ProveedorID: 5,
		Items:       []dto.ItemCompraRequest{{ProductoID: 1, Cantidad: 1, CostoUnitario: dec("-1")}},
	})
	assert.ErrorIs(t, err, apierror.ErrValidacion)
}
