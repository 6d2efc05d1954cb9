package service_test

import (
	"context"
	"testing"

	"mimbres/internal/dto"
	"mimbres/internal/model"
	"mimbres/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogo_CacheHitYInvalidacion(t *testing.T) {
	ctx := context.Background()
	prods := newStubProductoRepo()
	prods.seed(model.Producto{ID: 1, Nombre: "Canasta", CategoriaID: 1})
	cats := newStubCategoriaRepo(1)
	cache := newMemCache()
	catalogo := service.NewCatalogoService(prods, cats, cache)
	categorias := service.NewCategoriaService(cats, cache)

	first, err := catalogo.ListarProductos(ctx, 0)
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, 0, cache.hits)

	prods.seed(model.Producto{ID: 2, Nombre: "Bandeja", CategoriaID: 1})
	cachedList, err := catalogo.ListarProductos(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.hits)
	assert.Len(t, cachedList, 1, "served from cache")

	_, err = categorias.Crear(ctx, dto.CrearCategoriaRequest{Nombre: "Cestería"})
	require.NoError(t, err)

	fresh, err := catalogo.ListarProductos(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, fresh, 2, "a committed write bumps the version")
}

func TestCatalogo_OcultaInactivosYFiltraCategoria(t *testing.T) {
	prods := newStubProductoRepo()
	prods.seed(model.Producto{ID: 1, Nombre: "Canasta", CategoriaID: 1})
	prods.seed(model.Producto{ID: 2, Nombre: "Baul", CategoriaID: 2})
	prods.seed(model.Producto{ID: 3, Nombre: "Cesto", CategoriaID: 1, Estado: model.EstadoProductoInactivo})
	catalogo := service.NewCatalogoService(prods, newStubCategoriaRepo(1, 2), nil)

	list, err := catalogo.ListarProductos(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Canasta", list[0].Nombre)

	cats, err := catalogo.ListarCategorias(context.Background())
	require.NoError(t, err)
	assert.Len(t, cats, 2)
}
