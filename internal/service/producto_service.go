package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"mimbres/internal/apierror"
	"mimbres/internal/dto"
	"mimbres/internal/model"
	"mimbres/internal/repository"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// ProductoService defines the back-office operations on products.
type ProductoService interface {
	Crear(ctx context.Context, usuarioID int64, req dto.CrearProductoRequest) (*dto.ProductoResponse, error)
	ObtenerPorID(ctx context.Context, id int64) (*dto.ProductoResponse, error)
	Listar(ctx context.Context) ([]dto.ProductoResponse, error)
	Buscar(ctx context.Context, term string) ([]dto.ProductoBusqueda, error)
	Actualizar(ctx context.Context, usuarioID, id int64, req dto.ActualizarProductoRequest) (int64, error)
	CambiarEstado(ctx context.Context, id int64, estado string) error
	Eliminar(ctx context.Context, id int64) error
}

type productoService struct {
	repo        repository.ProductoRepository
	categorias  repository.CategoriaRepository
	inventario  InventarioService
	cache       CatalogoCache
	searchLimit int
}

func NewProductoService(
	repo repository.ProductoRepository,
	categorias repository.CategoriaRepository,
	inventario InventarioService,
	cache CatalogoCache,
	searchLimit int,
) ProductoService {
	return &productoService{
		repo:        repo,
		categorias:  categorias,
		inventario:  inventario,
		cache:       cache,
		searchLimit: searchLimit,
	}
}

func mapProducto(p model.Producto) dto.ProductoResponse {
	resp := dto.ProductoResponse{
		ID:             p.ID,
		Nombre:         p.Nombre,
		Descripcion:    p.Descripcion,
		StockActual:    p.StockActual,
		PrecioUnitario: p.PrecioUnitario,
		Dimensiones:    p.Dimensiones,
		Material:       p.Material,
		Color:          p.Color,
		UnidadMedida:   p.UnidadMedida,
		Estado:         p.Estado,
		CategoriaID:    p.CategoriaID,
		URLImagen:      p.URLImagen,
		FechaCreacion:  p.CreatedAt,
	}
	if p.Categoria != nil {
		resp.CategoriaNombre = p.Categoria.Nombre
	}
	return resp
}

func (s *productoService) exigirCategoria(ctx context.Context, id int64) error {
	ok, err := s.categorias.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return apierror.NoEncontrado("Categoría no encontrada")
	}
	return nil
}

// Crear inserts the product and, when it starts with stock, the matching
// ENTRADA movement ("Stock inicial producto #id") in the same transaction.
func (s *productoService) Crear(ctx context.Context, usuarioID int64, req dto.CrearProductoRequest) (*dto.ProductoResponse, error) {
	nombre := strings.TrimSpace(req.Nombre)
	if nombre == "" {
		return nil, apierror.Validacion("El nombre es obligatorio")
	}
	if req.PrecioUnitario == nil || req.PrecioUnitario.IsNegative() {
		return nil, apierror.Validacion("El precio_unitario es obligatorio y no puede ser negativo")
	}
	if req.StockActual < 0 {
		return nil, apierror.Validacion("El stock_actual no puede ser negativo")
	}
	estado := model.EstadoProductoActivo
	if req.Estado != nil {
		if !model.EstadoProductoValido(*req.Estado) {
			return nil, apierror.Validacion("Estado de producto inválido")
		}
		estado = *req.Estado
	}
	if err := s.exigirCategoria(ctx, req.CategoriaID); err != nil {
		return nil, err
	}

	p := model.Producto{
		Nombre:         nombre,
		Descripcion:    textoOpcional(req.Descripcion),
		PrecioUnitario: *req.PrecioUnitario,
		Dimensiones:    textoOpcional(req.Dimensiones),
		Material:       textoOpcional(req.Material),
		Color:          textoOpcional(req.Color),
		UnidadMedida:   textoOpcional(req.UnidadMedida),
		Estado:         estado,
		CategoriaID:    req.CategoriaID,
		URLImagen:      textoOpcional(req.URLImagen),
	}
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.CreateTx(tx, &p); err != nil {
			return referenciaNoEncontrada(err, "Categoría no encontrada")
		}
		if req.StockActual == 0 {
			return nil
		}
		return s.inventario.AplicarTx(ctx, tx, usuarioID, model.MovimientoEntrada, RefStockInicial(p.ID),
			[]LineaStock{{ProductoID: p.ID, Cantidad: req.StockActual}})
	})
	if txErr != nil {
		return nil, txErr
	}
	invalidarCatalogo(ctx, s.cache)

	p.StockActual = req.StockActual
	resp := mapProducto(p)
	return &resp, nil
}

func (s *productoService) ObtenerPorID(ctx context.Context, id int64) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NoEncontrado("Producto no encontrado")
		}
		return nil, err
	}
	resp := mapProducto(*p)
	return &resp, nil
}

func (s *productoService) Listar(ctx context.Context) ([]dto.ProductoResponse, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductoResponse, 0, len(list))
	for _, p := range list {
		out = append(out, mapProducto(p))
	}
	return out, nil
}

// Buscar matches ACTIVO products by name for the sale form.
func (s *productoService) Buscar(ctx context.Context, term string) ([]dto.ProductoBusqueda, error) {
	term, err := terminoBusqueda(term)
	if err != nil {
		return nil, err
	}
	list, err := s.repo.Search(ctx, term, s.searchLimit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductoBusqueda, 0, len(list))
	for _, p := range list {
		out = append(out, dto.ProductoBusqueda{
			ID:             p.ID,
			Nombre:         p.Nombre,
			PrecioUnitario: p.PrecioUnitario,
			StockActual:    p.StockActual,
		})
	}
	return out, nil
}

// Actualizar applies a partial update. A new stock_actual is not written
// directly: the difference goes through the ledger as a manual adjustment.
func (s *productoService) Actualizar(ctx context.Context, usuarioID, id int64, req dto.ActualizarProductoRequest) (int64, error) {
	campos := map[string]any{}
	if err := setRequerido(campos, "nombre", req.Nombre); err != nil {
		return 0, err
	}
	setTexto(campos, "descripcion", req.Descripcion)
	setTexto(campos, "dimensiones", req.Dimensiones)
	setTexto(campos, "material", req.Material)
	setTexto(campos, "color", req.Color)
	setTexto(campos, "unidad_medida", req.UnidadMedida)
	setTexto(campos, "url_imagen", req.URLImagen)
	if req.PrecioUnitario != nil {
		if req.PrecioUnitario.IsNegative() {
			return 0, apierror.Validacion("El precio_unitario no puede ser negativo")
		}
		campos["precio_unitario"] = *req.PrecioUnitario
	}
	if req.Estado != nil {
		if !model.EstadoProductoValido(*req.Estado) {
			return 0, apierror.Validacion("Estado de producto inválido")
		}
		campos["estado"] = *req.Estado
	}
	if req.CategoriaID != nil {
		if err := s.exigirCategoria(ctx, *req.CategoriaID); err != nil {
			return 0, err
		}
		campos["categoria_id"] = *req.CategoriaID
	}
	if req.StockActual != nil && *req.StockActual < 0 {
		return 0, apierror.Validacion("El stock_actual no puede ser negativo")
	}

	if len(campos) == 0 && req.StockActual == nil {
		return 0, nil
	}

	var filas int64
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if len(campos) > 0 {
			n, err := s.repo.UpdateTx(tx, id, campos)
			if err != nil {
				return err
			}
			filas = n
		}
		if req.StockActual == nil {
			return nil
		}

		locked, err := s.repo.LockForUpdateTx(tx, []int64{id})
		if err != nil {
			return err
		}
		if len(locked) == 0 {
			return apierror.NoEncontrado("Producto no encontrado")
		}
		filas = 1
		delta := *req.StockActual - locked[0].StockActual
		switch {
		case delta > 0:
			return s.inventario.AplicarTx(ctx, tx, usuarioID, model.MovimientoEntrada, RefAjuste(id),
				[]LineaStock{{ProductoID: id, Cantidad: delta}})
		case delta < 0:
			return s.inventario.AplicarTx(ctx, tx, usuarioID, model.MovimientoSalida, RefAjuste(id),
				[]LineaStock{{ProductoID: id, Cantidad: -delta}})
		}
		return nil
	})
	if txErr != nil {
		if errors.Is(txErr, repository.ErrReferenciado) {
			return 0, apierror.NoEncontrado("Categoría no encontrada")
		}
		return 0, txErr
	}

	filas, err := resultadoUpdate(ctx, filas, nil, s.repo.Exists, id, "Producto no encontrado")
	if err != nil {
		return 0, err
	}
	invalidarCatalogo(ctx, s.cache)
	return filas, nil
}

func (s *productoService) CambiarEstado(ctx context.Context, id int64, estado string) error {
	if !model.EstadoProductoValido(estado) {
		return apierror.Validacion("Estado inválido. Use ACTIVO, INACTIVO o AGOTADO")
	}
	n, err := s.repo.Update(ctx, id, map[string]any{"estado": estado})
	if _, err := resultadoUpdate(ctx, n, err, s.repo.Exists, id, "Producto no encontrado"); err != nil {
		return err
	}
	invalidarCatalogo(ctx, s.cache)
	return nil
}

func (s *productoService) Eliminar(ctx context.Context, id int64) error {
	n, err := s.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrReferenciado) {
			return apierror.Conflicto("No se puede eliminar el producto porque tiene movimientos o documentos asociados.")
		}
		return err
	}
	if n == 0 {
		return apierror.NoEncontrado("Producto no encontrado")
	}
	invalidarCatalogo(ctx, s.cache)
	log.Info().Int64("producto_id", id).Msg("producto eliminado")
	return nil
}

// terminoBusqueda trims term and rejects terms shorter than two characters.
func terminoBusqueda(term string) (string, error) {
	term = strings.TrimSpace(term)
	if utf8.RuneCountInString(term) < 2 {
		return "", apierror.Solicitud("El término de búsqueda debe tener al menos 2 caracteres")
	}
	return term, nil
}
