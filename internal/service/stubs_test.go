package service_test

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"mimbres/internal/carrito"
	"mimbres/internal/dto"
	"mimbres/internal/model"
	"mimbres/internal/repository"
	"mimbres/internal/service"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ── Productos ─────────────────────────────────────────────────────────────────

type stubProductoRepo struct {
	productos     map[int64]*model.Producto
	referenciados map[int64]bool
	nextID        int64
	updates       int
}

func newStubProductoRepo() *stubProductoRepo {
	return &stubProductoRepo{
		productos:     make(map[int64]*model.Producto),
		referenciados: make(map[int64]bool),
	}
}

func (r *stubProductoRepo) seed(p model.Producto) *model.Producto {
	if p.Estado == "" {
		p.Estado = model.EstadoProductoActivo
	}
	if p.ID > r.nextID {
		r.nextID = p.ID
	}
	r.productos[p.ID] = &p
	return &p
}

func (r *stubProductoRepo) Create(_ context.Context, p *model.Producto) error { return r.CreateTx(nil, p) }

func (r *stubProductoRepo) CreateTx(_ *gorm.DB, p *model.Producto) error {
	r.nextID++
	p.ID = r.nextID
	cp := *p
	r.productos[p.ID] = &cp
	return nil
}

func (r *stubProductoRepo) FindByID(_ context.Context, id int64) (*model.Producto, error) {
	p, ok := r.productos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *stubProductoRepo) FindByIDs(_ context.Context, ids []int64) ([]model.Producto, error) {
	var out []model.Producto
	for _, id := range ids {
		if p, ok := r.productos[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubProductoRepo) sorted(filter func(model.Producto) bool) []model.Producto {
	var out []model.Producto
	for _, p := range r.productos {
		if filter(*p) {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nombre < out[j].Nombre })
	return out
}

func (r *stubProductoRepo) List(_ context.Context) ([]model.Producto, error) {
	return r.sorted(func(model.Producto) bool { return true }), nil
}

func (r *stubProductoRepo) ListCatalogo(_ context.Context, categoriaID int64) ([]model.Producto, error) {
	return r.sorted(func(p model.Producto) bool {
		return p.Estado == model.EstadoProductoActivo && (categoriaID == 0 || p.CategoriaID == categoriaID)
	}), nil
}

func (r *stubProductoRepo) Search(_ context.Context, term string, limit int) ([]model.Producto, error) {
	out := r.sorted(func(p model.Producto) bool {
		return p.Estado == model.EstadoProductoActivo &&
			strings.Contains(strings.ToLower(p.Nombre), strings.ToLower(term))
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *stubProductoRepo) Update(ctx context.Context, id int64, campos map[string]any) (int64, error) {
	return r.UpdateTx(nil, id, campos)
}

func (r *stubProductoRepo) UpdateTx(_ *gorm.DB, id int64, campos map[string]any) (int64, error) {
	r.updates++
	p, ok := r.productos[id]
	if !ok {
		return 0, nil
	}
	for k, v := range campos {
		switch k {
		case "nombre":
			p.Nombre = v.(string)
		case "estado":
			p.Estado = v.(string)
		case "precio_unitario":
			p.PrecioUnitario = v.(decimal.Decimal)
		case "categoria_id":
			p.CategoriaID = v.(int64)
		case "descripcion":
			if v == nil {
				p.Descripcion = nil
			} else {
				s := v.(string)
				p.Descripcion = &s
			}
		}
	}
	return 1, nil
}

func (r *stubProductoRepo) Delete(_ context.Context, id int64) (int64, error) {
	if r.referenciados[id] {
		return 0, repository.ErrReferenciado
	}
	if _, ok := r.productos[id]; !ok {
		return 0, nil
	}
	delete(r.productos, id)
	return 1, nil
}

func (r *stubProductoRepo) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := r.productos[id]
	return ok, nil
}

func (r *stubProductoRepo) LockForUpdateTx(_ *gorm.DB, ids []int64) ([]model.Producto, error) {
	var out []model.Producto
	for _, id := range ids {
		if p, ok := r.productos[id]; ok {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubProductoRepo) UpdateStockTx(_ *gorm.DB, id int64, stock int) error {
	r.productos[id].StockActual = stock
	return nil
}

func (r *stubProductoRepo) DB() *gorm.DB { return nil }

var _ repository.ProductoRepository = (*stubProductoRepo)(nil)

// ── Movimientos ───────────────────────────────────────────────────────────────

type stubMovimientoRepo struct {
	movs      []model.MovimientoInventario
	createErr error
}

func (r *stubMovimientoRepo) CreateTx(_ *gorm.DB, m *model.MovimientoInventario) error {
	if r.createErr != nil {
		return r.createErr
	}
	m.ID = int64(len(r.movs) + 1)
	m.Fecha = time.Now()
	r.movs = append(r.movs, *m)
	return nil
}

func (r *stubMovimientoRepo) ListByProducto(_ context.Context, productoID int64) ([]model.MovimientoInventario, error) {
	var out []model.MovimientoInventario
	for i := len(r.movs) - 1; i >= 0; i-- {
		if r.movs[i].ProductoID == productoID {
			out = append(out, r.movs[i])
		}
	}
	return out, nil
}

func (r *stubMovimientoRepo) Totales(_ context.Context, productoID int64) (repository.TotalesMovimiento, error) {
	var t repository.TotalesMovimiento
	for _, m := range r.movs {
		if m.ProductoID != productoID {
			continue
		}
		if m.Tipo == model.MovimientoEntrada {
			t.Entradas += m.Cantidad
		} else {
			t.Salidas += m.Cantidad
		}
	}
	return t, nil
}

var _ repository.MovimientoRepository = (*stubMovimientoRepo)(nil)

// ── Ventas / Compras ──────────────────────────────────────────────────────────

type stubVentaRepo struct {
	ventas    map[int64]*model.Venta
	createErr error
}

func newStubVentaRepo() *stubVentaRepo { return &stubVentaRepo{ventas: make(map[int64]*model.Venta)} }

func (r *stubVentaRepo) Create(_ context.Context, _ *gorm.DB, v *model.Venta) error {
	if r.createErr != nil {
		return r.createErr
	}
	v.ID = int64(len(r.ventas) + 1)
	v.FechaVenta = time.Now()
	r.ventas[v.ID] = v
	return nil
}

func (r *stubVentaRepo) FindDetalle(_ context.Context, id int64) (*model.Venta, error) {
	v, ok := r.ventas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return v, nil
}

func (r *stubVentaRepo) DB() *gorm.DB { return nil }

var _ repository.VentaRepository = (*stubVentaRepo)(nil)

type stubCompraRepo struct {
	compras   []model.Compra
	createErr error
}

func (r *stubCompraRepo) Create(_ context.Context, _ *gorm.DB, c *model.Compra) error {
	if r.createErr != nil {
		return r.createErr
	}
	c.ID = int64(len(r.compras) + 1)
	r.compras = append(r.compras, *c)
	return nil
}

func (r *stubCompraRepo) DB() *gorm.DB { return nil }

var _ repository.CompraRepository = (*stubCompraRepo)(nil)

// ── Pedidos web ───────────────────────────────────────────────────────────────

type stubPedidoRepo struct {
	pedidos map[int64]*model.PedidoWeb
}

func newStubPedidoRepo() *stubPedidoRepo { return &stubPedidoRepo{pedidos: make(map[int64]*model.PedidoWeb)} }

func (r *stubPedidoRepo) Create(_ context.Context, _ *gorm.DB, p *model.PedidoWeb) error {
	p.ID = int64(len(r.pedidos) + 1)
	p.FechaPedido = time.Now()
	cp := *p
	r.pedidos[p.ID] = &cp
	return nil
}

func (r *stubPedidoRepo) FindByID(_ context.Context, id int64) (*model.PedidoWeb, error) {
	p, ok := r.pedidos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *stubPedidoRepo) ListByEstado(_ context.Context, estado string) ([]model.PedidoWeb, error) {
	var out []model.PedidoWeb
	for _, p := range r.pedidos {
		if p.Estado == estado {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubPedidoRepo) CambiarEstado(_ context.Context, id int64, desde, hacia string) (int64, error) {
	p, ok := r.pedidos[id]
	if !ok || p.Estado != desde {
		return 0, nil
	}
	p.Estado = hacia
	return 1, nil
}

func (r *stubPedidoRepo) DB() *gorm.DB { return nil }

var _ repository.PedidoWebRepository = (*stubPedidoRepo)(nil)

// ── Simple entity repos ───────────────────────────────────────────────────────

// stubExistencia backs Exists for repos whose tests only need presence checks.
type stubExistencia map[int64]bool

func (s stubExistencia) Exists(_ context.Context, id int64) (bool, error) { return s[id], nil }

type stubClienteRepo struct {
	stubExistencia
	clientes      []model.Cliente
	telefonos     map[string]bool
	referenciados map[int64]bool
}

func newStubClienteRepo() *stubClienteRepo {
	return &stubClienteRepo{
		stubExistencia: stubExistencia{},
		telefonos:      map[string]bool{},
		referenciados:  map[int64]bool{},
	}
}

func (r *stubClienteRepo) Create(_ context.Context, c *model.Cliente) error {
	if r.telefonos[c.TelefonoWhatsapp] {
		return repository.ErrDuplicado
	}
	c.ID = int64(len(r.clientes) + 1)
	r.telefonos[c.TelefonoWhatsapp] = true
	r.stubExistencia[c.ID] = true
	r.clientes = append(r.clientes, *c)
	return nil
}

func (r *stubClienteRepo) FindByID(_ context.Context, id int64) (*model.Cliente, error) {
	for _, c := range r.clientes {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubClienteRepo) List(_ context.Context) ([]model.Cliente, error) { return r.clientes, nil }

func (r *stubClienteRepo) Search(_ context.Context, term string, limit int) ([]model.Cliente, error) {
	var out []model.Cliente
	for _, c := range r.clientes {
		if strings.Contains(c.TelefonoWhatsapp, term) ||
			(c.Nombre != nil && strings.Contains(strings.ToLower(*c.Nombre), strings.ToLower(term))) {
			out = append(out, c)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *stubClienteRepo) Update(_ context.Context, id int64, campos map[string]any) (int64, error) {
	if tel, ok := campos["telefono_whatsapp"].(string); ok && r.telefonos[tel] {
		return 0, repository.ErrDuplicado
	}
	if !r.stubExistencia[id] {
		return 0, nil
	}
	return 1, nil
}

func (r *stubClienteRepo) Delete(_ context.Context, id int64) (int64, error) {
	if r.referenciados[id] {
		return 0, repository.ErrReferenciado
	}
	if !r.stubExistencia[id] {
		return 0, nil
	}
	delete(r.stubExistencia, id)
	return 1, nil
}

var _ repository.ClienteRepository = (*stubClienteRepo)(nil)

type stubCategoriaRepo struct {
	stubExistencia
	categorias    []model.Categoria
	referenciados map[int64]bool
}

func newStubCategoriaRepo(ids ...int64) *stubCategoriaRepo {
	r := &stubCategoriaRepo{stubExistencia: stubExistencia{}, referenciados: map[int64]bool{}}
	for _, id := range ids {
		r.stubExistencia[id] = true
		r.categorias = append(r.categorias, model.Categoria{ID: id, Nombre: "Categoria"})
	}
	return r
}

func (r *stubCategoriaRepo) Create(_ context.Context, c *model.Categoria) error {
	for _, x := range r.categorias {
		if strings.EqualFold(x.Nombre, c.Nombre) {
			return repository.ErrDuplicado
		}
	}
	c.ID = int64(len(r.categorias) + 100)
	r.categorias = append(r.categorias, *c)
	r.stubExistencia[c.ID] = true
	return nil
}

func (r *stubCategoriaRepo) FindByID(_ context.Context, id int64) (*model.Categoria, error) {
	for _, c := range r.categorias {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubCategoriaRepo) List(_ context.Context) ([]model.Categoria, error) { return r.categorias, nil }

func (r *stubCategoriaRepo) Update(_ context.Context, id int64, _ map[string]any) (int64, error) {
	if !r.stubExistencia[id] {
		return 0, nil
	}
	return 1, nil
}

func (r *stubCategoriaRepo) Delete(_ context.Context, id int64) (int64, error) {
	if r.referenciados[id] {
		return 0, repository.ErrReferenciado
	}
	if !r.stubExistencia[id] {
		return 0, nil
	}
	delete(r.stubExistencia, id)
	return 1, nil
}

var _ repository.CategoriaRepository = (*stubCategoriaRepo)(nil)

type stubProveedorRepo struct {
	stubExistencia
}

func (r *stubProveedorRepo) Create(_ context.Context, p *model.Proveedor) error {
	p.ID = int64(len(r.stubExistencia) + 1)
	r.stubExistencia[p.ID] = true
	return nil
}
func (r *stubProveedorRepo) FindByID(_ context.Context, id int64) (*model.Proveedor, error) {
	if !r.stubExistencia[id] {
		return nil, gorm.ErrRecordNotFound
	}
	return &model.Proveedor{ID: id}, nil
}
func (r *stubProveedorRepo) List(_ context.Context) ([]model.Proveedor, error) { return nil, nil }
func (r *stubProveedorRepo) Update(_ context.Context, id int64, _ map[string]any) (int64, error) {
	if !r.stubExistencia[id] {
		return 0, nil
	}
	return 1, nil
}
func (r *stubProveedorRepo) Delete(_ context.Context, id int64) (int64, error) {
	if !r.stubExistencia[id] {
		return 0, nil
	}
	return 1, nil
}

var _ repository.ProveedorRepository = (*stubProveedorRepo)(nil)

type stubUsuarioRepo struct {
	stubExistencia
	usuarios map[string]*model.Usuario
	creados  int
}

func newStubUsuarioRepo() *stubUsuarioRepo {
	return &stubUsuarioRepo{stubExistencia: stubExistencia{}, usuarios: map[string]*model.Usuario{}}
}

func (r *stubUsuarioRepo) Create(_ context.Context, u *model.Usuario) error {
	if _, ok := r.usuarios[u.Username]; ok {
		return repository.ErrDuplicado
	}
	r.creados++
	u.ID = int64(len(r.usuarios) + 1)
	cp := *u
	r.usuarios[u.Username] = &cp
	r.stubExistencia[u.ID] = true
	return nil
}

func (r *stubUsuarioRepo) FindByUsername(_ context.Context, username string) (*model.Usuario, error) {
	u, ok := r.usuarios[username]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *stubUsuarioRepo) FindByID(_ context.Context, id int64) (*model.Usuario, error) {
	for _, u := range r.usuarios {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUsuarioRepo) ExistsUsername(_ context.Context, username string) (bool, error) {
	_, ok := r.usuarios[username]
	return ok, nil
}

func (r *stubUsuarioRepo) List(_ context.Context) ([]model.Usuario, error) {
	var out []model.Usuario
	for _, u := range r.usuarios {
		out = append(out, *u)
	}
	return out, nil
}

func (r *stubUsuarioRepo) Update(_ context.Context, id int64, campos map[string]any) (int64, error) {
	for _, u := range r.usuarios {
		if u.ID == id {
			if h, ok := campos["password_hash"].(string); ok {
				u.PasswordHash = h
			}
			return 1, nil
		}
	}
	return 0, nil
}

func (r *stubUsuarioRepo) Delete(_ context.Context, id int64) (int64, error) {
	for k, u := range r.usuarios {
		if u.ID == id {
			delete(r.usuarios, k)
			return 1, nil
		}
	}
	return 0, nil
}

var _ repository.UsuarioRepository = (*stubUsuarioRepo)(nil)

// ── Notificadores / cache / carrito ──────────────────────────────────────────

type fakeNotificador struct {
	eventos []dto.PedidoCreadoEvento
	err     error
}

func (f *fakeNotificador) Nombre() string { return "fake" }

func (f *fakeNotificador) PedidoCreado(_ context.Context, ev dto.PedidoCreadoEvento) error {
	f.eventos = append(f.eventos, ev)
	return f.err
}

var _ service.NotificadorPedidos = (*fakeNotificador)(nil)

// memCache mimics the versioned Redis cache in memory.
type memCache struct {
	version int64
	data    map[string]any
	hits    int
}

func newMemCache() *memCache { return &memCache{data: map[string]any{}} }

func (c *memCache) key(v int64, clave string) string { return fmt.Sprintf("v%d:%s", v, clave) }

func (c *memCache) Version(_ context.Context) (int64, error) { return c.version, nil }

func (c *memCache) Get(_ context.Context, v int64, clave string, dest any) bool {
	val, ok := c.data[c.key(v, clave)]
	if !ok {
		return false
	}
	c.hits++
	switch d := dest.(type) {
	case *[]dto.ProductoResponse:
		*d = val.([]dto.ProductoResponse)
	case *[]dto.CategoriaResponse:
		*d = val.([]dto.CategoriaResponse)
	default:
		return false
	}
	return true
}

func (c *memCache) Set(_ context.Context, v int64, clave string, val any) { c.data[c.key(v, clave)] = val }

func (c *memCache) Invalidar(_ context.Context) { c.version++ }

var _ service.CatalogoCache = (*memCache)(nil)

type memAlmacen struct {
	carritos map[string]carrito.Estado
	// concurrente makes every Actualizar lose the race.
	concurrente bool
}

func newMemAlmacen() *memAlmacen { return &memAlmacen{carritos: map[string]carrito.Estado{}} }

func (a *memAlmacen) Obtener(_ context.Context, id string) (carrito.Estado, error) {
	e, ok := a.carritos[id]
	if !ok {
		return carrito.Estado{Items: []carrito.Item{}}, nil
	}
	return e, nil
}

func (a *memAlmacen) Guardar(_ context.Context, id string, e carrito.Estado) error {
	a.carritos[id] = e
	return nil
}

func (a *memAlmacen) Actualizar(ctx context.Context, id string, fn func(carrito.Estado) (carrito.Estado, error)) (carrito.Estado, error) {
	if a.concurrente {
		return carrito.Estado{}, carrito.ErrConcurrente
	}
	e, _ := a.Obtener(ctx, id)
	next, err := fn(e)
	if err != nil {
		return carrito.Estado{}, err
	}
	a.carritos[id] = next
	return next, nil
}

func (a *memAlmacen) Eliminar(_ context.Context, id string) error {
	delete(a.carritos, id)
	return nil
}

var _ carrito.Almacen = (*memAlmacen)(nil)

// ── Helpers ───────────────────────────────────────────────────────────────────

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func ptr[T any](v T) *T { return &v }
