package router

import (
	"time"

	_ "mimbres/docs"
	"mimbres/internal/acceso"
	"mimbres/internal/carrito"
	"mimbres/internal/config"
	"mimbres/internal/handler"
	"mimbres/internal/infra"
	"mimbres/internal/middleware"
	"mimbres/internal/repository"
	"mimbres/internal/service"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
// Notifiers receive every committed web order; main owns their lifecycle.
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, notificadores ...service.NotificadorPedidos) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(cfg.Origins()))
	r.Use(middleware.ErrorHandler())

	// ── Infrastructure ───────────────────────────────────────────────────────
	cache := infra.NewCatalogoCache(rdb, time.Duration(cfg.CatalogoCacheTTLSeconds)*time.Second)
	carritos := carrito.NewRedisAlmacen(rdb, time.Duration(cfg.CarritoTTLHours)*time.Hour)
	imagenes := infra.NewAlmacenImagenes(cfg.UploadDir, cfg.UploadMaxMB)
	contador := middleware.NewRedisContador(rdb)

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	productoRepo := repository.NewProductoRepository(db)
	movimientoRepo := repository.NewMovimientoRepository(db)
	categoriaRepo := repository.NewCategoriaRepository(db)
	clienteRepo := repository.NewClienteRepository(db)
	proveedorRepo := repository.NewProveedorRepository(db)
	ventaRepo := repository.NewVentaRepository(db)
	compraRepo := repository.NewCompraRepository(db)
	pedidoRepo := repository.NewPedidoWebRepository(db)
	reporteRepo := repository.NewReporteRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	inventarioSvc := service.NewInventarioService(productoRepo, movimientoRepo)
	productoSvc := service.NewProductoService(productoRepo, categoriaRepo, inventarioSvc, cache, cfg.SearchLimit)
	categoriaSvc := service.NewCategoriaService(categoriaRepo, cache)
	clienteSvc := service.NewClienteService(clienteRepo, cfg.SearchLimit)
	proveedorSvc := service.NewProveedorService(proveedorRepo)
	ventaSvc := service.NewVentaService(ventaRepo, clienteRepo, inventarioSvc, cache)
	compraSvc := service.NewCompraService(compraRepo, proveedorRepo, inventarioSvc, cache)
	pedidoSvc := service.NewPedidoService(pedidoRepo, productoRepo, notificadores...)
	carritoSvc := service.NewCarritoService(carritos, productoRepo, pedidoSvc)
	catalogoSvc := service.NewCatalogoService(productoRepo, categoriaRepo, cache)
	reporteSvc := service.NewReporteService(reporteRepo, cfg.LowStockThreshold, cfg.MetricsWindowDays)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usuariosH := handler.NewUsuariosHandler(authSvc)
	productosH := handler.NewProductosHandler(productoSvc, inventarioSvc)
	categoriasH := handler.NewCategoriasHandler(categoriaSvc)
	clientesH := handler.NewClientesHandler(clienteSvc)
	proveedoresH := handler.NewProveedoresHandler(proveedorSvc)
	ventasH := handler.NewVentasHandler(ventaSvc, cfg.NegocioNombre)
	comprasH := handler.NewComprasHandler(compraSvc)
	pedidosH := handler.NewPedidosHandler(pedidoSvc)
	carritoH := handler.NewCarritoHandler(carritoSvc)
	catalogoH := handler.NewCatalogoHandler(catalogoSvc)
	reportesH := handler.NewReportesHandler(reporteSvc)
	uploadH := handler.NewUploadHandler(imagenes)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(handler.DBCheck(db), handler.RedisCheck(rdb)))
	r.Static("/products", cfg.UploadDir)

	api := r.Group("/api")
	api.POST("/auth/login", middleware.LoginRateLimiter(contador), authH.Login)

	// Storefront
	api.GET("/productos", catalogoH.Productos)
	api.GET("/productos/:id", catalogoH.Producto)
	api.GET("/categorias", catalogoH.Categorias)
	api.POST("/pedidos", middleware.PedidosRateLimiter(contador), pedidosH.Registrar)

	cart := api.Group("/carrito")
	{
		cart.POST("", carritoH.Crear)
		cart.GET("/:id", carritoH.Obtener)
		cart.POST("/:id/acciones", carritoH.Aplicar)
		cart.DELETE("/:id", carritoH.Eliminar)
		cart.POST("/:id/confirmar", middleware.PedidosRateLimiter(contador), carritoH.Confirmar)
	}

	// Panel: every route requires a token; operations are declared per route
	panel := api.Group("/panel", middleware.JWTAuth(cfg.JWTSecret))
	op := middleware.RequireOperacion
	{
		panel.GET("/permisos", authH.Permisos)

		panel.GET("/dashboard-metrics", op(acceso.VerDashboard), reportesH.Metricas)
		panel.GET("/sales-chart-data", op(acceso.VerDashboard), reportesH.GraficoVentas)
		panel.GET("/recent-activity", op(acceso.VerDashboard), reportesH.ActividadReciente)

		panel.POST("/ventas", op(acceso.RegistrarVenta), ventasH.RegistrarVenta)
		panel.GET("/ventas/:id", op(acceso.RegistrarVenta), ventasH.Detalle)
		panel.GET("/ventas/:id/comprobante", op(acceso.RegistrarVenta), ventasH.Comprobante)

		panel.POST("/compras", op(acceso.RegistrarCompra), comprasH.RegistrarCompra)

		pedidos := panel.Group("/pedidos", op(acceso.GestionarPedidos))
		{
			pedidos.GET("", pedidosH.ListarPendientes)
			pedidos.GET("/:id", pedidosH.Obtener)
			pedidos.PUT("/:id/estado", pedidosH.CambiarEstado)
		}

		// Sellers read products and clients to build a sale
		leerProductos := op(acceso.GestionarInventario, acceso.RegistrarVenta)
		panel.GET("/productos", leerProductos, productosH.Listar)
		panel.GET("/productos/buscar", leerProductos, productosH.Buscar)
		panel.GET("/productos/:id", leerProductos, productosH.ObtenerPorID)
		prods := panel.Group("/productos", op(acceso.GestionarInventario))
		{
			prods.POST("", productosH.Crear)
			prods.PUT("/:id", productosH.Actualizar)
			prods.PUT("/:id/estado", productosH.CambiarEstado)
			prods.DELETE("/:id", productosH.Eliminar)
			prods.GET("/:id/movimientos", productosH.Movimientos)
		}
		panel.POST("/upload", op(acceso.GestionarInventario), uploadH.Subir)

		cats := panel.Group("/categorias", op(acceso.GestionarCategorias))
		{
			cats.POST("", categoriasH.Crear)
			cats.GET("", categoriasH.Listar)
			cats.GET("/:id", categoriasH.ObtenerPorID)
			cats.PUT("/:id", categoriasH.Actualizar)
			cats.DELETE("/:id", categoriasH.Eliminar)
		}

		leerClientes := op(acceso.GestionarClientes, acceso.RegistrarVenta)
		panel.GET("/clientes", leerClientes, clientesH.Listar)
		panel.GET("/clientes/buscar", leerClientes, clientesH.Buscar)
		panel.GET("/clientes/:id", leerClientes, clientesH.ObtenerPorID)
		clis := panel.Group("/clientes", op(acceso.GestionarClientes))
		{
			clis.POST("", clientesH.Crear)
			clis.PUT("/:id", clientesH.Actualizar)
			clis.DELETE("/:id", clientesH.Eliminar)
		}

		prov := panel.Group("/proveedores", op(acceso.GestionarProveedores, acceso.RegistrarCompra))
		{
			prov.POST("", proveedoresH.Crear)
			prov.GET("", proveedoresH.Listar)
			prov.GET("/:id", proveedoresH.ObtenerPorID)
			prov.PUT("/:id", proveedoresH.Actualizar)
			prov.DELETE("/:id", proveedoresH.Eliminar)
		}

		usuarios := panel.Group("/usuarios", op(acceso.GestionarUsuarios))
		{
			usuarios.POST("", usuariosH.Crear)
			usuarios.GET("", usuariosH.Listar)
			usuarios.GET("/:id", usuariosH.ObtenerPorID)
			usuarios.PUT("/:id", usuariosH.Actualizar)
			usuarios.DELETE("/:id", usuariosH.Eliminar)
		}
	}

	// Swagger UI, only outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
