package infra

import (
	"fmt"

	"mimbres/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase opens a GORM connection for the given driver ("postgres" or
// "mysql") and sizes the pool. The MySQL DSN must carry parseTime=true so DATE()
// buckets scan into time.Time.
func NewDatabase(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "postgres":
		dialector = postgres.Open(dsn)
	case "mysql":
		dialector = mysql.Open(dsn)
	default:
		return nil, fmt.Errorf("driver de base de datos no soportado: %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	return db, nil
}

// RunMigrations creates or updates every table from the models, then applies
// the idempotent patches AutoMigrate cannot express.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Categoria{},
		&model.Producto{},
		&model.Cliente{},
		&model.Proveedor{},
		&model.Usuario{},
		&model.Venta{},
		&model.VentaItem{},
		&model.Compra{},
		&model.CompraItem{},
		&model.PedidoWeb{},
		&model.PedidoWebItem{},
		&model.MovimientoInventario{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs DDL that only PostgreSQL supports (partial and
// expression indexes). Each statement is IF NOT EXISTS, so re-running is a no-op.
func applySchemaPatches(db *gorm.DB) error {
	if db.Dialector.Name() != "postgres" {
		return nil
	}
	patches := []struct{ descr, sql string }{
		{"pedidos pendientes",
			`CREATE INDEX IF NOT EXISTS idx_pedidos_web_iniciados
			   ON pedidos_web (fecha_pedido DESC) WHERE estado = 'INICIADO'`},
		{"stock bajo",
			`CREATE INDEX IF NOT EXISTS idx_productos_activos_stock
			   ON productos (stock_actual) WHERE estado = 'ACTIVO'`},
		{"busqueda de productos",
			`CREATE INDEX IF NOT EXISTS idx_productos_nombre_lower ON productos (LOWER(nombre))`},
		{"kardex por producto",
			`CREATE INDEX IF NOT EXISTS idx_movimientos_producto_fecha
			   ON movimientos_inventario (producto_id, fecha DESC)`},
	}
	for _, p := range patches {
		if err := db.Exec(p.sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", p.descr, err)
		}
	}
	return nil
}
