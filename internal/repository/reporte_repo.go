package repository

import (
	"context"
	"time"

	"mimbres/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// VentaDia is one bucket of the sales chart.
type VentaDia struct {
	Fecha time.Time
	Total decimal.Decimal
}

// VentaReciente is a sale row joined with its client's name parts.
type VentaReciente struct {
	ID              int64
	FechaVenta      time.Time
	MontoTotal      decimal.Decimal
	Nombre          *string
	ApellidoPaterno *string
}

// ReporteRepository runs the read-only dashboard queries. The SQL is
// dialect-neutral; time windows arrive already computed.
type ReporteRepository interface {
	ContarPedidos(ctx context.Context, estado string) (int64, error)
	ResumenVentas(ctx context.Context, desde time.Time) (int64, decimal.Decimal, error)
	ContarStockBajo(ctx context.Context, umbral int) (int64, error)
	ContarClientesDesde(ctx context.Context, desde time.Time) (int64, error)
	VentasPorDia(ctx context.Context, desde time.Time) ([]VentaDia, error)
	VentasRecientes(ctx context.Context, limit int) ([]VentaReciente, error)
}

type reporteRepo struct{ db *gorm.DB }

func NewReporteRepository(db *gorm.DB) ReporteRepository { return &reporteRepo{db: db} }

func (r *reporteRepo) ContarPedidos(ctx context.Context, estado string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.PedidoWeb{}).Where("estado = ?", estado).Count(&n).Error
	return n, err
}

func (r *reporteRepo) ResumenVentas(ctx context.Context, desde time.Time) (int64, decimal.Decimal, error) {
	var row struct {
		Cantidad int64
		Monto    decimal.Decimal
	}
	err := r.db.WithContext(ctx).Raw(
		`SELECT COUNT(*) AS cantidad, COALESCE(SUM(monto_total), 0) AS monto
		   FROM ventas WHERE fecha_venta >= ?`, desde).
		Scan(&row).Error
	return row.Cantidad, row.Monto, err
}

func (r *reporteRepo) ContarStockBajo(ctx context.Context, umbral int) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Producto{}).
		Where("estado = ? AND stock_actual <= ?", model.EstadoProductoActivo, umbral).
		Count(&n).Error
	return n, err
}

func (r *reporteRepo) ContarClientesDesde(ctx context.Context, desde time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Cliente{}).Where("fecha_registro >= ?", desde).Count(&n).Error
	return n, err
}

func (r *reporteRepo) VentasPorDia(ctx context.Context, desde time.Time) ([]VentaDia, error) {
	var rows []VentaDia
	err := r.db.WithContext(ctx).Raw(
		`SELECT DATE(fecha_venta) AS fecha, SUM(monto_total) AS total
		   FROM ventas
		  WHERE fecha_venta >= ?
		  GROUP BY DATE(fecha_venta)
		  ORDER BY fecha ASC`, desde).
		Scan(&rows).Error
	return rows, err
}

func (r *reporteRepo) VentasRecientes(ctx context.Context, limit int) ([]VentaReciente, error) {
	var rows []VentaReciente
	err := r.db.WithContext(ctx).Raw(
		`SELECT v.id, v.fecha_venta, v.monto_total, c.nombre, c.apellido_paterno
		   FROM ventas v
		   JOIN clientes c ON c.id = v.cliente_id
		  ORDER BY v.fecha_venta DESC, v.id DESC
		  LIMIT ?`, limit).
		Scan(&rows).Error
	return rows, err
}
