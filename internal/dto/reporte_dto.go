package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type VentasRecientes struct {
	Cantidad   int64           `json:"cantidad"`
	MontoTotal decimal.Decimal `json:"monto_total"`
}

type DashboardMetricsResponse struct {
	PedidosPendientes int64           `json:"pedidos_pendientes"`
	VentasRecientes   VentasRecientes `json:"ventas_recientes"`
	StockBajo         int64           `json:"stock_bajo"`
	ClientesNuevos    int64           `json:"clientes_nuevos"`
	VentanaDias       int             `json:"ventana_dias"`
}

// PuntoGrafico is one day of the sales chart.
type PuntoGrafico struct {
	Fecha string          `json:"fecha"`
	Total decimal.Decimal `json:"total"`
}

type ActividadReciente struct {
	ID            int64           `json:"id"`
	Fecha         time.Time       `json:"fecha"`
	MontoTotal    decimal.Decimal `json:"monto_total"`
	ClienteNombre string          `json:"nombre_cliente"`
}

type GraficoQuery struct {
	Days int `form:"days"`
}

type ActividadQuery struct {
	Limit int `form:"limit"`
}
