package service

import (
	"context"
	"strings"
	"time"

	"mimbres/internal/dto"
	"mimbres/internal/model"
	"mimbres/internal/repository"
)

const (
	graficoDiasDefault    = 7
	graficoDiasMax        = 366
	actividadLimitDefault = 5
	actividadLimitMax     = 50
)

// ReporteService computes the dashboard aggregates. All reads, no side effects.
type ReporteService interface {
	Metricas(ctx context.Context) (*dto.DashboardMetricsResponse, error)
	GraficoVentas(ctx context.Context, dias int) ([]dto.PuntoGrafico, error)
	ActividadReciente(ctx context.Context, limit int) ([]dto.ActividadReciente, error)
}

type reporteService struct {
	repo        repository.ReporteRepository
	umbralStock int
	ventanaDias int
	now         func() time.Time
}

func NewReporteService(repo repository.ReporteRepository, umbralStock, ventanaDias int) ReporteService {
	return &reporteService{repo: repo, umbralStock: umbralStock, ventanaDias: ventanaDias, now: time.Now}
}

// desde returns local midnight dias days before today.
func (s *reporteService) desde(dias int) time.Time {
	now := s.now()
	hoy := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return hoy.AddDate(0, 0, -dias)
}

func (s *reporteService) Metricas(ctx context.Context) (*dto.DashboardMetricsResponse, error) {
	desde := s.desde(s.ventanaDias)

	pendientes, err := s.repo.ContarPedidos(ctx, model.EstadoPedidoIniciado)
	if err != nil {
		return nil, err
	}
	cantidad, monto, err := s.repo.ResumenVentas(ctx, desde)
	if err != nil {
		return nil, err
	}
	stockBajo, err := s.repo.ContarStockBajo(ctx, s.umbralStock)
	if err != nil {
		return nil, err
	}
	nuevos, err := s.repo.ContarClientesDesde(ctx, desde)
	if err != nil {
		return nil, err
	}

	return &dto.DashboardMetricsResponse{
		PedidosPendientes: pendientes,
		VentasRecientes:   dto.VentasRecientes{Cantidad: cantidad, MontoTotal: monto},
		StockBajo:         stockBajo,
		ClientesNuevos:    nuevos,
		VentanaDias:       s.ventanaDias,
	}, nil
}

// GraficoVentas returns one point per day with sales, ascending. dias outside
// 1..366 falls back to the default or is capped.
func (s *reporteService) GraficoVentas(ctx context.Context, dias int) ([]dto.PuntoGrafico, error) {
	switch {
	case dias <= 0:
		dias = graficoDiasDefault
	case dias > graficoDiasMax:
		dias = graficoDiasMax
	}
	rows, err := s.repo.VentasPorDia(ctx, s.desde(dias))
	if err != nil {
		return nil, err
	}
	out := make([]dto.PuntoGrafico, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.PuntoGrafico{Fecha: r.Fecha.Format("2006-01-02"), Total: r.Total})
	}
	return out, nil
}

func (s *reporteService) ActividadReciente(ctx context.Context, limit int) ([]dto.ActividadReciente, error) {
	switch {
	case limit <= 0:
		limit = actividadLimitDefault
	case limit > actividadLimitMax:
		limit = actividadLimitMax
	}
	rows, err := s.repo.VentasRecientes(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ActividadReciente, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.ActividadReciente{
			ID:            r.ID,
			Fecha:         r.FechaVenta,
			MontoTotal:    r.MontoTotal,
			ClienteNombre: unirNombre(r.Nombre, r.ApellidoPaterno),
		})
	}
	return out, nil
}

func unirNombre(partes ...*string) string {
	var b []string
	for _, p := range partes {
		if p != nil && *p != "" {
			b = append(b, *p)
		}
	}
	return strings.Join(b, " ")
}
