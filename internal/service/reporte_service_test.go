package service_test

import (
	"context"
	"testing"
	"time"

	"mimbres/internal/model"
	"mimbres/internal/repository"
	"mimbres/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubReporteRepo struct {
	desdes    []time.Time
	umbral    int
	limit     int
	estado    string
	dias      []repository.VentaDia
	recientes []repository.VentaReciente
}

func (r *stubReporteRepo) ContarPedidos(_ context.Context, estado string) (int64, error) {
	r.estado = estado
	return 4, nil
}

func (r *stubReporteRepo) ResumenVentas(_ context.Context, desde time.Time) (int64, decimal.Decimal, error) {
	r.desdes = append(r.desdes, desde)
	return 3, decimal.RequireFromString("250.50"), nil
}

func (r *stubReporteRepo) ContarStockBajo(_ context.Context, umbral int) (int64, error) {
	r.umbral = umbral
	return 2, nil
}

func (r *stubReporteRepo) ContarClientesDesde(_ context.Context, desde time.Time) (int64, error) {
	r.desdes = append(r.desdes, desde)
	return 1, nil
}

func (r *stubReporteRepo) VentasPorDia(_ context.Context, desde time.Time) ([]repository.VentaDia, error) {
	r.desdes = append(r.desdes, desde)
	return r.dias, nil
}

func (r *stubReporteRepo) VentasRecientes(_ context.Context, limit int) ([]repository.VentaReciente, error) {
	r.limit = limit
	return r.recientes, nil
}

var _ repository.ReporteRepository = (*stubReporteRepo)(nil)

var reporteAhora = time.Date(2026, 3, 10, 15, 30, 0, 0, time.Local)

func newReporte(repo *stubReporteRepo) service.ReporteService {
	svc := service.NewReporteService(repo, 5, 7)
	service.SetNow(svc, func() time.Time { return reporteAhora })
	return svc
}

func TestMetricas_VentanaDesdeMedianoche(t *testing.T) {
	repo := &stubReporteRepo{}
	m, err := newReporte(repo).Metricas(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(4), m.PedidosPendientes)
	assert.Equal(t, model.EstadoPedidoIniciado, repo.estado)
	assert.Equal(t, int64(3), m.VentasRecientes.Cantidad)
	assert.True(t, m.VentasRecientes.MontoTotal.Equal(decimal.RequireFromString("250.50")))
	assert.Equal(t, int64(2), m.StockBajo)
	assert.Equal(t, 5, repo.umbral)
	assert.Equal(t, int64(1), m.ClientesNuevos)
	assert.Equal(t, 7, m.VentanaDias)

	want := time.Date(2026, 3, 3, 0, 0, 0, 0, time.Local)
	require.Len(t, repo.desdes, 2)
	for _, d := range repo.desdes {
		assert.True(t, want.Equal(d), "got %s", d)
	}
}

func TestGraficoVentas_LimitesYFormato(t *testing.T) {
	repo := &stubReporteRepo{dias: []repository.VentaDia{
		{Fecha: time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC), Total: decimal.NewFromInt(100)},
	}}
	svc := newReporte(repo)

	pts, err := svc.GraficoVentas(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, pts, 1)
	assert.Equal(t, "2026-03-08", pts[0].Fecha)
	assert.True(t, time.Date(2026, 3, 3, 0, 0, 0, 0, time.Local).Equal(repo.desdes[0]), "default is 7 days")

	_, err = svc.GraficoVentas(context.Background(), 1000)
	require.NoError(t, err)
	assert.True(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.Local).AddDate(0, 0, -366).Equal(repo.desdes[1]))
}

func TestActividadReciente_NombreYLimite(t *testing.T) {
	nombre, apellido := "Ana", "Rojas"
	repo := &stubReporteRepo{recientes: []repository.VentaReciente{
		{ID: 9, MontoTotal: decimal.NewFromInt(90), Nombre: &nombre, ApellidoPaterno: &apellido},
		{ID: 8, MontoTotal: decimal.NewFromInt(10), Nombre: &nombre},
	}}
	svc := newReporte(repo)

	list, err := svc.ActividadReciente(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, 5, repo.limit)
	require.Len(t, list, 2)
	assert.Equal(t, "Ana Rojas", list[0].ClienteNombre)
	assert.Equal(t, "Ana", list[1].ClienteNombre)

	_, err = svc.ActividadReciente(context.Background(), 500)
	require.NoError(t, err)
	assert.Equal(t, 50, repo.limit)
}
