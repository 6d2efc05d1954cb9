package handler

import (
	"net/http"

	"mimbres/internal/dto"
	"mimbres/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportesHandler struct{ svc service.ReporteService }

func NewReportesHandler(svc service.ReporteService) *ReportesHandler {
	return &ReportesHandler{svc: svc}
}

// Metricas godoc
// @Summary      Métricas del tablero
// @Tags         reportes
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.DashboardMetricsResponse
// @Router       /api/panel/dashboard-metrics [get]
func (h *ReportesHandler) Metricas(c *gin.Context) {
	resp, err := h.svc.Metricas(c.Request.Context())
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GraficoVentas godoc
// @Summary      Ventas por día
// @Tags         reportes
// @Produce      json
// @Security     BearerAuth
// @Param        days query int false "Días hacia atrás (7 por defecto, máximo 366)"
// @Success      200 {array} dto.PuntoGrafico
// @Router       /api/panel/sales-chart-data [get]
func (h *ReportesHandler) GraficoVentas(c *gin.Context) {
	var q dto.GraficoQuery
	_ = c.ShouldBindQuery(&q)
	resp, err := h.svc.GraficoVentas(c.Request.Context(), q.Days)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ActividadReciente GET /api/panel/recent-activity?limit=N
func (h *ReportesHandler) ActividadReciente(c *gin.Context) {
	var q dto.ActividadQuery
	_ = c.ShouldBindQuery(&q)
	resp, err := h.svc.ActividadReciente(c.Request.Context(), q.Limit)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
