package handler

import (
	"fmt"
	"net/http"

	"mimbres/internal/dto"
	"mimbres/internal/infra"
	"mimbres/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type VentasHandler struct {
	svc     service.VentaService
	negocio string
}

func NewVentasHandler(svc service.VentaService, negocio string) *VentasHandler {
	return &VentasHandler{svc: svc, negocio: negocio}
}

// RegistrarVenta godoc
// @Summary      Registrar una nueva venta
// @Description  Transacción única: inserta la venta y sus líneas, bloquea los productos y descuenta stock con un movimiento SALIDA por línea.
// @Tags         ventas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.RegistrarVentaRequest true "Detalle de la venta"
// @Success      201  {object} dto.VentaResponse
// @Failure      404  {object} apierror.APIError
// @Failure      409  {object} apierror.APIError "Stock insuficiente"
// @Failure      422  {object} apierror.ValidationError
// @Router       /api/panel/ventas [post]
func (h *VentasHandler) RegistrarVenta(c *gin.Context) {
	var req dto.RegistrarVentaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RegistrarVenta(c.Request.Context(), usuarioID(c), req)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Detalle godoc
// @Summary      Detalle de venta
// @Tags         ventas
// @Produce      json
// @Security     BearerAuth
// @Param        id  path     int true "ID de la venta"
// @Success      200 {object} dto.VentaDetalleResponse
// @Failure      404 {object} apierror.APIError
// @Router       /api/panel/ventas/{id} [get]
func (h *VentasHandler) Detalle(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ObtenerDetalle(c.Request.Context(), id)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Comprobante godoc
// @Summary      Comprobante PDF de la venta
// @Tags         ventas
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id  path int true "ID de la venta"
// @Success      200 {file} binary
// @Failure      404 {object} apierror.APIError
// @Router       /api/panel/ventas/{id}/comprobante [get]
func (h *VentasHandler) Comprobante(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	venta, err := h.svc.ObtenerDetalle(c.Request.Context(), id)
	if err != nil {
		responderError(c, err)
		return
	}
	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", fmt.Sprintf(`inline; filename="venta-%d.pdf"`, id))
	c.Status(http.StatusOK)
	if err := infra.ComprobanteVentaPDF(c.Writer, h.negocio, *venta); err != nil {
		// Headers are already sent; only log.
		log.Error().Err(err).Int64("venta_id", id).Msg("pdf generation failed")
	}
}
