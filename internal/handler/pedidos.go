package handler

import (
	"net/http"

	"mimbres/internal/dto"
	"mimbres/internal/service"

	"github.com/gin-gonic/gin"
)

type PedidosHandler struct{ svc service.PedidoService }

func NewPedidosHandler(svc service.PedidoService) *PedidosHandler { return &PedidosHandler{svc: svc} }

// Registrar godoc
// @Summary      Registrar pedido web
// @Description  Público. Los precios deben coincidir con el catálogo. No modifica stock.
// @Tags         pedidos
// @Accept       json
// @Produce      json
// @Param        body body dto.RegistrarPedidoRequest true "Pedido"
// @Success      201  {object} dto.PedidoCreadoResponse
// @Failure      404  {object} apierror.APIError "Producto no disponible"
// @Failure      409  {object} apierror.APIError "El precio cambió"
// @Failure      422  {object} apierror.ValidationError
// @Failure      429  {object} apierror.APIError
// @Router       /api/pedidos [post]
func (h *PedidosHandler) Registrar(c *gin.Context) {
	var req dto.RegistrarPedidoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Registrar(c.Request.Context(), req)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListarPendientes GET /api/panel/pedidos
func (h *PedidosHandler) ListarPendientes(c *gin.Context) {
	resp, err := h.svc.ListarPendientes(c.Request.Context())
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Obtener GET /api/panel/pedidos/:id
func (h *PedidosHandler) Obtener(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.Obtener(c.Request.Context(), id)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CambiarEstado godoc
// @Summary      Concretar o cancelar un pedido web
// @Tags         pedidos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path int                            true "ID del pedido"
// @Param        body body dto.CambiarEstadoPedidoRequest true "CONCRETADO o CANCELADO"
// @Success      200  {object} dto.MensajeResponse
// @Failure      404  {object} apierror.APIError
// @Failure      409  {object} apierror.APIError "El pedido ya no está INICIADO"
// @Failure      422  {object} apierror.APIError
// @Router       /api/panel/pedidos/{id}/estado [put]
func (h *PedidosHandler) CambiarEstado(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.CambiarEstadoPedidoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.CambiarEstado(c.Request.Context(), id, req.NuevoEstado); err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MensajeResponse{Mensaje: "Pedido actualizado a " + req.NuevoEstado})
}
