package handler

import (
	"net/http"

	"mimbres/internal/dto"
	"mimbres/internal/service"

	"github.com/gin-gonic/gin"
)

type CarritoHandler struct{ svc service.CarritoService }

func NewCarritoHandler(svc service.CarritoService) *CarritoHandler { return &CarritoHandler{svc: svc} }

// Crear POST /api/carrito
func (h *CarritoHandler) Crear(c *gin.Context) {
	resp, err := h.svc.Crear(c.Request.Context())
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Obtener GET /api/carrito/:id
func (h *CarritoHandler) Obtener(c *gin.Context) {
	resp, err := h.svc.Obtener(c.Request.Context(), c.Param("id"))
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Aplicar godoc
// @Summary      Aplicar una acción al carrito
// @Tags         carrito
// @Accept       json
// @Produce      json
// @Param        id   path string                   true "ID del carrito"
// @Param        body body dto.AccionCarritoRequest true "AGREGAR, INCREMENTAR, DECREMENTAR, QUITAR o VACIAR"
// @Success      200  {object} dto.CarritoResponse
// @Failure      404  {object} apierror.APIError
// @Failure      409  {object} apierror.APIError "Producto no disponible"
// @Router       /api/carrito/{id}/acciones [post]
func (h *CarritoHandler) Aplicar(c *gin.Context) {
	var req dto.AccionCarritoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Aplicar(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Eliminar DELETE /api/carrito/:id
func (h *CarritoHandler) Eliminar(c *gin.Context) {
	if err := h.svc.Eliminar(c.Request.Context(), c.Param("id")); err != nil {
		responderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Confirmar godoc
// @Summary      Confirmar el carrito como pedido web
// @Tags         carrito
// @Accept       json
// @Produce      json
// @Param        id   path string                      true "ID del carrito"
// @Param        body body dto.ConfirmarCarritoRequest true "Teléfono de WhatsApp"
// @Success      201  {object} dto.PedidoCreadoResponse
// @Failure      409  {object} apierror.APIError "El precio cambió"
// @Failure      422  {object} apierror.APIError
// @Router       /api/carrito/{id}/confirmar [post]
func (h *CarritoHandler) Confirmar(c *gin.Context) {
	var req dto.ConfirmarCarritoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Confirmar(c.Request.Context(), c.Param("id"), req.TelefonoWhatsapp)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}
