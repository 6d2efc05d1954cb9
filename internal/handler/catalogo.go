package handler

import (
	"net/http"

	"mimbres/internal/apierror"
	"mimbres/internal/dto"
	"mimbres/internal/service"

	"github.com/gin-gonic/gin"
)

// CatalogoHandler serves the public storefront reads.
type CatalogoHandler struct{ svc service.CatalogoService }

func NewCatalogoHandler(svc service.CatalogoService) *CatalogoHandler {
	return &CatalogoHandler{svc: svc}
}

// Productos godoc
// @Summary      Catálogo público
// @Tags         catalogo
// @Produce      json
// @Param        categoria query int false "Filtrar por categoría"
// @Success      200 {array} dto.ProductoResponse
// @Router       /api/productos [get]
func (h *CatalogoHandler) Productos(c *gin.Context) {
	var f dto.CatalogoFilter
	if err := c.ShouldBindQuery(&f); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Parámetro categoria inválido"))
		return
	}
	resp, err := h.svc.ListarProductos(c.Request.Context(), f.CategoriaID)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Producto GET /api/productos/:id
func (h *CatalogoHandler) Producto(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ObtenerProducto(c.Request.Context(), id)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Categorias GET /api/categorias
func (h *CatalogoHandler) Categorias(c *gin.Context) {
	resp, err := h.svc.ListarCategorias(c.Request.Context())
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
