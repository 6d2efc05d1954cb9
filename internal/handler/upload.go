package handler

import (
	"errors"
	"mime/multipart"
	"net/http"

	"mimbres/internal/apierror"
	"mimbres/internal/dto"
	"mimbres/internal/infra"

	"github.com/gin-gonic/gin"
)

// CampoImagen is the multipart field carrying the product image.
const CampoImagen = "imagenProducto"

type almacenImagenes interface {
	Guardar(fh *multipart.FileHeader) (string, error)
	MaxBytes() int64
}

type UploadHandler struct{ almacen almacenImagenes }

func NewUploadHandler(almacen *infra.AlmacenImagenes) *UploadHandler {
	return &UploadHandler{almacen: almacen}
}

// Subir godoc
// @Summary      Subir imagen de producto
// @Tags         productos
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        imagenProducto formData file true "Imagen"
// @Success      201 {object} dto.ImagenResponse
// @Failure      400 {object} apierror.APIError
// @Router       /api/panel/upload [post]
func (h *UploadHandler) Subir(c *gin.Context) {
	// Leave room for the multipart envelope around the file.
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.almacen.MaxBytes()+1<<20)

	fh, err := c.FormFile(CampoImagen)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Se requiere un archivo en el campo "+CampoImagen))
		return
	}
	url, err := h.almacen.Guardar(fh)
	switch {
	case errors.Is(err, infra.ErrImagenGrande), errors.Is(err, infra.ErrNoEsImagen):
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	case err != nil:
		responderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ImagenResponse{ImageURL: url})
}
