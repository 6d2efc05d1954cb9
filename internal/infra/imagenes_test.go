package infra

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 1x1 transparent PNG.
var pngPixel = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d,
	0x49, 0x48, 0x44, 0x52, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4, 0x89, 0x00, 0x00, 0x00,
	0x0a, 0x49, 0x44, 0x41, 0x54, 0x78, 0x9c, 0x63, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00, 0x00, 0x00, 0x00, 0x49,
	0x45, 0x4e, 0x44, 0xae, 0x42, 0x60, 0x82,
}

func fileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("imagenProducto", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", "/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["imagenProducto"][0]
}

func TestAlmacenImagenes_GuardaPNG(t *testing.T) {
	dir := t.TempDir()
	a := NewAlmacenImagenes(dir, 1)
	a.now = func() time.Time { return time.UnixMilli(1700000000000) }

	url, err := a.Guardar(fileHeader(t, "Foto.PNG", pngPixel))
	require.NoError(t, err)
	assert.Equal(t, "/products/product-1700000000000.png", url)

	data, err := os.ReadFile(filepath.Join(dir, "product-1700000000000.png"))
	require.NoError(t, err)
	assert.Equal(t, pngPixel, data)

	// same millisecond does not overwrite
	url2, err := a.Guardar(fileHeader(t, "otra.png", pngPixel))
	require.NoError(t, err)
	assert.Equal(t, "/products/product-1700000000001.png", url2)
}

func TestAlmacenImagenes_RechazaNoImagen(t *testing.T) {
	a := NewAlmacenImagenes(t.TempDir(), 1)
	_, err := a.Guardar(fileHeader(t, "notas.png", []byte("hola, esto es texto")))
	assert.ErrorIs(t, err, ErrNoEsImagen)
}

func TestAlmacenImagenes_RechazaGrande(t *testing.T) {
	a := NewAlmacenImagenes(t.TempDir(), 1)
	a.maxBytes = 10
	_, err := a.Guardar(fileHeader(t, "foto.png", pngPixel))
	assert.ErrorIs(t, err, ErrImagenGrande)
}
