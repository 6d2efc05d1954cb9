package infra

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

var (
	ErrImagenGrande = errors.New("la imagen excede el tamaño máximo permitido")
	ErrNoEsImagen   = errors.New("el archivo no es una imagen")
)

// AlmacenImagenes stores uploaded product images on local disk. The returned
// URL is relative to the /products static route.
type AlmacenImagenes struct {
	dir      string
	maxBytes int64
	now      func() time.Time
}

func NewAlmacenImagenes(dir string, maxMB int) *AlmacenImagenes {
	return &AlmacenImagenes{dir: dir, maxBytes: int64(maxMB) << 20, now: time.Now}
}

func (a *AlmacenImagenes) MaxBytes() int64 { return a.maxBytes }

// Guardar validates fh and writes it as product-<unix ms><ext>.
func (a *AlmacenImagenes) Guardar(fh *multipart.FileHeader) (string, error) {
	if fh.Size > a.maxBytes {
		return "", ErrImagenGrande
	}
	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("imagenes: open upload: %w", err)
	}
	defer src.Close()

	head := make([]byte, 512)
	n, err := io.ReadFull(src, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("imagenes: read upload: %w", err)
	}
	ctype := http.DetectContentType(head[:n])
	if !strings.HasPrefix(ctype, "image/") {
		return "", ErrNoEsImagen
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("imagenes: rewind upload: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if ext == "" {
		if exts, _ := mime.ExtensionsByType(ctype); len(exts) > 0 {
			ext = exts[0]
		}
	}
	if err := os.MkdirAll(a.dir, 0o755); err != nil {
		return "", fmt.Errorf("imagenes: create dir: %w", err)
	}

	// Millisecond names can collide under concurrent uploads; O_EXCL plus a
	// bumped timestamp keeps every file distinct.
	ts := a.now().UnixMilli()
	var dst *os.File
	var nombre string
	for i := 0; i < 10; i++ {
		nombre = fmt.Sprintf("product-%d%s", ts+int64(i), ext)
		dst, err = os.OpenFile(filepath.Join(a.dir, nombre), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil || !errors.Is(err, os.ErrExist) {
			break
		}
	}
	if err != nil {
		return "", fmt.Errorf("imagenes: create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, io.LimitReader(src, a.maxBytes)); err != nil {
		return "", fmt.Errorf("imagenes: write file: %w", err)
	}
	return "/products/" + nombre, nil
}
