package service

import (
	"context"
	"errors"
	"strings"

	"mimbres/internal/apierror"
	"mimbres/internal/repository"

	"gorm.io/gorm"
)

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// CatalogoCache is the cache-aside store behind the public catalog
// (infra.CatalogoCache in production, nil in unit tests).
type CatalogoCache interface {
	Version(ctx context.Context) (int64, error)
	Get(ctx context.Context, version int64, clave string, dest any) bool
	Set(ctx context.Context, version int64, clave string, v any)
	Invalidar(ctx context.Context)
}

func invalidarCatalogo(ctx context.Context, c CatalogoCache) {
	if c != nil {
		c.Invalidar(ctx)
	}
}

// setTexto adds an optional text column to a partial update. An empty
// string clears the column.
func setTexto(campos map[string]any, col string, v *string) {
	if v == nil {
		return
	}
	if s := strings.TrimSpace(*v); s != "" {
		campos[col] = s
	} else {
		campos[col] = nil
	}
}

// setRequerido adds a mandatory text column; blank values are rejected.
func setRequerido(campos map[string]any, col string, v *string) error {
	if v == nil {
		return nil
	}
	s := strings.TrimSpace(*v)
	if s == "" {
		return apierror.Validacion("El campo " + col + " no puede quedar vacío")
	}
	campos[col] = s
	return nil
}

// resultadoUpdate turns a partial update outcome into (filas, error). When no
// row changed it distinguishes a missing id from an unchanged row.
func resultadoUpdate(ctx context.Context, filas int64, err error, exists func(context.Context, int64) (bool, error), id int64, noEncontrado string) (int64, error) {
	if err != nil {
		return 0, err
	}
	if filas > 0 {
		return filas, nil
	}
	ok, err := exists(ctx, id)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, apierror.NoEncontrado(noEncontrado)
	}
	return 0, nil
}

func textoOpcional(v *string) *string {
	if v == nil {
		return nil
	}
	s := strings.TrimSpace(*v)
	if s == "" {
		return nil
	}
	return &s
}

// referenciaNoEncontrada maps an FK violation to a 404 with msg.
func referenciaNoEncontrada(err error, msg string) error {
	if errors.Is(err, repository.ErrReferenciado) {
		return apierror.NoEncontrado(msg)
	}
	return err
}
