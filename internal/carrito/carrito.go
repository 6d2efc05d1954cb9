// Package carrito implements the storefront cart as an explicit state
// container: a pure transition function over an immutable Estado, plus a
// persistence port so the cart survives between requests.
package carrito

import (
	"errors"

	"github.com/shopspring/decimal"
)

// Tipos de accion.
const (
	Agregar     = "AGREGAR"
	Incrementar = "INCREMENTAR"
	Decrementar = "DECREMENTAR"
	Quitar      = "QUITAR"
	Vaciar      = "VACIAR"
)

var (
	ErrAccionDesconocida = errors.New("accion de carrito desconocida")
	ErrProductoRequerido = errors.New("la accion requiere un producto")
)

// Item is one cart line. Price and name are a snapshot taken when the product
// was added.
type Item struct {
	ProductoID     int64           `json:"id_producto"`
	Nombre         string          `json:"nombre"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	URLImagen      *string         `json:"url_imagen,omitempty"`
	Cantidad       int             `json:"cantidad"`
}

type Estado struct {
	Items []Item `json:"items"`
}

// Accion is a cart transition. Item is only read by AGREGAR; the other
// product actions use ProductoID.
type Accion struct {
	Tipo       string
	ProductoID int64
	Item       *Item
}

// TotalItems is the number of units in the cart.
func (e Estado) TotalItems() int {
	n := 0
	for _, it := range e.Items {
		n += it.Cantidad
	}
	return n
}

// TotalPrecio is Σ cantidad × precio_unitario.
func (e Estado) TotalPrecio() decimal.Decimal {
	total := decimal.Zero
	for _, it := range e.Items {
		total = total.Add(it.PrecioUnitario.Mul(decimal.NewFromInt(int64(it.Cantidad))))
	}
	return total
}

func (e Estado) buscar(productoID int64) int {
	for i, it := range e.Items {
		if it.ProductoID == productoID {
			return i
		}
	}
	return -1
}

// Reducir returns the state that results from applying a to e. e is never
// modified. Actions on a product that is not in the cart are no-ops.
func Reducir(e Estado, a Accion) (Estado, error) {
	items := make([]Item, len(e.Items))
	copy(items, e.Items)
	next := Estado{Items: items}

	switch a.Tipo {
	case Agregar:
		if a.Item == nil {
			return e, ErrProductoRequerido
		}
		if i := next.buscar(a.Item.ProductoID); i >= 0 {
			next.Items[i].Cantidad++
			return next, nil
		}
		it := *a.Item
		it.Cantidad = 1
		next.Items = append(next.Items, it)

	case Incrementar:
		if i := next.buscar(a.ProductoID); i >= 0 {
			next.Items[i].Cantidad++
		}

	case Decrementar:
		if i := next.buscar(a.ProductoID); i >= 0 {
			if next.Items[i].Cantidad <= 1 {
				next.Items = append(next.Items[:i], next.Items[i+1:]...)
			} else {
				next.Items[i].Cantidad--
			}
		}

	case Quitar:
		if i := next.buscar(a.ProductoID); i >= 0 {
			next.Items = append(next.Items[:i], next.Items[i+1:]...)
		}

	case Vaciar:
		next.Items = []Item{}

	default:
		return e, ErrAccionDesconocida
	}
	return next, nil
}
