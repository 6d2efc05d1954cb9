// Package acceso holds the role → panel operation policy. The same table gates
// routes server-side and is returned to the client so it can hide navigation.
package acceso

import "mimbres/internal/model"

// Operaciones del panel.
const (
	VerDashboard         = "ver_dashboard"
	RegistrarVenta       = "registrar_venta"
	GestionarPedidos     = "gestionar_pedidos"
	GestionarInventario  = "gestionar_inventario"
	GestionarCategorias  = "gestionar_categorias"
	GestionarClientes    = "gestionar_clientes"
	GestionarProveedores = "gestionar_proveedores"
	RegistrarCompra      = "registrar_compra"
	GestionarUsuarios    = "gestionar_usuarios"
)

var todas = []string{
	VerDashboard,
	RegistrarVenta,
	GestionarPedidos,
	GestionarInventario,
	GestionarCategorias,
	GestionarClientes,
	GestionarProveedores,
	RegistrarCompra,
	GestionarUsuarios,
}

var politica = map[string][]string{
	model.RolAdmin:    todas,
	model.RolVendedor: {VerDashboard, RegistrarVenta, GestionarPedidos},
}

// Permitido reports whether rol may perform op. Unknown roles get nothing.
func Permitido(rol, op string) bool {
	for _, o := range politica[rol] {
		if o == op {
			return true
		}
	}
	return false
}

// Operaciones returns a copy of the operations granted to rol.
func Operaciones(rol string) []string {
	ops := politica[rol]
	out := make([]string, len(ops))
	copy(out, ops)
	return out
}
