package acceso

import (
	"testing"

	"mimbres/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestPermitido_AdminTieneTodo(t *testing.T) {
	for _, op := range todas {
		assert.True(t, Permitido(model.RolAdmin, op), op)
	}
}

func TestPermitido_Vendedor(t *testing.T) {
	assert.True(t, Permitido(model.RolVendedor, VerDashboard))
	assert.True(t, Permitido(model.RolVendedor, RegistrarVenta))
	assert.True(t, Permitido(model.RolVendedor, GestionarPedidos))

	assert.False(t, Permitido(model.RolVendedor, GestionarInventario))
	assert.False(t, Permitido(model.RolVendedor, GestionarUsuarios))
	assert.False(t, Permitido(model.RolVendedor, RegistrarCompra))
}

func TestPermitido_RolDesconocido(t *testing.T) {
	assert.False(t, Permitido("INVITADO", VerDashboard))
	assert.Empty(t, Operaciones("INVITADO"))
}

func TestOperaciones_DevuelveCopia(t *testing.T) {
	ops := Operaciones(model.RolVendedor)
	ops[0] = "hackeado"
	assert.True(t, Permitido(model.RolVendedor, VerDashboard))
}
