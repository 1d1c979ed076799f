// Package auth defines the capability set used for role-based access control.
// The core services trust the authenticated usuario id handed to them and only
// record it for audit; permission checks happen at the HTTP boundary through
// an Authorizer.
package auth

// Permission identifies one capability a role may hold.
type Permission string

const (
	PermProductosVer          Permission = "productos.ver"
	PermProductosCrear        Permission = "productos.crear"
	PermProductosEditar       Permission = "productos.editar"
	PermProductosEliminar     Permission = "productos.eliminar"
	PermProductosAjustarStock Permission = "productos.ajustar_stock"

	PermVentasVer    Permission = "ventas.ver"
	PermVentasCrear  Permission = "ventas.crear"
	PermVentasAnular Permission = "ventas.anular"

	PermComprasVer   Permission = "compras.ver"
	PermComprasCrear Permission = "compras.crear"

	PermInventarioVer Permission = "inventario.ver"

	PermClientesVer      Permission = "clientes.ver"
	PermClientesCrear    Permission = "clientes.crear"
	PermClientesEditar   Permission = "clientes.editar"
	PermClientesEliminar Permission = "clientes.eliminar"

	PermProveedoresVer      Permission = "proveedores.ver"
	PermProveedoresCrear    Permission = "proveedores.crear"
	PermProveedoresEditar   Permission = "proveedores.editar"
	PermProveedoresEliminar Permission = "proveedores.eliminar"

	PermUsuariosAdministrar Permission = "usuarios.administrar"
)

// System roles.
const (
	RolAdmin      = "admin"
	RolVendedor   = "vendedor"
	RolAlmacenero = "almacenero"
	RolCajero     = "cajero"
	RolSupervisor = "supervisor"
)

// Authorizer answers whether a role holds a permission.
type Authorizer interface {
	Has(rol string, p Permission) bool
}

type rolAuthorizer struct {
	perms map[string]map[Permission]bool
}

// NewRolAuthorizer returns the static role→permission table used by the
// middleware. Admin holds every permission implicitly.
func NewRolAuthorizer() Authorizer {
	grant := func(ps ...Permission) map[Permission]bool {
		m := make(map[Permission]bool, len(ps))
		for _, p := range ps {
			m[p] = true
		}
		return m
	}
	return &rolAuthorizer{perms: map[string]map[Permission]bool{
		RolVendedor: grant(
			PermProductosVer, PermVentasVer, PermVentasCrear,
			PermClientesVer, PermClientesCrear, PermClientesEditar,
		),
		RolCajero: grant(
			PermProductosVer, PermVentasVer, PermVentasCrear, PermClientesVer,
		),
		RolAlmacenero: grant(
			PermProductosVer, PermProductosCrear, PermProductosEditar,
			PermProductosAjustarStock, PermInventarioVer,
			PermComprasVer, PermComprasCrear,
			PermProveedoresVer, PermProveedoresCrear, PermProveedoresEditar,
		),
		RolSupervisor: grant(
			PermProductosVer, PermProductosAjustarStock, PermInventarioVer,
			PermVentasVer, PermVentasCrear, PermVentasAnular,
			PermComprasVer, PermClientesVer, PermProveedoresVer,
		),
	}}
}

func (a *rolAuthorizer) Has(rol string, p Permission) bool {
	if rol == RolAdmin {
		return true
	}
	return a.perms[rol][p]
}
