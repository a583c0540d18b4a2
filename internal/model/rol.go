package model

// Rol is the caller's role, resolved once at the HTTP boundary from the
// verified token and passed into services as a plain value. Services never
// inspect raw authority strings.
type Rol string

const (
	RolAdmin     Rol = "administrador"
	RolCompras   Rol = "compras"
	RolProveedor Rol = "proveedor"
)

// Staff reports whether the role belongs to internal personnel.
func (r Rol) Staff() bool { return r == RolAdmin || r == RolCompras }
