package service

import (
	"github.com/Gonzalo777ic/nomos-inventory-service/internal/model"

	"github.com/google/uuid"
)

// Caller is the verified identity the HTTP boundary resolved for the request.
// For supplier callers ProveedorID carries their own supplier; services use
// it to scope reads and gate transitions.
type Caller struct {
	Rol         model.Rol
	ProveedorID *uuid.UUID
}

// EsProveedor reports whether the caller acts on behalf of a supplier.
func (c Caller) EsProveedor() bool { return c.Rol == model.RolProveedor }

// PuedeVer reports whether the caller may read documents of the given
// supplier. Suppliers without a resolved id see nothing (fail closed).
func (c Caller) PuedeVer(proveedorID uuid.UUID) bool {
	if c.Rol.Staff() {
		return true
	}
	return c.ProveedorID != nil && *c.ProveedorID == proveedorID
}
