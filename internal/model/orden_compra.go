package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EstadoOrden is the purchase-order lifecycle state.
type EstadoOrden string

const (
	OrdenBorrador   EstadoOrden = "BORRADOR"
	OrdenPendiente  EstadoOrden = "PENDIENTE"
	OrdenConfirmado EstadoOrden = "CONFIRMADO"
	OrdenRechazado  EstadoOrden = "RECHAZADO"
	OrdenCompleto   EstadoOrden = "COMPLETO"
	OrdenCancelado  EstadoOrden = "CANCELADO"
)

// Valido reports whether e is a known order state.
func (e EstadoOrden) Valido() bool {
	switch e {
	case OrdenBorrador, OrdenPendiente, OrdenConfirmado, OrdenRechazado, OrdenCompleto, OrdenCancelado:
		return true
	}
	return false
}

// Finalizada reports whether the order admits no further edits.
func (e EstadoOrden) Finalizada() bool {
	return e == OrdenCompleto || e == OrdenCancelado
}

// OrdenCompra is a purchase order sent to one supplier. Detalles are owned
// exclusively by the order (replaced wholesale on update, deleted with it).
type OrdenCompra struct {
	ID           uuid.UUID   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProveedorID  uuid.UUID   `gorm:"type:uuid;not null;index"`
	FechaOrden   time.Time   `gorm:"type:date;not null"`
	FechaEntrega time.Time   `gorm:"type:date;not null"`
	Total        decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	Estado       EstadoOrden     `gorm:"type:varchar(16);not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Proveedor *Proveedor           `gorm:"foreignKey:ProveedorID"`
	Detalles  []OrdenCompraDetalle `gorm:"foreignKey:OrdenCompraID;constraint:OnDelete:CASCADE"`
}

func (OrdenCompra) TableName() string { return "ordenes_compra" }

// OrdenCompraDetalle is one purchasable line; it never exists without its
// parent order.
type OrdenCompraDetalle struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrdenCompraID uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductoID    uuid.UUID `gorm:"type:uuid;not null"`
	Cantidad      int       `gorm:"not null"`
	CostoUnidad   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt     time.Time

	Producto *Producto `gorm:"foreignKey:ProductoID"`
}

func (OrdenCompraDetalle) TableName() string { return "orden_compra_detalles" }
