package model

import (
	"time"

	"github.com/google/uuid"
)

// TipoMovimiento clasifica cada entrada del ledger de inventario.
type TipoMovimiento string

const (
	MovEntrada          TipoMovimiento = "ENTRADA"
	MovSalidaVenta      TipoMovimiento = "SALIDA_VENTA"
	MovAjusteDevolucion TipoMovimiento = "AJUSTE_DEVOLUCION"
	MovAjustePerdida    TipoMovimiento = "AJUSTE_PERDIDA"
	MovTransferencia    TipoMovimiento = "TRANSFERENCIA"
)

// Valido reports whether t is one of the known movement types.
func (t TipoMovimiento) Valido() bool {
	switch t {
	case MovEntrada, MovSalidaVenta, MovAjusteDevolucion, MovAjustePerdida, MovTransferencia:
		return true
	}
	return false
}

// Saliente reports whether the type normally removes stock. Used only for
// logging/alerting; the sign of Cantidad is what the ledger enforces.
func (t TipoMovimiento) Saliente() bool {
	return t == MovSalidaVenta || t == MovAjustePerdida
}

// MovimientoInventario is one immutable ledger entry. Rows are only ever
// inserted; the auto-increment ID doubles as insertion order, so
// (fecha DESC, id DESC) reproduces the exact history of a lot.
// SaldoPosterior snapshots the lot quantity immediately after the entry was
// applied: replaying Cantidad sums from the lot's creation must reproduce it.
type MovimientoInventario struct {
	ID            int64      `gorm:"primaryKey;autoIncrement"`
	LoteID        *uuid.UUID `gorm:"type:uuid;index"`
	ProductoID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	AlmacenID     *uuid.UUID `gorm:"type:uuid"`
	Cantidad      int        `gorm:"not null"` // signed: positive = entrada, negative = salida
	SaldoPosterior int       `gorm:"not null"`
	Tipo          TipoMovimiento `gorm:"type:varchar(32);not null"`
	Motivo        string         `gorm:"not null"`
	Fecha         time.Time      `gorm:"not null;index"`
	ReferenciaID  *uuid.UUID     `gorm:"type:uuid"`
	ReferenciaSrv *string        `gorm:"column:referencia_srv"`
	CreatedAt     time.Time

	Lote     *Lote     `gorm:"foreignKey:LoteID"`
	Producto *Producto `gorm:"foreignKey:ProductoID"`
}

func (MovimientoInventario) TableName() string { return "movimientos_inventario" }
