package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EstadoCotizacion is the quotation lifecycle state.
type EstadoCotizacion string

const (
	CotBorrador   EstadoCotizacion = "BORRADOR"
	CotEnviado    EstadoCotizacion = "ENVIADO"
	CotRespondido EstadoCotizacion = "RESPONDIDO"
	CotAprobado   EstadoCotizacion = "APROBADO"
	CotConvertido EstadoCotizacion = "CONVERTIDO"
	CotRechazado  EstadoCotizacion = "RECHAZADO"
	CotCancelado  EstadoCotizacion = "CANCELADO"
)

// Valido reports whether e is a known quotation state.
func (e EstadoCotizacion) Valido() bool {
	switch e {
	case CotBorrador, CotEnviado, CotRespondido, CotAprobado, CotConvertido, CotRechazado, CotCancelado:
		return true
	}
	return false
}

// Terminal states admit no further transitions.
func (e EstadoCotizacion) Terminal() bool {
	return e == CotConvertido || e == CotRechazado || e == CotCancelado
}

// Cotizacion is a price request/response cycle with one supplier. It owns its
// Detalles exclusively: replacing the detail list deletes orphans.
type Cotizacion struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProveedorID    uuid.UUID `gorm:"type:uuid;not null;index"`
	FechaSolicitud time.Time `gorm:"type:date;not null"`
	FechaVence     *time.Time       `gorm:"type:date"`
	Estado         EstadoCotizacion `gorm:"type:varchar(16);not null"`
	TotalEstimado  *decimal.Decimal `gorm:"type:decimal(14,2)"`
	Notas          *string
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Proveedor *Proveedor          `gorm:"foreignKey:ProveedorID"`
	Detalles  []CotizacionDetalle `gorm:"foreignKey:CotizacionID;constraint:OnDelete:CASCADE"`
}

func (Cotizacion) TableName() string { return "cotizaciones" }

// CotizacionDetalle is one quoted line. ProductoID nil means the supplier
// suggested an uncatalogued item: NombreProducto then carries the free text
// and the line must be linked to a catalog product before conversion.
// When ProductoID is set, NombreProducto is a copy of the catalog name frozen
// at link time for audit stability.
type CotizacionDetalle struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CotizacionID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	ProductoID     *uuid.UUID `gorm:"type:uuid"`
	NombreProducto string     `gorm:"not null"`
	Cantidad       int        `gorm:"not null"`
	PrecioCotizado *decimal.Decimal `gorm:"type:decimal(12,2)"`
	SKUSugerido    *string          `gorm:"column:sku_sugerido"`
	CreatedAt      time.Time

	Producto *Producto `gorm:"foreignKey:ProductoID"`
}

func (CotizacionDetalle) TableName() string { return "cotizacion_detalles" }
