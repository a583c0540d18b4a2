package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Lote is one physical receipt of a product at a warehouse. Its Cantidad is
// mutated exclusively through ledger operations that append a
// MovimientoInventario in the same transaction — never directly.
type Lote struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductoID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_lote,priority:1"`
	AlmacenID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_lote,priority:2"`
	NumeroLote  string    `gorm:"not null;uniqueIndex:uq_lote,priority:3"`
	Cantidad    int       `gorm:"not null;default:0"`
	CostoUnidad decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Vencimiento *time.Time      `gorm:"type:date"`
	Ubicacion   *string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Producto *Producto `gorm:"foreignKey:ProductoID"`
	Almacen  *Almacen  `gorm:"foreignKey:AlmacenID"`
}

func (Lote) TableName() string { return "lotes" }
