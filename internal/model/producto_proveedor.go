package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductoProveedor is the M:N catalog link between a product and a supplier.
// Invariant: at most one row per producto has EsPreferido=true; the promotion
// sweep in the catalog service enforces it transactionally.
type ProductoProveedor struct {
	ProductoID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProveedorID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	CodigoProveedor *string  `gorm:"column:codigo_proveedor"`
	CostoUnidad    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	DiasEntrega    int             `gorm:"not null;default:0"`
	EsPreferido    bool            `gorm:"not null;default:false"`
	Activo         bool            `gorm:"not null;default:true"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Producto  *Producto  `gorm:"foreignKey:ProductoID"`
	Proveedor *Proveedor `gorm:"foreignKey:ProveedorID"`
}

func (ProductoProveedor) TableName() string { return "producto_proveedores" }
