package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type VincularProveedorRequest struct {
	ProductoID      string          `json:"producto_id"  validate:"required,uuid"`
	ProveedorID     string          `json:"proveedor_id" validate:"required,uuid"`
	CodigoProveedor *string         `json:"codigo_proveedor"`
	CostoUnidad     decimal.Decimal `json:"costo_unidad" validate:"min=0"`
	DiasEntrega     int             `json:"dias_entrega" validate:"min=0"`
	EsPreferido     bool            `json:"es_preferido"`
	Activo          *bool           `json:"activo"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type VinculoResponse struct {
	ProductoID      string          `json:"producto_id"`
	ProveedorID     string          `json:"proveedor_id"`
	CodigoProveedor *string         `json:"codigo_proveedor,omitempty"`
	CostoUnidad     decimal.Decimal `json:"costo_unidad"`
	DiasEntrega     int             `json:"dias_entrega"`
	EsPreferido     bool            `json:"es_preferido"`
	Activo          bool            `json:"activo"`
}
