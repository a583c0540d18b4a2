package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type DetalleOrdenInput struct {
	ProductoID  string          `json:"producto_id"  validate:"required,uuid"`
	Cantidad    int             `json:"cantidad"     validate:"min=1"`
	CostoUnidad decimal.Decimal `json:"costo_unidad"`
}

type CrearOrdenRequest struct {
	ProveedorID  string              `json:"proveedor_id"  validate:"required,uuid"`
	FechaOrden   *string             `json:"fecha_orden"`   // YYYY-MM-DD, defaults to today
	FechaEntrega string              `json:"fecha_entrega" validate:"required"`
	Total        decimal.Decimal     `json:"total"         validate:"min=0"`
	Detalles     []DetalleOrdenInput `json:"detalles"      validate:"dive"`
}

type ActualizarOrdenRequest struct {
	ProveedorID  *string             `json:"proveedor_id"  validate:"omitempty,uuid"`
	FechaOrden   *string             `json:"fecha_orden"`
	FechaEntrega *string             `json:"fecha_entrega"`
	Total        *decimal.Decimal    `json:"total"`
	Detalles     []DetalleOrdenInput `json:"detalles" validate:"dive"`
}

type CambiarEstadoOrdenRequest struct {
	Estado string `json:"estado" validate:"required"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type DetalleOrdenResponse struct {
	ID          string          `json:"id"`
	ProductoID  string          `json:"producto_id"`
	Producto    string          `json:"producto,omitempty"`
	Cantidad    int             `json:"cantidad"`
	CostoUnidad decimal.Decimal `json:"costo_unidad"`
}

type OrdenResponse struct {
	ID           string                 `json:"id"`
	ProveedorID  string                 `json:"proveedor_id"`
	Proveedor    string                 `json:"proveedor,omitempty"`
	FechaOrden   string                 `json:"fecha_orden"`
	FechaEntrega string                 `json:"fecha_entrega"`
	Total        decimal.Decimal        `json:"total"`
	Estado       string                 `json:"estado"`
	Detalles     []DetalleOrdenResponse `json:"detalles"`
}
