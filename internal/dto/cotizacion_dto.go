package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// DetalleCotizacionInput is one quoted line. Either producto_id references the
// catalog, or nombre_producto carries the supplier's free-text suggestion.
type DetalleCotizacionInput struct {
	ProductoID     *string          `json:"producto_id"     validate:"omitempty,uuid"`
	NombreProducto *string          `json:"nombre_producto"`
	Cantidad       int              `json:"cantidad"        validate:"min=1"`
	PrecioCotizado *decimal.Decimal `json:"precio_cotizado"`
	SKUSugerido    *string          `json:"sku_sugerido"`
}

type CrearCotizacionRequest struct {
	ProveedorID    string                   `json:"proveedor_id" validate:"required,uuid"`
	FechaSolicitud *string                  `json:"fecha_solicitud"` // YYYY-MM-DD, defaults to today
	FechaVence     *string                  `json:"fecha_vence"`
	TotalEstimado  *decimal.Decimal         `json:"total_estimado"`
	Notas          *string                  `json:"notas"`
	Detalles       []DetalleCotizacionInput `json:"detalles" validate:"dive"`
}

type ActualizarCotizacionRequest struct {
	FechaVence    *string                  `json:"fecha_vence"`
	TotalEstimado *decimal.Decimal         `json:"total_estimado"`
	Notas         *string                  `json:"notas"`
	Detalles      []DetalleCotizacionInput `json:"detalles" validate:"dive"`
}

type CambiarEstadoCotizacionRequest struct {
	Estado string `json:"estado" validate:"required"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type DetalleCotizacionResponse struct {
	ID             string           `json:"id"`
	ProductoID     *string          `json:"producto_id,omitempty"`
	NombreProducto string           `json:"nombre_producto"`
	Cantidad       int              `json:"cantidad"`
	PrecioCotizado *decimal.Decimal `json:"precio_cotizado,omitempty"`
	SKUSugerido    *string          `json:"sku_sugerido,omitempty"`
}

type CotizacionResponse struct {
	ID             string                      `json:"id"`
	ProveedorID    string                      `json:"proveedor_id"`
	FechaSolicitud string                      `json:"fecha_solicitud"`
	FechaVence     *string                     `json:"fecha_vence,omitempty"`
	Estado         string                      `json:"estado"`
	TotalEstimado  *decimal.Decimal            `json:"total_estimado,omitempty"`
	Notas          *string                     `json:"notas,omitempty"`
	Detalles       []DetalleCotizacionResponse `json:"detalles"`
}
