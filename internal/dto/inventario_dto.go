package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearLoteRequest struct {
	ProductoID  string          `json:"producto_id" validate:"required,uuid"`
	AlmacenID   string          `json:"almacen_id"  validate:"required,uuid"`
	NumeroLote  string          `json:"numero_lote" validate:"required,min=1"`
	Cantidad    int             `json:"cantidad"    validate:"min=0"`
	CostoUnidad decimal.Decimal `json:"costo_unidad" validate:"min=0"`
	Vencimiento *string         `json:"vencimiento"` // YYYY-MM-DD
	Ubicacion   *string         `json:"ubicacion"`
}

// RegistrarMovimientoRequest records one ledger entry against a lot.
// Cantidad is signed: positive adds stock, negative removes it.
type RegistrarMovimientoRequest struct {
	LoteID   string  `json:"lote_id"  validate:"required,uuid"`
	Cantidad int     `json:"cantidad" validate:"required"`
	Tipo     string  `json:"tipo"     validate:"required"`
	Motivo   string  `json:"motivo"   validate:"required,min=1"`
	Fecha    *string `json:"fecha"`   // RFC 3339; defaults to now
	ReferenciaID  *string `json:"referencia_id"  validate:"omitempty,uuid"`
	ReferenciaSrv *string `json:"referencia_srv"`
}

type MovimientoFilter struct {
	ProductoID string
	Tipo       string
	Page       int
	Limit      int
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type LoteResponse struct {
	ID          string          `json:"id"`
	ProductoID  string          `json:"producto_id"`
	AlmacenID   string          `json:"almacen_id"`
	NumeroLote  string          `json:"numero_lote"`
	Cantidad    int             `json:"cantidad"`
	CostoUnidad decimal.Decimal `json:"costo_unidad"`
	Vencimiento *string         `json:"vencimiento,omitempty"`
	Ubicacion   *string         `json:"ubicacion,omitempty"`
}

type MovimientoResponse struct {
	ID             int64   `json:"id"`
	LoteID         *string `json:"lote_id,omitempty"`
	ProductoID     string  `json:"producto_id"`
	Cantidad       int     `json:"cantidad"`
	SaldoPosterior int     `json:"saldo_posterior"`
	Tipo           string  `json:"tipo"`
	Motivo         string  `json:"motivo"`
	Fecha          string  `json:"fecha"`
	ReferenciaID   *string `json:"referencia_id,omitempty"`
	ReferenciaSrv  *string `json:"referencia_srv,omitempty"`
}

type TotalStockResponse struct {
	ProductoID string `json:"producto_id"`
	Total      int    `json:"total"`
}

type MovimientoListResponse struct {
	Data  []MovimientoResponse `json:"data"`
	Total int64                `json:"total"`
	Page  int                  `json:"page"`
	Limit int                  `json:"limit"`
}
