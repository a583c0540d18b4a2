package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearProveedorRequest struct {
	RazonSocial string  `json:"razon_social" validate:"required,min=2"`
	TaxID       string  `json:"tax_id"       validate:"required"`
	Email       *string `json:"email"        validate:"omitempty,email"`
	Telefono    *string `json:"telefono"`
	Direccion   *string `json:"direccion"`
	Contacto    *string `json:"contacto"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProveedorResponse struct {
	ID          string  `json:"id"`
	RazonSocial string  `json:"razon_social"`
	TaxID       string  `json:"tax_id"`
	Email       *string `json:"email,omitempty"`
	Telefono    *string `json:"telefono,omitempty"`
	Direccion   *string `json:"direccion,omitempty"`
	Contacto    *string `json:"contacto,omitempty"`
	Activo      bool    `json:"activo"`
}
