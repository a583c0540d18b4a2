package dto

type CrearAlmacenRequest struct {
	Nombre    string  `json:"nombre"    validate:"required,min=2"`
	Ubicacion *string `json:"ubicacion"`
	Principal bool    `json:"principal"`
}

type AlmacenResponse struct {
	ID        string  `json:"id"`
	Nombre    string  `json:"nombre"`
	Ubicacion *string `json:"ubicacion,omitempty"`
	Principal bool    `json:"principal"`
	Activo    bool    `json:"activo"`
}
