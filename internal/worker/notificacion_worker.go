package worker

// notificacion_worker.go
// Processes order-sent notifications from QueueNotificacion: renders the
// purchase order as PDF and mails it to the supplier.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Gonzalo777ic/nomos-inventory-service/internal/infra"
	"github.com/Gonzalo777ic/nomos-inventory-service/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// NotificacionJobPayload is the job envelope sent to QueueNotificacion.
type NotificacionJobPayload struct {
	OrdenID string `json:"orden_id"`
}

// NotificacionWorker renders and mails purchase orders to suppliers.
type NotificacionWorker struct {
	ordenRepo      repository.OrdenRepository
	mailer         *infra.Mailer
	pdfStoragePath string
}

func NewNotificacionWorker(ordenRepo repository.OrdenRepository, mailer *infra.Mailer, pdfStoragePath string) *NotificacionWorker {
	return &NotificacionWorker{
		ordenRepo:      ordenRepo,
		mailer:         mailer,
		pdfStoragePath: pdfStoragePath,
	}
}

// Process generates the order PDF and sends it to the supplier's email.
// A malformed payload or a supplier without email is dropped, not retried.
func (w *NotificacionWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload NotificacionJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("notificacion_worker: invalid payload")
		return nil
	}
	ordenID, err := uuid.Parse(payload.OrdenID)
	if err != nil {
		log.Error().Str("orden_id", payload.OrdenID).Msg("notificacion_worker: invalid orden_id")
		return nil
	}

	orden, err := w.ordenRepo.FindByID(ctx, ordenID)
	if err != nil {
		return fmt.Errorf("notificacion_worker: fetch orden %s: %w", payload.OrdenID, err)
	}
	if orden.Proveedor == nil || orden.Proveedor.Email == nil || *orden.Proveedor.Email == "" {
		log.Warn().Str("orden_id", payload.OrdenID).Msg("notificacion_worker: supplier has no email — skipping")
		return nil
	}

	pdfPath, err := infra.GenerateOrdenPDF(orden, w.pdfStoragePath)
	if err != nil {
		return fmt.Errorf("notificacion_worker: generate PDF: %w", err)
	}

	subject := fmt.Sprintf("Nueva orden de compra %s", orden.ID)
	body := fmt.Sprintf(
		"Estimado %s:\n\nAdjuntamos la orden de compra %s con entrega solicitada para el %s.\nTotal: $%s\n\nPor favor confirme o rechace la orden.",
		orden.Proveedor.RazonSocial, orden.ID,
		orden.FechaEntrega.Format("02/01/2006"), orden.Total.StringFixed(2),
	)
	if err := w.mailer.Send(*orden.Proveedor.Email, subject, body, pdfPath); err != nil {
		return fmt.Errorf("notificacion_worker: send email: %w", err)
	}

	log.Info().Str("orden_id", payload.OrdenID).Str("to", *orden.Proveedor.Email).Msg("notificacion_worker: orden enviada al proveedor")
	return nil
}
