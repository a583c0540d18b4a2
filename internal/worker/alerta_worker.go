package worker

// alerta_worker.go
// Processes low-stock alerts from QueueAlertaStock and mails them to the
// configured purchasing inbox.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Gonzalo777ic/nomos-inventory-service/internal/infra"

	"github.com/rs/zerolog/log"
)

// AlertaStockJobPayload is the job envelope sent to QueueAlertaStock.
type AlertaStockJobPayload struct {
	ProductoID  string `json:"producto_id"`
	Nombre      string `json:"nombre"`
	SKU         string `json:"sku"`
	StockActual int    `json:"stock_actual"`
	StockMinimo int    `json:"stock_minimo"`
}

// AlertaStockWorker emails low-stock alerts to purchasing.
type AlertaStockWorker struct {
	mailer     *infra.Mailer
	alertEmail string
}

func NewAlertaStockWorker(mailer *infra.Mailer, alertEmail string) *AlertaStockWorker {
	return &AlertaStockWorker{mailer: mailer, alertEmail: alertEmail}
}

func (w *AlertaStockWorker) Process(_ context.Context, raw json.RawMessage) error {
	var payload AlertaStockJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("alerta_worker: invalid payload")
		return nil
	}
	if w.alertEmail == "" {
		log.Warn().Msg("alerta_worker: no alert email configured — skipping")
		return nil
	}

	subject := fmt.Sprintf("Stock bajo: %s (%s)", payload.Nombre, payload.SKU)
	body := fmt.Sprintf(
		"El producto %s (SKU %s) quedó en %d unidades, por debajo del mínimo de %d.\nConsiderar generar una orden de compra al proveedor preferido.",
		payload.Nombre, payload.SKU, payload.StockActual, payload.StockMinimo,
	)
	if err := w.mailer.Send(w.alertEmail, subject, body, ""); err != nil {
		return fmt.Errorf("alerta_worker: send email: %w", err)
	}

	log.Info().Str("producto_id", payload.ProductoID).Int("stock", payload.StockActual).Msg("alerta_worker: alerta enviada")
	return nil
}
