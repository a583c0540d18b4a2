package worker

// vencimiento_cron.go
// Background goroutine that periodically cancels sent quotations whose
// expiration date passed without a supplier response.

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

const vencimientoTickInterval = time.Hour

// CotizacionExpirer is the slice of the quotation service the cron needs.
type CotizacionExpirer interface {
	CancelarVencidas(ctx context.Context) (int, error)
}

// StartVencimientoCron launches a background goroutine that sweeps expired
// quotations every hour. It respects the context for graceful shutdown.
func StartVencimientoCron(ctx context.Context, expirer CotizacionExpirer) {
	go func() {
		ticker := time.NewTicker(vencimientoTickInterval)
		defer ticker.Stop()

		log.Info().Msg("vencimiento_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("vencimiento_cron: shutting down")
				return
			case <-ticker.C:
				n, err := expirer.CancelarVencidas(ctx)
				if err != nil {
					log.Error().Err(err).Msg("vencimiento_cron: sweep failed")
					continue
				}
				if n > 0 {
					log.Info().Int("canceladas", n).Msg("vencimiento_cron: cotizaciones vencidas canceladas")
				}
			}
		}
	}()
}
