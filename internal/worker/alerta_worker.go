package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Henry-56/ferreteria/internal/infra"

	"github.com/rs/zerolog/log"
)

// AlertaStockPayload is enqueued when a sale leaves a product at or below its
// minimum stock.
type AlertaStockPayload struct {
	ProductoID  string `json:"producto_id"`
	Nombre      string `json:"nombre"`
	Stock       int    `json:"stock"`
	StockMinimo int    `json:"stock_minimo"`
}

// AlertaStockWorker mails low-stock notifications to the configured address.
type AlertaStockWorker struct {
	mailer     *infra.Mailer
	alertEmail string
}

func NewAlertaStockWorker(mailer *infra.Mailer, alertEmail string) *AlertaStockWorker {
	return &AlertaStockWorker{mailer: mailer, alertEmail: alertEmail}
}

func (w *AlertaStockWorker) Process(_ context.Context, raw json.RawMessage) {
	var payload AlertaStockPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("alerta_worker: invalid payload")
		return
	}
	if w.alertEmail == "" {
		log.Warn().Str("producto", payload.Nombre).Msg("alerta_worker: no alert email configured — skipping")
		return
	}

	subject := fmt.Sprintf("Stock bajo: %s", payload.Nombre)
	body := fmt.Sprintf(
		"El producto %s quedo con stock %d (minimo configurado: %d). Considere generar una orden de compra.",
		payload.Nombre, payload.Stock, payload.StockMinimo,
	)
	if err := w.mailer.Send(w.alertEmail, subject, body, ""); err != nil {
		log.Error().Err(err).Str("producto", payload.Nombre).Msg("alerta_worker: failed to send alert")
		return
	}
	log.Info().Str("producto", payload.Nombre).Int("stock", payload.Stock).Msg("alerta_worker: alert sent")
}
