package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Henry-56/ferreteria/internal/infra"
	"github.com/Henry-56/ferreteria/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ComprobanteJobPayload is enqueued after every completed sale.
type ComprobanteJobPayload struct {
	VentaID      string `json:"venta_id"`
	ClienteEmail string `json:"cliente_email,omitempty"`
}

// ComprobanteWorker generates the PDF receipt for a completed sale and, when
// the customer left an email, chains an email job with the file attached.
type ComprobanteWorker struct {
	ventaRepo   repository.VentaRepository
	dispatcher  *Dispatcher
	storagePath string
	empresa     string
}

func NewComprobanteWorker(ventaRepo repository.VentaRepository, dispatcher *Dispatcher, storagePath, empresa string) *ComprobanteWorker {
	return &ComprobanteWorker{
		ventaRepo:   ventaRepo,
		dispatcher:  dispatcher,
		storagePath: storagePath,
		empresa:     empresa,
	}
}

func (w *ComprobanteWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload ComprobanteJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("comprobante_worker: invalid payload")
		return
	}

	ventaID, err := uuid.Parse(payload.VentaID)
	if err != nil {
		log.Error().Str("venta_id", payload.VentaID).Msg("comprobante_worker: invalid venta id")
		return
	}

	venta, err := w.ventaRepo.FindByID(ctx, ventaID)
	if err != nil {
		log.Error().Err(err).Str("venta_id", payload.VentaID).Msg("comprobante_worker: venta not found")
		return
	}

	pdfPath, err := infra.GenerateComprobantePDF(venta, w.storagePath, w.empresa)
	if err != nil {
		log.Error().Err(err).Str("numero", venta.NumeroComprobante).Msg("comprobante_worker: pdf generation failed")
		return
	}
	log.Info().Str("numero", venta.NumeroComprobante).Str("path", pdfPath).Msg("comprobante_worker: pdf generated")

	if payload.ClienteEmail == "" || w.dispatcher == nil {
		return
	}
	emailJob := EmailJobPayload{
		ToEmail: payload.ClienteEmail,
		Subject: fmt.Sprintf("Comprobante %s - %s", venta.NumeroComprobante, w.empresa),
		Body:    fmt.Sprintf("Adjuntamos su comprobante %s por un total de $%s. Gracias por su compra.", venta.NumeroComprobante, venta.Total.StringFixed(2)),
		PDFPath: pdfPath,
	}
	if err := w.dispatcher.EnqueueEmail(ctx, emailJob); err != nil {
		log.Error().Err(err).Str("numero", venta.NumeroComprobante).Msg("comprobante_worker: enqueue email failed")
	}
}
