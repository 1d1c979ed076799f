package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/Henry-56/ferreteria/internal/dto"
	"github.com/Henry-56/ferreteria/internal/model"
	"github.com/Henry-56/ferreteria/internal/repository"
	"github.com/Henry-56/ferreteria/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// VentaService runs the sale workflow: pricing, comprobante numbering, the
// atomic write of header+lines+stock movements, and the anulación that puts
// everything back.
type VentaService interface {
	CrearVenta(ctx context.Context, req dto.CrearVentaRequest, usuarioID uuid.UUID) (*dto.VentaResponse, error)
	// AnularVenta voids a completed sale, restoring the stock of every line
	// in the same transaction that flips the estado.
	AnularVenta(ctx context.Context, ventaID, usuarioID uuid.UUID, motivo string) (*dto.VentaResponse, error)
	ObtenerVenta(ctx context.Context, id uuid.UUID) (*dto.VentaResponse, error)
	ListVentas(ctx context.Context, filter dto.VentaFilter) (*dto.VentaListResponse, error)
	VentasPorPeriodo(ctx context.Context, desde, hasta string) (*dto.VentasPeriodoResponse, error)
}

type ventaService struct {
	ventaRepo     repository.VentaRepository
	productoRepo  repository.ProductoRepository
	inventarioSvc InventarioService
	dispatcher    *worker.Dispatcher
	tasaImpuesto  decimal.Decimal
}

// NewVentaService wires the sale workflow. dispatcher may be nil, in which
// case post-sale jobs (PDF, alerts) are skipped.
func NewVentaService(
	ventaRepo repository.VentaRepository,
	productoRepo repository.ProductoRepository,
	inventarioSvc InventarioService,
	dispatcher *worker.Dispatcher,
	tasaImpuesto decimal.Decimal,
) VentaService {
	return &ventaService{
		ventaRepo:     ventaRepo,
		productoRepo:  productoRepo,
		inventarioSvc: inventarioSvc,
		dispatcher:    dispatcher,
		tasaImpuesto:  tasaImpuesto,
	}
}

var prefijosComprobante = map[string]string{
	model.ComprobanteBoleta:  "B",
	model.ComprobanteFactura: "F",
	model.ComprobanteTicket:  "T",
}

// siguienteNumeroComprobante builds the next number in the per-tipo sequence:
// {B|F|T}-{YYYYMM}-{000001}. The sequence continues from the last assigned
// number regardless of the month embedded in it.
func siguienteNumeroComprobante(tipo, ultimo string, ahora time.Time) (string, error) {
	prefijo, ok := prefijosComprobante[tipo]
	if !ok {
		return "", fmt.Errorf("tipo de comprobante desconocido: %q", tipo)
	}
	seq := 1
	if ultimo != "" {
		i := strings.LastIndex(ultimo, "-")
		if i < 0 || i == len(ultimo)-1 {
			return "", fmt.Errorf("numero de comprobante malformado: %q", ultimo)
		}
		n, err := strconv.Atoi(ultimo[i+1:])
		if err != nil {
			return "", fmt.Errorf("numero de comprobante malformado: %q", ultimo)
		}
		seq = n + 1
	}
	return fmt.Sprintf("%s-%s-%06d", prefijo, ahora.Format("200601"), seq), nil
}

func (s *ventaService) CrearVenta(ctx context.Context, req dto.CrearVentaRequest, usuarioID uuid.UUID) (*dto.VentaResponse, error) {
	tipo := req.TipoComprobante
	if tipo == "" {
		tipo = model.ComprobanteTicket
	}
	metodo := req.MetodoPago
	if metodo == "" {
		metodo = "efectivo"
	}

	var clienteID *uuid.UUID
	if req.ClienteID != nil {
		id, err := uuid.Parse(*req.ClienteID)
		if err != nil {
			return nil, fmt.Errorf("cliente_id invalido: %w", err)
		}
		clienteID = &id
	}

	// Pricing happens before the transaction: product lookups here take no
	// locks, the authoritative stock check runs later under FOR UPDATE.
	productos := make(map[uuid.UUID]*model.Producto, len(req.Detalles))
	detalles := make([]model.DetalleVenta, 0, len(req.Detalles))
	subtotal := decimal.Zero

	for _, linea := range req.Detalles {
		productoID, err := uuid.Parse(linea.ProductoID)
		if err != nil {
			return nil, fmt.Errorf("producto_id invalido: %w", err)
		}
		producto, ok := productos[productoID]
		if !ok {
			producto, err = s.productoRepo.FindByID(ctx, productoID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, &ProductoNoEncontradoError{ProductoID: productoID}
				}
				return nil, clasificarErrorDB(err, "")
			}
			if !producto.Activo {
				return nil, &ProductoNoEncontradoError{ProductoID: productoID}
			}
			productos[productoID] = producto
		}

		// Lock-free pre-check. The authoritative one runs later under FOR
		// UPDATE; this one keeps a doomed sale from ever reaching the
		// transactional phase.
		if linea.Cantidad > producto.Stock {
			return nil, &StockInsuficienteError{
				ProductoID: producto.ID,
				Nombre:     producto.Nombre,
				Solicitado: linea.Cantidad,
				Disponible: producto.Stock,
			}
		}

		precio := producto.PrecioVenta
		if linea.PrecioUnitario != nil {
			precio = *linea.PrecioUnitario
		}
		descuentoUnit := decimal.Zero
		if linea.DescuentoUnitario != nil {
			descuentoUnit = *linea.DescuentoUnitario
		}
		if precio.IsNegative() || descuentoUnit.IsNegative() || descuentoUnit.GreaterThan(precio) {
			return nil, fmt.Errorf("precio o descuento invalido para producto %s", producto.Nombre)
		}

		cantidad := decimal.NewFromInt(int64(linea.Cantidad))
		neto := precio.Sub(descuentoUnit)
		costo := producto.CostoUnitario()
		lineaSubtotal := neto.Mul(cantidad).Round(2)

		detalles = append(detalles, model.DetalleVenta{
			ProductoID:        productoID,
			Cantidad:          linea.Cantidad,
			PrecioUnitario:    precio.Round(2),
			DescuentoUnitario: descuentoUnit.Round(2),
			Subtotal:          lineaSubtotal,
			CostoUnitario:     costo.Round(2),
			Utilidad:          neto.Sub(costo).Mul(cantidad).Round(2),
		})
		subtotal = subtotal.Add(lineaSubtotal)
	}

	descuento := req.Descuento.Round(2)
	if descuento.GreaterThan(subtotal) {
		return nil, &DescuentoInvalidoError{
			Descuento: descuento.StringFixed(2),
			Subtotal:  subtotal.StringFixed(2),
		}
	}
	base := subtotal.Sub(descuento)
	impuesto := base.Mul(s.tasaImpuesto).Round(2)
	total := base.Add(impuesto).Round(2)

	venta := &model.Venta{
		Fecha:           time.Now(),
		UsuarioID:       usuarioID,
		ClienteID:       clienteID,
		TipoComprobante: tipo,
		MetodoPago:      metodo,
		Subtotal:        subtotal,
		Descuento:       descuento,
		Impuesto:        impuesto,
		Total:           total,
		Estado:          model.EstadoCompletada,
		Notas:           req.Notas,
	}

	var movimientos []*model.MovInventario
	err := runTx(ctx, s.ventaRepo.DB(), func(tx *gorm.DB) error {
		if err := s.ventaRepo.BloquearNumeracionTx(tx, tipo); err != nil {
			return clasificarErrorDB(err, tipo)
		}
		ultimo, err := s.ventaRepo.UltimoNumeroComprobanteTx(tx, tipo)
		if err != nil {
			return clasificarErrorDB(err, tipo)
		}
		numero, err := siguienteNumeroComprobante(tipo, ultimo, venta.Fecha)
		if err != nil {
			return err
		}
		venta.NumeroComprobante = numero
		venta.Detalles = detalles

		if err := s.ventaRepo.CreateTx(tx, venta); err != nil {
			return clasificarErrorDB(err, tipo)
		}

		// Locks are taken in ascending product id order so two concurrent
		// sales over the same products cannot deadlock.
		orden := ordenarPorProducto(venta.Detalles)
		movimientos = movimientos[:0]
		for _, idx := range orden {
			d := &venta.Detalles[idx]
			mov, err := s.inventarioSvc.RegistrarMovimientoTx(ctx, tx, MovimientoParams{
				ProductoID:   d.ProductoID,
				Tipo:         model.MovimientoSalida,
				Cantidad:     d.Cantidad,
				UsuarioID:    usuarioID,
				Referencia:   model.ReferenciaVenta,
				ReferenciaID: &venta.ID,
				Motivo:       "Venta " + numero,
			})
			if err != nil {
				return err
			}
			movimientos = append(movimientos, mov)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.encolarPostVenta(ctx, venta, req.ClienteEmail, movimientos, productos)

	resp := ventaToResponse(venta, productos)
	return &resp, nil
}

// encolarPostVenta enqueues the receipt job and any low-stock alerts. Queue
// failures are logged, never surfaced: the sale is already committed.
func (s *ventaService) encolarPostVenta(ctx context.Context, venta *model.Venta, clienteEmail *string, movimientos []*model.MovInventario, productos map[uuid.UUID]*model.Producto) {
	if s.dispatcher == nil {
		return
	}

	payload := worker.ComprobanteJobPayload{VentaID: venta.ID.String()}
	if clienteEmail != nil {
		payload.ClienteEmail = *clienteEmail
	}
	if err := s.dispatcher.EnqueueComprobante(ctx, payload); err != nil {
		log.Warn().Err(err).Str("numero", venta.NumeroComprobante).Msg("venta: enqueue comprobante failed")
	}

	for _, mov := range movimientos {
		producto, ok := productos[mov.ProductoID]
		if !ok || mov.StockNuevo > producto.StockMinimo {
			continue
		}
		alerta := worker.AlertaStockPayload{
			ProductoID:  producto.ID.String(),
			Nombre:      producto.Nombre,
			Stock:       mov.StockNuevo,
			StockMinimo: producto.StockMinimo,
		}
		if err := s.dispatcher.EnqueueAlertaStock(ctx, alerta); err != nil {
			log.Warn().Err(err).Str("producto", producto.Nombre).Msg("venta: enqueue alerta failed")
		}
	}
}

func (s *ventaService) AnularVenta(ctx context.Context, ventaID, usuarioID uuid.UUID, motivo string) (*dto.VentaResponse, error) {
	var venta *model.Venta
	err := runTx(ctx, s.ventaRepo.DB(), func(tx *gorm.DB) error {
		var err error
		venta, err = s.ventaRepo.FindByIDForUpdateTx(tx, ventaID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &VentaNoEncontradaError{VentaID: ventaID}
			}
			return clasificarErrorDB(err, "")
		}
		if venta.Estado == model.EstadoCancelada {
			return &VentaYaAnuladaError{VentaID: ventaID}
		}

		orden := ordenarPorProducto(venta.Detalles)
		for _, idx := range orden {
			d := &venta.Detalles[idx]
			_, err := s.inventarioSvc.RegistrarMovimientoTx(ctx, tx, MovimientoParams{
				ProductoID:   d.ProductoID,
				Tipo:         model.MovimientoEntrada,
				Cantidad:     d.Cantidad,
				UsuarioID:    usuarioID,
				Referencia:   model.ReferenciaAnulacionVenta,
				ReferenciaID: &venta.ID,
				Motivo:       "Anulacion de venta " + venta.NumeroComprobante + ": " + motivo,
			})
			if err != nil {
				return err
			}
		}

		anotacion := "Anulada: " + motivo
		if venta.Notas != nil && *venta.Notas != "" {
			anotacion = *venta.Notas + " | " + anotacion
		}
		venta.Estado = model.EstadoCancelada
		venta.Notas = &anotacion
		if err := s.ventaRepo.UpdateEstadoNotasTx(tx, venta.ID, model.EstadoCancelada, venta.Notas); err != nil {
			return clasificarErrorDB(err, "")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := ventaToResponse(venta, nil)
	return &resp, nil
}

func (s *ventaService) ObtenerVenta(ctx context.Context, id uuid.UUID) (*dto.VentaResponse, error) {
	venta, err := s.ventaRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &VentaNoEncontradaError{VentaID: id}
		}
		return nil, err
	}
	resp := ventaToResponse(venta, nil)
	return &resp, nil
}

func (s *ventaService) ListVentas(ctx context.Context, filter dto.VentaFilter) (*dto.VentaListResponse, error) {
	ventas, total, err := s.ventaRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.VentaResponse, 0, len(ventas))
	for i := range ventas {
		items = append(items, ventaToResponse(&ventas[i], nil))
	}
	return &dto.VentaListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *ventaService) VentasPorPeriodo(ctx context.Context, desde, hasta string) (*dto.VentasPeriodoResponse, error) {
	total, cantidad, err := s.ventaRepo.TotalPorPeriodo(ctx, desde, hasta)
	if err != nil {
		return nil, err
	}
	return &dto.VentasPeriodoResponse{
		Desde:          desde,
		Hasta:          hasta,
		TotalVentas:    total,
		CantidadVentas: cantidad,
	}, nil
}

// ordenarPorProducto returns the detalle indices sorted by ascending product
// id, the canonical lock order for multi-line stock operations.
func ordenarPorProducto(detalles []model.DetalleVenta) []int {
	orden := make([]int, len(detalles))
	for i := range orden {
		orden[i] = i
	}
	sort.Slice(orden, func(a, b int) bool {
		pa := detalles[orden[a]].ProductoID
		pb := detalles[orden[b]].ProductoID
		return bytes.Compare(pa[:], pb[:]) < 0
	})
	return orden
}

func ventaToResponse(v *model.Venta, productos map[uuid.UUID]*model.Producto) dto.VentaResponse {
	resp := dto.VentaResponse{
		ID:                v.ID.String(),
		Fecha:             v.Fecha.Format(time.RFC3339),
		UsuarioID:         v.UsuarioID.String(),
		TipoComprobante:   v.TipoComprobante,
		NumeroComprobante: v.NumeroComprobante,
		MetodoPago:        v.MetodoPago,
		Subtotal:          v.Subtotal,
		Descuento:         v.Descuento,
		Impuesto:          v.Impuesto,
		Total:             v.Total,
		Estado:            v.Estado,
		Notas:             v.Notas,
	}
	if v.ClienteID != nil {
		id := v.ClienteID.String()
		resp.ClienteID = &id
	}
	resp.Detalles = make([]dto.DetalleVentaResponse, 0, len(v.Detalles))
	for i := range v.Detalles {
		d := &v.Detalles[i]
		item := dto.DetalleVentaResponse{
			ProductoID:        d.ProductoID.String(),
			Cantidad:          d.Cantidad,
			PrecioUnitario:    d.PrecioUnitario,
			DescuentoUnitario: d.DescuentoUnitario,
			Subtotal:          d.Subtotal,
			Utilidad:          d.Utilidad,
		}
		if d.Producto != nil {
			item.Producto = d.Producto.Nombre
		} else if p, ok := productos[d.ProductoID]; ok {
			item.Producto = p.Nombre
		}
		resp.Detalles = append(resp.Detalles, item)
	}
	return resp
}
