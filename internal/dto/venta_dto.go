package dto

import "github.com/shopspring/decimal"

// ─── Filter / List ──────────────────────────────────────────────────────────

// VentaFilter is bound from the query string of GET /v1/ventas.
type VentaFilter struct {
	Fecha           string `form:"fecha"`                     // YYYY-MM-DD; empty = sin filtro
	Estado          string `form:"estado,default=completada"` // completada | cancelada | all
	TipoComprobante string `form:"tipo_comprobante" validate:"omitempty,oneof=boleta factura ticket"`
	Page            int    `form:"page,default=1"   validate:"min=1"`
	Limit           int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type VentaListResponse struct {
	Data  []VentaResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

// DetalleVentaRequest is one cart line. PrecioUnitario and DescuentoUnitario
// are optional: the price defaults to the product's current sale price and the
// discount to zero.
type DetalleVentaRequest struct {
	ProductoID        string           `json:"producto_id"        validate:"required,uuid"`
	Cantidad          int              `json:"cantidad"           validate:"required,min=1"`
	PrecioUnitario    *decimal.Decimal `json:"precio_unitario"    validate:"omitempty"`
	DescuentoUnitario *decimal.Decimal `json:"descuento_unitario" validate:"omitempty"`
}

type CrearVentaRequest struct {
	ClienteID       *string               `json:"cliente_id"       validate:"omitempty,uuid"`
	TipoComprobante string                `json:"tipo_comprobante" validate:"omitempty,oneof=boleta factura ticket"`
	MetodoPago      string                `json:"metodo_pago"      validate:"omitempty,oneof=efectivo tarjeta transferencia mixto"`
	Descuento       decimal.Decimal       `json:"descuento"        validate:"min=0"`
	Notas           *string               `json:"notas"`
	ClienteEmail    *string               `json:"cliente_email"    validate:"omitempty,email"`
	Detalles        []DetalleVentaRequest `json:"detalles"         validate:"required,min=1,dive"`
}

type AnularVentaRequest struct {
	Motivo string `json:"motivo" validate:"required,min=5"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type DetalleVentaResponse struct {
	ProductoID        string          `json:"producto_id"`
	Producto          string          `json:"producto"`
	Cantidad          int             `json:"cantidad"`
	PrecioUnitario    decimal.Decimal `json:"precio_unitario"`
	DescuentoUnitario decimal.Decimal `json:"descuento_unitario"`
	Subtotal          decimal.Decimal `json:"subtotal"`
	Utilidad          decimal.Decimal `json:"utilidad"`
}

type VentaResponse struct {
	ID                string                 `json:"id"`
	Fecha             string                 `json:"fecha"`
	UsuarioID         string                 `json:"usuario_id"`
	ClienteID         *string                `json:"cliente_id"`
	TipoComprobante   string                 `json:"tipo_comprobante"`
	NumeroComprobante string                 `json:"numero_comprobante"`
	MetodoPago        string                 `json:"metodo_pago"`
	Subtotal          decimal.Decimal        `json:"subtotal"`
	Descuento         decimal.Decimal        `json:"descuento"`
	Impuesto          decimal.Decimal        `json:"impuesto"`
	Total             decimal.Decimal        `json:"total"`
	Estado            string                 `json:"estado"`
	Notas             *string                `json:"notas"`
	Detalles          []DetalleVentaResponse `json:"detalles"`
}

// VentasPeriodoResponse aggregates completed sales between two dates.
type VentasPeriodoResponse struct {
	Desde          string          `json:"desde"`
	Hasta          string          `json:"hasta"`
	TotalVentas    decimal.Decimal `json:"total_ventas"`
	CantidadVentas int64           `json:"cantidad_ventas"`
}
