package dto

import "github.com/shopspring/decimal"

type CompraFilter struct {
	ProveedorID string `form:"proveedor_id" validate:"omitempty,uuid"`
	Fecha       string `form:"fecha"`
	Page        int    `form:"page,default=1"   validate:"min=1"`
	Limit       int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type DetalleCompraRequest struct {
	ProductoID     string          `json:"producto_id"     validate:"required,uuid"`
	Cantidad       int             `json:"cantidad"        validate:"required,min=1"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario" validate:"required"`
}

type CrearCompraRequest struct {
	ProveedorID   string                 `json:"proveedor_id"   validate:"required,uuid"`
	NumeroFactura *string                `json:"numero_factura"`
	Notas         *string                `json:"notas"`
	Detalles      []DetalleCompraRequest `json:"detalles"       validate:"required,min=1,dive"`
}

type DetalleCompraResponse struct {
	ProductoID     string          `json:"producto_id"`
	Producto       string          `json:"producto"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

type CompraResponse struct {
	ID            string                  `json:"id"`
	Fecha         string                  `json:"fecha"`
	UsuarioID     string                  `json:"usuario_id"`
	ProveedorID   string                  `json:"proveedor_id"`
	Proveedor     string                  `json:"proveedor"`
	NumeroFactura *string                 `json:"numero_factura"`
	Subtotal      decimal.Decimal         `json:"subtotal"`
	Impuesto      decimal.Decimal         `json:"impuesto"`
	Total         decimal.Decimal         `json:"total"`
	Estado        string                  `json:"estado"`
	Notas         *string                 `json:"notas"`
	Detalles      []DetalleCompraResponse `json:"detalles"`
}

type CompraListResponse struct {
	Data  []CompraResponse `json:"data"`
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}
