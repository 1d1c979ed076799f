package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearProductoRequest struct {
	Nombre       string          `json:"nombre"        validate:"required,min=2,max=200"`
	Descripcion  *string         `json:"descripcion"`
	RubroID      string          `json:"rubro_id"      validate:"required,uuid"`
	SKU          *string         `json:"sku"           validate:"omitempty,max=50"`
	CodigoBarras *string         `json:"codigo_barras" validate:"omitempty,min=8,max=50"`
	PrecioCompra decimal.Decimal `json:"precio_compra" validate:"min=0"`
	PrecioVenta  decimal.Decimal `json:"precio_venta"  validate:"required"`
	StockInicial int             `json:"stock_inicial" validate:"min=0"`
	StockMinimo  int             `json:"stock_minimo"  validate:"min=0"`
	Unidad       string          `json:"unidad"`
	ProveedorID  *string         `json:"proveedor_id"  validate:"omitempty,uuid"`
}

type ActualizarProductoRequest struct {
	Nombre       *string          `json:"nombre"        validate:"omitempty,min=2,max=200"`
	Descripcion  *string          `json:"descripcion"`
	RubroID      *string          `json:"rubro_id"      validate:"omitempty,uuid"`
	SKU          *string          `json:"sku"           validate:"omitempty,max=50"`
	CodigoBarras *string          `json:"codigo_barras" validate:"omitempty,min=8,max=50"`
	PrecioCompra *decimal.Decimal `json:"precio_compra"`
	PrecioVenta  *decimal.Decimal `json:"precio_venta"`
	StockMinimo  *int             `json:"stock_minimo"  validate:"omitempty,min=0"`
	Unidad       *string          `json:"unidad"`
	ProveedorID  *string          `json:"proveedor_id"  validate:"omitempty,uuid"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

type ProductoFilter struct {
	Nombre      string `form:"nombre"`
	Barcode     string `form:"barcode"`
	RubroID     string `form:"rubro_id"     validate:"omitempty,uuid"`
	ProveedorID string `form:"proveedor_id" validate:"omitempty,uuid"`
	Activo      string `form:"activo"` // "false" | "all" | default activos
	Page        int    `form:"page,default=1"   validate:"min=1"`
	Limit       int    `form:"limit,default=20" validate:"min=1,max=100"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductoResponse struct {
	ID            string          `json:"id"`
	Nombre        string          `json:"nombre"`
	Descripcion   *string         `json:"descripcion"`
	RubroID       string          `json:"rubro_id"`
	Rubro         string          `json:"rubro"`
	SKU           *string         `json:"sku"`
	CodigoBarras  *string         `json:"codigo_barras"`
	PrecioCompra  decimal.Decimal `json:"precio_compra"`
	PrecioVenta   decimal.Decimal `json:"precio_venta"`
	CostoPromedio decimal.Decimal `json:"costo_promedio"`
	Stock         int             `json:"stock"`
	StockMinimo   int             `json:"stock_minimo"`
	Unidad        string          `json:"unidad"`
	ProveedorID   *string         `json:"proveedor_id"`
	Activo        bool            `json:"activo"`
}

type ProductoListResponse struct {
	Data  []ProductoResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}
