package dto

import "github.com/shopspring/decimal"

// AjustarStockRequest sets the absolute stock of one product ("recount").
type AjustarStockRequest struct {
	Stock  int    `json:"stock"  validate:"min=0"`
	Motivo string `json:"motivo" validate:"required,min=3"`
}

// MovimientoFilter is bound from the query string of GET /v1/inventario/movimientos.
type MovimientoFilter struct {
	ProductoID     string `form:"producto_id"     validate:"omitempty,uuid"`
	TipoMovimiento string `form:"tipo_movimiento" validate:"omitempty,oneof=entrada salida ajuste"`
	Referencia     string `form:"referencia"`
	Desde          string `form:"desde"` // YYYY-MM-DD
	Hasta          string `form:"hasta"`
	Page           int    `form:"page,default=1"   validate:"min=1"`
	Limit          int    `form:"limit,default=50" validate:"min=1,max=500"`
}

type MovimientoResponse struct {
	ID             string  `json:"id"`
	ProductoID     string  `json:"producto_id"`
	Producto       string  `json:"producto"`
	UsuarioID      string  `json:"usuario_id"`
	TipoMovimiento string  `json:"tipo_movimiento"`
	Cantidad       int     `json:"cantidad"`
	StockAnterior  int     `json:"stock_anterior"`
	StockNuevo     int     `json:"stock_nuevo"`
	Referencia     string  `json:"referencia"`
	ReferenciaID   *string `json:"referencia_id"`
	Motivo         string  `json:"motivo"`
	Fecha          string  `json:"fecha"`
}

type MovimientoListResponse struct {
	Data  []MovimientoResponse `json:"data"`
	Total int64                `json:"total"`
}

type ProductoStockResponse struct {
	ID          string `json:"id"`
	Nombre      string `json:"nombre"`
	Rubro       string `json:"rubro"`
	Stock       int    `json:"stock"`
	StockMinimo int    `json:"stock_minimo"`
}

type ResumenInventarioResponse struct {
	TotalProductos     int64           `json:"total_productos"`
	ProductosBajoStock int             `json:"productos_bajo_stock"`
	ProductosAgotados  int             `json:"productos_agotados"`
	ValorTotal         decimal.Decimal `json:"valor_total"`
}
