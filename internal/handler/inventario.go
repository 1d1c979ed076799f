package handler

import (
	"net/http"
	"time"

	"github.com/Henry-56/ferreteria/internal/apierror"
	"github.com/Henry-56/ferreteria/internal/dto"
	"github.com/Henry-56/ferreteria/internal/middleware"
	"github.com/Henry-56/ferreteria/internal/repository"
	"github.com/Henry-56/ferreteria/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type InventarioHandler struct{ svc service.InventarioService }

func NewInventarioHandler(svc service.InventarioService) *InventarioHandler {
	return &InventarioHandler{svc: svc}
}

// AjustarStock godoc
// @Summary      Ajustar stock de un producto
// @Description  Fija el stock absoluto tras un recuento fisico y registra el movimiento de ajuste.
// @Tags         inventario
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string                  true "UUID del producto"
// @Param        body body dto.AjustarStockRequest true "Nuevo stock y motivo"
// @Success      200  {object} dto.MovimientoResponse
// @Failure      404  {object} apierror.APIError
// @Failure      422  {object} apierror.APIError
// @Router       /v1/productos/{id}/ajustar-stock [post]
func (h *InventarioHandler) AjustarStock(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.AjustarStockRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	usuarioID, _ := uuid.Parse(claims.UserID)

	mov, err := h.svc.AjustarStock(c.Request.Context(), id, req.Stock, usuarioID, req.Motivo)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":              mov.ID.String(),
		"producto_id":     mov.ProductoID.String(),
		"tipo_movimiento": mov.TipoMovimiento,
		"cantidad":        mov.Cantidad,
		"stock_anterior":  mov.StockAnterior,
		"stock_nuevo":     mov.StockNuevo,
		"motivo":          mov.Motivo,
		"fecha":           mov.Fecha.Format(time.RFC3339),
	})
}

// Movimientos godoc
// @Summary      Historial de movimientos de inventario
// @Tags         inventario
// @Produce      json
// @Security     BearerAuth
// @Param        producto_id     query string false "UUID del producto"
// @Param        tipo_movimiento query string false "entrada | salida | ajuste"
// @Param        referencia      query string false "venta | compra | ajuste_manual | anulacion_venta"
// @Param        desde           query string false "Fecha inicial YYYY-MM-DD"
// @Param        hasta           query string false "Fecha final YYYY-MM-DD"
// @Success      200 {object} dto.MovimientoListResponse
// @Router       /v1/inventario/movimientos [get]
func (h *InventarioHandler) Movimientos(c *gin.Context) {
	var q dto.MovimientoFilter
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	filter := repository.MovInventarioFilter{
		TipoMovimiento: q.TipoMovimiento,
		Referencia:     q.Referencia,
		Page:           q.Page,
		Limit:          q.Limit,
	}
	if q.ProductoID != "" {
		id, err := uuid.Parse(q.ProductoID)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("producto_id invalido"))
			return
		}
		filter.ProductoID = &id
	}
	if q.Desde != "" && q.Hasta != "" {
		desde, err1 := time.Parse("2006-01-02", q.Desde)
		hasta, err2 := time.Parse("2006-01-02", q.Hasta)
		if err1 != nil || err2 != nil {
			c.JSON(http.StatusBadRequest, apierror.New("desde/hasta deben ser YYYY-MM-DD"))
			return
		}
		// hasta is inclusive: extend to the end of that day
		hasta = hasta.Add(24*time.Hour - time.Nanosecond)
		filter.Desde = &desde
		filter.Hasta = &hasta
	}
	resp, err := h.svc.HistorialMovimientos(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar movimientos"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// BajoStock godoc
// @Summary      Productos con stock en o bajo el minimo
// @Tags         inventario
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.ProductoStockResponse
// @Router       /v1/inventario/bajo-stock [get]
func (h *InventarioHandler) BajoStock(c *gin.Context) {
	resp, err := h.svc.ProductosBajoStock(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al consultar stock"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Agotados godoc
// @Summary      Productos con stock cero
// @Tags         inventario
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.ProductoStockResponse
// @Router       /v1/inventario/agotados [get]
func (h *InventarioHandler) Agotados(c *gin.Context) {
	resp, err := h.svc.ProductosAgotados(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al consultar stock"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Resumen godoc
// @Summary      Resumen de inventario
// @Description  Totales de productos, bajo stock, agotados y valor del inventario a costo.
// @Tags         inventario
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.ResumenInventarioResponse
// @Router       /v1/inventario/resumen [get]
func (h *InventarioHandler) Resumen(c *gin.Context) {
	resp, err := h.svc.ResumenInventario(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al calcular el resumen"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
