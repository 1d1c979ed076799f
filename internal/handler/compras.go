package handler

import (
	"net/http"

	"github.com/Henry-56/ferreteria/internal/apierror"
	"github.com/Henry-56/ferreteria/internal/dto"
	"github.com/Henry-56/ferreteria/internal/middleware"
	"github.com/Henry-56/ferreteria/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ComprasHandler struct{ svc service.CompraService }

func NewComprasHandler(svc service.CompraService) *ComprasHandler {
	return &ComprasHandler{svc: svc}
}

// Crear godoc
// @Summary      Registrar compra a proveedor
// @Description  Crea la compra con sus lineas, incrementa stock con movimientos de entrada y recalcula el costo promedio ponderado de cada producto.
// @Tags         compras
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CrearCompraRequest true "Detalle de la compra"
// @Success      201  {object} dto.CompraResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/compras [post]
func (h *ComprasHandler) Crear(c *gin.Context) {
	var req dto.CrearCompraRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	usuarioID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.CrearCompra(c.Request.Context(), req, usuarioID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Obtener godoc
// @Summary      Obtener compra
// @Tags         compras
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID de la compra"
// @Success      200 {object} dto.CompraResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/compras/{id} [get]
func (h *ComprasHandler) Obtener(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.ObtenerCompra(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Listar godoc
// @Summary      Listar compras
// @Tags         compras
// @Produce      json
// @Security     BearerAuth
// @Param        proveedor_id query string false "UUID del proveedor"
// @Param        fecha        query string false "Fecha YYYY-MM-DD"
// @Success      200 {object} dto.CompraListResponse
// @Router       /v1/compras [get]
func (h *ComprasHandler) Listar(c *gin.Context) {
	var filter dto.CompraFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.ListCompras(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar compras"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
