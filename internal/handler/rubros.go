package handler

import (
	"net/http"

	"github.com/Henry-56/ferreteria/internal/apierror"
	"github.com/Henry-56/ferreteria/internal/dto"
	"github.com/Henry-56/ferreteria/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type RubrosHandler struct{ svc service.RubroService }

func NewRubrosHandler(svc service.RubroService) *RubrosHandler {
	return &RubrosHandler{svc: svc}
}

func (h *RubrosHandler) Crear(c *gin.Context) {
	var req dto.CrearRubroRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearRubro(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *RubrosHandler) Listar(c *gin.Context) {
	resp, err := h.svc.ListRubros(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar rubros"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RubrosHandler) Actualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.ActualizarRubroRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarRubro(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RubrosHandler) Eliminar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	if err := h.svc.EliminarRubro(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}
