package handler

import (
	"errors"
	"net/http"
	"reflect"

	"github.com/Henry-56/ferreteria/internal/apierror"
	"github.com/Henry-56/ferreteria/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON invalido: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// respondError maps the service error taxonomy onto HTTP status codes.
func respondError(c *gin.Context, err error) {
	var status int
	switch {
	case errors.As(err, new(*service.ProductoNoEncontradoError)),
		errors.As(err, new(*service.VentaNoEncontradaError)):
		status = http.StatusNotFound
	case errors.As(err, new(*service.StockInsuficienteError)),
		errors.As(err, new(*service.VentaYaAnuladaError)),
		errors.As(err, new(*service.ComprobanteEnConflictoError)):
		status = http.StatusConflict
	case errors.As(err, new(*service.AjusteInvalidoError)),
		errors.As(err, new(*service.DescuentoInvalidoError)):
		status = http.StatusUnprocessableEntity
	case errors.As(err, new(*service.TransitorioError)):
		status = http.StatusServiceUnavailable
	default:
		status = http.StatusBadRequest
	}
	c.JSON(status, apierror.New(err.Error()))
}
