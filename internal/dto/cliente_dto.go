package dto

import "github.com/shopspring/decimal"

type CrearClienteRequest struct {
	Nombre      string  `json:"nombre"       validate:"required,min=2,max=100"`
	RucDni      *string `json:"ruc_dni"      validate:"omitempty,max=20"`
	Direccion   *string `json:"direccion"`
	Telefono    *string `json:"telefono"`
	Email       *string `json:"email"        validate:"omitempty,email"`
	TipoCliente string  `json:"tipo_cliente" validate:"omitempty,oneof=minorista mayorista corporativo"`
}

type ActualizarClienteRequest struct {
	Nombre      *string `json:"nombre"       validate:"omitempty,min=2,max=100"`
	RucDni      *string `json:"ruc_dni"      validate:"omitempty,max=20"`
	Direccion   *string `json:"direccion"`
	Telefono    *string `json:"telefono"`
	Email       *string `json:"email"        validate:"omitempty,email"`
	TipoCliente *string `json:"tipo_cliente" validate:"omitempty,oneof=minorista mayorista corporativo"`
}

type ClienteResponse struct {
	ID                string          `json:"id"`
	Nombre            string          `json:"nombre"`
	RucDni            *string         `json:"ruc_dni"`
	Direccion         *string         `json:"direccion"`
	Telefono          *string         `json:"telefono"`
	Email             *string         `json:"email"`
	TipoCliente       string          `json:"tipo_cliente"`
	CreditoDisponible decimal.Decimal `json:"credito_disponible"`
	Activo            bool            `json:"activo"`
}
