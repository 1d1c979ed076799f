package dto

type CrearProveedorRequest struct {
	RazonSocial   string  `json:"razon_social"   validate:"required,min=2,max=150"`
	RUC           string  `json:"ruc"            validate:"required,min=8,max=20"`
	Telefono      *string `json:"telefono"`
	Email         *string `json:"email"          validate:"omitempty,email"`
	Direccion     *string `json:"direccion"`
	CondicionPago *string `json:"condicion_pago"`
}

type ActualizarProveedorRequest struct {
	RazonSocial   *string `json:"razon_social"   validate:"omitempty,min=2,max=150"`
	RUC           *string `json:"ruc"            validate:"omitempty,min=8,max=20"`
	Telefono      *string `json:"telefono"`
	Email         *string `json:"email"          validate:"omitempty,email"`
	Direccion     *string `json:"direccion"`
	CondicionPago *string `json:"condicion_pago"`
}

type ProveedorResponse struct {
	ID            string  `json:"id"`
	RazonSocial   string  `json:"razon_social"`
	RUC           string  `json:"ruc"`
	Telefono      *string `json:"telefono"`
	Email         *string `json:"email"`
	Direccion     *string `json:"direccion"`
	CondicionPago *string `json:"condicion_pago"`
	Activo        bool    `json:"activo"`
}
