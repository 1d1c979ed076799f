package dto

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type LoginResponse struct {
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	TokenType    string          `json:"token_type"`
	ExpiresIn    int             `json:"expires_in"`
	User         UsuarioResponse `json:"user"`
}

type CrearUsuarioRequest struct {
	Username       string  `json:"username"        validate:"required,min=3,max=60"`
	NombreCompleto string  `json:"nombre_completo" validate:"required,min=2,max=120"`
	Email          *string `json:"email"           validate:"omitempty,email"`
	Password       string  `json:"password"        validate:"required,min=6"`
	Rol            string  `json:"rol"             validate:"required,oneof=admin vendedor almacenero cajero supervisor"`
}

type ActualizarUsuarioRequest struct {
	NombreCompleto string  `json:"nombre_completo" validate:"omitempty,min=2,max=120"`
	Email          *string `json:"email"           validate:"omitempty,email"`
	Password       string  `json:"password"        validate:"omitempty,min=6"`
	Rol            string  `json:"rol"             validate:"omitempty,oneof=admin vendedor almacenero cajero supervisor"`
}

type UsuarioResponse struct {
	ID             string  `json:"id"`
	Username       string  `json:"username"`
	NombreCompleto string  `json:"nombre_completo"`
	Email          *string `json:"email,omitempty"`
	Rol            string  `json:"rol"`
	Activo         bool    `json:"activo"`
}
