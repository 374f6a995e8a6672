package dto

// RegisterRequest datos de alta de un usuario.
type RegisterRequest struct {
	Nombre string `json:"nombre"`
	Contra string `json:"contra"`
}

// LoginRequest credenciales de login.
type LoginRequest struct {
	Nombre string `json:"nombre"`
	Contra string `json:"contra"`
}

// UsuarioBrief proyección pública del usuario (nunca incluye la contraseña).
type UsuarioBrief struct {
	ID     string `json:"id"`
	Nombre string `json:"nombre"`
	Rol    string `json:"rol"`
}

// LoginResponse token + datos básicos del usuario.
type LoginResponse struct {
	Token   string       `json:"token"`
	Usuario UsuarioBrief `json:"usuario"`
}
