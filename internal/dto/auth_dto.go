package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type LoginRequest struct {
	Username string `json:"username" validate:"required,max=50"`
	Password string `json:"password" validate:"required"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// UsuarioSesion is the user summary returned with a token.
type UsuarioSesion struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Nombre   string `json:"nombre"`
	Rol      string `json:"rol"`
}

type LoginResponse struct {
	Token string        `json:"token"`
	User  UsuarioSesion `json:"user"`
}

// PermisosResponse lists the panel operations the caller's role may perform.
type PermisosResponse struct {
	Rol         string   `json:"rol"`
	Operaciones []string `json:"operaciones"`
}
