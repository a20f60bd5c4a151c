// internal/usuario/dto.go
package usuario

// LoginRequest é usado em POST /usuarios/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreateUsuarioRequest é usado em POST /usuarios
type CreateUsuarioRequest struct {
	Nome      string `json:"nome"`
	Sobrenome string `json:"sobrenome"`
	Email     string `json:"email"`
	Telefone  string `json:"telefone"`
	Senha     string `json:"senha"`
	IsAdmin   bool   `json:"isAdmin"`
}

// UpdateUsuarioRequest é usado em PUT /usuarios/{id}
// Campos como ponteiro permitem omitir no JSON se não quiser alterar
type UpdateUsuarioRequest struct {
	Nome      *string `json:"nome,omitempty"`
	Sobrenome *string `json:"sobrenome,omitempty"`
	Telefone  *string `json:"telefone,omitempty"`
	Senha     *string `json:"senha,omitempty"`
}
