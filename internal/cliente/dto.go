// internal/cliente/dto.go
package cliente

// CreateClienteRequest é usado em POST /clientes
type CreateClienteRequest struct {
	Nome        string `json:"nome"`
	Email       string `json:"email"`
	Telefone    string `json:"telefone"`
	CPF         string `json:"cpf"`
	Observacoes string `json:"observacoes"`
}

// UpdateClienteRequest é usado em PUT /clientes/{id}
type UpdateClienteRequest struct {
	Nome        *string `json:"nome,omitempty"`
	Email       *string `json:"email,omitempty"`
	Telefone    *string `json:"telefone,omitempty"`
	CPF         *string `json:"cpf,omitempty"`
	Observacoes *string `json:"observacoes,omitempty"`
}
