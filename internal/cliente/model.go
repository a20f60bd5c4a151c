// internal/cliente/model.go
package cliente

import (
	"time"

	"gorm.io/gorm"
)

// Cliente é um cliente da agência (quem compra o pacote/passagem).
type Cliente struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`

	Nome        string `gorm:"size:150;not null" json:"nome"`
	Email       string `gorm:"size:100" json:"email"`
	Telefone    string `gorm:"size:20" json:"telefone"`
	CPF         string `gorm:"size:20;index" json:"cpf"`
	Observacoes string `json:"observacoes"`

	UsuarioID uint `gorm:"not null;index" json:"usuarioId"`
}
