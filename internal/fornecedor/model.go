// internal/fornecedor/model.go
package fornecedor

import (
	"time"

	"gorm.io/gorm"
)

// Fornecedor é o cadastro de um fornecedor (operadora, cia aérea, hotel).
// As linhas de fornecedor embutidas nas entradas referenciam fornecedores
// pelo nome em texto livre; este cadastro é o catálogo de apoio.
type Fornecedor struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`

	Nome        string `gorm:"size:150;not null;uniqueIndex" json:"nome"`
	CNPJ        string `gorm:"size:20" json:"cnpj"`
	Email       string `gorm:"size:100" json:"email"`
	Telefone    string `gorm:"size:20" json:"telefone"`
	Contato     string `gorm:"size:150" json:"contato"`
	Observacoes string `json:"observacoes"`

	UsuarioID uint `gorm:"index" json:"usuarioId"` // quem cadastrou
}
