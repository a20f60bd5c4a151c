package transacao

import (
	"time"

	"github.com/AtlasTurismo/api-caixa/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// LinhaFornecedor é o sub-registro embutido de uma entrada descrevendo a
// parte de custo de um fornecedor e o status do pagamento ("Pendente" ou
// "Pago"). Valor é decimal em string, ex.: "1200.00".
// Chave é gerada pelo servidor na gravação e identifica a linha de forma
// estável; as despesas geradas guardam essa chave para o vínculo de volta.
type LinhaFornecedor struct {
	Chave           string `json:"chave"`
	Nome            string `json:"nome"`
	Valor           string `json:"valor"`
	StatusPagamento string `json:"statusPagamento"`
	DataPagamento   string `json:"dataPagamento,omitempty"`
	UsouMilhas      bool   `json:"usouMilhas"`
	QtdMilhas       int64  `json:"qtdMilhas,omitempty"`
	ValorMilhas     string `json:"valorMilhas,omitempty"`
}

// Transacao cobre entradas, saídas manuais e saídas geradas automaticamente.
// As geradas vivem na mesma tabela que as demais, distinguidas apenas por
// AutoGerada e OrigemID.
type Transacao struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`

	Tipo      string          `gorm:"size:20;not null;index" json:"tipo"` // "entrada" | "saida"
	Descricao string          `gorm:"not null" json:"descricao"`
	Valor     decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"valor"`
	Categoria string          `gorm:"size:100" json:"categoria"`
	Data      time.Time       `gorm:"index" json:"data"`
	Cliente   string          `gorm:"size:150" json:"cliente"`

	// Campos de venda (só entradas)
	ValorVenda     *decimal.Decimal `gorm:"type:numeric(14,2)" json:"valorVenda,omitempty"`
	ValorComissao  *decimal.Decimal `gorm:"type:numeric(14,2)" json:"valorComissao,omitempty"`
	StatusComissao string           `gorm:"size:20" json:"statusComissao,omitempty"`
	Vendedor       string           `gorm:"size:150" json:"vendedor,omitempty"`

	// Linhas de fornecedor embutidas (jsonb)
	Fornecedores []LinhaFornecedor `gorm:"type:jsonb;serializer:json" json:"fornecedores"`

	// Campos de despesa derivada (só saídas geradas)
	Fornecedor string `gorm:"size:150" json:"fornecedor,omitempty"`
	OrigemID   *uint  `gorm:"index" json:"origemId,omitempty"`
	AutoGerada bool   `gorm:"default:false" json:"autoGerada"`
	LinhaChave string `gorm:"size:64;index" json:"linhaChave,omitempty"`

	UsuarioID uint `gorm:"not null;index" json:"usuarioId"`
}

// Derivada informa se a transação é uma despesa gerada pelo sistema e
// vinculada a uma entrada.
func (t *Transacao) Derivada() bool {
	return t.Tipo == models.TipoSaida && t.OrigemID != nil && *t.OrigemID != 0
}
