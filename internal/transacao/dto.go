// internal/transacao/dto.go
package transacao

import (
	"errors"
	"strings"
	"time"

	"github.com/AtlasTurismo/api-caixa/internal/models"
	"github.com/shopspring/decimal"
)

// TransacaoDTO é usado em POST /transacoes e PUT /transacoes/{id}
// (o PUT é substituição integral, mesmo shape do POST).
type TransacaoDTO struct {
	Tipo      string          `json:"tipo"`
	Descricao string          `json:"descricao"`
	Valor     decimal.Decimal `json:"valor"`
	Categoria string          `json:"categoria"`
	Data      string          `json:"data"` // "2006-01-02" ou RFC3339; vazio usa hoje
	Cliente   string          `json:"cliente"`

	ValorVenda     *decimal.Decimal `json:"valorVenda,omitempty"`
	ValorComissao  *decimal.Decimal `json:"valorComissao,omitempty"`
	StatusComissao string           `json:"statusComissao,omitempty"`
	Vendedor       string           `json:"vendedor,omitempty"`

	Fornecedores []LinhaFornecedor `json:"fornecedores"`
}

// Validar rejeita o payload antes de qualquer lógica de geração rodar.
func (d *TransacaoDTO) Validar() error {
	switch d.Tipo {
	case models.TipoEntrada, models.TipoSaida:
	case "":
		return errors.New("o campo 'tipo' é obrigatório")
	default:
		return errors.New("tipo inválido: use 'entrada' ou 'saida'")
	}
	if strings.TrimSpace(d.Descricao) == "" {
		return errors.New("o campo 'descricao' é obrigatório")
	}
	if !d.Valor.IsPositive() {
		return errors.New("o campo 'valor' deve ser maior que zero")
	}
	return nil
}

// DataOuHoje interpreta o campo de data do payload.
func (d *TransacaoDTO) DataOuHoje() time.Time {
	s := strings.TrimSpace(d.Data)
	if s == "" {
		return time.Now()
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	return time.Now()
}

// AplicarEm copia o payload para o model. Campos de vínculo de despesa
// derivada (origem, chave, autoGerada) nunca vêm do caller.
func (d *TransacaoDTO) AplicarEm(t *Transacao) {
	t.Tipo = d.Tipo
	t.Descricao = strings.TrimSpace(d.Descricao)
	t.Valor = d.Valor
	t.Categoria = strings.TrimSpace(d.Categoria)
	t.Data = d.DataOuHoje()
	t.Cliente = strings.TrimSpace(d.Cliente)
	t.ValorVenda = d.ValorVenda
	t.ValorComissao = d.ValorComissao
	t.StatusComissao = strings.TrimSpace(d.StatusComissao)
	t.Vendedor = strings.TrimSpace(d.Vendedor)
	if d.Fornecedores == nil {
		d.Fornecedores = []LinhaFornecedor{}
	}
	t.Fornecedores = d.Fornecedores
}
