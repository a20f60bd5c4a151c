package transacao

import (
	"fmt"
	"strings"
	"time"

	"github.com/AtlasTurismo/api-caixa/internal/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// LinhaChaveComissao é a chave reservada da despesa de comissão de uma
// entrada; entradas têm no máximo uma comissão, então a chave é fixa.
const LinhaChaveComissao = "comissao"

// Reconciliador mantém a invariante: toda linha de fornecedor paga (e a
// comissão paga) tem exatamente uma despesa derivada no banco; linhas
// pendentes não têm nenhuma. Roda após todo create/update de entrada e na
// geração manual, sempre de forma idempotente.
type Reconciliador struct {
	Store Store
	Log   zerolog.Logger
}

func NewReconciliador(store Store, log zerolog.Logger) *Reconciliador {
	return &Reconciliador{Store: store, Log: log}
}

// NormalizarLinhas garante chave estável e status default em todas as
// linhas de fornecedor. Deve rodar antes de persistir a entrada.
func NormalizarLinhas(t *Transacao) {
	for i := range t.Fornecedores {
		if strings.TrimSpace(t.Fornecedores[i].Chave) == "" {
			t.Fornecedores[i].Chave = uuid.NewString()
		}
		if strings.TrimSpace(t.Fornecedores[i].StatusPagamento) == "" {
			t.Fornecedores[i].StatusPagamento = models.StatusPendente
		}
	}
	if t.StatusComissao == "" && t.ValorComissao != nil {
		t.StatusComissao = models.StatusPendente
	}
}

// ReaproveitarChaves devolve às linhas reenviadas sem chave a chave que a
// gravação anterior já tinha atribuído, casando pelo nome do fornecedor.
// Um PUT que reenvia as linhas sem a chave gerada não pode transformá-las
// em linhas novas aos olhos da reconciliação, senão cada reenvio duplicaria
// a despesa derivada de uma linha paga. Linhas de fornecedores realmente
// novos seguem sem chave e recebem uma em NormalizarLinhas, que deve rodar
// depois desta.
func ReaproveitarChaves(t *Transacao, anteriores []LinhaFornecedor) {
	usadas := make(map[string]bool, len(t.Fornecedores))
	for _, l := range t.Fornecedores {
		if l.Chave != "" {
			usadas[l.Chave] = true
		}
	}
	for i := range t.Fornecedores {
		if strings.TrimSpace(t.Fornecedores[i].Chave) != "" {
			continue
		}
		nome := strings.TrimSpace(t.Fornecedores[i].Nome)
		for _, ant := range anteriores {
			if ant.Chave == "" || usadas[ant.Chave] {
				continue
			}
			if strings.TrimSpace(ant.Nome) == nome {
				t.Fornecedores[i].Chave = ant.Chave
				usadas[ant.Chave] = true
				break
			}
		}
	}
}

// Reconciliar gera as despesas derivadas que faltam para a entrada t.
// Linhas pendentes, sem nome ou sem valor válido não geram nada; linhas já
// reconciliadas (par origem+chave existente) são puladas. Retorna apenas as
// despesas criadas nesta chamada.
func (r *Reconciliador) Reconciliar(t *Transacao) ([]Transacao, error) {
	if t.Tipo != models.TipoEntrada || t.ID == 0 {
		return nil, nil
	}

	var geradas []Transacao
	for _, linha := range t.Fornecedores {
		valor, ok := valorDaLinha(linha)
		if !ok {
			continue
		}
		existe, err := r.Store.DespesaDerivadaExiste(t.ID, linha.Chave)
		if err != nil {
			return geradas, err
		}
		if existe {
			continue
		}
		despesa := Transacao{
			Tipo:       models.TipoSaida,
			Categoria:  models.CategoriaPagamentoFornecedor,
			Descricao:  fmt.Sprintf("Pagamento a %s - Ref: %s", linha.Nome, t.Descricao),
			Valor:      valor,
			Data:       dataDaLinha(linha),
			Fornecedor: linha.Nome,
			OrigemID:   &t.ID,
			AutoGerada: true,
			LinhaChave: linha.Chave,
			UsuarioID:  t.UsuarioID,
		}
		if err := r.Store.Criar(&despesa); err != nil {
			return geradas, err
		}
		geradas = append(geradas, despesa)
	}

	if comissaoElegivel(t) {
		existe, err := r.Store.DespesaDerivadaExiste(t.ID, LinhaChaveComissao)
		if err != nil {
			return geradas, err
		}
		if !existe {
			despesa := Transacao{
				Tipo:       models.TipoSaida,
				Categoria:  models.CategoriaComissaoVendedor,
				Descricao:  fmt.Sprintf("Comissão para %s - Ref: %s", t.Vendedor, t.Descricao),
				Valor:      *t.ValorComissao,
				Data:       time.Now(),
				Vendedor:   t.Vendedor,
				OrigemID:   &t.ID,
				AutoGerada: true,
				LinhaChave: LinhaChaveComissao,
				UsuarioID:  t.UsuarioID,
			}
			if err := r.Store.Criar(&despesa); err != nil {
				return geradas, err
			}
			geradas = append(geradas, despesa)
		}
	}

	return geradas, nil
}

// PropagarEdicao empurra o valor/status de uma despesa derivada editada de
// volta para o sub-registro da entrada de origem. Origem ausente ou linha
// não encontrada viram no-op silencioso: a edição da despesa em si já foi
// aceita e não deve falhar por um vínculo quebrado.
func (r *Reconciliador) PropagarEdicao(d *Transacao) error {
	if !d.Derivada() || d.LinhaChave == "" {
		return nil
	}

	origem, err := r.Store.BuscarPorID(*d.OrigemID)
	if err != nil {
		r.Log.Debug().
			Uint("despesaId", d.ID).
			Uint("origemId", *d.OrigemID).
			Msg("origem da despesa derivada não encontrada; sync ignorado")
		return nil
	}

	if d.LinhaChave == LinhaChaveComissao {
		v := d.Valor
		origem.ValorComissao = &v
		origem.StatusComissao = models.StatusPago
		return r.Store.Atualizar(origem)
	}

	for i := range origem.Fornecedores {
		if origem.Fornecedores[i].Chave != d.LinhaChave {
			continue
		}
		origem.Fornecedores[i].Valor = d.Valor.StringFixed(2)
		origem.Fornecedores[i].StatusPagamento = models.StatusPago
		return r.Store.Atualizar(origem)
	}

	// Linha removida ou chave desconhecida: nada a sincronizar.
	return nil
}

// valorDaLinha valida a elegibilidade de uma linha para geração: paga, com
// nome e com valor decimal positivo.
func valorDaLinha(l LinhaFornecedor) (decimal.Decimal, bool) {
	if l.StatusPagamento != models.StatusPago {
		return decimal.Zero, false
	}
	if strings.TrimSpace(l.Nome) == "" || strings.TrimSpace(l.Valor) == "" {
		return decimal.Zero, false
	}
	v, err := decimal.NewFromString(strings.TrimSpace(l.Valor))
	if err != nil || !v.IsPositive() {
		return decimal.Zero, false
	}
	return v, true
}

func comissaoElegivel(t *Transacao) bool {
	return t.ValorComissao != nil &&
		t.ValorComissao.IsPositive() &&
		strings.TrimSpace(t.Vendedor) != "" &&
		t.StatusComissao == models.StatusPago
}

func dataDaLinha(l LinhaFornecedor) time.Time {
	if l.DataPagamento != "" {
		if d, err := time.Parse("2006-01-02", l.DataPagamento); err == nil {
			return d
		}
	}
	return time.Now()
}
