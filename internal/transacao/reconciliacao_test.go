package transacao

import (
	"testing"

	"github.com/AtlasTurismo/api-caixa/internal/models"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// memStore implementa Store em memória para testar a reconciliação sem
// banco. EmTransacao não tem rollback; os testes não exercitam falha de
// escrita no meio da unidade.
type memStore struct {
	seq  uint
	regs map[uint]*Transacao
}

func newMemStore() *memStore {
	return &memStore{regs: map[uint]*Transacao{}}
}

func (m *memStore) Criar(t *Transacao) error {
	m.seq++
	t.ID = m.seq
	cp := *t
	m.regs[t.ID] = &cp
	return nil
}

func (m *memStore) BuscarPorID(id uint) (*Transacao, error) {
	t, ok := m.regs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *t
	return &cp, nil
}

func (m *memStore) Atualizar(t *Transacao) error {
	if _, ok := m.regs[t.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *t
	m.regs[t.ID] = &cp
	return nil
}

func (m *memStore) Remover(id uint) error {
	delete(m.regs, id)
	return nil
}

func (m *memStore) Listar(f Filtro) ([]Transacao, error) {
	var out []Transacao
	for _, t := range m.regs {
		if f.Tipo != "" && t.Tipo != f.Tipo {
			continue
		}
		if f.UsuarioID != 0 && t.UsuarioID != f.UsuarioID {
			continue
		}
		out = append(out, *t)
	}
	return out, nil
}

func (m *memStore) DespesaDerivadaExiste(origemID uint, linhaChave string) (bool, error) {
	for _, t := range m.regs {
		if t.AutoGerada && t.OrigemID != nil && *t.OrigemID == origemID && t.LinhaChave == linhaChave {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) EmTransacao(fn func(Store) error) error {
	return fn(m)
}

func (m *memStore) total() int { return len(m.regs) }

func novaEntrada(store *memStore, t *testing.T, linhas ...LinhaFornecedor) *Transacao {
	t.Helper()
	e := &Transacao{
		Tipo:         models.TipoEntrada,
		Descricao:    "Pacote Salvador",
		Valor:        decimal.NewFromInt(5000),
		Fornecedores: linhas,
		UsuarioID:    1,
	}
	NormalizarLinhas(e)
	require.NoError(t, store.Criar(e))
	return e
}

func recTeste(store *memStore) *Reconciliador {
	return NewReconciliador(store, zerolog.Nop())
}

func TestReconciliarGeraUmaDespesaPorLinhaPaga(t *testing.T) {
	store := newMemStore()
	e := novaEntrada(store, t,
		LinhaFornecedor{Nome: "Fornecedor A", Valor: "1200.00", StatusPagamento: models.StatusPago},
		LinhaFornecedor{Nome: "Fornecedor B", Valor: "800.00", StatusPagamento: models.StatusPago},
		LinhaFornecedor{Nome: "Fornecedor C", Valor: "300.00", StatusPagamento: models.StatusPendente},
	)

	geradas, err := recTeste(store).Reconciliar(e)
	require.NoError(t, err)
	require.Len(t, geradas, 2)

	for i, g := range geradas {
		assert.Equal(t, models.TipoSaida, g.Tipo)
		assert.Equal(t, models.CategoriaPagamentoFornecedor, g.Categoria)
		assert.True(t, g.AutoGerada)
		require.NotNil(t, g.OrigemID)
		assert.Equal(t, e.ID, *g.OrigemID)
		assert.Equal(t, e.Fornecedores[i].Chave, g.LinhaChave)
	}
	assert.True(t, geradas[0].Valor.Equal(decimal.RequireFromString("1200.00")))
	assert.True(t, geradas[1].Valor.Equal(decimal.RequireFromString("800.00")))
	assert.Equal(t, "Fornecedor A", geradas[0].Fornecedor)
	assert.Equal(t, "Pagamento a Fornecedor A - Ref: Pacote Salvador", geradas[0].Descricao)
}

func TestLinhasNaoElegiveisNaoGeramDespesa(t *testing.T) {
	store := newMemStore()
	e := novaEntrada(store, t,
		LinhaFornecedor{Nome: "Pendente", Valor: "100.00", StatusPagamento: models.StatusPendente},
		LinhaFornecedor{Nome: "", Valor: "100.00", StatusPagamento: models.StatusPago},
		LinhaFornecedor{Nome: "Sem Valor", Valor: "", StatusPagamento: models.StatusPago},
		LinhaFornecedor{Nome: "Valor Zero", Valor: "0", StatusPagamento: models.StatusPago},
		LinhaFornecedor{Nome: "Valor Inválido", Valor: "abc", StatusPagamento: models.StatusPago},
	)

	geradas, err := recTeste(store).Reconciliar(e)
	require.NoError(t, err)
	assert.Empty(t, geradas)
	assert.Equal(t, 1, store.total())
}

func TestComissaoPagaGeraDespesaUnica(t *testing.T) {
	store := newMemStore()
	comissao := decimal.RequireFromString("250.00")
	e := &Transacao{
		Tipo:           models.TipoEntrada,
		Descricao:      "Pacote Gramado",
		Valor:          decimal.NewFromInt(3000),
		ValorComissao:  &comissao,
		Vendedor:       "Marina",
		StatusComissao: models.StatusPago,
		UsuarioID:      1,
	}
	NormalizarLinhas(e)
	require.NoError(t, store.Criar(e))

	geradas, err := recTeste(store).Reconciliar(e)
	require.NoError(t, err)
	require.Len(t, geradas, 1)
	assert.Equal(t, models.CategoriaComissaoVendedor, geradas[0].Categoria)
	assert.True(t, geradas[0].Valor.Equal(comissao))
	assert.Equal(t, "Marina", geradas[0].Vendedor)
	assert.Equal(t, LinhaChaveComissao, geradas[0].LinhaChave)
	assert.Equal(t, "Comissão para Marina - Ref: Pacote Gramado", geradas[0].Descricao)

	// Segunda rodada não duplica a comissão.
	geradas, err = recTeste(store).Reconciliar(e)
	require.NoError(t, err)
	assert.Empty(t, geradas)
}

func TestComissaoPendenteOuSemVendedorNaoGera(t *testing.T) {
	store := newMemStore()
	comissao := decimal.RequireFromString("250.00")

	casos := []struct {
		nome string
		mut  func(*Transacao)
	}{
		{"status pendente", func(e *Transacao) { e.StatusComissao = models.StatusPendente }},
		{"sem vendedor", func(e *Transacao) { e.Vendedor = "" }},
		{"sem valor", func(e *Transacao) { e.ValorComissao = nil }},
	}
	for _, c := range casos {
		t.Run(c.nome, func(t *testing.T) {
			v := comissao
			e := &Transacao{
				Tipo:           models.TipoEntrada,
				Descricao:      "Pacote",
				Valor:          decimal.NewFromInt(1000),
				ValorComissao:  &v,
				Vendedor:       "Marina",
				StatusComissao: models.StatusPago,
				UsuarioID:      1,
			}
			c.mut(e)
			require.NoError(t, store.Criar(e))

			geradas, err := recTeste(store).Reconciliar(e)
			require.NoError(t, err)
			assert.Empty(t, geradas)
		})
	}
}

func TestGeracaoManualIdempotente(t *testing.T) {
	store := newMemStore()
	e := novaEntrada(store, t,
		LinhaFornecedor{Nome: "Fornecedor A", Valor: "1200.00", StatusPagamento: models.StatusPago},
		LinhaFornecedor{Nome: "Fornecedor B", Valor: "800.00", StatusPagamento: models.StatusPendente},
	)
	rec := recTeste(store)

	primeira, err := rec.Reconciliar(e)
	require.NoError(t, err)
	require.Len(t, primeira, 1)

	// Segunda invocação: Fornecedor A já reconciliado, B segue pendente.
	segunda, err := rec.Reconciliar(e)
	require.NoError(t, err)
	assert.Empty(t, segunda)
	assert.Equal(t, 2, store.total())
}

func TestLinhaPagaDepoisDaCriacaoEhReconciliada(t *testing.T) {
	store := newMemStore()
	e := novaEntrada(store, t,
		LinhaFornecedor{Nome: "Fornecedor B", Valor: "800.00", StatusPagamento: models.StatusPendente},
	)
	rec := recTeste(store)

	geradas, err := rec.Reconciliar(e)
	require.NoError(t, err)
	require.Empty(t, geradas)

	// Edição posterior marca a linha como paga; a reconciliação idempotente
	// pega a linha na rodada seguinte.
	e.Fornecedores[0].StatusPagamento = models.StatusPago
	require.NoError(t, store.Atualizar(e))

	geradas, err = rec.Reconciliar(e)
	require.NoError(t, err)
	require.Len(t, geradas, 1)
	assert.Equal(t, "Fornecedor B", geradas[0].Fornecedor)
}

func TestPropagarEdicaoAtualizaLinhaDeOrigem(t *testing.T) {
	store := newMemStore()
	e := novaEntrada(store, t,
		LinhaFornecedor{Nome: "Fornecedor A", Valor: "1200.00", StatusPagamento: models.StatusPago},
		LinhaFornecedor{Nome: "Fornecedor B", Valor: "800.00", StatusPagamento: models.StatusPendente},
	)
	rec := recTeste(store)

	geradas, err := rec.Reconciliar(e)
	require.NoError(t, err)
	require.Len(t, geradas, 1)

	// Caller edita o valor da despesa gerada de 1200.00 para 1350.00.
	despesa := geradas[0]
	despesa.Valor = decimal.RequireFromString("1350.00")
	require.NoError(t, store.Atualizar(&despesa))
	require.NoError(t, rec.PropagarEdicao(&despesa))

	origem, err := store.BuscarPorID(e.ID)
	require.NoError(t, err)
	assert.Equal(t, "1350.00", origem.Fornecedores[0].Valor)
	assert.Equal(t, models.StatusPago, origem.Fornecedores[0].StatusPagamento)
	// A linha pendente do Fornecedor B não é tocada.
	assert.Equal(t, "800.00", origem.Fornecedores[1].Valor)
	assert.Equal(t, models.StatusPendente, origem.Fornecedores[1].StatusPagamento)
}

func TestPropagarEdicaoDeComissao(t *testing.T) {
	store := newMemStore()
	comissao := decimal.RequireFromString("250.00")
	e := &Transacao{
		Tipo:           models.TipoEntrada,
		Descricao:      "Pacote",
		Valor:          decimal.NewFromInt(3000),
		ValorComissao:  &comissao,
		Vendedor:       "Marina",
		StatusComissao: models.StatusPago,
		UsuarioID:      1,
	}
	require.NoError(t, store.Criar(e))
	rec := recTeste(store)

	geradas, err := rec.Reconciliar(e)
	require.NoError(t, err)
	require.Len(t, geradas, 1)

	despesa := geradas[0]
	despesa.Valor = decimal.RequireFromString("300.00")
	require.NoError(t, store.Atualizar(&despesa))
	require.NoError(t, rec.PropagarEdicao(&despesa))

	origem, err := store.BuscarPorID(e.ID)
	require.NoError(t, err)
	require.NotNil(t, origem.ValorComissao)
	assert.True(t, origem.ValorComissao.Equal(decimal.RequireFromString("300.00")))
	assert.Equal(t, models.StatusPago, origem.StatusComissao)
}

func TestPropagarEdicaoEhNoOpSilencioso(t *testing.T) {
	store := newMemStore()
	e := novaEntrada(store, t,
		LinhaFornecedor{Nome: "Fornecedor A", Valor: "1200.00", StatusPagamento: models.StatusPago},
	)
	rec := recTeste(store)

	geradas, err := rec.Reconciliar(e)
	require.NoError(t, err)
	require.Len(t, geradas, 1)
	despesa := geradas[0]

	t.Run("origem excluída", func(t *testing.T) {
		require.NoError(t, store.Remover(e.ID))
		d := despesa
		d.Valor = decimal.RequireFromString("999.00")
		assert.NoError(t, rec.PropagarEdicao(&d))
		assert.Equal(t, 1, store.total())
	})

	t.Run("saída manual sem vínculo", func(t *testing.T) {
		manual := &Transacao{
			Tipo:      models.TipoSaida,
			Descricao: "Aluguel",
			Valor:     decimal.NewFromInt(2000),
			UsuarioID: 1,
		}
		require.NoError(t, store.Criar(manual))
		assert.NoError(t, rec.PropagarEdicao(manual))
	})

	t.Run("chave desconhecida na origem", func(t *testing.T) {
		e2 := novaEntrada(store, t,
			LinhaFornecedor{Nome: "Fornecedor X", Valor: "100.00", StatusPagamento: models.StatusPendente},
		)
		d := despesa
		d.OrigemID = &e2.ID
		d.LinhaChave = "chave-que-nao-existe"
		assert.NoError(t, rec.PropagarEdicao(&d))

		origem, err := store.BuscarPorID(e2.ID)
		require.NoError(t, err)
		assert.Equal(t, models.StatusPendente, origem.Fornecedores[0].StatusPagamento)
	})
}

func TestCenarioCriacaoComLinhaPagaEPendente(t *testing.T) {
	store := newMemStore()
	e := novaEntrada(store, t,
		LinhaFornecedor{Nome: "Fornecedor A", Valor: "1200.00", StatusPagamento: models.StatusPago},
		LinhaFornecedor{Nome: "Fornecedor B", Valor: "800.00", StatusPagamento: models.StatusPendente},
	)

	geradas, err := recTeste(store).Reconciliar(e)
	require.NoError(t, err)
	require.Len(t, geradas, 1)
	assert.True(t, geradas[0].Valor.Equal(decimal.RequireFromString("1200.00")))
	assert.Equal(t, "Fornecedor A", geradas[0].Fornecedor)
	// Original + 1 derivada.
	assert.Equal(t, 2, store.total())
}

func TestReaproveitarChaves(t *testing.T) {
	anteriores := []LinhaFornecedor{
		{Chave: "chave-a", Nome: "Fornecedor A", Valor: "1200.00", StatusPagamento: models.StatusPago},
		{Chave: "chave-b", Nome: "Fornecedor B", Valor: "800.00", StatusPagamento: models.StatusPendente},
	}
	e := &Transacao{
		Tipo: models.TipoEntrada,
		Fornecedores: []LinhaFornecedor{
			{Nome: "Fornecedor B", Valor: "850.00", StatusPagamento: models.StatusPago},
			{Nome: "Fornecedor A", Valor: "1200.00", StatusPagamento: models.StatusPago},
			{Nome: "Fornecedor Novo", Valor: "50.00", StatusPagamento: models.StatusPago},
		},
	}
	ReaproveitarChaves(e, anteriores)

	// Mesmo reordenadas, as linhas reenviadas recuperam a chave pelo nome.
	assert.Equal(t, "chave-b", e.Fornecedores[0].Chave)
	assert.Equal(t, "chave-a", e.Fornecedores[1].Chave)
	assert.Empty(t, e.Fornecedores[2].Chave)

	NormalizarLinhas(e)
	assert.NotEmpty(t, e.Fornecedores[2].Chave)
	assert.NotEqual(t, "chave-a", e.Fornecedores[2].Chave)
	assert.NotEqual(t, "chave-b", e.Fornecedores[2].Chave)
}

func TestNormalizarLinhas(t *testing.T) {
	e := &Transacao{
		Tipo: models.TipoEntrada,
		Fornecedores: []LinhaFornecedor{
			{Nome: "A", Valor: "10.00"},
			{Nome: "B", Valor: "20.00", Chave: "ja-tem-chave", StatusPagamento: models.StatusPago},
		},
	}
	NormalizarLinhas(e)

	assert.NotEmpty(t, e.Fornecedores[0].Chave)
	assert.Equal(t, models.StatusPendente, e.Fornecedores[0].StatusPagamento)
	assert.Equal(t, "ja-tem-chave", e.Fornecedores[1].Chave)
	assert.Equal(t, models.StatusPago, e.Fornecedores[1].StatusPagamento)
	assert.NotEqual(t, e.Fornecedores[0].Chave, e.Fornecedores[1].Chave)
}
