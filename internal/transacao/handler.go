package transacao

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/AtlasTurismo/api-caixa/internal/auth"
	"github.com/AtlasTurismo/api-caixa/internal/models"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Handler encapsula o Store e o log das rotas de transação.
type Handler struct {
	Store Store
	Log   zerolog.Logger
}

// NewHandler cria um novo handler de transações.
func NewHandler(db *gorm.DB, log zerolog.Logger) *Handler {
	return &Handler{
		Store: NewStore(db),
		Log:   log,
	}
}

type createResponse struct {
	Transacao
	GeneratedExpenses int    `json:"generatedExpenses,omitempty"`
	ExpenseMessage    string `json:"expenseMessage,omitempty"`
}

type gerarResponse struct {
	Message           string `json:"message"`
	GeneratedExpenses int    `json:"generatedExpenses"`
	ExpenseMessage    string `json:"expenseMessage"`
}

func mensagemDespesas(n int) string {
	if n == 0 {
		return "Nenhuma despesa nova a gerar"
	}
	return fmt.Sprintf("%d despesa(s) gerada(s) automaticamente", n)
}

// Criar trata POST /transacoes
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	userVal := r.Context().Value(auth.CtxUserID)
	if userVal == nil {
		http.Error(w, "não autenticado", http.StatusUnauthorized)
		return
	}
	usuarioID := userVal.(uint)

	var dto TransacaoDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	if err := dto.Validar(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	t := Transacao{UsuarioID: usuarioID}
	dto.AplicarEm(&t)
	NormalizarLinhas(&t)

	// A entrada e as despesas geradas são gravadas como uma unidade: ou
	// tudo entra, ou nada entra.
	var geradas []Transacao
	err := h.Store.EmTransacao(func(s Store) error {
		if err := s.Criar(&t); err != nil {
			return err
		}
		rec := NewReconciliador(s, h.Log)
		var err error
		geradas, err = rec.Reconciliar(&t)
		return err
	})
	if err != nil {
		http.Error(w, "Erro ao salvar transação", http.StatusInternalServerError)
		return
	}

	resp := createResponse{Transacao: t}
	if len(geradas) > 0 {
		resp.GeneratedExpenses = len(geradas)
		resp.ExpenseMessage = mensagemDespesas(len(geradas))
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(resp)
}

// Listar trata GET /transacoes?tipo=&de=&ate=
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	isAdmin, _ := r.Context().Value(auth.CtxIsAdmin).(bool)
	usuarioID, _ := r.Context().Value(auth.CtxUserID).(uint)

	f := Filtro{Tipo: r.URL.Query().Get("tipo")}
	if !isAdmin {
		f.UsuarioID = usuarioID
	}
	if s := r.URL.Query().Get("de"); s != "" {
		if d, err := time.Parse("2006-01-02", s); err == nil {
			f.De = &d
		}
	}
	if s := r.URL.Query().Get("ate"); s != "" {
		if d, err := time.Parse("2006-01-02", s); err == nil {
			f.Ate = &d
		}
	}

	list, err := h.Store.Listar(f)
	if err != nil {
		http.Error(w, "Erro ao listar transações", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}

// BuscarPorID trata GET /transacoes/{id}
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	t, err := h.Store.BuscarPorID(uint(id))
	if err != nil {
		http.Error(w, "Transação não encontrada", http.StatusNotFound)
		return
	}

	isAdmin, _ := r.Context().Value(auth.CtxIsAdmin).(bool)
	usuarioID, _ := r.Context().Value(auth.CtxUserID).(uint)
	if !isAdmin && t.UsuarioID != usuarioID {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(t)
}

// Atualizar trata PUT /transacoes/{id} (substituição integral).
// Se o alvo é uma despesa derivada, a edição é propagada de volta para a
// entrada de origem; a propagação nunca falha a edição em si.
// Se o alvo é uma entrada, a reconciliação idempotente roda de novo, o que
// cobre linhas que viraram "Pago" depois da criação.
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	existente, err := h.Store.BuscarPorID(uint(id))
	if err != nil {
		http.Error(w, "Transação não encontrada", http.StatusNotFound)
		return
	}

	isAdmin, _ := r.Context().Value(auth.CtxIsAdmin).(bool)
	usuarioID, _ := r.Context().Value(auth.CtxUserID).(uint)
	if !isAdmin && existente.UsuarioID != usuarioID {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}

	var dto TransacaoDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	if err := dto.Validar(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	eraDerivada := existente.Derivada()
	categoriaAnterior := existente.Categoria
	linhasAnteriores := existente.Fornecedores
	dto.AplicarEm(existente)
	if eraDerivada {
		// Vínculo com a origem nunca é reescrito pelo caller; tipo e
		// categoria de uma despesa gerada são fixos, e saída não carrega
		// linhas de fornecedor.
		existente.Tipo = models.TipoSaida
		existente.Categoria = categoriaAnterior
		existente.Fornecedores = nil
	} else {
		ReaproveitarChaves(existente, linhasAnteriores)
	}
	NormalizarLinhas(existente)

	err = h.Store.EmTransacao(func(s Store) error {
		if err := s.Atualizar(existente); err != nil {
			return err
		}
		rec := NewReconciliador(s, h.Log)
		if eraDerivada {
			if err := rec.PropagarEdicao(existente); err != nil {
				h.Log.Error().Err(err).Uint("id", existente.ID).
					Msg("falha ao propagar edição de despesa derivada")
			}
			return nil
		}
		if existente.Tipo == models.TipoEntrada {
			if _, err := rec.Reconciliar(existente); err != nil {
				h.Log.Error().Err(err).Uint("id", existente.ID).
					Msg("falha ao reconciliar despesas da entrada")
			}
		}
		return nil
	})
	if err != nil {
		http.Error(w, "Erro ao atualizar transação", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(existente)
}

// Deletar trata DELETE /transacoes/{id}
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	existente, err := h.Store.BuscarPorID(uint(id))
	if err != nil {
		http.Error(w, "Transação não encontrada", http.StatusNotFound)
		return
	}

	isAdmin, _ := r.Context().Value(auth.CtxIsAdmin).(bool)
	usuarioID, _ := r.Context().Value(auth.CtxUserID).(uint)
	if !isAdmin && existente.UsuarioID != usuarioID {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}

	if err := h.Store.Remover(uint(id)); err != nil {
		http.Error(w, "Erro ao excluir transação", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GerarDespesas trata POST /transacoes/{id}/gerar-despesas — a varredura
// manual idempotente. Rodar duas vezes seguidas gera zero na segunda.
func (h *Handler) GerarDespesas(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	t, err := h.Store.BuscarPorID(uint(id))
	if err != nil {
		http.Error(w, "Transação não encontrada", http.StatusNotFound)
		return
	}

	isAdmin, _ := r.Context().Value(auth.CtxIsAdmin).(bool)
	usuarioID, _ := r.Context().Value(auth.CtxUserID).(uint)
	if !isAdmin && t.UsuarioID != usuarioID {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}
	if t.Tipo != models.TipoEntrada {
		http.Error(w, "apenas entradas geram despesas", http.StatusBadRequest)
		return
	}

	NormalizarLinhas(t)
	var geradas []Transacao
	err = h.Store.EmTransacao(func(s Store) error {
		if err := s.Atualizar(t); err != nil {
			return err
		}
		rec := NewReconciliador(s, h.Log)
		var err error
		geradas, err = rec.Reconciliar(t)
		return err
	})
	if err != nil {
		http.Error(w, "Erro ao gerar despesas", http.StatusInternalServerError)
		return
	}

	resp := gerarResponse{
		GeneratedExpenses: len(geradas),
		ExpenseMessage:    mensagemDespesas(len(geradas)),
	}
	if len(geradas) == 0 {
		resp.Message = "Nada a gerar: entrada já reconciliada"
	} else {
		resp.Message = "Despesas geradas com sucesso"
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}
