package cliente

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/AtlasTurismo/api-caixa/internal/auth"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type Handler struct {
	DB         *gorm.DB
	Repository Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{
		DB:         db,
		Repository: NewRepository(),
	}
}

// POST /clientes
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	userVal := r.Context().Value(auth.CtxUserID)
	if userVal == nil {
		http.Error(w, "não autenticado", http.StatusUnauthorized)
		return
	}
	usuarioID := userVal.(uint)

	var req CreateClienteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Nome) == "" {
		http.Error(w, "o campo 'nome' é obrigatório", http.StatusBadRequest)
		return
	}

	c := Cliente{
		Nome:        strings.TrimSpace(req.Nome),
		Email:       req.Email,
		Telefone:    req.Telefone,
		CPF:         req.CPF,
		Observacoes: req.Observacoes,
		UsuarioID:   usuarioID,
	}

	if err := h.Repository.Salvar(h.DB, &c); err != nil {
		http.Error(w, "Erro ao salvar cliente", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(c)
}

// GET /clientes
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	isAdmin, _ := r.Context().Value(auth.CtxIsAdmin).(bool)
	usuarioID, _ := r.Context().Value(auth.CtxUserID).(uint)

	var (
		list []Cliente
		err  error
	)
	if isAdmin {
		list, err = h.Repository.ListarTodos(h.DB)
	} else {
		list, err = h.Repository.ListarPorUsuario(h.DB, usuarioID)
	}
	if err != nil {
		http.Error(w, "Erro ao listar clientes", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}

// GET /clientes/{id}
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	c, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "Cliente não encontrado", http.StatusNotFound)
		return
	}

	isAdmin, _ := r.Context().Value(auth.CtxIsAdmin).(bool)
	usuarioID, _ := r.Context().Value(auth.CtxUserID).(uint)
	if !isAdmin && c.UsuarioID != usuarioID {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(c)
}

// PUT /clientes/{id}
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	existente, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "Cliente não encontrado", http.StatusNotFound)
		return
	}

	isAdmin, _ := r.Context().Value(auth.CtxIsAdmin).(bool)
	usuarioID, _ := r.Context().Value(auth.CtxUserID).(uint)
	if !isAdmin && existente.UsuarioID != usuarioID {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}

	var req UpdateClienteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	if req.Nome != nil {
		existente.Nome = *req.Nome
	}
	if req.Email != nil {
		existente.Email = *req.Email
	}
	if req.Telefone != nil {
		existente.Telefone = *req.Telefone
	}
	if req.CPF != nil {
		existente.CPF = *req.CPF
	}
	if req.Observacoes != nil {
		existente.Observacoes = *req.Observacoes
	}

	if err := h.Repository.Atualizar(h.DB, existente); err != nil {
		http.Error(w, "Erro ao atualizar cliente", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(existente)
}

// DELETE /clientes/{id}
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	existente, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "Cliente não encontrado", http.StatusNotFound)
		return
	}

	isAdmin, _ := r.Context().Value(auth.CtxIsAdmin).(bool)
	usuarioID, _ := r.Context().Value(auth.CtxUserID).(uint)
	if !isAdmin && existente.UsuarioID != usuarioID {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}

	if err := h.Repository.Deletar(h.DB, uint(id)); err != nil {
		http.Error(w, "Erro ao excluir cliente", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
