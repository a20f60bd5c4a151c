package relatorio

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/AtlasTurismo/api-caixa/internal/auth"
	"github.com/AtlasTurismo/api-caixa/internal/models"
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

func periodoDaRequisicao(r *http.Request) Periodo {
	var p Periodo
	isAdmin, _ := r.Context().Value(auth.CtxIsAdmin).(bool)
	if !isAdmin {
		p.UsuarioID, _ = r.Context().Value(auth.CtxUserID).(uint)
	}
	if s := r.URL.Query().Get("de"); s != "" {
		if d, err := time.Parse("2006-01-02", s); err == nil {
			p.De = &d
		}
	}
	if s := r.URL.Query().Get("ate"); s != "" {
		if d, err := time.Parse("2006-01-02", s); err == nil {
			p.Ate = &d
		}
	}
	return p
}

// GET /relatorios/resumo?de=&ate=
func (h *Handler) Resumo(w http.ResponseWriter, r *http.Request) {
	res, err := h.Repository.Resumo(h.DB, periodoDaRequisicao(r))
	if err != nil {
		http.Error(w, "Erro ao montar resumo", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(res)
}

// GET /relatorios/por-categoria?tipo=&de=&ate=
func (h *Handler) PorCategoria(w http.ResponseWriter, r *http.Request) {
	tipo := r.URL.Query().Get("tipo")
	if tipo == "" {
		tipo = models.TipoSaida
	}
	if tipo != models.TipoEntrada && tipo != models.TipoSaida {
		http.Error(w, "tipo inválido: use 'entrada' ou 'saida'", http.StatusBadRequest)
		return
	}

	list, err := h.Repository.PorCategoria(h.DB, tipo, periodoDaRequisicao(r))
	if err != nil {
		http.Error(w, "Erro ao agrupar por categoria", http.StatusInternalServerError)
		return
	}
	if list == nil {
		list = []TotalPorCategoria{}
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}
