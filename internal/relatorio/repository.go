package relatorio

import (
	"time"

	"github.com/AtlasTurismo/api-caixa/internal/models"
	"github.com/AtlasTurismo/api-caixa/internal/transacao"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Resumo é o fechamento de caixa de um período.
type Resumo struct {
	TotalEntradas decimal.Decimal `json:"totalEntradas"`
	TotalSaidas   decimal.Decimal `json:"totalSaidas"`
	Saldo         decimal.Decimal `json:"saldo"`
	QtdTransacoes int64           `json:"qtdTransacoes"`
}

// TotalPorCategoria agrega as transações de um tipo por categoria.
type TotalPorCategoria struct {
	Categoria string          `json:"categoria"`
	Total     decimal.Decimal `json:"total"`
	Qtd       int64           `json:"qtd"`
}

// Periodo delimita as consultas; UsuarioID zero significa toda a agência.
type Periodo struct {
	UsuarioID uint
	De        *time.Time
	Ate       *time.Time
}

type Repository interface {
	Resumo(db *gorm.DB, p Periodo) (*Resumo, error)
	PorCategoria(db *gorm.DB, tipo string, p Periodo) ([]TotalPorCategoria, error)
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func aplicarPeriodo(q *gorm.DB, p Periodo) *gorm.DB {
	if p.UsuarioID != 0 {
		q = q.Where("usuario_id = ?", p.UsuarioID)
	}
	if p.De != nil {
		q = q.Where("data >= ?", *p.De)
	}
	if p.Ate != nil {
		q = q.Where("data <= ?", *p.Ate)
	}
	return q
}

func (r *repositoryImpl) Resumo(db *gorm.DB, p Periodo) (*Resumo, error) {
	var res Resumo

	soma := func(tipo string) (decimal.Decimal, error) {
		var total decimal.Decimal
		err := aplicarPeriodo(db.Model(&transacao.Transacao{}), p).
			Where("tipo = ?", tipo).
			Select("COALESCE(SUM(valor), 0)").
			Scan(&total).Error
		return total, err
	}

	entradas, err := soma(models.TipoEntrada)
	if err != nil {
		return nil, err
	}
	saidas, err := soma(models.TipoSaida)
	if err != nil {
		return nil, err
	}

	if err := aplicarPeriodo(db.Model(&transacao.Transacao{}), p).
		Count(&res.QtdTransacoes).Error; err != nil {
		return nil, err
	}

	res.TotalEntradas = entradas
	res.TotalSaidas = saidas
	res.Saldo = entradas.Sub(saidas)
	return &res, nil
}

func (r *repositoryImpl) PorCategoria(db *gorm.DB, tipo string, p Periodo) ([]TotalPorCategoria, error) {
	var list []TotalPorCategoria
	err := aplicarPeriodo(db.Model(&transacao.Transacao{}), p).
		Where("tipo = ?", tipo).
		Select("categoria, COALESCE(SUM(valor), 0) AS total, COUNT(*) AS qtd").
		Group("categoria").
		Order("total DESC").
		Scan(&list).Error
	return list, err
}
