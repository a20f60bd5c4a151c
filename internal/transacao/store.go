package transacao

import (
	"time"

	"gorm.io/gorm"
)

// Filtro restringe a listagem de transações.
type Filtro struct {
	UsuarioID uint
	Tipo      string
	De        *time.Time
	Ate       *time.Time
}

// Store abstrai a persistência das transações para que a lógica de
// reconciliação não dependa de um handle global de banco.
type Store interface {
	Criar(t *Transacao) error
	BuscarPorID(id uint) (*Transacao, error)
	Atualizar(t *Transacao) error
	Remover(id uint) error
	Listar(f Filtro) ([]Transacao, error)
	// DespesaDerivadaExiste responde se já há uma despesa gerada para o par
	// (transação de origem, chave da linha). É o check de idempotência.
	DespesaDerivadaExiste(origemID uint, linhaChave string) (bool, error)
	// EmTransacao executa fn dentro de uma transação de banco; a escrita da
	// entrada e das despesas geradas vira uma unidade atômica.
	EmTransacao(fn func(Store) error) error
}

type gormStore struct {
	db *gorm.DB
}

// NewStore cria o Store padrão sobre GORM.
func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Criar(t *Transacao) error {
	return s.db.Create(t).Error
}

func (s *gormStore) BuscarPorID(id uint) (*Transacao, error) {
	var t Transacao
	if err := s.db.First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *gormStore) Atualizar(t *Transacao) error {
	return s.db.Save(t).Error
}

func (s *gormStore) Remover(id uint) error {
	return s.db.Delete(&Transacao{}, id).Error
}

func (s *gormStore) Listar(f Filtro) ([]Transacao, error) {
	q := s.db.Model(&Transacao{})
	if f.UsuarioID != 0 {
		q = q.Where("usuario_id = ?", f.UsuarioID)
	}
	if f.Tipo != "" {
		q = q.Where("tipo = ?", f.Tipo)
	}
	if f.De != nil {
		q = q.Where("data >= ?", *f.De)
	}
	if f.Ate != nil {
		q = q.Where("data <= ?", *f.Ate)
	}
	var list []Transacao
	err := q.Order("data DESC, id DESC").Find(&list).Error
	return list, err
}

func (s *gormStore) DespesaDerivadaExiste(origemID uint, linhaChave string) (bool, error) {
	var count int64
	err := s.db.Model(&Transacao{}).
		Where("origem_id = ? AND linha_chave = ? AND auto_gerada = ?", origemID, linhaChave, true).
		Count(&count).Error
	return count > 0, err
}

func (s *gormStore) EmTransacao(fn func(Store) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}
