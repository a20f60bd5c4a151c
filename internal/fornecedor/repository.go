package fornecedor

import (
	"gorm.io/gorm"
)

type Repository interface {
	Salvar(db *gorm.DB, f *Fornecedor) error
	ListarTodos(db *gorm.DB) ([]Fornecedor, error)
	BuscarPorID(db *gorm.DB, id uint) (*Fornecedor, error)
	Atualizar(db *gorm.DB, f *Fornecedor) error
	Deletar(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Salvar(db *gorm.DB, f *Fornecedor) error {
	return db.Create(f).Error
}

func (r *repositoryImpl) ListarTodos(db *gorm.DB) ([]Fornecedor, error) {
	var list []Fornecedor
	err := db.Order("nome").Find(&list).Error
	return list, err
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Fornecedor, error) {
	var f Fornecedor
	err := db.First(&f, id).Error
	return &f, err
}

func (r *repositoryImpl) Atualizar(db *gorm.DB, f *Fornecedor) error {
	return db.Save(f).Error
}

func (r *repositoryImpl) Deletar(db *gorm.DB, id uint) error {
	return db.Delete(&Fornecedor{}, id).Error
}
