package usuario

import (
	"github.com/AtlasTurismo/api-caixa/internal/utils"
	"gorm.io/gorm"
)

type Repository interface {
	FindByEmail(db *gorm.DB, email string) (*Usuario, error)
	Save(db *gorm.DB, u *Usuario) error
	ListAll(db *gorm.DB) ([]Usuario, error)
	FindByID(db *gorm.DB, id uint) (*Usuario, error)
	Update(db *gorm.DB, id uint, req *UpdateUsuarioRequest) error
	Delete(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) FindByEmail(db *gorm.DB, email string) (*Usuario, error) {
	var u Usuario
	if err := db.Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repositoryImpl) Save(db *gorm.DB, u *Usuario) error {
	return db.Create(u).Error
}

func (r *repositoryImpl) ListAll(db *gorm.DB) ([]Usuario, error) {
	var list []Usuario
	err := db.Find(&list).Error
	return list, err
}

func (r *repositoryImpl) FindByID(db *gorm.DB, id uint) (*Usuario, error) {
	var u Usuario
	err := db.First(&u, id).Error
	return &u, err
}

func (r *repositoryImpl) Update(db *gorm.DB, id uint, req *UpdateUsuarioRequest) error {
	var u Usuario
	if err := db.First(&u, id).Error; err != nil {
		return err
	}
	if req.Nome != nil {
		u.Nome = *req.Nome
	}
	if req.Sobrenome != nil {
		u.Sobrenome = *req.Sobrenome
	}
	if req.Telefone != nil {
		u.Telefone = *req.Telefone
	}
	if req.Senha != nil {
		hash, err := utils.HashSenha(*req.Senha)
		if err != nil {
			return err
		}
		u.Password = hash
	}
	return db.Save(&u).Error
}

func (r *repositoryImpl) Delete(db *gorm.DB, id uint) error {
	return db.Delete(&Usuario{}, id).Error
}
