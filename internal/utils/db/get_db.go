package db

import (
	"os"
	"strconv"

	"gorm.io/gorm"
)

// GetDB abre a conexão a partir das variáveis de ambiente DB_HOST, DB_PORT,
// DB_NAME e DB_SECRET_ID. Porta ausente ou inválida cai no default 5432.
func GetDB() (*gorm.DB, error) {
	porta, err := strconv.ParseUint(os.Getenv("DB_PORT"), 10, 32)
	if err != nil {
		porta = 5432
	}
	return ConnectDataBase(uint(porta), os.Getenv("DB_HOST"), os.Getenv("DB_NAME"), os.Getenv("DB_SECRET_ID"))
}
