package databases

import "gorm.io/gorm"

const (
	DialectSqlite   = "sqlite"
	DialectPostgres = "postgres"
)

type SqlConnection interface {
	GetDB() *gorm.DB
	IsConnected() bool
	Run() error
	Shutdown()
}

type sqlConnection struct {
	dsn     string
	dialect string
	db      *gorm.DB
}
