package databases

import (
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func newSqliteDialector(dsn string) gorm.Dialector {
	return sqlite.Open(dsn)
}
