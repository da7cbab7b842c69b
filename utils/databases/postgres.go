package databases

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newPostgresDialector(dsn string) gorm.Dialector {
	return postgres.Open(dsn)
}
