package databases

import (
	"strings"

	"tweet-collector/models/constants"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// New picks the dialect from the DSN: postgres URLs or key/value strings
// select PostgreSQL, anything else is a SQLite path.
func New(dsn string) SqlConnection {
	return &sqlConnection{
		dsn:     dsn,
		dialect: DialectOf(dsn),
	}
}

func DialectOf(dsn string) string {
	lower := strings.ToLower(strings.TrimSpace(dsn))
	if strings.HasPrefix(lower, "postgres://") ||
		strings.HasPrefix(lower, "postgresql://") ||
		strings.Contains(lower, "host=") {
		return DialectPostgres
	}
	return DialectSqlite
}

func (c *sqlConnection) GetDB() *gorm.DB {
	return c.db
}

func (c *sqlConnection) IsConnected() bool {
	if c.db == nil {
		return false
	}

	dbSQL, errSQL := c.db.DB()
	if errSQL != nil {
		return false
	}

	if errPing := dbSQL.Ping(); errPing != nil {
		return false
	}

	return true
}

func (c *sqlConnection) Run() error {
	dialector := newSqliteDialector(c.dsn)
	if c.dialect == DialectPostgres {
		dialector = newPostgresDialector(c.dsn)
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return err
	}

	dbSQL, err := db.DB()
	if err != nil {
		return err
	}
	// One connection per process; SQLite in-memory databases also need it.
	dbSQL.SetMaxOpenConns(1)

	c.db = db
	log.Info().Str(constants.LogDialect, c.dialect).Msg("Connected to database")
	return nil
}

func (c *sqlConnection) Shutdown() {
	log.Info().Str(constants.LogDialect, c.dialect).Msg("Shutdown the connection to database")
	if c.db == nil {
		return
	}

	dbSQL, err := c.db.DB()
	if err != nil {
		log.Error().Err(err).Msgf("Failed to shutdown database connection")
		return
	}

	if errClose := dbSQL.Close(); errClose != nil {
		log.Error().Err(errClose).Msgf("Failed to shutdown database connection")
	}
}
