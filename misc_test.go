package sqlpager

import (
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/rs/zerolog"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Composed statements are literal, so expectations compare them verbatim.
var _queryMatcher = sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual)

func gormConfig() *gorm.Config {
	return &gorm.Config{Logger: NewGORMLogger(zerolog.Nop())}
}

func newGORMMySQLMock() (string, *gorm.DB, sqlmock.Sqlmock, error) {
	mockDB, mock, err := sqlmock.New(_queryMatcher)
	if err != nil {
		return "", nil, nil, err
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      mockDB,
		SkipInitializeWithVersion: true,
	})

	db, err := gorm.Open(dialector, gormConfig())
	if err != nil {
		return "", nil, nil, err
	}

	return "mysql", db, mock, nil
}

func newGORMPostgresMock() (string, *gorm.DB, sqlmock.Sqlmock, error) {
	mockDB, mock, err := sqlmock.New(_queryMatcher)
	if err != nil {
		return "", nil, nil, err
	}

	dialector := postgres.New(postgres.Config{
		Conn: mockDB,
	})

	db, err := gorm.Open(dialector, gormConfig())
	if err != nil {
		return "", nil, nil, err
	}

	return "postgresql", db, mock, nil
}
