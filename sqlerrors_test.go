package sqlpager

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

type sqlStateError struct{ state string }

func (e sqlStateError) Error() string    { return "state " + e.state }
func (e sqlStateError) SQLState() string { return e.state }

func Test_IsSyntaxError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"plain", errors.New("connection refused"), false},
		{"mysql parse error", &mysql.MySQLError{Number: 1064, Message: "You have an error in your SQL syntax"}, true},
		{"mysql unknown table", &mysql.MySQLError{Number: 1146}, true},
		{"mysql sqlstate class 42", &mysql.MySQLError{Number: 1, SQLState: [5]byte{'4', '2', '0', '0', '0'}}, true},
		{"mysql duplicate key", &mysql.MySQLError{Number: 1062}, false},
		{"wrapped mysql", fmt.Errorf("query: %w", &mysql.MySQLError{Number: 1064}), true},
		{"pg syntax error", &pgconn.PgError{Code: pgerrcode.SyntaxError}, true},
		{"pg undefined table", &pgconn.PgError{Code: pgerrcode.UndefinedTable}, true},
		{"pg unique violation", &pgconn.PgError{Code: pgerrcode.UniqueViolation}, false},
		{"generic sqlstate 42", sqlStateError{"42S02"}, true},
		{"generic sqlstate 08", sqlStateError{"08001"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsSyntaxError(tt.err))
		})
	}
}
