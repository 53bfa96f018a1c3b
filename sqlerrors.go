package sqlpager

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/samber/lo"
)

// MySQL and MariaDB server errors reported with SQLSTATE class 42.
var _mysqlSyntaxErrors = []uint16{
	1054, // ER_BAD_FIELD_ERROR
	1064, // ER_PARSE_ERROR
	1146, // ER_NO_SUCH_TABLE
	1149, // ER_SYNTAX_ERROR
}

// IsSyntaxError reports whether the database rejected a statement as
// syntactically invalid or referencing unknown objects (SQLSTATE class 42).
//
// MySQL/MariaDB and PostgreSQL driver errors are recognized, as well as any
// error exposing SQLState() string.
func IsSyntaxError(err error) bool {
	if err == nil {
		return false
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return lo.Contains(_mysqlSyntaxErrors, myErr.Number) || strings.HasPrefix(string(myErr.SQLState[:]), "42")
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgerrcode.IsSyntaxErrororAccessRuleViolation(pgErr.Code)
	}

	var stateErr interface{ SQLState() string }
	if errors.As(err, &stateErr) {
		return strings.HasPrefix(stateErr.SQLState(), "42")
	}

	return false
}
