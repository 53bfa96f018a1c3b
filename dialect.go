package sqlpager

import (
	"strings"

	"github.com/samber/lo"
	"gorm.io/gorm"
)

const (
	templateLimitPair   = "%s LIMIT %d, %d"
	templateOffsetFetch = "%s OFFSET %d ROWS FETCH NEXT %d ROWS ONLY"
	templateOffsetLimit = "%s OFFSET %d LIMIT %d"
)

// Dialect describes how a database family expresses offset pagination.
//
// Template always receives three positional arguments, left to right:
// the base query, the offset and the page size.
type Dialect struct {
	Name     string
	Template string
}

// Oracle supports OFFSET/FETCH starting with 12c.
var _dialects = []Dialect{
	{Name: "mariadb", Template: templateLimitPair},
	{Name: "mysql", Template: templateLimitPair},
	{Name: "oracle", Template: templateOffsetFetch},
	{Name: "postgresql", Template: templateOffsetLimit},
	{Name: "sqlserver", Template: templateOffsetFetch},
	{Name: "mssql", Template: templateOffsetFetch},
}

// Dialects returns a copy of the dialect registry.
func Dialects() []Dialect {
	return append([]Dialect(nil), _dialects...)
}

// SupportedDialects returns identifiers of all registered dialects.
func SupportedDialects() []string {
	return lo.Map(_dialects, func(d Dialect, _ int) string { return d.Name })
}

// LookupDialect finds a dialect by identifier. Comparison ignores case and
// surrounding whitespace.
func LookupDialect(name string) (Dialect, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))

	d, ok := lo.Find(_dialects, func(d Dialect) bool {
		return d.Name == normalized
	})
	if !ok {
		return Dialect{}, &UnsupportedDialectError{
			Name:      name,
			Supported: SupportedDialects(),
		}
	}

	return d, nil
}

// DialectNameOf maps the name of a GORM dialector to a registry identifier.
// Returns an empty string when the dialector has no counterpart.
func DialectNameOf(db *gorm.DB) string {
	if db == nil || db.Dialector == nil {
		return ""
	}

	switch db.Dialector.Name() {
	case "mysql":
		return "mysql"
	case "postgres":
		return "postgresql"
	case "sqlserver":
		return "sqlserver"
	default:
		return ""
	}
}
