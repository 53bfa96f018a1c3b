package sqlpager

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMissingRequiredParameter = errors.New("required parameter is missing")
	ErrPageOutOfRange           = errors.New("requested page is greater than the last page")
	ErrSQLSyntax                = errors.New("sql syntax error")
	ErrUnsupportedDialect       = errors.New("unsupported dialect")
	ErrParameterBinding         = errors.New("cannot bind statement parameter")
	ErrResultMapping            = errors.New("cannot map result column")
	ErrCountExecution           = errors.New("cannot execute count query")
	ErrStatementNotFound        = errors.New("statement not found")
)

// _codes keeps codes stable for API consumers. 001-004 match the codes
// published by the previous generation of the library.
var _codes = []struct {
	err  error
	code string
}{
	{ErrMissingRequiredParameter, "001"},
	{ErrPageOutOfRange, "002"},
	{ErrSQLSyntax, "003"},
	{ErrUnsupportedDialect, "004"},
	{ErrParameterBinding, "005"},
	{ErrResultMapping, "006"},
	{ErrCountExecution, "007"},
}

// ErrorCode returns the code of a pagination failure or an empty string if
// err is not one of them.
func ErrorCode(err error) string {
	for _, c := range _codes {
		if errors.Is(err, c.err) {
			return c.code
		}
	}

	return ""
}

// UnsupportedDialectError is returned when the configured dialect is not in
// the registry.
type UnsupportedDialectError struct {
	Name      string
	Supported []string
}

func (e *UnsupportedDialectError) Error() string {
	return fmt.Sprintf("%s '%s' (supported: %s)", ErrUnsupportedDialect, e.Name, strings.Join(e.Supported, ", "))
}

func (e *UnsupportedDialectError) Is(target error) bool {
	return target == ErrUnsupportedDialect
}

// PageOutOfRangeError carries the requested page and the computed last page.
type PageOutOfRangeError struct {
	Page     int
	LastPage int
}

func (e *PageOutOfRangeError) Error() string {
	return fmt.Sprintf("%s (page: %d, last page: %d)", ErrPageOutOfRange, e.Page, e.LastPage)
}

func (e *PageOutOfRangeError) Is(target error) bool {
	return target == ErrPageOutOfRange
}

// SQLSyntaxError carries the exact SQL text the database rejected.
type SQLSyntaxError struct {
	SQL string
	Err error
}

func (e *SQLSyntaxError) Error() string {
	return fmt.Sprintf("%s: %v\n%s", ErrSQLSyntax, e.Err, e.SQL)
}

func (e *SQLSyntaxError) Is(target error) bool {
	return target == ErrSQLSyntax
}

func (e *SQLSyntaxError) Unwrap() error {
	return e.Err
}

// ParameterBindingError is returned when a statement placeholder cannot be
// bound to a call parameter.
type ParameterBindingError struct {
	Statement string
	Parameter string
	Reason    string
}

func (e *ParameterBindingError) Error() string {
	if e.Parameter == "" {
		return fmt.Sprintf("%s of statement '%s': %s", ErrParameterBinding, e.Statement, e.Reason)
	}

	return fmt.Sprintf("%s '%s' of statement '%s': %s", ErrParameterBinding, e.Parameter, e.Statement, e.Reason)
}

func (e *ParameterBindingError) Is(target error) bool {
	return target == ErrParameterBinding
}

// ResultMappingError is returned when a result column has no field on the
// target record.
type ResultMappingError struct {
	Column string
	Field  string
	Err    error
}

func (e *ResultMappingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s '%s' to field '%s': %v", ErrResultMapping, e.Column, e.Field, e.Err)
	}

	return fmt.Sprintf("%s '%s': no field '%s'", ErrResultMapping, e.Column, e.Field)
}

func (e *ResultMappingError) Is(target error) bool {
	return target == ErrResultMapping
}

func (e *ResultMappingError) Unwrap() error {
	return e.Err
}

// CountExecutionError is returned in strict count mode when the count query
// fails for a reason other than a syntax error.
type CountExecutionError struct {
	SQL string
	Err error
}

func (e *CountExecutionError) Error() string {
	return fmt.Sprintf("%s: %v\n%s", ErrCountExecution, e.Err, e.SQL)
}

func (e *CountExecutionError) Is(target error) bool {
	return target == ErrCountExecution
}

func (e *CountExecutionError) Unwrap() error {
	return e.Err
}
