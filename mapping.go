package sqlpager

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// Row is a dynamic record: column name to column value.
type Row map[string]any

// Setters - dictionary of setters for a record type, keyed by camelCase field
// name. Result columns are converted from snake_case before lookup.
// Example:
//
//	sqlpager.Setters[User]{
//		"id":       func(u *User, v any) error { return sqlpager.Assign(&u.ID, v) },
//		"userName": func(u *User, v any) error { return sqlpager.Assign(&u.UserName, v) },
//	}
type Setters[T any] map[string]func(*T, any) error

// SnakeToCamel converts a column name to a field name: "user_name" -> "userName".
func SnakeToCamel(column string) string {
	parts := strings.Split(strings.ToLower(column), "_")

	var b strings.Builder
	b.Grow(len(column))

	for _, part := range parts {
		if part == "" {
			continue
		}

		if b.Len() == 0 {
			b.WriteString(part)
			continue
		}

		r, size := utf8.DecodeRuneInString(part)
		b.WriteRune(unicode.ToUpper(r))
		b.WriteString(part[size:])
	}

	return b.String()
}

type rowMapper[T any] func(columns []string, values []any) (T, error)

func mapDynamicRow(columns []string, values []any) (Row, error) {
	row := make(Row, len(columns))
	for i, column := range columns {
		if b, ok := values[i].([]byte); ok {
			row[column] = string(b)
			continue
		}

		row[column] = values[i]
	}

	return row, nil
}

func typedRowMapper[T any](setters Setters[T]) rowMapper[T] {
	return func(columns []string, values []any) (T, error) {
		var record T

		for i, column := range columns {
			field := SnakeToCamel(column)

			setter, ok := setters[field]
			if !ok {
				return record, &ResultMappingError{Column: column, Field: field}
			}

			if err := setter(&record, values[i]); err != nil {
				return record, &ResultMappingError{Column: column, Field: field, Err: err}
			}
		}

		return record, nil
	}
}

// Assign stores a driver value into dst, converting between the usual
// driver representations. NULL leaves the zero value.
func Assign[V any](dst *V, value any) error {
	if value == nil {
		var zero V
		*dst = zero

		return nil
	}

	if v, ok := value.(V); ok {
		*dst = v
		return nil
	}

	var err error

	switch d := any(dst).(type) {
	case *string:
		*d, err = asString(value)
	case *int:
		var n int64
		n, err = asInt64(value)
		*d = int(n)
	case *int32:
		var n int64
		n, err = asInt64(value)
		*d = int32(n)
	case *int64:
		*d, err = asInt64(value)
	case *uint:
		var n int64
		n, err = asInt64(value)
		*d = uint(n)
	case *float64:
		*d, err = asFloat64(value)
	case *bool:
		*d, err = asBool(value)
	case *time.Time:
		*d, err = asTime(value)
	default:
		err = fmt.Errorf("unsupported destination type %T", dst)
	}

	if err != nil {
		return fmt.Errorf("cannot assign %T to %T: %w", value, dst, err)
	}

	return nil
}

func asString(value any) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	case time.Time:
		return v.Format(time.RFC3339Nano), nil
	case fmt.Stringer:
		return v.String(), nil
	default:
		return fmt.Sprint(v), nil
	}
}

func asInt64(value any) (int64, error) {
	switch v := value.(type) {
	case int64:
		return v, nil
	case []byte:
		return strconv.ParseInt(string(v), 10, 64)
	case string:
		return strconv.ParseInt(v, 10, 64)
	case float64:
		if n, ok := floatToInt(v); ok {
			return int64(n), nil
		}
		return 0, fmt.Errorf("non-integral value %v", v)
	default:
		if n, ok := toInt(v); ok {
			return int64(n), nil
		}
		return 0, fmt.Errorf("not an integer")
	}
}

func asFloat64(value any) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case []byte:
		return strconv.ParseFloat(string(v), 64)
	case string:
		return strconv.ParseFloat(v, 64)
	default:
		n, err := asInt64(v)
		return float64(n), err
	}
}

func asBool(value any) (bool, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case []byte:
		return strconv.ParseBool(string(v))
	case string:
		return strconv.ParseBool(v)
	default:
		n, err := asInt64(v)
		return n != 0, err
	}
}

var _timeLayouts = []string{
	time.RFC3339Nano,
	literalTimeLayout,
	time.DateTime,
	time.DateOnly,
}

func asTime(value any) (time.Time, error) {
	var s string

	switch v := value.(type) {
	case time.Time:
		return v, nil
	case []byte:
		s = string(v)
	case string:
		s = v
	default:
		return time.Time{}, fmt.Errorf("not a time value")
	}

	for _, layout := range _timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized time format '%s'", s)
}
