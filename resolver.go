package sqlpager

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

const literalTimeLayout = "2006-01-02 15:04:05.999999"

// Resolve produces the literal SQL text of the statement id: every positional
// marker is replaced with the quoted value of its bound parameter.
//
// IMPORTANT:
// Values are only quoted, not escaped by type. Callers are trusted.
func Resolve(src StatementSource, id string, params Params) (string, error) {
	if src == nil {
		return "", fmt.Errorf("cannot resolve statement '%s': no statement source", id)
	}

	stmt, err := src.BoundStatement(id)
	if err != nil {
		return "", fmt.Errorf("cannot resolve statement '%s': %w", id, err)
	}

	return bindLiterals(id, stmt, params)
}

func bindLiterals(id string, stmt BoundStatement, params Params) (string, error) {
	segments := splitOnMarkers(stmt.SQL)
	if len(segments)-1 != len(stmt.Placeholders) {
		return "", &ParameterBindingError{
			Statement: id,
			Reason:    fmt.Sprintf("statement has %d markers and %d bindings", len(segments)-1, len(stmt.Placeholders)),
		}
	}

	var b strings.Builder
	b.Grow(len(stmt.SQL))

	for i, name := range stmt.Placeholders {
		b.WriteString(segments[i])

		value, ok := params[name]
		if !ok {
			return "", &ParameterBindingError{Statement: id, Parameter: name, Reason: "parameter is absent"}
		}

		literal, err := sqlLiteral(value)
		if err != nil {
			return "", &ParameterBindingError{Statement: id, Parameter: name, Reason: err.Error()}
		}
		b.WriteString(literal)
	}
	b.WriteString(segments[len(segments)-1])

	return b.String(), nil
}

// splitOnMarkers cuts sql at every "?" that is not inside a quoted literal,
// a quoted identifier or a comment. The result always has one more element
// than the number of markers.
func splitOnMarkers(sql string) []string {
	const (
		stateCode = iota
		stateQuoted
		stateLineComment
		stateBlockComment
	)

	var (
		segments []string
		state    = stateCode
		quote    byte
		start    int
	)

	for i := 0; i < len(sql); i++ {
		c := sql[i]

		switch state {
		case stateCode:
			switch {
			case c == '\'' || c == '"' || c == '`':
				state, quote = stateQuoted, c
			case c == '-' && i+1 < len(sql) && sql[i+1] == '-':
				state = stateLineComment
				i++
			case c == '/' && i+1 < len(sql) && sql[i+1] == '*':
				state = stateBlockComment
				i++
			case c == '?':
				segments = append(segments, sql[start:i])
				start = i + 1
			}
		case stateQuoted:
			if c != quote {
				continue
			}
			// Doubled quote is an escaped quote.
			if i+1 < len(sql) && sql[i+1] == quote {
				i++
				continue
			}
			state = stateCode
		case stateLineComment:
			if c == '\n' {
				state = stateCode
			}
		case stateBlockComment:
			if c == '*' && i+1 < len(sql) && sql[i+1] == '/' {
				state = stateCode
				i++
			}
		}
	}

	return append(segments, sql[start:])
}

func sqlLiteral(value any) (string, error) {
	v, err := driver.DefaultParameterConverter.ConvertValue(value)
	if err != nil {
		if _, isValuer := value.(driver.Valuer); isValuer {
			return "", err
		}
		// Not a driver value: fall back to its textual form.
		v = fmt.Sprint(value)
	}

	switch vt := v.(type) {
	case nil:
		return "NULL", nil
	case string:
		return quoteLiteral(vt), nil
	case []byte:
		return quoteLiteral(string(vt)), nil
	case time.Time:
		return quoteLiteral(vt.Format(literalTimeLayout)), nil
	default:
		return quoteLiteral(fmt.Sprint(vt)), nil
	}
}

func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
