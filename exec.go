package sqlpager

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

var errStopRows = errors.New("stop rows")

// executor runs literal SQL through GORM. Every statement holds its own
// connection until the rows are closed.
type executor struct {
	db          *gorm.DB
	logger      zerolog.Logger
	metrics     *Metrics
	isSyntax    func(error) bool
	strictCount bool
}

// query executes q and calls onRow for each row. onRow may return errStopRows
// to stop reading. Database errors are classified; onRow errors are returned
// as is.
func (e *executor) query(ctx context.Context, kind string, q string, onRow func(columns []string, values []any) error) (err error) {
	e.logger.Debug().Str("kind", kind).Str("sql", q).Msg("executing statement")

	start := time.Now()
	defer func() {
		e.metrics.observeQuery(kind, time.Since(start))
	}()

	rows, err := e.db.WithContext(ctx).Raw(q).Rows()
	if err != nil {
		return e.dbError(kind, q, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return e.dbError(kind, q, err)
	}

	for rows.Next() {
		values := make([]any, len(columns))
		pointers := make([]any, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}

		if err = rows.Scan(pointers...); err != nil {
			return e.dbError(kind, q, err)
		}

		if err = onRow(columns, values); err != nil {
			if errors.Is(err, errStopRows) {
				return nil
			}
			return err
		}
	}

	if err = rows.Err(); err != nil {
		return e.dbError(kind, q, err)
	}

	return nil
}

func (e *executor) dbError(kind string, q string, err error) error {
	if e.isSyntax(err) {
		return &SQLSyntaxError{SQL: q, Err: err}
	}

	return fmt.Errorf("cannot execute %s query: %w", kind, err)
}

// executeCount returns the first column of the first row, 0 if there is none.
//
// IMPORTANT:
// Unless strictCount is set, a failure other than a syntax error or a
// cancelled context is logged and reported as a count of 0.
func (e *executor) executeCount(ctx context.Context, q string) (int64, error) {
	var total int64

	err := e.query(ctx, kindCount, q, func(_ []string, values []any) error {
		if len(values) == 0 {
			return errStopRows
		}

		n, err := countValue(values[0])
		if err != nil {
			return err
		}
		total = n

		return errStopRows
	})
	if err == nil {
		return total, nil
	}

	switch {
	case errors.Is(err, ErrSQLSyntax):
		return 0, err
	case ctx.Err() != nil:
		return 0, fmt.Errorf("cannot execute count query: %w", ctx.Err())
	case e.strictCount:
		return 0, &CountExecutionError{SQL: q, Err: err}
	}

	e.logger.Warn().Err(err).Str("sql", q).Msg("count query failed, falling back to zero")
	e.metrics.observeCountFallback()

	return 0, nil
}

func executeRows[T any](ctx context.Context, e *executor, kind string, q string, mapRow rowMapper[T]) ([]T, error) {
	data := make([]T, 0)

	err := e.query(ctx, kind, q, func(columns []string, values []any) error {
		record, err := mapRow(columns, values)
		if err != nil {
			return err
		}
		data = append(data, record)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return data, nil
}

func countValue(v any) (int64, error) {
	switch vt := v.(type) {
	case nil:
		return 0, nil
	case int64:
		return vt, nil
	case []byte:
		return strconv.ParseInt(string(vt), 10, 64)
	case string:
		return strconv.ParseInt(vt, 10, 64)
	default:
		n, err := asInt64(vt)
		if err != nil {
			return 0, fmt.Errorf("unexpected count value of type %T: %w", v, err)
		}
		return n, nil
	}
}
