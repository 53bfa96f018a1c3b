package sqlpager

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

// Pager executes paginatable calls against one database. The dialect is
// taken from Config and resolved at most once, on first use; a failed
// resolution is returned by every later call.
//
// Pager is safe for concurrent use.
type Pager struct {
	exec       *executor
	statements StatementSource
	pageSize   int
	dialect    func() (Dialect, error)
}

type Option func(*Pager)

// WithLogger sets the logger. By default nothing is logged.
func WithLogger(logger zerolog.Logger) Option {
	return func(p *Pager) {
		p.exec.logger = logger
	}
}

// WithMetrics enables Prometheus metrics.
func WithMetrics(metrics *Metrics) Option {
	return func(p *Pager) {
		p.exec.metrics = metrics
	}
}

// WithStrictCount makes count query failures surface as CountExecutionError
// instead of being reported as a count of zero.
func WithStrictCount() Option {
	return func(p *Pager) {
		p.exec.strictCount = true
	}
}

// WithSyntaxClassifier replaces IsSyntaxError, e.g. for drivers of Oracle or
// SQL Server.
func WithSyntaxClassifier(isSyntax func(error) bool) Option {
	return func(p *Pager) {
		if isSyntax != nil {
			p.exec.isSyntax = isSyntax
		}
	}
}

func NewPager(db *gorm.DB, statements StatementSource, cfg Config, opts ...Option) *Pager {
	p := &Pager{
		exec: &executor{
			db:          db,
			logger:      zerolog.Nop(),
			isSyntax:    IsSyntaxError,
			strictCount: cfg.StrictCount,
		},
		statements: statements,
		pageSize:   cfg.PageSize,
	}

	for _, opt := range opts {
		opt(p)
	}
	p.exec.logger = p.exec.logger.With().Str("component", "sqlpager").Logger()

	dialectName := cfg.Dialect
	p.dialect = sync.OnceValues(func() (Dialect, error) {
		return LookupDialect(dialectName)
	})

	return p
}

// Dialect returns the active dialect.
func (p *Pager) Dialect() (Dialect, error) {
	if p == nil {
		return Dialect{}, fmt.Errorf("pager is nil")
	}

	return p.dialect()
}

// Paginate executes the paginatable call statementID with args and maps rows
// into T through setters.
//
// Usage:
//
//	res, err := sqlpager.Paginate(ctx, pager, "findUsers",
//		sqlpager.NewSpec().WithPageSize(20),
//		sqlpager.Params{"status": "active", "pageNumber": 2},
//		userSetters,
//	)
func Paginate[T any](
	ctx context.Context,
	p *Pager,
	statementID string,
	spec Spec,
	args ParamSource,
	setters Setters[T],
) (*PaginationResult[T], error) {
	return paginate(ctx, p, statementID, spec, args, typedRowMapper(setters))
}

// PaginateRows is Paginate for dynamic records.
func PaginateRows(
	ctx context.Context,
	p *Pager,
	statementID string,
	spec Spec,
	args ParamSource,
) (*PaginationResult[Row], error) {
	return paginate(ctx, p, statementID, spec, args, mapDynamicRow)
}

func paginate[T any](
	ctx context.Context,
	p *Pager,
	statementID string,
	spec Spec,
	args ParamSource,
	mapRow rowMapper[T],
) (ret *PaginationResult[T], err error) {
	if p == nil {
		return nil, fmt.Errorf("pager is nil")
	}

	defer func() {
		p.exec.metrics.observeFailure(err)
	}()

	dialect, err := p.dialect()
	if err != nil {
		return nil, err
	}

	if spec.PageSize <= 0 {
		spec.PageSize = p.pageSize
	}
	if err = spec.validate(); err != nil {
		return nil, fmt.Errorf("cannot paginate: %w", err)
	}

	params := ExtractParams(args)
	id := spec.ResolveStatementID(statementID)

	base, err := Resolve(p.statements, id, params)
	if err != nil {
		return nil, err
	}
	base = trimStatement(base)

	logger := p.exec.logger.With().Str("statement", id).Stringer("mode", spec.Mode).Logger()

	switch spec.Mode {
	case ModePureData:
		data, err := executeRows(ctx, p.exec, kindData, withOrdering(base, spec.OrderBy), mapRow)
		if err != nil {
			return nil, err
		}

		return &PaginationResult[T]{Data: data}, nil

	case ModeTotalCount:
		total, err := p.exec.executeCount(ctx, ComposeCount(base, spec.EffectiveCountTemplate()))
		if err != nil {
			return nil, err
		}

		return &PaginationResult[T]{Data: make([]T, 0), TotalCount: total}, nil

	case ModePagination:
		page, err := ValidatePage(params, spec)
		if err != nil {
			return nil, err
		}

		total, err := p.exec.executeCount(ctx, ComposeCount(base, spec.EffectiveCountTemplate()))
		if err != nil {
			return nil, err
		}

		// An empty dataset has no last page, yet its first page is valid.
		lastPage := LastPage(total, page.Size)
		if total > 0 && page.Number > lastPage {
			return nil, &PageOutOfRangeError{Page: page.Number, LastPage: lastPage}
		}

		template := lo.Ternary(spec.SelectTemplate != "", spec.SelectTemplate, dialect.Template)
		q := ComposePaginatedTemplate(withOrdering(base, spec.OrderBy), template, page.Offset(), page.Size)

		data, err := executeRows(ctx, p.exec, kindPaginated, q, mapRow)
		if err != nil {
			return nil, err
		}

		logger.Debug().
			Int("page", page.Number).
			Int("pageSize", page.Size).
			Int64("total", total).
			Int("lastPage", lastPage).
			Msg("page fetched")

		return &PaginationResult[T]{Data: data, TotalCount: total, LastPage: lastPage}, nil

	default:
		return nil, fmt.Errorf("cannot paginate: invalid mode '%s'", spec.Mode)
	}
}

// trimStatement drops surrounding whitespace and trailing semicolons, which
// would break the statement once it is wrapped or extended.
func trimStatement(sql string) string {
	return strings.TrimSpace(strings.TrimRight(strings.TrimSpace(sql), ";"))
}
