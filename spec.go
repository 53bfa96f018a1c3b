package sqlpager

import (
	"fmt"
	"slices"
	"strings"
)

// Mode selects what a paginatable call executes.
type Mode int

const (
	// ModePagination executes the count query and then the paginated query.
	ModePagination Mode = iota
	// ModePureData executes the base query as is.
	ModePureData
	// ModeTotalCount executes the count query only.
	ModeTotalCount
)

var _modeNames = map[Mode]string{
	ModePagination: "PAGINATION",
	ModePureData:   "PURE_DATA",
	ModeTotalCount: "TOTAL_COUNT",
}

func (m Mode) Valid() bool {
	_, ok := _modeNames[m]
	return ok
}

// String - implements fmt.Stringer.
func (m Mode) String() string {
	if name, ok := _modeNames[m]; ok {
		return name
	}

	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode parses "PAGINATION", "PURE_DATA" or "TOTAL_COUNT", ignoring case.
func ParseMode(s string) (Mode, error) {
	normalized := strings.ToUpper(strings.TrimSpace(s))
	for mode, name := range _modeNames {
		if name == normalized {
			return mode, nil
		}
	}

	return 0, fmt.Errorf("unknown mode '%s'", s)
}

// Spec is the pagination configuration attached to a paginatable call.
// Spec is a value: With* methods return modified copies.
type Spec struct {
	// SelectTemplate overrides the dialect template. Receives (base, offset, limit).
	SelectTemplate string
	// CountTemplate receives the base query. Empty means DefaultCountTemplate.
	CountTemplate string
	// PageSize is used when the call does not provide a positive pageSize.
	PageSize int
	Mode     Mode
	// StatementID overrides the statement identifier supplied with the call.
	StatementID string
	// OrderBy is appended to the base query before it is paginated.
	OrderBy Orderings
}

// NewSpec returns a Spec with the defaults: pagination mode, default count
// template and DefaultPageSize.
func NewSpec() Spec {
	return Spec{
		CountTemplate: DefaultCountTemplate,
		PageSize:      DefaultPageSize,
		Mode:          ModePagination,
	}
}

func (s Spec) WithMode(mode Mode) Spec {
	s.Mode = mode
	return s
}

func (s Spec) WithPageSize(size int) Spec {
	s.PageSize = size
	return s
}

func (s Spec) WithSelectTemplate(template string) Spec {
	s.SelectTemplate = template
	return s
}

func (s Spec) WithCountTemplate(template string) Spec {
	s.CountTemplate = template
	return s
}

func (s Spec) WithStatementID(id string) Spec {
	s.StatementID = id
	return s
}

// WithOrderBy replaces orderings with the provided ones.
func (s Spec) WithOrderBy(orderBy ...OrderBy) Spec {
	s.OrderBy = slices.Clone(Orderings(orderBy))
	return s
}

// EffectivePageSize returns PageSize normalized with NormalizePageSize.
func (s Spec) EffectivePageSize() int {
	return NormalizePageSize(s.PageSize)
}

// EffectiveCountTemplate returns CountTemplate or DefaultCountTemplate.
func (s Spec) EffectiveCountTemplate() string {
	if s.CountTemplate == "" {
		return DefaultCountTemplate
	}

	return s.CountTemplate
}

// ResolveStatementID returns the override if set, callID otherwise.
func (s Spec) ResolveStatementID(callID string) string {
	if s.StatementID != "" {
		return s.StatementID
	}

	return callID
}

func (s Spec) validate() error {
	if !s.Mode.Valid() {
		return fmt.Errorf("invalid mode '%s'", s.Mode)
	}

	if verbs := templateVerbs(s.EffectiveCountTemplate()); !slices.Equal(verbs, []rune{'s'}) {
		return fmt.Errorf("count template must contain exactly one %%s, got '%s'", s.CountTemplate)
	}

	if s.SelectTemplate != "" {
		if verbs := templateVerbs(s.SelectTemplate); !slices.Equal(verbs, []rune{'s', 'd', 'd'}) {
			return fmt.Errorf("select template must contain %%s, %%d, %%d in that order, got '%s'", s.SelectTemplate)
		}
	}

	if len(s.OrderBy) > 0 {
		if err := s.OrderBy.validate(); err != nil {
			return err
		}
	}

	return nil
}
