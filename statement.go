package sqlpager

import (
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

// BoundStatement is a raw SQL template with positional "?" markers and the
// names of the parameters bound to them, in order of appearance.
type BoundStatement struct {
	SQL          string
	Placeholders []string
}

// StatementSource resolves a logical statement identifier to its template.
type StatementSource interface {
	BoundStatement(id string) (BoundStatement, error)
}

// Statements is an in-memory StatementSource. Statements are registered
// with MyBatis-style named markers:
//
//	SELECT * FROM users WHERE name = #{name} AND age > #{minAge}
//
// Safe for concurrent use.
type Statements struct {
	mu    sync.RWMutex
	items map[string]BoundStatement
}

func NewStatements() *Statements {
	return &Statements{
		items: make(map[string]BoundStatement),
	}
}

var _namedMarker = regexp.MustCompile(`#\{\s*([A-Za-z_][A-Za-z0-9_.]*)\s*(?:,[^}]*)?\}`)

// ParseNamedStatement converts "#{name}" markers into positional "?" markers.
func ParseNamedStatement(sql string) BoundStatement {
	var names []string

	converted := _namedMarker.ReplaceAllStringFunc(sql, func(marker string) string {
		names = append(names, _namedMarker.FindStringSubmatch(marker)[1])
		return "?"
	})

	return BoundStatement{
		SQL:          converted,
		Placeholders: names,
	}
}

// Register parses and stores a statement under id, replacing any previous
// statement with the same id.
func (s *Statements) Register(id string, sql string) *Statements {
	if s == nil {
		s = NewStatements()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.items == nil {
		s.items = make(map[string]BoundStatement)
	}
	s.items[id] = ParseNamedStatement(sql)

	return s
}

// BoundStatement - implements StatementSource.
func (s *Statements) BoundStatement(id string) (BoundStatement, error) {
	if s == nil {
		return BoundStatement{}, fmt.Errorf("%w: '%s'", ErrStatementNotFound, id)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	stmt, ok := s.items[id]
	if !ok {
		return BoundStatement{}, fmt.Errorf("%w: '%s'", ErrStatementNotFound, id)
	}

	return stmt, nil
}

// IDs returns identifiers of registered statements in sorted order.
func (s *Statements) IDs() []string {
	if s == nil {
		return nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := lo.Keys(s.items)
	sort.Strings(ids)

	return ids
}

// LoadStatements reads a YAML document mapping statement identifiers to SQL:
//
//	findUsers: |
//	  SELECT id, user_name FROM users WHERE status = #{status}
func LoadStatements(r io.Reader) (*Statements, error) {
	var raw map[string]string
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to decode statements: %w", err)
	}

	ret := NewStatements()
	for id, sql := range raw {
		id = strings.TrimSpace(id)
		if id == "" {
			return nil, fmt.Errorf("statement with empty identifier")
		}

		ret.Register(id, strings.TrimSpace(sql))
	}

	return ret, nil
}

var _ StatementSource = (*Statements)(nil)
