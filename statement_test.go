package sqlpager

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ParseNamedStatement(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		sql   string
		names []string
	}{
		{
			name:  "no markers",
			in:    "SELECT * FROM users",
			sql:   "SELECT * FROM users",
			names: nil,
		},
		{
			name:  "markers in order",
			in:    "SELECT * FROM users WHERE name = #{name} AND age > #{ minAge }",
			sql:   "SELECT * FROM users WHERE name = ? AND age > ?",
			names: []string{"name", "minAge"},
		},
		{
			name:  "jdbc type attributes are dropped",
			in:    "SELECT * FROM users WHERE created_at > #{since,jdbcType=TIMESTAMP}",
			sql:   "SELECT * FROM users WHERE created_at > ?",
			names: []string{"since"},
		},
		{
			name:  "nested property names",
			in:    "SELECT * FROM users WHERE city = #{address.city}",
			sql:   "SELECT * FROM users WHERE city = ?",
			names: []string{"address.city"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseNamedStatement(tt.in)
			assert.Equal(t, tt.sql, got.SQL)
			assert.Equal(t, tt.names, got.Placeholders)
		})
	}
}

func Test_Statements_RegisterAndLookup(t *testing.T) {
	var s *Statements
	s = s.Register("a", "SELECT 1").Register("b", "SELECT #{x}")

	assert.Equal(t, []string{"a", "b"}, s.IDs())

	stmt, err := s.BoundStatement("b")
	require.NoError(t, err)
	assert.Equal(t, BoundStatement{SQL: "SELECT ?", Placeholders: []string{"x"}}, stmt)

	s.Register("b", "SELECT 2")
	stmt, err = s.BoundStatement("b")
	require.NoError(t, err)
	assert.Equal(t, "SELECT 2", stmt.SQL)

	_, err = s.BoundStatement("c")
	require.ErrorIs(t, err, ErrStatementNotFound)

	_, err = (*Statements)(nil).BoundStatement("a")
	require.ErrorIs(t, err, ErrStatementNotFound)
}

func Test_Statements_ConcurrentAccess(t *testing.T) {
	s := NewStatements().Register("a", "SELECT 1")

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = s.BoundStatement("a")
		}()
		go func() {
			defer wg.Done()
			s.Register("b", "SELECT 2")
		}()
	}
	wg.Wait()

	assert.Equal(t, []string{"a", "b"}, s.IDs())
}

func Test_LoadStatements(t *testing.T) {
	doc := `
findUsers: |
  SELECT id, user_name FROM users WHERE status = #{status};
countAll: SELECT 1
`
	s, err := LoadStatements(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, []string{"countAll", "findUsers"}, s.IDs())

	stmt, err := s.BoundStatement("findUsers")
	require.NoError(t, err)
	assert.Equal(t, "SELECT id, user_name FROM users WHERE status = ?;", stmt.SQL)
	assert.Equal(t, []string{"status"}, stmt.Placeholders)
}

func Test_LoadStatements_Errors(t *testing.T) {
	_, err := LoadStatements(strings.NewReader("- not\n- a map\n"))
	require.Error(t, err)

	s, err := LoadStatements(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, s.IDs())
}
