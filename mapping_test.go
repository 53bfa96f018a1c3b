package sqlpager

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tUser struct {
	ID        int64
	UserName  string
	Score     float64
	Active    bool
	CreatedAt time.Time
}

var tUserSetters = Setters[tUser]{
	"id":        func(u *tUser, v any) error { return Assign(&u.ID, v) },
	"userName":  func(u *tUser, v any) error { return Assign(&u.UserName, v) },
	"score":     func(u *tUser, v any) error { return Assign(&u.Score, v) },
	"active":    func(u *tUser, v any) error { return Assign(&u.Active, v) },
	"createdAt": func(u *tUser, v any) error { return Assign(&u.CreatedAt, v) },
}

func Test_SnakeToCamel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"id", "id"},
		{"ID", "id"},
		{"user_name", "userName"},
		{"USER_NAME", "userName"},
		{"created_at_utc", "createdAtUtc"},
		{"_leading", "leading"},
		{"double__underscore", "doubleUnderscore"},
		{"userName", "username"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SnakeToCamel(tt.in))
		})
	}
}

func Test_typedRowMapper(t *testing.T) {
	mapRow := typedRowMapper(tUserSetters)
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	got, err := mapRow(
		[]string{"id", "user_name", "score", "active", "created_at"},
		[]any{int64(7), []byte("john"), []byte("1.5"), int64(1), created},
	)
	require.NoError(t, err)
	assert.Equal(t, tUser{ID: 7, UserName: "john", Score: 1.5, Active: true, CreatedAt: created}, got)
}

func Test_typedRowMapper_UnknownColumn(t *testing.T) {
	mapRow := typedRowMapper(tUserSetters)

	_, err := mapRow([]string{"id", "email_address"}, []any{int64(1), "a@b.c"})
	require.ErrorIs(t, err, ErrResultMapping)

	var mappingErr *ResultMappingError
	require.ErrorAs(t, err, &mappingErr)
	assert.Equal(t, "email_address", mappingErr.Column)
	assert.Equal(t, "emailAddress", mappingErr.Field)
}

func Test_typedRowMapper_ConversionFailure(t *testing.T) {
	mapRow := typedRowMapper(tUserSetters)

	_, err := mapRow([]string{"id"}, []any{"not a number"})
	require.ErrorIs(t, err, ErrResultMapping)
}

func Test_mapDynamicRow(t *testing.T) {
	row, err := mapDynamicRow([]string{"id", "name", "note"}, []any{int64(1), []byte("john"), nil})
	require.NoError(t, err)
	assert.Equal(t, Row{"id": int64(1), "name": "john", "note": nil}, row)
}

func Test_Assign(t *testing.T) {
	t.Run("nil resets to zero", func(t *testing.T) {
		s := "x"
		require.NoError(t, Assign(&s, nil))
		assert.Equal(t, "", s)
	})

	t.Run("same type", func(t *testing.T) {
		var n int64
		require.NoError(t, Assign(&n, int64(5)))
		assert.Equal(t, int64(5), n)
	})

	t.Run("int from int64", func(t *testing.T) {
		var n int
		require.NoError(t, Assign(&n, int64(5)))
		assert.Equal(t, 5, n)
	})

	t.Run("int from bytes", func(t *testing.T) {
		var n int32
		require.NoError(t, Assign(&n, []byte("12")))
		assert.Equal(t, int32(12), n)
	})

	t.Run("bool from string", func(t *testing.T) {
		var b bool
		require.NoError(t, Assign(&b, "true"))
		assert.True(t, b)
	})

	t.Run("time from mysql text", func(t *testing.T) {
		var ts time.Time
		require.NoError(t, Assign(&ts, []byte("2024-01-02 03:04:05")))
		assert.Equal(t, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), ts)
	})

	t.Run("string from int", func(t *testing.T) {
		var s string
		require.NoError(t, Assign(&s, int64(3)))
		assert.Equal(t, "3", s)
	})

	t.Run("any destination", func(t *testing.T) {
		var v any
		require.NoError(t, Assign(&v, 3))
		assert.Equal(t, 3, v)
	})

	t.Run("unsupported destination", func(t *testing.T) {
		var v []int
		require.Error(t, Assign(&v, "x"))
	})

	t.Run("bad time", func(t *testing.T) {
		var ts time.Time
		require.Error(t, Assign(&ts, "yesterday"))
	})
}
