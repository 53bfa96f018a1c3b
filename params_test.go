package sqlpager

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type userFilter struct {
	Name string
	Page int
	Size int
}

var userFilterGetters = Getters[userFilter]{
	"name":          func(f userFilter) any { return f.Name },
	ParamPageNumber: func(f userFilter) any { return f.Page },
	ParamPageSize:   func(f userFilter) any { return f.Size },
}

func Test_RecordParams(t *testing.T) {
	src := RecordParams(userFilter{Name: "John", Page: 2, Size: 5}, userFilterGetters)

	assert.Equal(t, []string{"name", "pageNumber", "pageSize"}, src.FieldNames())

	v, ok := src.FieldValue("name")
	assert.True(t, ok)
	assert.Equal(t, "John", v)

	_, ok = src.FieldValue("unknown")
	assert.False(t, ok)

	assert.Equal(t, Params{"name": "John", "pageNumber": 2, "pageSize": 5}, ExtractParams(src))
}

func Test_ExtractParams(t *testing.T) {
	original := Params{"a": 1, "b": "x"}
	extracted := ExtractParams(original)
	assert.Equal(t, original, extracted)

	extracted["c"] = 3
	assert.NotContains(t, original, "c")

	assert.Equal(t, Params{}, ExtractParams(nil))
}

func Test_Params_Int(t *testing.T) {
	n := 9
	var nilInt *int

	tests := []struct {
		name string
		in   any
		want int
		ok   bool
	}{
		{"int", 3, 3, true},
		{"int8", int8(3), 3, true},
		{"uint32", uint32(3), 3, true},
		{"int64", int64(3), 3, true},
		{"integral float32", float32(4), 4, true},
		{"fractional float", 4.2, 0, false},
		{"decimal string", "12", 12, true},
		{"padded string", " 12 ", 12, true},
		{"word", "twelve", 0, false},
		{"pointer", &n, 9, true},
		{"nil pointer", nilInt, 0, false},
		{"bool", true, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Params{"v": tt.in}.Int("v")
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}

	_, ok := Params{}.Int("v")
	assert.False(t, ok)
}
