package sqlpager

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// ParamSource exposes named values of a call argument.
type ParamSource interface {
	FieldNames() []string
	FieldValue(name string) (any, bool)
}

// Params is a bag of named call parameters.
type Params map[string]any

// FieldNames - implements ParamSource. Names are sorted.
func (p Params) FieldNames() []string {
	names := lo.Keys(p)
	sort.Strings(names)

	return names
}

// FieldValue - implements ParamSource.
func (p Params) FieldValue(name string) (any, bool) {
	v, ok := p[name]
	return v, ok
}

// Int returns the parameter as an int. The second value is false if the
// parameter is absent or not an integer.
func (p Params) Int(name string) (int, bool) {
	v, ok := p[name]
	if !ok {
		return 0, false
	}

	return toInt(v)
}

// Getters - dictionary of getters for a record. Keys are the parameter names
// referenced by statements.
// Example:
//
//	sqlpager.Getters[UserFilter]{
//		"name":       func(f UserFilter) any { return f.Name },
//		"pageNumber": func(f UserFilter) any { return f.Page },
//	}
type Getters[T any] map[string]func(T) any

type recordParams[T any] struct {
	record  T
	getters Getters[T]
}

// RecordParams adapts a record to ParamSource through explicit getters.
func RecordParams[T any](record T, getters Getters[T]) ParamSource {
	return recordParams[T]{
		record:  record,
		getters: getters,
	}
}

func (r recordParams[T]) FieldNames() []string {
	names := lo.Keys(r.getters)
	sort.Strings(names)

	return names
}

func (r recordParams[T]) FieldValue(name string) (any, bool) {
	getter, ok := r.getters[name]
	if !ok {
		return nil, false
	}

	return getter(r.record), true
}

// ExtractParams copies values of src into a new Params. A nil source yields
// an empty bag.
func ExtractParams(src ParamSource) Params {
	ret := make(Params)
	if src == nil {
		return ret
	}

	for _, name := range src.FieldNames() {
		if v, ok := src.FieldValue(name); ok {
			ret[name] = v
		}
	}

	return ret
}

func toInt(v any) (int, bool) {
	switch vt := v.(type) {
	case int:
		return vt, true
	case int8:
		return int(vt), true
	case int16:
		return int(vt), true
	case int32:
		return int(vt), true
	case int64:
		return int(vt), true
	case uint:
		return int(vt), true
	case uint8:
		return int(vt), true
	case uint16:
		return int(vt), true
	case uint32:
		return int(vt), true
	case uint64:
		return int(vt), true
	case float32:
		return floatToInt(float64(vt))
	case float64:
		return floatToInt(vt)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(vt))
		return n, err == nil
	case *int:
		if vt == nil {
			return 0, false
		}
		return *vt, true
	default:
		return 0, false
	}
}

func floatToInt(f float64) (int, bool) {
	if f != math.Trunc(f) || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}

	return int(f), true
}
