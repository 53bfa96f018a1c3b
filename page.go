package sqlpager

import "fmt"

const (
	DefaultPageSize = 10

	ParamPageNumber = "pageNumber"
	ParamPageSize   = "pageSize"
)

// RequestedPage is a validated page request. Number is 1-based.
type RequestedPage struct {
	Number int
	Size   int
}

// Offset returns the number of rows preceding the page.
func (p RequestedPage) Offset() int {
	return (p.Number - 1) * p.Size
}

// NormalizePageSize returns size if it is positive, DefaultPageSize otherwise.
func NormalizePageSize(size int) int {
	if size <= 0 {
		return DefaultPageSize
	}

	return size
}

// ValidatePage reads the page request from params. pageNumber is required
// and must be >= 1. pageSize from params takes precedence over the Spec
// default when it is positive.
//
// No upper bound is applied to pageSize.
func ValidatePage(params Params, spec Spec) (RequestedPage, error) {
	number, ok := params.Int(ParamPageNumber)
	if !ok || number < 1 {
		return RequestedPage{}, fmt.Errorf("%w: '%s' must be an integer >= 1", ErrMissingRequiredParameter, ParamPageNumber)
	}

	size, ok := params.Int(ParamPageSize)
	if !ok || size <= 0 {
		size = spec.EffectivePageSize()
	}

	return RequestedPage{
		Number: number,
		Size:   size,
	}, nil
}

// LastPage returns ceil(total / pageSize). A non-positive pageSize yields 0.
func LastPage(total int64, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 0
	}

	size := int64(pageSize)

	return int((total + size - 1) / size)
}
