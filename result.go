package sqlpager

// PaginationResult is the envelope returned by every paginatable call.
type PaginationResult[T any] struct {
	// Data result elements. Empty in ModeTotalCount.
	Data []T `json:"data"`
	// TotalCount number of rows matched by the base query. Zero in ModePureData.
	TotalCount int64 `json:"totalCount"`
	// LastPage ceil(TotalCount / pageSize). Set in ModePagination only.
	LastPage int `json:"lastPage"`
}
