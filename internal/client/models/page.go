package models

// ListPage is one page of a paginated collection plus the total page count
// known at fetch time. Pages are identified by (view, page number) at the
// caching layer; the page number itself is not part of the payload.
type ListPage[T any] struct {
	Items      []T
	TotalPages int
}
