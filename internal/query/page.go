package query

// Page is one bounded slice of a result set. JSON field names are shared with
// existing consumers and must not change.
type Page[T any] struct {
	Content       []T   `json:"content"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	Size          int   `json:"size"`
	Number        int   `json:"number"`
	Last          bool  `json:"last"`
}

// NewPage wraps already-paginated content with metadata. Backends that
// paginate remotely use it so every Page is built with the same arithmetic.
func NewPage[T any](content []T, total int64, page, size int) Page[T] {
	if content == nil {
		content = []T{}
	}
	var pages int64
	if size > 0 {
		pages = total / int64(size)
		if total%int64(size) != 0 {
			pages++
		}
	}
	start := Request{Page: page, Size: size}.Offset()
	return Page[T]{
		Content:       content,
		TotalElements: total,
		TotalPages:    int(pages),
		Size:          size,
		Number:        page,
		Last:          start >= total || int64(len(content)) >= total-start,
	}
}
