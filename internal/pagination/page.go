package pagination

import (
	"github.com/shareit-platform/service-rental/internal/domain/apperr"
)

// DefaultPageSize is used when the caller supplies neither from nor size.
const DefaultPageSize = 25

// SortOrder names a column/direction pair applied by the store.
type SortOrder string

const (
	SortUnsorted      SortOrder = ""
	SortStartDesc     SortOrder = "start_date DESC"
	SortIDAsc         SortOrder = "id ASC"
	SortCreatedAtDesc SortOrder = "created_at DESC"
)

// Page is a validated offset/limit window. It carries no page-number
// semantics: callers reason purely in offset and limit terms. Construct it
// only through Resolve.
type Page struct {
	offset int
	limit  int
	sort   SortOrder
}

// Resolve turns raw, possibly-absent query arguments into a Page.
// Both nil means the default window (offset 0, limit 25); a single nil
// defaults that argument to 0 and is then subject to validation.
func Resolve(from, size *int, sort SortOrder) (Page, error) {
	if from == nil && size == nil {
		return Page{offset: 0, limit: DefaultPageSize, sort: sort}, nil
	}
	offset := unbox(from)
	limit := unbox(size)
	if limit < 1 || offset < 0 {
		return Page{}, apperr.InvalidPageArguments()
	}
	return Page{offset: offset, limit: limit, sort: sort}, nil
}

func unbox(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

// Offset returns the zero-based element offset.
func (p Page) Offset() int { return p.offset }

// Limit returns the page length.
func (p Page) Limit() int { return p.limit }

// Sort returns the requested sort order.
func (p Page) Sort() SortOrder { return p.sort }

// Next derives the window starting right after this one.
func (p Page) Next() Page {
	return Page{offset: p.offset + p.limit, limit: p.limit, sort: p.sort}
}

// First derives the first window with the same shape. The offset is kept as
// resolved: the descriptor anchors at its original starting element.
func (p Page) First() Page {
	return Page{offset: p.offset, limit: p.limit, sort: p.sort}
}
