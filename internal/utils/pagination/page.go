package pagination

const (
	// DefaultPageSize is used when the caller does not ask for a size.
	DefaultPageSize = 20
	// MaxPageSize caps a single page.
	MaxPageSize = 100
)

// Page is a 1-based page request.
type Page struct {
	Number int
	Size   int
}

// Normalize clamps a page request into the accepted range.
func Normalize(number, size int) Page {
	if number < 1 {
		number = 1
	}
	if size < 1 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return Page{Number: number, Size: size}
}

// Offset returns the number of rows to skip.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// Limit returns the number of rows to read.
func (p Page) Limit() int {
	return p.Size
}

// TotalPages returns how many pages of this size cover total rows.
func (p Page) TotalPages(total int) int {
	if total <= 0 || p.Size <= 0 {
		return 0
	}
	return (total + p.Size - 1) / p.Size
}

// HasNext reports whether a page follows this one.
func (p Page) HasNext(total int) bool {
	return p.Number < p.TotalPages(total)
}

// HasPrev reports whether a page precedes this one.
func (p Page) HasPrev() bool {
	return p.Number > 1
}
