package shared

// ListFilters represents standard list filters for master data.
type ListFilters struct {
	Page    int
	Limit   int
	Search  string
	SortBy  string
	SortDir string

	// Entity specific filters
	SupplierID *int64
}

// Offset returns the row offset, zero when paging is disabled.
func (f ListFilters) Offset() int {
	if f.Limit <= 0 || f.Page <= 1 {
		return 0
	}
	return (f.Page - 1) * f.Limit
}
