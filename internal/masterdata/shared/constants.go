package shared

// Listing defaults. A zero limit returns every row.
const (
	DefaultPage  = 1
	DefaultLimit = 0
)

// SortDirection maps "desc" to DESC and anything else to ASC.
func SortDirection(dir string) string {
	if dir == "desc" {
		return "DESC"
	}
	return "ASC"
}
