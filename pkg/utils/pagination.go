package utils

const (
	DefaultPerPage = 10
	MaxPerPage     = 100
)

// CalculateTotalPages returns how many pages of perPage rows hold total rows.
func CalculateTotalPages(total int64, perPage int) int {
	if perPage <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(perPage) - 1) / int64(perPage))
}

func CalculateOffset(page, perPage int) int {
	if page < 1 || perPage < 1 {
		return 0
	}
	return (page - 1) * perPage
}

// ClampPerPage falls back to DefaultPerPage for non-positive values and caps at MaxPerPage.
func ClampPerPage(perPage int) int {
	if perPage < 1 {
		return DefaultPerPage
	}
	if perPage > MaxPerPage {
		return MaxPerPage
	}
	return perPage
}
