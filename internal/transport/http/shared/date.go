package shared

import "time"

// Report and payslip periods are bounded to these years.
const (
	MinYear = 2020
	MaxYear = 2030
)

func ValidYear(year int) bool {
	return year >= MinYear && year <= MaxYear
}

func ValidMonth(month int) bool {
	return month >= 1 && month <= 12
}

// ParseDate accepts RFC3339 or YYYY-MM-DD.
func ParseDate(value string) (time.Time, error) {
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed, nil
	}
	return time.Parse("2006-01-02", value)
}
