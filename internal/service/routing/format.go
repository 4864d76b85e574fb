package routing

import "fmt"

// FormatDistance renders meters as a human-readable string, switching to
// kilometers at 1000 m ("1.2 km", "500 m").
func FormatDistance(meters float64) string {
	if meters >= 1000 {
		return fmt.Sprintf("%.1f km", meters/1000)
	}
	return fmt.Sprintf("%d m", int(meters))
}

// FormatDuration renders seconds as a human-readable string, switching to
// hours at 3600 s ("1h 30min", "45min").
func FormatDuration(seconds float64) string {
	hours := int(seconds) / 3600
	minutes := (int(seconds) % 3600) / 60

	if hours > 0 {
		return fmt.Sprintf("%dh %dmin", hours, minutes)
	}
	return fmt.Sprintf("%dmin", minutes)
}
