package imagepkg

import "time"

const captionDateLayout = "2006-01-02"

// Caption prefixes label with the UTC date of now, e.g. "2024-01-15 - label".
func Caption(now time.Time, label string) string {
	return now.UTC().Format(captionDateLayout) + " - " + label
}
