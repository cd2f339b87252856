package view

import (
	"fmt"
	"time"
)

// TimeAgo renders a timestamp relative to now with minute, hour and day
// granularity, falling back to an absolute date past 30 days.
func TimeAgo(t time.Time, now time.Time) string {
	if t.IsZero() {
		return ""
	}

	diff := now.Sub(t)
	mins := int(diff.Minutes())
	hours := int(diff.Hours())
	days := int(diff.Hours() / 24)

	switch {
	case mins < 1:
		return "just now"
	case mins < 60:
		return fmt.Sprintf("%d min ago", mins)
	case hours < 24:
		return fmt.Sprintf("%dh ago", hours)
	case days < 30:
		return fmt.Sprintf("%dd ago", days)
	default:
		return t.Format("02 Jan 2006")
	}
}
