// Package timefmt renders elapsed time the way the feedback feed
// displays it: coarse buckets that floor at each tier.
package timefmt

import (
	"fmt"
	"time"
)

// Bucket thresholds in whole minutes.
const (
	minutesPerHour = 60
	minutesPerDay  = 24 * minutesPerHour
)

// Elapsed formats now minus at as an age label. Anything under a full
// minute, including clock skew into the future, reads "Just now".
func Elapsed(now, at time.Time) string {
	mins := int(now.Sub(at).Minutes())
	switch {
	case mins < 1:
		return "Just now"
	case mins < minutesPerHour:
		return fmt.Sprintf("%dm ago", mins)
	case mins < minutesPerDay:
		return fmt.Sprintf("%dh ago", mins/minutesPerHour)
	default:
		return fmt.Sprintf("%dd ago", mins/minutesPerDay)
	}
}
