package domain

import (
	"fmt"
	"time"
)

// FormatDuration formats a duration as seconds below one minute and as
// minutes and seconds above.
func FormatDuration(d time.Duration) string {
	secs := d.Seconds()
	if secs < 60 {
		return fmt.Sprintf("%.1fs", secs)
	}
	mins := int(secs) / 60
	return fmt.Sprintf("%dm %.1fs", mins, secs-float64(mins*60))
}
