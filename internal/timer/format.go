package timer

import "fmt"

// FormatRemaining renders seconds as MM:SS.
func FormatRemaining(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// Title is the one-line status used for the terminal window title.
func Title(s State, categoryName string) string {
	if categoryName == "" {
		return fmt.Sprintf("%s - Time to focus!", FormatRemaining(s.RemainingSeconds))
	}
	return fmt.Sprintf("%s %s - Time to focus!", FormatRemaining(s.RemainingSeconds), categoryName)
}

// Progress returns the fraction of the current mode already elapsed.
func Progress(s State, d Durations) float64 {
	target := d.Target(s.Mode)
	if target <= 0 {
		return 0
	}
	p := float64(target-s.RemainingSeconds) / float64(target)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
