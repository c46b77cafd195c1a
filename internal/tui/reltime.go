package tui

import (
	"fmt"
	"time"
)

const dateLayout = "1/2/2006"

// RelativeTime renders t relative to now using floored units:
// under a minute "Just now", then minutes, hours and days up to a week,
// and the local calendar date beyond that. Timestamps ahead of now
// (clock skew) render as "Just now".
func RelativeTime(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "Just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d/time.Minute))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d/time.Hour))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d/(24*time.Hour)))
	}
	return t.Local().Format(dateLayout)
}

// AnswerCountLabel returns "1 Answer" or "N Answers".
func AnswerCountLabel(n int) string {
	if n == 1 {
		return "1 Answer"
	}
	return fmt.Sprintf("%d Answers", n)
}
