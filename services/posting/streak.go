package posting

import "time"

const dateLayout = "2006-01-02"

// ComputeStreak returns the streak after a post at now and whether the post
// affected it. Dates are compared as calendar days in loc.
func ComputeStreak(lastPost *time.Time, loc *time.Location, now time.Time, current int) (int, bool) {
	if loc == nil {
		loc = time.UTC
	}
	if lastPost == nil {
		return 1, true
	}

	today := civilDate(now.In(loc))
	last := civilDate(lastPost.In(loc))
	switch days := int(today.Sub(last).Hours() / 24); {
	case days == 0 && current > 0:
		return current, false
	case days == 0:
		return 1, true
	case days == 1:
		return current + 1, true
	default:
		return 1, true
	}
}

// civilDate truncates t to midnight UTC of its local calendar date, so that
// differences are whole days regardless of DST shifts.
func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
