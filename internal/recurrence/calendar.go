package recurrence

import (
	"time"

	"github.com/avlasov/legal-planner-backend/internal/model"
)

// AddUnits advances date by interval units of the given frequency using
// calendar-correct rollover (time.AddDate normalization).
func AddUnits(date time.Time, freq model.Frequency, interval int) time.Time {
	switch freq {
	case model.FrequencyDaily:
		return date.AddDate(0, 0, interval)
	case model.FrequencyWeekly:
		return date.AddDate(0, 0, 7*interval)
	case model.FrequencyMonthly:
		return date.AddDate(0, interval, 0)
	default:
		return date.AddDate(interval, 0, 0)
	}
}

// ClampDayOfMonth builds the date (year, month, day), pulling day back to
// the last day of the month when it exceeds the month's length. A rule on
// the 31st lands on Feb 28 (29 in leap years), never in March.
func ClampDayOfMonth(year int, month time.Month, day int) time.Time {
	last := daysIn(year, month)
	if day > last {
		day = last
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func IsBusinessDay(date time.Time) bool {
	wd := date.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

func MatchesWeekday(date time.Time, days map[time.Weekday]struct{}) bool {
	_, ok := days[date.Weekday()]
	return ok
}

// weekStart returns the Sunday on or before date. Weeks are anchored
// Sunday through Saturday, matching the stored 0-6 weekday indices.
func weekStart(date time.Time) time.Time {
	return date.AddDate(0, 0, -int(date.Weekday()))
}
