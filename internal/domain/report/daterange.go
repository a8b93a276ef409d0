package report

import (
	"time"
)

type Period string

const (
	PeriodAll    Period = "all"
	PeriodToday  Period = "today"
	PeriodWeek   Period = "week"
	PeriodMonth  Period = "month"
	PeriodCustom Period = "custom"
)

// DateRange is inclusive on both ends, matching created_at >= Start AND
// created_at <= End in the store.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Resolve turns a named period into concrete bounds. Nil means no date
// filter (PeriodAll). Custom without a selected date falls back to today.
func Resolve(period Period, customDate *time.Time, now time.Time) *DateRange {
	switch period {
	case PeriodToday:
		return dayBounds(now)
	case PeriodWeek:
		// ISO week: Monday 00:00:00 through Sunday 23:59:59.999
		offset := (int(now.Weekday()) + 6) % 7
		monday := startOfDay(now.AddDate(0, 0, -offset))
		sunday := monday.AddDate(0, 0, 6)
		return &DateRange{Start: monday, End: endOfDay(sunday)}
	case PeriodMonth:
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		last := first.AddDate(0, 1, -1)
		return &DateRange{Start: first, End: endOfDay(last)}
	case PeriodCustom:
		if customDate == nil {
			return dayBounds(now)
		}
		return dayBounds(*customDate)
	default:
		return nil
	}
}

// NominalDays is the fixed divisor for daily averages: 1/7/30 per period
// type, not the actual calendar span.
func NominalDays(period Period) int {
	switch period {
	case PeriodWeek:
		return 7
	case PeriodMonth:
		return 30
	default:
		return 1
	}
}

// ParsePeriod normalizes a query-string period value. "day" is accepted as
// an alias for "today"; an unknown value means no filter.
func ParsePeriod(s string) Period {
	switch Period(s) {
	case PeriodToday, Period("day"):
		return PeriodToday
	case PeriodWeek:
		return PeriodWeek
	case PeriodMonth:
		return PeriodMonth
	case PeriodCustom:
		return PeriodCustom
	default:
		return PeriodAll
	}
}

func dayBounds(t time.Time) *DateRange {
	return &DateRange{Start: startOfDay(t), End: endOfDay(t)}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), t.Location())
}
