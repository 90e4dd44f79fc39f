package allocation

import (
	"github.com/shopspring/decimal"

	"github.com/warp/effort-engine/schedule"
)

// FlexibleDay is one editable day slot in flexible mode. Non-working days
// carry an empty value and are not editable.
type FlexibleDay struct {
	Date    schedule.CivilDate
	Working bool
	Value   string
}

// SeedFlexible builds the initial editable day list for the range: every
// calendar day, working or not. Working days are seeded by formatting the
// daily capacity to "H:MM", which rounds to whole minutes on purpose so the
// displayed and stored values stay consistent.
func SeedFlexible(start, end *schedule.CivilDate, rec *schedule.ShiftRecord) []FlexibleDay {
	if start == nil || end == nil {
		return nil
	}

	parsed := schedule.ParseShift(rec)
	seed := FormatHours(schedule.HoursPerDay(rec))

	var days []FlexibleDay
	for _, day := range schedule.EnumerateDays(*start, *end, parsed) {
		fd := FlexibleDay{Date: day.Date, Working: day.Working}
		if day.Working {
			fd.Value = seed
		}
		days = append(days, fd)
	}
	return days
}

// Flexible totals the caller-edited per-day values over the range. Flexible
// entry is unavailable until an end date is chosen: an open bound yields a
// zero Result.
//
// overrides is the caller-owned override list, indexed by day offset from
// start. An empty override keeps the seeded default; overrides on
// non-working days are ignored since those slots are not editable. The
// breakdown covers every enumerated day, non-working days at zero.
func Flexible(start, end *schedule.CivilDate, rec *schedule.ShiftRecord, overrides []string) Result {
	days := SeedFlexible(start, end, rec)
	result := Result{TotalHours: decimal.Zero}

	for i, day := range days {
		value := day.Value
		if day.Working && i < len(overrides) && overrides[i] != "" {
			value = overrides[i]
		}
		hours := ParseHours(value)
		result.DateWise = append(result.DateWise, DateHours{Date: day.Date, Hours: hours})
		result.TotalHours = result.TotalHours.Add(hours)
	}
	return result
}
