package schedule

// =============================================================================
// WORKING-DAY ORACLE
// =============================================================================

// IsWorkingDay reports whether the date is a working day under the parsed
// shift. A nil shift falls back to the default policy: Saturday and Sunday
// are non-working, everything else works.
func IsWorkingDay(date CivilDate, shift *ParsedShift) bool {
	wd := date.Weekday()
	if shift == nil {
		return wd != Saturday && wd != Sunday
	}

	switch shift.Kind {
	case RosterRecurring:
		// Week-of-month is counted in blocks of seven calendar days from
		// the 1st. A week with no entry has no working days.
		set, ok := shift.WeekOfMonth[date.WeekOfMonth()]
		if !ok {
			return false
		}
		return set.Has(wd)
	case RosterWeekly:
		return shift.WorkingWeekdays.Has(wd)
	default:
		return wd != Saturday && wd != Sunday
	}
}

// =============================================================================
// DATE-RANGE ENUMERATOR
// =============================================================================

// DayEntry is one enumerated calendar day tagged with its working status.
// Entries live only for the duration of one allocation computation.
type DayEntry struct {
	Date    CivilDate
	Working bool
}

// EnumerateDays expands the inclusive [start, end] range into one entry per
// calendar day, ascending. An absent end or an inverted range enumerates to
// empty rather than erroring.
func EnumerateDays(start, end CivilDate, shift *ParsedShift) []DayEntry {
	if end.IsZero() || end.Before(start) {
		return nil
	}

	var days []DayEntry
	for _, date := range (DateRange{Start: start, End: end}).Days() {
		days = append(days, DayEntry{Date: date, Working: IsWorkingDay(date, shift)})
	}
	return days
}
