/*
Package schedule models a person's work shift and the calendar predicates
derived from it.

PURPOSE:
  A shift record arrives as a loosely-structured external payload: the
  roster type, a duck-typed working-day field, a 12-hour clock window, and
  an optional break window. This package normalizes that payload once into
  a closed, exhaustively-matchable type (ParsedShift) so everything
  downstream works with real sets instead of runtime shape-sniffing.

FAILURE SEMANTICS:
  Nothing in this package returns an error for malformed shift data. Every
  parsing step degrades to a conservative default: unknown entries are
  dropped, an unparseable clock window falls back to the 8-hour day, and a
  shift with no usable day set simply never produces a working day.

SEE ALSO:
  - calendar.go: Working-day predicate and range enumeration
  - capacity.go: Working hours per day from the clock and break windows
*/
package schedule

import (
	"strconv"
	"strings"
)

// =============================================================================
// SHIFT RECORD - Loose external payload
// =============================================================================

// Roster type markers as they appear on the wire. The "roaster" spelling is
// the upstream field name and is kept for wire compatibility.
const (
	RoasterTypeRecurring = "Recurring"
	RoasterTypeWeekly    = "Weekdays/Weekends"
)

// ShiftRecord is the shift payload as supplied by the user-shift lookup.
// All fields are optional; NoOfDays is duck-typed on purpose (flat weekday
// list, week-of-month map, or a one-element list wrapping that map).
type ShiftRecord struct {
	RoasterType string       `json:"roaster_type,omitempty"`
	NoOfDays    any          `json:"no_of_days,omitempty"`
	Shift       string       `json:"shift,omitempty"`
	UserShift   *BreakWindow `json:"user_shift,omitempty"`
}

// BreakWindow is the optional break inside the shift, in 24-hour clock
// components. Pointer fields so absence is observable: a BreakWindow with
// nil hour fields keeps the conventional one-hour break.
type BreakWindow struct {
	BreakStartHour *int `json:"break_start_hour,omitempty"`
	BreakStartMin  *int `json:"break_start_min,omitempty"`
	BreakEndHour   *int `json:"break_end_hour,omitempty"`
	BreakEndMin    *int `json:"break_end_min,omitempty"`
}

// =============================================================================
// PARSED SHIFT - Closed union produced once by ParseShift
// =============================================================================

type RosterKind int

const (
	// RosterNone falls back to the default Monday-Friday policy.
	RosterNone RosterKind = iota

	// RosterWeekly works a fixed set of weekdays every week.
	RosterWeekly

	// RosterRecurring works a weekday set that varies by week-of-month.
	RosterRecurring
)

// ParsedShift is the normalized working-day roster. Exactly one of
// WorkingWeekdays (RosterWeekly) or WeekOfMonth (RosterRecurring) is set.
type ParsedShift struct {
	Kind            RosterKind
	WorkingWeekdays WeekdaySet
	WeekOfMonth     map[int]WeekdaySet
}

// ParseShift normalizes a raw shift record. Returns nil when the record is
// absent or carries no working-day data; callers treat nil as the default
// Monday-Friday policy.
func ParseShift(rec *ShiftRecord) *ParsedShift {
	if rec == nil || rec.NoOfDays == nil {
		return nil
	}

	if rec.RoasterType == RoasterTypeRecurring {
		return &ParsedShift{
			Kind:        RosterRecurring,
			WeekOfMonth: parseRecurring(rec.NoOfDays),
		}
	}

	return &ParsedShift{
		Kind:            RosterWeekly,
		WorkingWeekdays: parseWeekdayList(rec.NoOfDays),
	}
}

// parseRecurring coerces the week-of-month shape: an object keyed by week
// number string ("1".."5"), or a list whose first element is that object.
// Unusable keys and entries are dropped.
func parseRecurring(v any) map[int]WeekdaySet {
	if list, ok := v.([]any); ok {
		if len(list) == 0 {
			return map[int]WeekdaySet{}
		}
		v = list[0]
	}

	out := make(map[int]WeekdaySet)
	switch m := v.(type) {
	case map[string]any:
		for key, days := range m {
			week, err := strconv.Atoi(strings.TrimSpace(key))
			if err != nil || week < 1 {
				continue
			}
			if set := parseWeekdayList(days); !set.Empty() {
				out[week] = set
			}
		}
	case map[string][]int:
		for key, days := range m {
			week, err := strconv.Atoi(strings.TrimSpace(key))
			if err != nil || week < 1 {
				continue
			}
			set := make(WeekdaySet)
			for _, d := range days {
				if wd, ok := toWeekday(d); ok {
					set.Add(wd)
				}
			}
			if !set.Empty() {
				out[week] = set
			}
		}
	}
	return out
}

// parseWeekdayList coerces a loose list into a weekday set. Non-numeric and
// zero entries are dropped rather than rejected.
func parseWeekdayList(v any) WeekdaySet {
	set := make(WeekdaySet)
	switch list := v.(type) {
	case []any:
		for _, e := range list {
			if wd, ok := toWeekday(e); ok {
				set.Add(wd)
			}
		}
	case []int:
		for _, e := range list {
			if wd, ok := toWeekday(e); ok {
				set.Add(wd)
			}
		}
	case []float64:
		for _, e := range list {
			if wd, ok := toWeekday(e); ok {
				set.Add(wd)
			}
		}
	case []string:
		for _, e := range list {
			if wd, ok := toWeekday(e); ok {
				set.Add(wd)
			}
		}
	}
	return set
}

// toWeekday coerces one loose entry to an ISO weekday number (1..7).
func toWeekday(v any) (Weekday, bool) {
	var n int
	switch x := v.(type) {
	case int:
		n = x
	case float64:
		n = int(x)
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(x))
		if err != nil {
			return 0, false
		}
		n = parsed
	default:
		return 0, false
	}
	if n < int(Monday) || n > int(Sunday) {
		return 0, false
	}
	return Weekday(n), true
}
