package schedule

import (
	"time"
)

// =============================================================================
// CIVIL DATE - Timezone-naive calendar date
// =============================================================================

// CivilDate is a calendar date with no time zone. Equality and ordering are
// by calendar value only; the underlying instant is pinned to UTC midnight
// so comparisons never cross a partial day.
type CivilDate struct {
	t time.Time
}

// Constructors
func NewDate(year int, month time.Month, day int) CivilDate {
	return CivilDate{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a "YYYY-MM-DD" string.
func ParseDate(s string) (CivilDate, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return CivilDate{}, err
	}
	return NewDate(t.Year(), t.Month(), t.Day()), nil
}

func Today() CivilDate {
	now := time.Now()
	return NewDate(now.Year(), now.Month(), now.Day())
}

// Comparison
func (d CivilDate) Before(other CivilDate) bool        { return d.t.Before(other.t) }
func (d CivilDate) Equal(other CivilDate) bool         { return d.t.Equal(other.t) }
func (d CivilDate) After(other CivilDate) bool         { return d.t.After(other.t) }
func (d CivilDate) BeforeOrEqual(other CivilDate) bool { return d.Before(other) || d.Equal(other) }
func (d CivilDate) AfterOrEqual(other CivilDate) bool  { return d.After(other) || d.Equal(other) }

// Arithmetic
func (d CivilDate) AddDays(n int) CivilDate { return CivilDate{t: d.t.AddDate(0, 0, n)} }

// Properties
func (d CivilDate) Year() int         { return d.t.Year() }
func (d CivilDate) Month() time.Month { return d.t.Month() }
func (d CivilDate) Day() int          { return d.t.Day() }
func (d CivilDate) IsZero() bool      { return d.t.IsZero() }

// Weekday returns the ISO weekday number: Monday=1 through Saturday=6,
// Sunday=7. Zero never appears.
func (d CivilDate) Weekday() Weekday {
	wd := int(d.t.Weekday())
	if wd == 0 {
		return Sunday
	}
	return Weekday(wd)
}

// WeekOfMonth returns the 1-based week-of-month counted in blocks of seven
// calendar days from the 1st, not aligned to weekday boundaries: day 8 is
// week 2 no matter which weekday it falls on.
func (d CivilDate) WeekOfMonth() int { return (d.Day()-1)/7 + 1 }

func (d CivilDate) String() string { return d.t.Format("2006-01-02") }

// =============================================================================
// WEEKDAY - ISO numbering
// =============================================================================

type Weekday int

const (
	Monday Weekday = iota + 1
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// WeekdaySet is a set of ISO weekday numbers.
type WeekdaySet map[Weekday]bool

func (s WeekdaySet) Has(w Weekday) bool { return s[w] }
func (s WeekdaySet) Add(w Weekday)      { s[w] = true }
func (s WeekdaySet) Empty() bool        { return len(s) == 0 }

// =============================================================================
// DATE RANGE
// =============================================================================

// DateRange is an inclusive [Start, End] pair of calendar dates.
type DateRange struct {
	Start CivilDate
	End   CivilDate
}

// Contains returns true if the date is within [Start, End].
func (r DateRange) Contains(d CivilDate) bool {
	return d.AfterOrEqual(r.Start) && d.BeforeOrEqual(r.End)
}

// Days returns every calendar day in the range, ascending. An inverted
// range yields nil.
func (r DateRange) Days() []CivilDate {
	var days []CivilDate
	for current := r.Start; current.BeforeOrEqual(r.End); current = current.AddDays(1) {
		days = append(days, current)
	}
	return days
}

func (r DateRange) String() string {
	return "[" + r.Start.String() + ", " + r.End.String() + "]"
}
