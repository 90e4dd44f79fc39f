package schedule

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// =============================================================================
// DAILY CAPACITY - Working hours available on one working day
// =============================================================================

// DefaultHoursPerDay is assumed whenever a shift has no parseable clock
// window: an eight-hour day.
var DefaultHoursPerDay = decimal.NewFromInt(8)

// defaultBreak is the conventional one-hour break, applied when a break
// window exists but carries no usable times.
var defaultBreak = decimal.NewFromInt(1)

// HoursPerDay derives the decimal working hours on a working day from the
// shift's clock window ("09:00 AM to 06:00 PM") minus its break. The value
// is constant across a date range: shift hours do not vary day to day in
// this model. Malformed input degrades to the 8-hour default.
func HoursPerDay(rec *ShiftRecord) decimal.Decimal {
	if rec == nil || rec.Shift == "" {
		return DefaultHoursPerDay
	}

	parts := strings.Split(rec.Shift, " to ")
	if len(parts) != 2 {
		return DefaultHoursPerDay
	}
	start, ok := parseClock(parts[0])
	if !ok {
		return DefaultHoursPerDay
	}
	end, ok := parseClock(parts[1])
	if !ok {
		return DefaultHoursPerDay
	}

	length := end.Sub(start)
	if length.IsNegative() {
		length = decimal.Zero
	}

	hours := length.Sub(breakHours(rec.UserShift, length))
	if hours.IsNegative() {
		return decimal.Zero
	}
	return hours
}

// breakHours resolves the break duration, clamped to [0, shiftLength].
// No break window at all means no break; a window with missing hour fields
// keeps the conventional one-hour break.
func breakHours(bw *BreakWindow, shiftLength decimal.Decimal) decimal.Decimal {
	if bw == nil {
		return decimal.Zero
	}
	if bw.BreakStartHour == nil || bw.BreakEndHour == nil {
		return clamp(defaultBreak, shiftLength)
	}
	start := clockHours(*bw.BreakStartHour, intOrZero(bw.BreakStartMin))
	end := clockHours(*bw.BreakEndHour, intOrZero(bw.BreakEndMin))
	return clamp(end.Sub(start), shiftLength)
}

// parseClock converts a 12-hour "HH:MM AM|PM" endpoint to decimal hours
// since midnight. PM adds 12 except for 12 PM; 12 AM maps to 0.
func parseClock(s string) (decimal.Decimal, bool) {
	fields := strings.Fields(strings.TrimSpace(s))
	if len(fields) != 2 {
		return decimal.Zero, false
	}

	hm := strings.Split(fields[0], ":")
	if len(hm) != 2 {
		return decimal.Zero, false
	}
	hour, err := strconv.Atoi(hm[0])
	if err != nil {
		return decimal.Zero, false
	}
	min, err := strconv.Atoi(hm[1])
	if err != nil {
		return decimal.Zero, false
	}

	switch strings.ToUpper(fields[1]) {
	case "AM":
		if hour == 12 {
			hour = 0
		}
	case "PM":
		if hour != 12 {
			hour += 12
		}
	default:
		return decimal.Zero, false
	}

	return clockHours(hour, min), true
}

func clockHours(hour, min int) decimal.Decimal {
	return decimal.NewFromInt(int64(hour)).
		Add(decimal.NewFromInt(int64(min)).Div(decimal.NewFromInt(60)))
}

func clamp(d, max decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	if d.GreaterThan(max) {
		return max
	}
	return d
}

func intOrZero(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
