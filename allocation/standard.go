package allocation

import (
	"github.com/shopspring/decimal"

	"github.com/warp/effort-engine/schedule"
)

// Standard distributes the daily capacity evenly across the working days of
// the range. Bounds are optional:
//
//   - both present: total = workingDayCount * hoursPerDay, one DateWise
//     entry per working day (non-working days omitted, not zero-filled)
//   - one present:  total = hoursPerDay (single-day default), no breakdown
//   - neither:      zero
//
// A caller-triggered "reset to default" is the same computation run again
// with the current inputs.
func Standard(start, end *schedule.CivilDate, rec *schedule.ShiftRecord) Result {
	hoursPerDay := schedule.HoursPerDay(rec)

	switch {
	case start != nil && end != nil:
		parsed := schedule.ParseShift(rec)
		result := Result{TotalHours: decimal.Zero}
		for _, day := range schedule.EnumerateDays(*start, *end, parsed) {
			if !day.Working {
				continue
			}
			result.DateWise = append(result.DateWise, DateHours{Date: day.Date, Hours: hoursPerDay})
			result.TotalHours = result.TotalHours.Add(hoursPerDay)
		}
		return result

	case start != nil || end != nil:
		return Result{TotalHours: hoursPerDay}

	default:
		return Result{TotalHours: decimal.Zero}
	}
}
