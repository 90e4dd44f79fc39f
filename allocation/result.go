/*
Package allocation computes effort allocations over a date range.

PURPOSE:
  Given a responsible person's shift and a requested date range, produce
  the total effort hours and the per-date breakdown that gets persisted
  against a task. Two strategies exist:

  Standard:  The daily capacity is assigned uniformly to every working day
             in the range. Non-working days are omitted.

  Flexible:  Every day in the range becomes an editable slot; working days
             are seeded with the daily capacity and the caller may override
             individual days. The total is the sum of the current values.

  Both strategies are pure functions: the caller triggers recomputation on
  any input change (shift, range, mode, or one day's override) and stores
  the latest Result. Switching modes discards prior overrides.

FAILURE SEMANTICS:
  Malformed input degrades to a safe default (zero hours, empty breakdown)
  and never errors.

SEE ALSO:
  - schedule: Shift parsing, working-day predicate, daily capacity
*/
package allocation

import (
	"github.com/shopspring/decimal"

	"github.com/warp/effort-engine/schedule"
)

// Mode selects the allocation strategy.
type Mode string

const (
	ModeStandard Mode = "standard"
	ModeFlexible Mode = "flexible"
)

// ParseMode normalizes a mode string; anything unrecognized is standard.
func ParseMode(s string) Mode {
	if s == string(ModeFlexible) {
		return ModeFlexible
	}
	return ModeStandard
}

// DateHours is one per-date effort entry. Minutes is always zero; it is
// carried because the persisted task record stores hours and minutes
// side by side.
type DateHours struct {
	Date    schedule.CivilDate
	Hours   decimal.Decimal
	Minutes int
}

// Result is a complete allocation: the total and its date-wise breakdown.
// Created fresh on every recomputation; never persisted by this package.
type Result struct {
	TotalHours decimal.Decimal
	DateWise   []DateHours
}
