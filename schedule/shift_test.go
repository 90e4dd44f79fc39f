package schedule_test

import (
	"encoding/json"
	"testing"

	"github.com/warp/effort-engine/schedule"
)

// =============================================================================
// PARSER TESTS
// =============================================================================

func TestParseShift_NilRecord_ReturnsNil(t *testing.T) {
	if got := schedule.ParseShift(nil); got != nil {
		t.Errorf("expected nil for nil record, got %+v", got)
	}
}

func TestParseShift_NoDays_ReturnsNil(t *testing.T) {
	rec := &schedule.ShiftRecord{RoasterType: schedule.RoasterTypeWeekly}
	if got := schedule.ParseShift(rec); got != nil {
		t.Errorf("expected nil when no_of_days is absent, got %+v", got)
	}
}

func TestParseShift_WeeklyList(t *testing.T) {
	rec := &schedule.ShiftRecord{
		RoasterType: schedule.RoasterTypeWeekly,
		NoOfDays:    []int{1, 3, 5},
	}

	parsed := schedule.ParseShift(rec)
	if parsed == nil {
		t.Fatal("expected parsed shift")
	}
	if parsed.Kind != schedule.RosterWeekly {
		t.Errorf("expected weekly roster, got %v", parsed.Kind)
	}
	for _, wd := range []schedule.Weekday{schedule.Monday, schedule.Wednesday, schedule.Friday} {
		if !parsed.WorkingWeekdays.Has(wd) {
			t.Errorf("expected weekday %d in working set", wd)
		}
	}
	if parsed.WorkingWeekdays.Has(schedule.Tuesday) {
		t.Error("Tuesday should not be a working day")
	}
}

func TestParseShift_MissingRoasterType_DefaultsToWeekly(t *testing.T) {
	rec := &schedule.ShiftRecord{NoOfDays: []int{6, 7}}

	parsed := schedule.ParseShift(rec)
	if parsed == nil || parsed.Kind != schedule.RosterWeekly {
		t.Fatalf("expected weekly roster for absent roaster_type, got %+v", parsed)
	}
	if !parsed.WorkingWeekdays.Has(schedule.Saturday) || !parsed.WorkingWeekdays.Has(schedule.Sunday) {
		t.Error("expected weekend-only working set")
	}
}

func TestParseShift_DropsZeroAndNonNumericEntries(t *testing.T) {
	rec := &schedule.ShiftRecord{
		NoOfDays: []any{1.0, 0.0, "x", "3", 9.0, nil},
	}

	parsed := schedule.ParseShift(rec)
	if parsed == nil {
		t.Fatal("expected parsed shift")
	}
	if !parsed.WorkingWeekdays.Has(schedule.Monday) || !parsed.WorkingWeekdays.Has(schedule.Wednesday) {
		t.Error("numeric entries 1 and \"3\" should survive coercion")
	}
	if len(parsed.WorkingWeekdays) != 2 {
		t.Errorf("expected 2 working weekdays, got %d", len(parsed.WorkingWeekdays))
	}
}

func TestParseShift_RecurringMap(t *testing.T) {
	rec := &schedule.ShiftRecord{
		RoasterType: schedule.RoasterTypeRecurring,
		NoOfDays:    map[string][]int{"1": {1, 2, 3, 4, 5}, "3": {6}},
	}

	parsed := schedule.ParseShift(rec)
	if parsed == nil || parsed.Kind != schedule.RosterRecurring {
		t.Fatalf("expected recurring roster, got %+v", parsed)
	}
	if !parsed.WeekOfMonth[1].Has(schedule.Monday) {
		t.Error("week 1 should include Monday")
	}
	if !parsed.WeekOfMonth[3].Has(schedule.Saturday) {
		t.Error("week 3 should include Saturday")
	}
	if _, ok := parsed.WeekOfMonth[2]; ok {
		t.Error("week 2 should be absent")
	}
}

func TestParseShift_RecurringWrappedInList(t *testing.T) {
	// The wire payload sometimes wraps the week map in a one-element list.
	var rec schedule.ShiftRecord
	payload := `{
		"roaster_type": "Recurring",
		"no_of_days": [{"1": [1, 2], "bad": [3], "2": ["4", 0]}]
	}`
	if err := json.Unmarshal([]byte(payload), &rec); err != nil {
		t.Fatalf("unexpected unmarshal error: %v", err)
	}

	parsed := schedule.ParseShift(&rec)
	if parsed == nil || parsed.Kind != schedule.RosterRecurring {
		t.Fatalf("expected recurring roster, got %+v", parsed)
	}
	if !parsed.WeekOfMonth[1].Has(schedule.Monday) || !parsed.WeekOfMonth[1].Has(schedule.Tuesday) {
		t.Error("week 1 should include Monday and Tuesday")
	}
	if !parsed.WeekOfMonth[2].Has(schedule.Thursday) {
		t.Error("week 2 should include Thursday coerced from string")
	}
	if _, ok := parsed.WeekOfMonth[0]; ok {
		t.Error("non-numeric week keys should be dropped")
	}
}

func TestParseShift_WeeklyFromJSON(t *testing.T) {
	var rec schedule.ShiftRecord
	payload := `{"roaster_type": "Weekdays/Weekends", "no_of_days": [1, 2, 3, 4, 5]}`
	if err := json.Unmarshal([]byte(payload), &rec); err != nil {
		t.Fatalf("unexpected unmarshal error: %v", err)
	}

	parsed := schedule.ParseShift(&rec)
	if parsed == nil || parsed.Kind != schedule.RosterWeekly {
		t.Fatalf("expected weekly roster, got %+v", parsed)
	}
	if len(parsed.WorkingWeekdays) != 5 {
		t.Errorf("expected 5 working weekdays, got %d", len(parsed.WorkingWeekdays))
	}
}
