package sqlite_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/effort-engine/schedule"
	"github.com/warp/effort-engine/store/sqlite"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestStore(t *testing.T) *sqlite.Store {
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func intp(n int) *int { return &n }

// =============================================================================
// SHIFT PERSISTENCE TESTS
// =============================================================================

func TestStore_ShiftRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	err := store.SaveShift(ctx, sqlite.UserShift{
		EntityID: "emp-1",
		Record: schedule.ShiftRecord{
			RoasterType: schedule.RoasterTypeRecurring,
			NoOfDays:    map[string][]int{"1": {1, 2, 3}},
			Shift:       "09:00 AM to 06:00 PM",
			UserShift: &schedule.BreakWindow{
				BreakStartHour: intp(13), BreakStartMin: intp(0),
				BreakEndHour: intp(14), BreakEndMin: intp(0),
			},
		},
	})
	require.NoError(t, err)

	loaded, err := store.GetShift(ctx, "emp-1")
	require.NoError(t, err)
	require.NotNil(t, loaded)

	assert.Equal(t, schedule.RoasterTypeRecurring, loaded.Record.RoasterType)
	assert.Equal(t, "09:00 AM to 06:00 PM", loaded.Record.Shift)
	require.NotNil(t, loaded.Record.UserShift)
	assert.Equal(t, 13, *loaded.Record.UserShift.BreakStartHour)
	assert.Equal(t, 14, *loaded.Record.UserShift.BreakEndHour)

	// The loosely-typed day field must still parse after the JSON round trip.
	parsed := schedule.ParseShift(&loaded.Record)
	require.NotNil(t, parsed)
	assert.Equal(t, schedule.RosterRecurring, parsed.Kind)
	assert.True(t, parsed.WeekOfMonth[1].Has(schedule.Monday))
}

func TestStore_GetShift_MissingReturnsNil(t *testing.T) {
	store := newTestStore(t)

	shift, err := store.GetShift(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Nil(t, shift)
}

func TestStore_SaveShift_UpsertsExisting(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveShift(ctx, sqlite.UserShift{
		EntityID: "emp-1",
		Record:   schedule.ShiftRecord{Shift: "09:00 AM to 05:00 PM"},
	}))
	require.NoError(t, store.SaveShift(ctx, sqlite.UserShift{
		EntityID: "emp-1",
		Record:   schedule.ShiftRecord{Shift: "10:00 AM to 04:00 PM"},
	}))

	loaded, err := store.GetShift(ctx, "emp-1")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "10:00 AM to 04:00 PM", loaded.Record.Shift)

	shifts, err := store.ListShifts(ctx)
	require.NoError(t, err)
	assert.Len(t, shifts, 1)
}

func TestStore_DeleteShift(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveShift(ctx, sqlite.UserShift{EntityID: "emp-1"}))
	require.NoError(t, store.DeleteShift(ctx, "emp-1"))

	loaded, err := store.GetShift(ctx, "emp-1")
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

// =============================================================================
// TASK PERSISTENCE TESTS
// =============================================================================

func TestStore_TaskRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	task := sqlite.Task{
		ID:            "task-1",
		Name:          "Deep clean kitchen",
		EntityID:      "emp-1",
		StartDate:     "2024-01-01",
		EndDate:       "2024-01-03",
		Mode:          "flexible",
		EstimatedHour: decimal.NewFromFloat(20.5),
	}
	effort := []sqlite.EffortEntry{
		{Date: "2024-01-01", Hours: decimal.NewFromInt(8)},
		{Date: "2024-01-02", Hours: decimal.NewFromFloat(4.5)},
		{Date: "2024-01-03", Hours: decimal.NewFromInt(8)},
	}
	require.NoError(t, store.SaveTask(ctx, task, effort))

	loaded, rows, err := store.GetTask(ctx, "task-1")
	require.NoError(t, err)
	require.NotNil(t, loaded)

	assert.Equal(t, "Deep clean kitchen", loaded.Name)
	assert.Equal(t, "flexible", loaded.Mode)
	assert.True(t, loaded.EstimatedHour.Equal(decimal.NewFromFloat(20.5)),
		"estimated hours should survive the decimal round trip, got %v", loaded.EstimatedHour)

	require.Len(t, rows, 3)
	assert.Equal(t, "2024-01-02", rows[1].Date)
	assert.True(t, rows[1].Hours.Equal(decimal.NewFromFloat(4.5)))
	assert.Equal(t, 0, rows[1].Minutes)
}

func TestStore_GetTask_MissingReturnsNil(t *testing.T) {
	store := newTestStore(t)

	task, rows, err := store.GetTask(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, task)
	assert.Nil(t, rows)
}

func TestStore_DeleteTask_CascadesEffortRows(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	task := sqlite.Task{ID: "task-1", Name: "n", EntityID: "e", Mode: "standard",
		EstimatedHour: decimal.NewFromInt(8)}
	require.NoError(t, store.SaveTask(ctx, task, []sqlite.EffortEntry{
		{Date: "2024-01-01", Hours: decimal.NewFromInt(8)},
	}))

	require.NoError(t, store.DeleteTask(ctx, "task-1"))

	loaded, rows, err := store.GetTask(ctx, "task-1")
	require.NoError(t, err)
	assert.Nil(t, loaded)
	assert.Empty(t, rows)
}

func TestStore_ListTasks(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"task-1", "task-2"} {
		require.NoError(t, store.SaveTask(ctx, sqlite.Task{
			ID: id, Name: id, EntityID: "emp-1", Mode: "standard",
			EstimatedHour: decimal.NewFromInt(8),
		}, nil))
	}

	tasks, err := store.ListTasks(ctx)
	require.NoError(t, err)
	assert.Len(t, tasks, 2)
}
