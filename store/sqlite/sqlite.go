/*
Package sqlite provides SQLite-backed persistence for shifts and tasks.

PURPOSE:
  Stores the per-person shift records consumed by the allocation engine and
  the tasks the engine's results are persisted against. A task carries its
  estimated hours plus one effort row per allocated date; the task and its
  effort rows are written atomically.

KEY TABLES:
  user_shifts:  One shift record per responsible person
  tasks:        Task records with estimated_hour totals
  task_effort:  Date-wise hour rows belonging to a task

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging): multiple readers don't
  block and crash recovery is cleaner.

USAGE:
  store, err := sqlite.New("./data/effort.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

SEE ALSO:
  - schedule: ShiftRecord shape persisted here
  - api/handlers.go: Callers of this store
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/warp/effort-engine/schedule"
)

// Store implements persistence for shifts and tasks using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Shift record per responsible person
	CREATE TABLE IF NOT EXISTS user_shifts (
		entity_id TEXT PRIMARY KEY,
		roaster_type TEXT,
		no_of_days_json TEXT,
		shift TEXT,
		break_start_hour INTEGER,
		break_start_min INTEGER,
		break_end_hour INTEGER,
		break_end_min INTEGER,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	-- Tasks with their allocation totals
	CREATE TABLE IF NOT EXISTS tasks (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		entity_id TEXT NOT NULL,
		start_date TEXT,
		end_date TEXT,
		mode TEXT NOT NULL,
		estimated_hour TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_tasks_entity
		ON tasks(entity_id);

	-- Date-wise effort rows, one per allocated date
	CREATE TABLE IF NOT EXISTS task_effort (
		task_id TEXT NOT NULL,
		date TEXT NOT NULL,
		hours TEXT NOT NULL,
		minutes INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (task_id, date),
		FOREIGN KEY (task_id) REFERENCES tasks(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_task_effort_date
		ON task_effort(date);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// SHIFT RECORDS
// =============================================================================

// UserShift is a persisted shift row for one responsible person.
type UserShift struct {
	EntityID  string
	Record    schedule.ShiftRecord
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SaveShift inserts or replaces the shift record for an entity.
func (s *Store) SaveShift(ctx context.Context, shift UserShift) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var daysJSON sql.NullString
	if shift.Record.NoOfDays != nil {
		raw, err := json.Marshal(shift.Record.NoOfDays)
		if err != nil {
			return fmt.Errorf("failed to encode no_of_days: %w", err)
		}
		daysJSON = sql.NullString{String: string(raw), Valid: true}
	}

	var bsh, bsm, beh, bem sql.NullInt64
	if bw := shift.Record.UserShift; bw != nil {
		bsh = nullInt(bw.BreakStartHour)
		bsm = nullInt(bw.BreakStartMin)
		beh = nullInt(bw.BreakEndHour)
		bem = nullInt(bw.BreakEndMin)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO user_shifts
			(entity_id, roaster_type, no_of_days_json, shift,
			 break_start_hour, break_start_min, break_end_hour, break_end_min,
			 created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(entity_id) DO UPDATE SET
			roaster_type = excluded.roaster_type,
			no_of_days_json = excluded.no_of_days_json,
			shift = excluded.shift,
			break_start_hour = excluded.break_start_hour,
			break_start_min = excluded.break_start_min,
			break_end_hour = excluded.break_end_hour,
			break_end_min = excluded.break_end_min,
			updated_at = excluded.updated_at`,
		shift.EntityID, shift.Record.RoasterType, daysJSON, shift.Record.Shift,
		bsh, bsm, beh, bem, now, now)
	if err != nil {
		return fmt.Errorf("failed to save shift: %w", err)
	}
	return nil
}

// GetShift returns the shift record for an entity, or nil when none exists.
func (s *Store) GetShift(ctx context.Context, entityID string) (*UserShift, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT entity_id, roaster_type, no_of_days_json, shift,
		       break_start_hour, break_start_min, break_end_hour, break_end_min,
		       created_at, updated_at
		FROM user_shifts WHERE entity_id = ?`, entityID)

	shift, err := scanShift(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get shift: %w", err)
	}
	return shift, nil
}

// ListShifts returns all stored shift records.
func (s *Store) ListShifts(ctx context.Context) ([]UserShift, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT entity_id, roaster_type, no_of_days_json, shift,
		       break_start_hour, break_start_min, break_end_hour, break_end_min,
		       created_at, updated_at
		FROM user_shifts ORDER BY entity_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}
	defer rows.Close()

	var shifts []UserShift
	for rows.Next() {
		shift, err := scanShift(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		shifts = append(shifts, *shift)
	}
	return shifts, rows.Err()
}

// DeleteShift removes the shift record for an entity.
func (s *Store) DeleteShift(ctx context.Context, entityID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `DELETE FROM user_shifts WHERE entity_id = ?`, entityID)
	if err != nil {
		return fmt.Errorf("failed to delete shift: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanShift(row rowScanner) (*UserShift, error) {
	var (
		shift              UserShift
		roasterType        sql.NullString
		daysJSON           sql.NullString
		clock              sql.NullString
		bsh, bsm, beh, bem sql.NullInt64
		createdAt          string
		updatedAt          string
	)
	err := row.Scan(&shift.EntityID, &roasterType, &daysJSON, &clock,
		&bsh, &bsm, &beh, &bem, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	shift.Record.RoasterType = roasterType.String
	shift.Record.Shift = clock.String
	if daysJSON.Valid && daysJSON.String != "" {
		var days any
		if err := json.Unmarshal([]byte(daysJSON.String), &days); err == nil {
			shift.Record.NoOfDays = days
		}
	}
	if bsh.Valid || bsm.Valid || beh.Valid || bem.Valid {
		shift.Record.UserShift = &schedule.BreakWindow{
			BreakStartHour: intPtr(bsh),
			BreakStartMin:  intPtr(bsm),
			BreakEndHour:   intPtr(beh),
			BreakEndMin:    intPtr(bem),
		}
	}
	shift.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	shift.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &shift, nil
}

// =============================================================================
// TASKS
// =============================================================================

// Task is a persisted task record carrying its allocation total.
type Task struct {
	ID            string
	Name          string
	EntityID      string // responsible person
	StartDate     string // "YYYY-MM-DD", empty for an open bound
	EndDate       string
	Mode          string
	EstimatedHour decimal.Decimal
	CreatedAt     time.Time
}

// EffortEntry is one persisted date-wise hour row of a task.
type EffortEntry struct {
	Date    string
	Hours   decimal.Decimal
	Minutes int
}

// SaveTask persists a task and its effort rows atomically.
func (s *Store) SaveTask(ctx context.Context, task Task, effort []EffortEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO tasks (id, name, entity_id, start_date, end_date, mode, estimated_hour, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		task.ID, task.Name, task.EntityID, task.StartDate, task.EndDate,
		task.Mode, task.EstimatedHour.String(), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to insert task: %w", err)
	}

	for _, e := range effort {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO task_effort (task_id, date, hours, minutes)
			VALUES (?, ?, ?, ?)`,
			task.ID, e.Date, e.Hours.String(), e.Minutes)
		if err != nil {
			return fmt.Errorf("failed to insert effort row: %w", err)
		}
	}

	return tx.Commit()
}

// GetTask returns a task and its effort rows, or nil when none exists.
func (s *Store) GetTask(ctx context.Context, id string) (*Task, []EffortEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, entity_id, start_date, end_date, mode, estimated_hour, created_at
		FROM tasks WHERE id = ?`, id)

	task, err := scanTask(row)
	if err == sql.ErrNoRows {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get task: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT date, hours, minutes FROM task_effort
		WHERE task_id = ? ORDER BY date`, id)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load effort rows: %w", err)
	}
	defer rows.Close()

	var effort []EffortEntry
	for rows.Next() {
		var e EffortEntry
		var hours string
		if err := rows.Scan(&e.Date, &hours, &e.Minutes); err != nil {
			return nil, nil, fmt.Errorf("failed to scan effort row: %w", err)
		}
		e.Hours = parseDecimal(hours)
		effort = append(effort, e)
	}
	return task, effort, rows.Err()
}

// ListTasks returns all tasks, newest first.
func (s *Store) ListTasks(ctx context.Context) ([]Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, entity_id, start_date, end_date, mode, estimated_hour, created_at
		FROM tasks ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, *task)
	}
	return tasks, rows.Err()
}

// DeleteTask removes a task; its effort rows cascade.
func (s *Store) DeleteTask(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

func scanTask(row rowScanner) (*Task, error) {
	var (
		task      Task
		start     sql.NullString
		end       sql.NullString
		estimated string
		createdAt string
	)
	err := row.Scan(&task.ID, &task.Name, &task.EntityID, &start, &end,
		&task.Mode, &estimated, &createdAt)
	if err != nil {
		return nil, err
	}
	task.StartDate = start.String
	task.EndDate = end.String
	task.EstimatedHour = parseDecimal(estimated)
	task.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &task, nil
}

// =============================================================================
// HELPERS
// =============================================================================

func parseDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func nullInt(p *int) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*p), Valid: true}
}

func intPtr(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}
