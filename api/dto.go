/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  JSON structures for API communication, decoupled from the domain types so
  fields can be renamed and validated without touching the engine.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

SEE ALSO:
  - handlers.go: Uses these types
  - schedule: ShiftRecord, the loose shift payload embedded in ShiftDTO
*/
package api

import (
	"time"

	"github.com/warp/effort-engine/allocation"
	"github.com/warp/effort-engine/schedule"
	"github.com/warp/effort-engine/store/sqlite"
)

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// ShiftDTO represents a stored shift record. The embedded ShiftRecord keeps
// the external wire shape (roaster_type, no_of_days, shift, user_shift).
type ShiftDTO struct {
	EntityID string `json:"entity_id"`
	schedule.ShiftRecord
	UpdatedAt string `json:"updated_at,omitempty"`
}

// SaveShiftRequest is the request to create or replace a shift record.
type SaveShiftRequest struct {
	EntityID string `json:"entity_id"`
	schedule.ShiftRecord
}

// ComputeAllocationRequest asks for an allocation preview. The shift comes
// either inline or from the stored record for entity_id; day_values are the
// flexible-mode overrides indexed by day offset.
type ComputeAllocationRequest struct {
	EntityID  string                `json:"entity_id,omitempty"`
	Shift     *schedule.ShiftRecord `json:"shift,omitempty"`
	StartDate string                `json:"start_date,omitempty"`
	EndDate   string                `json:"end_date,omitempty"`
	Mode      string                `json:"mode,omitempty"`
	DayValues []string              `json:"day_values,omitempty"`
}

// AllocationDTO is the computed allocation. Days is only populated in
// flexible mode: the editable per-day slots the caller renders.
type AllocationDTO struct {
	TotalHours float64          `json:"total_hours"`
	DateWise   []DateHoursDTO   `json:"date_wise"`
	Days       []FlexibleDayDTO `json:"days,omitempty"`
}

// DateHoursDTO is one per-date hour record as persisted against a task.
type DateHoursDTO struct {
	Date    string  `json:"date"`
	Hours   float64 `json:"hours"`
	Minutes int     `json:"minutes"`
}

// FlexibleDayDTO is one editable day slot in flexible mode.
type FlexibleDayDTO struct {
	Date    string `json:"date"`
	Working bool   `json:"working"`
	Value   string `json:"value,omitempty"`
}

// CreateTaskRequest creates a task; the allocation is computed server-side
// from the responsible person's stored shift.
type CreateTaskRequest struct {
	Name      string   `json:"name"`
	EntityID  string   `json:"entity_id"`
	StartDate string   `json:"start_date,omitempty"`
	EndDate   string   `json:"end_date,omitempty"`
	Mode      string   `json:"mode,omitempty"`
	DayValues []string `json:"day_values,omitempty"`
}

// TaskDTO represents a task with its persisted allocation.
type TaskDTO struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	EntityID      string         `json:"entity_id"`
	StartDate     string         `json:"start_date,omitempty"`
	EndDate       string         `json:"end_date,omitempty"`
	Mode          string         `json:"mode"`
	EstimatedHour float64        `json:"estimated_hour"`
	DateWise      []DateHoursDTO `json:"date_wise,omitempty"`
	CreatedAt     string         `json:"created_at,omitempty"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func toAllocationDTO(result allocation.Result) AllocationDTO {
	total, _ := result.TotalHours.Float64()
	dto := AllocationDTO{
		TotalHours: total,
		DateWise:   make([]DateHoursDTO, len(result.DateWise)),
	}
	for i, dh := range result.DateWise {
		dto.DateWise[i] = toDateHoursDTO(dh)
	}
	return dto
}

func toDateHoursDTO(dh allocation.DateHours) DateHoursDTO {
	hours, _ := dh.Hours.Float64()
	return DateHoursDTO{
		Date:    dh.Date.String(),
		Hours:   hours,
		Minutes: dh.Minutes,
	}
}

func toFlexibleDayDTOs(days []allocation.FlexibleDay) []FlexibleDayDTO {
	dtos := make([]FlexibleDayDTO, len(days))
	for i, d := range days {
		dtos[i] = FlexibleDayDTO{Date: d.Date.String(), Working: d.Working, Value: d.Value}
	}
	return dtos
}

func toShiftDTO(shift sqlite.UserShift) ShiftDTO {
	return ShiftDTO{
		EntityID:    shift.EntityID,
		ShiftRecord: shift.Record,
		UpdatedAt:   shift.UpdatedAt.Format(time.RFC3339),
	}
}

func toTaskDTO(task sqlite.Task, effort []sqlite.EffortEntry) TaskDTO {
	estimated, _ := task.EstimatedHour.Float64()
	dto := TaskDTO{
		ID:            task.ID,
		Name:          task.Name,
		EntityID:      task.EntityID,
		StartDate:     task.StartDate,
		EndDate:       task.EndDate,
		Mode:          task.Mode,
		EstimatedHour: estimated,
		CreatedAt:     task.CreatedAt.Format(time.RFC3339),
	}
	for _, e := range effort {
		hours, _ := e.Hours.Float64()
		dto.DateWise = append(dto.DateWise, DateHoursDTO{Date: e.Date, Hours: hours, Minutes: e.Minutes})
	}
	return dto
}
