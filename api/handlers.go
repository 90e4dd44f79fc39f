/*
handlers.go - HTTP handlers for the effort-allocation service

PURPOSE:
  Exposes the allocation engine via REST. Handlers parse JSON, resolve the
  responsible person's shift (inline or from the store), delegate to the
  schedule/allocation packages, and serialize results.

ENDPOINTS:
  Allocations:
    POST   /api/allocations/compute  Preview an allocation for a range

  Shifts:
    GET    /api/shifts               List stored shift records
    POST   /api/shifts               Create/replace a shift record
    GET    /api/shifts/{entityID}    Get one shift record
    DELETE /api/shifts/{entityID}    Remove a shift record

  Tasks:
    GET    /api/tasks                List tasks
    POST   /api/tasks                Create a task (allocation computed and
                                     persisted server-side)
    GET    /api/tasks/{id}           Get a task with its date-wise hours
    DELETE /api/tasks/{id}           Delete a task

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Invalid input (bad dates, missing fields)
  - 404: Resource not found
  - 500: Internal errors

  Malformed shift data is NOT an error: the engine degrades to its defaults
  (Monday-Friday, 8-hour day), matching the upstream contract.

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/warp/effort-engine/allocation"
	"github.com/warp/effort-engine/schedule"
	"github.com/warp/effort-engine/store/sqlite"
)

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store *sqlite.Store
}

// NewHandler creates a new handler with the given store.
func NewHandler(store *sqlite.Store) *Handler {
	return &Handler{Store: store}
}

// =============================================================================
// ALLOCATION HANDLERS
// =============================================================================

// ComputeAllocation previews an allocation for a shift and date range.
func (h *Handler) ComputeAllocation(w http.ResponseWriter, r *http.Request) {
	var req ComputeAllocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	start, err := parseOptionalDate(req.StartDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid start_date (use YYYY-MM-DD)", err)
		return
	}
	end, err := parseOptionalDate(req.EndDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid end_date (use YYYY-MM-DD)", err)
		return
	}

	rec, err := h.resolveShift(r.Context(), req.Shift, req.EntityID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load shift", err)
		return
	}

	dto := computeAllocation(allocation.ParseMode(req.Mode), start, end, rec, req.DayValues)
	writeJSON(w, http.StatusOK, dto)
}

func computeAllocation(mode allocation.Mode, start, end *schedule.CivilDate, rec *schedule.ShiftRecord, overrides []string) AllocationDTO {
	if mode == allocation.ModeFlexible {
		dto := toAllocationDTO(allocation.Flexible(start, end, rec, overrides))
		dto.Days = toFlexibleDayDTOs(allocation.SeedFlexible(start, end, rec))
		return dto
	}
	return toAllocationDTO(allocation.Standard(start, end, rec))
}

// resolveShift prefers an inline shift record; otherwise it falls back to
// the stored record for the entity. A missing record resolves to nil, which
// the engine treats as the default schedule.
func (h *Handler) resolveShift(ctx context.Context, inline *schedule.ShiftRecord, entityID string) (*schedule.ShiftRecord, error) {
	if inline != nil {
		return inline, nil
	}
	if entityID == "" {
		return nil, nil
	}
	stored, err := h.Store.GetShift(ctx, entityID)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, nil
	}
	return &stored.Record, nil
}

// =============================================================================
// SHIFT HANDLERS
// =============================================================================

// ListShifts returns all stored shift records.
func (h *Handler) ListShifts(w http.ResponseWriter, r *http.Request) {
	shifts, err := h.Store.ListShifts(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list shifts", err)
		return
	}

	dtos := make([]ShiftDTO, len(shifts))
	for i, s := range shifts {
		dtos[i] = toShiftDTO(s)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetShift returns one shift record.
func (h *Handler) GetShift(w http.ResponseWriter, r *http.Request) {
	entityID := chi.URLParam(r, "entityID")

	shift, err := h.Store.GetShift(r.Context(), entityID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get shift", err)
		return
	}
	if shift == nil {
		writeError(w, http.StatusNotFound, "Shift not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, toShiftDTO(*shift))
}

// SaveShift creates or replaces the shift record for an entity.
func (h *Handler) SaveShift(w http.ResponseWriter, r *http.Request) {
	var req SaveShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.EntityID == "" {
		writeError(w, http.StatusBadRequest, "entity_id is required", nil)
		return
	}

	shift := sqlite.UserShift{EntityID: req.EntityID, Record: req.ShiftRecord}
	if err := h.Store.SaveShift(r.Context(), shift); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save shift", err)
		return
	}
	writeJSON(w, http.StatusCreated, toShiftDTO(shift))
}

// DeleteShift removes the shift record for an entity.
func (h *Handler) DeleteShift(w http.ResponseWriter, r *http.Request) {
	entityID := chi.URLParam(r, "entityID")

	if err := h.Store.DeleteShift(r.Context(), entityID); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete shift", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": entityID})
}

// =============================================================================
// TASK HANDLERS
// =============================================================================

// CreateTask computes the allocation for the requested range against the
// responsible person's stored shift, then persists the task with its
// estimated_hour total and date-wise rows.
func (h *Handler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Name == "" || req.EntityID == "" {
		writeError(w, http.StatusBadRequest, "name and entity_id are required", nil)
		return
	}

	start, err := parseOptionalDate(req.StartDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid start_date (use YYYY-MM-DD)", err)
		return
	}
	end, err := parseOptionalDate(req.EndDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid end_date (use YYYY-MM-DD)", err)
		return
	}

	rec, err := h.resolveShift(r.Context(), nil, req.EntityID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load shift", err)
		return
	}

	mode := allocation.ParseMode(req.Mode)
	var result allocation.Result
	if mode == allocation.ModeFlexible {
		result = allocation.Flexible(start, end, rec, req.DayValues)
	} else {
		result = allocation.Standard(start, end, rec)
	}

	task := sqlite.Task{
		ID:            fmt.Sprintf("task-%d", time.Now().UnixNano()),
		Name:          req.Name,
		EntityID:      req.EntityID,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		Mode:          string(mode),
		EstimatedHour: result.TotalHours,
	}
	effort := make([]sqlite.EffortEntry, len(result.DateWise))
	for i, dh := range result.DateWise {
		effort[i] = sqlite.EffortEntry{Date: dh.Date.String(), Hours: dh.Hours, Minutes: dh.Minutes}
	}

	if err := h.Store.SaveTask(r.Context(), task, effort); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create task", err)
		return
	}
	task.CreatedAt = time.Now().UTC()
	writeJSON(w, http.StatusCreated, toTaskDTO(task, effort))
}

// ListTasks returns all tasks (without their date-wise rows).
func (h *Handler) ListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.Store.ListTasks(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list tasks", err)
		return
	}

	dtos := make([]TaskDTO, len(tasks))
	for i, t := range tasks {
		dtos[i] = toTaskDTO(t, nil)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetTask returns a task with its date-wise hours.
func (h *Handler) GetTask(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	task, effort, err := h.Store.GetTask(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get task", err)
		return
	}
	if task == nil {
		writeError(w, http.StatusNotFound, "Task not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, toTaskDTO(*task, effort))
}

// DeleteTask removes a task and its effort rows.
func (h *Handler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.Store.DeleteTask(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete task", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": id})
}

// =============================================================================
// HELPERS
// =============================================================================

func parseOptionalDate(s string) (*schedule.CivilDate, error) {
	if s == "" {
		return nil, nil
	}
	d, err := schedule.ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
