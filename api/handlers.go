/*
handlers.go - HTTP API handlers for the HR engine

PURPOSE:
  Exposes the employee directory, time-off workflow, leave timeline, and
  notification tooling via REST API. Handles HTTP request/response, JSON
  serialization, and delegates to domain logic.

ENDPOINTS:
  Employees:
    GET    /api/employees                    List all employees
    POST   /api/employees                    Create employee
    GET    /api/employees/{id}               Get employee details
    PUT    /api/employees/{id}               Update employee
    DELETE /api/employees/{id}               Delete employee and requests
    POST   /api/employees/{id}/avatar        Upload avatar image
    GET    /api/employees/{id}/leave-summary Leave usage for a year
    GET    /api/employees/{id}/requests      Requests for one employee

  Requests:
    GET    /api/requests                     List requests (status filter)
    POST   /api/requests                     Submit time-off request
    POST   /api/requests/{id}/approve        Approve pending request
    POST   /api/requests/{id}/reject         Reject pending request
    DELETE /api/requests/{id}                Delete a request

  Timeline:
    GET    /api/timeline?month=YYYY-MM       Month grid of approved leave

  Notifications:
    POST   /api/notifications/run            Run today's congratulation cycle
    GET    /api/notifications?date=          Attempts recorded for a day

  Invitations:
    GET    /api/invitations                  List sent invitations
    POST   /api/invitations                  Create and email an invitation

  Email:
    POST   /api/email/test                   Send a test email

  Calendar:
    GET    /api/calendar.ics                 iCalendar feed

  Admin:
    POST   /api/admin/reset                  Database reset (dev only)

ARCHITECTURE:
  Handler struct holds all dependencies:
  - Store:     Database access
  - Mailer:    Outbound email (fake in tests)
  - AvatarDir: Local directory for uploaded avatar images
  - SiteURL:   Base URL embedded in invitation links

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 404: Resource not found
  - 409: Conflict (request already decided)
  - 500: Internal errors

SECURITY NOTE:
  Currently NO authentication or authorization. All endpoints are public.

SEE ALSO:
  - dto.go: Request/response data structures
  - scheduler.go: Background notification cycle
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pixup/hr-engine/calendar"
	"github.com/pixup/hr-engine/directory"
	"github.com/pixup/hr-engine/mailer"
	"github.com/pixup/hr-engine/schedule"
	"github.com/pixup/hr-engine/store/sqlite"
)

// maxAvatarBytes caps avatar uploads at 5 MiB.
const maxAvatarBytes = 5 << 20

// avatarExtensions maps accepted upload content types to file extensions.
var avatarExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store     *sqlite.Store
	Mailer    mailer.Sender
	AvatarDir string
	SiteURL   string
}

// NewHandler creates a new handler with the given store and mailer.
func NewHandler(store *sqlite.Store, sender mailer.Sender, avatarDir string) *Handler {
	return &Handler{
		Store:     store,
		Mailer:    sender,
		AvatarDir: avatarDir,
		SiteURL:   "http://localhost:8080",
	}
}

// =============================================================================
// EMPLOYEE HANDLERS
// =============================================================================

// ListEmployees returns all employees ordered by name.
func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Store.ListEmployees(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list employees", err)
		return
	}

	dtos := make([]EmployeeDTO, len(employees))
	for i, e := range employees {
		dtos[i] = toEmployeeDTO(e)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetEmployee returns a single employee.
func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	emp, err := h.Store.GetEmployee(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get employee", err)
		return
	}
	if emp == nil {
		writeError(w, http.StatusNotFound, "Employee not found", nil)
		return
	}

	writeJSON(w, http.StatusOK, toEmployeeDTO(*emp))
}

// CreateEmployee creates a new employee.
func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req SaveEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	emp, err := employeeFromRequest(uuid.NewString(), req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}
	emp.CreatedAt = time.Now().UTC()

	if err := h.Store.SaveEmployee(r.Context(), emp); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create employee", err)
		return
	}

	writeJSON(w, http.StatusCreated, toEmployeeDTO(emp))
}

// UpdateEmployee replaces an employee's profile fields. The avatar and
// creation timestamp are preserved.
func (h *Handler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	existing, err := h.Store.GetEmployee(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get employee", err)
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "Employee not found", nil)
		return
	}

	var req SaveEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	emp, err := employeeFromRequest(id, req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}
	emp.AvatarURL = existing.AvatarURL
	emp.CreatedAt = existing.CreatedAt

	if err := h.Store.SaveEmployee(r.Context(), emp); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update employee", err)
		return
	}

	writeJSON(w, http.StatusOK, toEmployeeDTO(emp))
}

// DeleteEmployee removes an employee and their requests.
func (h *Handler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	err := h.Store.DeleteEmployee(r.Context(), id)
	if errors.Is(err, directory.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Employee not found", nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete employee", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func employeeFromRequest(id string, req SaveEmployeeRequest) (directory.Employee, error) {
	if req.FirstName == "" || req.LastName == "" {
		return directory.Employee{}, fmt.Errorf("first_name and last_name are required")
	}
	if req.Email != "" && !mailer.ValidAddress(req.Email) {
		return directory.Employee{}, fmt.Errorf("invalid email address")
	}

	emp := directory.Employee{
		ID:        id,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Position:  req.Position,
	}

	var err error
	if req.JobEntryDate != "" {
		if emp.JobEntryDate, err = schedule.ParseDate(req.JobEntryDate); err != nil {
			return directory.Employee{}, fmt.Errorf("invalid job_entry_date (use YYYY-MM-DD)")
		}
	}
	if req.Birthday != "" {
		if emp.Birthday, err = schedule.ParseDate(req.Birthday); err != nil {
			return directory.Employee{}, fmt.Errorf("invalid birthday (use YYYY-MM-DD)")
		}
	}
	return emp, nil
}

// =============================================================================
// AVATAR UPLOAD
// =============================================================================

// UploadAvatar accepts a multipart image upload, stores it under the
// avatar directory with a random filename, and records the public URL.
// POST /api/employees/{id}/avatar
func (h *Handler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ctx := r.Context()

	emp, err := h.Store.GetEmployee(ctx, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get employee", err)
		return
	}
	if emp == nil {
		writeError(w, http.StatusNotFound, "Employee not found", nil)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxAvatarBytes)
	file, header, err := r.FormFile("avatar")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Missing avatar file", err)
		return
	}
	defer file.Close()

	ext, ok := avatarExtensions[header.Header.Get("Content-Type")]
	if !ok {
		writeError(w, http.StatusBadRequest, "Unsupported image type (use JPEG, PNG, GIF, or WebP)", nil)
		return
	}

	if err := os.MkdirAll(h.AvatarDir, 0o755); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to prepare avatar directory", err)
		return
	}

	filename := uuid.NewString() + ext
	dst, err := os.Create(filepath.Join(h.AvatarDir, filename))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to store avatar", err)
		return
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to store avatar", err)
		return
	}

	avatarURL := "/avatars/" + filename
	if err := h.Store.UpdateAvatar(ctx, id, avatarURL); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to record avatar", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"avatar_url": avatarURL})
}

// =============================================================================
// LEAVE SUMMARY
// =============================================================================

// GetLeaveSummary returns one employee's approved leave usage for a year.
// GET /api/employees/{id}/leave-summary?year=2024
func (h *Handler) GetLeaveSummary(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ctx := r.Context()

	emp, err := h.Store.GetEmployee(ctx, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get employee", err)
		return
	}
	if emp == nil {
		writeError(w, http.StatusNotFound, "Employee not found", nil)
		return
	}

	year := time.Now().Year()
	if raw := r.URL.Query().Get("year"); raw != "" {
		year, err = strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid year", err)
			return
		}
	}

	index, err := h.approvedIndex(r, schedule.NewDate(year, time.January, 1), schedule.NewDate(year, time.December, 31))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load approved leave", err)
		return
	}

	writeJSON(w, http.StatusOK, toLeaveSummaryDTO(directory.Summarize(id, year, index)))
}

// =============================================================================
// REQUEST HANDLERS
// =============================================================================

// ListRequests returns requests, optionally filtered by status.
// GET /api/requests?status=pending
func (h *Handler) ListRequests(w http.ResponseWriter, r *http.Request) {
	status := schedule.IntervalStatus(r.URL.Query().Get("status"))

	requests, err := h.Store.ListRequests(r.Context(), status)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list requests", err)
		return
	}

	dtos := toRequestDTOs(requests)
	h.attachEmployeeNames(r, dtos)
	writeJSON(w, http.StatusOK, dtos)
}

// ListEmployeeRequests returns one employee's requests, newest first.
// GET /api/employees/{id}/requests
func (h *Handler) ListEmployeeRequests(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	requests, err := h.Store.ListRequestsByEmployee(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list requests", err)
		return
	}

	writeJSON(w, http.StatusOK, toRequestDTOs(requests))
}

// SubmitRequest submits a time-off request. New requests always start
// pending; approval is a separate step.
// POST /api/requests
func (h *Handler) SubmitRequest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req SubmitRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	emp, err := h.Store.GetEmployee(ctx, req.EmployeeID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get employee", err)
		return
	}
	if emp == nil {
		writeError(w, http.StatusNotFound, "Employee not found", nil)
		return
	}

	start, err := schedule.ParseDate(req.StartDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid start_date (use YYYY-MM-DD)", err)
		return
	}
	end, err := schedule.ParseDate(req.EndDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid end_date (use YYYY-MM-DD)", err)
		return
	}

	request, err := directory.NewTimeOffRequest(uuid.NewString(), req.EmployeeID, req.RequestType, start, end, req.Reason, time.Now().UTC())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	if err := h.Store.SaveRequest(ctx, request); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save request", err)
		return
	}

	writeJSON(w, http.StatusCreated, toRequestDTO(request))
}

// ApproveRequest approves a pending request.
// POST /api/requests/{id}/approve
func (h *Handler) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	h.decideRequest(w, r, true)
}

// RejectRequest rejects a pending request.
// POST /api/requests/{id}/reject
func (h *Handler) RejectRequest(w http.ResponseWriter, r *http.Request) {
	h.decideRequest(w, r, false)
}

func (h *Handler) decideRequest(w http.ResponseWriter, r *http.Request, approve bool) {
	id := chi.URLParam(r, "id")

	err := h.Store.DecideRequest(r.Context(), id, approve, time.Now().UTC())
	switch {
	case errors.Is(err, directory.ErrNotFound):
		writeError(w, http.StatusNotFound, "Request not found", nil)
		return
	case errors.Is(err, directory.ErrAlreadyDecided):
		writeError(w, http.StatusConflict, "Request already decided", nil)
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, "Failed to decide request", err)
		return
	}

	status := "rejected"
	if approve {
		status = "approved"
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": status})
}

// DeleteRequest removes a request in any status.
// DELETE /api/requests/{id}
func (h *Handler) DeleteRequest(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	err := h.Store.DeleteRequest(r.Context(), id)
	if errors.Is(err, directory.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Request not found", nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete request", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// =============================================================================
// TIMELINE
// =============================================================================

// GetTimeline returns the month grid of approved leave.
// GET /api/timeline?month=2024-03
func (h *Handler) GetTimeline(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	today := schedule.Today()

	year, month := today.Year(), today.Month()
	if raw := r.URL.Query().Get("month"); raw != "" {
		t, err := time.Parse("2006-01", raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid month (use YYYY-MM)", err)
			return
		}
		year, month = t.Year(), t.Month()
	}

	employees, err := h.Store.ListEmployees(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list employees", err)
		return
	}

	index, err := h.approvedIndex(r, schedule.StartOfMonth(year, month), schedule.EndOfMonth(year, month))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load approved leave", err)
		return
	}

	grid := schedule.BuildMonthGrid(year, month, directory.GridSubjects(employees), index, today)

	avatars := make(map[string]string, len(employees))
	for _, e := range employees {
		avatars[e.ID] = e.AvatarURL
	}
	writeJSON(w, http.StatusOK, toTimelineDTO(grid, avatars))
}

// approvedIndex loads approved requests overlapping the range and builds
// the interval index the schedule core queries.
func (h *Handler) approvedIndex(r *http.Request, rangeStart, rangeEnd schedule.Date) (*schedule.IntervalIndex, error) {
	requests, err := h.Store.ListApprovedIntervalsOverlapping(r.Context(), rangeStart, rangeEnd)
	if err != nil {
		return nil, err
	}
	return schedule.NewIntervalIndex(directory.Intervals(requests))
}

// attachEmployeeNames fills EmployeeName on request DTOs. A lookup
// failure leaves the names blank rather than failing the listing.
func (h *Handler) attachEmployeeNames(r *http.Request, dtos []RequestDTO) {
	employees, err := h.Store.ListEmployees(r.Context())
	if err != nil {
		return
	}
	names := make(map[string]string, len(employees))
	for _, e := range employees {
		names[e.ID] = e.DisplayName()
	}
	for i := range dtos {
		dtos[i].EmployeeName = names[dtos[i].EmployeeID]
	}
}

// =============================================================================
// NOTIFICATION HANDLERS
// =============================================================================

// RunNotifications triggers today's congratulation cycle immediately.
// POST /api/notifications/run
func (h *Handler) RunNotifications(w http.ResponseWriter, r *http.Request) {
	summary, err := ProcessNotifications(r.Context(), h.Store, h.Mailer, schedule.Today())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to run notifications", err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// ListNotifications returns the attempts recorded for a day.
// GET /api/notifications?date=2024-07-04 (defaults to today)
func (h *Handler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	day := schedule.Today()
	if raw := r.URL.Query().Get("date"); raw != "" {
		var err error
		if day, err = schedule.ParseDate(raw); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid date (use YYYY-MM-DD)", err)
			return
		}
	}

	records, err := h.Store.ListNotifications(r.Context(), day)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list notifications", err)
		return
	}

	type recordDTO struct {
		SubjectID string `json:"subject_id"`
		Kind      string `json:"kind"`
		Email     string `json:"email,omitempty"`
		Status    string `json:"status"`
		Error     string `json:"error,omitempty"`
	}
	dtos := make([]recordDTO, len(records))
	for i, rec := range records {
		dtos[i] = recordDTO{
			SubjectID: rec.SubjectID,
			Kind:      string(rec.Kind),
			Email:     rec.Email,
			Status:    rec.Status,
			Error:     rec.Error,
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"date": day.String(), "records": dtos})
}

// =============================================================================
// INVITATION HANDLERS
// =============================================================================

// ListInvitations returns all sent invitations, newest first.
// GET /api/invitations
func (h *Handler) ListInvitations(w http.ResponseWriter, r *http.Request) {
	invitations, err := h.Store.ListInvitations(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list invitations", err)
		return
	}

	dtos := make([]InvitationDTO, len(invitations))
	for i, inv := range invitations {
		dtos[i] = toInvitationDTO(inv)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateInvitation emails a signup invitation and records it.
// POST /api/invitations
func (h *Handler) CreateInvitation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateInvitationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if !mailer.ValidAddress(req.Email) {
		writeError(w, http.StatusBadRequest, "Invalid email address", nil)
		return
	}

	token := uuid.NewString()
	link := h.SiteURL + "/signup?token=" + token

	inv := sqlite.Invitation{
		ID:        uuid.NewString(),
		Email:     req.Email,
		Token:     token,
		InvitedBy: req.InvitedBy,
		Status:    "sent",
		CreatedAt: time.Now().UTC(),
	}

	if err := h.Mailer.Send(ctx, mailer.InvitationMessage(req.Email, req.InvitedBy, link)); err != nil {
		inv.Status = "failed"
	}

	if err := h.Store.SaveInvitation(ctx, inv); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to record invitation", err)
		return
	}

	status := http.StatusCreated
	if inv.Status == "failed" {
		status = http.StatusBadGateway
	}
	writeJSON(w, status, toInvitationDTO(inv))
}

// =============================================================================
// EMAIL + CALENDAR
// =============================================================================

// SendTestEmail sends a test message to verify mailer configuration.
// POST /api/email/test
func (h *Handler) SendTestEmail(w http.ResponseWriter, r *http.Request) {
	var req struct {
		To string `json:"to"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if !mailer.ValidAddress(req.To) {
		writeError(w, http.StatusBadRequest, "Invalid email address", nil)
		return
	}

	if err := h.Mailer.Send(r.Context(), mailer.TestMessage(req.To)); err != nil {
		writeError(w, http.StatusBadGateway, "Failed to send test email", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "sent"})
}

// GetCalendarFeed renders approved leave and birthdays as iCalendar data.
// GET /api/calendar.ics
func (h *Handler) GetCalendarFeed(w http.ResponseWriter, r *http.Request) {
	now := time.Now().UTC()

	employees, err := h.Store.ListEmployees(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list employees", err)
		return
	}

	index, err := h.approvedIndex(r,
		schedule.NewDate(now.Year()-1, time.January, 1),
		schedule.NewDate(now.Year()+1, time.December, 31))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load approved leave", err)
		return
	}

	feed, err := calendar.Build(employees, index, now)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to build calendar feed", err)
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="pixup-team.ics"`)
	w.WriteHeader(http.StatusOK)
	w.Write(feed)
}

// ResetDatabase clears all data. Development tooling only.
// POST /api/admin/reset
func (h *Handler) ResetDatabase(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Reset(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset database", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// HELPERS
// =============================================================================

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
