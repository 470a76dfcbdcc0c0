/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract, allowing:
  - Field renaming without breaking clients
  - API-specific validation
  - Version evolution

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

TYPES:
  Employee:
    EmployeeDTO, SaveEmployeeRequest

  Time off:
    RequestDTO, SubmitRequestRequest, LeaveSummaryDTO

  Timeline:
    TimelineDTO, TimelineDayDTO, TimelineRowDTO, TimelineCellDTO

  Notifications:
    RunSummaryDTO lives in scheduler.go next to the run logic.

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
  - scheduler.go: RunSummary returned by the notification cycle
*/
package api

import (
	"time"

	"github.com/pixup/hr-engine/directory"
	"github.com/pixup/hr-engine/schedule"
	"github.com/pixup/hr-engine/store/sqlite"
)

// =============================================================================
// EMPLOYEE TYPES
// =============================================================================

// EmployeeDTO represents an employee in API responses.
type EmployeeDTO struct {
	ID           string `json:"id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Name         string `json:"name"`
	Email        string `json:"email,omitempty"`
	Position     string `json:"position,omitempty"`
	JobEntryDate string `json:"job_entry_date,omitempty"`
	Birthday     string `json:"birthday,omitempty"`
	AvatarURL    string `json:"avatar_url,omitempty"`
	CreatedAt    string `json:"created_at,omitempty"`
}

// SaveEmployeeRequest is the request body for create and update.
type SaveEmployeeRequest struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Email        string `json:"email"`
	Position     string `json:"position"`
	JobEntryDate string `json:"job_entry_date"`
	Birthday     string `json:"birthday"`
}

// =============================================================================
// TIME-OFF TYPES
// =============================================================================

// RequestDTO represents a time-off request in API responses.
type RequestDTO struct {
	ID            string `json:"id"`
	EmployeeID    string `json:"employee_id"`
	EmployeeName  string `json:"employee_name,omitempty"`
	RequestType   string `json:"request_type"`
	Category      string `json:"category"`
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
	DaysRequested int    `json:"days_requested"`
	Reason        string `json:"reason,omitempty"`
	Status        string `json:"status"`
	ApprovedAt    string `json:"approved_at,omitempty"`
	CreatedAt     string `json:"created_at,omitempty"`
}

// SubmitRequestRequest is the request body for submitting time off.
type SubmitRequestRequest struct {
	EmployeeID  string `json:"employee_id"`
	RequestType string `json:"request_type"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Reason      string `json:"reason"`
}

// LeaveSummaryDTO is one employee's leave usage for a calendar year.
type LeaveSummaryDTO struct {
	EmployeeID   string             `json:"employee_id"`
	Year         int                `json:"year"`
	CalendarDays float64            `json:"calendar_days"`
	Workdays     float64            `json:"workdays"`
	ByCategory   []CategoryUsageDTO `json:"by_category"`
}

// CategoryUsageDTO is the usage of one leave category.
type CategoryUsageDTO struct {
	Category     string  `json:"category"`
	CalendarDays float64 `json:"calendar_days"`
	Workdays     float64 `json:"workdays"`
}

// =============================================================================
// TIMELINE TYPES
// =============================================================================

// TimelineDTO is the month grid returned by the timeline endpoint.
type TimelineDTO struct {
	Month string           `json:"month"`
	Days  []TimelineDayDTO `json:"days"`
	Rows  []TimelineRowDTO `json:"rows"`
}

// TimelineDayDTO is one column of the grid.
type TimelineDayDTO struct {
	Date    string `json:"date"`
	Weekend bool   `json:"weekend"`
	Today   bool   `json:"today"`
}

// TimelineRowDTO is one employee's row across the month.
type TimelineRowDTO struct {
	EmployeeID string            `json:"employee_id"`
	Name       string            `json:"name"`
	AvatarURL  string            `json:"avatar_url,omitempty"`
	Cells      []TimelineCellDTO `json:"cells"`
}

// TimelineCellDTO is one (employee, day) cell. Category and RequestID are
// empty when the employee is not on leave that day.
type TimelineCellDTO struct {
	OnLeave   bool   `json:"on_leave"`
	Category  string `json:"category,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// =============================================================================
// INVITATION TYPES
// =============================================================================

// InvitationDTO represents a sent invitation.
type InvitationDTO struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	InvitedBy string `json:"invited_by,omitempty"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at,omitempty"`
}

// CreateInvitationRequest is the request body for sending an invitation.
type CreateInvitationRequest struct {
	Email     string `json:"email"`
	InvitedBy string `json:"invited_by"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func toEmployeeDTO(e directory.Employee) EmployeeDTO {
	dto := EmployeeDTO{
		ID:        e.ID,
		FirstName: e.FirstName,
		LastName:  e.LastName,
		Name:      e.DisplayName(),
		Email:     e.Email,
		Position:  e.Position,
		AvatarURL: e.AvatarURL,
	}
	if !e.JobEntryDate.IsZero() {
		dto.JobEntryDate = e.JobEntryDate.String()
	}
	if !e.Birthday.IsZero() {
		dto.Birthday = e.Birthday.String()
	}
	if !e.CreatedAt.IsZero() {
		dto.CreatedAt = e.CreatedAt.Format(time.RFC3339)
	}
	return dto
}

func toRequestDTO(r directory.TimeOffRequest) RequestDTO {
	dto := RequestDTO{
		ID:            r.ID,
		EmployeeID:    r.EmployeeID,
		RequestType:   r.RequestType,
		Category:      string(r.Category()),
		StartDate:     r.StartDate.String(),
		EndDate:       r.EndDate.String(),
		DaysRequested: r.DaysRequested,
		Reason:        r.Reason,
		Status:        string(r.Status),
	}
	if r.ApprovedAt != nil {
		dto.ApprovedAt = r.ApprovedAt.Format(time.RFC3339)
	}
	if !r.CreatedAt.IsZero() {
		dto.CreatedAt = r.CreatedAt.Format(time.RFC3339)
	}
	return dto
}

func toRequestDTOs(requests []directory.TimeOffRequest) []RequestDTO {
	dtos := make([]RequestDTO, len(requests))
	for i, r := range requests {
		dtos[i] = toRequestDTO(r)
	}
	return dtos
}

func toLeaveSummaryDTO(s directory.LeaveSummary) LeaveSummaryDTO {
	dto := LeaveSummaryDTO{
		EmployeeID:   s.EmployeeID,
		Year:         s.Year,
		CalendarDays: s.CalendarDays.InexactFloat64(),
		Workdays:     s.Workdays.InexactFloat64(),
		ByCategory:   make([]CategoryUsageDTO, len(s.ByCategory)),
	}
	for i, c := range s.ByCategory {
		dto.ByCategory[i] = CategoryUsageDTO{
			Category:     string(c.Category),
			CalendarDays: c.CalendarDays.InexactFloat64(),
			Workdays:     c.Workdays.InexactFloat64(),
		}
	}
	return dto
}

func toInvitationDTO(inv sqlite.Invitation) InvitationDTO {
	dto := InvitationDTO{
		ID:        inv.ID,
		Email:     inv.Email,
		InvitedBy: inv.InvitedBy,
		Status:    inv.Status,
	}
	if !inv.CreatedAt.IsZero() {
		dto.CreatedAt = inv.CreatedAt.Format(time.RFC3339)
	}
	return dto
}

func toTimelineDTO(grid *schedule.MonthGrid, avatars map[string]string) TimelineDTO {
	dto := TimelineDTO{
		Month: time.Date(grid.Year, grid.Month, 1, 0, 0, 0, 0, time.UTC).Format("2006-01"),
		Days:  make([]TimelineDayDTO, len(grid.Days)),
		Rows:  make([]TimelineRowDTO, len(grid.Rows)),
	}
	for i, day := range grid.Days {
		dto.Days[i] = TimelineDayDTO{
			Date:    day.Date.String(),
			Weekend: day.Weekend,
			Today:   day.Today,
		}
	}
	for i, row := range grid.Rows {
		cells := make([]TimelineCellDTO, len(row.Cells))
		for j, cell := range row.Cells {
			if cell.Interval != nil {
				cells[j] = TimelineCellDTO{
					OnLeave:   true,
					Category:  string(cell.Interval.Category),
					RequestID: cell.Interval.ID,
				}
			}
		}
		dto.Rows[i] = TimelineRowDTO{
			EmployeeID: row.Subject.ID,
			Name:       row.Subject.DisplayName,
			AvatarURL:  avatars[row.Subject.ID],
			Cells:      cells,
		}
	}
	return dto
}
