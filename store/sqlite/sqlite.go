/*
Package sqlite provides the SQLite-backed store of the HR engine.

PURPOSE:
  Persists the employee directory, time-off requests, invitations, and the
  notification run log. In production the same patterns apply to
  PostgreSQL - only minor SQL dialect differences.

KEY TABLES:
  employees:          Directory records with anniversary anchors
  time_off_requests:  Leave requests with their approval lifecycle
  invitations:        Outbound invitation tokens
  notification_runs:  One row per (day, kind, subject) congratulation sent

LIFECYCLE ENFORCEMENT:
  A time-off request is decided at most once. The decision UPDATE is
  guarded by status = 'pending', so concurrent approvals cannot both
  succeed and a decided request is never re-decided.

NOTIFICATION DEDUPE:
  idx_notification_runs_unique makes (run_date, kind, subject_id) unique,
  so a restarted notifier cannot congratulate the same person twice on
  one day.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. SQLite is opened with WAL so
  readers don't block each other.

USAGE:
  store, err := sqlite.New("./data/hr.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper
  migration tool (golang-migrate, goose) with versioned migrations.

SEE ALSO:
  - directory: Domain types stored here
  - api/handlers.go: The HTTP layer over this store
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pixup/hr-engine/directory"
	"github.com/pixup/hr-engine/schedule"
)

// Store implements persistence for the HR engine using SQLite.
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
	-- Employees (the directory)
	CREATE TABLE IF NOT EXISTS employees (
		id TEXT PRIMARY KEY,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		email TEXT,
		position TEXT,
		job_entry_date TEXT,
		birthday TEXT,
		avatar_url TEXT,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_employees_name
		ON employees(first_name, last_name);

	-- Time-off requests (approval workflow)
	CREATE TABLE IF NOT EXISTS time_off_requests (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL,
		request_type TEXT NOT NULL,
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL,
		days_requested INTEGER NOT NULL,
		reason TEXT,
		status TEXT NOT NULL DEFAULT 'pending',
		approved_at TEXT,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_requests_employee
		ON time_off_requests(employee_id);
	CREATE INDEX IF NOT EXISTS idx_requests_status
		ON time_off_requests(status);

	-- Hot path: the timeline's month overlap query
	CREATE INDEX IF NOT EXISTS idx_requests_status_dates
		ON time_off_requests(status, start_date, end_date);

	-- Invitations
	CREATE TABLE IF NOT EXISTS invitations (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL,
		token TEXT NOT NULL UNIQUE,
		invited_by TEXT,
		status TEXT NOT NULL DEFAULT 'sent',
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_invitations_email
		ON invitations(email);

	-- Notification runs (dedupe guard for the daily cycle)
	CREATE TABLE IF NOT EXISTS notification_runs (
		id TEXT PRIMARY KEY,
		run_date TEXT NOT NULL,
		kind TEXT NOT NULL,
		subject_id TEXT NOT NULL,
		email TEXT,
		status TEXT NOT NULL,
		error TEXT,
		created_at TEXT NOT NULL
	);

	CREATE UNIQUE INDEX IF NOT EXISTS idx_notification_runs_unique
		ON notification_runs(run_date, kind, subject_id);
	CREATE INDEX IF NOT EXISTS idx_notification_runs_date
		ON notification_runs(run_date);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// EMPLOYEES
// =============================================================================

// SaveEmployee inserts or updates an employee.
func (s *Store) SaveEmployee(ctx context.Context, e directory.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	createdAt := e.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	query := `
		INSERT INTO employees
		(id, first_name, last_name, email, position, job_entry_date, birthday, avatar_url, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			first_name = excluded.first_name,
			last_name = excluded.last_name,
			email = excluded.email,
			position = excluded.position,
			job_entry_date = excluded.job_entry_date,
			birthday = excluded.birthday,
			avatar_url = excluded.avatar_url
	`

	_, err := s.db.ExecContext(ctx, query,
		e.ID, e.FirstName, e.LastName, e.Email, e.Position,
		nullDate(e.JobEntryDate), nullDate(e.Birthday),
		nullString(e.AvatarURL),
		createdAt.Format(time.RFC3339),
	)
	return err
}

// GetEmployee returns one employee, or nil when unknown.
func (s *Store) GetEmployee(ctx context.Context, id string) (*directory.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, first_name, last_name, email, position, job_entry_date, birthday, avatar_url, created_at
		FROM employees WHERE id = ?`, id)

	e, err := scanEmployee(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

// ListEmployees returns the whole directory ordered by name, the stable
// order the timeline renders in.
func (s *Store) ListEmployees(ctx context.Context) ([]directory.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, first_name, last_name, email, position, job_entry_date, birthday, avatar_url, created_at
		FROM employees
		ORDER BY first_name ASC, last_name ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []directory.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, *e)
	}
	return employees, rows.Err()
}

// UpdateAvatar sets the avatar URL for an employee.
func (s *Store) UpdateAvatar(ctx context.Context, id, avatarURL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx,
		"UPDATE employees SET avatar_url = ? WHERE id = ?", avatarURL, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return directory.ErrNotFound
	}
	return nil
}

// DeleteEmployee removes an employee and their requests.
func (s *Store) DeleteEmployee(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM time_off_requests WHERE employee_id = ?", id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM employees WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return directory.ErrNotFound
	}
	return tx.Commit()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEmployee(row rowScanner) (*directory.Employee, error) {
	var e directory.Employee
	var email, position, jobEntry, birthday, avatarURL sql.NullString
	var createdAt string

	if err := row.Scan(&e.ID, &e.FirstName, &e.LastName, &email, &position,
		&jobEntry, &birthday, &avatarURL, &createdAt); err != nil {
		return nil, err
	}

	e.Email = email.String
	e.Position = position.String
	e.AvatarURL = avatarURL.String
	e.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	if jobEntry.Valid && jobEntry.String != "" {
		e.JobEntryDate, _ = schedule.ParseDate(jobEntry.String)
	}
	if birthday.Valid && birthday.String != "" {
		e.Birthday, _ = schedule.ParseDate(birthday.String)
	}
	return &e, nil
}

// =============================================================================
// TIME-OFF REQUESTS
// =============================================================================

// SaveRequest inserts a request. Requests are decided via DecideRequest,
// never rewritten through this path.
func (s *Store) SaveRequest(ctx context.Context, r directory.TimeOffRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	createdAt := r.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	query := `
		INSERT INTO time_off_requests
		(id, employee_id, request_type, start_date, end_date, days_requested, reason, status, approved_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	var approvedAt *string
	if r.ApprovedAt != nil {
		t := r.ApprovedAt.UTC().Format(time.RFC3339)
		approvedAt = &t
	}

	_, err := s.db.ExecContext(ctx, query,
		r.ID, r.EmployeeID, r.RequestType,
		r.StartDate.String(), r.EndDate.String(),
		r.DaysRequested, r.Reason, string(r.Status),
		approvedAt,
		createdAt.Format(time.RFC3339),
	)
	return err
}

// GetRequest returns one request, or nil when unknown.
func (s *Store) GetRequest(ctx context.Context, id string) (*directory.TimeOffRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	requests, err := s.queryRequests(ctx, `
		SELECT id, employee_id, request_type, start_date, end_date, days_requested, reason, status, approved_at, created_at
		FROM time_off_requests WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	if len(requests) == 0 {
		return nil, nil
	}
	return &requests[0], nil
}

// ListRequests returns requests, optionally filtered by status, newest first.
func (s *Store) ListRequests(ctx context.Context, status schedule.IntervalStatus) ([]directory.TimeOffRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, employee_id, request_type, start_date, end_date, days_requested, reason, status, approved_at, created_at
		FROM time_off_requests
	`
	args := []any{}
	if status != "" {
		query += " WHERE status = ?"
		args = append(args, string(status))
	}
	query += " ORDER BY created_at DESC, id DESC"

	return s.queryRequests(ctx, query, args...)
}

// ListRequestsByEmployee returns one employee's requests, newest first.
func (s *Store) ListRequestsByEmployee(ctx context.Context, employeeID string) ([]directory.TimeOffRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryRequests(ctx, `
		SELECT id, employee_id, request_type, start_date, end_date, days_requested, reason, status, approved_at, created_at
		FROM time_off_requests
		WHERE employee_id = ?
		ORDER BY created_at DESC, id DESC`, employeeID)
}

// ListApprovedIntervalsOverlapping returns the approved requests whose
// range intersects [rangeStart, rangeEnd], the timeline's month
// pre-filter pushed into SQL. Ordered by start date for a stable
// first-match tie-break.
func (s *Store) ListApprovedIntervalsOverlapping(ctx context.Context, rangeStart, rangeEnd schedule.Date) ([]directory.TimeOffRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryRequests(ctx, `
		SELECT id, employee_id, request_type, start_date, end_date, days_requested, reason, status, approved_at, created_at
		FROM time_off_requests
		WHERE status = 'approved' AND start_date <= ? AND end_date >= ?
		ORDER BY start_date ASC, id ASC`,
		rangeEnd.String(), rangeStart.String())
}

// DecideRequest applies the terminal approval transition. The UPDATE is
// guarded by the pending status so a decided request cannot be re-decided;
// the loser of a race gets ErrAlreadyDecided, an unknown id ErrNotFound.
func (s *Store) DecideRequest(ctx context.Context, id string, approve bool, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := schedule.StatusRejected
	var approvedAt *string
	if approve {
		status = schedule.StatusApproved
		t := now.UTC().Format(time.RFC3339)
		approvedAt = &t
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE time_off_requests
		SET status = ?, approved_at = ?
		WHERE id = ? AND status = 'pending'`,
		string(status), approvedAt, id)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 1 {
		return nil
	}

	// Distinguish "unknown" from "already decided".
	var existing string
	err = s.db.QueryRowContext(ctx,
		"SELECT status FROM time_off_requests WHERE id = ?", id).Scan(&existing)
	if err == sql.ErrNoRows {
		return directory.ErrNotFound
	}
	if err != nil {
		return err
	}
	return fmt.Errorf("%w: %s is %s", directory.ErrAlreadyDecided, id, existing)
}

// DeleteRequest removes a request (external record deletion; the schedule
// core itself never deletes).
func (s *Store) DeleteRequest(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM time_off_requests WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return directory.ErrNotFound
	}
	return nil
}

func (s *Store) queryRequests(ctx context.Context, query string, args ...any) ([]directory.TimeOffRequest, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []directory.TimeOffRequest
	for rows.Next() {
		var r directory.TimeOffRequest
		var start, end, status, createdAt string
		var reason, approvedAt sql.NullString

		if err := rows.Scan(&r.ID, &r.EmployeeID, &r.RequestType, &start, &end,
			&r.DaysRequested, &reason, &status, &approvedAt, &createdAt); err != nil {
			return nil, err
		}

		r.StartDate, _ = schedule.ParseDate(start)
		r.EndDate, _ = schedule.ParseDate(end)
		r.Reason = reason.String
		r.Status = schedule.IntervalStatus(status)
		r.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		if approvedAt.Valid && approvedAt.String != "" {
			t, _ := time.Parse(time.RFC3339, approvedAt.String)
			r.ApprovedAt = &t
		}

		requests = append(requests, r)
	}
	return requests, rows.Err()
}

// =============================================================================
// INVITATIONS
// =============================================================================

// Invitation is one outbound invitation email.
type Invitation struct {
	ID        string
	Email     string
	Token     string
	InvitedBy string
	Status    string
	CreatedAt time.Time
}

// SaveInvitation records a sent invitation.
func (s *Store) SaveInvitation(ctx context.Context, inv Invitation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	createdAt := inv.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO invitations (id, email, token, invited_by, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		inv.ID, inv.Email, inv.Token, nullString(inv.InvitedBy), inv.Status,
		createdAt.Format(time.RFC3339))
	return err
}

// ListInvitations returns all invitations, newest first.
func (s *Store) ListInvitations(ctx context.Context) ([]Invitation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, email, token, invited_by, status, created_at
		FROM invitations ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invitations []Invitation
	for rows.Next() {
		var inv Invitation
		var invitedBy sql.NullString
		var createdAt string
		if err := rows.Scan(&inv.ID, &inv.Email, &inv.Token, &invitedBy, &inv.Status, &createdAt); err != nil {
			return nil, err
		}
		inv.InvitedBy = invitedBy.String
		inv.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		invitations = append(invitations, inv)
	}
	return invitations, rows.Err()
}

// =============================================================================
// NOTIFICATION RUNS
// =============================================================================

// ErrAlreadyNotified is returned when a (day, kind, subject) notification
// is recorded a second time.
var ErrAlreadyNotified = fmt.Errorf("notification already recorded")

// NotificationRecord is one attempted congratulation.
type NotificationRecord struct {
	ID        string
	RunDate   schedule.Date
	Kind      schedule.AnniversaryKind
	SubjectID string
	Email     string
	Status    string // "sent" or "failed"
	Error     string
	CreatedAt time.Time
}

// RecordNotification stores one attempt. A duplicate (run_date, kind,
// subject) reports ErrAlreadyNotified via the unique index.
func (s *Store) RecordNotification(ctx context.Context, rec NotificationRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO notification_runs (id, run_date, kind, subject_id, email, status, error, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.RunDate.String(), string(rec.Kind), rec.SubjectID,
		nullString(rec.Email), rec.Status, nullString(rec.Error),
		createdAt.Format(time.RFC3339))

	if err != nil && isUniqueConstraintError(err) {
		return ErrAlreadyNotified
	}
	return err
}

// IsNotified reports whether a subject was already handled today for the
// given kind, regardless of whether that attempt succeeded. A failed send
// is not retried within a cycle.
func (s *Store) IsNotified(ctx context.Context, runDate schedule.Date, kind schedule.AnniversaryKind, subjectID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM notification_runs
		WHERE run_date = ? AND kind = ? AND subject_id = ?`,
		runDate.String(), string(kind), subjectID).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListNotifications returns the run log for one day.
func (s *Store) ListNotifications(ctx context.Context, runDate schedule.Date) ([]NotificationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, run_date, kind, subject_id, email, status, error, created_at
		FROM notification_runs WHERE run_date = ? ORDER BY created_at ASC`,
		runDate.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []NotificationRecord
	for rows.Next() {
		var rec NotificationRecord
		var runDateStr, kind, createdAt string
		var email, errText sql.NullString
		if err := rows.Scan(&rec.ID, &runDateStr, &kind, &rec.SubjectID, &email, &rec.Status, &errText, &createdAt); err != nil {
			return nil, err
		}
		rec.RunDate, _ = schedule.ParseDate(runDateStr)
		rec.Kind = schedule.AnniversaryKind(kind)
		rec.Email = email.String
		rec.Error = errText.String
		rec.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// =============================================================================
// UTILITY
// =============================================================================

// Reset clears all data (dev/test only).
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, table := range []string{"time_off_requests", "employees", "invitations", "notification_runs"} {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullDate(d schedule.Date) sql.NullString {
	if d.IsZero() {
		return sql.NullString{}
	}
	return sql.NullString{String: d.String(), Valid: true}
}

func isUniqueConstraintError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
