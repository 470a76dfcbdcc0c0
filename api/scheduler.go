/*
scheduler.go - Automated anniversary notification scheduler

PURPOSE:
  Periodically checks whether any employee has a birthday or work
  anniversary today and sends a congratulation email per match.

DESIGN:
  - Runs a background goroutine with configurable check interval
  - Matching is day-of-year based: only month and day are compared
  - Skips subjects already recorded for today in notification_runs,
    so restarting the server or shortening the interval never sends
    a duplicate email
  - Send failures are logged and recorded; a failed attempt counts as
    handled for the day and is not retried until the next day

CONFIGURATION:
  - CheckInterval: How often to check (default: 1 hour)
  - Enabled: Whether scheduler is active (default: true)

USAGE:
  notifier := NewNotifier(store, sender)
  notifier.Start()
  // ... later
  notifier.Stop()

SEE ALSO:
  - handlers.go: RunNotifications endpoint (manual trigger)
  - schedule/matcher.go: Day-of-year matching
*/
package api

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pixup/hr-engine/directory"
	"github.com/pixup/hr-engine/mailer"
	"github.com/pixup/hr-engine/schedule"
	"github.com/pixup/hr-engine/store/sqlite"
)

// Notifier handles automated anniversary notifications.
type Notifier struct {
	Store         *sqlite.Store
	Mailer        mailer.Sender
	CheckInterval time.Duration
	Enabled       bool

	ticker *time.Ticker
	stop   chan bool
	wg     sync.WaitGroup
	mu     sync.Mutex
}

// NewNotifier creates a new notifier.
func NewNotifier(store *sqlite.Store, sender mailer.Sender) *Notifier {
	return &Notifier{
		Store:         store,
		Mailer:        sender,
		CheckInterval: 1 * time.Hour,
		Enabled:       true,
		stop:          make(chan bool),
	}
}

// Start begins the notifier.
func (n *Notifier) Start() {
	n.mu.Lock()
	defer n.mu.Unlock()

	if !n.Enabled {
		log.Println("[Notifier] Disabled, not starting")
		return
	}

	n.ticker = time.NewTicker(n.CheckInterval)
	n.wg.Add(1)

	go n.run()

	log.Printf("[Notifier] Started with check interval: %v", n.CheckInterval)
}

// Stop stops the notifier.
func (n *Notifier) Stop() {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.ticker != nil {
		n.ticker.Stop()
		close(n.stop)
		n.wg.Wait()
		log.Println("[Notifier] Stopped")
	}
}

func (n *Notifier) run() {
	defer n.wg.Done()

	// Run immediately on start
	n.checkAndProcess()

	for {
		select {
		case <-n.ticker.C:
			n.checkAndProcess()
		case <-n.stop:
			return
		}
	}
}

func (n *Notifier) checkAndProcess() {
	ctx := context.Background()
	today := schedule.Today()

	summary, err := ProcessNotifications(ctx, n.Store, n.Mailer, today)
	if err != nil {
		log.Printf("[Notifier] Cycle failed: %v", err)
		return
	}

	if summary.Matched > 0 {
		log.Printf("[Notifier] Completed: %d matched, %d sent, %d skipped (already done), %d failed",
			summary.Matched, summary.Sent, summary.Skipped, summary.Failed)
	}
}

// RunNow triggers an immediate check (for testing/admin).
func (n *Notifier) RunNow() {
	n.checkAndProcess()
}

// GetNextRunTime returns when the next scheduled check will occur.
func (n *Notifier) GetNextRunTime() time.Time {
	return time.Now().Add(n.CheckInterval)
}

// =============================================================================
// NOTIFICATION CYCLE
// =============================================================================

// RunSummary reports one notification cycle.
type RunSummary struct {
	Date           string         `json:"date"`
	Matched        int            `json:"matched"`
	Sent           int            `json:"sent"`
	Skipped        int            `json:"skipped"`
	Failed         int            `json:"failed"`
	MissingAnchors int            `json:"missing_anchors"`
	Details        []DetailResult `json:"details"`
}

// DetailResult reports one match's outcome.
type DetailResult struct {
	SubjectID string `json:"subject_id"`
	Name      string `json:"name"`
	Kind      string `json:"kind"`
	Email     string `json:"email,omitempty"`
	Status    string `json:"status"`
	Error     string `json:"error,omitempty"`
}

// ProcessNotifications runs one congratulation cycle for the given day.
// Shared by the background notifier and the manual trigger endpoint.
func ProcessNotifications(ctx context.Context, store *sqlite.Store, sender mailer.Sender, today schedule.Date) (*RunSummary, error) {
	employees, err := store.ListEmployees(ctx)
	if err != nil {
		return nil, err
	}

	matches, skippedAnchors := schedule.MatchToday(today, directory.AnniversaryRecords(employees))

	summary := &RunSummary{
		Date:           today.String(),
		Matched:        len(matches),
		MissingAnchors: skippedAnchors,
		Details:        []DetailResult{},
	}

	for _, m := range matches {
		detail := DetailResult{
			SubjectID: m.Record.SubjectID,
			Name:      m.Record.DisplayName,
			Kind:      string(m.Record.Kind),
			Email:     m.Record.Email,
		}

		done, err := store.IsNotified(ctx, today, m.Record.Kind, m.Record.SubjectID)
		if err != nil {
			return nil, err
		}
		if done {
			summary.Skipped++
			detail.Status = "skipped"
			summary.Details = append(summary.Details, detail)
			continue
		}

		if m.Record.Email == "" {
			summary.Failed++
			detail.Status = "failed"
			detail.Error = "no email address on file"
			summary.Details = append(summary.Details, detail)
			recordAttempt(ctx, store, today, m, "failed", detail.Error)
			continue
		}

		msg := congratulationMessage(m)
		if err := sender.Send(ctx, msg); err != nil {
			log.Printf("[Notifier] Send failed for %s (%s): %v", m.Record.SubjectID, m.Record.Kind, err)
			summary.Failed++
			detail.Status = "failed"
			detail.Error = err.Error()
			summary.Details = append(summary.Details, detail)
			recordAttempt(ctx, store, today, m, "failed", err.Error())
			continue
		}

		summary.Sent++
		detail.Status = "sent"
		summary.Details = append(summary.Details, detail)
		recordAttempt(ctx, store, today, m, "sent", "")
	}

	return summary, nil
}

func congratulationMessage(m schedule.Match) mailer.Message {
	if m.Record.Kind == schedule.KindWorkAnniversary {
		return mailer.AnniversaryMessage(m.Record.Email, m.Record.DisplayName, m.ElapsedYears)
	}
	return mailer.BirthdayMessage(m.Record.Email, m.Record.DisplayName)
}

// recordAttempt stores the attempt for dedupe and audit. A duplicate
// record means a concurrent cycle won the race, which is fine.
func recordAttempt(ctx context.Context, store *sqlite.Store, today schedule.Date, m schedule.Match, status, errMsg string) {
	err := store.RecordNotification(ctx, sqlite.NotificationRecord{
		ID:        uuid.NewString(),
		RunDate:   today,
		Kind:      m.Record.Kind,
		SubjectID: m.Record.SubjectID,
		Email:     m.Record.Email,
		Status:    status,
		Error:     errMsg,
	})
	if err != nil && err != sqlite.ErrAlreadyNotified {
		log.Printf("[Notifier] Failed to record attempt for %s: %v", m.Record.SubjectID, err)
	}
}
