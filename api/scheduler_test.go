/*
scheduler_test.go - Unit tests for the notification cycle

Tests for:
- Birthday and work anniversary congratulation emails
- Per-day dedupe across repeated cycles
- Failed sends recorded and not retried the same day
*/
package api

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/pixup/hr-engine/directory"
	"github.com/pixup/hr-engine/schedule"
	"github.com/pixup/hr-engine/store/sqlite"
)

func saveEmployee(t *testing.T, store *sqlite.Store, e directory.Employee) {
	t.Helper()
	if err := store.SaveEmployee(context.Background(), e); err != nil {
		t.Fatalf("Failed to save employee: %v", err)
	}
}

func TestProcessNotifications_SendsOncePerDay(t *testing.T) {
	// GIVEN: One birthday and one work anniversary falling on the run day
	_, sender, store := newTestHandler(t)
	ctx := context.Background()

	saveEmployee(t, store, directory.Employee{
		ID:        "emp-bday",
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@pixup.example",
		Birthday:  schedule.NewDate(1990, time.July, 4),
	})
	saveEmployee(t, store, directory.Employee{
		ID:           "emp-anniv",
		FirstName:    "Grace",
		LastName:     "Hopper",
		Email:        "grace@pixup.example",
		JobEntryDate: schedule.NewDate(2019, time.July, 4),
	})
	saveEmployee(t, store, directory.Employee{
		ID:        "emp-other",
		FirstName: "Zoe",
		LastName:  "Young",
		Email:     "zoe@pixup.example",
		Birthday:  schedule.NewDate(1985, time.December, 25),
	})

	today := schedule.NewDate(2024, time.July, 4)

	// WHEN: Running the cycle
	summary, err := ProcessNotifications(ctx, store, sender, today)
	if err != nil {
		t.Fatalf("ProcessNotifications: %v", err)
	}

	// THEN: Exactly the two matching employees get an email
	if summary.Matched != 2 || summary.Sent != 2 {
		t.Fatalf("Expected 2 matched and sent, got %+v", summary)
	}
	if len(sender.sent) != 2 {
		t.Fatalf("Expected 2 emails, got %d", len(sender.sent))
	}

	var sawBirthday, sawAnniversary bool
	for _, msg := range sender.sent {
		if strings.Contains(msg.Subject, "Happy Birthday") {
			sawBirthday = true
		}
		if strings.Contains(msg.HTML, "5") && strings.Contains(strings.ToLower(msg.Subject), "anniversary") {
			sawAnniversary = true
		}
	}
	if !sawBirthday || !sawAnniversary {
		t.Errorf("Expected one birthday and one anniversary email, got %+v", sender.sent)
	}

	// AND: A second cycle the same day sends nothing
	summary, err = ProcessNotifications(ctx, store, sender, today)
	if err != nil {
		t.Fatalf("ProcessNotifications (second run): %v", err)
	}
	if summary.Sent != 0 || summary.Skipped != 2 {
		t.Errorf("Expected second run to skip both, got %+v", summary)
	}
	if len(sender.sent) != 2 {
		t.Errorf("Expected no new emails on second run, got %d total", len(sender.sent))
	}
}

func TestProcessNotifications_RecordsFailures(t *testing.T) {
	// GIVEN: A failing mailer and one employee without an email address
	_, sender, store := newTestHandler(t)
	ctx := context.Background()
	sender.err = fmt.Errorf("smtp down")

	saveEmployee(t, store, directory.Employee{
		ID:        "emp-bday",
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@pixup.example",
		Birthday:  schedule.NewDate(1990, time.July, 4),
	})
	saveEmployee(t, store, directory.Employee{
		ID:        "emp-noemail",
		FirstName: "Grace",
		LastName:  "Hopper",
		Birthday:  schedule.NewDate(1980, time.July, 4),
	})

	today := schedule.NewDate(2024, time.July, 4)

	// WHEN: Running the cycle
	summary, err := ProcessNotifications(ctx, store, sender, today)
	if err != nil {
		t.Fatalf("ProcessNotifications: %v", err)
	}

	// THEN: Both matches fail, with reasons in the details
	if summary.Failed != 2 || summary.Sent != 0 {
		t.Fatalf("Expected 2 failures, got %+v", summary)
	}
	for _, d := range summary.Details {
		if d.Status != "failed" || d.Error == "" {
			t.Errorf("Expected failed detail with reason, got %+v", d)
		}
	}

	// AND: Failed attempts count as handled for the day
	sender.err = nil
	summary, err = ProcessNotifications(ctx, store, sender, today)
	if err != nil {
		t.Fatalf("ProcessNotifications (second run): %v", err)
	}
	if summary.Sent != 0 || summary.Skipped != 2 {
		t.Errorf("Expected second run to skip failed subjects, got %+v", summary)
	}
}

func TestProcessNotifications_CountsMissingAnchors(t *testing.T) {
	// GIVEN: An employee with neither birthday nor entry date
	_, sender, store := newTestHandler(t)

	saveEmployee(t, store, directory.Employee{
		ID:        "emp-bare",
		FirstName: "Zoe",
		LastName:  "Young",
		Email:     "zoe@pixup.example",
	})

	// WHEN: Running the cycle
	summary, err := ProcessNotifications(context.Background(), store, sender, schedule.NewDate(2024, time.July, 4))
	if err != nil {
		t.Fatalf("ProcessNotifications: %v", err)
	}

	// THEN: Nothing matches and nothing is sent
	if summary.Matched != 0 || len(sender.sent) != 0 {
		t.Errorf("Expected no matches for anchorless employee, got %+v", summary)
	}
}

func TestNotifier_StartStop(t *testing.T) {
	// GIVEN: A notifier with a long interval
	_, sender, store := newTestHandler(t)
	notifier := NewNotifier(store, sender)
	notifier.CheckInterval = time.Hour

	// WHEN: Starting and stopping
	notifier.Start()
	notifier.Stop()

	// THEN: No goroutine leak, and RunNow still works after stop
	notifier.RunNow()
}

func TestNotifier_DisabledDoesNotStart(t *testing.T) {
	_, sender, store := newTestHandler(t)
	notifier := NewNotifier(store, sender)
	notifier.Enabled = false

	notifier.Start()
	// Stop on a never-started notifier must not panic or block.
	notifier.Stop()
}
