/*
mailer_test.go - Tests for sender validation and the API client
*/
package mailer_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pixup/hr-engine/mailer"
)

func TestValidAddress(t *testing.T) {
	cases := []struct {
		in    string
		valid bool
	}{
		{"team@example.com", true},
		{"PIXUP TEAM <team@example.com>", true},
		{"not-an-address", false},
		{"missing@tld", false},
		{"", false},
	}
	for _, c := range cases {
		if got := mailer.ValidAddress(c.in); got != c.valid {
			t.Errorf("ValidAddress(%q) = %v, want %v", c.in, got, c.valid)
		}
	}
}

func TestSanitizeSender(t *testing.T) {
	// A valid configured sender passes through
	if got := mailer.SanitizeSender("HR <hr@example.com>"); got != "HR <hr@example.com>" {
		t.Errorf("Valid sender rewritten to %q", got)
	}
	// Non-ASCII (the upstream API rejects it) falls back
	if got := mailer.SanitizeSender("Équipe <hr@example.com>"); got != mailer.DefaultFrom {
		t.Errorf("Non-ASCII sender kept: %q", got)
	}
	// Malformed falls back
	if got := mailer.SanitizeSender("just some words"); got != mailer.DefaultFrom {
		t.Errorf("Malformed sender kept: %q", got)
	}
	if got := mailer.SanitizeSender(""); got != mailer.DefaultFrom {
		t.Errorf("Empty sender kept: %q", got)
	}
}

func TestClient_Send(t *testing.T) {
	// GIVEN: A fake API capturing the request
	var captured mailer.Message
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		if r.URL.Path != "/emails" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("Bad request body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := mailer.NewClient("key-123", "HR <hr@example.com>", "admin@example.com")
	client.BaseURL = srv.URL

	// WHEN: Sending a birthday greeting
	msg := mailer.BirthdayMessage("ada@example.com", "Ada Lovelace")
	if err := client.Send(context.Background(), msg); err != nil {
		t.Fatalf("Send failed: %v", err)
	}

	// THEN: The client fills sender, CC, and auth
	if auth != "Bearer key-123" {
		t.Errorf("Authorization = %q", auth)
	}
	if captured.From != "HR <hr@example.com>" {
		t.Errorf("From = %q", captured.From)
	}
	if len(captured.CC) != 1 || captured.CC[0] != "admin@example.com" {
		t.Errorf("CC = %v", captured.CC)
	}
	if !strings.Contains(captured.Subject, "Ada Lovelace") {
		t.Errorf("Subject = %q", captured.Subject)
	}
	if !strings.Contains(captured.HTML, "Happy Birthday") {
		t.Errorf("Body missing greeting: %q", captured.HTML)
	}
}

func TestClient_SendRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"invalid from"}`, http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	client := mailer.NewClient("key-123", "hr@example.com", "")
	client.BaseURL = srv.URL

	err := client.Send(context.Background(), mailer.TestMessage("x@example.com"))
	if err == nil {
		t.Fatal("Expected error on rejected send")
	}
	if !strings.Contains(err.Error(), "422") {
		t.Errorf("Error should carry the status: %v", err)
	}
}

func TestClient_MissingKey(t *testing.T) {
	client := mailer.NewClient("", "hr@example.com", "")
	if err := client.Send(context.Background(), mailer.TestMessage("x@example.com")); err == nil {
		t.Fatal("Expected error without an API key")
	}
}

func TestAnniversaryMessage_CarriesYears(t *testing.T) {
	msg := mailer.AnniversaryMessage("bob@example.com", "Bob Martin", 5)
	if !strings.Contains(msg.HTML, "5-year") {
		t.Errorf("Body missing years of service: %q", msg.HTML)
	}
}

func TestNewClient_DropsInvalidAdminCC(t *testing.T) {
	client := mailer.NewClient("key", "hr@example.com", "not-an-address")
	if client.AdminCC != "" {
		t.Errorf("Invalid admin CC kept: %q", client.AdminCC)
	}
}
