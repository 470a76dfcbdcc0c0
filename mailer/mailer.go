/*
Package mailer delivers transactional email through a hosted sender.

PURPOSE:
  A thin JSON client for a Resend-style HTTPS email API, plus the message
  templates the HR engine sends: birthday and work-anniversary greetings,
  employee invitations, and the operator test message.

DESIGN:
  - Sender is the seam: handlers and the notifier depend on the
    interface, tests inject a fake.
  - The configured From address is validated up front (ASCII, plain
    address or "Name <addr>") and falls back to a known-good sender,
    because the upstream API rejects the whole request otherwise.
  - Delivery is fire and forget from the caller's perspective: a failed
    send returns an error for logging and run-log recording, nothing here
    retries.

SEE ALSO:
  - templates.go: Message bodies
  - api/scheduler.go: The daily notification cycle driving Send
*/
package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"regexp"
	"time"
)

// DefaultBaseURL is the hosted sender's API endpoint.
const DefaultBaseURL = "https://api.resend.com"

// DefaultFrom is the fallback sender used when the configured one is
// missing or malformed.
const DefaultFrom = "PIXUP TEAM <onboarding@resend.dev>"

// Message is one outbound email.
type Message struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	CC      []string `json:"cc,omitempty"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// Sender delivers a message. Implementations must be safe for concurrent
// use.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// =============================================================================
// ADDRESS VALIDATION
// =============================================================================

var (
	asciiOnly     = regexp.MustCompile(`^[\x00-\x7F]+$`)
	plainAddress  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	namedAddress  = regexp.MustCompile(`.+<\s*[^\s@]+@[^\s@]+\.[^\s@]+\s*>`)
)

// ValidAddress reports whether s is a plain address or "Name <addr>".
func ValidAddress(s string) bool {
	return plainAddress.MatchString(s) || namedAddress.MatchString(s)
}

// SanitizeSender returns raw when it is a usable From value; otherwise
// the fallback sender, with a warning, since the upstream API rejects
// non-ASCII or malformed senders outright.
func SanitizeSender(raw string) string {
	if raw == "" {
		return DefaultFrom
	}
	if !asciiOnly.MatchString(raw) || !ValidAddress(raw) {
		log.Printf("[Mailer] Sender %q invalid or non-ASCII, falling back to %s", raw, DefaultFrom)
		return DefaultFrom
	}
	return raw
}

// =============================================================================
// CLIENT
// =============================================================================

// Client sends through the hosted API.
type Client struct {
	APIKey  string
	BaseURL string
	From    string
	AdminCC string // optional; copied on greeting emails when valid

	HTTPClient *http.Client
}

// NewClient builds a client with the given key and sender. An invalid
// admin CC is dropped at construction rather than failing every send.
func NewClient(apiKey, from, adminCC string) *Client {
	if adminCC != "" && !ValidAddress(adminCC) {
		log.Printf("[Mailer] Admin CC %q invalid, skipping cc", adminCC)
		adminCC = ""
	}
	return &Client{
		APIKey:     apiKey,
		BaseURL:    DefaultBaseURL,
		From:       SanitizeSender(from),
		AdminCC:    adminCC,
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// Send posts the message. The client fills From when the message leaves
// it empty and attaches the admin CC when configured.
func (c *Client) Send(ctx context.Context, msg Message) error {
	if c.APIKey == "" {
		return fmt.Errorf("mailer: api key not configured")
	}
	if msg.From == "" {
		msg.From = c.From
	}
	if len(msg.CC) == 0 && c.AdminCC != "" {
		msg.CC = []string{c.AdminCC}
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("mailer: encode message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/emails", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("mailer: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("mailer: send: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("mailer: send rejected with status %d: %s", resp.StatusCode, detail)
	}
	return nil
}
