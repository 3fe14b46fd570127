// Package notify is the client for the mail dispatch API that delivers the
// end-of-run notification.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// maxResponseSize limits the response body size read from the mail API.
const maxResponseSize = 1 * 1024 * 1024

// Errors for mailer configuration and dispatch
var (
	ErrConfigMissingAPIBaseURL = errors.New("notify: api base url is required")
	ErrConfigMissingAPIKey     = errors.New("notify: api key is required")
	ErrConfigMissingFrom       = errors.New("notify: sender address is required")
	ErrConfigMissingTo         = errors.New("notify: recipient address is required")

	// ErrDispatchFailed covers transport failures and non-2xx responses
	// from the mail API.
	ErrDispatchFailed = errors.New("notify: dispatch failed")
)

// Config holds the mail dispatch API settings.
type Config struct {
	// APIBaseURL is the base URL of the mail dispatch API
	APIBaseURL string
	// APIKey is the bearer token sent on every request
	APIKey string
	// From is the sender identity
	From string
	// To is the recipient address
	To string
	// TimeoutSeconds is the HTTP request timeout
	TimeoutSeconds int
}

// Validate validates the configuration and fills in defaults.
func (c *Config) Validate() error {
	if c.APIBaseURL == "" {
		return ErrConfigMissingAPIBaseURL
	}
	if c.APIKey == "" {
		return ErrConfigMissingAPIKey
	}
	if c.From == "" {
		return ErrConfigMissingFrom
	}
	if c.To == "" {
		return ErrConfigMissingTo
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 30
	}
	return nil
}

// message is the dispatch request body.
type message struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
}

// Mailer sends plain-text mail through the dispatch API.
type Mailer struct {
	config     *Config
	httpClient *http.Client
}

// NewMailer creates a mailer with the given configuration.
func NewMailer(config *Config) (*Mailer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Mailer{
		config:     config,
		httpClient: &http.Client{Timeout: time.Duration(config.TimeoutSeconds) * time.Second},
	}, nil
}

// Send dispatches one plain-text message to the configured recipient.
func (m *Mailer) Send(ctx context.Context, subject, body string) error {
	payload, err := json.Marshal(message{
		From:    m.config.From,
		To:      m.config.To,
		Subject: subject,
		Text:    body,
	})
	if err != nil {
		return fmt.Errorf("%w: encoding message: %v", ErrDispatchFailed, err)
	}

	url := m.config.APIBaseURL + "/messages"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDispatchFailed, err)
	}
	req.Header.Set("Authorization", "Bearer "+m.config.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDispatchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
		return fmt.Errorf("%w: HTTP %d: %s", ErrDispatchFailed, resp.StatusCode, bytes.TrimSpace(detail))
	}
	return nil
}
