// Package emailapi implements notifier.Notifier against the agenda email
// API, a small service wrapping the actual mail transport behind
// POST /send-email.
package emailapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Client posts notification emails to the email API.
type Client struct {
	BaseURL string
	From    string
	httpDo  *http.Client
}

func New(baseURL, from string) *Client {
	return &Client{
		BaseURL: baseURL,
		From:    from,
		httpDo: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type sendEmailRequest struct {
	From    string `json:"from,omitempty"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

func (c *Client) Send(ctx context.Context, to, subject, message string) error {
	data, err := json.Marshal(sendEmailRequest{
		From:    c.From,
		To:      to,
		Subject: subject,
		Message: message,
	})
	if err != nil {
		return err
	}

	endpoint := fmt.Sprintf("%s/send-email", c.BaseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpDo.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errMap map[string]any
		_ = json.NewDecoder(resp.Body).Decode(&errMap)
		return fmt.Errorf("email api http %d: %v", resp.StatusCode, errMap)
	}
	return nil
}
