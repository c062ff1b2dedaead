// Package notifier defines the outbound-email capability. Sending is
// best-effort: callers fire it in the background and only log failures.
package notifier

import "context"

// Notifier delivers a notification email to a single recipient.
type Notifier interface {
	Send(ctx context.Context, to, subject, message string) error
}

// Noop is used when no email configuration is present; the service keeps
// working without outbound mail.
type Noop struct{}

func (Noop) Send(ctx context.Context, to, subject, message string) error { return nil }
