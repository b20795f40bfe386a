// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
)

// SendEmailInput represents the input for sending an email.
type SendEmailInput struct {
	To      string
	Name    string
	Subject string
	HTML    string
	Text    string
}

// SendEmailResult represents the result of sending an email.
type SendEmailResult struct {
	ProviderID string
}

// EmailSender defines the interface for sending emails via an external provider.
type EmailSender interface {
	// Send sends an email via the email provider (e.g., Resend).
	Send(ctx context.Context, input SendEmailInput) (*SendEmailResult, error)
}

// MonthlySummaryCategory is one category row of a queued monthly summary email.
type MonthlySummaryCategory struct {
	Label   string
	Total   string
	Percent string
}

// QueueMonthlySummaryInput represents the input for queueing a monthly
// expense summary email. Amounts arrive pre-formatted; the email layer
// does no aggregation of its own.
type QueueMonthlySummaryInput struct {
	UserEmail     string
	UserName      string
	MonthName     string
	Year          int
	Total         string
	PreviousTotal string
	Variance      string
	Categories    []MonthlySummaryCategory
	Insights      []string
}

// EmailService defines the interface for queueing domain emails.
type EmailService interface {
	// QueueMonthlySummaryEmail enqueues a monthly expense summary report email.
	QueueMonthlySummaryEmail(ctx context.Context, input QueueMonthlySummaryInput) error
}
