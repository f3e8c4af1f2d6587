package mail

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendGridMailer delivers plain-text email through SendGrid.
type SendGridMailer struct {
	client *sendgrid.Client
	from   string
}

// Ensure SendGridMailer implements Mailer
var _ Mailer = (*SendGridMailer)(nil)

// NewSendGridMailer creates a mailer sending from the given address.
func NewSendGridMailer(apiKey, from string) *SendGridMailer {
	return &SendGridMailer{
		client: sendgrid.NewSendClient(apiKey),
		from:   from,
	}
}

// Send delivers a plain-text message to a single recipient.
func (m *SendGridMailer) Send(ctx context.Context, to, subject, body string) error {
	msg := sgmail.NewSingleEmailPlainText(
		sgmail.NewEmail("", m.from),
		subject,
		sgmail.NewEmail("", to),
		body,
	)

	resp, err := m.client.SendWithContext(ctx, msg)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("sendgrid send: status %d", resp.StatusCode)
	}
	return nil
}
