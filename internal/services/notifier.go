package services

import (
	"context"
	"fmt"
	"html"
	"log"

	"github.com/resend/resend-go/v2"
)

// Notifier delivers a single message. Implementations must be safe for concurrent use.
type Notifier interface {
	Send(ctx context.Context, to, subject, body string) error
}

// ResendNotifier sends HTML email through the Resend API.
type ResendNotifier struct {
	client *resend.Client
	from   string
}

func NewResendNotifier(apiKey, from string) *ResendNotifier {
	return &ResendNotifier{client: resend.NewClient(apiKey), from: from}
}

func (n *ResendNotifier) Send(ctx context.Context, to, subject, body string) error {
	_, err := n.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    n.from,
		To:      []string{to},
		Subject: subject,
		Html:    body,
	})
	if err != nil {
		return fmt.Errorf("resend: %w", err)
	}
	return nil
}

// LogNotifier only logs messages. Used when no mail provider is configured.
type LogNotifier struct{}

func (LogNotifier) Send(_ context.Context, to, subject, _ string) error {
	log.Printf("mail (not sent, no provider configured) to=%s subject=%q", to, subject)
	return nil
}

func verificationMessage(code string) (subject, body string) {
	subject = "Lumina Verification Code"
	body = fmt.Sprintf("<h3>Your verification code is: %s</h3>"+
		"<p>Enter this in the app settings to enable notifications.</p>", html.EscapeString(code))
	return subject, body
}

func reminderMessage(username string, pending int64, appURL string) (subject, body string) {
	subject = "Lumina Daily Task Reminder"
	body = fmt.Sprintf("<h2>Hello %s</h2>"+
		"<p>You have <b>%d</b> tasks pending for today.</p>"+
		`<p><a href="%s">Open Lumina</a> to clear them!</p>`,
		html.EscapeString(username), pending, html.EscapeString(appURL))
	return subject, body
}
