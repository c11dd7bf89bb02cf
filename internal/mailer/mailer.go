// Package mailer delivers the out-of-band verification, reset and welcome
// emails. Delivery is a collaborator of the auth flow: a failed send is
// reported to the caller so the just-generated token fields can be rolled
// back.
package mailer

import (
	"context"
	"fmt"
	"net/url"
)

// Sender delivers a single rendered message.
type Sender interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// Mailer renders and sends the account-lifecycle emails.
type Mailer struct {
	sender    Sender
	clientURL string
}

func New(sender Sender, clientURL string) *Mailer {
	return &Mailer{sender: sender, clientURL: clientURL}
}

// SendVerificationEmail mails the plaintext verification secret as a
// frontend link. The secret is never persisted; this is its only copy.
func (m *Mailer) SendVerificationEmail(ctx context.Context, to, firstName, secret string) error {
	link := fmt.Sprintf("%s/verify-email?token=%s", m.clientURL, url.QueryEscape(secret))
	body, err := renderVerification(firstName, link)
	if err != nil {
		return err
	}
	return m.sender.Send(ctx, to, "Verify Your Zara AI Account", body)
}

func (m *Mailer) SendPasswordResetEmail(ctx context.Context, to, firstName, secret string) error {
	link := fmt.Sprintf("%s/reset-password?token=%s", m.clientURL, url.QueryEscape(secret))
	body, err := renderReset(firstName, link)
	if err != nil {
		return err
	}
	return m.sender.Send(ctx, to, "Reset Your Zara AI Password", body)
}

func (m *Mailer) SendWelcomeEmail(ctx context.Context, to, firstName string) error {
	body, err := renderWelcome(firstName, m.clientURL)
	if err != nil {
		return err
	}
	return m.sender.Send(ctx, to, "Welcome to Zara AI!", body)
}
