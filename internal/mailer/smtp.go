package mailer

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strings"
	"time"
)

const (
	dialTimeout = 8 * time.Second
	sendTimeout = 15 * time.Second
)

// SMTPSender sends mail over SMTP with STARTTLS. Each Send dials a fresh
// connection with an overall deadline so a stalled server never hangs a
// request past its timeout.
type SMTPSender struct {
	host     string
	port     string
	username string
	password string
	from     string
	fromName string
}

func NewSMTPSender(host, port, username, password, from, fromName string) *SMTPSender {
	return &SMTPSender{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
		fromName: fromName,
	}
}

func (s *SMTPSender) Send(ctx context.Context, to, subject, htmlBody string) error {
	msg := strings.Join([]string{
		fmt.Sprintf("From: %s <%s>", s.fromName, s.from),
		fmt.Sprintf("To: %s", to),
		fmt.Sprintf("Subject: %s", subject),
		"MIME-Version: 1.0",
		`Content-Type: text/html; charset="UTF-8"`,
		"",
		htmlBody,
	}, "\r\n")

	if err := s.send(ctx, to, []byte(msg)); err != nil {
		return fmt.Errorf("smtp send to %s failed: %w", to, err)
	}
	return nil
}

func (s *SMTPSender) send(ctx context.Context, to string, msg []byte) error {
	addr := net.JoinHostPort(s.host, s.port)

	d := net.Dialer{Timeout: dialTimeout}
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return err
	}

	deadline := time.Now().Add(sendTimeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}
	_ = conn.SetDeadline(deadline)

	c, err := smtp.NewClient(conn, s.host)
	if err != nil {
		return err
	}
	defer func() { _ = c.Quit() }()

	if ok, _ := c.Extension("STARTTLS"); ok {
		if err := c.StartTLS(&tls.Config{ServerName: s.host}); err != nil {
			return err
		}
	}

	if s.username != "" {
		auth := smtp.PlainAuth("", s.username, s.password, s.host)
		if err := c.Auth(auth); err != nil {
			return err
		}
	}

	if err := c.Mail(s.from); err != nil {
		return err
	}
	if err := c.Rcpt(to); err != nil {
		return err
	}

	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}
