package notifications

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"

	"license-backend/internal/shared/config"
)

// Mailer delivers a single message. The scheduler treats any returned error
// as transient and leaves the notification pending for the next tick.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// SMTPMailer speaks implicit TLS (port 465 style) with PLAIN auth. All
// connection parameters are injected through config so tests and deployments
// never depend on ambient environment reads here.
type SMTPMailer struct {
	cfg config.SMTPConfig
}

func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

func (m *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	addr := net.JoinHostPort(m.cfg.Host, m.cfg.Port)
	tlsConfig := &tls.Config{ServerName: m.cfg.Host}

	dialer := &tls.Dialer{NetDialer: &net.Dialer{}, Config: tlsConfig}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("smtp dial: %w", err)
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, m.cfg.Host)
	if err != nil {
		return fmt.Errorf("smtp handshake: %w", err)
	}
	defer client.Quit()

	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("smtp auth: %w", err)
	}

	if err := client.Mail(m.cfg.From); err != nil {
		return fmt.Errorf("smtp mail from: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("smtp rcpt to: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=\"utf-8\"\r\n\r\n%s",
		m.cfg.From, to, subject, body)
	if _, err := w.Write([]byte(msg)); err != nil {
		return fmt.Errorf("smtp write: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("smtp close: %w", err)
	}
	return nil
}

// ReminderMessage builds the subject and body for an expiry reminder.
// The output depends only on the notification's title and date, so a
// retried send produces the identical message.
func ReminderMessage(n Notification) (subject, body string) {
	subject = fmt.Sprintf("Lembrete de vencimento: %s", n.Title)
	body = fmt.Sprintf("O documento %q vence em %s. Verifique as condicionantes e providencie a renovacao.",
		n.Title, n.NotifyDate.Format("02/01/2006"))
	return subject, body
}
