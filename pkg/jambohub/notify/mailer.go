package notify

import (
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"

	"github.com/vahc/jambohub/pkg/jambohub/config"
)

// SMTPMailer delivers mail over SMTP with implicit TLS (port 465).
type SMTPMailer struct {
	host       string
	port       string
	username   string
	password   string
	senderName string
}

// NewSMTPMailer builds a mailer from config. Returns nil when no SMTP
// password is configured, which disables email delivery.
func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	if cfg.SMTPPassword == "" {
		return nil
	}
	return &SMTPMailer{
		host:       cfg.SMTPHost,
		port:       cfg.SMTPPort,
		username:   cfg.SMTPUser,
		password:   cfg.SMTPPassword,
		senderName: cfg.SenderName,
	}
}

// Send delivers a single message
func (m *SMTPMailer) Send(to Recipient, subject, body string) error {
	addr := net.JoinHostPort(m.host, m.port)
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: m.host})
	if err != nil {
		return fmt.Errorf("dial %s: %w", addr, err)
	}

	client, err := smtp.NewClient(conn, m.host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("smtp handshake: %w", err)
	}
	defer client.Close()

	auth := smtp.PlainAuth("", m.username, m.password, m.host)
	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("smtp auth: %w", err)
	}

	if err := client.Mail(m.username); err != nil {
		return err
	}
	if err := client.Rcpt(to.Email); err != nil {
		return err
	}

	w, err := client.Data()
	if err != nil {
		return err
	}
	msg := fmt.Sprintf("From: %s <%s>\r\nTo: %s <%s>\r\nSubject: %s\r\n\r\n%s",
		m.senderName, m.username, to.Name, to.Email, subject, body)
	if _, err := w.Write([]byte(msg)); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	return client.Quit()
}
