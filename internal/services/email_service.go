package services

import (
	"fmt"
	"log"
	"net/smtp"
)

// EmailSender dispatches confirmation emails. Delivery failures are reported
// to the caller; retries belong to the mail infrastructure, not here.
type EmailSender interface {
	SendConfirmationEmail(to, name, link string) error
}

// SMTPEmailSender sends confirmation emails through a configured SMTP endpoint.
type SMTPEmailSender struct {
	host     string
	port     string
	username string
	password string
	from     string
}

// NewSMTPEmailSender creates a new SMTPEmailSender.
func NewSMTPEmailSender(host, port, username, password, from string) *SMTPEmailSender {
	return &SMTPEmailSender{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}
}

func (s *SMTPEmailSender) SendConfirmationEmail(to, name, link string) error {
	msg := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: Confirm your email\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n"+
			"Hi %s,\n\nplease confirm your email address by following the link below. The link expires in 15 minutes.\n\n%s\n",
		s.from, to, name, link,
	)

	var auth smtp.Auth
	if s.username != "" {
		auth = smtp.PlainAuth("", s.username, s.password, s.host)
	}

	addr := s.host + ":" + s.port
	if err := smtp.SendMail(addr, auth, s.from, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send confirmation email: %w", err)
	}

	return nil
}

// LogEmailSender logs confirmation links instead of sending mail. Used when
// SMTP is not configured.
type LogEmailSender struct{}

func (s *LogEmailSender) SendConfirmationEmail(to, name, link string) error {
	log.Printf("confirmation email for %s <%s>: %s", name, to, link)
	return nil
}
