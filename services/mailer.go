package services

import (
	"fmt"
	"net/smtp"
	"os"

	"github.com/prasetyadi/delivery-app/config"
	"github.com/prasetyadi/delivery-app/utils"
)

// Mailer delivers outbound mail such as password-reset codes.
type Mailer interface {
	Send(to, subject, body string) error
}

// SMTPMailer sends through a plain SMTP relay configured via SMTP_* env.
type SMTPMailer struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

func (m *SMTPMailer) Send(to, subject, body string) error {
	addr := m.Host + ":" + m.Port
	msg := []byte(fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n", m.From, to, subject, body))

	var auth smtp.Auth
	if m.Username != "" {
		auth = smtp.PlainAuth("", m.Username, m.Password, m.Host)
	}
	return smtp.SendMail(addr, auth, m.From, []string{to}, msg)
}

// LogMailer writes mail to the application log. Used when SMTP is not
// configured, so development setups still surface the OTP.
type LogMailer struct{}

func (LogMailer) Send(to, subject, body string) error {
	utils.InfoLogger.Printf("mail (not sent, SMTP unconfigured) to=%s subject=%q body=%q", to, subject, body)
	return nil
}

// NewMailerFromEnv picks the SMTP mailer when SMTP_HOST is set.
func NewMailerFromEnv() Mailer {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		return LogMailer{}
	}
	return &SMTPMailer{
		Host:     host,
		Port:     config.GetEnv("SMTP_PORT", "587"),
		Username: os.Getenv("SMTP_USERNAME"),
		Password: os.Getenv("SMTP_PASSWORD"),
		From:     config.GetEnv("SMTP_FROM", "no-reply@deliveryapp.local"),
	}
}
