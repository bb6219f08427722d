package config

import (
	"errors"
	"fmt"
	"net/smtp"
	"os"
	"strings"
)

// SMTPSender delivers best-effort notification emails. Failures are the
// caller's problem to log; they must never block or void a decision.
type SMTPSender struct {
	Server   string
	Port     string
	Username string
	Password string
}

func NewSMTPSenderFromEnv() *SMTPSender {
	server := strings.TrimSpace(os.Getenv("SMTP_SERVER"))
	if server == "" {
		server = "smtp.gmail.com"
	}
	port := strings.TrimSpace(os.Getenv("SMTP_PORT"))
	if port == "" {
		port = "587"
	}
	return &SMTPSender{
		Server:   server,
		Port:     port,
		Username: strings.TrimSpace(os.Getenv("EMAIL_USERNAME")),
		Password: strings.TrimSpace(os.Getenv("EMAIL_PASSWORD")),
	}
}

func (s *SMTPSender) Send(to string, subject string, body string) error {
	if s.Username == "" || s.Password == "" {
		return errors.New("email credentials not set; skipping email sending")
	}

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n", s.Username, to, subject, body)
	auth := smtp.PlainAuth("", s.Username, s.Password, s.Server)
	addr := fmt.Sprintf("%s:%s", s.Server, s.Port)
	return smtp.SendMail(addr, auth, s.Username, []string{to}, []byte(msg))
}

// RecipientForRole maps a notification role to its configured address.
func RecipientForRole(role string) string {
	switch role {
	case "raw_storage":
		if v := os.Getenv("RAW_PRODUCT_STORAGE_EMAIL"); v != "" {
			return v
		}
		return "raw_storage@example.com"
	case "manufacturing":
		if v := os.Getenv("MANUFACTURING_EMAIL"); v != "" {
			return v
		}
		return "manufacturing@example.com"
	}
	return ""
}
