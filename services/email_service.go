// services/email_service.go - Fire-and-forget email notifications
package services

import (
	"fmt"
	"log"
	"net/smtp"
	"os"
	"strings"
)

// Template keys understood by the notifier.
const (
	TemplateVerification  = "verification"
	TemplateWelcome       = "welcome"
	TemplateAcceptance    = "acceptance"
	TemplateRejection     = "rejection"
	TemplateWaitlist      = "waitlist"
	TemplateConfirmation  = "confirmation"
	TemplatePasswordReset = "password-reset"
)

// Notifier is the outbound email boundary. Sends are best-effort: callers
// log failures and never fail the primary operation on them.
type Notifier interface {
	Send(recipients []string, subject, templateKey string, data map[string]string) error
}

// plainBodies are the plain-text templates; {{key}} placeholders are filled
// from the data map. HTML templating is deliberately out of scope.
var plainBodies = map[string]string{
	TemplateVerification:  "Hi {{name}},\n\nVerify your email with this code: {{code}}\nOr follow: {{link}}\n",
	TemplateWelcome:       "Hi {{name}},\n\nYour email is verified. Complete your application to be considered for admission!\n",
	TemplateAcceptance:    "Hi {{name}},\n\nCongratulations, you have been admitted! Log in to confirm your spot.\n",
	TemplateRejection:     "Hi {{name}},\n\nThank you for applying. Unfortunately we cannot offer you a spot this year.\n",
	TemplateWaitlist:      "Hi {{name}},\n\nYou are on the waitlist. We will let you know if a spot opens up.\n",
	TemplateConfirmation:  "Hi {{name}},\n\nYour attendance is confirmed. See you at the event!\n",
	TemplatePasswordReset: "Hi,\n\nReset your password using this link: {{link}}\nThe link expires in 24 hours.\n",
}

// SMTPNotifier sends through the SMTP relay configured via environment
// variables. With no SMTP_HOST configured it degrades to logging, which is
// what local development wants.
type SMTPNotifier struct {
	host     string
	port     string
	username string
	password string
	from     string
}

func NewSMTPNotifier() *SMTPNotifier {
	return &SMTPNotifier{
		host:     os.Getenv("SMTP_HOST"),
		port:     getenvDefault("SMTP_PORT", "587"),
		username: os.Getenv("SMTP_USERNAME"),
		password: os.Getenv("SMTP_PASSWORD"),
		from:     getenvDefault("SMTP_FROM", "no-reply@localhost"),
	}
}

func (n *SMTPNotifier) Send(recipients []string, subject, templateKey string, data map[string]string) error {
	body, ok := plainBodies[templateKey]
	if !ok {
		return fmt.Errorf("unknown email template %q", templateKey)
	}
	for key, value := range data {
		body = strings.ReplaceAll(body, "{{"+key+"}}", value)
	}

	if n.host == "" {
		log.Printf("📧 (smtp disabled) to=%v subject=%q template=%s", recipients, subject, templateKey)
		return nil
	}

	msg := []byte("From: " + n.from + "\r\n" +
		"To: " + strings.Join(recipients, ", ") + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"\r\n" + body)

	var auth smtp.Auth
	if n.username != "" {
		auth = smtp.PlainAuth("", n.username, n.password, n.host)
	}
	return smtp.SendMail(n.host+":"+n.port, auth, n.from, recipients, msg)
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
