package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"gopkg.in/gomail.v2"

	"locagest-backend/internal/config"
	"locagest-backend/internal/lifecycle"
)

// smtpEmailService delivers mail through a plain SMTP relay.
type smtpEmailService struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func NewSMTPEmailService(host string, port int, username, password, from string) EmailService {
	return &smtpEmailService{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}
}

func (s *smtpEmailService) SendDueDateReminder(ctx context.Context, to, clientName string, expectedEnd time.Time, urgency lifecycle.Urgency) error {
	subject, body := reminderContent(clientName, expectedEnd, urgency)

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.host, s.port, s.username, s.password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send due date reminder: %w", err)
	}
	return nil
}

func (s *smtpEmailService) SendFinalizationNotice(ctx context.Context, to, clientName string, amountCents int64) error {
	subject, body := finalizationContent(clientName, amountCents)

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.host, s.port, s.username, s.password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send finalization notice: %w", err)
	}
	return nil
}

// sendGridEmailService delivers mail through the SendGrid API. Preferred in
// environments where outbound SMTP is blocked.
type sendGridEmailService struct {
	apiKey   string
	from     string
	fromName string
}

func NewSendGridEmailService(apiKey, from, fromName string) EmailService {
	return &sendGridEmailService{apiKey: apiKey, from: from, fromName: fromName}
}

func (s *sendGridEmailService) SendDueDateReminder(ctx context.Context, to, clientName string, expectedEnd time.Time, urgency lifecycle.Urgency) error {
	subject, body := reminderContent(clientName, expectedEnd, urgency)
	return s.send(to, clientName, subject, body)
}

func (s *sendGridEmailService) SendFinalizationNotice(ctx context.Context, to, clientName string, amountCents int64) error {
	subject, body := finalizationContent(clientName, amountCents)
	return s.send(to, clientName, subject, body)
}

func (s *sendGridEmailService) send(to, toName, subject, plainText string) error {
	from := mail.NewEmail(s.fromName, s.from)
	recipient := mail.NewEmail(toName, to)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, "")

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}

// NewEmailServiceFromConfig picks the provider configured in cfg.Email.
func NewEmailServiceFromConfig(cfg *config.Config) (EmailService, error) {
	switch cfg.Email.Provider {
	case "sendgrid":
		return NewSendGridEmailService(cfg.Email.SendGridAPIKey, cfg.Email.From, cfg.Email.FromName), nil
	case "smtp":
		return NewSMTPEmailService(cfg.Email.Host, cfg.Email.Port, cfg.Email.User, cfg.Email.Password, cfg.Email.From), nil
	default:
		return nil, fmt.Errorf("unknown email provider %q", cfg.Email.Provider)
	}
}

func reminderContent(clientName string, expectedEnd time.Time, urgency lifecycle.Urgency) (subject, body string) {
	end := expectedEnd.Format("2006-01-02")
	switch urgency {
	case lifecycle.UrgencyOverdue:
		subject = fmt.Sprintf("Overdue rental for %s", clientName)
		body = fmt.Sprintf("The rental for %s passed its expected end date on %s and is still open.\n\nFollow up on payment and collection.", clientName, end)
	default:
		subject = fmt.Sprintf("Rental for %s is due soon", clientName)
		body = fmt.Sprintf("The rental for %s reaches its expected end date on %s.\n\nContact the client to arrange renewal or return.", clientName, end)
	}
	return subject, body
}

func finalizationContent(clientName string, amountCents int64) (subject, body string) {
	subject = fmt.Sprintf("Rental finalized for %s", clientName)
	body = fmt.Sprintf("The rental for %s has been paid and collected. Billed amount: %.2f.\n\nThe equipment is back in stock.", clientName, float64(amountCents)/100)
	return subject, body
}
