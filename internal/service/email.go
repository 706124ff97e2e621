package service

import (
	"context"
	"fmt"

	"roofbox-backend/internal/config"
	"roofbox-backend/internal/domain"
	"roofbox-backend/internal/logger"

	"github.com/google/uuid"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"gopkg.in/gomail.v2"
)

// NewMailer returns the provider selected by mail.provider.
func NewMailer(cfg config.MailConfig) (Mailer, error) {
	switch cfg.Provider {
	case "sendgrid":
		return NewSendGridMailer(cfg.SendGridAPIKey), nil
	case "smtp":
		return NewSMTPMailer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.User, cfg.SMTP.Password), nil
	case "log", "":
		return NewLogMailer(), nil
	default:
		return nil, fmt.Errorf("unknown mail provider: %q", cfg.Provider)
	}
}

type sendGridMailer struct {
	client *sendgrid.Client
}

func NewSendGridMailer(apiKey string) Mailer {
	return &sendGridMailer{client: sendgrid.NewSendClient(apiKey)}
}

func (m *sendGridMailer) Send(ctx context.Context, msg *MailMessage) (*domain.SendResult, error) {
	from := mail.NewEmail(msg.FromName, msg.FromAddress)
	to := mail.NewEmail("", msg.To)
	message := mail.NewSingleEmail(from, msg.Subject, to, "", msg.HTML)

	logger.ExternalServiceCall("sendgrid", "send")
	response, err := m.client.SendWithContext(ctx, message)
	if err != nil {
		logger.ExternalServiceResult("sendgrid", "send", err)
		return nil, fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		err := fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
		logger.ExternalServiceResult("sendgrid", "send", err)
		return nil, err
	}

	res := &domain.SendResult{Provider: "sendgrid"}
	if ids := response.Headers["X-Message-Id"]; len(ids) > 0 {
		res.ID = ids[0]
	}
	logger.ExternalServiceResult("sendgrid", "send", nil, "status", response.StatusCode, "message_id", res.ID)
	return res, nil
}

type smtpMailer struct {
	dialer *gomail.Dialer
}

func NewSMTPMailer(host string, port int, username, password string) Mailer {
	return &smtpMailer{dialer: gomail.NewDialer(host, port, username, password)}
}

func (m *smtpMailer) Send(ctx context.Context, msg *MailMessage) (*domain.SendResult, error) {
	id := uuid.NewString()

	gm := gomail.NewMessage()
	gm.SetAddressHeader("From", msg.FromAddress, msg.FromName)
	gm.SetHeader("To", msg.To)
	gm.SetHeader("Subject", msg.Subject)
	gm.SetHeader("Message-ID", fmt.Sprintf("<%s@%s>", id, m.dialer.Host))
	gm.SetBody("text/html", msg.HTML)

	logger.ExternalServiceCall("smtp", "send", "host", m.dialer.Host)

	// gomail has no context support; the send is abandoned, not cancelled, on timeout.
	done := make(chan error, 1)
	go func() { done <- m.dialer.DialAndSend(gm) }()

	select {
	case err := <-done:
		logger.ExternalServiceResult("smtp", "send", err, "message_id", id)
		if err != nil {
			return nil, fmt.Errorf("failed to send email via gomail: %w", err)
		}
		return &domain.SendResult{ID: id, Provider: "smtp"}, nil
	case <-ctx.Done():
		logger.ExternalServiceResult("smtp", "send", ctx.Err(), "message_id", id)
		return nil, fmt.Errorf("failed to send email via gomail: %w", ctx.Err())
	}
}

type logMailer struct{}

// NewLogMailer returns a Mailer that only logs. Used in development.
func NewLogMailer() Mailer {
	return logMailer{}
}

func (logMailer) Send(ctx context.Context, msg *MailMessage) (*domain.SendResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	id := uuid.NewString()
	logger.InfoContext(ctx, "Mail not sent (log provider)",
		"to", msg.To, "subject_length", len(msg.Subject), "body_length", len(msg.HTML), "message_id", id)
	return &domain.SendResult{ID: id, Provider: "log"}, nil
}
