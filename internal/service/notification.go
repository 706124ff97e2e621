package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"roofbox-backend/internal/domain"
	"roofbox-backend/internal/logger"
	"roofbox-backend/internal/metrics"

	"github.com/go-playground/validator/v10"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type contactFields struct {
	Name    string `validate:"required,max=100"`
	Email   string `validate:"simple_email"`
	Message string `validate:"required,max=5000"`
}

type rentalContactFields struct {
	FirstName string `validate:"required,max=100"`
	LastName  string `validate:"required,max=100"`
	Email     string `validate:"simple_email"`
	Phone     string `validate:"required,max=30"`
}

type rentalFields struct {
	rentalContactFields
	ProductName string `validate:"required,max=200"`
}

// fieldMessages are the user-facing texts, keyed by struct field.
var fieldMessages = map[string]struct{ field, message string }{
	"Name":        {"name", "Invalid name (max 100 characters)"},
	"Email":       {"email", "Invalid email address"},
	"Message":     {"message", "Invalid message (max 5000 characters)"},
	"FirstName":   {"firstName", "Invalid first name"},
	"LastName":    {"lastName", "Invalid last name"},
	"Phone":       {"phone", "Invalid phone number"},
	"ProductName": {"productName", "Invalid product name"},
}

var payloadValidator = newPayloadValidator()

func newPayloadValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("simple_email", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return emailPattern.MatchString(s) && utf8.RuneCountInString(s) <= 255
	})
	return v
}

// ValidateNotification applies the dispatcher's field rules. The first
// failing rule is returned as a *domain.ValidationError.
func ValidateNotification(p *domain.NotificationPayload) error {
	var err error
	switch p.Kind {
	case domain.NotificationKindContact:
		err = payloadValidator.Struct(contactFields{Name: p.Name, Email: p.Email, Message: p.Message})
	case domain.NotificationKindRental:
		err = payloadValidator.Struct(rentalFields{
			rentalContactFields: rentalContactFields{
				FirstName: p.FirstName,
				LastName:  p.LastName,
				Email:     p.Email,
				Phone:     p.Phone,
			},
			ProductName: p.ProductName,
		})
	default:
		return domain.NewValidationError("type", "Invalid notification type")
	}
	return firstValidationError(err)
}

// ValidateRentalContact checks the customer block of a booking with the
// same rules the rental notification applies.
func ValidateRentalContact(firstName, lastName, email, phone string) error {
	return firstValidationError(payloadValidator.Struct(rentalContactFields{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Phone:     phone,
	}))
}

func firstValidationError(err error) error {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		if m, ok := fieldMessages[verrs[0].StructField()]; ok {
			return domain.NewValidationError(m.field, m.message)
		}
	}
	return fmt.Errorf("validate notification: %w", err)
}

var mailTemplates = template.Must(template.New("mail").Funcs(template.FuncMap{
	"nl2br": func(s string) template.HTML {
		return template.HTML(strings.ReplaceAll(template.HTMLEscapeString(s), "\n", "<br>"))
	},
}).Parse(`
{{define "contact"}}
<h2>Neue Kontaktanfrage</h2>
<p><strong>Name:</strong> {{.Name}}</p>
<p><strong>E-Mail:</strong> {{.Email}}</p>
<p><strong>Nachricht:</strong></p>
<p>{{nl2br .Message}}</p>
{{end}}
{{define "rental"}}
<h2>Neue Mietanfrage</h2>
<p><strong>Produkt:</strong> {{.ProductName}}</p>
<p><strong>Zeitraum:</strong> {{.StartDate}} bis {{.EndDate}} ({{.Days}} Tage)</p>
<p><strong>Gesamtpreis:</strong> {{.TotalPrice.String}}€</p>
<hr>
<h3>Kundendaten:</h3>
<p><strong>Name:</strong> {{.FirstName}} {{.LastName}}</p>
<p><strong>E-Mail:</strong> {{.Email}}</p>
<p><strong>Telefon:</strong> {{.Phone}}</p>
{{end}}
{{define "digest"}}
<h2>Offene Anfragen</h2>
<p><strong>Neue Mietanfragen:</strong> {{.PendingRentals}}</p>
<p><strong>Neue Kontaktanfragen:</strong> {{.NewMessages}}</p>
{{end}}
`))

// RenderNotification builds the subject and HTML body for a payload. Every
// user-supplied value is HTML-escaped, including in the subject.
func RenderNotification(p *domain.NotificationPayload) (subject, html string, err error) {
	var buf bytes.Buffer
	switch p.Kind {
	case domain.NotificationKindContact:
		subject = "Neue Kontaktanfrage von " + template.HTMLEscapeString(p.Name)
		err = mailTemplates.ExecuteTemplate(&buf, "contact", p)
	case domain.NotificationKindRental:
		subject = "Neue Mietanfrage: " + template.HTMLEscapeString(p.ProductName)
		err = mailTemplates.ExecuteTemplate(&buf, "rental", p)
	default:
		return "", "", domain.NewValidationError("type", "Invalid notification type")
	}
	if err != nil {
		return "", "", fmt.Errorf("render %s notification: %w", p.Kind, err)
	}
	return subject, strings.TrimSpace(buf.String()), nil
}

// RenderDigest builds the daily summary of requests still waiting for an answer.
func RenderDigest(pendingRentals, newMessages int32) (subject, html string, err error) {
	var buf bytes.Buffer
	data := struct{ PendingRentals, NewMessages int32 }{pendingRentals, newMessages}
	if err := mailTemplates.ExecuteTemplate(&buf, "digest", data); err != nil {
		return "", "", fmt.Errorf("render digest: %w", err)
	}
	subject = fmt.Sprintf("Offene Anfragen: %d Miete, %d Kontakt", pendingRentals, newMessages)
	return subject, strings.TrimSpace(buf.String()), nil
}

type notificationService struct {
	mailer   Mailer
	from     string
	fromName string
	to       string
	timeout  time.Duration
}

func NewNotificationService(mailer Mailer, from, fromName, to string, timeout time.Duration) NotificationService {
	return &notificationService{
		mailer:   mailer,
		from:     from,
		fromName: fromName,
		to:       to,
		timeout:  timeout,
	}
}

func (s *notificationService) Dispatch(ctx context.Context, p *domain.NotificationPayload) (*domain.SendResult, error) {
	logger.EnterMethod("notificationService.Dispatch", "kind", p.Kind)

	if err := ValidateNotification(p); err != nil {
		metrics.NotificationsFailedTotal.WithLabelValues("invalid").Inc()
		logger.WarnContext(ctx, "Notification rejected", "kind", p.Kind, "error", err)
		return nil, err
	}

	subject, html, err := RenderNotification(p)
	if err != nil {
		metrics.NotificationsFailedTotal.WithLabelValues(string(p.Kind)).Inc()
		logger.ExitMethodWithError("notificationService.Dispatch", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrNotification, err)
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	res, err := s.mailer.Send(ctx, &MailMessage{
		FromAddress: s.from,
		FromName:    s.fromName,
		To:          s.to,
		Subject:     subject,
		HTML:        html,
	})
	if err != nil {
		metrics.NotificationsFailedTotal.WithLabelValues(string(p.Kind)).Inc()
		logger.ExitMethodWithError("notificationService.Dispatch", err, "kind", p.Kind)
		return nil, fmt.Errorf("send %s notification: %w: %w", p.Kind, domain.ErrNotification, err)
	}

	metrics.NotificationsSentTotal.WithLabelValues(string(p.Kind)).Inc()
	logger.ExitMethod("notificationService.Dispatch", "kind", p.Kind, "provider", res.Provider, "message_id", res.ID)
	return res, nil
}
