package jobs

import (
	"context"
	"fmt"

	"roofbox-backend/internal/domain"
	"roofbox-backend/internal/logger"
	"roofbox-backend/internal/service"
)

// SendPendingDigest mails the shop inbox a summary of pending rental
// requests and unanswered contact messages. Nothing is sent when both are zero.
func (jr *JobRunner) SendPendingDigest() error {
	return jr.runWithRecovery("SendPendingDigest", func() error {
		ctx, cancel := context.WithTimeout(context.Background(), jr.config.MailTimeout()*2)
		defer cancel()

		pending, err := jr.rentals.CountByStatus(ctx, domain.RentalStatusPending)
		if err != nil {
			return fmt.Errorf("count pending rentals: %w", err)
		}
		unread, err := jr.contacts.CountByStatus(ctx, domain.ContactStatusNew)
		if err != nil {
			return fmt.Errorf("count new contact messages: %w", err)
		}

		if pending == 0 && unread == 0 {
			logger.Info("Nothing pending, digest skipped")
			return nil
		}

		subject, html, err := service.RenderDigest(pending, unread)
		if err != nil {
			return err
		}

		mail := jr.config.Mail
		res, err := jr.mailer.Send(ctx, &service.MailMessage{
			FromAddress: mail.From,
			FromName:    mail.FromName,
			To:          mail.To,
			Subject:     subject,
			HTML:        html,
		})
		if err != nil {
			return fmt.Errorf("send digest: %w: %w", domain.ErrNotification, err)
		}

		logger.Info("Digest sent", "pending_rentals", pending, "new_messages", unread, "provider", res.Provider)
		return nil
	})
}

// PurgeExpiredSessions deletes session rows whose expiry has passed.
func (jr *JobRunner) PurgeExpiredSessions() error {
	return jr.runWithRecovery("PurgeExpiredSessions", func() error {
		n, err := jr.sessions.DeleteExpired(context.Background(), jr.now())
		if err != nil {
			return err
		}
		logger.Info("Expired sessions purged", "count", n)
		return nil
	})
}
