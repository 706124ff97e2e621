package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"roofbox-backend/internal/config"
	"roofbox-backend/internal/domain"
	"roofbox-backend/internal/repository"
	"roofbox-backend/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRentals struct {
	repository.RentalRequestRepository
	pending int32
	err     error
}

func (f *fakeRentals) CountByStatus(_ context.Context, status domain.RentalStatus) (int32, error) {
	if status != domain.RentalStatusPending {
		return 0, errors.New("unexpected status")
	}
	return f.pending, f.err
}

type fakeContacts struct {
	repository.ContactMessageRepository
	unread int32
}

func (f *fakeContacts) CountByStatus(_ context.Context, status domain.ContactStatus) (int32, error) {
	if status != domain.ContactStatusNew {
		return 0, errors.New("unexpected status")
	}
	return f.unread, nil
}

type fakeSessions struct {
	repository.SessionRepository
	before time.Time
}

func (f *fakeSessions) DeleteExpired(_ context.Context, before time.Time) (int64, error) {
	f.before = before
	return 4, nil
}

type recordingMailer struct {
	sent []*service.MailMessage
	err  error
}

func (m *recordingMailer) Send(_ context.Context, msg *service.MailMessage) (*domain.SendResult, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.sent = append(m.sent, msg)
	return &domain.SendResult{ID: uuid.NewString(), Provider: "log"}, nil
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Mail.From = "noreply@dachbox.example"
	cfg.Mail.FromName = "Dachbox"
	cfg.Mail.To = "info@dachbox.example"
	cfg.Mail.TimeoutSeconds = 5
	return cfg
}

func TestSendPendingDigest(t *testing.T) {
	t.Run("Sends", func(t *testing.T) {
		mailer := &recordingMailer{}
		jr := NewJobRunner(&fakeRentals{pending: 3}, &fakeContacts{unread: 1}, &fakeSessions{}, mailer, testConfig())

		require.NoError(t, jr.SendPendingDigest())
		require.Len(t, mailer.sent, 1)
		assert.Equal(t, "info@dachbox.example", mailer.sent[0].To)
		assert.Equal(t, "Offene Anfragen: 3 Miete, 1 Kontakt", mailer.sent[0].Subject)
	})

	t.Run("SkipsWhenEmpty", func(t *testing.T) {
		mailer := &recordingMailer{}
		jr := NewJobRunner(&fakeRentals{}, &fakeContacts{}, &fakeSessions{}, mailer, testConfig())

		require.NoError(t, jr.SendPendingDigest())
		assert.Empty(t, mailer.sent)
	})

	t.Run("RepositoryError", func(t *testing.T) {
		mailer := &recordingMailer{}
		jr := NewJobRunner(&fakeRentals{err: domain.ErrPersistence}, &fakeContacts{}, &fakeSessions{}, mailer, testConfig())

		assert.ErrorIs(t, jr.SendPendingDigest(), domain.ErrPersistence)
		assert.Empty(t, mailer.sent)
	})

	t.Run("MailerError", func(t *testing.T) {
		mailer := &recordingMailer{err: errors.New("smtp down")}
		jr := NewJobRunner(&fakeRentals{pending: 1}, &fakeContacts{}, &fakeSessions{}, mailer, testConfig())

		assert.ErrorIs(t, jr.SendPendingDigest(), domain.ErrNotification)
	})
}

func TestPurgeExpiredSessions(t *testing.T) {
	sessions := &fakeSessions{}
	jr := NewJobRunner(&fakeRentals{}, &fakeContacts{}, sessions, &recordingMailer{}, testConfig())
	fixed := time.Date(2025, 5, 20, 3, 30, 0, 0, time.UTC)
	jr.now = func() time.Time { return fixed }

	require.NoError(t, jr.PurgeExpiredSessions())
	assert.Equal(t, fixed, sessions.before)
}

func TestRunWithRecovery(t *testing.T) {
	jr := NewJobRunner(&fakeRentals{}, &fakeContacts{}, &fakeSessions{}, &recordingMailer{}, testConfig())
	err := jr.runWithRecovery("Boom", func() error { panic("kaputt") })
	assert.ErrorContains(t, err, "kaputt")
}
