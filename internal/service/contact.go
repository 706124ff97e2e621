package service

import (
	"context"
	"errors"
	"fmt"

	"roofbox-backend/internal/domain"
	"roofbox-backend/internal/logger"
	"roofbox-backend/internal/metrics"
	"roofbox-backend/internal/repository"
)

type contactService struct {
	contactRepo repository.ContactMessageRepository
	notifier    Notifier
}

func NewContactService(contactRepo repository.ContactMessageRepository, notifier Notifier) ContactService {
	return &contactService{contactRepo: contactRepo, notifier: notifier}
}

func (s *contactService) SubmitContactMessage(ctx context.Context, name, email, message string) (*domain.ContactMessage, error) {
	msg := &domain.ContactMessage{
		Name:    name,
		Email:   email,
		Message: message,
		Status:  domain.ContactStatusNew,
	}

	payload := domain.NewContactNotification(msg)
	if err := ValidateNotification(payload); err != nil {
		logger.Info("Contact message rejected", "error", err)
		return nil, err
	}

	if err := s.contactRepo.Create(ctx, msg); err != nil {
		logger.Error("Failed to store contact message", "error", err)
		if !errors.Is(err, domain.ErrPersistence) {
			err = fmt.Errorf("%w: %w", domain.ErrPersistence, err)
		}
		return nil, err
	}
	metrics.ContactMessagesCreatedTotal.Inc()

	s.notifier.Notify(ctx, payload)
	return msg, nil
}
