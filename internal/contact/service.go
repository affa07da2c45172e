// Copyright (c) 2026 ClaimPoint. All rights reserved.

package contact

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/claimpoint/claimpoint/internal/platform/mail"
	"github.com/claimpoint/claimpoint/pkg/uuidv7"
)

// Service implements contact form use cases.
type Service struct {
	repo         Repository
	mailer       mail.Mailer
	supportInbox string
	logger       *slog.Logger
}

// NewService constructs a contact [Service].
func NewService(repo Repository, mailer mail.Mailer, supportInbox string, logger *slog.Logger) *Service {
	return &Service{
		repo:         repo,
		mailer:       mailer,
		supportInbox: supportInbox,
		logger:       logger,
	}
}

// SubmitInput holds a validated contact form payload.
type SubmitInput struct {
	Name    string
	Email   string
	Subject string
	Body    string
}

/*
Submit persists a contact message and notifies both parties.

Description: The message is stored first; a failed store rejects the
submission. The two follow-up emails (support notification, sender
acknowledgement) are best effort. A mail failure is logged but never
surfaced, since the message is already safely recorded.

Parameters:
  - context: context.Context
  - input: SubmitInput

Returns:
  - *Message: Persisted entity
  - err: Persistence failures
*/
func (service *Service) Submit(context context.Context, input SubmitInput) (*Message, error) {
	message := &Message{
		ID:        uuidv7.New(),
		Name:      input.Name,
		Email:     input.Email,
		Subject:   input.Subject,
		Body:      input.Body,
		CreatedAt: time.Now(),
	}

	if err := service.repo.Create(context, message); err != nil {
		return nil, fmt.Errorf("contact_service_submit_failed: %w", err)
	}

	service.notifySupport(context, message)
	service.acknowledgeSender(context, message)

	return message, nil
}

func (service *Service) notifySupport(context context.Context, message *Message) {
	subject := fmt.Sprintf("[Contact] %s", message.Subject)
	body := fmt.Sprintf(
		"New contact message %s\n\nFrom: %s <%s>\n\n%s\n",
		message.ID, message.Name, message.Email, message.Body,
	)

	if err := service.mailer.Send(context, service.supportInbox, subject, body); err != nil {
		service.logger.Error("contact_support_notification_failed", "error", err, "message_id", message.ID)
	}
}

func (service *Service) acknowledgeSender(context context.Context, message *Message) {
	body := fmt.Sprintf(
		"Hi %s,\n\nWe have received your message and will get back to you shortly.\n\nYour reference: %s\n\nClaimPoint Support\n",
		message.Name, message.ID,
	)

	if err := service.mailer.Send(context, message.Email, "We received your message", body); err != nil {
		service.logger.Error("contact_acknowledgement_failed", "error", err, "message_id", message.ID)
	}
}
