// Copyright (c) 2026 ClaimPoint. All rights reserved.

/*
Package mail provides outbound email delivery over SMTP.

It is primarily used for transactional messages in the registration flow
(OTP verification codes), staff onboarding invites, and contact-form
notifications.

Core Responsibilities:

  - Delivery: Single place that knows SMTP host, auth, and TLS policy.
  - Isolation: Domain services depend on the narrow [Mailer] interface,
    never on the SMTP client directly.
  - Safety: Context-aware sending so a slow mail server can't stall a
    request past its deadline.
*/
package mail

import (
	stdctx "context"
	"fmt"
	"log/slog"

	"github.com/wneessen/go-mail"
)

// Mailer is the outbound email contract consumed by domain services.
type Mailer interface {

	/*
		Send delivers a single plain-text message.

		Parameters:
		  - context: context.Context
		  - to: Recipient address
		  - subject: Message subject line
		  - body: Plain-text message body

		Returns:
		  - error: Connection or delivery failures
	*/
	Send(context stdctx.Context, to, subject, body string) error
}

// # SMTP Implementation

// SMTPConfig holds the connection settings for the SMTP mailer.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPMailer implements [Mailer] on top of wneessen/go-mail.
type SMTPMailer struct {
	client *mail.Client
	from   string
	logger *slog.Logger
}

// NewSMTPMailer constructs an SMTP-backed mailer.
// Credentials are optional: local development relays accept unauthenticated mail.
func NewSMTPMailer(cfg SMTPConfig, logger *slog.Logger) (*SMTPMailer, error) {
	options := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}

	if cfg.Username != "" {
		options = append(options,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.Host, options...)
	if err != nil {
		return nil, fmt.Errorf("mail: failed to create smtp client: %w", err)
	}

	return &SMTPMailer{client: client, from: cfg.From, logger: logger}, nil
}

/*
Send delivers a plain-text message via the configured SMTP relay.

Parameters:
  - context: context.Context
  - to: Recipient address
  - subject: Message subject line
  - body: Plain-text message body

Returns:
  - error: Envelope construction or delivery failures
*/
func (mailer *SMTPMailer) Send(context stdctx.Context, to, subject, body string) error {
	message := mail.NewMsg()

	if err := message.From(mailer.from); err != nil {
		return fmt.Errorf("mail: invalid sender address: %w", err)
	}
	if err := message.To(to); err != nil {
		return fmt.Errorf("mail: invalid recipient address: %w", err)
	}

	message.Subject(subject)
	message.SetBodyString(mail.TypeTextPlain, body)

	if err := mailer.client.DialAndSendWithContext(context, message); err != nil {
		return fmt.Errorf("mail: delivery failed: %w", err)
	}

	mailer.logger.Info("mail_sent",
		slog.String("to", to),
		slog.String("subject", subject),
	)

	return nil
}
