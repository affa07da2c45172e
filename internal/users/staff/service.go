// Copyright (c) 2026 ClaimPoint. All rights reserved.

/*
Package staff implements staff account administration.

Admins enroll counter staff by email; the new account is created pre-verified
with a temporary password delivered over email. Staff then log in through the
regular auth flow.

# Architecture

The package reuses the auth domain's [auth.UserRepository] — staff are ordinary
accounts with the STAFF role, not a separate table.
*/
package staff

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/claimpoint/claimpoint/internal/platform/apperr"
	"github.com/claimpoint/claimpoint/internal/platform/mail"
	"github.com/claimpoint/claimpoint/internal/platform/sec"
	"github.com/claimpoint/claimpoint/internal/users/auth"
	"github.com/claimpoint/claimpoint/pkg/uuidv7"
)

// Service implements staff administration use cases.
type Service struct {
	userRepository auth.UserRepository
	mailer         mail.Mailer
	logger         *slog.Logger
}

// NewService constructs a staff [Service].
func NewService(userRepo auth.UserRepository, mailer mail.Mailer, logger *slog.Logger) *Service {
	return &Service{
		userRepository: userRepo,
		mailer:         mailer,
		logger:         logger,
	}
}

// AddStaffInput holds the data required to enroll a staff member.
type AddStaffInput struct {
	Email    string
	FullName string
	Phone    string
}

/*
AddStaff creates a pre-verified STAFF account and emails the invite.

Description: Generates a temporary password, persists the account with
emailverified already set (the invite email itself proves address ownership),
and sends the credentials to the new staff member.

Parameters:
  - context: context.Context
  - input: AddStaffInput

Returns:
  - *auth.User: Created staff account
  - err: Conflict (if the email is taken) or storage/delivery errors
*/
func (service *Service) AddStaff(context context.Context, input AddStaffInput) (*auth.User, error) {

	// Verify email uniqueness. Return a client-safe Conflict err.
	_, err := service.userRepository.FindByEmail(context, input.Email)
	if err == nil {
		return nil, apperr.Conflict("Email is already registered")
	}

	tempPassword, err := sec.GenerateTempPassword(auth.TempPasswordLength)
	if err != nil {
		return nil, fmt.Errorf("staff_service_temp_password_failed: %w", err)
	}

	hashedPassword, err := sec.HashPassword(tempPassword)
	if err != nil {
		return nil, fmt.Errorf("staff_service_hash_failed: %w", err)
	}

	user := &auth.User{
		ID:            uuidv7.New(),
		FullName:      input.FullName,
		Email:         input.Email,
		Phone:         input.Phone,
		PasswordHash:  hashedPassword,
		Role:          sec.RoleStaff,
		EmailVerified: true,
	}

	if err := service.userRepository.Create(context, user); err != nil {
		return nil, fmt.Errorf("staff_service_create_failed: %w", err)
	}

	body := fmt.Sprintf(
		"Hello %s,\n\nA ClaimPoint staff account has been created for you.\n\n"+
			"Temporary password: %s\n\nPlease log in and change it immediately.",
		input.FullName, tempPassword,
	)

	if err := service.mailer.Send(context, input.Email, "Your ClaimPoint staff account", body); err != nil {
		// The account exists either way; the admin can re-invite. Log loudly.
		service.logger.Error("staff_invite_send_failed",
			slog.String("email", input.Email),
			slog.Any("error", err),
		)
	}

	return user, nil
}

/*
ListStaff returns every STAFF account, newest first.

Parameters:
  - context: context.Context

Returns:
  - []*auth.User: Staff accounts
  - err: Retrieval failures
*/
func (service *Service) ListStaff(context context.Context) ([]*auth.User, error) {
	return service.userRepository.ListByRole(context, string(sec.RoleStaff))
}
