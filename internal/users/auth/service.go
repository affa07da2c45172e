// Copyright (c) 2026 ClaimPoint. All rights reserved.

/*
Package auth implements the core identity and access management system.

It handles everything from user registration and secure password hashing to
email ownership verification (OTP over email) and bearer-token login.

Architecture:

  - Service: Orchestrates business logic (Register, VerifyEmail, Login).
  - Repository: Abstracted interfaces for Postgres (Users) and Redis (OTP codes).
  - Security: Leverages Bcrypt and HMAC-signed JWTs.

The package ensures that identity data remains consistent and secure throughout
the platform's lifecycle.
*/
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/claimpoint/claimpoint/internal/platform/apperr"
	"github.com/claimpoint/claimpoint/internal/platform/mail"
	"github.com/claimpoint/claimpoint/internal/platform/sec"
	"github.com/claimpoint/claimpoint/pkg/uuidv7"
)

// # Contracts & Types

// TokenProvider defines the contract for generating security tokens.
type TokenProvider interface {
	// GenerateAccessToken creates a signed bearer token for the given user.
	//
	// # Parameters
	//   - userID: The ID of the account.
	//   - email: The email of the account.
	//   - role: The role of the account.
	//   - timeToLive: The duration before the token expires.
	//
	// # Returns
	//   - A signed JWT string, or an err if signing fails.
	GenerateAccessToken(userID, email, role string, timeToLive time.Duration) (string, error)
}

// Service implements user authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, registration,
// or login logic must be reviewed carefully.
type Service struct {
	userRepository UserRepository
	otpRepository  OTPRepository
	tokenProvider  TokenProvider
	mailer         mail.Mailer
	logger         *slog.Logger
}

// NewService constructs a new auth [Service] with necessary dependencies.
func NewService(
	userRepo UserRepository,
	otpRepo OTPRepository,
	tokenProv TokenProvider,
	mailer mail.Mailer,
	logger *slog.Logger,
) *Service {
	return &Service{
		userRepository: userRepo,
		otpRepository:  otpRepo,
		tokenProvider:  tokenProv,
		mailer:         mailer,
		logger:         logger,
	}
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new member.
type RegisterInput struct {
	FullName string
	Email    string
	Phone    string
	Password string
}

/*
Register validates, hashes, and persists a brand new user account.

Description: Creates an unverified USER account, then generates a one-time
code and emails it to the submitted address. The account cannot log in until
the code is redeemed via [Service.VerifyEmail].

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *User: Created entity
  - err: Conflict (if identity exists) or storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*User, error) {

	// Verify email uniqueness. Return a client-safe Conflict err.
	_, err := service.userRepository.FindByEmail(context, input.Email)
	if err == nil {
		return nil, apperr.Conflict("Email is already registered")
	}

	// Prevent storing plain-text passwords. Default cost is used for balance
	// between security and CPU utilization during registration spikes.
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	// Construct the new User entity. Time-sortable ID to prevent PG index fragmentation.
	user := &User{
		ID:            uuidv7.New(),
		FullName:      input.FullName,
		Email:         input.Email,
		Phone:         input.Phone,
		PasswordHash:  hashedPassword,
		Role:          sec.RoleUser,
		EmailVerified: false,
	}

	// Persist the user to the database
	if err := service.userRepository.Create(context, user); err != nil {
		return nil, fmt.Errorf("auth_service_register_failed: %w", err)
	}

	// Generate, store, and email the verification code.
	if err := service.issueVerificationCode(context, user.Email); err != nil {
		// The account exists but the code never left the building; the user
		// can recover through the resend endpoint, so log and continue.
		service.logger.Error("auth_verification_code_issue_failed",
			slog.String("email", user.Email),
			slog.Any("error", err),
		)
	}

	return user, nil
}

// issueVerificationCode creates a fresh OTP for the email, stores it in the
// volatile repository, and sends it out.
func (service *Service) issueVerificationCode(context context.Context, email string) error {
	code, err := sec.GenerateOTP(OTPLength)
	if err != nil {
		return fmt.Errorf("auth_service_generate_otp_failed: %w", err)
	}

	if err := service.otpRepository.Set(context, email, code, OTPTTL); err != nil {
		return fmt.Errorf("auth_service_store_otp_failed: %w", err)
	}

	body := fmt.Sprintf(
		"Welcome to ClaimPoint!\n\nYour verification code is: %s\n\nIt expires in %d minutes.",
		code, int(OTPTTL.Minutes()),
	)

	if err := service.mailer.Send(context, email, "Verify your ClaimPoint account", body); err != nil {
		return fmt.Errorf("auth_service_send_otp_failed: %w", err)
	}

	return nil
}

/*
VerifyEmail confirms a user's email address using the emailed one-time code.

Parameters:
  - context: context.Context
  - email: string
  - code: string

Returns:
  - err: Validation (expired/incorrect code) or database errors
*/
func (service *Service) VerifyEmail(context context.Context, email, code string) error {

	// Retrieve the active code for this address from Redis
	storedCode, err := service.otpRepository.Get(context, email)
	if err != nil {
		return apperr.ValidationError("Verification code is expired or invalid")
	}

	if storedCode != code {
		return apperr.ValidationError("Verification code is incorrect")
	}

	// Resolve the account being verified
	user, err := service.userRepository.FindByEmail(context, email)
	if err != nil {
		return apperr.NotFound("Account")
	}

	// Update the user's status to verified in persistent storage
	if err := service.userRepository.MarkVerified(context, user.ID); err != nil {
		return fmt.Errorf("auth_service_verify_email_failed: %w", err)
	}

	// Cleanup the used verification code from Redis
	_ = service.otpRepository.Delete(context, email)

	return nil
}

/*
ResendVerificationCode re-issues the OTP for an unverified account.

Description: Enforces a cooldown between emails to the same address. Unknown
or already-verified emails return success without sending anything, so the
endpoint cannot be used to probe which addresses are registered.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - err: RateLimited during the cooldown window, or delivery failures
*/
func (service *Service) ResendVerificationCode(context context.Context, email string) error {

	// Cooldown gate first; it also applies to unknown emails so response
	// timing stays uniform.
	fresh, err := service.otpRepository.MarkResent(context, email, ResendCooldown)
	if err != nil {
		return fmt.Errorf("auth_service_resend_cooldown_failed: %w", err)
	}
	if !fresh {
		return apperr.RateLimited(int(ResendCooldown.Seconds()))
	}

	// NOTE: We don't reveal whether the email exists to prevent user enumeration.
	user, err := service.userRepository.FindByEmail(context, email)
	if err != nil || user.EmailVerified {
		return nil
	}

	return service.issueVerificationCode(context, email)
}

// # Authentication Flow

// LoginSession represents a successfully issued bearer credential.
type LoginSession struct {
	Token string `json:"token"`
}

/*
Login validates user credentials and issues a bearer token.

Description: Verifies identity with a constant-time password comparison and
requires a verified email before any token is issued.

Parameters:
  - context: context.Context
  - email: string
  - password: string

Returns:
  - *LoginSession: Transport-ready bearer token
  - err: Unauthorized or internal failures
*/
func (service *Service) Login(context context.Context, email, password string) (*LoginSession, error) {
	user, err := service.userRepository.FindByEmail(context, email)

	// If (err != nil) the user does not exist. Generic message to prevent enumeration.
	if err != nil {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	// Verify password hash using constant-time comparison in bcrypt to prevent timing attacks
	if !sec.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	// Unverified accounts must finish the OTP flow first.
	if !user.EmailVerified {
		return nil, apperr.Forbidden("Email address is not verified")
	}

	token, err := service.tokenProvider.GenerateAccessToken(user.ID, user.Email, string(user.Role), AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	return &LoginSession{Token: token}, nil
}

// # Profile

/*
GetProfile resolves the full account record for an authenticated user ID.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *User: Hydrated account entity
  - err: Unauthorized when the account no longer exists
*/
func (service *Service) GetProfile(context context.Context, userID string) (*User, error) {
	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		// A valid token for a deleted account must read as an auth failure,
		// so clients tear the session down rather than retrying.
		return nil, apperr.Unauthorized("Account not found or suspended")
	}
	return user, nil
}
