// Copyright (c) 2026 ClaimPoint. All rights reserved.

package auth_test

import (
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/claimpoint/claimpoint/internal/platform/apperr"
	"github.com/claimpoint/claimpoint/internal/platform/sec"
	"github.com/claimpoint/claimpoint/internal/users/auth"
)

// # Test Fakes

// fakeUserRepo is an in-memory UserRepository keyed by email.
type fakeUserRepo struct {
	byEmail map[string]*auth.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: map[string]*auth.User{}}
}

func (r *fakeUserRepo) FindByID(_ context.Context, id string) (*auth.User, error) {
	for _, user := range r.byEmail {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	if user, ok := r.byEmail[email]; ok {
		return user, nil
	}
	return nil, apperr.NotFound("User")
}

func (r *fakeUserRepo) Create(_ context.Context, user *auth.User) error {
	r.byEmail[user.Email] = user
	return nil
}

func (r *fakeUserRepo) MarkVerified(_ context.Context, userID string) error {
	for _, user := range r.byEmail {
		if user.ID == userID {
			user.EmailVerified = true
			return nil
		}
	}
	return apperr.NotFound("User")
}

func (r *fakeUserRepo) ListByRole(_ context.Context, role string) ([]*auth.User, error) {
	users := make([]*auth.User, 0)
	for _, user := range r.byEmail {
		if string(user.Role) == role {
			users = append(users, user)
		}
	}
	return users, nil
}

// fakeOTPRepo is an in-memory OTPRepository ignoring TTLs.
type fakeOTPRepo struct {
	codes     map[string]string
	cooldowns map[string]bool
}

func newFakeOTPRepo() *fakeOTPRepo {
	return &fakeOTPRepo{codes: map[string]string{}, cooldowns: map[string]bool{}}
}

func (r *fakeOTPRepo) Set(_ context.Context, email, code string, _ time.Duration) error {
	r.codes[email] = code
	return nil
}

func (r *fakeOTPRepo) Get(_ context.Context, email string) (string, error) {
	code, ok := r.codes[email]
	if !ok {
		return "", fmt.Errorf("code not found")
	}
	return code, nil
}

func (r *fakeOTPRepo) Delete(_ context.Context, email string) error {
	delete(r.codes, email)
	return nil
}

func (r *fakeOTPRepo) MarkResent(_ context.Context, email string, _ time.Duration) (bool, error) {
	if r.cooldowns[email] {
		return false, nil
	}
	r.cooldowns[email] = true
	return true, nil
}

// fakeMailer records every outbound email.
type fakeMailer struct {
	sent []string // recipient addresses in send order
	fail bool
}

func (m *fakeMailer) Send(_ context.Context, to, _, _ string) error {
	if m.fail {
		return fmt.Errorf("smtp unavailable")
	}
	m.sent = append(m.sent, to)
	return nil
}

// fakeTokens issues predictable tokens.
type fakeTokens struct{}

func (fakeTokens) GenerateAccessToken(userID, _, role string, _ time.Duration) (string, error) {
	return "token-" + userID + "-" + role, nil
}

func newTestService(users *fakeUserRepo, otps *fakeOTPRepo, mailer *fakeMailer) *auth.Service {
	logger := slog.New(slog.DiscardHandler)
	return auth.NewService(users, otps, fakeTokens{}, mailer, logger)
}

// # Registration

/*
TestService_Register verifies account creation and code delivery.
*/
func TestService_Register(t *testing.T) {
	users := newFakeUserRepo()
	otps := newFakeOTPRepo()
	mailer := &fakeMailer{}
	service := newTestService(users, otps, mailer)

	user, err := service.Register(context.Background(), auth.RegisterInput{
		FullName: "Dana Reeve",
		Email:    "dana@example.com",
		Phone:    "+12025550123",
		Password: "correct-horse",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, sec.RoleUser, user.Role)
	assert.False(t, user.EmailVerified)

	// The stored hash must never equal the plain password.
	assert.NotEqual(t, "correct-horse", user.PasswordHash)

	// A code was stored and emailed.
	assert.NotEmpty(t, otps.codes["dana@example.com"])
	assert.Equal(t, []string{"dana@example.com"}, mailer.sent)
}

/*
TestService_Register_DuplicateEmail verifies the uniqueness conflict.
*/
func TestService_Register_DuplicateEmail(t *testing.T) {
	users := newFakeUserRepo()
	service := newTestService(users, newFakeOTPRepo(), &fakeMailer{})

	input := auth.RegisterInput{
		FullName: "Dana Reeve",
		Email:    "dana@example.com",
		Phone:    "+12025550123",
		Password: "correct-horse",
	}

	_, err := service.Register(context.Background(), input)
	require.NoError(t, err)

	_, err = service.Register(context.Background(), input)
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "CONFLICT", ae.Code)
}

/*
TestService_Register_MailFailure verifies that a failed OTP email does not
fail the registration; the resend endpoint covers recovery.
*/
func TestService_Register_MailFailure(t *testing.T) {
	users := newFakeUserRepo()
	service := newTestService(users, newFakeOTPRepo(), &fakeMailer{fail: true})

	user, err := service.Register(context.Background(), auth.RegisterInput{
		FullName: "Dana Reeve",
		Email:    "dana@example.com",
		Phone:    "+12025550123",
		Password: "correct-horse",
	})

	require.NoError(t, err)
	assert.NotNil(t, user)
}

// # Verification

/*
TestService_VerifyEmail walks the full register-then-verify path.
*/
func TestService_VerifyEmail(t *testing.T) {
	users := newFakeUserRepo()
	otps := newFakeOTPRepo()
	service := newTestService(users, otps, &fakeMailer{})

	user, err := service.Register(context.Background(), auth.RegisterInput{
		FullName: "Dana Reeve",
		Email:    "dana@example.com",
		Phone:    "+12025550123",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	code := otps.codes["dana@example.com"]
	require.NoError(t, service.VerifyEmail(context.Background(), "dana@example.com", code))

	stored, err := users.FindByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.True(t, stored.EmailVerified)

	// The code is single-use.
	assert.Empty(t, otps.codes["dana@example.com"])
}

/*
TestService_VerifyEmail_WrongCode verifies rejection without state change.
*/
func TestService_VerifyEmail_WrongCode(t *testing.T) {
	users := newFakeUserRepo()
	otps := newFakeOTPRepo()
	service := newTestService(users, otps, &fakeMailer{})

	user, err := service.Register(context.Background(), auth.RegisterInput{
		FullName: "Dana Reeve",
		Email:    "dana@example.com",
		Phone:    "+12025550123",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	err = service.VerifyEmail(context.Background(), "dana@example.com", "000000")
	require.Error(t, err)

	stored, err := users.FindByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.False(t, stored.EmailVerified)

	// The real code survives for a retry.
	assert.NotEmpty(t, otps.codes["dana@example.com"])
}

/*
TestService_ResendVerificationCode verifies the cooldown and the silent
handling of unknown addresses.
*/
func TestService_ResendVerificationCode(t *testing.T) {
	users := newFakeUserRepo()
	otps := newFakeOTPRepo()
	mailer := &fakeMailer{}
	service := newTestService(users, otps, mailer)

	_, err := service.Register(context.Background(), auth.RegisterInput{
		FullName: "Dana Reeve",
		Email:    "dana@example.com",
		Phone:    "+12025550123",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	// First resend goes through.
	require.NoError(t, service.ResendVerificationCode(context.Background(), "dana@example.com"))
	assert.Len(t, mailer.sent, 2)

	// Second resend hits the cooldown.
	err = service.ResendVerificationCode(context.Background(), "dana@example.com")
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "RATE_LIMITED", ae.Code)

	// Unknown addresses succeed without sending anything.
	sent := len(mailer.sent)
	require.NoError(t, service.ResendVerificationCode(context.Background(), "nobody@example.com"))
	assert.Len(t, mailer.sent, sent)
}

// # Login

/*
TestService_Login covers the credential and verification gates.
*/
func TestService_Login(t *testing.T) {
	users := newFakeUserRepo()
	otps := newFakeOTPRepo()
	service := newTestService(users, otps, &fakeMailer{})

	_, err := service.Register(context.Background(), auth.RegisterInput{
		FullName: "Dana Reeve",
		Email:    "dana@example.com",
		Phone:    "+12025550123",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	// Unverified accounts are locked out with a Forbidden.
	_, err = service.Login(context.Background(), "dana@example.com", "correct-horse")
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)

	code := otps.codes["dana@example.com"]
	require.NoError(t, service.VerifyEmail(context.Background(), "dana@example.com", code))

	// Wrong password and unknown email read identically.
	_, err = service.Login(context.Background(), "dana@example.com", "wrong")
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)

	_, err = service.Login(context.Background(), "ghost@example.com", "whatever")
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)

	// Verified credentials produce a token.
	session, err := service.Login(context.Background(), "dana@example.com", "correct-horse")
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
}

/*
TestService_GetProfile verifies profile resolution and the unauthorized
mapping for vanished accounts.
*/
func TestService_GetProfile(t *testing.T) {
	users := newFakeUserRepo()
	service := newTestService(users, newFakeOTPRepo(), &fakeMailer{})

	user, err := service.Register(context.Background(), auth.RegisterInput{
		FullName: "Dana Reeve",
		Email:    "dana@example.com",
		Phone:    "+12025550123",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	profile, err := service.GetProfile(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "dana@example.com", profile.Email)

	_, err = service.GetProfile(context.Background(), "missing-id")
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)
}
