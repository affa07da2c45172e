// Copyright (c) 2026 ClaimPoint. All rights reserved.

package session_test

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/claimpoint/claimpoint/internal/client/api"
	"github.com/claimpoint/claimpoint/internal/client/credstore"
	"github.com/claimpoint/claimpoint/internal/client/session"
)

// # Test Fakes

// memStore is an in-memory credential store.
type memStore struct {
	mu    sync.Mutex
	creds credstore.Credentials
}

func (s *memStore) Get(_ context.Context) (credstore.Credentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.creds, nil
}

func (s *memStore) Set(_ context.Context, token, role string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = credstore.Credentials{Token: token, Role: role}
	return nil
}

func (s *memStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = credstore.Credentials{}
	return nil
}

// fakeGateway simulates the backend with one registered account and
// programmable failures.
type fakeGateway struct {
	mu sync.Mutex

	email    string
	password string
	role     string
	otp      string

	loginErr    error
	profileErr  error
	profileNil  bool
	registerErr error
	verifyErr   error
	itemsErr    error
	items       []api.FoundItem

	resendCalls int

	// When set, Login blocks until loginRelease is closed. loginStarted is
	// closed once Login has been entered.
	loginStarted chan struct{}
	loginRelease chan struct{}
}

func (g *fakeGateway) Login(_ context.Context, email, password string) (string, error) {
	if g.loginStarted != nil {
		close(g.loginStarted)
		<-g.loginRelease
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.loginErr != nil {
		return "", g.loginErr
	}
	if email != g.email || password != g.password {
		return "", &api.Error{Code: "UNAUTHORIZED", Message: "Invalid login credentials", Status: 401}
	}
	return "tok-" + email, nil
}

func (g *fakeGateway) GetProfile(_ context.Context, token string) (*api.Profile, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.profileErr != nil {
		return nil, g.profileErr
	}
	if g.profileNil {
		return nil, nil
	}
	if token != "tok-"+g.email {
		return nil, &api.Error{Code: "UNAUTHORIZED", Message: "Account not found or suspended", Status: 401}
	}
	return &api.Profile{ID: "u1", FullName: "Dana Reeve", Email: g.email, Role: g.role}, nil
}

func (g *fakeGateway) Register(_ context.Context, input api.RegisterInput) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.registerErr != nil {
		return g.registerErr
	}
	g.email = input.Email
	g.password = input.Password
	return nil
}

func (g *fakeGateway) VerifyEmail(_ context.Context, otp, email string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.verifyErr != nil {
		return g.verifyErr
	}
	if otp != g.otp || email != g.email {
		return &api.Error{Code: "VALIDATION_ERROR", Message: "Verification code is incorrect", Status: 400}
	}
	return nil
}

func (g *fakeGateway) ResendVerificationCode(_ context.Context, _ string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.resendCalls++
	return nil
}

func (g *fakeGateway) GetAllFoundItems(_ context.Context, _ string) ([]api.FoundItem, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.itemsErr != nil {
		return nil, g.itemsErr
	}
	return g.items, nil
}

func newTestController(gateway *fakeGateway, store *memStore) *session.Controller {
	return session.NewController(gateway, store, slog.New(slog.DiscardHandler))
}

func validGateway() *fakeGateway {
	return &fakeGateway{
		email:    "dana@example.com",
		password: "correct-horse",
		role:     "USER",
		otp:      "483920",
		items:    []api.FoundItem{{ID: "i1", Name: "Black Umbrella", Status: "STORED"}},
	}
}

// # Login

/*
TestController_Login_Success verifies token and role end up both set in
memory and both persisted.
*/
func TestController_Login_Success(t *testing.T) {
	store := &memStore{}
	controller := newTestController(validGateway(), store)

	require.NoError(t, controller.Login(context.Background(), "dana@example.com", "correct-horse"))

	snapshot := controller.Snapshot()
	assert.True(t, snapshot.Authenticated())
	assert.Equal(t, "tok-dana@example.com", snapshot.Token)
	assert.Equal(t, "USER", snapshot.Role)
	assert.Equal(t, "Dana Reeve", snapshot.Profile.FullName)
	assert.Empty(t, snapshot.AuthError)
	assert.False(t, snapshot.AuthLoading)

	// Persisted as a pair.
	stored, err := store.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-dana@example.com", stored.Token)
	assert.Equal(t, "USER", stored.Role)

	// The items cache was refetched with the new token.
	assert.Len(t, snapshot.Items, 1)
}

/*
TestController_Login_BadCredentials verifies the server message becomes the
auth error and nothing is persisted.
*/
func TestController_Login_BadCredentials(t *testing.T) {
	store := &memStore{}
	controller := newTestController(validGateway(), store)

	err := controller.Login(context.Background(), "dana@example.com", "wrong")
	require.Error(t, err)

	snapshot := controller.Snapshot()
	assert.False(t, snapshot.Authenticated())
	assert.Equal(t, "Invalid login credentials", snapshot.AuthError)
	assert.False(t, snapshot.AuthLoading)

	stored, _ := store.Get(context.Background())
	assert.False(t, stored.Present())
}

/*
TestController_Login_ProfileFetchFails verifies the all-or-nothing rule: a
token obtained without a profile is a full failure with nothing persisted.
*/
func TestController_Login_ProfileFetchFails(t *testing.T) {
	gateway := validGateway()
	gateway.profileErr = errors.New("connection reset")
	store := &memStore{}
	controller := newTestController(gateway, store)

	err := controller.Login(context.Background(), "dana@example.com", "correct-horse")
	require.Error(t, err)

	snapshot := controller.Snapshot()
	assert.False(t, snapshot.Authenticated())
	assert.Empty(t, snapshot.Token)
	assert.Empty(t, snapshot.Role)

	// Non-API errors fall back to the generic message.
	assert.Equal(t, "Something went wrong. Please try again.", snapshot.AuthError)

	stored, _ := store.Get(context.Background())
	assert.False(t, stored.Present())
}

/*
TestController_Login_EmptyProfile verifies that a gateway reporting success
with no profile record is handled as a profile-fetch failure instead of a
crash: nothing is applied or persisted and only the friendly message surfaces.
*/
func TestController_Login_EmptyProfile(t *testing.T) {
	gateway := validGateway()
	gateway.profileNil = true
	store := &memStore{}
	controller := newTestController(gateway, store)

	err := controller.Login(context.Background(), "dana@example.com", "correct-horse")
	require.Error(t, err)

	snapshot := controller.Snapshot()
	assert.False(t, snapshot.Authenticated())
	assert.Equal(t, "Something went wrong. Please try again.", snapshot.AuthError)

	stored, _ := store.Get(context.Background())
	assert.False(t, stored.Present())
}

/*
TestController_StartupVerify_EmptyProfile verifies that a hollow profile
response during the startup check clears the stored session silently.
*/
func TestController_StartupVerify_EmptyProfile(t *testing.T) {
	gateway := validGateway()
	gateway.profileNil = true
	store := &memStore{}
	require.NoError(t, store.Set(context.Background(), "tok-dana@example.com", "USER"))
	controller := newTestController(gateway, store)

	require.NoError(t, controller.StartupVerify(context.Background()))

	snapshot := controller.Snapshot()
	assert.False(t, snapshot.Authenticated())
	assert.Empty(t, snapshot.AuthError)

	stored, _ := store.Get(context.Background())
	assert.False(t, stored.Present())
}

/*
TestController_Login_BlocksOverlappingOperation verifies the single
outstanding operation rule.
*/
func TestController_Login_BlocksOverlappingOperation(t *testing.T) {
	gateway := validGateway()
	gateway.loginStarted = make(chan struct{})
	gateway.loginRelease = make(chan struct{})
	controller := newTestController(gateway, &memStore{})

	done := make(chan error, 1)
	go func() {
		done <- controller.Login(context.Background(), "dana@example.com", "correct-horse")
	}()

	<-gateway.loginStarted

	// A second operation while the first is in flight is refused.
	err := controller.Register(context.Background(), api.RegisterInput{Email: "x@example.com"})
	assert.ErrorIs(t, err, session.ErrOperationInFlight)

	close(gateway.loginRelease)
	require.NoError(t, <-done)
	assert.True(t, controller.Snapshot().Authenticated())
}

/*
TestController_Login_SupersededByLogout verifies that a login resolving after
a logout is discarded instead of resurrecting the session.
*/
func TestController_Login_SupersededByLogout(t *testing.T) {
	gateway := validGateway()
	gateway.loginStarted = make(chan struct{})
	gateway.loginRelease = make(chan struct{})
	store := &memStore{}
	controller := newTestController(gateway, store)

	done := make(chan error, 1)
	go func() {
		done <- controller.Login(context.Background(), "dana@example.com", "correct-horse")
	}()

	<-gateway.loginStarted
	require.NoError(t, controller.Logout(context.Background()))
	close(gateway.loginRelease)
	require.NoError(t, <-done)

	snapshot := controller.Snapshot()
	assert.False(t, snapshot.Authenticated())
	assert.Empty(t, snapshot.AuthError)

	stored, _ := store.Get(context.Background())
	assert.False(t, stored.Present())
}

// # Registration and Verification

/*
TestController_RegisterVerify_EndState verifies the composite path ends in
the same state as a direct login.
*/
func TestController_RegisterVerify_EndState(t *testing.T) {
	gateway := validGateway()
	store := &memStore{}
	controller := newTestController(gateway, store)

	require.NoError(t, controller.Register(context.Background(), api.RegisterInput{
		FullName: "Dana Reeve",
		Email:    "dana@example.com",
		Phone:    "+12025550123",
		Password: "correct-horse",
	}))

	snapshot := controller.Snapshot()
	require.NotNil(t, snapshot.Pending)
	assert.Equal(t, "dana@example.com", snapshot.Pending.Email)
	assert.WithinDuration(t, time.Now().Add(5*time.Minute), snapshot.Pending.OTPExpiry, time.Minute)

	require.NoError(t, controller.VerifyOtp(context.Background(), "483920"))

	// Identical end state to a plain login.
	snapshot = controller.Snapshot()
	assert.True(t, snapshot.Authenticated())
	assert.Equal(t, "tok-dana@example.com", snapshot.Token)
	assert.Equal(t, "USER", snapshot.Role)
	assert.Nil(t, snapshot.Pending)

	stored, _ := store.Get(context.Background())
	assert.Equal(t, "tok-dana@example.com", stored.Token)
	assert.Equal(t, "USER", stored.Role)
}

/*
TestController_VerifyOtp_WrongCode verifies a rejected code keeps the pending
registration for retry and touches no durable state.
*/
func TestController_VerifyOtp_WrongCode(t *testing.T) {
	gateway := validGateway()
	store := &memStore{}
	controller := newTestController(gateway, store)

	require.NoError(t, controller.Register(context.Background(), api.RegisterInput{
		Email:    "dana@example.com",
		Password: "correct-horse",
	}))

	err := controller.VerifyOtp(context.Background(), "000000")
	require.Error(t, err)

	snapshot := controller.Snapshot()
	require.NotNil(t, snapshot.Pending)
	assert.Equal(t, "Verification code is incorrect", snapshot.AuthError)
	assert.False(t, snapshot.Authenticated())

	stored, _ := store.Get(context.Background())
	assert.False(t, stored.Present())

	// The correct code still works afterwards.
	require.NoError(t, controller.VerifyOtp(context.Background(), "483920"))
	assert.True(t, controller.Snapshot().Authenticated())
}

/*
TestController_VerifyOtp_WithoutPending verifies the guard.
*/
func TestController_VerifyOtp_WithoutPending(t *testing.T) {
	controller := newTestController(validGateway(), &memStore{})

	err := controller.VerifyOtp(context.Background(), "483920")
	assert.ErrorIs(t, err, session.ErrNoPendingRegistration)
}

/*
TestController_ResendOtp verifies resend leaves the auth flags untouched.
*/
func TestController_ResendOtp(t *testing.T) {
	gateway := validGateway()
	controller := newTestController(gateway, &memStore{})

	require.NoError(t, controller.Register(context.Background(), api.RegisterInput{
		Email:    "dana@example.com",
		Password: "correct-horse",
	}))

	require.NoError(t, controller.ResendOtp(context.Background(), "dana@example.com"))
	assert.Equal(t, 1, gateway.resendCalls)

	snapshot := controller.Snapshot()
	assert.False(t, snapshot.AuthLoading)
	assert.Empty(t, snapshot.AuthError)
	assert.NotNil(t, snapshot.Pending)
}

// # Logout

/*
TestController_Logout verifies the session and durable storage always end
empty, regardless of prior state.
*/
func TestController_Logout(t *testing.T) {
	store := &memStore{}
	controller := newTestController(validGateway(), store)

	require.NoError(t, controller.Login(context.Background(), "dana@example.com", "correct-horse"))
	require.True(t, controller.Snapshot().Authenticated())

	require.NoError(t, controller.Logout(context.Background()))

	snapshot := controller.Snapshot()
	assert.False(t, snapshot.Authenticated())
	assert.Nil(t, snapshot.Profile)
	assert.Nil(t, snapshot.Pending)
	assert.Empty(t, snapshot.Items)
	assert.Empty(t, snapshot.AuthError)

	stored, _ := store.Get(context.Background())
	assert.False(t, stored.Present())

	// Logging out twice is harmless.
	require.NoError(t, controller.Logout(context.Background()))
}

// # Startup

/*
TestController_StartupVerify_ValidToken verifies a persisted session is
restored silently.
*/
func TestController_StartupVerify_ValidToken(t *testing.T) {
	gateway := validGateway()
	store := &memStore{}
	require.NoError(t, store.Set(context.Background(), "tok-dana@example.com", "USER"))
	controller := newTestController(gateway, store)

	require.NoError(t, controller.StartupVerify(context.Background()))

	snapshot := controller.Snapshot()
	assert.True(t, snapshot.Authenticated())
	assert.Equal(t, "USER", snapshot.Role)
	assert.Len(t, snapshot.Items, 1)
}

/*
TestController_StartupVerify_RejectedToken verifies the silent logout path:
session empty, storage cleared, no error and no authError.
*/
func TestController_StartupVerify_RejectedToken(t *testing.T) {
	gateway := validGateway()
	store := &memStore{}
	require.NoError(t, store.Set(context.Background(), "tok-stale", "USER"))
	controller := newTestController(gateway, store)

	require.NoError(t, controller.StartupVerify(context.Background()))

	snapshot := controller.Snapshot()
	assert.False(t, snapshot.Authenticated())
	assert.Empty(t, snapshot.AuthError)

	stored, _ := store.Get(context.Background())
	assert.False(t, stored.Present())
}

/*
TestController_StartupVerify_RunsOnce verifies the second call is a no-op.
*/
func TestController_StartupVerify_RunsOnce(t *testing.T) {
	gateway := validGateway()
	store := &memStore{}
	controller := newTestController(gateway, store)

	require.NoError(t, controller.StartupVerify(context.Background()))

	// Seeding credentials afterwards must not be picked up by a second call.
	require.NoError(t, store.Set(context.Background(), "tok-dana@example.com", "USER"))
	require.NoError(t, controller.StartupVerify(context.Background()))

	assert.False(t, controller.Snapshot().Authenticated())
}

// # Found Items

/*
TestController_RefreshItems_FailureDegrades verifies an items outage yields
an empty list and never contaminates the auth error state.
*/
func TestController_RefreshItems_FailureDegrades(t *testing.T) {
	gateway := validGateway()
	controller := newTestController(gateway, &memStore{})

	require.NoError(t, controller.Login(context.Background(), "dana@example.com", "correct-horse"))
	require.Len(t, controller.Snapshot().Items, 1)

	gateway.mu.Lock()
	gateway.itemsErr = errors.New("catalogue down")
	gateway.mu.Unlock()

	controller.RefreshItems(context.Background())

	snapshot := controller.Snapshot()
	assert.Empty(t, snapshot.Items)
	assert.NotNil(t, snapshot.Items)
	assert.False(t, snapshot.ItemsLoading)
	assert.Empty(t, snapshot.AuthError)
	assert.True(t, snapshot.Authenticated())
}
