// Copyright (c) 2026 ClaimPoint. All rights reserved.

/*
Package session owns the client's authoritative authentication state.

All mutation of the session, the pending registration, and the found-items
cache is funnelled through the [Controller]'s named operations. Views read
snapshots and never mutate.

# State Machine

ANONYMOUS -> AUTHENTICATING -> AUTHENTICATED, and, for new accounts,
ANONYMOUS -> REGISTERING -> VERIFYING -> AUTHENTICATING -> AUTHENTICATED.
Any failure returns to the state before the failed step. AUTHENTICATED falls
back to ANONYMOUS only through explicit logout or a failed startup check.

# In-Flight Results

Every asynchronous operation captures a generation number when it starts.
Logout bumps the generation, so a response that resolves after a logout is
discarded instead of resurrecting the cleared session.
*/
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/claimpoint/claimpoint/internal/client/api"
	"github.com/claimpoint/claimpoint/internal/client/credstore"
)

// ErrOperationInFlight is returned when an auth operation is invoked while
// another one is still running.
var ErrOperationInFlight = errors.New("an authentication operation is already in progress")

// errEmptyProfile marks a gateway that reported success without a profile
// record. It is treated like any other profile-fetch failure.
var errEmptyProfile = errors.New("gateway returned no profile")

// ErrNoPendingRegistration is returned by OTP operations outside the
// register-then-verify window.
var ErrNoPendingRegistration = errors.New("no registration is awaiting verification")

// genericFailure is shown when the backend gave no usable message.
const genericFailure = "Something went wrong. Please try again."

// otpValidity mirrors the server-side code lifetime.
const otpValidity = 5 * time.Minute

// Gateway is the slice of the API client the controller depends on.
type Gateway interface {
	Login(context context.Context, email, password string) (string, error)
	GetProfile(context context.Context, token string) (*api.Profile, error)
	Register(context context.Context, input api.RegisterInput) error
	VerifyEmail(context context.Context, otp, email string) error
	ResendVerificationCode(context context.Context, email string) error
	GetAllFoundItems(context context.Context, token string) ([]api.FoundItem, error)
}

// PendingRegistration bridges a successful register call and the OTP
// verification that follows it. The password echo stays in memory only, to
// drive the automatic login once the code is accepted.
type PendingRegistration struct {
	Email        string
	passwordEcho string
	OTPExpiry    time.Time
}

// Snapshot is a read-only copy of the current client state.
type Snapshot struct {
	Token        string
	Role         string
	Profile      *api.Profile
	AuthError    string
	AuthLoading  bool
	Items        []api.FoundItem
	ItemsLoading bool
	Pending      *PendingRegistration
}

// Authenticated reports whether a validated session is active.
func (s Snapshot) Authenticated() bool {
	return s.Token != "" && s.Role != ""
}

// Controller orchestrates the authentication lifecycle.
type Controller struct {
	gateway Gateway
	creds   credstore.Store
	logger  *slog.Logger

	mu           sync.Mutex
	token        string
	role         string
	profile      *api.Profile
	authError    string
	authLoading  bool
	items        []api.FoundItem
	itemsLoading bool
	pending      *PendingRegistration
	generation   uint64
	startupDone  bool
}

// NewController constructs a session [Controller].
func NewController(gateway Gateway, creds credstore.Store, logger *slog.Logger) *Controller {
	return &Controller{
		gateway: gateway,
		creds:   creds,
		logger:  logger,
		items:   []api.FoundItem{},
	}
}

// Snapshot returns a copy of the current state. Safe to call at any time.
func (controller *Controller) Snapshot() Snapshot {
	controller.mu.Lock()
	defer controller.mu.Unlock()

	items := make([]api.FoundItem, len(controller.items))
	copy(items, controller.items)

	var pending *PendingRegistration
	if controller.pending != nil {
		p := *controller.pending
		pending = &p
	}

	return Snapshot{
		Token:        controller.token,
		Role:         controller.role,
		Profile:      controller.profile,
		AuthError:    controller.authError,
		AuthLoading:  controller.authLoading,
		Items:        items,
		ItemsLoading: controller.itemsLoading,
		Pending:      pending,
	}
}

// # Operations

/*
StartupVerify validates a persisted token against the backend.

Description: Runs at most once per process. When a stored token exists, the
profile fetch both validates it and supplies the role. Any failure performs a
full logout and stays silent, since nothing user-initiated is in flight.

Parameters:
  - context: context.Context

Returns:
  - err: Credential storage failures only; rejected tokens are not errors
*/
func (controller *Controller) StartupVerify(context context.Context) error {
	controller.mu.Lock()
	if controller.startupDone {
		controller.mu.Unlock()
		return nil
	}
	controller.startupDone = true
	controller.mu.Unlock()

	stored, err := controller.creds.Get(context)
	if err != nil {
		return fmt.Errorf("session_startup_read_failed: %w", err)
	}
	if !stored.Present() {
		return nil
	}

	generation, err := controller.beginAuth()
	if err != nil {
		return err
	}
	defer controller.endAuth()

	profile, err := controller.gateway.GetProfile(context, stored.Token)
	if err == nil && profile == nil {
		err = errEmptyProfile
	}
	if err != nil {
		controller.logger.Info("startup_token_rejected", "error", err)
		return controller.Logout(context)
	}

	if !controller.applyAuthenticated(context, generation, stored.Token, profile) {
		return nil
	}

	controller.refreshItems(context, generation, stored.Token)
	return nil
}

/*
Login authenticates with email and password.

Description: Two sequential round-trips: the token exchange, then the profile
fetch that supplies the role. The pair is all-or-nothing; a profile failure
after a successful token exchange is a full login failure with nothing
persisted. Both calls must succeed before anything is applied or stored.

Parameters:
  - context: context.Context
  - email: string
  - password: string

Returns:
  - err: Failure of either step; also recorded as the auth error
*/
func (controller *Controller) Login(context context.Context, email, password string) error {
	generation, err := controller.beginAuth()
	if err != nil {
		return err
	}
	defer controller.endAuth()

	token, err := controller.gateway.Login(context, email, password)
	if err != nil {
		controller.setAuthError(generation, err)
		return err
	}

	profile, err := controller.gateway.GetProfile(context, token)
	if err == nil && profile == nil {
		err = errEmptyProfile
	}
	if err != nil {
		controller.setAuthError(generation, err)
		return err
	}

	if !controller.applyAuthenticated(context, generation, token, profile) {
		return nil
	}

	controller.refreshItems(context, generation, token)
	return nil
}

/*
Register submits the sign-up form.

Description: Success opens the OTP window: a [PendingRegistration] holding the
email and an in-memory password echo is created so the eventual VerifyOtp can
finish with an automatic login.

Parameters:
  - context: context.Context
  - input: api.RegisterInput

Returns:
  - err: Validation or transport failures; also recorded as the auth error
*/
func (controller *Controller) Register(context context.Context, input api.RegisterInput) error {
	generation, err := controller.beginAuth()
	if err != nil {
		return err
	}
	defer controller.endAuth()

	if err := controller.gateway.Register(context, input); err != nil {
		controller.setAuthError(generation, err)
		return err
	}

	controller.mu.Lock()
	if generation == controller.generation {
		controller.pending = &PendingRegistration{
			Email:        input.Email,
			passwordEcho: input.Password,
			OTPExpiry:    time.Now().Add(otpValidity),
		}
	}
	controller.mu.Unlock()

	return nil
}

/*
VerifyOtp redeems the emailed code for the pending registration.

Description: A wrong or expired code leaves the pending registration intact
for retry or resend. Acceptance destroys the pending registration and chains
straight into Login with the echoed credentials; the pending record is gone
even if that inner login then fails.

Parameters:
  - context: context.Context
  - code: string

Returns:
  - err: ErrNoPendingRegistration, a rejected code, or the chained login's
    failure
*/
func (controller *Controller) VerifyOtp(context context.Context, code string) error {
	controller.mu.Lock()
	pending := controller.pending
	controller.mu.Unlock()

	if pending == nil {
		return ErrNoPendingRegistration
	}

	generation, err := controller.beginAuth()
	if err != nil {
		return err
	}

	if err := controller.gateway.VerifyEmail(context, code, pending.Email); err != nil {
		controller.setAuthError(generation, err)
		controller.endAuth()
		return err
	}

	controller.mu.Lock()
	if generation == controller.generation {
		controller.pending = nil
	}
	controller.mu.Unlock()
	controller.endAuth()

	return controller.Login(context, pending.Email, pending.passwordEcho)
}

/*
ResendOtp re-issues the verification code.

Description: Touches neither the loading flag nor the auth error; the OTP
entry view tracks its own resend countdown.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - err: Transport failures or an active cooldown
*/
func (controller *Controller) ResendOtp(context context.Context, email string) error {
	return controller.gateway.ResendVerificationCode(context, email)
}

/*
Logout clears the session, the pending registration, and durable storage.

Description: Synchronous and always succeeds; no network call is made. The
generation bump makes any still-in-flight operation drop its result.

Parameters:
  - context: context.Context

Returns:
  - err: Always nil; storage failures are logged only
*/
func (controller *Controller) Logout(context context.Context) error {
	controller.mu.Lock()
	controller.generation++
	controller.token = ""
	controller.role = ""
	controller.profile = nil
	controller.authError = ""
	controller.authLoading = false
	controller.items = []api.FoundItem{}
	controller.itemsLoading = false
	controller.pending = nil
	controller.mu.Unlock()

	if err := controller.creds.Clear(context); err != nil {
		controller.logger.Error("logout_storage_clear_failed", "error", err)
	}

	return nil
}

/*
RefreshItems refetches the found-items cache.

Description: Failures degrade to an empty list and never touch the auth
error, so a catalogue outage cannot contaminate the auth state.

Parameters:
  - context: context.Context
*/
func (controller *Controller) RefreshItems(context context.Context) {
	controller.mu.Lock()
	generation := controller.generation
	token := controller.token
	controller.mu.Unlock()

	controller.refreshItems(context, generation, token)
}

// # Internal

// beginAuth opens the single-operation window, clearing any prior error.
func (controller *Controller) beginAuth() (uint64, error) {
	controller.mu.Lock()
	defer controller.mu.Unlock()

	if controller.authLoading {
		return 0, ErrOperationInFlight
	}

	controller.authLoading = true
	controller.authError = ""
	return controller.generation, nil
}

// endAuth closes the operation window. Runs on every exit path.
func (controller *Controller) endAuth() {
	controller.mu.Lock()
	controller.authLoading = false
	controller.mu.Unlock()
}

// setAuthError records a user-facing failure message unless the operation
// has been superseded.
func (controller *Controller) setAuthError(generation uint64, err error) {
	message := genericFailure
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		message = apiErr.Message
	}

	controller.mu.Lock()
	if generation == controller.generation {
		controller.authError = message
	}
	controller.mu.Unlock()
}

// applyAuthenticated installs a validated session and persists the pair.
// Returns false when the operation was superseded by a logout.
func (controller *Controller) applyAuthenticated(context context.Context, generation uint64, token string, profile *api.Profile) bool {
	controller.mu.Lock()
	defer controller.mu.Unlock()

	if generation != controller.generation {
		return false
	}

	controller.token = token
	controller.role = profile.Role
	controller.profile = profile
	controller.pending = nil

	// Persisted inside the same critical section so a racing logout cannot
	// interleave between the in-memory update and the durable write.
	if err := controller.creds.Set(context, token, profile.Role); err != nil {
		controller.logger.Error("session_persist_failed", "error", err)
	}

	return true
}

// refreshItems fetches the catalogue for the given token, degrading to an
// empty list on failure.
func (controller *Controller) refreshItems(context context.Context, generation uint64, token string) {
	controller.mu.Lock()
	if generation != controller.generation {
		controller.mu.Unlock()
		return
	}
	controller.itemsLoading = true
	controller.mu.Unlock()

	items, err := controller.gateway.GetAllFoundItems(context, token)
	if err != nil {
		controller.logger.Info("found_items_fetch_failed", "error", err)
		items = []api.FoundItem{}
	}
	if items == nil {
		items = []api.FoundItem{}
	}

	controller.mu.Lock()
	if generation == controller.generation {
		controller.items = items
	}
	controller.itemsLoading = false
	controller.mu.Unlock()
}
