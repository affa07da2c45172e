// Copyright (c) 2026 ClaimPoint. All rights reserved.

package auth

import (
	"context"
	"time"
)

// # User Data Access

// UserRepository defines the data access contract for user accounts.
type UserRepository interface {

	/*
		FindByID returns the account with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *User: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByID(context context.Context, id string) (*User, error)

	/*
		FindByEmail returns the account with the given email.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - *User: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		Create persists a brand-new user account to the storage.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, user *User) error

	/*
		MarkVerified updates the user's status to emailverified = true.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - error: Persistence failures
	*/
	MarkVerified(context context.Context, userID string) error

	/*
		ListByRole returns all accounts holding the given role.

		Parameters:
		  - context: context.Context
		  - role: string

		Returns:
		  - []*User: Hydrated entities
		  - error: Database retrieval failures
	*/
	ListByRole(context context.Context, role string) ([]*User, error)
}

// # Volatile Data Access

// OTPRepository defines the contract for storing volatile email verification codes.
//
// Codes are keyed by email (not by code) so that re-registration or resend
// replaces the previous code atomically.
type OTPRepository interface {

	/*
		Set stores a verification code for an email address with a TTL.

		Parameters:
		  - context: context.Context
		  - email: string
		  - code: string
		  - ttl: time.Duration

		Returns:
		  - error: Persistence failures
	*/
	Set(context context.Context, email, code string, ttl time.Duration) error

	/*
		Get retrieves the active verification code for an email address.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - string: The active code
		  - error: apperr.NotFound when absent/expired, or retrieval failures
	*/
	Get(context context.Context, email string) (string, error)

	/*
		Delete removes a verification code after successful use.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - error: Persistence failures
	*/
	Delete(context context.Context, email string) error

	/*
		MarkResent sets the resend-cooldown marker for an email address.
		It reports whether the marker was newly set (true) or a cooldown
		was already running (false).

		Parameters:
		  - context: context.Context
		  - email: string
		  - ttl: time.Duration

		Returns:
		  - bool: true when no cooldown was active
		  - error: Persistence failures
	*/
	MarkResent(context context.Context, email string, ttl time.Duration) (bool, error)
}
