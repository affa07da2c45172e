// Copyright (c) 2026 ClaimPoint. All rights reserved.

/*
Package credstore persists the client's session credentials across restarts.

The token and role label live and die together: they are written in one call
and cleared in one call, so no durable state can ever hold one without the
other. Nothing here tracks expiry; the server is the sole authority on token
validity, discovered through a failed profile fetch.
*/
package credstore

import "context"

// Credentials is the persisted session state. Both fields are empty when no
// session is stored.
type Credentials struct {
	Token string
	Role  string
}

// Present reports whether a session is stored.
func (c Credentials) Present() bool {
	return c.Token != ""
}

// Store defines the durable credential contract.
type Store interface {

	/*
		Get returns the stored credentials, zero-valued when absent.

		Parameters:
		  - context: context.Context

		Returns:
		  - Credentials: Stored token and role
		  - error: Storage failures
	*/
	Get(context context.Context) (Credentials, error)

	/*
		Set stores the token and role together, replacing any prior pair.

		Parameters:
		  - context: context.Context
		  - token: string
		  - role: string

		Returns:
		  - error: Storage failures
	*/
	Set(context context.Context, token, role string) error

	/*
		Clear removes the stored pair. Clearing an empty store succeeds.

		Parameters:
		  - context: context.Context

		Returns:
		  - error: Storage failures
	*/
	Clear(context context.Context) error
}
