// Copyright (c) 2026 ClaimPoint. All rights reserved.

package contact

import "context"

// Repository defines the data access contract for contact messages.
type Repository interface {

	/*
		Create persists a contact form submission.

		Parameters:
		  - context: context.Context
		  - message: *Message

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, message *Message) error
}
