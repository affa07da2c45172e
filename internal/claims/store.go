// Copyright (c) 2026 ClaimPoint. All rights reserved.

package claims

import "context"

// Repository defines the data access contract for claims.
type Repository interface {

	/*
		Create persists a new claim.

		Parameters:
		  - context: context.Context
		  - claim: *Claim

		Returns:
		  - error: apperr.Conflict when the user already claimed the item,
		    or persistence failures
	*/
	Create(context context.Context, claim *Claim) error

	/*
		ListByUser returns a user's claims, newest first.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - []*Claim: Hydrated entities
		  - error: Retrieval failures
	*/
	ListByUser(context context.Context, userID string) ([]*Claim, error)
}
