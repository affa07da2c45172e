// Copyright (c) 2026 ClaimPoint. All rights reserved.

/*
Package claims handles ownership claims on catalogued items.

A signed-in user submits a claim stating why an item is theirs. Staff follow
up out of band; the claim record keeps the submission trail.
*/
package claims

import "time"

// ClaimStatus describes a claim's review state.
type ClaimStatus string

const (
	// StatusSubmitted is the initial state of every claim.
	StatusSubmitted ClaimStatus = "SUBMITTED"
)

// Claim represents a user's assertion of ownership over a found item.
type Claim struct {
	ID        string      `json:"id"`
	ItemID    string      `json:"item_id"`
	UserID    string      `json:"user_id"`
	Proof     string      `json:"proof"`
	Status    ClaimStatus `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
}

// # Field Identifiers

const (
	FieldItemID = "item_id"
	FieldProof  = "proof"
)
