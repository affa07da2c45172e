// Copyright (c) 2026 ClaimPoint. All rights reserved.

/*
Package items implements the found-item catalogue.

Staff record objects recovered at the counter; anyone may browse or search the
catalogue to look for their lost property. Claims on a recorded item are
handled by the claims domain.
*/
package items

import "time"

// ItemStatus describes where a found item is in its lifecycle.
type ItemStatus string

const (
	// StatusStored means the item is in custody, awaiting a claim.
	StatusStored ItemStatus = "STORED"

	// StatusClaimed means the item has been handed over to its owner.
	StatusClaimed ItemStatus = "CLAIMED"
)

// Item represents a recovered object recorded by a staff member.
type Item struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Location    string     `json:"location"`
	FoundAt     time.Time  `json:"found_at"`
	Status      ItemStatus `json:"status"`
	RecordedBy  string     `json:"recorded_by"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// # Field Identifiers

const (
	FieldName        = "name"
	FieldDescription = "description"
	FieldCategory    = "category"
	FieldLocation    = "location"
	FieldFoundAt     = "found_at"
	FieldQuery       = "q"
)

// Categories staff can file an item under. Mirrors the drop-down offered at
// the recording counter.
var Categories = []string{
	"electronics",
	"documents",
	"clothing",
	"accessories",
	"keys",
	"bags",
	"other",
}
