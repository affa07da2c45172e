// Copyright (c) 2026 ClaimPoint. All rights reserved.

package items

import "context"

// Repository defines the data access contract for found items.
type Repository interface {

	/*
		Create persists a newly recorded item.

		Parameters:
		  - context: context.Context
		  - item: *Item

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, item *Item) error

	/*
		FindByID returns the item with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *Item: Hydrated entity
		  - error: apperr.NotFound or retrieval failures
	*/
	FindByID(context context.Context, id string) (*Item, error)

	/*
		List returns all items, newest first.

		Parameters:
		  - context: context.Context

		Returns:
		  - []*Item: Hydrated entities
		  - error: Retrieval failures
	*/
	List(context context.Context) ([]*Item, error)

	/*
		Search returns items whose folded name or location contains the
		folded query.

		Parameters:
		  - context: context.Context
		  - foldedQuery: string (already passed through normalize.Fold)

		Returns:
		  - []*Item: Matching entities
		  - error: Retrieval failures
	*/
	Search(context context.Context, foldedQuery string) ([]*Item, error)

	/*
		UpdateStatus transitions an item's lifecycle status.

		Parameters:
		  - context: context.Context
		  - id: string
		  - status: ItemStatus

		Returns:
		  - error: Persistence failures
	*/
	UpdateStatus(context context.Context, id string, status ItemStatus) error
}
