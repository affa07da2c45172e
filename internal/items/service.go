// Copyright (c) 2026 ClaimPoint. All rights reserved.

package items

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/claimpoint/claimpoint/internal/platform/apperr"
	"github.com/claimpoint/claimpoint/pkg/normalize"
	"github.com/claimpoint/claimpoint/pkg/uuidv7"
)

// Service implements found-item use cases.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs an items [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// RecordInput holds the data captured at the recording counter.
type RecordInput struct {
	Name        string
	Description string
	Category    string
	Location    string
	FoundAt     time.Time
	RecordedBy  string
}

/*
Record persists a newly recovered item.

Description: Items enter the catalogue in STORED status. The recording staff
member's identity is kept for the audit trail.

Parameters:
  - context: context.Context
  - input: RecordInput

Returns:
  - *Item: Created entity
  - err: Persistence failures
*/
func (service *Service) Record(context context.Context, input RecordInput) (*Item, error) {
	foundAt := input.FoundAt
	if foundAt.IsZero() {
		foundAt = time.Now()
	}

	item := &Item{
		ID:          uuidv7.New(),
		Name:        input.Name,
		Description: input.Description,
		Category:    input.Category,
		Location:    input.Location,
		FoundAt:     foundAt,
		Status:      StatusStored,
		RecordedBy:  input.RecordedBy,
	}

	if err := service.repo.Create(context, item); err != nil {
		return nil, fmt.Errorf("items_service_record_failed: %w", err)
	}

	return item, nil
}

// Get returns a single item by ID.
func (service *Service) Get(context context.Context, id string) (*Item, error) {
	return service.repo.FindByID(context, id)
}

// List returns the full catalogue, newest first.
func (service *Service) List(context context.Context) ([]*Item, error) {
	return service.repo.List(context)
}

/*
Search returns items matching the free-text query.

Description: The query is folded (case and accents stripped) before matching,
so "Cafe" finds "Café" and vice versa. An empty query degrades to List.

Parameters:
  - context: context.Context
  - query: string

Returns:
  - []*Item: Matching entities
  - err: Retrieval failures
*/
func (service *Service) Search(context context.Context, query string) ([]*Item, error) {
	folded := normalize.Fold(query)
	if folded == "" {
		return service.repo.List(context)
	}
	return service.repo.Search(context, folded)
}

/*
MarkClaimed transitions an item to CLAIMED status.

Description: Called by staff at hand-over. A CLAIMED item stays in the
catalogue for record-keeping but can no longer be claimed.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - err: NotFound or persistence failures
*/
func (service *Service) MarkClaimed(context context.Context, id string) error {
	item, err := service.repo.FindByID(context, id)
	if err != nil {
		return err
	}

	if item.Status == StatusClaimed {
		return apperr.Conflict("Item has already been claimed")
	}

	if err := service.repo.UpdateStatus(context, id, StatusClaimed); err != nil {
		return fmt.Errorf("items_service_mark_claimed_failed: %w", err)
	}

	return nil
}
