// Copyright (c) 2026 ClaimPoint. All rights reserved.

package claims

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/claimpoint/claimpoint/internal/items"
	"github.com/claimpoint/claimpoint/internal/platform/apperr"
	"github.com/claimpoint/claimpoint/pkg/uuidv7"
)

// ItemReader is the slice of the items domain this service depends on.
type ItemReader interface {
	Get(context context.Context, id string) (*items.Item, error)
}

// Service implements claim submission use cases.
type Service struct {
	repo    Repository
	catalog ItemReader
	logger  *slog.Logger
}

// NewService constructs a claims [Service].
func NewService(repo Repository, catalog ItemReader, logger *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		catalog: catalog,
		logger:  logger,
	}
}

/*
Submit records a user's ownership claim on an item.

Description: The target item must exist and still be in STORED status. A user
may hold at most one claim per item; the storage layer enforces that with a
unique constraint surfaced as a Conflict.

Parameters:
  - context: context.Context
  - userID: string
  - itemID: string
  - proof: string

Returns:
  - *Claim: Created entity
  - err: NotFound, Conflict, or persistence failures
*/
func (service *Service) Submit(context context.Context, userID, itemID, proof string) (*Claim, error) {
	item, err := service.catalog.Get(context, itemID)
	if err != nil {
		return nil, err
	}

	if item.Status != items.StatusStored {
		return nil, apperr.Conflict("Item is no longer available to claim")
	}

	claim := &Claim{
		ID:        uuidv7.New(),
		ItemID:    itemID,
		UserID:    userID,
		Proof:     proof,
		Status:    StatusSubmitted,
		CreatedAt: time.Now(),
	}

	if err := service.repo.Create(context, claim); err != nil {
		return nil, fmt.Errorf("claims_service_submit_failed: %w", err)
	}

	service.logger.Info("claim_submitted", "claim_id", claim.ID, "item_id", itemID)

	return claim, nil
}

// ListMine returns the calling user's claims, newest first.
func (service *Service) ListMine(context context.Context, userID string) ([]*Claim, error) {
	return service.repo.ListByUser(context, userID)
}
