// Copyright (c) 2026 ClaimPoint. All rights reserved.

package items_test

import (
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/claimpoint/claimpoint/internal/items"
	"github.com/claimpoint/claimpoint/internal/platform/apperr"
	"github.com/claimpoint/claimpoint/pkg/normalize"
)

// fakeRepo is an in-memory items.Repository with folded search columns,
// mirroring what the PostgreSQL implementation derives at write time.
type fakeRepo struct {
	stored []*items.Item
	folded map[string]string // item ID -> folded name+location
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{folded: map[string]string{}}
}

func (r *fakeRepo) Create(_ context.Context, item *items.Item) error {
	r.stored = append(r.stored, item)
	r.folded[item.ID] = normalize.Fold(item.Name) + " " + normalize.Fold(item.Location)
	return nil
}

func (r *fakeRepo) FindByID(_ context.Context, id string) (*items.Item, error) {
	for _, item := range r.stored {
		if item.ID == id {
			return item, nil
		}
	}
	return nil, apperr.NotFound("Item")
}

func (r *fakeRepo) List(_ context.Context) ([]*items.Item, error) {
	return r.stored, nil
}

func (r *fakeRepo) Search(_ context.Context, foldedQuery string) ([]*items.Item, error) {
	matches := make([]*items.Item, 0)
	for _, item := range r.stored {
		if strings.Contains(r.folded[item.ID], foldedQuery) {
			matches = append(matches, item)
		}
	}
	return matches, nil
}

func (r *fakeRepo) UpdateStatus(_ context.Context, id string, status items.ItemStatus) error {
	for _, item := range r.stored {
		if item.ID == id {
			item.Status = status
			return nil
		}
	}
	return apperr.NotFound("Item")
}

func newTestService(repo *fakeRepo) *items.Service {
	return items.NewService(repo, slog.New(slog.DiscardHandler))
}

/*
TestService_Record verifies catalogue entry creation defaults.
*/
func TestService_Record(t *testing.T) {
	repo := newFakeRepo()
	service := newTestService(repo)

	item, err := service.Record(context.Background(), items.RecordInput{
		Name:       "Black Umbrella",
		Category:   "accessories",
		Location:   "Main Hall",
		RecordedBy: "staff-1",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, item.ID)
	assert.Equal(t, items.StatusStored, item.Status)
	assert.Equal(t, "staff-1", item.RecordedBy)

	// FoundAt defaults to now when the form leaves it blank.
	assert.WithinDuration(t, time.Now(), item.FoundAt, time.Minute)
}

/*
TestService_Search verifies accent and case insensitive matching, and the
empty-query degradation to a full listing.
*/
func TestService_Search(t *testing.T) {
	repo := newFakeRepo()
	service := newTestService(repo)

	_, err := service.Record(context.Background(), items.RecordInput{
		Name:       "Café loyalty card",
		Category:   "documents",
		Location:   "West Entrance",
		RecordedBy: "staff-1",
	})
	require.NoError(t, err)

	_, err = service.Record(context.Background(), items.RecordInput{
		Name:       "House keys",
		Category:   "keys",
		Location:   "Cafeteria",
		RecordedBy: "staff-1",
	})
	require.NoError(t, err)

	// Accent-free query finds the accented record, and the location match.
	found, err := service.Search(context.Background(), "CAFE")
	require.NoError(t, err)
	assert.Len(t, found, 2)

	found, err = service.Search(context.Background(), "keys")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "House keys", found[0].Name)

	// Blank query lists everything.
	found, err = service.Search(context.Background(), "   ")
	require.NoError(t, err)
	assert.Len(t, found, 2)
}

/*
TestService_MarkClaimed verifies the STORED -> CLAIMED transition and its
conflict on repetition.
*/
func TestService_MarkClaimed(t *testing.T) {
	repo := newFakeRepo()
	service := newTestService(repo)

	item, err := service.Record(context.Background(), items.RecordInput{
		Name:       "Black Umbrella",
		Category:   "accessories",
		Location:   "Main Hall",
		RecordedBy: "staff-1",
	})
	require.NoError(t, err)

	require.NoError(t, service.MarkClaimed(context.Background(), item.ID))

	stored, err := service.Get(context.Background(), item.ID)
	require.NoError(t, err)
	assert.Equal(t, items.StatusClaimed, stored.Status)

	err = service.MarkClaimed(context.Background(), item.ID)
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)

	err = service.MarkClaimed(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}
