// Copyright (c) 2026 ClaimPoint. All rights reserved.

// PostgreSQL implementation of the items storage contract.
//
// # Search Strategy
//
// The items.catalog table carries foldedname and foldedlocation columns,
// populated at write time from normalize.Fold output. Search runs a plain
// substring match against those columns, so accent and case differences
// between the query and the record never matter.
package items

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/claimpoint/claimpoint/internal/platform/apperr"
	"github.com/claimpoint/claimpoint/internal/platform/dberr"
	"github.com/claimpoint/claimpoint/pkg/normalize"
)

// PostgresRepository implements the Repository interface using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL implementation of the items Repository.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const itemColumns = "id, name, description, category, location, foundat, status, recordedby, createdat, updatedat"

/*
Create persists a newly recorded item into the items.catalog table.

Description: Folded search columns are derived here so every write path keeps
them consistent with the display columns.

Parameters:
  - context: context.Context
  - item: *Item (Entity to persist)

Returns:
  - error: Database constraint violations or connectivity errors
*/
func (repository *PostgresRepository) Create(context context.Context, item *Item) error {
	const query = `
		INSERT INTO items.catalog (
			id, name, description, category, location, foundat, status, recordedby,
			foldedname, foldedlocation, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	now := time.Now()
	if item.CreatedAt.IsZero() {
		item.CreatedAt = now
	}
	item.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		item.ID,
		item.Name,
		item.Description,
		item.Category,
		item.Location,
		item.FoundAt,
		item.Status,
		item.RecordedBy,
		normalize.Fold(item.Name),
		normalize.Fold(item.Location),
		item.CreatedAt,
		item.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "Item")
	}

	return nil
}

/*
FindByID retrieves an item record by its unique ID.

Parameters:
  - context: context.Context
  - id: string (UUIDv7)

Returns:
  - *Item: Hydrated catalogue entity
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Item, error) {
	query := fmt.Sprintf("SELECT %s FROM items.catalog WHERE id = $1", itemColumns)

	item := &Item{}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&item.ID,
		&item.Name,
		&item.Description,
		&item.Category,
		&item.Location,
		&item.FoundAt,
		&item.Status,
		&item.RecordedBy,
		&item.CreatedAt,
		&item.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Item")
		}
		return nil, fmt.Errorf("postgres_item_repo_find_failed: %w", err)
	}

	return item, nil
}

/*
List returns all catalogued items, newest first.

Parameters:
  - context: context.Context

Returns:
  - []*Item: Hydrated entities
  - error: Execution errors
*/
func (repository *PostgresRepository) List(context context.Context) ([]*Item, error) {
	query := fmt.Sprintf("SELECT %s FROM items.catalog ORDER BY createdat DESC", itemColumns)

	rows, err := repository.pool.Query(context, query)
	if err != nil {
		return nil, fmt.Errorf("postgres_item_repo_list_failed: %w", err)
	}
	defer rows.Close()

	return repository.scanAll(rows)
}

/*
Search returns items whose folded name or location contains the folded query.

Parameters:
  - context: context.Context
  - foldedQuery: string (already passed through normalize.Fold)

Returns:
  - []*Item: Matching entities
  - error: Execution errors
*/
func (repository *PostgresRepository) Search(context context.Context, foldedQuery string) ([]*Item, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM items.catalog
		WHERE foldedname LIKE $1 OR foldedlocation LIKE $1
		ORDER BY createdat DESC`, itemColumns)

	rows, err := repository.pool.Query(context, query, "%"+foldedQuery+"%")
	if err != nil {
		return nil, fmt.Errorf("postgres_item_repo_search_failed: %w", err)
	}
	defer rows.Close()

	return repository.scanAll(rows)
}

/*
UpdateStatus transitions an item's lifecycle status.

Parameters:
  - context: context.Context
  - id: string
  - status: ItemStatus

Returns:
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresRepository) UpdateStatus(context context.Context, id string, status ItemStatus) error {
	const query = "UPDATE items.catalog SET status = $2, updatedat = $3 WHERE id = $1"

	tag, err := repository.pool.Exec(context, query, id, status, time.Now())
	if err != nil {
		return fmt.Errorf("postgres_item_repo_update_status_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Item")
	}

	return nil
}

// scanAll hydrates every row in the result set.
func (repository *PostgresRepository) scanAll(rows pgx.Rows) ([]*Item, error) {
	items := make([]*Item, 0)
	for rows.Next() {
		item := &Item{}
		if err := rows.Scan(
			&item.ID,
			&item.Name,
			&item.Description,
			&item.Category,
			&item.Location,
			&item.FoundAt,
			&item.Status,
			&item.RecordedBy,
			&item.CreatedAt,
			&item.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("postgres_item_repo_scan_failed: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_item_repo_rows_failed: %w", err)
	}

	return items, nil
}
