// Copyright (c) 2026 ClaimPoint. All rights reserved.

// PostgreSQL implementation of the claims storage contract.
package claims

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/claimpoint/claimpoint/internal/platform/dberr"
)

// PostgresRepository implements the Repository interface using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL implementation of the claims Repository.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

/*
Create persists a new claim into the claims.submission table.

Description: The table carries a unique constraint on (itemid, userid), so a
repeated claim from the same user surfaces as a Conflict.

Parameters:
  - context: context.Context
  - claim: *Claim (Entity to persist)

Returns:
  - error: apperr.Conflict or connectivity errors
*/
func (repository *PostgresRepository) Create(context context.Context, claim *Claim) error {
	const query = `
		INSERT INTO claims.submission (id, itemid, userid, proof, status, createdat)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := repository.pool.Exec(context, query,
		claim.ID,
		claim.ItemID,
		claim.UserID,
		claim.Proof,
		claim.Status,
		claim.CreatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "Claim")
	}

	return nil
}

/*
ListByUser returns a user's claims, newest first.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - []*Claim: Hydrated entities
  - error: Execution errors
*/
func (repository *PostgresRepository) ListByUser(context context.Context, userID string) ([]*Claim, error) {
	const query = `
		SELECT id, itemid, userid, proof, status, createdat
		FROM claims.submission
		WHERE userid = $1
		ORDER BY createdat DESC`

	rows, err := repository.pool.Query(context, query, userID)
	if err != nil {
		return nil, fmt.Errorf("postgres_claim_repo_list_failed: %w", err)
	}
	defer rows.Close()

	claims := make([]*Claim, 0)
	for rows.Next() {
		claim := &Claim{}
		if err := rows.Scan(
			&claim.ID,
			&claim.ItemID,
			&claim.UserID,
			&claim.Proof,
			&claim.Status,
			&claim.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("postgres_claim_repo_scan_failed: %w", err)
		}
		claims = append(claims, claim)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_claim_repo_rows_failed: %w", err)
	}

	return claims, nil
}
