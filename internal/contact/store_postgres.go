// Copyright (c) 2026 ClaimPoint. All rights reserved.

// PostgreSQL implementation of the contact storage contract.
package contact

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/claimpoint/claimpoint/internal/platform/dberr"
)

// PostgresRepository implements the Repository interface using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL implementation of the contact Repository.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

/*
Create persists a contact form submission into the contact.message table.

Parameters:
  - context: context.Context
  - message: *Message (Entity to persist)

Returns:
  - error: Connectivity errors
*/
func (repository *PostgresRepository) Create(context context.Context, message *Message) error {
	const query = `
		INSERT INTO contact.message (id, name, email, subject, body, createdat)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := repository.pool.Exec(context, query,
		message.ID,
		message.Name,
		message.Email,
		message.Subject,
		message.Body,
		message.CreatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "Message")
	}

	return nil
}
