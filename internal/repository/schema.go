package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS games (
    room_id    TEXT PRIMARY KEY,
    state      JSONB NOT NULL,
    roster     JSONB NOT NULL,
    version    BIGINT NOT NULL DEFAULT 1,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS steps (
    id           BIGSERIAL PRIMARY KEY,
    room_id      TEXT NOT NULL,
    seat         INT NOT NULL,
    other_seat   INT NOT NULL DEFAULT 0,
    card_action  TEXT NOT NULL DEFAULT '',
    step_phase   TEXT NOT NULL,
    show_all     BOOLEAN NOT NULL DEFAULT FALSE,
    skip_showing BOOLEAN NOT NULL DEFAULT FALSE,
    processed_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS steps_room_id_idx ON steps (room_id, id);
`

// EnsureSchema creates the tables the repositories need.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensuring schema: %w", err)
	}
	return nil
}
