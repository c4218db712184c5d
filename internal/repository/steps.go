package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nechto-online/nechto-server/internal/game"
)

// StepRepository appends resolved actions to the audit log.
type StepRepository struct {
	pool *pgxpool.Pool
}

// NewStepRepository creates a StepRepository on an established pool.
func NewStepRepository(pool *pgxpool.Pool) *StepRepository {
	return &StepRepository{pool: pool}
}

// Insert appends one step entry.
func (r *StepRepository) Insert(ctx context.Context, info game.StepInfo) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO steps (room_id, seat, other_seat, card_action, step_phase, show_all, skip_showing, processed_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		info.RoomID, info.Seat, info.OtherSeat, string(info.CardAction),
		string(info.Phase), info.ShowAll, info.SkipShowing, info.ProcessedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting step for %s: %w", info.RoomID, err)
	}
	return nil
}

// ByRoom returns the room's step entries in resolution order.
func (r *StepRepository) ByRoom(ctx context.Context, roomID string, limit int) ([]game.StepInfo, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.pool.Query(ctx,
		`SELECT room_id, seat, other_seat, card_action, step_phase, show_all, skip_showing, processed_at
		 FROM steps WHERE room_id = $1 ORDER BY id DESC LIMIT $2`,
		roomID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying steps for %s: %w", roomID, err)
	}
	defer rows.Close()

	var out []game.StepInfo
	for rows.Next() {
		var (
			info   game.StepInfo
			action string
			phase  string
		)
		if err := rows.Scan(&info.RoomID, &info.Seat, &info.OtherSeat, &action,
			&phase, &info.ShowAll, &info.SkipShowing, &info.ProcessedAt); err != nil {
			return nil, fmt.Errorf("scanning step for %s: %w", roomID, err)
		}
		info.CardAction = game.CardAction(action)
		info.Phase = game.StepPhase(phase)
		out = append(out, info)
	}
	return out, rows.Err()
}
