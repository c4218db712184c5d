package store

import (
	"context"
	"errors"

	"github.com/nechto-online/nechto-server/internal/game"
)

// ErrNotFound is returned when no game exists for the room.
var ErrNotFound = errors.New("store: game not found")

// UpdateFunc computes the next snapshot from the current one. It runs
// under the room's write lock: at most one UpdateFunc per room is in
// flight at a time, which is what keeps the resolver's
// read-compute-write cycle free of lost updates. Returning an error
// aborts the update without writing anything.
type UpdateFunc func(st *game.State, r *game.Roster) (*game.State, *game.Roster, error)

// StateStore persists game snapshots and rosters per room and streams
// state changes to watchers. The resolver itself never talks to the
// store; the room manager does, one combined write per resolved action.
type StateStore interface {
	// Game returns the current snapshot, or ErrNotFound.
	Game(ctx context.Context, roomID string) (*game.State, error)
	// Roster returns the room's seats, or ErrNotFound.
	Roster(ctx context.Context, roomID string) (*game.Roster, error)
	// SaveGame writes a full snapshot and roster, creating the room's
	// record if needed, and notifies watchers.
	SaveGame(ctx context.Context, st *game.State, r *game.Roster) error
	// UpdateGame runs fn against the current snapshot under the room's
	// write lock and persists its result atomically. Watchers are
	// notified after a successful write.
	UpdateGame(ctx context.Context, roomID string, fn UpdateFunc) (*game.State, error)
	// DeleteGame removes the room's record and closes its watchers.
	DeleteGame(ctx context.Context, roomID string) error
	// Watch returns a channel of state snapshots, starting with the
	// current one if the room exists. The channel closes when ctx is
	// done or the game is deleted. Slow consumers miss intermediate
	// snapshots rather than block writers.
	Watch(ctx context.Context, roomID string) (<-chan *game.State, error)
}
