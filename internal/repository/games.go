package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/nechto-online/nechto-server/internal/game"
	"github.com/nechto-online/nechto-server/internal/store"
)

// updateRetries bounds the optimistic-concurrency retry loop. The room
// manager serializes actions per room, so retries only fire when an
// operator pokes the row from outside the server.
const updateRetries = 5

var errVersionConflict = errors.New("repository: game row changed underneath the update")

// GameStore is the Postgres StateStore. Snapshots and rosters live as
// jsonb in one row per room; every write bumps the version column and
// updates race through compare-and-swap on it. Watch fan-out is
// in-process, fed by this store's own successful writes.
type GameStore struct {
	pool *pgxpool.Pool
	log  *zap.Logger

	mu       sync.Mutex
	watchers map[string]map[chan *game.State]struct{}
}

// NewGameStore creates a GameStore on an established pool.
func NewGameStore(pool *pgxpool.Pool, log *zap.Logger) *GameStore {
	if log == nil {
		log = zap.NewNop()
	}
	return &GameStore{
		pool:     pool,
		log:      log,
		watchers: make(map[string]map[chan *game.State]struct{}),
	}
}

var _ store.StateStore = (*GameStore)(nil)

// Game loads the current snapshot.
func (s *GameStore) Game(ctx context.Context, roomID string) (*game.State, error) {
	st, _, _, err := s.load(ctx, roomID)
	return st, err
}

// Roster loads the room's seats.
func (s *GameStore) Roster(ctx context.Context, roomID string) (*game.Roster, error) {
	_, r, _, err := s.load(ctx, roomID)
	return r, err
}

func (s *GameStore) load(ctx context.Context, roomID string) (*game.State, *game.Roster, int64, error) {
	var (
		stateRaw  []byte
		rosterRaw []byte
		version   int64
	)
	err := s.pool.QueryRow(ctx,
		`SELECT state, roster, version FROM games WHERE room_id = $1`,
		roomID,
	).Scan(&stateRaw, &rosterRaw, &version)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil, 0, store.ErrNotFound
	}
	if err != nil {
		return nil, nil, 0, fmt.Errorf("loading game %s: %w", roomID, err)
	}

	var st game.State
	if err := json.Unmarshal(stateRaw, &st); err != nil {
		return nil, nil, 0, fmt.Errorf("decoding state %s: %w", roomID, err)
	}
	var r game.Roster
	if err := json.Unmarshal(rosterRaw, &r); err != nil {
		return nil, nil, 0, fmt.Errorf("decoding roster %s: %w", roomID, err)
	}
	return &st, &r, version, nil
}

// SaveGame upserts the full snapshot, bumping the version.
func (s *GameStore) SaveGame(ctx context.Context, st *game.State, r *game.Roster) error {
	stateRaw, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encoding state %s: %w", st.RoomID, err)
	}
	rosterRaw, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encoding roster %s: %w", st.RoomID, err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO games (room_id, state, roster)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (room_id) DO UPDATE
		 SET state = EXCLUDED.state,
		     roster = EXCLUDED.roster,
		     version = games.version + 1,
		     updated_at = now()`,
		st.RoomID, stateRaw, rosterRaw,
	)
	if err != nil {
		return fmt.Errorf("saving game %s: %w", st.RoomID, err)
	}

	s.notify(st)
	return nil
}

// UpdateGame runs fn against the stored snapshot and writes the result
// back with a compare-and-swap on the version column, retrying a
// bounded number of times on conflict.
func (s *GameStore) UpdateGame(ctx context.Context, roomID string, fn store.UpdateFunc) (*game.State, error) {
	for attempt := 0; attempt < updateRetries; attempt++ {
		st, r, version, err := s.load(ctx, roomID)
		if err != nil {
			return nil, err
		}

		next, nextRoster, err := fn(st, r)
		if err != nil {
			return nil, err
		}
		if nextRoster == nil {
			nextRoster = r
		}

		err = s.swap(ctx, roomID, next, nextRoster, version)
		if errors.Is(err, errVersionConflict) {
			s.log.Warn("game row version conflict, retrying",
				zap.String("room", roomID),
				zap.Int("attempt", attempt+1),
			)
			continue
		}
		if err != nil {
			return nil, err
		}

		s.notify(next)
		return next, nil
	}
	return nil, fmt.Errorf("updating game %s: %w", roomID, errVersionConflict)
}

func (s *GameStore) swap(ctx context.Context, roomID string, st *game.State, r *game.Roster, version int64) error {
	stateRaw, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encoding state %s: %w", roomID, err)
	}
	rosterRaw, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encoding roster %s: %w", roomID, err)
	}

	tag, err := s.pool.Exec(ctx,
		`UPDATE games
		 SET state = $2, roster = $3, version = version + 1, updated_at = now()
		 WHERE room_id = $1 AND version = $4`,
		roomID, stateRaw, rosterRaw, version,
	)
	if err != nil {
		return fmt.Errorf("updating game %s: %w", roomID, err)
	}
	if tag.RowsAffected() == 0 {
		return errVersionConflict
	}
	return nil
}

// DeleteGame removes the row and closes the room's watch channels.
func (s *GameStore) DeleteGame(ctx context.Context, roomID string) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM games WHERE room_id = $1`, roomID); err != nil {
		return fmt.Errorf("deleting game %s: %w", roomID, err)
	}

	s.mu.Lock()
	for ch := range s.watchers[roomID] {
		close(ch)
	}
	delete(s.watchers, roomID)
	s.mu.Unlock()
	return nil
}

// Watch subscribes to the room's snapshot stream. Deliveries come from
// this process's writes; a store shared between server instances needs
// each instance watching its own writes only.
func (s *GameStore) Watch(ctx context.Context, roomID string) (<-chan *game.State, error) {
	st, _, _, err := s.load(ctx, roomID)
	if err != nil {
		return nil, err
	}

	ch := make(chan *game.State, 8)

	s.mu.Lock()
	if s.watchers[roomID] == nil {
		s.watchers[roomID] = make(map[chan *game.State]struct{})
	}
	s.watchers[roomID][ch] = struct{}{}
	ch <- st
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		if _, live := s.watchers[roomID][ch]; live {
			delete(s.watchers[roomID], ch)
			close(ch)
		}
		s.mu.Unlock()
	}()

	return ch, nil
}

func (s *GameStore) notify(st *game.State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for ch := range s.watchers[st.RoomID] {
		select {
		case ch <- st.Clone():
		default:
		}
	}
}
