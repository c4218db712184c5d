package store

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/nechto-online/nechto-server/internal/game"
)

// Memory is the in-process StateStore. Each room gets its own mutex, so
// updates for different rooms never contend with each other.
type Memory struct {
	log *zap.Logger

	mu    sync.RWMutex
	rooms map[string]*memoryRoom
}

type memoryRoom struct {
	mu       sync.Mutex
	state    *game.State
	roster   *game.Roster
	watchers map[chan *game.State]struct{}
}

// NewMemory creates an empty in-memory store.
func NewMemory(log *zap.Logger) *Memory {
	if log == nil {
		log = zap.NewNop()
	}
	return &Memory{
		log:   log,
		rooms: make(map[string]*memoryRoom),
	}
}

var _ StateStore = (*Memory)(nil)

func (m *Memory) room(roomID string) (*memoryRoom, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rm, ok := m.rooms[roomID]
	return rm, ok
}

func (m *Memory) roomOrCreate(roomID string) *memoryRoom {
	m.mu.Lock()
	defer m.mu.Unlock()
	rm, ok := m.rooms[roomID]
	if !ok {
		rm = &memoryRoom{watchers: make(map[chan *game.State]struct{})}
		m.rooms[roomID] = rm
	}
	return rm
}

// Game returns a copy of the current snapshot.
func (m *Memory) Game(_ context.Context, roomID string) (*game.State, error) {
	rm, ok := m.room(roomID)
	if !ok {
		return nil, ErrNotFound
	}
	rm.mu.Lock()
	defer rm.mu.Unlock()
	if rm.state == nil {
		return nil, ErrNotFound
	}
	return rm.state.Clone(), nil
}

// Roster returns a copy of the room's seats.
func (m *Memory) Roster(_ context.Context, roomID string) (*game.Roster, error) {
	rm, ok := m.room(roomID)
	if !ok {
		return nil, ErrNotFound
	}
	rm.mu.Lock()
	defer rm.mu.Unlock()
	if rm.roster == nil {
		return nil, ErrNotFound
	}
	return rm.roster.Clone(), nil
}

// SaveGame stores full copies of the snapshot and roster.
func (m *Memory) SaveGame(_ context.Context, st *game.State, r *game.Roster) error {
	rm := m.roomOrCreate(st.RoomID)
	rm.mu.Lock()
	rm.state = st.Clone()
	rm.roster = r.Clone()
	rm.notifyLocked()
	rm.mu.Unlock()

	m.log.Debug("game saved", zap.String("room", st.RoomID))
	return nil
}

// UpdateGame runs fn under the room's mutex. The stored snapshot is
// replaced only if fn succeeds.
func (m *Memory) UpdateGame(ctx context.Context, roomID string, fn UpdateFunc) (*game.State, error) {
	rm, ok := m.room(roomID)
	if !ok {
		return nil, ErrNotFound
	}

	rm.mu.Lock()
	defer rm.mu.Unlock()
	if rm.state == nil {
		return nil, ErrNotFound
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	st, r, err := fn(rm.state.Clone(), rm.roster.Clone())
	if err != nil {
		return nil, err
	}
	rm.state = st.Clone()
	if r != nil {
		rm.roster = r.Clone()
	}
	rm.notifyLocked()
	return st, nil
}

// DeleteGame drops the room's record and closes its watch channels.
func (m *Memory) DeleteGame(_ context.Context, roomID string) error {
	m.mu.Lock()
	rm, ok := m.rooms[roomID]
	delete(m.rooms, roomID)
	m.mu.Unlock()
	if !ok {
		return nil
	}

	rm.mu.Lock()
	for ch := range rm.watchers {
		close(ch)
	}
	rm.watchers = make(map[chan *game.State]struct{})
	rm.state = nil
	rm.roster = nil
	rm.mu.Unlock()

	m.log.Debug("game deleted", zap.String("room", roomID))
	return nil
}

// Watch subscribes to the room's snapshot stream. The channel is
// buffered; a watcher that falls behind skips snapshots instead of
// blocking writers.
func (m *Memory) Watch(ctx context.Context, roomID string) (<-chan *game.State, error) {
	rm, ok := m.room(roomID)
	if !ok {
		return nil, ErrNotFound
	}

	ch := make(chan *game.State, 8)

	rm.mu.Lock()
	rm.watchers[ch] = struct{}{}
	if rm.state != nil {
		ch <- rm.state.Clone()
	}
	rm.mu.Unlock()

	go func() {
		<-ctx.Done()
		rm.mu.Lock()
		if _, live := rm.watchers[ch]; live {
			delete(rm.watchers, ch)
			close(ch)
		}
		rm.mu.Unlock()
	}()

	return ch, nil
}

func (rm *memoryRoom) notifyLocked() {
	if rm.state == nil {
		return
	}
	for ch := range rm.watchers {
		select {
		case ch <- rm.state.Clone():
		default:
		}
	}
}
