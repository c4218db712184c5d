package room

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/nechto-online/nechto-server/internal/config"
	"github.com/nechto-online/nechto-server/internal/game"
	"github.com/nechto-online/nechto-server/internal/store"
)

var (
	ErrRoomNotFound     = errors.New("room: room not found")
	ErrWrongCode        = errors.New("room: wrong room code")
	ErrRoomFull         = errors.New("room: room is full")
	ErrAlreadyStarted   = errors.New("room: game already started")
	ErrNotStarted       = errors.New("room: game not started")
	ErrNotEnoughPlayers = errors.New("room: not enough players to start")
)

// StepLogger receives the audit entry of every resolved action. May be
// backed by Postgres or absent.
type StepLogger interface {
	Insert(ctx context.Context, info game.StepInfo) error
}

// Room is one table of players. Seats are assigned on join and keep
// their IDs for the life of the room; the roster stored alongside the
// game snapshot is the authority on roles once a game is running.
type Room struct {
	ID        string
	Name      string
	CreatedAt time.Time

	codeHash []byte
	nextSeat int
	seats    []game.Seat

	Started  bool
	Finished bool
}

// Snapshot is a read-only copy of a room for external use.
type Snapshot struct {
	ID        string
	Name      string
	Seats     []game.Seat
	Started   bool
	Finished  bool
	CreatedAt time.Time
}

// Manager owns room lifecycle and is the single caller of the rules
// engine: every action goes through the store's per-room update lock,
// so at most one resolution per room is in flight at a time.
type Manager struct {
	log    *zap.Logger
	engine *game.Engine
	store  store.StateStore
	steps  StepLogger
	rules  config.GameConfig

	mu    sync.RWMutex
	rooms map[string]*Room
}

// NewManager creates a room manager. steps may be nil.
func NewManager(engine *game.Engine, st store.StateStore, steps StepLogger, rules config.GameConfig, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{
		log:    log,
		engine: engine,
		store:  st,
		steps:  steps,
		rules:  rules,
		rooms:  make(map[string]*Room),
	}
}

// CreateRoom opens a room guarded by code and seats the host. Returns
// the room snapshot and the host's seat ID.
func (m *Manager) CreateRoom(name, code, hostName string) (Snapshot, int, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return Snapshot{}, 0, err
	}

	r := &Room{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: time.Now(),
		codeHash:  hash,
		nextSeat:  1,
	}
	hostSeat := r.seat(hostName, false)

	m.mu.Lock()
	m.rooms[r.ID] = r
	m.mu.Unlock()

	m.log.Info("room created",
		zap.String("room", r.ID),
		zap.String("name", name),
		zap.Int("host_seat", hostSeat),
	)
	return r.snapshot(), hostSeat, nil
}

// JoinRoom seats a player after checking the room code.
func (m *Manager) JoinRoom(roomID, code, playerName string, bot bool) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.rooms[roomID]
	if !ok {
		return 0, ErrRoomNotFound
	}
	if err := bcrypt.CompareHashAndPassword(r.codeHash, []byte(code)); err != nil {
		return 0, ErrWrongCode
	}
	if r.Started {
		return 0, ErrAlreadyStarted
	}
	if len(r.seats) >= m.rules.MaxPlayers {
		return 0, ErrRoomFull
	}

	seat := r.seat(playerName, bot)
	m.log.Info("player joined",
		zap.String("room", roomID),
		zap.String("player", playerName),
		zap.Int("seat", seat),
		zap.Bool("bot", bot),
	)
	return seat, nil
}

func (r *Room) seat(name string, bot bool) int {
	id := r.nextSeat
	r.nextSeat++
	r.seats = append(r.seats, game.Seat{ID: id, Name: name, Role: game.RoleHuman, Bot: bot})
	return id
}

func (r *Room) snapshot() Snapshot {
	seats := make([]game.Seat, len(r.seats))
	copy(seats, r.seats)
	return Snapshot{
		ID:        r.ID,
		Name:      r.Name,
		Seats:     seats,
		Started:   r.Started,
		Finished:  r.Finished,
		CreatedAt: r.CreatedAt,
	}
}

// Room returns a snapshot of the room.
func (m *Manager) Room(roomID string) (Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.rooms[roomID]
	if !ok {
		return Snapshot{}, ErrRoomNotFound
	}
	return r.snapshot(), nil
}

// StartGame deals a fresh game for the seated players. One random seat
// receives the It card and the matching role; everyone else starts
// human.
func (m *Manager) StartGame(ctx context.Context, roomID string) (*game.State, error) {
	m.mu.Lock()
	r, ok := m.rooms[roomID]
	if !ok {
		m.mu.Unlock()
		return nil, ErrRoomNotFound
	}
	if r.Started && !r.Finished {
		m.mu.Unlock()
		return nil, ErrAlreadyStarted
	}
	if len(r.seats) < m.rules.MinPlayers {
		m.mu.Unlock()
		return nil, ErrNotEnoughPlayers
	}

	seats := make([]game.Seat, len(r.seats))
	copy(seats, r.seats)
	for i := range seats {
		seats[i].Role = game.RoleHuman
		seats[i].PreviousRole = ""
	}
	m.mu.Unlock()

	st, itSeat := game.NewGame(roomID, game.NewRoster(seats), game.SetupOptions{
		FilterByPlayerCount: true,
		RandomStartingSeat:  true,
	})
	for i := range seats {
		if seats[i].ID == itSeat {
			seats[i].Role = game.RoleIt
		}
	}
	roster := game.NewRoster(seats)

	if err := m.store.SaveGame(ctx, st, roster); err != nil {
		return nil, err
	}

	m.mu.Lock()
	r.Started = true
	r.Finished = false
	r.seats = roster.Seats
	m.mu.Unlock()

	m.log.Info("game started",
		zap.String("room", roomID),
		zap.Int("players", len(seats)),
		zap.Int("first_seat", st.CurrentSeat),
	)
	return st, nil
}

// RestartGame deals a new game for the same seats after one finished.
func (m *Manager) RestartGame(ctx context.Context, roomID string) (*game.State, error) {
	m.mu.Lock()
	r, ok := m.rooms[roomID]
	if !ok {
		m.mu.Unlock()
		return nil, ErrRoomNotFound
	}
	if !r.Started {
		m.mu.Unlock()
		return nil, ErrNotStarted
	}
	r.Started = false
	m.mu.Unlock()

	return m.StartGame(ctx, roomID)
}

// EndGame tears the game down, leaving the room joinable again.
func (m *Manager) EndGame(ctx context.Context, roomID string) error {
	m.mu.Lock()
	r, ok := m.rooms[roomID]
	if !ok {
		m.mu.Unlock()
		return ErrRoomNotFound
	}
	r.Started = false
	r.Finished = false
	m.mu.Unlock()

	if err := m.store.DeleteGame(ctx, roomID); err != nil {
		return err
	}
	m.log.Info("game ended", zap.String("room", roomID))
	return nil
}
