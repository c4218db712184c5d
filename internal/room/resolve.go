package room

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/nechto-online/nechto-server/internal/game"
)

// Op names one resolver operation.
type Op string

const (
	OpTakeDeckCard  Op = "takeDeckCard"
	OpTakeHandCard  Op = "takeHandCard"
	OpPlayHandCard  Op = "playHandCard"
	OpPlayTableCard Op = "playTableCard"
	OpDropHandCard  Op = "dropHandCard"
	OpDropTableCard Op = "dropTableCard"
	OpGiveHandCard  Op = "giveHandCard"
	OpGiveTableCard Op = "giveTableCard"
	OpShowCards     Op = "showCards"
	OpAcceptRequest Op = "acceptRequest"
	OpRefillDeck    Op = "refillDeck"
)

// ErrUnknownOp is returned for an operation name the resolver does not
// expose.
var ErrUnknownOp = errors.New("room: unknown operation")

// Action is one player request against the current game.
type Action struct {
	Op          Op     `json:"op"`
	CardID      string `json:"cardId,omitempty"`
	OtherSeat   int    `json:"otherPlayerId,omitempty"`
	ShowAll     bool   `json:"showAll,omitempty"`
	SkipShowing bool   `json:"skipShowing,omitempty"`
}

// Resolve runs one action for the acting seat. The whole resolution
// happens inside the store's per-room update, so the read snapshot
// cannot go stale before the write lands. On success the room's seat
// records absorb any role changes and swaps the resolver requested.
func (m *Manager) Resolve(ctx context.Context, roomID string, actor int, act Action) (*game.StepResult, error) {
	m.mu.RLock()
	r, ok := m.rooms[roomID]
	started := ok && r.Started
	m.mu.RUnlock()
	if !ok {
		return nil, ErrRoomNotFound
	}
	if !started {
		return nil, ErrNotStarted
	}

	var res *game.StepResult
	_, err := m.store.UpdateGame(ctx, roomID, func(st *game.State, roster *game.Roster) (*game.State, *game.Roster, error) {
		var err error
		res, err = m.dispatch(st, roster, actor, act)
		if err != nil {
			return nil, nil, err
		}
		return res.State, res.Roster, nil
	})
	if err != nil {
		return nil, err
	}

	if m.steps != nil {
		if logErr := m.steps.Insert(ctx, res.Info); logErr != nil {
			m.log.Warn("failed to record step",
				zap.String("room", roomID),
				zap.Error(logErr),
			)
		}
	}

	m.mu.Lock()
	r.seats = res.Roster.Seats
	if res.State.Finished {
		r.Finished = true
	}
	m.mu.Unlock()

	return res, nil
}

func (m *Manager) dispatch(st *game.State, r *game.Roster, actor int, act Action) (*game.StepResult, error) {
	switch act.Op {
	case OpTakeDeckCard:
		return m.engine.TakeDeckCard(st, r, actor, act.CardID)
	case OpTakeHandCard:
		return m.engine.TakeHandCard(st, r, actor, act.CardID)
	case OpPlayHandCard:
		return m.engine.PlayHandCard(st, r, actor, act.CardID, act.OtherSeat)
	case OpPlayTableCard:
		return m.engine.PlayTableCard(st, r, actor, act.CardID, act.OtherSeat)
	case OpDropHandCard:
		return m.engine.DropHandCard(st, r, actor, act.CardID)
	case OpDropTableCard:
		return m.engine.DropTableCard(st, r, actor, act.CardID)
	case OpGiveHandCard:
		return m.engine.GiveHandCard(st, r, actor, act.CardID, act.OtherSeat)
	case OpGiveTableCard:
		return m.engine.GiveTableCard(st, r, actor, act.CardID, act.OtherSeat)
	case OpShowCards:
		return m.engine.ShowCards(st, r, actor, act.ShowAll, act.SkipShowing)
	case OpAcceptRequest:
		return m.engine.AcceptRequest(st, r, actor)
	case OpRefillDeck:
		return m.engine.RefillDeck(st, r, actor)
	default:
		return nil, ErrUnknownOp
	}
}

// Legality is the predicate view a seat's UI gates its controls on.
type Legality struct {
	CanDrop       bool `json:"canDrop"`
	CanTake       bool `json:"canTake"`
	CanPlay       bool `json:"canPlay"`
	CanGive       bool `json:"canGive"`
	CanRefillDeck bool `json:"canRefillDeck"`
}

// Legality evaluates the predicates for one seat against the current
// snapshot.
func (m *Manager) Legality(ctx context.Context, roomID string, seat int) (Legality, error) {
	st, err := m.store.Game(ctx, roomID)
	if err != nil {
		return Legality{}, err
	}
	return Legality{
		CanDrop:       game.CanDrop(st, seat),
		CanTake:       game.CanTake(st, seat),
		CanPlay:       game.CanPlay(st, seat),
		CanGive:       game.CanGive(st, seat),
		CanRefillDeck: game.CanRefillDeck(st, seat),
	}, nil
}

// PutOnQuarantine is the moderator override placing a quarantine card
// on a seat outside the step flow.
func (m *Manager) PutOnQuarantine(ctx context.Context, roomID string, seat int) (*game.State, error) {
	return m.store.UpdateGame(ctx, roomID, func(st *game.State, r *game.Roster) (*game.State, *game.Roster, error) {
		next, err := m.engine.PutOnQuarantine(st, seat)
		if err != nil {
			return nil, nil, err
		}
		return next, r, nil
	})
}

// SetLockedDoor is the moderator override placing a locked door on
// fromSeat's border against toSeat.
func (m *Manager) SetLockedDoor(ctx context.Context, roomID string, fromSeat, toSeat int) (*game.State, error) {
	return m.store.UpdateGame(ctx, roomID, func(st *game.State, r *game.Roster) (*game.State, *game.Roster, error) {
		next, err := m.engine.SetLockedDoor(st, fromSeat, toSeat)
		if err != nil {
			return nil, nil, err
		}
		return next, r, nil
	})
}
