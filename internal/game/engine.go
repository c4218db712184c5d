package game

import (
	"math/rand"
	"time"

	"go.uber.org/zap"
)

// Default rule knobs.
const (
	// DefaultHandLimit is the hand cap every active player converges to.
	DefaultHandLimit = 4
	// DefaultQuarantineTurns is how many of the holder's turns a
	// quarantine survives before it lifts.
	DefaultQuarantineTurns = 3
	// MinPlayers and MaxPlayers bound the seated player count.
	MinPlayers = 4
	MaxPlayers = 12
)

// Engine resolves player actions against explicit game snapshots. It
// holds no game state itself: every operation takes the current State
// and Roster, computes the whole resolution in memory on a clone, and
// returns a StepResult for the caller to persist in one write.
type Engine struct {
	log             *zap.Logger
	handLimit       int
	quarantineTurns int
	now             func() time.Time
	shuffle         func([]Card)
}

// Option configures an Engine.
type Option func(*Engine)

// WithHandLimit overrides the hand cap.
func WithHandLimit(n int) Option {
	return func(e *Engine) { e.handLimit = n }
}

// WithQuarantineTurns overrides the quarantine duration.
func WithQuarantineTurns(n int) Option {
	return func(e *Engine) { e.quarantineTurns = n }
}

// WithClock overrides the time source used for step-log timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithShuffle overrides the card shuffler. Tests use this for
// deterministic decks.
func WithShuffle(shuffle func([]Card)) Option {
	return func(e *Engine) { e.shuffle = shuffle }
}

// NewEngine creates a rules engine.
func NewEngine(log *zap.Logger, opts ...Option) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	e := &Engine{
		log:             log,
		handLimit:       DefaultHandLimit,
		quarantineTurns: DefaultQuarantineTurns,
		now:             time.Now,
		shuffle: func(cards []Card) {
			rand.Shuffle(len(cards), func(i, j int) {
				cards[i], cards[j] = cards[j], cards[i]
			})
		},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// precheck enforces the invariants shared by every operation: live
// game, acting seat owns the step.
func (e *Engine) precheck(g *State, actor int) error {
	if g.Finished {
		return ErrGameFinished
	}
	if actor == 0 || g.CurrentSeat != actor {
		e.log.Debug("rejecting action from non-active seat",
			zap.String("room", g.RoomID),
			zap.Int("actor", actor),
			zap.Int("current", g.CurrentSeat),
		)
		return ErrNotYourTurn
	}
	return nil
}

// begin clones the snapshot and roster into a fresh StepResult. All
// mutation happens on the clones; the caller's snapshot stays intact on
// error.
func (e *Engine) begin(g *State, r *Roster) *StepResult {
	return &StepResult{State: g.Clone(), Roster: r.Clone()}
}

// commit writes the ledger transition onto the working state and fills
// the audit entry. prev is the untouched input snapshot.
func (e *Engine) commit(res *StepResult, prev *State, phases PhaseSet, seat int, last *Card, logged StepPhase, otherSeat int) {
	st := res.State
	st.PreviousPhases = prev.CurrentPhases.clone()
	st.PreviousSeat = prev.CurrentSeat
	st.CurrentPhases = phases
	st.CurrentSeat = seat
	if last != nil {
		lc := *last
		st.LastCard = &lc
	}

	res.Info = StepInfo{
		RoomID:      st.RoomID,
		Seat:        prev.CurrentSeat,
		OtherSeat:   otherSeat,
		Phase:       logged,
		ProcessedAt: e.now(),
	}
	if last != nil {
		res.Info.CardAction = last.Action
	}

	if !st.Finished && res.Roster.AnybodyWon() {
		st.Finished = true
		res.Finished = true
	}

	e.log.Debug("action resolved",
		zap.String("room", st.RoomID),
		zap.String("phase", string(logged)),
		zap.Int("seat", prev.CurrentSeat),
		zap.Int("next_seat", seat),
		zap.Bool("finished", st.Finished),
	)
}
