package game

import (
	"testing"
	"time"

	"go.uber.org/zap/zaptest"
)

// stepHarness builds mid-game positions for single resolver calls. The
// engine runs with a fixed clock and a no-op shuffler so outcomes are
// deterministic.
type stepHarness struct {
	t      *testing.T
	engine *Engine
	state  *State
	roster *Roster
}

var testClock = time.Date(2026, time.March, 14, 12, 0, 0, 0, time.UTC)

// newStepHarness seats players 1..n. The last seat holds the It role so
// the position counts as a live game; everyone else is human.
func newStepHarness(t *testing.T, seats int) *stepHarness {
	engine := NewEngine(zaptest.NewLogger(t),
		WithClock(func() time.Time { return testClock }),
		WithShuffle(func([]Card) {}),
	)

	st := &State{
		RoomID:        "room-test",
		Hands:         make(map[int][]Card, seats),
		Table:         make(map[int][]Card, seats),
		Borders:       make(map[int][]Card, seats),
		Direction:     Clockwise,
		CurrentSeat:   1,
		CurrentPhases: PhaseSet{PhaseTakeFromDeck},
	}

	players := make([]Seat, 0, seats)
	for id := 1; id <= seats; id++ {
		role := RoleHuman
		if id == seats {
			role = RoleIt
		}
		players = append(players, Seat{ID: id, Role: role})
		st.Hands[id] = []Card{}
		st.Table[id] = []Card{}
		st.Borders[id] = []Card{}
	}

	return &stepHarness{
		t:      t,
		engine: engine,
		state:  st,
		roster: NewRoster(players),
	}
}

func (h *stepHarness) setTurn(seat int, phases ...StepPhase) {
	h.state.CurrentSeat = seat
	h.state.CurrentPhases = PhaseSet(phases)
}

func (h *stepHarness) setRole(seat int, role Role) {
	for i := range h.roster.Seats {
		if h.roster.Seats[i].ID == seat {
			h.roster.Seats[i].Role = role
		}
	}
}

func (h *stepHarness) toDeck(action CardAction) Card {
	c := NewCard(action)
	c.Hidden = true
	h.state.Deck = append(h.state.Deck, c)
	return c
}

func (h *stepHarness) toHand(seat int, action CardAction) Card {
	c := NewCard(action)
	h.state.Hands[seat] = append(h.state.Hands[seat], c)
	return c
}

func (h *stepHarness) toTable(seat int, action CardAction) Card {
	c := NewCard(action)
	h.state.Table[seat] = append(h.state.Table[seat], c)
	return c
}

func (h *stepHarness) toBorder(seat int, action CardAction) Card {
	c := NewCard(action)
	h.state.Borders[seat] = append(h.state.Borders[seat], c)
	return c
}

// fillHand pads the seat's hand with neutral cards up to n.
func (h *stepHarness) fillHand(seat, n int) {
	for len(h.state.Hands[seat]) < n {
		h.toHand(seat, ActionWhiskey)
	}
}

// tableCard returns a pointer to the stored table card for flag edits.
func (h *stepHarness) tableCard(seat int, cardID string) *Card {
	return findCard(h.state.Table[seat], cardID)
}

// cardZones counts the zones a card ID appears in across the whole
// state.
func cardZones(st *State, cardID string) int {
	count := 0
	for _, c := range st.Deck {
		if c.ID == cardID {
			count++
		}
	}
	for _, c := range st.Trash {
		if c.ID == cardID {
			count++
		}
	}
	for _, zone := range []map[int][]Card{st.Hands, st.Table, st.Borders} {
		for _, cards := range zone {
			for _, c := range cards {
				if c.ID == cardID {
					count++
				}
			}
		}
	}
	return count
}

// allCardIDs collects every card ID in every zone.
func allCardIDs(st *State) []string {
	var ids []string
	collect := func(cards []Card) {
		for _, c := range cards {
			ids = append(ids, c.ID)
		}
	}
	collect(st.Deck)
	collect(st.Trash)
	for _, zone := range []map[int][]Card{st.Hands, st.Table, st.Borders} {
		for _, cards := range zone {
			collect(cards)
		}
	}
	return ids
}
