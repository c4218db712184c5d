package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dealOptions(seed int64) SetupOptions {
	return SetupOptions{Rand: rand.New(rand.NewSource(seed))}
}

func TestNewDeck_FullTable(t *testing.T) {
	deck := NewDeck(MaxPlayers, dealOptions(1))

	// 87 event cards plus 20 panic cards; the It card is never dealt
	// into the deck.
	assert.Len(t, deck, 107)

	copies := map[CardAction]int{}
	for _, c := range deck {
		assert.True(t, c.Hidden)
		assert.NotEqual(t, ActionInfectionIt, c.Action)
		copies[c.Action]++
	}
	for action, n := range copies {
		assert.LessOrEqual(t, n, actionCatalog[action].MaxCopies, "action %s over its copy cap", action)
	}
}

func TestNewDeck_FilterByPlayerCount(t *testing.T) {
	opts := dealOptions(1)
	opts.FilterByPlayerCount = true
	deck := NewDeck(4, opts)

	require.NotEmpty(t, deck)
	assert.Less(t, len(deck), 107)
	for _, c := range deck {
		assert.LessOrEqual(t, actionCatalog[c.Action].MinPlayers, 4,
			"action %s needs more players than seated", c.Action)
	}
}

func TestNewDeck_DeterministicForSeed(t *testing.T) {
	a := NewDeck(8, dealOptions(7))
	b := NewDeck(8, dealOptions(7))

	require.Equal(t, len(a), len(b))
	for i := range a {
		assert.Equal(t, a[i].Action, b[i].Action)
	}
}

func TestNewGame_OpeningDeal(t *testing.T) {
	seats := []Seat{
		{ID: 1, Role: RoleHuman},
		{ID: 2, Role: RoleHuman},
		{ID: 3, Role: RoleHuman},
		{ID: 4, Role: RoleHuman},
	}
	opts := dealOptions(3)
	opts.FilterByPlayerCount = true

	st, itSeat := NewGame("room-1", NewRoster(seats), opts)

	require.Contains(t, []int{1, 2, 3, 4}, itSeat)

	for _, s := range seats {
		hand := st.Hands[s.ID]
		require.Len(t, hand, DefaultHandLimit, "seat %d", s.ID)

		hasIt := false
		for _, c := range hand {
			assert.False(t, c.Hidden)
			if c.Action == ActionInfectionIt {
				hasIt = true
				continue
			}
			// No panic or infection cards in opening hands.
			assert.NotEqual(t, TypePanic, c.Type)
			assert.False(t, c.IsInfection())
		}
		assert.Equal(t, s.ID == itSeat, hasIt, "seat %d", s.ID)
	}

	for _, c := range st.Deck {
		assert.True(t, c.Hidden)
	}
	assert.Empty(t, st.Trash)
	assert.Equal(t, Clockwise, st.Direction)
	assert.Equal(t, PhaseSet{PhaseTakeFromDeck}, st.CurrentPhases)
	assert.Equal(t, 1, st.CurrentSeat)
	assert.False(t, st.Finished)
}

func TestNewGame_RandomStartingSeat(t *testing.T) {
	seats := []Seat{
		{ID: 1, Role: RoleHuman},
		{ID: 2, Role: RoleHuman},
		{ID: 3, Role: RoleHuman},
		{ID: 4, Role: RoleHuman},
	}
	opts := dealOptions(11)
	opts.RandomStartingSeat = true

	st, _ := NewGame("room-1", NewRoster(seats), opts)

	assert.Contains(t, []int{1, 2, 3, 4}, st.CurrentSeat)
}

func TestNewGame_EveryCardAccountedFor(t *testing.T) {
	seats := []Seat{
		{ID: 1, Role: RoleHuman},
		{ID: 2, Role: RoleHuman},
		{ID: 3, Role: RoleHuman},
		{ID: 4, Role: RoleHuman},
		{ID: 5, Role: RoleHuman},
		{ID: 6, Role: RoleHuman},
	}

	st, _ := NewGame("room-1", NewRoster(seats), dealOptions(5))

	ids := allCardIDs(st)
	// Full deck plus the injected It card.
	assert.Len(t, ids, 108)

	seen := map[string]bool{}
	for _, id := range ids {
		assert.False(t, seen[id], "card %s appears in more than one zone", id)
		seen[id] = true
	}
}

func TestResolution_CardsNeverDuplicate(t *testing.T) {
	h := newStepHarness(t, 4)
	drawn := h.toDeck(ActionWhiskey)
	h.fillHand(1, 3)
	h.setTurn(1, PhaseTakeFromDeck)

	before := len(allCardIDs(h.state))

	res, err := h.engine.TakeDeckCard(h.state, h.roster, 1, drawn.ID)
	require.NoError(t, err)

	st := res.State
	assert.Equal(t, 1, cardZones(st, drawn.ID))
	assert.Len(t, allCardIDs(st), before)
	assert.Empty(t, st.Deck)
}
