package game

import (
	"math/rand"
	"sort"
)

// Deck composition: the event portion is sampled first, then the panic
// portion, both honoring the per-action copy caps from the catalog.
const (
	deckEventCards = 87
	deckPanicCards = 20
)

// SetupOptions control the initial deal.
type SetupOptions struct {
	// FilterByPlayerCount drops actions whose minimum seated player
	// count exceeds the roster size.
	FilterByPlayerCount bool
	// RandomStartingSeat picks a random first seat instead of the
	// lowest one.
	RandomStartingSeat bool
	// Rand is the randomness source; nil falls back to the global one.
	Rand *rand.Rand
}

func (o SetupOptions) intn(n int) int {
	if o.Rand != nil {
		return o.Rand.Intn(n)
	}
	return rand.Intn(n)
}

func (o SetupOptions) shuffle(cards []Card) {
	swap := func(i, j int) { cards[i], cards[j] = cards[j], cards[i] }
	if o.Rand != nil {
		o.Rand.Shuffle(len(cards), swap)
	} else {
		rand.Shuffle(len(cards), swap)
	}
}

// NewDeck samples a fresh shuffled deck for the given seated player
// count. The unique It card is never part of the deck; it is injected
// into one hand during the deal.
func NewDeck(players int, opts SetupOptions) []Card {
	remaining := make(map[CardAction]int, len(actionCatalog))
	for action, info := range actionCatalog {
		if action == ActionInfectionIt {
			continue
		}
		if opts.FilterByPlayerCount && info.MinPlayers > players {
			continue
		}
		remaining[action] = info.MaxCopies
	}

	deck := make([]Card, 0, deckEventCards+deckPanicCards)

	for i := 0; i < deckEventCards; i++ {
		subTypes := remainingSubTypes(remaining)
		if len(subTypes) == 0 {
			break
		}
		subType := subTypes[opts.intn(len(subTypes))]
		actions := remainingActions(remaining, func(a CardAction) bool {
			return a.Type() == TypeEvent && a.SubType() == subType
		})
		action := actions[opts.intn(len(actions))]

		c := NewCard(action)
		c.Hidden = true
		deck = append(deck, c)

		remaining[action]--
		if remaining[action] == 0 {
			delete(remaining, action)
		}
	}

	for i := 0; i < deckPanicCards; i++ {
		actions := remainingActions(remaining, func(a CardAction) bool {
			return a.Type() == TypePanic
		})
		if len(actions) == 0 {
			break
		}
		action := actions[opts.intn(len(actions))]

		c := NewCard(action)
		c.Hidden = true
		deck = append(deck, c)

		remaining[action]--
		if remaining[action] == 0 {
			delete(remaining, action)
		}
	}

	opts.shuffle(deck)
	return deck
}

func remainingSubTypes(remaining map[CardAction]int) []CardSubType {
	seen := map[CardSubType]bool{}
	for action := range remaining {
		if action.Type() == TypeEvent {
			seen[action.SubType()] = true
		}
	}
	out := make([]CardSubType, 0, len(seen))
	for subType := range seen {
		out = append(out, subType)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func remainingActions(remaining map[CardAction]int, match func(CardAction) bool) []CardAction {
	out := make([]CardAction, 0, len(remaining))
	for action := range remaining {
		if match(action) {
			out = append(out, action)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// NewGame deals a fresh game for the roster: builds the deck, pulls the
// panic and infection cards into a side pile so no one is dealt one,
// hands out the opening hands (one random seat gets the unique It card
// plus three), shuffles the side pile back in, and opens the first draw
// step. Returns the initial state and the seat holding the It card.
func NewGame(roomID string, r *Roster, opts SetupOptions) (*State, int) {
	seats := r.Active(false)

	deck := NewDeck(len(seats), opts)

	// No panic or infection cards in opening hands.
	var sidePile []Card
	clean := deck[:0]
	for _, c := range deck {
		if c.Type == TypePanic || c.IsInfection() {
			sidePile = append(sidePile, c)
			continue
		}
		clean = append(clean, c)
	}
	deck = clean

	st := &State{
		RoomID:    roomID,
		Hands:     make(map[int][]Card, len(seats)),
		Table:     make(map[int][]Card, len(seats)),
		Borders:   make(map[int][]Card, len(seats)),
		Direction: Clockwise,
	}
	for _, s := range seats {
		st.Hands[s.ID] = []Card{}
		st.Table[s.ID] = []Card{}
		st.Borders[s.ID] = []Card{}
	}

	itSeat := seats[opts.intn(len(seats))].ID
	for _, s := range seats {
		handSize := DefaultHandLimit
		if s.ID == itSeat {
			handSize--
		}
		for i := 0; i < handSize; i++ {
			c := deck[0]
			deck = deck[1:]
			c.Hidden = false
			st.Hands[s.ID] = append(st.Hands[s.ID], c)
		}
		if s.ID == itSeat {
			it := NewCard(ActionInfectionIt)
			st.Hands[s.ID] = append(st.Hands[s.ID], it)
		}
	}

	deck = append(deck, sidePile...)
	opts.shuffle(deck)
	for i := range deck {
		deck[i].Hidden = true
	}
	st.Deck = deck
	st.Trash = []Card{}

	first := seats[0].ID
	if opts.RandomStartingSeat {
		first = seats[opts.intn(len(seats))].ID
	}
	st.CurrentSeat = first
	st.CurrentPhases = PhaseSet{PhaseTakeFromDeck}

	return st, itSeat
}
