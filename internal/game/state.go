package game

// Direction is the order of play around the table.
type Direction string

const (
	Clockwise        Direction = "CLOCKWISE"
	CounterClockwise Direction = "COUNTER_CLOCKWISE"
)

// Flip returns the opposite direction.
func (d Direction) Flip() Direction {
	if d == Clockwise {
		return CounterClockwise
	}
	return Clockwise
}

// State is the full shared game state for one room: every zone, the
// turn/phase ledger and the reserved (suspended) step. It is mutated
// exclusively by the resolver; callers persist the whole snapshot in one
// write.
type State struct {
	RoomID string `json:"roomId"`

	Deck    []Card         `json:"deck"`
	Trash   []Card         `json:"trash"`
	Hands   map[int][]Card `json:"hands"`
	Table   map[int][]Card `json:"table"`
	Borders map[int][]Card `json:"borders"`

	CurrentSeat    int      `json:"currentStepPlayerId"`
	PreviousSeat   int      `json:"previousStepPlayerId"`
	CurrentPhases  PhaseSet `json:"currentStepPhases"`
	PreviousPhases PhaseSet `json:"previousStepPhases"`
	ReservedSeat   int      `json:"reservedStepPlayerId,omitempty"`
	ReservedPhases PhaseSet `json:"reservedStepPhases,omitempty"`

	Direction Direction `json:"direction"`
	LastCard  *Card     `json:"lastCard,omitempty"`
	Finished  bool      `json:"finished"`
}

// Clone deep-copies the state. The resolver works on a clone so a failed
// resolution never leaves a half-mutated snapshot behind.
func (g *State) Clone() *State {
	out := *g
	out.Deck = cloneCards(g.Deck)
	out.Trash = cloneCards(g.Trash)
	out.Hands = cloneZoneMap(g.Hands)
	out.Table = cloneZoneMap(g.Table)
	out.Borders = cloneZoneMap(g.Borders)
	out.CurrentPhases = g.CurrentPhases.clone()
	out.PreviousPhases = g.PreviousPhases.clone()
	out.ReservedPhases = g.ReservedPhases.clone()
	if g.LastCard != nil {
		last := *g.LastCard
		out.LastCard = &last
	}
	return &out
}

func cloneCards(cards []Card) []Card {
	if cards == nil {
		return nil
	}
	out := make([]Card, len(cards))
	copy(out, cards)
	return out
}

func cloneZoneMap(zone map[int][]Card) map[int][]Card {
	if zone == nil {
		return nil
	}
	out := make(map[int][]Card, len(zone))
	for seat, cards := range zone {
		out[seat] = cloneCards(cards)
	}
	return out
}

// HasReserved reports whether a suspended step is stashed.
func (g *State) HasReserved() bool {
	return len(g.ReservedPhases) > 0 && g.ReservedSeat != 0
}

// HandHolder returns the seat whose hand contains the card, or 0.
func (g *State) HandHolder(cardID string) int {
	return zoneHolder(g.Hands, cardID)
}

// TableHolder returns the seat whose table zone contains the card, or 0.
func (g *State) TableHolder(cardID string) int {
	return zoneHolder(g.Table, cardID)
}

// BorderHolder returns the seat whose border zone contains the card, or 0.
func (g *State) BorderHolder(cardID string) int {
	return zoneHolder(g.Borders, cardID)
}

func zoneHolder(zone map[int][]Card, cardID string) int {
	for seat, cards := range zone {
		for _, c := range cards {
			if c.ID == cardID {
				return seat
			}
		}
	}
	return 0
}

// ActiveRequestedCard returns the table card placed by a plain give
// request (Requester set), if any.
func (g *State) ActiveRequestedCard() *Card {
	return g.activeCard(func(c *Card) bool { return c.Requester != 0 })
}

// ActiveEventCard returns the table card with an event requester set.
func (g *State) ActiveEventCard() *Card {
	return g.activeCard(func(c *Card) bool { return c.EventRequester != 0 })
}

// ActivePanicCard returns the table card with a panic requester set.
func (g *State) ActivePanicCard() *Card {
	return g.activeCard(func(c *Card) bool { return c.PanicRequester != 0 })
}

func (g *State) activeCard(match func(*Card) bool) *Card {
	for _, cards := range g.Table {
		for i := range cards {
			if match(&cards[i]) {
				return &cards[i]
			}
		}
	}
	return nil
}

// HasQuarantine reports whether the seat has a quarantine card in play.
func (g *State) HasQuarantine(seat int) bool {
	for _, c := range g.Table[seat] {
		if c.Action == ActionQuarantine {
			return true
		}
	}
	return false
}

// HasLockedDoor reports whether a door in seat's border blocks
// otherSeat. A seat checked against itself matches any door it owns.
func (g *State) HasLockedDoor(seat, otherSeat int) bool {
	doors := g.Borders[seat]
	if seat == otherSeat {
		return len(doors) > 0
	}
	for _, c := range doors {
		if c.BlockFrom == otherSeat {
			return true
		}
	}
	return false
}

// hand mutation helpers; all zone edits in the resolver go through these
// so that a card is removed from its source before landing anywhere else.

// removeCard drops the card with the given ID from the slice and returns
// the removed card.
func removeCard(cards []Card, cardID string) ([]Card, *Card) {
	for i, c := range cards {
		if c.ID == cardID {
			removed := c
			out := append(cards[:i:i], cards[i+1:]...)
			return out, &removed
		}
	}
	return cards, nil
}

// findCard returns a pointer into the slice for in-place flag edits.
func findCard(cards []Card, cardID string) *Card {
	for i := range cards {
		if cards[i].ID == cardID {
			return &cards[i]
		}
	}
	return nil
}

// trashCard prepends the card to the trash, face down, with requester
// bookkeeping cleared.
func (g *State) trashCard(c Card) {
	c.Hidden = true
	c.Requester = 0
	c.EventRequester = 0
	c.PanicRequester = 0
	g.Trash = append([]Card{c}, g.Trash...)
}
