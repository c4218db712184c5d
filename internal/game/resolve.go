package game

// Shared resolution sub-protocols. Every operation composes its outcome
// from these: hand fulfillment, the standard exchange hand-off,
// quarantine aging, reserved-step consumption and infection spread.

// fulfillHand decides the follow-up once a seat's regular step is over:
// draw back up to the hand cap, or pass the turn to the next seat.
func (e *Engine) fulfillHand(st *State, r *Roster, seat int) (PhaseSet, int) {
	if len(st.Hands[seat]) < e.handLimit {
		return PhaseSet{PhaseFulfillHandFromDeck}, seat
	}
	return PhaseSet{PhaseTakeFromDeck}, r.NextSeat(st.Direction, seat)
}

// exchangeOrFulfill is the standard end-of-action hand-off: if seat can
// exchange with its next neighbor the give step runs, otherwise the
// exchange silently skips into hand fulfillment.
func (e *Engine) exchangeOrFulfill(st *State, r *Roster, seat int) (PhaseSet, int) {
	next := r.NextSeat(st.Direction, seat)
	if CanExchangeBoth(st, r, seat, next, ExchangeOverride{}) {
		return PhaseSet{PhaseGiveToNextPlayer}, seat
	}
	return e.fulfillHand(st, r, seat)
}

// ageQuarantine ticks the quarantine card on seat's table once per
// regular turn start. Forced sub-resolutions and non-draw steps do not
// age quarantine.
func (e *Engine) ageQuarantine(st *State, seat int, phases PhaseSet) {
	if !st.HasQuarantine(seat) || phases.Forced() || !phases.Has(PhaseTakeFromDeck) {
		return
	}
	for i, c := range st.Table[seat] {
		if c.Action != ActionQuarantine {
			continue
		}
		if c.StepsSpent < e.quarantineTurns {
			st.Table[seat][i].StepsSpent++
		} else {
			st.Table[seat] = append(st.Table[seat][:i:i], st.Table[seat][i+1:]...)
			st.trashCard(c)
		}
		return
	}
}

// consumeReserved resumes a stashed step if one is pending, otherwise
// keeps the computed follow-up. The reservation is cleared either way.
func consumeReserved(st *State, phases PhaseSet, seat int) (PhaseSet, int) {
	if st.HasReserved() {
		phases, seat = st.ReservedPhases.clone(), st.ReservedSeat
	}
	st.ReservedPhases, st.ReservedSeat = nil, 0
	return phases, seat
}

// reserveStep stashes a step to resume after an interposed resolution.
// Only one reservation may be pending at a time.
func reserveStep(st *State, phases PhaseSet, seat int) error {
	if st.HasReserved() {
		return ErrReservationPending
	}
	st.ReservedPhases, st.ReservedSeat = phases.clone(), seat
	return nil
}

// spreadInfection turns a human into an infected when an infection card
// ends up in their hand through a give or return.
func spreadInfection(res *StepResult, seat int, card *Card) {
	if card != nil && card.IsInfection() && res.Roster.IsHuman(seat) {
		res.recordRoleChange(seat, RoleInfected)
	}
}

// Zone edit helpers. Removal always precedes insertion so a card never
// exists in two zones at once.

func takeFromHand(st *State, seat int, cardID string) (*Card, error) {
	cards, card := removeCard(st.Hands[seat], cardID)
	if card == nil {
		return nil, ErrCardNotFound
	}
	st.Hands[seat] = cards
	return card, nil
}

func takeFromTable(st *State, seat int, cardID string) (*Card, error) {
	cards, card := removeCard(st.Table[seat], cardID)
	if card == nil {
		return nil, ErrCardNotFound
	}
	st.Table[seat] = cards
	return card, nil
}

func pushHand(st *State, seat int, c Card) {
	st.Hands[seat] = append(st.Hands[seat], c)
}

func pushTable(st *State, seat int, c Card) {
	st.Table[seat] = append(st.Table[seat], c)
}

func pushBorder(st *State, seat int, c Card) {
	st.Borders[seat] = append(st.Borders[seat], c)
}

// trashTableByAction trashes every table card with the given action,
// across all seats.
func (g *State) trashTableByAction(action CardAction) {
	for seat, cards := range g.Table {
		kept := cards[:0]
		for _, c := range cards {
			if c.Action == action {
				g.trashCard(c)
				continue
			}
			kept = append(kept, c)
		}
		g.Table[seat] = kept
	}
}

// trashAllBorders trashes every border card across all seats.
func (g *State) trashAllBorders() {
	for seat, cards := range g.Borders {
		for _, c := range cards {
			g.trashCard(c)
		}
		g.Borders[seat] = nil
	}
}

// trashPanicCards trashes every panic card from a seat's table zone.
func (g *State) trashPanicCards(seat int) {
	kept := g.Table[seat][:0]
	for _, c := range g.Table[seat] {
		if c.Type == TypePanic {
			g.trashCard(c)
			continue
		}
		kept = append(kept, c)
	}
	g.Table[seat] = kept
}

// trashDefenceCards trashes every defence card from a seat's table zone.
func (g *State) trashDefenceCards(seat int) {
	kept := g.Table[seat][:0]
	for _, c := range g.Table[seat] {
		if c.IsDefence() {
			g.trashCard(c)
			continue
		}
		kept = append(kept, c)
	}
	g.Table[seat] = kept
}

// handHasAction reports whether seat's hand holds a card with the action.
func (g *State) handHasAction(seat int, action CardAction) bool {
	for _, c := range g.Hands[seat] {
		if c.Action == action {
			return true
		}
	}
	return false
}
