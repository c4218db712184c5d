package game

// DropHandCard resolves discarding a card from the acting seat's hand,
// either as the regular drop step or as the forced discard demanded by
// an active panic or event card.
func (e *Engine) DropHandCard(g *State, r *Roster, actor int, cardID string) (*StepResult, error) {
	if err := e.precheck(g, actor); err != nil {
		return nil, err
	}
	if !g.CurrentPhases.Has(PhaseDropFromHand) {
		return nil, ErrWrongPhase
	}

	res := e.begin(g, r)
	st := res.State
	active := actor

	card, err := takeFromHand(st, active, cardID)
	if err != nil {
		return nil, err
	}
	st.trashCard(*card)

	var phases PhaseSet
	seat := active

	switch {
	case g.CurrentPhases.Has(PhaseProcessPanic):
		activePanic := st.ActivePanicCard()
		if activePanic == nil {
			return nil, ErrNoActivePanicCard
		}

		switch activePanic.Action {
		case ActionPanicBlindDate:
			// The whole hand goes away, then a fresh one is drawn.
			phases = PhaseSet{PhaseTakeFromDeck}
		case ActionPanicForgetfulness:
			// Stops after three discards.
			if len(st.Hands[active]) == e.handLimit-3 {
				phases = PhaseSet{PhaseFulfillHandFromDeck}
			} else {
				phases = PhaseSet{PhaseDropFromHand}
			}
		}
		phases = append(phases, PhaseProcessPanic)
	case g.CurrentPhases.Has(PhaseProcessEvent):
		activeEvent := st.ActiveEventCard()
		if activeEvent == nil {
			return nil, ErrNoActiveEventCard
		}

		switch activeEvent.Action {
		case ActionPersistence:
			// One card is kept on top of the regular cap while the event
			// is still resolving.
			maxHand := e.handLimit + 1
			if len(st.Hands[active]) > maxHand {
				phases = PhaseSet{PhaseDropFromHand, PhaseProcessEvent}
			} else {
				phases = PhaseSet{PhaseDropFromHand, PhasePlayFromHand}
				if trashed, terr := takeFromTable(st, active, activeEvent.ID); terr == nil {
					st.trashCard(*trashed)
				}
			}
		default:
			return nil, ErrUnsupportedAction
		}
	default:
		phases, seat = e.exchangeOrFulfill(st, res.Roster, active)
	}

	e.commit(res, g, phases, seat, card, PhaseDropFromHand, 0)
	return res, nil
}

// DropTableCard resolves discarding (or finishing) a card lying in any
// table part: the cleanup half of most event cards and of the
// table-bound panic cards.
func (e *Engine) DropTableCard(g *State, r *Roster, actor int, cardID string) (*StepResult, error) {
	if err := e.precheck(g, actor); err != nil {
		return nil, err
	}
	if !g.CurrentPhases.Has(PhaseDropFromTable) {
		return nil, ErrWrongPhase
	}

	res := e.begin(g, r)
	st := res.State
	active := actor

	tablePart := st.TableHolder(cardID)
	if tablePart == 0 {
		return nil, ErrCardNotFound
	}
	card := *findCard(st.Table[tablePart], cardID)
	activeEvent := st.ActiveEventCard()

	var phases PhaseSet
	seat := active

	if card.Type == TypePanic {
		switch card.Action {
		case ActionPanicBetweenUs:
			for i := range st.Hands[active] {
				st.Hands[active][i].SharedWith = 0
			}
		case ActionPanicConfessionTime, ActionPanicOops:
			for id := range st.Hands {
				for i := range st.Hands[id] {
					st.Hands[id][i].Shared = false
				}
			}
		}

		if trashed, err := takeFromTable(st, tablePart, cardID); err == nil {
			st.trashCard(*trashed)
		}
		phases, seat = e.exchangeOrFulfill(st, res.Roster, active)
	} else {
		switch card.Action {
		case ActionWhiskey:
			for i := range st.Hands[active] {
				st.Hands[active][i].Shared = false
			}
			if trashed, err := takeFromTable(st, tablePart, cardID); err == nil {
				st.trashCard(*trashed)
			}
			phases, seat = e.exchangeOrFulfill(st, res.Roster, active)
		case ActionFlamethrower:
			// The torched seat loses everything it holds.
			for _, c := range st.Table[tablePart] {
				st.trashCard(c)
			}
			st.Table[tablePart] = nil
			for _, c := range st.Borders[tablePart] {
				st.trashCard(c)
			}
			st.Borders[tablePart] = nil
			for _, c := range st.Hands[tablePart] {
				st.trashCard(c)
			}
			st.Hands[tablePart] = nil

			phases, seat = e.exchangeOrFulfill(st, res.Roster, active)
		case ActionDefenceNoBarbecue:
			if activeEvent == nil {
				return nil, ErrNoActiveEventCard
			}
			requester := activeEvent.EventRequester
			nextAfterRequester := res.Roster.NextSeat(st.Direction, requester)

			phases = PhaseSet{PhaseFulfillHandFromDeck}
			var reserved PhaseSet
			reservedSeat := 0
			if CanExchangeBoth(st, res.Roster, requester, nextAfterRequester, ExchangeOverride{}) {
				reserved, reservedSeat = PhaseSet{PhaseGiveToNextPlayer}, requester
			} else {
				reserved, reservedSeat = PhaseSet{PhaseTakeFromDeck}, nextAfterRequester
			}
			if err := reserveStep(st, reserved, reservedSeat); err != nil {
				return nil, err
			}

			eventID := activeEvent.ID
			if trashed, err := takeFromTable(st, active, cardID); err == nil {
				st.trashCard(*trashed)
			}
			if trashed, err := takeFromTable(st, active, eventID); err == nil {
				st.trashCard(*trashed)
			}
		case ActionSuspicion:
			// Hide the inspected card again.
			for i := range st.Hands[tablePart] {
				if st.Hands[tablePart][i].SharedWith == active {
					st.Hands[tablePart][i].SharedWith = 0
					break
				}
			}
			if trashed, err := takeFromTable(st, tablePart, cardID); err == nil {
				st.trashCard(*trashed)
			}
			phases, seat = e.exchangeOrFulfill(st, res.Roster, active)
		case ActionAnalysis:
			for i := range st.Hands[tablePart] {
				st.Hands[tablePart][i].SharedWith = 0
			}
			if trashed, err := takeFromTable(st, tablePart, cardID); err == nil {
				st.trashCard(*trashed)
			}
			phases, seat = e.exchangeOrFulfill(st, res.Roster, active)
		case ActionDefenceMiss:
			requested := st.ActiveRequestedCard()
			if requested == nil {
				return nil, ErrNoRequestedCard
			}

			// The offered card slides past the defender to the next
			// neighbor; skip the requester to avoid a two-player loop.
			receiver := res.Roster.NextSeat(st.Direction, active)
			if activeEvent != nil && receiver == activeEvent.EventRequester {
				receiver = res.Roster.NextSeat(st.Direction, receiver)
			}

			requestedID := requested.ID
			if moved, err := takeFromTable(st, tablePart, requestedID); err == nil {
				pushTable(st, receiver, *moved)
			}
			if activeEvent != nil && activeEvent.ID != requestedID {
				if moved, err := takeFromTable(st, tablePart, activeEvent.ID); err == nil {
					pushTable(st, receiver, *moved)
				}
			}
			if trashed, err := takeFromTable(st, tablePart, cardID); err == nil {
				st.trashCard(*trashed)
			}

			phases = PhaseSet{PhaseFulfillHandFromDeck}
			reserved := PhaseSet{PhaseGiveToPreviousPlayer, PhaseDefenceFromHand}
			if marker, ok := g.CurrentPhases.ForcedMarker(); ok {
				reserved = append(reserved, marker)
			}
			if err := reserveStep(st, reserved, receiver); err != nil {
				return nil, err
			}
		case ActionDefenceGoodHere:
			if activeEvent == nil {
				return nil, ErrNoActiveEventCard
			}
			requester := activeEvent.EventRequester

			eventID := activeEvent.ID
			if trashed, err := takeFromTable(st, tablePart, cardID); err == nil {
				st.trashCard(*trashed)
			}
			if trashed, err := takeFromTable(st, tablePart, eventID); err == nil {
				st.trashCard(*trashed)
			}

			phases = PhaseSet{PhaseFulfillHandFromDeck}
			var reserved PhaseSet
			reservedSeat := 0
			if CanExchangeBoth(st, res.Roster, requester, active, ExchangeOverride{}) {
				reserved, reservedSeat = PhaseSet{PhaseGiveToNextPlayer}, requester
			} else {
				reserved, reservedSeat = e.fulfillHand(st, res.Roster, active)
			}
			if err := reserveStep(st, reserved, reservedSeat); err != nil {
				return nil, err
			}
		default:
			return nil, ErrUnsupportedAction
		}
	}

	e.commit(res, g, phases, seat, &card, PhaseDropFromTable, tablePart)
	return res, nil
}
