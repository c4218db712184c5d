package game

// GiveHandCard resolves handing a card from the acting seat's hand to
// otherSeat. It covers both halves of the exchange protocol: the
// opening give (next/specific/panic-directed) which parks the card face
// down on the receiver's table pending a defence, and the give-back
// that completes an exchange after the offered card was taken.
func (e *Engine) GiveHandCard(g *State, r *Roster, actor int, cardID string, otherSeat int) (*StepResult, error) {
	if err := e.precheck(g, actor); err != nil {
		return nil, err
	}
	if !g.CurrentPhases.HasAny(
		PhaseGiveToPlayer,
		PhaseGiveToNextPlayer,
		PhaseGiveToPreviousPlayer,
		PhaseGiveToSpecificPlayer,
	) {
		return nil, ErrWrongPhase
	}
	if otherSeat == 0 {
		return nil, ErrPlayerRequired
	}

	res := e.begin(g, r)
	st := res.State
	active := actor

	card := findCard(st.Hands[active], cardID)
	if card == nil {
		return nil, ErrCardNotFound
	}
	given := *card

	var phases PhaseSet
	seat := otherSeat
	logged := PhaseGiveToPlayer

	if g.CurrentPhases.HasAny(PhaseGiveToPlayer, PhaseGiveToNextPlayer, PhaseGiveToSpecificPlayer) {
		if g.CurrentPhases.Has(PhaseProcessPanic) {
			activePanic := st.ActivePanicCard()
			if activePanic == nil {
				return nil, ErrNoActivePanicCard
			}

			switch activePanic.Action {
			case ActionPanicChainReaction:
				// Cards travel openly around the circle until they reach
				// the seat that started the chain.
				moved, err := takeFromHand(st, active, cardID)
				if err != nil {
					return nil, err
				}
				pushHand(st, otherSeat, *moved)

				if activePanic.PanicRequester == otherSeat {
					st.trashPanicCards(otherSeat)
					phases = PhaseSet{PhaseTakeFromDeck}
					seat = res.Roster.NextSeat(st.Direction, otherSeat)
				} else {
					phases = PhaseSet{PhaseGiveToNextPlayer, PhaseProcessPanic}
				}

				spreadInfection(res, otherSeat, moved)
			default:
				phases = PhaseSet{PhaseGiveToPreviousPlayer, PhaseDefenceFromHand, PhaseProcessPanic}

				moved, err := takeFromHand(st, active, cardID)
				if err != nil {
					return nil, err
				}
				offer := *moved
				offer.Hidden = true
				offer.Requester = active
				pushTable(st, otherSeat, offer)

				spreadInfection(res, otherSeat, moved)
			}
		} else {
			phases = PhaseSet{PhaseGiveToPreviousPlayer, PhaseDefenceFromHand}
			if g.CurrentPhases.Has(PhaseProcessEvent) {
				phases = append(phases, PhaseProcessEvent)
			}

			moved, err := takeFromHand(st, active, cardID)
			if err != nil {
				return nil, err
			}
			offer := *moved
			offer.Hidden = true
			offer.Requester = active
			pushTable(st, otherSeat, offer)

			// The card is committed to the receiver the moment it is
			// offered: an infection card infects here, whether or not a
			// defence later bounces it.
			spreadInfection(res, otherSeat, moved)
		}
	} else { // give-back completing an exchange
		logged = PhaseGiveToPreviousPlayer

		requested := st.ActiveRequestedCard()
		if requested == nil {
			return nil, ErrNoRequestedCard
		}
		requestedID := requested.ID
		nextAfterRequester := res.Roster.NextSeat(st.Direction, otherSeat)

		moved, err := takeFromHand(st, active, cardID)
		if err != nil {
			return nil, err
		}
		back := *moved
		back.Hidden = false
		pushHand(st, otherSeat, back)

		var taken Card
		if t, terr := takeFromTable(st, active, requestedID); terr == nil {
			taken = *t
			taken.Hidden = false
			pushHand(st, active, taken)
		}

		switch {
		case g.CurrentPhases.Has(PhaseProcessPanic):
			activePanic := st.ActivePanicCard()
			if activePanic == nil {
				return nil, ErrNoActivePanicCard
			}

			if activePanic.Action == ActionPanicFriends &&
				CanExchangeBoth(st, res.Roster, otherSeat, nextAfterRequester, ExchangeOverride{}) {
				phases, seat = PhaseSet{PhaseGiveToNextPlayer}, otherSeat
			} else {
				phases, seat = PhaseSet{PhaseTakeFromDeck}, nextAfterRequester
			}

			if trashed, terr := takeFromTable(st, otherSeat, activePanic.ID); terr == nil {
				st.trashCard(*trashed)
			}
		case g.CurrentPhases.Has(PhaseProcessEvent):
			activeEvent := st.ActiveEventCard()
			if activeEvent == nil {
				return nil, ErrNoActiveEventCard
			}

			phases, seat = PhaseSet{PhaseTakeFromDeck}, nextAfterRequester

			eventPart := st.TableHolder(activeEvent.ID)
			if trashed, terr := takeFromTable(st, eventPart, activeEvent.ID); terr == nil {
				st.trashCard(*trashed)
			}
		default:
			phases, seat = PhaseSet{PhaseTakeFromDeck}, nextAfterRequester
		}

		spreadInfection(res, active, &taken)
		spreadInfection(res, otherSeat, &back)
	}

	e.commit(res, g, phases, seat, &given, logged, otherSeat)
	return res, nil
}

// GiveTableCard resolves returning the offered table card back to its
// requester after a defence was played: the requester gets the card
// into their hand, the defender refills, and the stashed follow-up step
// runs once the refill completes.
func (e *Engine) GiveTableCard(g *State, r *Roster, actor int, cardID string, otherSeat int) (*StepResult, error) {
	if err := e.precheck(g, actor); err != nil {
		return nil, err
	}
	if !g.CurrentPhases.Has(PhaseReturnToPlayer) {
		return nil, ErrWrongPhase
	}
	if otherSeat == 0 {
		return nil, ErrPlayerRequired
	}

	res := e.begin(g, r)
	st := res.State
	active := actor

	card := findCard(st.Table[active], cardID)
	if card == nil {
		return nil, ErrCardNotFound
	}
	returned := *card

	requested := st.ActiveRequestedCard()
	if requested == nil {
		return nil, ErrNoRequestedCard
	}
	requestedID := requested.ID
	nextAfterRequester := res.Roster.NextSeat(st.Direction, otherSeat)

	if moved, err := takeFromTable(st, active, requestedID); err == nil {
		back := *moved
		back.Hidden = false
		back.Requester = 0
		back.SharedWith = 0
		pushHand(st, otherSeat, back)
	}

	phases := PhaseSet{PhaseFulfillHandFromDeck}
	seat := active
	var reserved PhaseSet
	reservedSeat := 0

	switch {
	case g.CurrentPhases.Has(PhaseProcessPanic):
		activePanic := st.ActivePanicCard()
		if activePanic == nil {
			return nil, ErrNoActivePanicCard
		}

		if activePanic.Action == ActionPanicFriends &&
			CanExchangeBoth(st, res.Roster, otherSeat, nextAfterRequester, ExchangeOverride{}) {
			reserved, reservedSeat = PhaseSet{PhaseGiveToNextPlayer}, otherSeat
		} else {
			reserved, reservedSeat = PhaseSet{PhaseTakeFromDeck}, nextAfterRequester
		}

		if activePanic.Action == ActionPanicFriends {
			panicPart := st.TableHolder(activePanic.ID)
			if trashed, err := takeFromTable(st, panicPart, activePanic.ID); err == nil {
				st.trashCard(*trashed)
			}
		}
	case g.CurrentPhases.Has(PhaseProcessEvent):
		activeEvent := st.ActiveEventCard()
		if activeEvent == nil {
			return nil, ErrNoActiveEventCard
		}

		if activeEvent.Action == ActionSwapPlaces &&
			CanExchangeBoth(st, res.Roster, otherSeat, nextAfterRequester, ExchangeOverride{}) {
			reserved, reservedSeat = PhaseSet{PhaseGiveToNextPlayer}, otherSeat
		} else {
			reserved, reservedSeat = PhaseSet{PhaseTakeFromDeck}, nextAfterRequester
		}

		if activeEvent.ID != requestedID {
			eventPart := st.TableHolder(activeEvent.ID)
			if trashed, err := takeFromTable(st, eventPart, activeEvent.ID); err == nil {
				st.trashCard(*trashed)
			}
		}
	default:
		reserved, reservedSeat = PhaseSet{PhaseTakeFromDeck}, nextAfterRequester
	}

	if err := reserveStep(st, reserved, reservedSeat); err != nil {
		return nil, err
	}

	st.trashDefenceCards(active)

	e.commit(res, g, phases, seat, &returned, PhaseReturnToPlayer, otherSeat)
	return res, nil
}
