package game

// TakeDeckCard resolves the acting seat drawing the identified card from
// the deck, during either the regular draw step or hand fulfillment.
// Event cards go to the hand; panic cards hit the table (or the trash
// when the hand is still short) and open their forced resolution.
func (e *Engine) TakeDeckCard(g *State, r *Roster, actor int, cardID string) (*StepResult, error) {
	if err := e.precheck(g, actor); err != nil {
		return nil, err
	}
	if !g.CurrentPhases.HasAny(PhaseTakeFromDeck, PhaseFulfillHandFromDeck) {
		return nil, ErrWrongPhase
	}

	res := e.begin(g, r)
	st := res.State

	deck, card := removeCard(st.Deck, cardID)
	if card == nil {
		return nil, ErrCardNotFound
	}
	st.Deck = deck

	active := actor
	next := res.Roster.NextSeat(st.Direction, active)
	maxHand := e.handLimit
	forcedPanic := g.CurrentPhases.Has(PhaseProcessPanic)
	forcedEvent := g.CurrentPhases.Has(PhaseProcessEvent)

	var activePanicAction, activeEventAction CardAction
	var activePanicID string
	if pc := st.ActivePanicCard(); pc != nil {
		activePanicAction, activePanicID = pc.Action, pc.ID
	}
	if ec := st.ActiveEventCard(); ec != nil {
		activeEventAction = ec.Action
	}

	var phases PhaseSet
	seat := active
	logged := PhaseTakeFromDeck

	if g.CurrentPhases.Has(PhaseTakeFromDeck) {
		if !forcedPanic && forcedEvent && activeEventAction == ActionPersistence {
			// The event needs extra hand slots for its forced draws.
			maxHand += 3
		}

		if card.Type == TypeEvent {
			drawn := *card
			drawn.Hidden = false
			if forcedPanic || forcedEvent {
				pushHand(st, active, drawn)
			}

			if len(st.Hands[active]) < maxHand {
				phases = PhaseSet{PhaseTakeFromDeck}
				switch {
				case forcedPanic:
					phases = append(phases, PhaseProcessPanic)
				case forcedEvent:
					phases = append(phases, PhaseProcessEvent)
				default:
					pushHand(st, active, drawn)
				}
			} else {
				switch {
				case !forcedPanic && !forcedEvent:
					phases = PhaseSet{PhaseDropFromHand, PhasePlayFromHand}
					if st.HasQuarantine(active) {
						e.ageQuarantine(st, active, g.CurrentPhases)
						// Still quarantined with no axe in hand: the
						// player may only drop this turn.
						if st.HasQuarantine(active) && !st.handHasAction(active, ActionAxe) {
							phases = PhaseSet{PhaseDropFromHand}
						}
					}
					pushHand(st, active, drawn)
				case forcedPanic:
					if activePanicAction == ActionPanicBlindDate {
						if trashed, err := takeFromTable(st, active, activePanicID); err == nil {
							st.trashCard(*trashed)
						}
						phases, seat = e.fulfillHand(st, res.Roster, active)
					} else {
						phases = PhaseSet{PhaseProcessPanic}
					}
				default:
					if activeEventAction == ActionPersistence {
						phases = PhaseSet{PhaseDropFromHand, PhaseProcessEvent}
					} else {
						phases = PhaseSet{PhaseProcessEvent}
					}
				}
			}
		} else { // panic card drawn
			if len(st.Hands[active]) < maxHand {
				// Short hand: the panic fizzles so drawing can continue.
				phases = PhaseSet{PhaseTakeFromDeck}
				if forcedPanic {
					phases = append(phases, PhaseProcessPanic)
				} else if forcedEvent {
					phases = append(phases, PhaseProcessEvent)
				}
				st.trashCard(*card)
			} else {
				e.ageQuarantine(st, active, g.CurrentPhases)

				switch card.Action {
				case ActionPanicOldRopes, ActionPanicBetweenUs, ActionPanicIsItParty,
					ActionPanicOops, ActionPanicThreeFour:
					phases = PhaseSet{PhasePlayFromTable}
				case ActionPanicOneTwo:
					thirdPrev := res.Roster.PrevSeat(st.Direction,
						res.Roster.PrevSeat(st.Direction,
							res.Roster.PrevSeat(st.Direction, active)))
					thirdNext := res.Roster.NextSeat(st.Direction,
						res.Roster.NextSeat(st.Direction,
							res.Roster.NextSeat(st.Direction, active)))
					if !st.HasQuarantine(thirdPrev) || !st.HasQuarantine(thirdNext) {
						phases = PhaseSet{PhasePlayFromTable}
					} else {
						phases = PhaseSet{PhaseDropFromTable}
					}
				case ActionPanicGoAway:
					playable := false
					for _, s := range res.Roster.Active(false) {
						if s.ID != active && !st.HasQuarantine(s.ID) {
							playable = true
							break
						}
					}
					if playable {
						phases = PhaseSet{PhasePlayFromTable}
					} else {
						phases = PhaseSet{PhaseDropFromTable}
					}
				case ActionPanicFriends:
					phases = PhaseSet{PhaseGiveToPlayer}
				case ActionPanicBlindDate, ActionPanicForgetfulness:
					phases = PhaseSet{PhaseDropFromHand}
				case ActionPanicChainReaction:
					card.PanicRequester = active
					phases = PhaseSet{PhaseGiveToNextPlayer}
				case ActionPanicConfessionTime:
					card.PanicRequester = active
					phases = PhaseSet{PhaseShowFromHand}
				}

				phases = append(phases, PhaseProcessPanic)

				played := *card
				played.Hidden = false
				played.PanicRequester = active
				pushTable(st, active, played)
			}
		}
	} else { // hand fulfillment draw
		logged = PhaseFulfillHandFromDeck

		if card.Type == TypeEvent {
			drawn := *card
			drawn.Hidden = false
			pushHand(st, active, drawn)

			fulfillPhases, fulfillSeat := e.fulfillHand(st, res.Roster, active)

			if forcedPanic {
				if len(st.Hands[active]) == maxHand &&
					CanExchangeBoth(st, res.Roster, active, next, ExchangeOverride{}) {
					phases, seat = PhaseSet{PhaseGiveToNextPlayer}, active
					st.trashPanicCards(active)
					phases, seat = consumeReserved(st, phases, seat)
				} else {
					phases, seat = fulfillPhases, fulfillSeat
					phases = append(phases, PhaseProcessPanic)
				}
			} else {
				phases, seat = fulfillPhases, fulfillSeat
				if len(st.Hands[active]) == maxHand {
					phases, seat = consumeReserved(st, phases, seat)
				}
			}
		} else if len(st.Hands[active]) < maxHand {
			// Panic drawn mid-fulfillment fizzles into the trash.
			phases, seat = PhaseSet{PhaseFulfillHandFromDeck}, active
			st.trashCard(*card)
			if forcedPanic {
				phases = append(phases, PhaseProcessPanic)
			}
		}
	}

	e.commit(res, g, phases, seat, card, logged, 0)
	return res, nil
}

// TakeHandCard resolves picking one selected card out of another
// player's hand. Only reachable through a card that opened the pick
// step; the picked card is revealed to the picker and resolution moves
// back to the table.
func (e *Engine) TakeHandCard(g *State, r *Roster, actor int, cardID string) (*StepResult, error) {
	if err := e.precheck(g, actor); err != nil {
		return nil, err
	}
	if !g.CurrentPhases.Has(PhasePickFromHand) {
		return nil, ErrWrongPhase
	}

	res := e.begin(g, r)
	st := res.State

	holder := st.HandHolder(cardID)
	if holder == 0 {
		return nil, ErrCardNotFound
	}
	card := findCard(st.Hands[holder], cardID)

	if g.LastCard == nil || g.LastCard.Action != ActionSuspicion {
		return nil, ErrUnsupportedAction
	}

	card.SharedWith = actor

	e.commit(res, g, PhaseSet{PhaseDropFromTable}, actor, card, PhasePickFromHand, holder)
	return res, nil
}
