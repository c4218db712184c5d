package game

// PlayHandCard resolves playing a card out of the acting seat's hand:
// either a defence card answering a pending request, or a regular event
// card opening its effect. otherSeat names the target for actions that
// need one.
func (e *Engine) PlayHandCard(g *State, r *Roster, actor int, cardID string, otherSeat int) (*StepResult, error) {
	if err := e.precheck(g, actor); err != nil {
		return nil, err
	}
	if !g.CurrentPhases.HasAny(PhasePlayFromHand, PhaseDefenceFromHand) {
		return nil, ErrWrongPhase
	}

	res := e.begin(g, r)
	st := res.State
	active := actor

	card, err := takeFromHand(st, active, cardID)
	if err != nil {
		return nil, err
	}

	var phases PhaseSet
	seat := active
	logged := PhasePlayFromHand

	if card.IsDefence() {
		logged = PhaseDefenceFromHand

		requested := st.ActiveRequestedCard()
		activeEvent := st.ActiveEventCard()

		switch card.Action {
		case ActionDefenceFear:
			if requested == nil {
				return nil, ErrNoRequestedCard
			}
			// The defender keeps the offered card; reveal it to them and
			// send their own card back instead.
			if rc := findCard(st.Table[active], requested.ID); rc != nil {
				rc.SharedWith = active
			}
			phases = PhaseSet{PhaseReturnToPlayer}
		case ActionDefenceNoThanks:
			if requested == nil {
				return nil, ErrNoRequestedCard
			}
			phases = PhaseSet{PhaseReturnToPlayer}
		case ActionDefenceMiss:
			phases = PhaseSet{PhaseDropFromTable}
		case ActionDefenceNoBarbecue, ActionDefenceGoodHere:
			if activeEvent == nil {
				return nil, ErrNoActiveEventCard
			}
			phases = PhaseSet{PhaseDropFromTable}
		default:
			return nil, ErrUnsupportedAction
		}

		pushTable(st, active, *card)

		if marker, ok := g.CurrentPhases.ForcedMarker(); ok {
			phases = append(phases, marker)
		}
	} else {
		next := res.Roster.NextSeat(st.Direction, active)
		fulfillPhases, fulfillSeat := e.fulfillHand(st, res.Roster, active)

		card.EventRequester = active

		switch card.Action {
		case ActionLockedDoor:
			if otherSeat == 0 {
				return nil, ErrPlayerRequired
			}
			door := *card
			door.EventRequester = 0
			door.BlockFrom = otherSeat
			pushBorder(st, active, door)

			if CanExchangeBoth(st, res.Roster, active, next, ExchangeOverride{}) {
				phases = PhaseSet{PhaseGiveToNextPlayer}
			} else {
				phases, seat = fulfillPhases, fulfillSeat
			}
		case ActionQuarantine:
			if otherSeat == 0 {
				return nil, ErrPlayerRequired
			}
			q := *card
			q.EventRequester = 0
			if otherSeat == active {
				// Self-quarantine during one's own step already counts as
				// a spent turn.
				q.StepsSpent = 1
			}
			pushTable(st, otherSeat, q)

			if CanExchangeBoth(st, res.Roster, active, next, ExchangeOverride{}) {
				phases = PhaseSet{PhaseGiveToNextPlayer}
			} else {
				phases, seat = fulfillPhases, fulfillSeat
			}
		case ActionWhiskey:
			phases = PhaseSet{PhaseDropFromTable}
			pushTable(st, active, *card)
			for i := range st.Hands[active] {
				st.Hands[active][i].Shared = true
			}
		case ActionRunAway, ActionSwapPlaces, ActionLookAround, ActionAxe:
			// The effect lands once the card is played on from the table.
			phases = PhaseSet{PhasePlayFromTable}
			pushTable(st, active, *card)
		case ActionTemptation:
			if otherSeat == 0 {
				return nil, ErrPlayerRequired
			}
			phases = PhaseSet{PhaseGiveToSpecificPlayer}
			pushTable(st, otherSeat, *card)
		case ActionFlamethrower:
			if otherSeat == 0 {
				return nil, ErrPlayerRequired
			}
			pushTable(st, otherSeat, *card)

			if st.handHasAction(otherSeat, ActionDefenceNoBarbecue) {
				phases, seat = PhaseSet{PhaseDefenceFromHand}, otherSeat
			} else {
				res.recordRoleChange(otherSeat, RoleInactive)
				phases = PhaseSet{PhaseDropFromTable}
			}
		case ActionAnalysis:
			if otherSeat == 0 {
				return nil, ErrPlayerRequired
			}
			phases = PhaseSet{PhaseDropFromTable}
			pushTable(st, otherSeat, *card)
			for i := range st.Hands[otherSeat] {
				st.Hands[otherSeat][i].SharedWith = active
			}
		case ActionPersistence:
			phases = PhaseSet{PhaseTakeFromDeck}
			pushTable(st, active, *card)
		case ActionSuspicion:
			if otherSeat == 0 {
				return nil, ErrPlayerRequired
			}
			phases = PhaseSet{PhasePickFromHand}
			pushTable(st, otherSeat, *card)
		default:
			pushTable(st, active, *card)
		}

		// Obstacle cards resolve passively and open no event window.
		if card.SubType != SubTypeObstacle {
			phases = append(phases, PhaseProcessEvent)
		}
	}

	e.commit(res, g, phases, seat, card, logged, otherSeat)
	return res, nil
}

// PlayTableCard finishes playing a card already lying on the acting
// seat's table part: the landing half of two-step events and the
// resolution of playable panic cards.
func (e *Engine) PlayTableCard(g *State, r *Roster, actor int, cardID string, otherSeat int) (*StepResult, error) {
	if err := e.precheck(g, actor); err != nil {
		return nil, err
	}
	if !g.CurrentPhases.Has(PhasePlayFromTable) {
		return nil, ErrWrongPhase
	}

	res := e.begin(g, r)
	st := res.State
	active := actor

	card := findCard(st.Table[active], cardID)
	if card == nil {
		return nil, ErrCardNotFound
	}
	played := *card

	var phases PhaseSet
	seat := active

	if played.Type == TypePanic {
		switch played.Action {
		case ActionPanicOldRopes:
			if trashed, err := takeFromTable(st, active, cardID); err == nil {
				st.trashCard(*trashed)
			}
			st.trashTableByAction(ActionQuarantine)
			phases, seat = e.exchangeOrFulfill(st, res.Roster, active)
		case ActionPanicBetweenUs:
			if otherSeat == 0 {
				return nil, ErrPlayerRequired
			}
			phases = PhaseSet{PhaseDropFromTable, PhaseProcessPanic}
			for i := range st.Hands[active] {
				st.Hands[active][i].SharedWith = otherSeat
			}
		case ActionPanicOops:
			phases = PhaseSet{PhaseDropFromTable, PhaseProcessPanic}
			for i := range st.Hands[active] {
				st.Hands[active][i].Shared = true
			}
		case ActionPanicGoAway, ActionPanicOneTwo:
			if otherSeat == 0 {
				return nil, ErrPlayerRequired
			}
			if trashed, err := takeFromTable(st, active, cardID); err == nil {
				st.trashCard(*trashed)
			}
			res.recordSeatSwap(active, otherSeat)

			// Continue from the new position.
			next := res.Roster.NextSeat(st.Direction, otherSeat)
			if CanExchangeBoth(st, res.Roster, otherSeat, next, ExchangeOverride{}) {
				phases, seat = PhaseSet{PhaseGiveToNextPlayer}, otherSeat
			} else {
				phases, seat = e.fulfillHand(st, res.Roster, otherSeat)
			}
		case ActionPanicIsItParty:
			if trashed, err := takeFromTable(st, active, cardID); err == nil {
				st.trashCard(*trashed)
			}
			st.trashTableByAction(ActionQuarantine)
			st.trashAllBorders()

			// Pair everyone up starting from the acting seat and swap
			// within each pair; an odd seat out stays put.
			ids := make([]int, 0, len(res.Roster.Seats))
			for _, s := range res.Roster.Active(false) {
				ids = append(ids, s.ID)
			}
			for i, id := range ids {
				if id == active {
					rotated := make([]int, 0, len(ids))
					rotated = append(rotated, ids[i:]...)
					rotated = append(rotated, ids[:i]...)
					ids = rotated
					break
				}
			}
			if len(ids)%2 != 0 {
				ids = ids[:len(ids)-1]
			}
			partner := active
			for i := 0; i+1 < len(ids); i += 2 {
				res.recordSeatSwap(ids[i], ids[i+1])
				if ids[i] == active {
					partner = ids[i+1]
				} else if ids[i+1] == active {
					partner = ids[i]
				}
			}

			// All obstacles are gone, so the exchange cannot be blocked.
			phases, seat = PhaseSet{PhaseGiveToNextPlayer}, partner
		case ActionPanicThreeFour:
			if trashed, err := takeFromTable(st, active, cardID); err == nil {
				st.trashCard(*trashed)
			}
			st.trashAllBorders()
			phases, seat = e.exchangeOrFulfill(st, res.Roster, active)
		default:
			return nil, ErrUnsupportedAction
		}
	} else {
		switch played.Action {
		case ActionRunAway, ActionSwapPlaces:
			if otherSeat == 0 {
				return nil, ErrPlayerRequired
			}
			if st.handHasAction(otherSeat, ActionDefenceGoodHere) {
				// The target holds a matching defence: hand them the
				// decision before any swap happens.
				if moved, err := takeFromTable(st, active, cardID); err == nil {
					offer := *moved
					offer.EventRequester = active
					offer.Requester = active
					pushTable(st, otherSeat, offer)
				}
				phases, seat = PhaseSet{PhaseDefenceFromHand, PhaseAcceptRequest, PhaseProcessEvent}, otherSeat
			} else {
				if trashed, err := takeFromTable(st, active, cardID); err == nil {
					st.trashCard(*trashed)
				}
				res.recordSeatSwap(active, otherSeat)

				next := res.Roster.NextSeat(st.Direction, otherSeat)
				if CanExchangeBoth(st, res.Roster, otherSeat, next, ExchangeOverride{}) {
					phases, seat = PhaseSet{PhaseGiveToNextPlayer}, otherSeat
				} else {
					phases, seat = e.fulfillHand(st, res.Roster, otherSeat)
				}
			}
		case ActionAxe:
			if otherSeat == 0 {
				return nil, ErrPlayerRequired
			}
			if trashed, err := takeFromTable(st, active, cardID); err == nil {
				st.trashCard(*trashed)
			}

			if st.HasQuarantine(otherSeat) {
				kept := st.Table[otherSeat][:0]
				for _, c := range st.Table[otherSeat] {
					if c.Action == ActionQuarantine {
						st.trashCard(c)
						continue
					}
					kept = append(kept, c)
				}
				st.Table[otherSeat] = kept
			} else if st.HasLockedDoor(otherSeat, active) {
				if otherSeat == active {
					// Chopping one's own first door.
					for i, c := range st.Borders[active] {
						if c.Action == ActionLockedDoor {
							st.Borders[active] = append(st.Borders[active][:i:i], st.Borders[active][i+1:]...)
							st.trashCard(c)
							break
						}
					}
				} else {
					kept := st.Borders[otherSeat][:0]
					for _, c := range st.Borders[otherSeat] {
						if c.BlockFrom == active {
							st.trashCard(c)
							continue
						}
						kept = append(kept, c)
					}
					st.Borders[otherSeat] = kept
				}
			}

			phases, seat = e.exchangeOrFulfill(st, res.Roster, active)
		case ActionLookAround:
			if trashed, err := takeFromTable(st, active, cardID); err == nil {
				st.trashCard(*trashed)
			}
			st.Direction = st.Direction.Flip()
			phases, seat = e.exchangeOrFulfill(st, res.Roster, active)
		default:
			return nil, ErrUnsupportedAction
		}
	}

	e.commit(res, g, phases, seat, &played, PhasePlayFromTable, otherSeat)
	return res, nil
}
