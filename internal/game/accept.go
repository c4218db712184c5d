package game

// AcceptRequest resolves the target of a swap request agreeing to it:
// the pending event card is trashed, the seats swap, and play continues
// from the acting seat's new position.
func (e *Engine) AcceptRequest(g *State, r *Roster, actor int) (*StepResult, error) {
	if err := e.precheck(g, actor); err != nil {
		return nil, err
	}
	if !g.CurrentPhases.Has(PhaseAcceptRequest) {
		return nil, ErrWrongPhase
	}

	res := e.begin(g, r)
	st := res.State
	active := actor

	activeEvent := st.ActiveEventCard()
	if activeEvent == nil {
		return nil, ErrNoActiveEventCard
	}
	requester := activeEvent.EventRequester
	if requester == 0 {
		return nil, ErrPlayerRequired
	}

	var phases PhaseSet
	var seat int

	switch activeEvent.Action {
	case ActionRunAway, ActionSwapPlaces:
		if trashed, err := takeFromTable(st, active, activeEvent.ID); err == nil {
			st.trashCard(*trashed)
		}
		res.recordSeatSwap(active, requester)

		// The accepting seat continues from its new position.
		next := res.Roster.NextSeat(st.Direction, active)
		if CanExchangeBoth(st, res.Roster, active, next, ExchangeOverride{}) {
			phases, seat = PhaseSet{PhaseGiveToNextPlayer}, active
		} else {
			phases, seat = e.fulfillHand(st, res.Roster, active)
		}
	default:
		return nil, ErrUnsupportedAction
	}

	e.commit(res, g, phases, seat, nil, PhaseAcceptRequest, requester)
	return res, nil
}
