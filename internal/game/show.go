package game

// ShowCards resolves one seat's turn inside the confession round: the
// acting seat either reveals cards (the whole hand, or just the first
// infection card) or skips, and the round moves on around the table
// until it closes back on the seat that started it.
func (e *Engine) ShowCards(g *State, r *Roster, actor int, showAll, skipShowing bool) (*StepResult, error) {
	if err := e.precheck(g, actor); err != nil {
		return nil, err
	}
	if !g.CurrentPhases.Has(PhaseShowFromHand) {
		return nil, ErrWrongPhase
	}
	if !g.CurrentPhases.Has(PhaseProcessPanic) {
		return nil, ErrWrongPhase
	}

	res := e.begin(g, r)
	st := res.State
	active := actor
	next := res.Roster.NextSeat(st.Direction, active)

	activePanic := st.ActivePanicCard()
	if activePanic == nil {
		return nil, ErrNoActivePanicCard
	}

	var infection *Card
	for i := range st.Hands[active] {
		c := &st.Hands[active][i]
		if c.IsInfection() && c.Action != ActionInfectionIt {
			infection = c
			break
		}
	}

	if !skipShowing {
		if showAll {
			for i := range st.Hands[active] {
				st.Hands[active][i].Shared = true
			}
		} else {
			if infection == nil {
				return nil, ErrCardNotFound
			}
			infection.Shared = true
		}
	}

	requester := activePanic.PanicRequester
	var phases PhaseSet
	var seat int

	// Keep the round going while seats have nothing to show (or chose to
	// skip) and it has not wrapped around to the requester.
	if next != requester && (skipShowing || infection == nil) {
		phases, seat = PhaseSet{PhaseShowFromHand, PhaseProcessPanic}, next
	} else {
		phases, seat = PhaseSet{PhaseDropFromTable, PhaseProcessPanic}, requester
	}

	e.commit(res, g, phases, seat, nil, PhaseShowFromHand, 0)
	res.Info.ShowAll = showAll
	res.Info.SkipShowing = skipShowing
	return res, nil
}

// SkipShowingCards is ShowCards with the skip flag set.
func (e *Engine) SkipShowingCards(g *State, r *Roster, actor int) (*StepResult, error) {
	return e.ShowCards(g, r, actor, false, true)
}
