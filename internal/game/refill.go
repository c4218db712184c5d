package game

import "go.uber.org/zap"

// RefillDeck shuffles the trash pile back into the deck. Required (and
// only legal) once the deck runs dry mid-draw; the whole turn ledger is
// left untouched so the interrupted draw resumes against the fresh
// deck.
func (e *Engine) RefillDeck(g *State, r *Roster, actor int) (*StepResult, error) {
	if err := e.precheck(g, actor); err != nil {
		return nil, err
	}
	if len(g.Deck) != 0 {
		return nil, ErrDeckNotEmpty
	}
	if len(g.Trash) == 0 {
		return nil, ErrEmptyTrash
	}

	res := e.begin(g, r)
	st := res.State

	refill := st.Trash
	e.shuffle(refill)
	st.Deck = append(st.Deck, refill...)
	st.Trash = nil

	res.Info = StepInfo{
		RoomID:      st.RoomID,
		Seat:        actor,
		Phase:       PhaseRefillDeck,
		ProcessedAt: e.now(),
	}

	e.log.Debug("deck refilled from trash",
		zap.String("room", st.RoomID),
		zap.Int("seat", actor),
		zap.Int("cards", len(st.Deck)),
	)
	return res, nil
}
