package game

import "go.uber.org/zap"

// Moderator helpers. These inject obstacle cards outside the regular
// step flow and leave the turn ledger untouched.

// PutOnQuarantine places a fresh quarantine card on the seat's table.
func (e *Engine) PutOnQuarantine(g *State, seat int) (*State, error) {
	if seat == 0 {
		return nil, ErrPlayerRequired
	}

	st := g.Clone()
	q := NewCard(ActionQuarantine)
	pushTable(st, seat, q)

	e.log.Info("seat put on quarantine",
		zap.String("room", st.RoomID),
		zap.Int("seat", seat),
	)
	return st, nil
}

// SetLockedDoor places a fresh locked door on fromSeat's border,
// blocking exchanges with toSeat.
func (e *Engine) SetLockedDoor(g *State, fromSeat, toSeat int) (*State, error) {
	if fromSeat == 0 || toSeat == 0 {
		return nil, ErrPlayerRequired
	}

	st := g.Clone()
	door := NewCard(ActionLockedDoor)
	door.BlockFrom = toSeat
	pushBorder(st, fromSeat, door)

	e.log.Info("locked door set",
		zap.String("room", st.RoomID),
		zap.Int("from", fromSeat),
		zap.Int("to", toSeat),
	)
	return st, nil
}
