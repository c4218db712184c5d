package game

import "time"

// RoleChange is a role transition the resolver requests of the caller's
// player store.
type RoleChange struct {
	Seat int  `json:"playerId"`
	Role Role `json:"role"`
}

// SeatSwap is a request to exchange the occupants of two seats.
type SeatSwap struct {
	A int `json:"a"`
	B int `json:"b"`
}

// StepInfo is one audit-log entry describing a resolved action.
type StepInfo struct {
	RoomID      string     `json:"roomId"`
	Seat        int        `json:"playerId"`
	OtherSeat   int        `json:"otherPlayerId,omitempty"`
	CardAction  CardAction `json:"cardAction,omitempty"`
	Phase       StepPhase  `json:"stepPhase"`
	ShowAll     bool       `json:"showAll,omitempty"`
	SkipShowing bool       `json:"skipShowing,omitempty"`
	ProcessedAt time.Time  `json:"processedAt"`
}

// StepResult is the outcome of one resolved action: the next state
// snapshot, the roster as the resolver left it (seat swaps and role
// changes already applied), the side effects the caller must persist,
// and the audit entry.
type StepResult struct {
	State       *State
	Roster      *Roster
	RoleChanges []RoleChange
	SeatSwaps   []SeatSwap
	Info        StepInfo
	// Finished is set when a faction won during this resolution. The
	// state's Finished flag is set accordingly.
	Finished bool
}

// recordRoleChange applies the change to the working roster and queues
// it for the caller.
func (sr *StepResult) recordRoleChange(seat int, role Role) {
	if s, ok := sr.Roster.Seat(seat); !ok || s.Role == role {
		return
	}
	sr.Roster.setRole(seat, role)
	sr.RoleChanges = append(sr.RoleChanges, RoleChange{Seat: seat, Role: role})
}

// recordSeatSwap swaps the occupants on the working roster and the
// hands on the state, queueing the swap for the caller.
func (sr *StepResult) recordSeatSwap(a, b int) {
	sr.Roster.swapSeats(a, b)
	sr.State.Hands[a], sr.State.Hands[b] = sr.State.Hands[b], sr.State.Hands[a]
	sr.SeatSwaps = append(sr.SeatSwaps, SeatSwap{A: a, B: b})
}
