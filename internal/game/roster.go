package game

import "sort"

// Role is a seat's game role. Roles belong to the room's player records;
// the resolver reads them and requests changes through StepResult, it
// never writes them itself.
type Role string

const (
	RoleHuman    Role = "HUMAN"
	RoleInfected Role = "INFECTED"
	RoleIt       Role = "IT"
	RoleInactive Role = "INACTIVE"
)

// Seat is one occupied table position.
type Seat struct {
	ID           int    `json:"playerId"`
	Name         string `json:"name,omitempty"`
	Role         Role   `json:"role"`
	PreviousRole Role   `json:"previousRole,omitempty"`
	Bot          bool   `json:"bot,omitempty"`
}

// Roster is the ordered list of occupied seats for a room, sorted by
// seat ID. It owns all turn-order math.
type Roster struct {
	Seats []Seat `json:"seats"`
}

// NewRoster builds a roster from seats, sorting by seat ID.
func NewRoster(seats []Seat) *Roster {
	sorted := make([]Seat, len(seats))
	copy(sorted, seats)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })
	return &Roster{Seats: sorted}
}

// Clone returns a deep copy.
func (r *Roster) Clone() *Roster {
	out := make([]Seat, len(r.Seats))
	copy(out, r.Seats)
	return &Roster{Seats: out}
}

// Seat returns the seat with the given ID.
func (r *Roster) Seat(id int) (Seat, bool) {
	for _, s := range r.Seats {
		if s.ID == id {
			return s, true
		}
	}
	return Seat{}, false
}

// Active returns occupied seats, excluding inactive ones unless
// includeInactive is set.
func (r *Roster) Active(includeInactive bool) []Seat {
	out := make([]Seat, 0, len(r.Seats))
	for _, s := range r.Seats {
		if !includeInactive && s.Role == RoleInactive {
			continue
		}
		out = append(out, s)
	}
	return out
}

// ActiveCount returns the number of non-inactive seats.
func (r *Roster) ActiveCount() int {
	return len(r.Active(false))
}

// NextSeat returns the seat after relativeTo in the play direction.
// Inactive seats are skipped; this asymmetry with PrevSeat is
// deliberate and load-bearing for turn advancement.
func (r *Roster) NextSeat(dir Direction, relativeTo int) int {
	return r.neighbor(dir, relativeTo, false, +1)
}

// PrevSeat returns the seat before relativeTo in the play direction.
// Inactive seats are NOT skipped.
func (r *Roster) PrevSeat(dir Direction, relativeTo int) int {
	return r.neighbor(dir, relativeTo, true, -1)
}

func (r *Roster) neighbor(dir Direction, relativeTo int, includeInactive bool, step int) int {
	seats := r.Active(includeInactive)
	if len(seats) == 0 {
		return 0
	}
	idx := -1
	for i, s := range seats {
		if s.ID == relativeTo {
			idx = i
			break
		}
	}
	if dir == CounterClockwise {
		step = -step
	}
	next := idx + step
	if next < 0 {
		next = len(seats) - 1
	} else if next >= len(seats) {
		next = 0
	}
	return seats[next].ID
}

// IsInactive reports whether the seat is out of the game.
func (r *Roster) IsInactive(id int) bool { return r.hasRole(id, RoleInactive) }

// IsHuman reports whether the seat currently plays as a human.
func (r *Roster) IsHuman(id int) bool { return r.hasRole(id, RoleHuman) }

// IsInfected reports whether the seat is infected.
func (r *Roster) IsInfected(id int) bool { return r.hasRole(id, RoleInfected) }

// IsIt reports whether the seat holds the It role.
func (r *Roster) IsIt(id int) bool { return r.hasRole(id, RoleIt) }

// WasHuman reports whether an eliminated seat played as a human before
// going inactive.
func (r *Roster) WasHuman(id int) bool {
	s, ok := r.Seat(id)
	return ok && s.Role == RoleInactive && s.PreviousRole == RoleHuman
}

func (r *Roster) hasRole(id int, role Role) bool {
	s, ok := r.Seat(id)
	return ok && s.Role == role
}

// setRole changes a seat's role, remembering the previous one.
func (r *Roster) setRole(id int, role Role) {
	for i := range r.Seats {
		if r.Seats[i].ID == id && r.Seats[i].Role != role {
			r.Seats[i].PreviousRole = r.Seats[i].Role
			r.Seats[i].Role = role
			return
		}
	}
}

// swapSeats exchanges the occupants of two seats: everything but the
// seat IDs moves.
func (r *Roster) swapSeats(a, b int) {
	ai, bi := -1, -1
	for i := range r.Seats {
		switch r.Seats[i].ID {
		case a:
			ai = i
		case b:
			bi = i
		}
	}
	if ai < 0 || bi < 0 {
		return
	}
	r.Seats[ai], r.Seats[bi] = r.Seats[bi], r.Seats[ai]
	r.Seats[ai].ID, r.Seats[bi].ID = a, b
}

// HumansWon reports whether no It seat remains in the room.
func (r *Roster) HumansWon() bool {
	for _, s := range r.Seats {
		if s.Role == RoleIt {
			return false
		}
	}
	return true
}

// ItWon reports whether no human seat remains in the room.
func (r *Roster) ItWon() bool {
	for _, s := range r.Seats {
		if s.Role == RoleHuman {
			return false
		}
	}
	return true
}

// AnybodyWon reports whether either faction has won.
func (r *Roster) AnybodyWon() bool {
	return r.HumansWon() || r.ItWon()
}
