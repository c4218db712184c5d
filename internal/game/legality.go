package game

// Legality predicates. All of them are pure reads over an explicit
// state/roster pair: they never mutate, never error, and return false
// for anything that is not allowed right now. The resolver re-checks
// only the phase/actor/zone invariants; callers are expected to gate UI
// and bot choices on these.

// takePhases are the phases during which cards leave the deck.
var takePhases = PhaseSet{PhaseTakeFromDeck, PhaseFulfillHandFromDeck, PhasePickFromHand}

// isActing reports whether seat owns the current step of a live game.
func isActing(g *State, seat int) bool {
	return !g.Finished && seat != 0 && g.CurrentSeat == seat
}

// CanDrop reports whether seat may drop a card right now.
func CanDrop(g *State, seat int) bool {
	return isActing(g, seat) && g.CurrentPhases.HasAny(PhaseDropFromHand, PhaseDropFromTable)
}

// CanTake reports whether seat may take a card during any of the given
// take phases.
func CanTake(g *State, seat int, phases ...StepPhase) bool {
	if len(phases) == 0 {
		phases = takePhases
	}
	return isActing(g, seat) && g.CurrentPhases.HasAny(phases...)
}

// CanPlay reports whether seat may play a card right now.
func CanPlay(g *State, seat int) bool {
	return isActing(g, seat) && g.CurrentPhases.HasAny(
		PhasePlayFromHand,
		PhaseDefenceFromHand,
		PhaseShowFromHand,
		PhasePlayFromTable,
	)
}

// CanGive reports whether seat may give a card right now.
func CanGive(g *State, seat int) bool {
	return isActing(g, seat) && g.CurrentPhases.HasAny(
		PhaseGiveToNextPlayer,
		PhaseGiveToPreviousPlayer,
		PhaseGiveToPlayer,
		PhaseGiveToSpecificPlayer,
		PhaseReturnToPlayer,
	)
}

// CanRefillDeck reports whether the deck must be refilled from the
// trash before any further draw.
func CanRefillDeck(g *State, seat int) bool {
	return isActing(g, seat) && len(g.Deck) == 0 && len(g.Trash) > 0
}

// ExchangeOverride relaxes individual exchange checks.
type ExchangeOverride struct {
	IgnoreQuarantines    bool
	IgnoreLockedDoors    bool
	IgnoreSelfQuarantine bool
}

// CanExchange reports whether the current step owner may exchange cards
// with otherSeat.
func CanExchange(g *State, r *Roster, otherSeat int, o ExchangeOverride) bool {
	return CanExchangeBoth(g, r, g.CurrentSeat, otherSeat, o)
}

// CanExchangeBoth is the single source of truth for "can these two
// seats interact": both must be active, neither quarantined and no
// locked door between them, unless overridden.
func CanExchangeBoth(g *State, r *Roster, first, second int, o ExchangeOverride) bool {
	if first == 0 || second == 0 {
		return false
	}
	if r.IsInactive(first) || r.IsInactive(second) {
		return false
	}
	if !o.IgnoreQuarantines {
		if !o.IgnoreSelfQuarantine && g.HasQuarantine(first) {
			return false
		}
		if g.HasQuarantine(second) {
			return false
		}
	}
	if !o.IgnoreLockedDoors {
		if g.HasLockedDoor(first, second) || g.HasLockedDoor(second, first) {
			return false
		}
	}
	return true
}
