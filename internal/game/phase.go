package game

// StepPhase tags the kind of move currently required or in progress.
// Several phases can be active at once; the first entry of a PhaseSet is
// the primary actionable one, the rest are context markers.
type StepPhase string

const (
	PhaseTakeFromDeck         StepPhase = "TAKE_FROM_DECK"
	PhaseDropFromHand         StepPhase = "DROP_FROM_HAND"
	PhaseDropFromTable        StepPhase = "DROP_FROM_TABLE"
	PhasePlayFromHand         StepPhase = "PLAY_FROM_HAND"
	PhasePlayFromTable        StepPhase = "PLAY_FROM_TABLE"
	PhaseDefenceFromHand      StepPhase = "DEFENCE_FROM_HAND"
	PhaseGiveToNextPlayer     StepPhase = "GIVE_TO_NEXT_PLAYER"
	PhaseGiveToPreviousPlayer StepPhase = "GIVE_TO_PREVIOUS_PLAYER"
	PhaseGiveToPlayer         StepPhase = "GIVE_TO_PLAYER"
	PhaseGiveToSpecificPlayer StepPhase = "GIVE_TO_SPECIFIC_PLAYER"
	PhaseReturnToPlayer       StepPhase = "RETURN_TO_PLAYER"
	PhaseProcessPanic         StepPhase = "PROCESS_PANIC"
	PhaseProcessEvent         StepPhase = "PROCESS_EVENT"
	PhaseFulfillHandFromDeck  StepPhase = "FULFILL_HAND_FROM_DECK"
	PhaseShowFromHand         StepPhase = "SHOW_FROM_HAND"
	PhaseAcceptRequest        StepPhase = "ACCEPT_REQUEST"
	PhasePickFromHand         StepPhase = "PICK_FROM_HAND"
	PhaseRefillDeck           StepPhase = "REFILL_DECK"
)

// PhaseSet is an ordered set of simultaneously active phases.
type PhaseSet []StepPhase

// Has reports whether the phase is active.
func (ps PhaseSet) Has(phase StepPhase) bool {
	for _, p := range ps {
		if p == phase {
			return true
		}
	}
	return false
}

// HasAny reports whether any of the given phases is active.
func (ps PhaseSet) HasAny(phases ...StepPhase) bool {
	for _, p := range phases {
		if ps.Has(p) {
			return true
		}
	}
	return false
}

// Forced reports whether the set contains a forced sub-resolution marker.
func (ps PhaseSet) Forced() bool {
	return ps.HasAny(PhaseProcessPanic, PhaseProcessEvent)
}

// ForcedMarker returns the active forced sub-resolution marker, if any.
// ProcessPanic takes precedence over ProcessEvent, matching how the
// resolver re-appends markers when carrying them across steps.
func (ps PhaseSet) ForcedMarker() (StepPhase, bool) {
	if ps.Has(PhaseProcessPanic) {
		return PhaseProcessPanic, true
	}
	if ps.Has(PhaseProcessEvent) {
		return PhaseProcessEvent, true
	}
	return "", false
}

// clone returns a copy safe to mutate.
func (ps PhaseSet) clone() PhaseSet {
	if ps == nil {
		return nil
	}
	out := make(PhaseSet, len(ps))
	copy(out, ps)
	return out
}
