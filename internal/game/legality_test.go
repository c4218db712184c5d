package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLegality_PhaseGates(t *testing.T) {
	h := newStepHarness(t, 4)

	h.setTurn(1, PhaseTakeFromDeck)
	assert.True(t, CanTake(h.state, 1))
	assert.False(t, CanDrop(h.state, 1))
	assert.False(t, CanPlay(h.state, 1))
	assert.False(t, CanGive(h.state, 1))

	h.setTurn(1, PhaseDropFromHand, PhasePlayFromHand)
	assert.True(t, CanDrop(h.state, 1))
	assert.True(t, CanPlay(h.state, 1))
	assert.False(t, CanTake(h.state, 1))

	h.setTurn(1, PhaseGiveToNextPlayer)
	assert.True(t, CanGive(h.state, 1))

	h.setTurn(1, PhaseReturnToPlayer)
	assert.True(t, CanGive(h.state, 1))

	h.setTurn(1, PhaseFulfillHandFromDeck)
	assert.True(t, CanTake(h.state, 1))
	assert.True(t, CanTake(h.state, 1, PhaseFulfillHandFromDeck))
	assert.False(t, CanTake(h.state, 1, PhaseTakeFromDeck))
}

func TestLegality_OnlyCurrentSeatActs(t *testing.T) {
	h := newStepHarness(t, 4)
	h.setTurn(2, PhaseTakeFromDeck)

	assert.True(t, CanTake(h.state, 2))
	assert.False(t, CanTake(h.state, 1))
	assert.False(t, CanTake(h.state, 0))
}

func TestLegality_FinishedGameAllowsNothing(t *testing.T) {
	h := newStepHarness(t, 4)
	h.setTurn(1, PhaseTakeFromDeck, PhaseDropFromHand, PhaseGiveToNextPlayer)
	h.state.Finished = true

	assert.False(t, CanTake(h.state, 1))
	assert.False(t, CanDrop(h.state, 1))
	assert.False(t, CanGive(h.state, 1))
	assert.False(t, CanRefillDeck(h.state, 1))
}

func TestCanExchange_QuarantineBlocksBothEnds(t *testing.T) {
	h := newStepHarness(t, 4)
	h.toTable(2, ActionQuarantine)
	h.setTurn(1, PhaseGiveToNextPlayer)

	// Seat 2 sits in quarantine: nobody trades with it.
	assert.False(t, CanExchange(h.state, h.roster, 2, ExchangeOverride{}))
	assert.False(t, CanExchangeBoth(h.state, h.roster, 2, 3, ExchangeOverride{}))
	// Other pairs are unaffected.
	assert.True(t, CanExchangeBoth(h.state, h.roster, 3, 4, ExchangeOverride{}))
}

func TestCanExchange_Overrides(t *testing.T) {
	h := newStepHarness(t, 4)
	h.toTable(1, ActionQuarantine)
	h.setTurn(1, PhaseGiveToNextPlayer)

	assert.False(t, CanExchange(h.state, h.roster, 2, ExchangeOverride{}))
	// A quarantined seat may still hand cards out when the acting card
	// permits it.
	assert.True(t, CanExchange(h.state, h.roster, 2, ExchangeOverride{IgnoreSelfQuarantine: true}))
	assert.True(t, CanExchange(h.state, h.roster, 2, ExchangeOverride{IgnoreQuarantines: true}))

	// Self-quarantine override does not reach the other end.
	h.toTable(2, ActionQuarantine)
	assert.False(t, CanExchange(h.state, h.roster, 2, ExchangeOverride{IgnoreSelfQuarantine: true}))
	assert.True(t, CanExchange(h.state, h.roster, 2, ExchangeOverride{IgnoreQuarantines: true}))
}

func TestCanExchange_LockedDoorWorksBothDirections(t *testing.T) {
	h := newStepHarness(t, 4)
	h.toBorder(2, ActionLockedDoor)
	h.state.Borders[2][0].BlockFrom = 1

	assert.False(t, CanExchangeBoth(h.state, h.roster, 1, 2, ExchangeOverride{}))
	assert.False(t, CanExchangeBoth(h.state, h.roster, 2, 1, ExchangeOverride{}))
	assert.True(t, CanExchangeBoth(h.state, h.roster, 2, 3, ExchangeOverride{}))
	assert.True(t, CanExchangeBoth(h.state, h.roster, 1, 2, ExchangeOverride{IgnoreLockedDoors: true}))
}

func TestCanExchange_InactiveSeatNeverTrades(t *testing.T) {
	h := newStepHarness(t, 4)
	h.setRole(3, RoleInactive)

	assert.False(t, CanExchangeBoth(h.state, h.roster, 2, 3, ExchangeOverride{}))
	assert.False(t, CanExchangeBoth(h.state, h.roster, 3, 4, ExchangeOverride{IgnoreQuarantines: true, IgnoreLockedDoors: true}))
	assert.False(t, CanExchangeBoth(h.state, h.roster, 0, 2, ExchangeOverride{}))
}

func TestLegality_PredicatesNeverMutate(t *testing.T) {
	h := newStepHarness(t, 4)
	h.toTable(2, ActionQuarantine)
	h.fillHand(1, 4)
	h.setTurn(1, PhaseTakeFromDeck)

	before := h.state.Clone()

	CanTake(h.state, 1)
	CanDrop(h.state, 1)
	CanPlay(h.state, 1)
	CanGive(h.state, 1)
	CanRefillDeck(h.state, 1)
	CanExchange(h.state, h.roster, 2, ExchangeOverride{})
	CanExchangeBoth(h.state, h.roster, 1, 3, ExchangeOverride{IgnoreQuarantines: true})

	assert.Equal(t, before, h.state)
}
