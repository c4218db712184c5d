package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTakeDeckCard_EventBelowCap_KeepsDrawing(t *testing.T) {
	h := newStepHarness(t, 4)
	h.fillHand(1, 2)
	drawn := h.toDeck(ActionSuspicion)

	res, err := h.engine.TakeDeckCard(h.state, h.roster, 1, drawn.ID)
	require.NoError(t, err)

	st := res.State
	assert.Empty(t, st.Deck)
	require.Len(t, st.Hands[1], 3)
	got := findCard(st.Hands[1], drawn.ID)
	require.NotNil(t, got)
	assert.False(t, got.Hidden)

	assert.Equal(t, PhaseSet{PhaseTakeFromDeck}, st.CurrentPhases)
	assert.Equal(t, 1, st.CurrentSeat)
	assert.Equal(t, PhaseSet{PhaseTakeFromDeck}, st.PreviousPhases)
	assert.Equal(t, 1, st.PreviousSeat)
	require.NotNil(t, st.LastCard)
	assert.Equal(t, drawn.ID, st.LastCard.ID)
	assert.Equal(t, PhaseTakeFromDeck, res.Info.Phase)
	assert.Equal(t, testClock, res.Info.ProcessedAt)
}

func TestTakeDeckCard_EventAtCap_OpensDropOrPlay(t *testing.T) {
	h := newStepHarness(t, 4)
	h.fillHand(1, 4)
	drawn := h.toDeck(ActionSuspicion)

	res, err := h.engine.TakeDeckCard(h.state, h.roster, 1, drawn.ID)
	require.NoError(t, err)

	st := res.State
	assert.Len(t, st.Hands[1], 5)
	assert.Equal(t, PhaseSet{PhaseDropFromHand, PhasePlayFromHand}, st.CurrentPhases)
	assert.Equal(t, 1, st.CurrentSeat)
}

func TestTakeDeckCard_RejectsWrongActorAndPhase(t *testing.T) {
	h := newStepHarness(t, 4)
	drawn := h.toDeck(ActionSuspicion)

	_, err := h.engine.TakeDeckCard(h.state, h.roster, 2, drawn.ID)
	assert.ErrorIs(t, err, ErrNotYourTurn)

	h.setTurn(1, PhaseDropFromHand)
	_, err = h.engine.TakeDeckCard(h.state, h.roster, 1, drawn.ID)
	assert.ErrorIs(t, err, ErrWrongPhase)

	h.setTurn(1, PhaseTakeFromDeck)
	h.state.Finished = true
	_, err = h.engine.TakeDeckCard(h.state, h.roster, 1, drawn.ID)
	assert.ErrorIs(t, err, ErrGameFinished)
}

func TestTakeDeckCard_UnknownCard(t *testing.T) {
	h := newStepHarness(t, 4)
	h.toDeck(ActionSuspicion)

	_, err := h.engine.TakeDeckCard(h.state, h.roster, 1, "nope")
	assert.ErrorIs(t, err, ErrCardNotFound)
}

func TestTakeDeckCard_PanicBelowCap_Fizzles(t *testing.T) {
	h := newStepHarness(t, 4)
	h.fillHand(1, 2)
	drawn := h.toDeck(ActionPanicOldRopes)

	res, err := h.engine.TakeDeckCard(h.state, h.roster, 1, drawn.ID)
	require.NoError(t, err)

	st := res.State
	assert.Len(t, st.Hands[1], 2)
	require.Len(t, st.Trash, 1)
	assert.Equal(t, drawn.ID, st.Trash[0].ID)
	assert.True(t, st.Trash[0].Hidden)
	assert.Equal(t, PhaseSet{PhaseTakeFromDeck}, st.CurrentPhases)
	assert.Equal(t, 1, st.CurrentSeat)
}

func TestTakeDeckCard_PanicAtCap_HitsTable(t *testing.T) {
	h := newStepHarness(t, 4)
	h.fillHand(1, 4)
	drawn := h.toDeck(ActionPanicOldRopes)

	res, err := h.engine.TakeDeckCard(h.state, h.roster, 1, drawn.ID)
	require.NoError(t, err)

	st := res.State
	assert.Equal(t, PhaseSet{PhasePlayFromTable, PhaseProcessPanic}, st.CurrentPhases)
	assert.Equal(t, 1, st.CurrentSeat)

	played := findCard(st.Table[1], drawn.ID)
	require.NotNil(t, played)
	assert.False(t, played.Hidden)
	assert.Equal(t, 1, played.PanicRequester)
}

func TestTakeDeckCard_ConfessionTime_OpensShowRound(t *testing.T) {
	h := newStepHarness(t, 4)
	h.fillHand(1, 4)
	drawn := h.toDeck(ActionPanicConfessionTime)

	res, err := h.engine.TakeDeckCard(h.state, h.roster, 1, drawn.ID)
	require.NoError(t, err)

	st := res.State
	assert.Equal(t, PhaseSet{PhaseShowFromHand, PhaseProcessPanic}, st.CurrentPhases)
	assert.Equal(t, 1, st.CurrentSeat)
	played := findCard(st.Table[1], drawn.ID)
	require.NotNil(t, played)
	assert.Equal(t, 1, played.PanicRequester)
}

func TestTakeDeckCard_Friends_OpensDirectedGive(t *testing.T) {
	h := newStepHarness(t, 4)
	h.fillHand(1, 4)
	drawn := h.toDeck(ActionPanicFriends)

	res, err := h.engine.TakeDeckCard(h.state, h.roster, 1, drawn.ID)
	require.NoError(t, err)

	assert.Equal(t, PhaseSet{PhaseGiveToPlayer, PhaseProcessPanic}, res.State.CurrentPhases)
}

func TestTakeDeckCard_GoAway_NoFreeSeat_MustDrop(t *testing.T) {
	h := newStepHarness(t, 4)
	h.fillHand(1, 4)
	// Everyone else is quarantined, so the swap has no target.
	h.toTable(2, ActionQuarantine)
	h.toTable(3, ActionQuarantine)
	h.toTable(4, ActionQuarantine)
	drawn := h.toDeck(ActionPanicGoAway)

	res, err := h.engine.TakeDeckCard(h.state, h.roster, 1, drawn.ID)
	require.NoError(t, err)

	assert.Equal(t, PhaseSet{PhaseDropFromTable, PhaseProcessPanic}, res.State.CurrentPhases)
}

func TestTakeDeckCard_QuarantineAgesOnTurnStart(t *testing.T) {
	h := newStepHarness(t, 4)
	h.fillHand(1, 4)
	q := h.toTable(1, ActionQuarantine)
	drawn := h.toDeck(ActionSuspicion)

	res, err := h.engine.TakeDeckCard(h.state, h.roster, 1, drawn.ID)
	require.NoError(t, err)

	st := res.State
	aged := findCard(st.Table[1], q.ID)
	require.NotNil(t, aged)
	assert.Equal(t, 1, aged.StepsSpent)
	// Still quarantined, no axe in hand: only dropping is allowed.
	assert.Equal(t, PhaseSet{PhaseDropFromHand}, st.CurrentPhases)
}

func TestTakeDeckCard_QuarantineWithAxe_AllowsPlaying(t *testing.T) {
	h := newStepHarness(t, 4)
	h.fillHand(1, 3)
	h.toHand(1, ActionAxe)
	h.toTable(1, ActionQuarantine)
	drawn := h.toDeck(ActionSuspicion)

	res, err := h.engine.TakeDeckCard(h.state, h.roster, 1, drawn.ID)
	require.NoError(t, err)

	assert.Equal(t, PhaseSet{PhaseDropFromHand, PhasePlayFromHand}, res.State.CurrentPhases)
}

func TestTakeDeckCard_ExpiredQuarantineLifts(t *testing.T) {
	h := newStepHarness(t, 4)
	h.fillHand(1, 4)
	q := h.toTable(1, ActionQuarantine)
	h.tableCard(1, q.ID).StepsSpent = DefaultQuarantineTurns
	drawn := h.toDeck(ActionSuspicion)

	res, err := h.engine.TakeDeckCard(h.state, h.roster, 1, drawn.ID)
	require.NoError(t, err)

	st := res.State
	assert.Nil(t, findCard(st.Table[1], q.ID))
	require.NotEmpty(t, st.Trash)
	assert.Equal(t, q.ID, st.Trash[0].ID)
	assert.Equal(t, PhaseSet{PhaseDropFromHand, PhasePlayFromHand}, st.CurrentPhases)
}

func TestTakeDeckCard_PersistenceGrantsExtraSlots(t *testing.T) {
	h := newStepHarness(t, 4)
	h.fillHand(1, 4)
	p := h.toTable(1, ActionPersistence)
	h.tableCard(1, p.ID).EventRequester = 1
	h.setTurn(1, PhaseTakeFromDeck, PhaseProcessEvent)
	drawn := h.toDeck(ActionSuspicion)

	res, err := h.engine.TakeDeckCard(h.state, h.roster, 1, drawn.ID)
	require.NoError(t, err)

	st := res.State
	// 4 < 4+3, so the forced draw lands in hand and drawing continues.
	assert.Len(t, st.Hands[1], 5)
	assert.Equal(t, PhaseSet{PhaseTakeFromDeck, PhaseProcessEvent}, st.CurrentPhases)
}

func TestTakeDeckCard_Fulfillment_CompletesHand(t *testing.T) {
	h := newStepHarness(t, 4)
	h.fillHand(1, 3)
	h.setTurn(1, PhaseFulfillHandFromDeck)
	drawn := h.toDeck(ActionSuspicion)

	res, err := h.engine.TakeDeckCard(h.state, h.roster, 1, drawn.ID)
	require.NoError(t, err)

	st := res.State
	assert.Len(t, st.Hands[1], 4)
	assert.Equal(t, PhaseSet{PhaseTakeFromDeck}, st.CurrentPhases)
	assert.Equal(t, 2, st.CurrentSeat)
	assert.Equal(t, PhaseFulfillHandFromDeck, res.Info.Phase)
}

func TestTakeDeckCard_Fulfillment_ResumesReservedStep(t *testing.T) {
	h := newStepHarness(t, 4)
	h.fillHand(1, 3)
	h.setTurn(1, PhaseFulfillHandFromDeck)
	h.state.ReservedPhases = PhaseSet{PhaseGiveToNextPlayer}
	h.state.ReservedSeat = 3
	drawn := h.toDeck(ActionSuspicion)

	res, err := h.engine.TakeDeckCard(h.state, h.roster, 1, drawn.ID)
	require.NoError(t, err)

	st := res.State
	assert.Equal(t, PhaseSet{PhaseGiveToNextPlayer}, st.CurrentPhases)
	assert.Equal(t, 3, st.CurrentSeat)
	assert.False(t, st.HasReserved())
}

func TestTakeDeckCard_Fulfillment_PanicFizzles(t *testing.T) {
	h := newStepHarness(t, 4)
	h.fillHand(1, 2)
	h.setTurn(1, PhaseFulfillHandFromDeck)
	drawn := h.toDeck(ActionPanicOldRopes)

	res, err := h.engine.TakeDeckCard(h.state, h.roster, 1, drawn.ID)
	require.NoError(t, err)

	st := res.State
	assert.Len(t, st.Hands[1], 2)
	require.Len(t, st.Trash, 1)
	assert.Equal(t, drawn.ID, st.Trash[0].ID)
	assert.Equal(t, PhaseSet{PhaseFulfillHandFromDeck}, st.CurrentPhases)
	assert.Equal(t, 1, st.CurrentSeat)
}

func TestTakeHandCard_SuspicionPick(t *testing.T) {
	h := newStepHarness(t, 4)
	picked := h.toHand(2, ActionWhiskey)
	suspicion := NewCard(ActionSuspicion)
	h.state.LastCard = &suspicion
	h.setTurn(1, PhasePickFromHand)

	res, err := h.engine.TakeHandCard(h.state, h.roster, 1, picked.ID)
	require.NoError(t, err)

	st := res.State
	got := findCard(st.Hands[2], picked.ID)
	require.NotNil(t, got)
	assert.Equal(t, 1, got.SharedWith)
	assert.Equal(t, PhaseSet{PhaseDropFromTable}, st.CurrentPhases)
	assert.Equal(t, 1, st.CurrentSeat)
	assert.Equal(t, 2, res.Info.OtherSeat)
}

func TestTakeHandCard_RequiresSuspicionContext(t *testing.T) {
	h := newStepHarness(t, 4)
	picked := h.toHand(2, ActionWhiskey)
	h.setTurn(1, PhasePickFromHand)

	_, err := h.engine.TakeHandCard(h.state, h.roster, 1, picked.ID)
	assert.ErrorIs(t, err, ErrUnsupportedAction)
}

func TestTakeDeckCard_InputSnapshotUntouched(t *testing.T) {
	h := newStepHarness(t, 4)
	h.fillHand(1, 2)
	drawn := h.toDeck(ActionSuspicion)

	_, err := h.engine.TakeDeckCard(h.state, h.roster, 1, drawn.ID)
	require.NoError(t, err)

	// The caller's snapshot must stay as it was.
	assert.Len(t, h.state.Deck, 1)
	assert.Len(t, h.state.Hands[1], 2)
	assert.Equal(t, PhaseSet{PhaseTakeFromDeck}, h.state.CurrentPhases)
}
