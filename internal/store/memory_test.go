package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/nechto-online/nechto-server/internal/game"
)

func testSnapshot(roomID string) (*game.State, *game.Roster) {
	st := &game.State{
		RoomID:        roomID,
		Hands:         map[int][]game.Card{1: {}, 2: {}},
		Table:         map[int][]game.Card{1: {}, 2: {}},
		Borders:       map[int][]game.Card{1: {}, 2: {}},
		Direction:     game.Clockwise,
		CurrentSeat:   1,
		CurrentPhases: game.PhaseSet{game.PhaseTakeFromDeck},
	}
	r := game.NewRoster([]game.Seat{
		{ID: 1, Role: game.RoleHuman},
		{ID: 2, Role: game.RoleIt},
	})
	return st, r
}

func TestMemory_SaveAndGet(t *testing.T) {
	m := NewMemory(zaptest.NewLogger(t))
	ctx := context.Background()
	st, r := testSnapshot("room-1")

	require.NoError(t, m.SaveGame(ctx, st, r))

	got, err := m.Game(ctx, "room-1")
	require.NoError(t, err)
	assert.Equal(t, "room-1", got.RoomID)
	assert.Equal(t, 1, got.CurrentSeat)

	roster, err := m.Roster(ctx, "room-1")
	require.NoError(t, err)
	assert.Len(t, roster.Seats, 2)
}

func TestMemory_UnknownRoom(t *testing.T) {
	m := NewMemory(zaptest.NewLogger(t))
	ctx := context.Background()

	_, err := m.Game(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = m.Roster(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = m.UpdateGame(ctx, "nope", func(st *game.State, r *game.Roster) (*game.State, *game.Roster, error) {
		return st, r, nil
	})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = m.Watch(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemory_SnapshotsAreCopies(t *testing.T) {
	m := NewMemory(zaptest.NewLogger(t))
	ctx := context.Background()
	st, r := testSnapshot("room-1")

	require.NoError(t, m.SaveGame(ctx, st, r))

	// Mutating the caller's snapshot must not touch the stored one.
	st.CurrentSeat = 9
	got, err := m.Game(ctx, "room-1")
	require.NoError(t, err)
	assert.Equal(t, 1, got.CurrentSeat)

	// Mutating a returned snapshot must not touch the stored one either.
	got.CurrentSeat = 7
	again, err := m.Game(ctx, "room-1")
	require.NoError(t, err)
	assert.Equal(t, 1, again.CurrentSeat)
}

func TestMemory_UpdateReplacesOnSuccess(t *testing.T) {
	m := NewMemory(zaptest.NewLogger(t))
	ctx := context.Background()
	st, r := testSnapshot("room-1")
	require.NoError(t, m.SaveGame(ctx, st, r))

	updated, err := m.UpdateGame(ctx, "room-1", func(st *game.State, r *game.Roster) (*game.State, *game.Roster, error) {
		st.CurrentSeat = 2
		return st, r, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, updated.CurrentSeat)

	got, err := m.Game(ctx, "room-1")
	require.NoError(t, err)
	assert.Equal(t, 2, got.CurrentSeat)
}

func TestMemory_UpdateErrorLeavesStateIntact(t *testing.T) {
	m := NewMemory(zaptest.NewLogger(t))
	ctx := context.Background()
	st, r := testSnapshot("room-1")
	require.NoError(t, m.SaveGame(ctx, st, r))

	boom := errors.New("resolver said no")
	_, err := m.UpdateGame(ctx, "room-1", func(st *game.State, r *game.Roster) (*game.State, *game.Roster, error) {
		st.CurrentSeat = 2
		return nil, nil, boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := m.Game(ctx, "room-1")
	require.NoError(t, err)
	assert.Equal(t, 1, got.CurrentSeat)
}

func TestMemory_WatchDeliversSnapshots(t *testing.T) {
	m := NewMemory(zaptest.NewLogger(t))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	st, r := testSnapshot("room-1")
	require.NoError(t, m.SaveGame(ctx, st, r))

	ch, err := m.Watch(ctx, "room-1")
	require.NoError(t, err)

	// The current snapshot arrives immediately.
	first := receiveState(t, ch)
	assert.Equal(t, 1, first.CurrentSeat)

	_, err = m.UpdateGame(ctx, "room-1", func(st *game.State, r *game.Roster) (*game.State, *game.Roster, error) {
		st.CurrentSeat = 2
		return st, r, nil
	})
	require.NoError(t, err)

	second := receiveState(t, ch)
	assert.Equal(t, 2, second.CurrentSeat)
}

func TestMemory_DeleteClosesWatchers(t *testing.T) {
	m := NewMemory(zaptest.NewLogger(t))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	st, r := testSnapshot("room-1")
	require.NoError(t, m.SaveGame(ctx, st, r))

	ch, err := m.Watch(ctx, "room-1")
	require.NoError(t, err)
	receiveState(t, ch)

	require.NoError(t, m.DeleteGame(ctx, "room-1"))

	select {
	case _, open := <-ch:
		assert.False(t, open)
	case <-time.After(time.Second):
		t.Fatal("watch channel not closed after delete")
	}

	_, err = m.Game(ctx, "room-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemory_WatchStopsOnContextCancel(t *testing.T) {
	m := NewMemory(zaptest.NewLogger(t))
	st, r := testSnapshot("room-1")
	require.NoError(t, m.SaveGame(context.Background(), st, r))

	ctx, cancel := context.WithCancel(context.Background())
	ch, err := m.Watch(ctx, "room-1")
	require.NoError(t, err)
	receiveState(t, ch)

	cancel()

	select {
	case _, open := <-ch:
		assert.False(t, open)
	case <-time.After(time.Second):
		t.Fatal("watch channel not closed after cancel")
	}
}

func receiveState(t *testing.T, ch <-chan *game.State) *game.State {
	t.Helper()
	select {
	case st, open := <-ch:
		require.True(t, open, "watch channel closed early")
		return st
	case <-time.After(time.Second):
		t.Fatal("no snapshot delivered")
		return nil
	}
}
