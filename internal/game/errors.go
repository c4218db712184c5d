package game

import "errors"

// Rule-level rejections. Operations return these without touching the
// snapshot; callers are expected to have consulted the Can* predicates
// first, so hitting one of these usually means a caller bug.
var (
	// ErrNotYourTurn is returned when the acting seat is not the
	// current step owner.
	ErrNotYourTurn = errors.New("game: acting seat does not own the current step")
	// ErrWrongPhase is returned when the operation's phase gate fails.
	ErrWrongPhase = errors.New("game: operation not allowed in current step phase")
	// ErrGameFinished is returned for any action after the game ended.
	ErrGameFinished = errors.New("game: game is finished")
)

// Contract violations. These indicate a broken caller or a corrupted
// ledger and always abort without partial writes.
var (
	// ErrCardNotFound is returned when the referenced card is not in
	// the zone the operation expects.
	ErrCardNotFound = errors.New("game: card not found in expected zone")
	// ErrPlayerRequired is returned when an action needs a companion
	// seat and none was given.
	ErrPlayerRequired = errors.New("game: target seat required for this card")
	// ErrNoActiveEventCard is returned when a step that resolves an
	// event card finds none on the table.
	ErrNoActiveEventCard = errors.New("game: no active event card on the table")
	// ErrNoActivePanicCard is returned when a step that resolves a
	// panic card finds none on the table.
	ErrNoActivePanicCard = errors.New("game: no active panic card on the table")
	// ErrNoRequestedCard is returned when a defence/return step finds
	// no requested card to act on.
	ErrNoRequestedCard = errors.New("game: no requested card on the table")
	// ErrReservationPending is returned when an action would stash a
	// reserved step while one is already pending. Nested reservations
	// are not supported; overwriting would corrupt the resumption.
	ErrReservationPending = errors.New("game: a reserved step is already pending")
	// ErrUnsupportedAction is returned when a card action reaches an
	// operation that has no resolution rule for it.
	ErrUnsupportedAction = errors.New("game: card action not resolvable by this operation")
	// ErrDeckNotEmpty is returned when a refill is requested while the
	// deck still has cards.
	ErrDeckNotEmpty = errors.New("game: deck is not empty")
	// ErrEmptyTrash is returned when a refill is requested with nothing
	// to refill from.
	ErrEmptyTrash = errors.New("game: trash is empty")
)
