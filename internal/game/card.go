package game

import (
	"github.com/google/uuid"
)

// CardType is the top-level card category.
type CardType string

const (
	TypeEvent CardType = "EVENT"
	TypePanic CardType = "PANIC"
)

// CardSubType is the secondary category of an event card. Panic cards
// carry no subtype.
type CardSubType string

const (
	SubTypeNone      CardSubType = ""
	SubTypeAction    CardSubType = "ACTION"
	SubTypeInfection CardSubType = "INFECTION"
	SubTypeDefence   CardSubType = "DEFENCE"
	SubTypeObstacle  CardSubType = "OBSTACLE"
)

// CardAction identifies a card's effect. All resolver behavior is keyed
// off this value.
type CardAction string

const (
	ActionFlamethrower CardAction = "EVENT_ACTION_FLAMETHROWER"
	ActionPersistence  CardAction = "EVENT_ACTION_PERSISTENCE"
	ActionWhiskey      CardAction = "EVENT_ACTION_WHISKEY"
	ActionSwapPlaces   CardAction = "EVENT_ACTION_SWAP_PLACES"
	ActionRunAway      CardAction = "EVENT_ACTION_RUN_AWAY"
	ActionSuspicion    CardAction = "EVENT_ACTION_SUSPICION"
	ActionAnalysis     CardAction = "EVENT_ACTION_ANALYSIS"
	ActionTemptation   CardAction = "EVENT_ACTION_TEMPTATION"
	ActionLookAround   CardAction = "EVENT_ACTION_LOOK_AROUND"
	ActionAxe          CardAction = "EVENT_ACTION_AXE"

	ActionInfectionIt CardAction = "EVENT_INFECTION_IT"
	ActionInfection1  CardAction = "EVENT_INFECTION_1"
	ActionInfection2  CardAction = "EVENT_INFECTION_2"
	ActionInfection3  CardAction = "EVENT_INFECTION_3"
	ActionInfection4  CardAction = "EVENT_INFECTION_4"

	ActionDefenceFear       CardAction = "EVENT_DEFENCE_FEAR"
	ActionDefenceGoodHere   CardAction = "EVENT_DEFENCE_GOOD_HERE"
	ActionDefenceNoBarbecue CardAction = "EVENT_DEFENCE_NO_BARBECUE"
	ActionDefenceMiss       CardAction = "EVENT_DEFENCE_MISS"
	ActionDefenceNoThanks   CardAction = "EVENT_DEFENCE_NO_THANKS"

	ActionQuarantine CardAction = "EVENT_OBSTACLE_QUARANTINE"
	ActionLockedDoor CardAction = "EVENT_OBSTACLE_LOCKED_DOOR"

	ActionPanicFriends       CardAction = "PANIC_FRIENDS"
	ActionPanicOldRopes      CardAction = "PANIC_OLD_ROPES"
	ActionPanicBetweenUs     CardAction = "PANIC_BETWEEN_US"
	ActionPanicIsItParty     CardAction = "PANIC_IS_IT_PARTY"
	ActionPanicOneTwo        CardAction = "PANIC_ONE_TWO"
	ActionPanicThreeFour     CardAction = "PANIC_THREE_FOUR"
	ActionPanicBlindDate     CardAction = "PANIC_BLIND_DATE"
	ActionPanicChainReaction CardAction = "PANIC_CHAIN_REACTION"
	ActionPanicForgetfulness CardAction = "PANIC_FORGETFULNESS"
	ActionPanicGoAway        CardAction = "PANIC_GO_AWAY"
	ActionPanicOops          CardAction = "PANIC_OOPS"
	ActionPanicConfessionTime CardAction = "PANIC_CONFESSION_TIME"
)

// actionInfo is the per-action catalog entry: which type/subtype the
// action belongs to, how many copies a deck may contain, and the minimum
// seated player count for the card to enter the deck at all.
type actionInfo struct {
	Type       CardType
	SubType    CardSubType
	MaxCopies  int
	MinPlayers int
}

// actionCatalog drives deck construction and type/subtype resolution.
// The copy counts and player gates mirror the physical card set.
var actionCatalog = map[CardAction]actionInfo{
	ActionFlamethrower: {TypeEvent, SubTypeAction, 5, 4},
	ActionPersistence:  {TypeEvent, SubTypeAction, 5, 6},
	ActionWhiskey:      {TypeEvent, SubTypeAction, 3, 4},
	ActionSwapPlaces:   {TypeEvent, SubTypeAction, 5, 11},
	ActionRunAway:      {TypeEvent, SubTypeAction, 5, 11},
	ActionSuspicion:    {TypeEvent, SubTypeAction, 8, 4},
	ActionAnalysis:     {TypeEvent, SubTypeAction, 3, 5},
	ActionTemptation:   {TypeEvent, SubTypeAction, 7, 7},
	ActionLookAround:   {TypeEvent, SubTypeAction, 2, 9},
	ActionAxe:          {TypeEvent, SubTypeAction, 2, 9},

	ActionInfectionIt: {TypeEvent, SubTypeInfection, 1, 4},
	ActionInfection1:  {TypeEvent, SubTypeInfection, 5, 4},
	ActionInfection2:  {TypeEvent, SubTypeInfection, 5, 4},
	ActionInfection3:  {TypeEvent, SubTypeInfection, 5, 4},
	ActionInfection4:  {TypeEvent, SubTypeInfection, 5, 4},

	ActionDefenceFear:       {TypeEvent, SubTypeDefence, 4, 8},
	ActionDefenceGoodHere:   {TypeEvent, SubTypeDefence, 3, 11},
	ActionDefenceNoBarbecue: {TypeEvent, SubTypeDefence, 3, 6},
	ActionDefenceMiss:       {TypeEvent, SubTypeDefence, 3, 11},
	ActionDefenceNoThanks:   {TypeEvent, SubTypeDefence, 4, 4},

	ActionQuarantine: {TypeEvent, SubTypeObstacle, 2, 5},
	ActionLockedDoor: {TypeEvent, SubTypeObstacle, 3, 4},

	ActionPanicFriends:        {TypePanic, SubTypeNone, 2, 7},
	ActionPanicOldRopes:       {TypePanic, SubTypeNone, 2, 9},
	ActionPanicBetweenUs:      {TypePanic, SubTypeNone, 2, 7},
	ActionPanicIsItParty:      {TypePanic, SubTypeNone, 2, 9},
	ActionPanicOneTwo:         {TypePanic, SubTypeNone, 2, 5},
	ActionPanicThreeFour:      {TypePanic, SubTypeNone, 2, 9},
	ActionPanicBlindDate:      {TypePanic, SubTypeNone, 2, 9},
	ActionPanicChainReaction:  {TypePanic, SubTypeNone, 2, 4},
	ActionPanicForgetfulness:  {TypePanic, SubTypeNone, 1, 4},
	ActionPanicGoAway:         {TypePanic, SubTypeNone, 1, 5},
	ActionPanicOops:           {TypePanic, SubTypeNone, 1, 10},
	ActionPanicConfessionTime: {TypePanic, SubTypeNone, 1, 8},
}

// Type returns the card type an action belongs to.
func (a CardAction) Type() CardType {
	return actionCatalog[a].Type
}

// SubType returns the event subtype of an action, or SubTypeNone.
func (a CardAction) SubType() CardSubType {
	return actionCatalog[a].SubType
}

// Card is a single card instance. Identity is the ID; everything else is
// either fixed catalog data (Type, SubType, Action) or transient
// visibility/bookkeeping state that changes as the card moves between
// zones.
type Card struct {
	ID      string      `json:"id"`
	Type    CardType    `json:"type"`
	SubType CardSubType `json:"subType,omitempty"`
	Action  CardAction  `json:"action"`

	// Hidden conceals the card face from everyone but the holder.
	Hidden bool `json:"hidden"`
	// Shared broadcasts the face to the whole table regardless of Hidden.
	Shared bool `json:"shared,omitempty"`
	// SharedWith reveals the face to exactly one seat.
	SharedWith int `json:"sharedWith,omitempty"`

	// Requester fields record which seat caused the card to be where it
	// is; at most one is meaningful at a time depending on the mechanism
	// that placed the card.
	Requester      int `json:"requester,omitempty"`
	EventRequester int `json:"eventRequester,omitempty"`
	PanicRequester int `json:"panicRequester,omitempty"`

	// BlockFrom is the seat a locked door blocks.
	BlockFrom int `json:"blockFrom,omitempty"`
	// StepsSpent counts turns a quarantine card has been in play.
	StepsSpent int `json:"stepsSpent,omitempty"`
}

// NewCard creates a card of the given action with a fresh ID.
func NewCard(action CardAction) Card {
	return Card{
		ID:      uuid.NewString(),
		Type:    action.Type(),
		SubType: action.SubType(),
		Action:  action,
	}
}

// IsInfection reports whether the card carries the infection subtype.
func (c Card) IsInfection() bool {
	return c.SubType == SubTypeInfection
}

// IsDefence reports whether the card is a defence card.
func (c Card) IsDefence() bool {
	return c.SubType == SubTypeDefence
}
