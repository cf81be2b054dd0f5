package engine

import "errors"

// Rejection sentinels. A rejected action mutates no state; callers match
// with errors.Is to pick a user-facing message.
var (
	// ErrUnknownAction is returned for an action id absent from the catalog.
	ErrUnknownAction = errors.New("unknown action")
	// ErrDeadCharacter is returned for any operation besides revival while
	// the death latch is set.
	ErrDeadCharacter = errors.New("character is dead")
	// ErrBannedByTrait is returned when the character's quirk forbids the action.
	ErrBannedByTrait = errors.New("action banned by trait")
	// ErrMissingRequiredItem is returned when the action's required item is
	// not owned.
	ErrMissingRequiredItem = errors.New("missing required item")
	// ErrInsufficientFunds is returned when gold does not cover the cost.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrNoServiceAvailable is returned when eat/drink has no owned supply
	// and the current location offers no food service.
	ErrNoServiceAvailable = errors.New("no food service available here")
	// ErrNotInStock is returned when buying an item the shop does not carry today.
	ErrNotInStock = errors.New("item not in stock")
	// ErrNotOwned is returned when selling or consuming an item the
	// character does not hold.
	ErrNotOwned = errors.New("item not owned")
	// ErrItemEquipped is returned when selling gear that is currently worn.
	ErrItemEquipped = errors.New("item is equipped")
	// ErrNotSellable is returned for zero-cost items, which never trade.
	ErrNotSellable = errors.New("item cannot be sold")
)
