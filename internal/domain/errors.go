package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Player errors
	ErrMsgPlayerNotFound = "player not found"

	// Catalog errors
	ErrMsgItemNotFound = "item not found"
	ErrMsgToolNotFound = "tool not found"
	ErrMsgBuffNotFound = "buff not found"

	// Resolution errors
	ErrMsgEmptyCandidatePool = "no eligible candidate items"
	ErrMsgDegenerateWeights  = "candidate weights sum to zero"

	// Session errors
	ErrMsgDigInProgress    = "a dig is already in progress"
	ErrMsgNoActiveDig      = "no active dig"
	ErrMsgNotEligible      = "player is not eligible to dig"
	ErrMsgNoMoundAvailable = "no dig mound available"
	ErrMsgItemMismatch     = "reported item does not match the active dig"
	ErrMsgInventoryFull    = "inventory is full"

	// Shiny spot gating errors
	ErrMsgShinyToolMismatch = "equipped tool cannot dig this shiny spot"
	ErrMsgShinyStarTooLow   = "tool star level too low for this shiny spot"

	// Input errors
	ErrMsgInvalidInput = "invalid input"

	// Storage errors
)

// Common domain errors
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrPlayerNotFound = errors.New(ErrMsgPlayerNotFound)

	ErrItemNotFound = errors.New(ErrMsgItemNotFound)
	ErrToolNotFound = errors.New(ErrMsgToolNotFound)
	ErrBuffNotFound = errors.New(ErrMsgBuffNotFound)

	ErrEmptyCandidatePool = errors.New(ErrMsgEmptyCandidatePool)
	ErrDegenerateWeights  = errors.New(ErrMsgDegenerateWeights)

	ErrDigInProgress    = errors.New(ErrMsgDigInProgress)
	ErrNoActiveDig      = errors.New(ErrMsgNoActiveDig)
	ErrNotEligible      = errors.New(ErrMsgNotEligible)
	ErrNoMoundAvailable = errors.New(ErrMsgNoMoundAvailable)
	ErrItemMismatch     = errors.New(ErrMsgItemMismatch)
	ErrInventoryFull    = errors.New(ErrMsgInventoryFull)

	ErrShinyToolMismatch = errors.New(ErrMsgShinyToolMismatch)
	ErrShinyStarTooLow   = errors.New(ErrMsgShinyStarTooLow)

	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)

// IsPreconditionFailure reports whether err aborted a dig before any state changed
func IsPreconditionFailure(err error) bool {
	return errors.Is(err, ErrEmptyCandidatePool) ||
		errors.Is(err, ErrDegenerateWeights) ||
		errors.Is(err, ErrNoMoundAvailable)
}
