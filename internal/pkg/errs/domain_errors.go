package errs

import "errors"

// Protocol-level sentinel errors shared across usecase layers.
// Validation sentinels for individual fields live next to their value
// objects in internal/domain/auction.
var (
	// Unknown auction id and unresolvable seat token are deliberately the
	// same outcome so callers cannot probe which of the two was wrong.
	ErrAuctionNotFound = errors.New("auction not found")

	// One-shot field already set
	ErrAlreadyCommitted = errors.New("seat already committed")
	ErrAlreadyRevealed  = errors.New("seat already revealed")

	// Reset attempted after the counterpart committed
	ErrResetConflict = errors.New("counterpart already committed")

	// Reveal attempted before both commits exist
	ErrRevealPrecondition = errors.New("both commits required before reveal")

	// Reveal payload does not reproduce the stored commitment
	ErrHashMismatch = errors.New("reveal does not match commitment")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
