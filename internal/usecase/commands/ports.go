package commands

import (
	"context"

	"blindbid/internal/domain/auction"
)

// AuctionRepository is the durable store for auction records. The three
// conditional mutations are single atomic check-and-set operations: the
// precondition in each contract is evaluated by the storage engine in the
// same statement as the write, so two seats racing on the same record cannot
// both pass a "field currently empty" check.
type AuctionRepository interface {
	// Create persists a fresh auction. Id or token collisions surface as a
	// duplicate-key repository error, never a silent overwrite.
	Create(ctx context.Context, a *auction.Auction) error

	// FindByID returns (nil, nil) when the id is unknown.
	FindByID(ctx context.Context, id string) (*auction.Auction, error)

	// SetCommit stores a seat's commit digest. Returns false when that seat
	// already has a commit.
	SetCommit(ctx context.Context, id string, seat auction.Seat, digest auction.CommitDigest) (bool, error)

	// ClearCommit removes a seat's commit. Returns false when the other
	// seat's commit exists (the counterpart is locked in).
	ClearCommit(ctx context.Context, id string, seat auction.Seat) (bool, error)

	// SetReveal stores a seat's bid and secret. Returns false when the seat
	// already revealed or either commit is missing.
	SetReveal(ctx context.Context, id string, seat auction.Seat, bid auction.Bid, secret auction.Secret) (bool, error)
}
