package commands

import (
	"context"

	"blindbid/internal/domain/auction"
	"blindbid/internal/pkg/clock"
	"blindbid/internal/pkg/errs"
	"blindbid/internal/pkg/token"
)

type CreateAuctionRequest struct {
	Title       string
	Description string
	ItemURL     string
}

// CreateAuctionResult is the only moment both seat tokens are visible
// together; the creator is responsible for handing seat B its token.
type CreateAuctionResult struct {
	AuctionID  string
	SeatAToken string
	SeatBToken string
}

type AuctionCommands interface {
	Create(ctx context.Context, req CreateAuctionRequest) (*CreateAuctionResult, error)
	Commit(ctx context.Context, auctionID, seatToken, commitHash string) error
	ResetCommit(ctx context.Context, auctionID, seatToken string) error
	Reveal(ctx context.Context, auctionID, seatToken, bid, secret string) error
}

type auctionUseCaseImpl struct {
	repo  AuctionRepository
	clock clock.Clock
}

func NewAuctionCommands(repo AuctionRepository, clk clock.Clock) AuctionCommands {
	return &auctionUseCaseImpl{repo: repo, clock: clk}
}

func (uc *auctionUseCaseImpl) Create(ctx context.Context, req CreateAuctionRequest) (*CreateAuctionResult, error) {
	title, err := auction.NewTitle(req.Title)
	if err != nil {
		return nil, err
	}
	description, err := auction.NewDescription(req.Description)
	if err != nil {
		return nil, err
	}
	itemURL, err := auction.NewItemURL(req.ItemURL)
	if err != nil {
		return nil, err
	}

	id, err := token.NewAuctionID()
	if err != nil {
		return nil, err
	}
	seatA, err := token.NewSeatToken()
	if err != nil {
		return nil, err
	}
	seatB, err := token.NewSeatToken()
	if err != nil {
		return nil, err
	}
	// 192 bits of entropy makes equal tokens a broken-CSPRNG symptom, but
	// the invariant is cheap to re-establish.
	for seatA == seatB {
		if seatB, err = token.NewSeatToken(); err != nil {
			return nil, err
		}
	}

	a := auction.NewAuction(id, seatA, seatB, title, description, itemURL, uc.clock.Now())
	if err := uc.repo.Create(ctx, a); err != nil {
		return nil, errs.Wrap(err, "failed to create auction")
	}

	return &CreateAuctionResult{
		AuctionID:  id,
		SeatAToken: seatA,
		SeatBToken: seatB,
	}, nil
}

func (uc *auctionUseCaseImpl) Commit(ctx context.Context, auctionID, seatToken, commitHash string) error {
	digest, err := auction.NewCommitDigest(commitHash)
	if err != nil {
		return err
	}

	a, seat, err := uc.resolveSeat(ctx, auctionID, seatToken)
	if err != nil {
		return err
	}
	if a.HasCommit(seat) {
		return errs.ErrAlreadyCommitted
	}

	ok, err := uc.repo.SetCommit(ctx, a.ID(), seat, digest)
	if err != nil {
		return errs.Wrap(err, "failed to store commit")
	}
	if !ok {
		// Lost a race against this seat's own concurrent commit.
		return errs.ErrAlreadyCommitted
	}
	return nil
}

func (uc *auctionUseCaseImpl) ResetCommit(ctx context.Context, auctionID, seatToken string) error {
	a, seat, err := uc.resolveSeat(ctx, auctionID, seatToken)
	if err != nil {
		return err
	}
	// Once the counterpart has committed, their lock-in must not be
	// reopened; the conditional update re-checks this atomically.
	if a.HasCommit(seat.Other()) {
		return errs.ErrResetConflict
	}

	ok, err := uc.repo.ClearCommit(ctx, a.ID(), seat)
	if err != nil {
		return errs.Wrap(err, "failed to clear commit")
	}
	if !ok {
		return errs.ErrResetConflict
	}
	return nil
}

func (uc *auctionUseCaseImpl) Reveal(ctx context.Context, auctionID, seatToken, bid, secret string) error {
	b, err := auction.NewBid(bid)
	if err != nil {
		return err
	}
	s, err := auction.NewSecret(secret)
	if err != nil {
		return err
	}

	a, seat, err := uc.resolveSeat(ctx, auctionID, seatToken)
	if err != nil {
		return err
	}
	if !a.BothCommitted() {
		return errs.ErrRevealPrecondition
	}
	if a.HasBid(seat) {
		return errs.ErrAlreadyRevealed
	}

	digest := auction.ComputeCommitHash(b.Canonical(), s.String(), a.ID(), seat)
	if digest != a.Commit(seat).String() {
		// The commit stays untouched; the seat may retry with corrected
		// inputs. Finding different inputs that satisfy the stored digest
		// would require a SHA-256 second preimage.
		return errs.ErrHashMismatch
	}

	ok, err := uc.repo.SetReveal(ctx, a.ID(), seat, b, s)
	if err != nil {
		return errs.Wrap(err, "failed to store reveal")
	}
	if !ok {
		return errs.ErrAlreadyRevealed
	}
	return nil
}

func (uc *auctionUseCaseImpl) resolveSeat(ctx context.Context, auctionID, seatToken string) (*auction.Auction, auction.Seat, error) {
	a, err := uc.repo.FindByID(ctx, auctionID)
	if err != nil {
		return nil, auction.SeatA, errs.Wrap(err, "failed to load auction")
	}
	if a == nil {
		return nil, auction.SeatA, errs.ErrAuctionNotFound
	}
	seat, ok := a.ResolveSeat(seatToken)
	if !ok {
		// Same outcome as an unknown id: no oracle for valid ids.
		return nil, auction.SeatA, errs.ErrAuctionNotFound
	}
	return a, seat, nil
}
