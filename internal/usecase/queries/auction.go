package queries

import (
	"context"
	"time"

	"blindbid/internal/domain/auction"
	"blindbid/internal/pkg/errs"
)

// AuctionReadStore is the read side of the auction repository.
type AuctionReadStore interface {
	// FindByID returns (nil, nil) when the id is unknown.
	FindByID(ctx context.Context, id string) (*auction.Auction, error)
}

type SeatStatusView struct {
	Committed bool
	Revealed  bool
}

type StatusView struct {
	AuctionID   string
	Title       string
	Description string
	ItemURL     string
	Phase       auction.Phase
	SeatA       SeatStatusView
	SeatB       SeatStatusView
	// YourSeat is "A" or "B" when the presented token resolved, otherwise
	// empty. An invalid token and an absent token look identical here.
	YourSeat  string
	CreatedAt time.Time
}

type ResultView struct {
	AuctionID   string
	Title       string
	Description string
	ItemURL     string
	Revealed    bool
	// The fields below are only populated once both seats have revealed.
	Winner        auction.Winner
	PaymentAmount string // winning bid as two-decimal text, empty on tie
	BidA          string
	BidB          string
	CreatedAt     time.Time
}

type AuctionQueries interface {
	// GetStatus reports the derived phase and per-seat progress. seatToken
	// is optional; an unresolvable token degrades silently.
	GetStatus(ctx context.Context, auctionID, seatToken string) (*StatusView, error)
	// GetResult exposes bids to both parties symmetrically, and only once
	// both have revealed.
	GetResult(ctx context.Context, auctionID string) (*ResultView, error)
}

type auctionQueriesImpl struct {
	store AuctionReadStore
}

func NewAuctionQueries(store AuctionReadStore) AuctionQueries {
	return &auctionQueriesImpl{store: store}
}

func (q *auctionQueriesImpl) GetStatus(ctx context.Context, auctionID, seatToken string) (*StatusView, error) {
	a, err := q.load(ctx, auctionID)
	if err != nil {
		return nil, err
	}

	view := &StatusView{
		AuctionID:   a.ID(),
		Title:       a.Title().String(),
		Description: a.Description().String(),
		ItemURL:     a.ItemURL().String(),
		Phase:       a.Phase(),
		SeatA: SeatStatusView{
			Committed: a.HasCommit(auction.SeatA),
			Revealed:  a.HasBid(auction.SeatA),
		},
		SeatB: SeatStatusView{
			Committed: a.HasCommit(auction.SeatB),
			Revealed:  a.HasBid(auction.SeatB),
		},
		CreatedAt: a.CreatedAt(),
	}

	if seatToken != "" {
		if seat, ok := a.ResolveSeat(seatToken); ok {
			view.YourSeat = seat.Label()
		}
	}
	return view, nil
}

func (q *auctionQueriesImpl) GetResult(ctx context.Context, auctionID string) (*ResultView, error) {
	a, err := q.load(ctx, auctionID)
	if err != nil {
		return nil, err
	}

	view := &ResultView{
		AuctionID:   a.ID(),
		Title:       a.Title().String(),
		Description: a.Description().String(),
		ItemURL:     a.ItemURL().String(),
		Revealed:    a.BothRevealed(),
		CreatedAt:   a.CreatedAt(),
	}
	if !view.Revealed {
		return view, nil
	}

	view.Winner = a.Winner()
	view.BidA = a.Bid(auction.SeatA).Canonical()
	view.BidB = a.Bid(auction.SeatB).Canonical()
	if winning := a.WinningBid(); winning != nil {
		view.PaymentAmount = winning.Canonical()
	}
	return view, nil
}

func (q *auctionQueriesImpl) load(ctx context.Context, auctionID string) (*auction.Auction, error) {
	a, err := q.store.FindByID(ctx, auctionID)
	if err != nil {
		return nil, errs.Wrap(err, "failed to load auction")
	}
	if a == nil {
		return nil, errs.ErrAuctionNotFound
	}
	return a, nil
}
