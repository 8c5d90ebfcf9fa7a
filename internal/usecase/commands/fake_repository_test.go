//go:build unit

package commands_test

import (
	"context"
	"sync"
	"time"

	"blindbid/internal/domain/auction"
	"blindbid/internal/infra"
)

// auctionRecord mirrors the persisted row: nullable columns are pointers and
// phase is never stored.
type auctionRecord struct {
	id          string
	title       string
	description string
	itemURL     string
	seatAToken  string
	seatBToken  string
	commits     [2]*string
	bidCents    [2]*int64
	secrets     [2]*string
	createdAt   time.Time
}

// fakeAuctionRepository keeps records in memory and evaluates each mutation's
// precondition together with the write under one lock, the way the SQL
// conditional updates do.
type fakeAuctionRepository struct {
	mu      sync.Mutex
	records map[string]*auctionRecord

	// failWith, when set, is returned by every call.
	failWith error
	// beforeMutate runs inside the mutation methods before the precondition
	// check, with the lock released, to interleave a competing write.
	beforeMutate func()
}

func newFakeAuctionRepository() *fakeAuctionRepository {
	return &fakeAuctionRepository{records: make(map[string]*auctionRecord)}
}

func (f *fakeAuctionRepository) Create(_ context.Context, a *auction.Auction) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.records[a.ID()]; exists {
		return infra.WrapRepoErr("duplicate auction id", nil, infra.KindDuplicateKey)
	}
	f.records[a.ID()] = &auctionRecord{
		id:          a.ID(),
		title:       a.Title().String(),
		description: a.Description().String(),
		itemURL:     a.ItemURL().String(),
		seatAToken:  a.SeatToken(auction.SeatA),
		seatBToken:  a.SeatToken(auction.SeatB),
		createdAt:   a.CreatedAt(),
	}
	return nil
}

func (f *fakeAuctionRepository) FindByID(_ context.Context, id string) (*auction.Auction, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.records[id]
	if !ok {
		return nil, nil
	}
	return rec.toDomain()
}

func (f *fakeAuctionRepository) SetCommit(_ context.Context, id string, seat auction.Seat, digest auction.CommitDigest) (bool, error) {
	if f.failWith != nil {
		return false, f.failWith
	}
	if f.beforeMutate != nil {
		f.beforeMutate()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.records[id]
	if !ok || rec.commits[seat] != nil {
		return false, nil
	}
	d := digest.String()
	rec.commits[seat] = &d
	return true, nil
}

func (f *fakeAuctionRepository) ClearCommit(_ context.Context, id string, seat auction.Seat) (bool, error) {
	if f.failWith != nil {
		return false, f.failWith
	}
	if f.beforeMutate != nil {
		f.beforeMutate()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.records[id]
	if !ok || rec.commits[seat.Other()] != nil || rec.bidCents[seat] != nil {
		return false, nil
	}
	rec.commits[seat] = nil
	return true, nil
}

func (f *fakeAuctionRepository) SetReveal(_ context.Context, id string, seat auction.Seat, bid auction.Bid, secret auction.Secret) (bool, error) {
	if f.failWith != nil {
		return false, f.failWith
	}
	if f.beforeMutate != nil {
		f.beforeMutate()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.records[id]
	if !ok || rec.bidCents[seat] != nil || rec.commits[auction.SeatA] == nil || rec.commits[auction.SeatB] == nil {
		return false, nil
	}
	cents := bid.Cents()
	s := secret.String()
	rec.bidCents[seat] = &cents
	rec.secrets[seat] = &s
	return true, nil
}

func (r *auctionRecord) toDomain() (*auction.Auction, error) {
	title, err := auction.NewTitle(r.title)
	if err != nil {
		return nil, err
	}
	description, err := auction.NewDescription(r.description)
	if err != nil {
		return nil, err
	}
	itemURL, err := auction.NewItemURL(r.itemURL)
	if err != nil {
		return nil, err
	}

	var commits [2]*auction.CommitDigest
	var bids [2]*auction.Bid
	var secrets [2]*auction.Secret
	for i := range 2 {
		if r.commits[i] != nil {
			d, err := auction.NewCommitDigest(*r.commits[i])
			if err != nil {
				return nil, err
			}
			commits[i] = &d
		}
		if r.bidCents[i] != nil {
			b := auction.BidFromCents(*r.bidCents[i])
			bids[i] = &b
		}
		if r.secrets[i] != nil {
			s, err := auction.NewSecret(*r.secrets[i])
			if err != nil {
				return nil, err
			}
			secrets[i] = &s
		}
	}

	return auction.ReconstructAuction(
		r.id,
		title, description, itemURL,
		r.seatAToken, r.seatBToken,
		commits[auction.SeatA], commits[auction.SeatB],
		bids[auction.SeatA], bids[auction.SeatB],
		secrets[auction.SeatA], secrets[auction.SeatB],
		r.createdAt,
	), nil
}
