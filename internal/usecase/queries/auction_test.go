//go:build unit

package queries_test

import (
	"context"
	"testing"

	"blindbid/internal/domain/auction"
	"blindbid/internal/pkg/errs"
	"blindbid/internal/usecase/queries"
	"blindbid/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReadStore struct {
	auctions map[string]*auction.Auction
	failWith error
}

func (f *fakeReadStore) FindByID(_ context.Context, id string) (*auction.Auction, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	return f.auctions[id], nil
}

func newTestQueries(t *testing.T, builders ...*builder.AuctionBuilder) (queries.AuctionQueries, *fakeReadStore) {
	t.Helper()
	store := &fakeReadStore{auctions: make(map[string]*auction.Auction)}
	for _, b := range builders {
		a, err := b.BuildDomain()
		require.NoError(t, err)
		store.auctions[a.ID()] = a
	}
	return queries.NewAuctionQueries(store), store
}

func TestGetStatus(t *testing.T) {
	t.Run("fresh auction", func(t *testing.T) {
		q, _ := newTestQueries(t, builder.NewAuctionBuilder())

		status, err := q.GetStatus(context.Background(), builder.DefaultAuctionID, "")
		require.NoError(t, err)
		assert.Equal(t, auction.PhaseCommit, status.Phase)
		assert.False(t, status.SeatA.Committed)
		assert.False(t, status.SeatB.Committed)
		assert.Empty(t, status.YourSeat)
		assert.Equal(t, "Vintage camera", status.Title)
	})

	t.Run("per-seat progress in reveal phase", func(t *testing.T) {
		b := builder.NewAuctionBuilder().Revealed()
		b.BidB = ""
		q, _ := newTestQueries(t, b)

		status, err := q.GetStatus(context.Background(), builder.DefaultAuctionID, "")
		require.NoError(t, err)
		assert.Equal(t, auction.PhaseReveal, status.Phase)
		assert.True(t, status.SeatA.Committed)
		assert.True(t, status.SeatA.Revealed)
		assert.True(t, status.SeatB.Committed)
		assert.False(t, status.SeatB.Revealed)
	})

	t.Run("token resolves the caller's seat", func(t *testing.T) {
		q, _ := newTestQueries(t, builder.NewAuctionBuilder())

		status, err := q.GetStatus(context.Background(), builder.DefaultAuctionID, builder.DefaultSeatBToken)
		require.NoError(t, err)
		assert.Equal(t, "B", status.YourSeat)
	})

	t.Run("unresolvable token degrades to the anonymous view", func(t *testing.T) {
		q, _ := newTestQueries(t, builder.NewAuctionBuilder())

		status, err := q.GetStatus(context.Background(), builder.DefaultAuctionID, "bogus-token")
		require.NoError(t, err)
		assert.Empty(t, status.YourSeat)
	})

	t.Run("unknown auction id", func(t *testing.T) {
		q, _ := newTestQueries(t)

		_, err := q.GetStatus(context.Background(), "missing-auction1", "")
		assert.ErrorIs(t, err, errs.ErrAuctionNotFound)
	})

	t.Run("store failure propagates", func(t *testing.T) {
		q, store := newTestQueries(t, builder.NewAuctionBuilder())
		store.failWith = assert.AnError

		_, err := q.GetStatus(context.Background(), builder.DefaultAuctionID, "")
		assert.ErrorIs(t, err, assert.AnError)
	})
}

func TestGetResult(t *testing.T) {
	t.Run("sealed before both reveals", func(t *testing.T) {
		b := builder.NewAuctionBuilder().Revealed()
		b.BidB = ""
		q, _ := newTestQueries(t, b)

		result, err := q.GetResult(context.Background(), builder.DefaultAuctionID)
		require.NoError(t, err)
		assert.False(t, result.Revealed)
		assert.Empty(t, result.Winner)
		assert.Empty(t, result.PaymentAmount)
		assert.Empty(t, result.BidA)
		assert.Empty(t, result.BidB)
	})

	t.Run("settled result exposes both bids symmetrically", func(t *testing.T) {
		q, _ := newTestQueries(t, builder.NewAuctionBuilder().Revealed())

		result, err := q.GetResult(context.Background(), builder.DefaultAuctionID)
		require.NoError(t, err)
		assert.True(t, result.Revealed)
		assert.Equal(t, auction.WinnerB, result.Winner)
		assert.Equal(t, "200.00", result.PaymentAmount)
		assert.Equal(t, "150.00", result.BidA)
		assert.Equal(t, "200.00", result.BidB)
	})

	t.Run("tie carries no payment amount", func(t *testing.T) {
		b := builder.NewAuctionBuilder()
		b.BidA, b.BidB = "150.00", "150.00"
		q, _ := newTestQueries(t, b.Revealed())

		result, err := q.GetResult(context.Background(), builder.DefaultAuctionID)
		require.NoError(t, err)
		assert.Equal(t, auction.WinnerTie, result.Winner)
		assert.Empty(t, result.PaymentAmount)
		assert.Equal(t, "150.00", result.BidA)
		assert.Equal(t, "150.00", result.BidB)
	})

	t.Run("unknown auction id", func(t *testing.T) {
		q, _ := newTestQueries(t)

		_, err := q.GetResult(context.Background(), "missing-auction1")
		assert.ErrorIs(t, err, errs.ErrAuctionNotFound)
	})
}
