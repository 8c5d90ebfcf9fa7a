//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"blindbid/internal/domain/auction"
	"blindbid/internal/pkg/clock"
	"blindbid/internal/pkg/errs"
	"blindbid/internal/usecase/commands"
	"blindbid/internal/usecase/queries"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

func newTestCommands(t *testing.T) (commands.AuctionCommands, *fakeAuctionRepository) {
	t.Helper()
	repo := newFakeAuctionRepository()
	return commands.NewAuctionCommands(repo, clock.NewMockClock(fixedNow)), repo
}

func mustCreate(t *testing.T, uc commands.AuctionCommands) *commands.CreateAuctionResult {
	t.Helper()
	result, err := uc.Create(context.Background(), commands.CreateAuctionRequest{
		Title:       "Vintage camera",
		Description: "Boxed, working condition",
		ItemURL:     "https://example.com/items/camera",
	})
	require.NoError(t, err)
	return result
}

func digestFor(result *commands.CreateAuctionResult, seat auction.Seat, bidText, secret string) string {
	bid, err := auction.NewBid(bidText)
	if err != nil {
		panic("invalid bid text in test: " + bidText)
	}
	return auction.ComputeCommitHash(bid.Canonical(), secret, result.AuctionID, seat)
}

func TestCreate(t *testing.T) {
	t.Run("issues id and two distinct seat tokens", func(t *testing.T) {
		uc, repo := newTestCommands(t)

		result := mustCreate(t, uc)
		assert.Len(t, result.AuctionID, 16)
		assert.Len(t, result.SeatAToken, 32)
		assert.Len(t, result.SeatBToken, 32)
		assert.NotEqual(t, result.SeatAToken, result.SeatBToken)

		stored, err := repo.FindByID(context.Background(), result.AuctionID)
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, auction.PhaseCommit, stored.Phase())
		assert.Equal(t, fixedNow, stored.CreatedAt())
	})

	t.Run("rejects invalid metadata before touching the store", func(t *testing.T) {
		uc, repo := newTestCommands(t)

		_, err := uc.Create(context.Background(), commands.CreateAuctionRequest{Title: "   "})
		assert.ErrorIs(t, err, auction.ErrEmptyTitle)
		assert.Empty(t, repo.records)
	})

	t.Run("propagates repository failure", func(t *testing.T) {
		uc, repo := newTestCommands(t)
		repo.failWith = assert.AnError

		_, err := uc.Create(context.Background(), commands.CreateAuctionRequest{Title: "Vintage camera"})
		assert.ErrorIs(t, err, assert.AnError)
	})
}

func TestCommit(t *testing.T) {
	t.Run("stores a seat's digest", func(t *testing.T) {
		uc, repo := newTestCommands(t)
		result := mustCreate(t, uc)
		digest := digestFor(result, auction.SeatA, "150.00", "peanut")

		err := uc.Commit(context.Background(), result.AuctionID, result.SeatAToken, digest)
		require.NoError(t, err)

		stored, err := repo.FindByID(context.Background(), result.AuctionID)
		require.NoError(t, err)
		assert.True(t, stored.HasCommit(auction.SeatA))
		assert.False(t, stored.HasCommit(auction.SeatB))
		assert.Equal(t, auction.PhaseCommit, stored.Phase())
	})

	t.Run("rejects a malformed digest", func(t *testing.T) {
		uc, _ := newTestCommands(t)
		result := mustCreate(t, uc)

		err := uc.Commit(context.Background(), result.AuctionID, result.SeatAToken, "not-a-digest")
		assert.ErrorIs(t, err, auction.ErrInvalidDigest)
	})

	t.Run("unknown auction id", func(t *testing.T) {
		uc, _ := newTestCommands(t)
		result := mustCreate(t, uc)
		digest := digestFor(result, auction.SeatA, "150.00", "peanut")

		err := uc.Commit(context.Background(), "missing-auction1", result.SeatAToken, digest)
		assert.ErrorIs(t, err, errs.ErrAuctionNotFound)
	})

	t.Run("token from another auction looks like an unknown id", func(t *testing.T) {
		uc, _ := newTestCommands(t)
		first := mustCreate(t, uc)
		second := mustCreate(t, uc)
		digest := digestFor(first, auction.SeatA, "150.00", "peanut")

		err := uc.Commit(context.Background(), first.AuctionID, second.SeatAToken, digest)
		assert.ErrorIs(t, err, errs.ErrAuctionNotFound)
	})

	t.Run("second commit by the same seat", func(t *testing.T) {
		uc, _ := newTestCommands(t)
		result := mustCreate(t, uc)
		digest := digestFor(result, auction.SeatA, "150.00", "peanut")

		require.NoError(t, uc.Commit(context.Background(), result.AuctionID, result.SeatAToken, digest))
		err := uc.Commit(context.Background(), result.AuctionID, result.SeatAToken, digest)
		assert.ErrorIs(t, err, errs.ErrAlreadyCommitted)
	})

	t.Run("losing a commit race surfaces as already committed", func(t *testing.T) {
		uc, repo := newTestCommands(t)
		result := mustCreate(t, uc)
		digest := digestFor(result, auction.SeatA, "150.00", "peanut")
		rival := digestFor(result, auction.SeatA, "175.00", "almond")

		// The rival write lands between this seat's read and its update.
		repo.beforeMutate = func() {
			repo.beforeMutate = nil
			require.NoError(t, uc.Commit(context.Background(), result.AuctionID, result.SeatAToken, rival))
		}
		err := uc.Commit(context.Background(), result.AuctionID, result.SeatAToken, digest)
		assert.ErrorIs(t, err, errs.ErrAlreadyCommitted)

		stored, err := repo.FindByID(context.Background(), result.AuctionID)
		require.NoError(t, err)
		assert.Equal(t, rival, stored.Commit(auction.SeatA).String())
	})
}

func TestResetCommit(t *testing.T) {
	t.Run("reopens a seat while the counterpart is uncommitted", func(t *testing.T) {
		uc, repo := newTestCommands(t)
		result := mustCreate(t, uc)
		digest := digestFor(result, auction.SeatA, "150.00", "peanut")

		require.NoError(t, uc.Commit(context.Background(), result.AuctionID, result.SeatAToken, digest))
		require.NoError(t, uc.ResetCommit(context.Background(), result.AuctionID, result.SeatAToken))

		stored, err := repo.FindByID(context.Background(), result.AuctionID)
		require.NoError(t, err)
		assert.False(t, stored.HasCommit(auction.SeatA))

		// The seat may commit again with a fresh digest.
		replacement := digestFor(result, auction.SeatA, "175.00", "almond")
		require.NoError(t, uc.Commit(context.Background(), result.AuctionID, result.SeatAToken, replacement))
	})

	t.Run("conflict once the counterpart committed", func(t *testing.T) {
		uc, repo := newTestCommands(t)
		result := mustCreate(t, uc)
		digestA := digestFor(result, auction.SeatA, "150.00", "peanut")
		digestB := digestFor(result, auction.SeatB, "200.00", "walnut")

		require.NoError(t, uc.Commit(context.Background(), result.AuctionID, result.SeatAToken, digestA))
		require.NoError(t, uc.Commit(context.Background(), result.AuctionID, result.SeatBToken, digestB))

		err := uc.ResetCommit(context.Background(), result.AuctionID, result.SeatAToken)
		assert.ErrorIs(t, err, errs.ErrResetConflict)

		stored, findErr := repo.FindByID(context.Background(), result.AuctionID)
		require.NoError(t, findErr)
		assert.Equal(t, digestA, stored.Commit(auction.SeatA).String())
	})

	t.Run("losing the race against the counterpart's commit", func(t *testing.T) {
		uc, repo := newTestCommands(t)
		result := mustCreate(t, uc)
		digestA := digestFor(result, auction.SeatA, "150.00", "peanut")
		digestB := digestFor(result, auction.SeatB, "200.00", "walnut")

		require.NoError(t, uc.Commit(context.Background(), result.AuctionID, result.SeatAToken, digestA))

		// Seat B locks A in between A's precondition read and A's reset.
		repo.beforeMutate = func() {
			repo.beforeMutate = nil
			require.NoError(t, uc.Commit(context.Background(), result.AuctionID, result.SeatBToken, digestB))
		}
		err := uc.ResetCommit(context.Background(), result.AuctionID, result.SeatAToken)
		assert.ErrorIs(t, err, errs.ErrResetConflict)

		stored, findErr := repo.FindByID(context.Background(), result.AuctionID)
		require.NoError(t, findErr)
		assert.Equal(t, digestA, stored.Commit(auction.SeatA).String())
	})

	t.Run("resetting an uncommitted seat is a no-op", func(t *testing.T) {
		uc, _ := newTestCommands(t)
		result := mustCreate(t, uc)

		err := uc.ResetCommit(context.Background(), result.AuctionID, result.SeatAToken)
		assert.NoError(t, err)
	})
}

func TestReveal(t *testing.T) {
	setupCommitted := func(t *testing.T) (commands.AuctionCommands, *fakeAuctionRepository, *commands.CreateAuctionResult) {
		t.Helper()
		uc, repo := newTestCommands(t)
		result := mustCreate(t, uc)
		require.NoError(t, uc.Commit(context.Background(), result.AuctionID, result.SeatAToken,
			digestFor(result, auction.SeatA, "150.00", "peanut")))
		require.NoError(t, uc.Commit(context.Background(), result.AuctionID, result.SeatBToken,
			digestFor(result, auction.SeatB, "200.00", "walnut")))
		return uc, repo, result
	}

	t.Run("stores a matching bid and secret", func(t *testing.T) {
		uc, repo, result := setupCommitted(t)

		err := uc.Reveal(context.Background(), result.AuctionID, result.SeatAToken, "150.00", "peanut")
		require.NoError(t, err)

		stored, err := repo.FindByID(context.Background(), result.AuctionID)
		require.NoError(t, err)
		assert.True(t, stored.HasBid(auction.SeatA))
		assert.Equal(t, auction.PhaseReveal, stored.Phase())
	})

	t.Run("accepts an equivalent bid spelling", func(t *testing.T) {
		// The digest binds the canonical form, so "150.0" vs "150.00" vs
		// "150.5" all hash identically once canonicalized.
		uc, _, result := setupCommitted(t)

		err := uc.Reveal(context.Background(), result.AuctionID, result.SeatAToken, "150", "peanut")
		assert.NoError(t, err)
	})

	t.Run("before both seats committed", func(t *testing.T) {
		uc, _ := newTestCommands(t)
		result := mustCreate(t, uc)
		require.NoError(t, uc.Commit(context.Background(), result.AuctionID, result.SeatAToken,
			digestFor(result, auction.SeatA, "150.00", "peanut")))

		err := uc.Reveal(context.Background(), result.AuctionID, result.SeatAToken, "150.00", "peanut")
		assert.ErrorIs(t, err, errs.ErrRevealPrecondition)
	})

	t.Run("wrong secret leaves the commit intact and allows a retry", func(t *testing.T) {
		uc, repo, result := setupCommitted(t)

		err := uc.Reveal(context.Background(), result.AuctionID, result.SeatAToken, "150.00", "wrong")
		assert.ErrorIs(t, err, errs.ErrHashMismatch)

		stored, findErr := repo.FindByID(context.Background(), result.AuctionID)
		require.NoError(t, findErr)
		assert.False(t, stored.HasBid(auction.SeatA))
		assert.True(t, stored.HasCommit(auction.SeatA))

		// Corrected inputs still go through.
		assert.NoError(t, uc.Reveal(context.Background(), result.AuctionID, result.SeatAToken, "150.00", "peanut"))
	})

	t.Run("wrong bid fails the digest check", func(t *testing.T) {
		uc, _, result := setupCommitted(t)

		err := uc.Reveal(context.Background(), result.AuctionID, result.SeatAToken, "151.00", "peanut")
		assert.ErrorIs(t, err, errs.ErrHashMismatch)
	})

	t.Run("malformed bid is rejected before any lookup", func(t *testing.T) {
		uc, _, result := setupCommitted(t)

		err := uc.Reveal(context.Background(), result.AuctionID, result.SeatAToken, "1.005", "peanut")
		assert.ErrorIs(t, err, auction.ErrInvalidBid)
	})

	t.Run("empty secret is rejected", func(t *testing.T) {
		uc, _, result := setupCommitted(t)

		err := uc.Reveal(context.Background(), result.AuctionID, result.SeatAToken, "150.00", "")
		assert.ErrorIs(t, err, auction.ErrEmptySecret)
	})

	t.Run("second reveal by the same seat", func(t *testing.T) {
		uc, _, result := setupCommitted(t)

		require.NoError(t, uc.Reveal(context.Background(), result.AuctionID, result.SeatAToken, "150.00", "peanut"))
		err := uc.Reveal(context.Background(), result.AuctionID, result.SeatAToken, "150.00", "peanut")
		assert.ErrorIs(t, err, errs.ErrAlreadyRevealed)
	})
}

// TestFullProtocolFlow drives one auction from creation to the settled result
// through the command and query layers together.
func TestFullProtocolFlow(t *testing.T) {
	repo := newFakeAuctionRepository()
	uc := commands.NewAuctionCommands(repo, clock.NewMockClock(fixedNow))
	q := queries.NewAuctionQueries(repo)
	ctx := context.Background()

	result := mustCreate(t, uc)

	status, err := q.GetStatus(ctx, result.AuctionID, result.SeatAToken)
	require.NoError(t, err)
	assert.Equal(t, auction.PhaseCommit, status.Phase)
	assert.Equal(t, "A", status.YourSeat)

	require.NoError(t, uc.Commit(ctx, result.AuctionID, result.SeatAToken,
		digestFor(result, auction.SeatA, "150.00", "peanut")))
	require.NoError(t, uc.Commit(ctx, result.AuctionID, result.SeatBToken,
		digestFor(result, auction.SeatB, "200.00", "walnut")))

	status, err = q.GetStatus(ctx, result.AuctionID, result.SeatBToken)
	require.NoError(t, err)
	assert.Equal(t, auction.PhaseReveal, status.Phase)
	assert.Equal(t, "B", status.YourSeat)
	assert.True(t, status.SeatA.Committed)
	assert.True(t, status.SeatB.Committed)

	// The result stays sealed until both reveals land.
	partial, err := q.GetResult(ctx, result.AuctionID)
	require.NoError(t, err)
	assert.False(t, partial.Revealed)
	assert.Empty(t, partial.BidA)

	require.NoError(t, uc.Reveal(ctx, result.AuctionID, result.SeatAToken, "150.00", "peanut"))
	require.NoError(t, uc.Reveal(ctx, result.AuctionID, result.SeatBToken, "200.00", "walnut"))

	settled, err := q.GetResult(ctx, result.AuctionID)
	require.NoError(t, err)
	assert.True(t, settled.Revealed)
	assert.Equal(t, auction.WinnerB, settled.Winner)
	assert.Equal(t, "200.00", settled.PaymentAmount)
	assert.Equal(t, "150.00", settled.BidA)
	assert.Equal(t, "200.00", settled.BidB)
}
