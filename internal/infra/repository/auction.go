package repository

import (
	"context"
	"errors"
	"time"

	"blindbid/internal/domain/auction"
	"blindbid/internal/infra"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const pgErrCodeUniqueViolation = "23505"

// AuctionRepository persists auction records. Every state-changing operation
// is a single conditional UPDATE so the precondition check and the write are
// one atomic unit per row; concurrent seats racing on the same auction are
// serialized by the storage engine, and different auctions never contend.
type AuctionRepository struct {
	pool *pgxpool.Pool
}

func NewAuctionRepository(pool *pgxpool.Pool) *AuctionRepository {
	return &AuctionRepository{pool: pool}
}

func (r *AuctionRepository) Create(ctx context.Context, a *auction.Auction) error {
	const stmt = `
INSERT INTO auctions (id, title, description, item_url, seat_a_token, seat_b_token, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.pool.Exec(ctx, stmt,
		a.ID(),
		a.Title().String(),
		a.Description().String(),
		a.ItemURL().String(),
		a.SeatToken(auction.SeatA),
		a.SeatToken(auction.SeatB),
		a.CreatedAt(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return infra.WrapRepoErr("auction id or token collision", err, infra.KindDuplicateKey)
		}
		return infra.WrapRepoErr("failed to insert auction", err)
	}
	return nil
}

func (r *AuctionRepository) FindByID(ctx context.Context, id string) (*auction.Auction, error) {
	const query = `
SELECT id, title, description, item_url, seat_a_token, seat_b_token,
       commit_a, commit_b, bid_a_cents, bid_b_cents, secret_a, secret_b, created_at
FROM auctions
WHERE id = $1`

	var row auctionRow
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&row.id, &row.title, &row.description, &row.itemURL,
		&row.seatAToken, &row.seatBToken,
		&row.commitA, &row.commitB,
		&row.bidACents, &row.bidBCents,
		&row.secretA, &row.secretB,
		&row.createdAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to get auction by id", err)
	}
	return row.toDomain()
}

func (r *AuctionRepository) SetCommit(ctx context.Context, id string, seat auction.Seat, digest auction.CommitDigest) (bool, error) {
	var stmt string
	switch seat {
	case auction.SeatA:
		stmt = `UPDATE auctions SET commit_a = $2 WHERE id = $1 AND commit_a IS NULL`
	default:
		stmt = `UPDATE auctions SET commit_b = $2 WHERE id = $1 AND commit_b IS NULL`
	}

	tag, err := r.pool.Exec(ctx, stmt, id, digest.String())
	if err != nil {
		return false, infra.WrapRepoErr("failed to set commit", err)
	}
	return tag.RowsAffected() == 1, nil
}

// ClearCommit refuses to clear while the counterpart's commit exists, and
// never touches a seat that already revealed. Both guards live in the WHERE
// clause so a racing counterpart commit cannot slip between check and write.
func (r *AuctionRepository) ClearCommit(ctx context.Context, id string, seat auction.Seat) (bool, error) {
	var stmt string
	switch seat {
	case auction.SeatA:
		stmt = `UPDATE auctions SET commit_a = NULL WHERE id = $1 AND commit_b IS NULL AND bid_a_cents IS NULL`
	default:
		stmt = `UPDATE auctions SET commit_b = NULL WHERE id = $1 AND commit_a IS NULL AND bid_b_cents IS NULL`
	}

	tag, err := r.pool.Exec(ctx, stmt, id)
	if err != nil {
		return false, infra.WrapRepoErr("failed to clear commit", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *AuctionRepository) SetReveal(ctx context.Context, id string, seat auction.Seat, bid auction.Bid, secret auction.Secret) (bool, error) {
	var stmt string
	switch seat {
	case auction.SeatA:
		stmt = `
UPDATE auctions SET bid_a_cents = $2, secret_a = $3
WHERE id = $1 AND bid_a_cents IS NULL AND commit_a IS NOT NULL AND commit_b IS NOT NULL`
	default:
		stmt = `
UPDATE auctions SET bid_b_cents = $2, secret_b = $3
WHERE id = $1 AND bid_b_cents IS NULL AND commit_a IS NOT NULL AND commit_b IS NOT NULL`
	}

	tag, err := r.pool.Exec(ctx, stmt, id, bid.Cents(), secret.String())
	if err != nil {
		return false, infra.WrapRepoErr("failed to set reveal", err)
	}
	return tag.RowsAffected() == 1, nil
}

type auctionRow struct {
	id          string
	title       string
	description string
	itemURL     string
	seatAToken  string
	seatBToken  string
	commitA     *string
	commitB     *string
	bidACents   *int64
	bidBCents   *int64
	secretA     *string
	secretB     *string
	createdAt   time.Time
}

func (row auctionRow) toDomain() (*auction.Auction, error) {
	title, err := auction.NewTitle(row.title)
	if err != nil {
		return nil, infra.WrapRepoErr("stored title is invalid", err)
	}
	description, err := auction.NewDescription(row.description)
	if err != nil {
		return nil, infra.WrapRepoErr("stored description is invalid", err)
	}
	itemURL, err := auction.NewItemURL(row.itemURL)
	if err != nil {
		return nil, infra.WrapRepoErr("stored item url is invalid", err)
	}

	commitA, err := optionalDigest(row.commitA)
	if err != nil {
		return nil, err
	}
	commitB, err := optionalDigest(row.commitB)
	if err != nil {
		return nil, err
	}
	secretA, err := optionalSecret(row.secretA)
	if err != nil {
		return nil, err
	}
	secretB, err := optionalSecret(row.secretB)
	if err != nil {
		return nil, err
	}

	return auction.ReconstructAuction(
		row.id,
		title, description, itemURL,
		row.seatAToken, row.seatBToken,
		commitA, commitB,
		optionalBid(row.bidACents), optionalBid(row.bidBCents),
		secretA, secretB,
		row.createdAt,
	), nil
}

func optionalDigest(s *string) (*auction.CommitDigest, error) {
	if s == nil {
		return nil, nil
	}
	d, err := auction.NewCommitDigest(*s)
	if err != nil {
		return nil, infra.WrapRepoErr("stored commit digest is invalid", err)
	}
	return &d, nil
}

func optionalBid(cents *int64) *auction.Bid {
	if cents == nil {
		return nil
	}
	b := auction.BidFromCents(*cents)
	return &b
}

func optionalSecret(s *string) (*auction.Secret, error) {
	if s == nil {
		return nil, nil
	}
	sec, err := auction.NewSecret(*s)
	if err != nil {
		return nil, infra.WrapRepoErr("stored secret is invalid", err)
	}
	return &sec, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgErrCodeUniqueViolation
}
