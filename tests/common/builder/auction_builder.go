//go:build unit || e2e

package builder

import (
	"time"

	"blindbid/internal/domain/auction"
	reqdto "blindbid/internal/handler/dto/request"
	"blindbid/internal/usecase/queries"

	"github.com/jinzhu/copier"
)

// Fixed identifiers shaped like real token pkg output (16 / 32 chars).
const (
	DefaultAuctionID  = "auc_0123456789ab"
	DefaultSeatAToken = "seat-a-aaaaaaaaaaaaaaaaaaaaaaaaa"
	DefaultSeatBToken = "seat-b-bbbbbbbbbbbbbbbbbbbbbbbbb"

	DefaultBidA    = "150.00"
	DefaultBidB    = "200.00"
	DefaultSecretA = "peanut"
	DefaultSecretB = "walnut"
)

type AuctionBuilder struct {
	ID          string
	Title       string
	Description string
	ItemURL     string
	SeatAToken  string
	SeatBToken  string
	CommitA     string
	CommitB     string
	BidA        string // literal bid text; empty means not revealed
	BidB        string
	SecretA     string
	SecretB     string
	CreatedAt   time.Time

	// Bid texts stashed by Committed so Revealed can restore them.
	revealTextA string
	revealTextB string
}

func NewAuctionBuilder() *AuctionBuilder {
	return &AuctionBuilder{
		ID:          DefaultAuctionID,
		Title:       "Vintage camera",
		Description: "Boxed, working condition",
		ItemURL:     "https://example.com/items/camera",
		SeatAToken:  DefaultSeatAToken,
		SeatBToken:  DefaultSeatBToken,
		CreatedAt:   time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (b *AuctionBuilder) With(mutate func(*AuctionBuilder)) *AuctionBuilder {
	mutate(b)
	return b
}

func (b *AuctionBuilder) Clone() *AuctionBuilder {
	var c AuctionBuilder
	_ = copier.Copy(&c, b)
	return &c
}

// CommitFor computes the digest this builder's bid/secret pair would commit
// to for the given seat, using the builder's auction id.
func (b *AuctionBuilder) CommitFor(seat auction.Seat) string {
	bidText, secret := b.BidA, b.SecretA
	if seat == auction.SeatB {
		bidText, secret = b.BidB, b.SecretB
	}
	bid, err := auction.NewBid(bidText)
	if err != nil {
		panic("builder: invalid bid text: " + bidText)
	}
	return auction.ComputeCommitHash(bid.Canonical(), secret, b.ID, seat)
}

// Committed populates both commit digests from the default bid/secret pairs
// without revealing.
func (b *AuctionBuilder) Committed() *AuctionBuilder {
	if b.BidA == "" {
		b.BidA = DefaultBidA
	}
	if b.SecretA == "" {
		b.SecretA = DefaultSecretA
	}
	if b.BidB == "" {
		b.BidB = DefaultBidB
	}
	if b.SecretB == "" {
		b.SecretB = DefaultSecretB
	}
	b.CommitA = b.CommitFor(auction.SeatA)
	b.CommitB = b.CommitFor(auction.SeatB)
	bidA, bidB := b.BidA, b.BidB
	b.BidA, b.BidB = "", ""
	b.revealTextA, b.revealTextB = bidA, bidB
	return b
}

// Revealed produces the terminal state: both committed and both revealed.
func (b *AuctionBuilder) Revealed() *AuctionBuilder {
	b.Committed()
	b.BidA, b.BidB = b.revealTextA, b.revealTextB
	return b
}

func (b *AuctionBuilder) BuildDomain() (*auction.Auction, error) {
	title, err := auction.NewTitle(b.Title)
	if err != nil {
		return nil, err
	}
	description, err := auction.NewDescription(b.Description)
	if err != nil {
		return nil, err
	}
	itemURL, err := auction.NewItemURL(b.ItemURL)
	if err != nil {
		return nil, err
	}

	commitA, err := optionalDigest(b.CommitA)
	if err != nil {
		return nil, err
	}
	commitB, err := optionalDigest(b.CommitB)
	if err != nil {
		return nil, err
	}
	bidA, err := optionalBid(b.BidA)
	if err != nil {
		return nil, err
	}
	bidB, err := optionalBid(b.BidB)
	if err != nil {
		return nil, err
	}
	secretA, err := optionalSecret(b.BidA, b.SecretA)
	if err != nil {
		return nil, err
	}
	secretB, err := optionalSecret(b.BidB, b.SecretB)
	if err != nil {
		return nil, err
	}

	return auction.ReconstructAuction(
		b.ID,
		title, description, itemURL,
		b.SeatAToken, b.SeatBToken,
		commitA, commitB,
		bidA, bidB,
		secretA, secretB,
		b.CreatedAt,
	), nil
}

func (b *AuctionBuilder) BuildCreateRequestDTO() reqdto.CreateAuctionRequest {
	return reqdto.CreateAuctionRequest{
		Title:       b.Title,
		Description: b.Description,
		ItemURL:     b.ItemURL,
	}
}

func (b *AuctionBuilder) BuildStatusView() *queries.StatusView {
	return &queries.StatusView{
		AuctionID:   b.ID,
		Title:       b.Title,
		Description: b.Description,
		ItemURL:     b.ItemURL,
		Phase:       b.phase(),
		SeatA: queries.SeatStatusView{
			Committed: b.CommitA != "",
			Revealed:  b.BidA != "",
		},
		SeatB: queries.SeatStatusView{
			Committed: b.CommitB != "",
			Revealed:  b.BidB != "",
		},
		CreatedAt: b.CreatedAt,
	}
}

func (b *AuctionBuilder) BuildResultView() *queries.ResultView {
	view := &queries.ResultView{
		AuctionID:   b.ID,
		Title:       b.Title,
		Description: b.Description,
		ItemURL:     b.ItemURL,
		Revealed:    b.BidA != "" && b.BidB != "",
		CreatedAt:   b.CreatedAt,
	}
	if !view.Revealed {
		return view
	}
	bidA, errA := auction.NewBid(b.BidA)
	bidB, errB := auction.NewBid(b.BidB)
	if errA != nil || errB != nil {
		panic("builder: invalid revealed bid text")
	}
	view.BidA = bidA.Canonical()
	view.BidB = bidB.Canonical()
	switch {
	case bidA.Cents() > bidB.Cents():
		view.Winner = auction.WinnerA
		view.PaymentAmount = view.BidA
	case bidB.Cents() > bidA.Cents():
		view.Winner = auction.WinnerB
		view.PaymentAmount = view.BidB
	default:
		view.Winner = auction.WinnerTie
	}
	return view
}

func (b *AuctionBuilder) phase() auction.Phase {
	switch {
	case b.BidA != "" && b.BidB != "":
		return auction.PhaseRevealed
	case b.CommitA != "" && b.CommitB != "":
		return auction.PhaseReveal
	default:
		return auction.PhaseCommit
	}
}

func optionalDigest(s string) (*auction.CommitDigest, error) {
	if s == "" {
		return nil, nil
	}
	d, err := auction.NewCommitDigest(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func optionalBid(text string) (*auction.Bid, error) {
	if text == "" {
		return nil, nil
	}
	bid, err := auction.NewBid(text)
	if err != nil {
		return nil, err
	}
	return &bid, nil
}

func optionalSecret(bidText, secret string) (*auction.Secret, error) {
	if bidText == "" {
		return nil, nil
	}
	s, err := auction.NewSecret(secret)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
