package auction

import (
	"time"

	"blindbid/internal/pkg/token"
)

type Seat int

const (
	SeatA Seat = iota
	SeatB
)

// Label is the seat's wire form, also fed into the commitment hash.
func (s Seat) Label() string {
	if s == SeatB {
		return "B"
	}
	return "A"
}

func (s Seat) Other() Seat {
	if s == SeatA {
		return SeatB
	}
	return SeatA
}

// Phase is derived from field presence on every read, never stored.
type Phase string

const (
	PhaseCommit   Phase = "commit"
	PhaseReveal   Phase = "reveal"
	PhaseRevealed Phase = "revealed"
)

type Winner string

const (
	WinnerA   Winner = "A"
	WinnerB   Winner = "B"
	WinnerTie Winner = "TIE"
)

type seatState struct {
	commit *CommitDigest
	bid    *Bid
	secret *Secret
}

type Auction struct {
	id          string
	title       Title
	description Description
	itemURL     ItemURL
	seatTokens  [2]string
	seats       [2]seatState
	createdAt   time.Time
}

func NewAuction(id, seatAToken, seatBToken string, title Title, description Description, itemURL ItemURL, now time.Time) *Auction {
	return &Auction{
		id:          id,
		title:       title,
		description: description,
		itemURL:     itemURL,
		seatTokens:  [2]string{seatAToken, seatBToken},
		createdAt:   now,
	}
}

// ReconstructAuction rebuilds the aggregate from persisted state. Inputs are
// trusted: they were validated on the way in.
func ReconstructAuction(
	id string,
	title Title,
	description Description,
	itemURL ItemURL,
	seatAToken, seatBToken string,
	commitA, commitB *CommitDigest,
	bidA, bidB *Bid,
	secretA, secretB *Secret,
	createdAt time.Time,
) *Auction {
	return &Auction{
		id:          id,
		title:       title,
		description: description,
		itemURL:     itemURL,
		seatTokens:  [2]string{seatAToken, seatBToken},
		seats: [2]seatState{
			{commit: commitA, bid: bidA, secret: secretA},
			{commit: commitB, bid: bidB, secret: secretB},
		},
		createdAt: createdAt,
	}
}

func (a *Auction) ID() string               { return a.id }
func (a *Auction) Title() Title             { return a.title }
func (a *Auction) Description() Description { return a.description }
func (a *Auction) ItemURL() ItemURL         { return a.itemURL }
func (a *Auction) CreatedAt() time.Time     { return a.createdAt }

func (a *Auction) SeatToken(s Seat) string { return a.seatTokens[s] }

func (a *Auction) Commit(s Seat) *CommitDigest { return a.seats[s].commit }
func (a *Auction) Bid(s Seat) *Bid             { return a.seats[s].bid }
func (a *Auction) Secret(s Seat) *Secret       { return a.seats[s].secret }

func (a *Auction) HasCommit(s Seat) bool { return a.seats[s].commit != nil }
func (a *Auction) HasBid(s Seat) bool    { return a.seats[s].bid != nil }

func (a *Auction) BothCommitted() bool {
	return a.HasCommit(SeatA) && a.HasCommit(SeatB)
}

func (a *Auction) BothRevealed() bool {
	return a.HasBid(SeatA) && a.HasBid(SeatB)
}

func (a *Auction) Phase() Phase {
	switch {
	case a.BothRevealed():
		return PhaseRevealed
	case a.BothCommitted():
		return PhaseReveal
	default:
		return PhaseCommit
	}
}

// ResolveSeat identifies which seat a bearer token belongs to. Both
// comparisons always run so the lookup does not short-circuit on seat A.
func (a *Auction) ResolveSeat(presented string) (Seat, bool) {
	isA := token.Equal(presented, a.seatTokens[SeatA])
	isB := token.Equal(presented, a.seatTokens[SeatB])
	switch {
	case isA:
		return SeatA, true
	case isB:
		return SeatB, true
	default:
		return SeatA, false
	}
}

// Winner compares revealed bids by strict numeric ordering. Only meaningful
// once BothRevealed holds.
func (a *Auction) Winner() Winner {
	bidA := a.seats[SeatA].bid.Cents()
	bidB := a.seats[SeatB].bid.Cents()
	switch {
	case bidA > bidB:
		return WinnerA
	case bidB > bidA:
		return WinnerB
	default:
		return WinnerTie
	}
}

// WinningBid returns the winning bid, or nil on a tie.
func (a *Auction) WinningBid() *Bid {
	switch a.Winner() {
	case WinnerA:
		return a.seats[SeatA].bid
	case WinnerB:
		return a.seats[SeatB].bid
	default:
		return nil
	}
}
