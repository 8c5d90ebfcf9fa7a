package auction

import (
	"fmt"
	"strings"

	"blindbid/internal/pkg/errs"
)

const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 2000
	MaxItemURLLength     = 2048

	// Bids are bounded to (0, 100000] with at most two fractional digits.
	MaxBidCents = 100_000_00
)

var (
	ErrEmptyTitle      = errs.New("title must not be empty")
	ErrTitleTooLong    = errs.New("title exceeds maximum length")
	ErrMetadataTooLong = errs.New("metadata field exceeds maximum length")
	ErrInvalidBid      = errs.New("bid must be a positive amount with at most two decimals")
	ErrInvalidDigest   = errs.New("commit hash must be 64 lowercase hex characters")
	ErrEmptySecret     = errs.New("secret must not be empty")
)

type Title struct {
	value string
}

func NewTitle(s string) (Title, error) {
	t := strings.TrimSpace(s)
	if t == "" {
		return Title{}, ErrEmptyTitle
	}
	if len(t) > MaxTitleLength {
		return Title{}, ErrTitleTooLong
	}
	return Title{value: t}, nil
}

func (t Title) String() string { return t.value }

type Description struct {
	value string
}

func NewDescription(s string) (Description, error) {
	d := strings.TrimSpace(s)
	if len(d) > MaxDescriptionLength {
		return Description{}, ErrMetadataTooLong
	}
	return Description{value: d}, nil
}

func (d Description) String() string { return d.value }

type ItemURL struct {
	value string
}

func NewItemURL(s string) (ItemURL, error) {
	u := strings.TrimSpace(s)
	if len(u) > MaxItemURLLength {
		return ItemURL{}, ErrMetadataTooLong
	}
	return ItemURL{value: u}, nil
}

func (u ItemURL) String() string { return u.value }

// Bid is constructed from the literal text the caller supplied. The
// two-decimal rule applies to that text, not to a reformatted value, so
// "1.005" is rejected even though it would round to "1.01".
type Bid struct {
	cents int64
}

func NewBid(raw string) (Bid, error) {
	s := strings.TrimSpace(raw)
	whole, frac, hasFrac := strings.Cut(s, ".")
	if whole == "" || !allDigits(whole) {
		return Bid{}, ErrInvalidBid
	}
	if hasFrac && (frac == "" || len(frac) > 2 || !allDigits(frac)) {
		return Bid{}, ErrInvalidBid
	}

	var cents int64
	for _, c := range whole {
		cents = cents*10 + int64(c-'0')
		if cents > MaxBidCents {
			return Bid{}, ErrInvalidBid
		}
	}
	cents *= 100
	if hasFrac {
		f := int64(frac[0]-'0') * 10
		if len(frac) == 2 {
			f += int64(frac[1] - '0')
		}
		cents += f
	}
	if cents <= 0 || cents > MaxBidCents {
		return Bid{}, ErrInvalidBid
	}
	return Bid{cents: cents}, nil
}

// BidFromCents reconstructs a stored bid. The repository only persists bids
// that passed NewBid, so no revalidation happens here.
func BidFromCents(cents int64) Bid {
	return Bid{cents: cents}
}

func (b Bid) Cents() int64 { return b.cents }

// Canonical returns the exact two-decimal text that feeds the commitment
// hash and all public payloads, e.g. 15000 cents -> "150.00".
func (b Bid) Canonical() string {
	return fmt.Sprintf("%d.%02d", b.cents/100, b.cents%100)
}

func allDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

type CommitDigest struct {
	value string
}

func NewCommitDigest(s string) (CommitDigest, error) {
	if len(s) != 64 {
		return CommitDigest{}, ErrInvalidDigest
	}
	for _, c := range s {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return CommitDigest{}, ErrInvalidDigest
		}
	}
	return CommitDigest{value: s}, nil
}

func (d CommitDigest) String() string { return d.value }

type Secret struct {
	value string
}

func NewSecret(s string) (Secret, error) {
	if s == "" {
		return Secret{}, ErrEmptySecret
	}
	return Secret{value: s}, nil
}

func (s Secret) String() string { return s.value }
