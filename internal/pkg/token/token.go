package token

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"

	"blindbid/internal/pkg/errs"
)

// Seat tokens and auction ids are bearer capabilities: whoever holds the
// string holds the seat. They are plain CSPRNG output, URL-safe, and sized
// so that guessing is infeasible.
const (
	seatTokenBytes = 24 // 192 bits -> 32 base64url chars
	auctionIDBytes = 12 // 96 bits  -> 16 base64url chars
)

var ErrEntropyUnavailable = errs.New("failed to read random bytes")

func NewSeatToken() (string, error) {
	return randomString(seatTokenBytes)
}

func NewAuctionID() (string, error) {
	return randomString(auctionIDBytes)
}

func randomString(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", errs.Mark(err, ErrEntropyUnavailable)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// Equal compares a presented token against a stored one in constant time.
// Tokens are already unguessable bearer secrets, so this is belt and braces
// rather than a hard requirement.
func Equal(presented, stored string) bool {
	return subtle.ConstantTimeCompare([]byte(presented), []byte(stored)) == 1
}
