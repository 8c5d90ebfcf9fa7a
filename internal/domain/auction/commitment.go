package auction

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// ComputeCommitHash binds a bid to its commitment. The payload is the
// canonical two-decimal bid, the secret, the auction id and the seat label
// joined by "|"; the digest is the lowercase hex SHA-256 of that UTF-8
// string. Changing any element changes the digest, which is what makes a
// committed bid tamper-evident at reveal time. Clients compute the same
// digest locally before committing; the server only ever recomputes it at
// reveal.
func ComputeCommitHash(bidCanonical, secret, auctionID string, seat Seat) string {
	payload := strings.Join([]string{bidCanonical, secret, auctionID, seat.Label()}, "|")
	sum := sha256.Sum256([]byte(payload))
	return hex.EncodeToString(sum[:])
}
