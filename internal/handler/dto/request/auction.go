package request

import "encoding/json"

type CreateAuctionRequest struct {
	Title       string `json:"title" binding:"required,max=200"`
	Description string `json:"description" binding:"omitempty,max=2000"`
	ItemURL     string `json:"item_url" binding:"omitempty,max=2048"`
}

type CommitRequest struct {
	CommitHash string `json:"commit_hash" binding:"required,len=64"`
}

// Bid is a json.Number so the caller's literal text survives binding: the
// two-decimal rule is checked against what was actually sent, not against a
// reparsed float.
type RevealRequest struct {
	Bid    json.Number `json:"bid" binding:"required"`
	Secret string      `json:"secret" binding:"required"`
}
