package response

import (
	"blindbid/internal/usecase/commands"
	"blindbid/internal/usecase/queries"
)

type CreateAuctionResponse struct {
	ID         string `json:"id"`
	SeatAToken string `json:"seat_a_token"`
	SeatBToken string `json:"seat_b_token"`
}

func FromCreateResult(r *commands.CreateAuctionResult) *CreateAuctionResponse {
	return &CreateAuctionResponse{
		ID:         r.AuctionID,
		SeatAToken: r.SeatAToken,
		SeatBToken: r.SeatBToken,
	}
}

type SeatStatusResponse struct {
	Committed bool `json:"committed"`
	Revealed  bool `json:"revealed"`
}

type StatusResponse struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	ItemURL     string             `json:"item_url"`
	Phase       string             `json:"phase"`
	SeatA       SeatStatusResponse `json:"seat_a"`
	SeatB       SeatStatusResponse `json:"seat_b"`
	YourSeat    string             `json:"your_seat,omitempty"`
	CreatedAt   int64              `json:"created_at"`
}

func FromStatusView(v *queries.StatusView) *StatusResponse {
	return &StatusResponse{
		ID:          v.AuctionID,
		Title:       v.Title,
		Description: v.Description,
		ItemURL:     v.ItemURL,
		Phase:       string(v.Phase),
		SeatA:       SeatStatusResponse{Committed: v.SeatA.Committed, Revealed: v.SeatA.Revealed},
		SeatB:       SeatStatusResponse{Committed: v.SeatB.Committed, Revealed: v.SeatB.Revealed},
		YourSeat:    v.YourSeat,
		CreatedAt:   v.CreatedAt.Unix(),
	}
}

type ResultResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ItemURL     string `json:"item_url"`
	Revealed    bool   `json:"revealed"`
	Winner      string `json:"winner,omitempty"`
	// PaymentAmount is null on a tie, per the result contract.
	PaymentAmount *string `json:"payment_amount"`
	BidA          string  `json:"bid_a,omitempty"`
	BidB          string  `json:"bid_b,omitempty"`
	CreatedAt     int64   `json:"created_at"`
}

func FromResultView(v *queries.ResultView) *ResultResponse {
	resp := &ResultResponse{
		ID:          v.AuctionID,
		Title:       v.Title,
		Description: v.Description,
		ItemURL:     v.ItemURL,
		Revealed:    v.Revealed,
		CreatedAt:   v.CreatedAt.Unix(),
	}
	if !v.Revealed {
		return resp
	}
	resp.Winner = string(v.Winner)
	resp.BidA = v.BidA
	resp.BidB = v.BidB
	if v.PaymentAmount != "" {
		amount := v.PaymentAmount
		resp.PaymentAmount = &amount
	}
	return resp
}
