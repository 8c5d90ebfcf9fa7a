package api

import (
	"errors"
	"net/http"

	"blindbid/internal/domain/auction"
	reqdto "blindbid/internal/handler/dto/request"
	resdto "blindbid/internal/handler/dto/response"
	"blindbid/internal/handler/httperr"
	"blindbid/internal/pkg/errs"
	"blindbid/internal/usecase/commands"
	"blindbid/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

// SeatTokenHeader carries the bearer capability for a seat. It is the only
// place a seat token travels after creation.
const SeatTokenHeader = "X-Seat-Token"

type AuctionHandler struct {
	cmds commands.AuctionCommands
	q    queries.AuctionQueries
}

func NewAuctionHandler(cmds commands.AuctionCommands, q queries.AuctionQueries) *AuctionHandler {
	return &AuctionHandler{cmds: cmds, q: q}
}

// @Summary Create auction
// @Description Create a sealed-bid auction; returns the auction id and both seat tokens (shown exactly once)
// @Tags auctions
// @Accept json
// @Produce json
// @Param request body reqdto.CreateAuctionRequest true "Create auction request"
// @Success 201 {object} resdto.CreateAuctionResponse
// @Failure 400 {object} map[string]string
// @Router /auctions [post]
func (h *AuctionHandler) Create(c *gin.Context) {
	var req reqdto.CreateAuctionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	result, err := h.cmds.Create(c.Request.Context(), commands.CreateAuctionRequest{
		Title:       req.Title,
		Description: req.Description,
		ItemURL:     req.ItemURL,
	})
	if err != nil {
		h.abortProtocolError(c, err, "Create auction failed")
		return
	}
	c.JSON(http.StatusCreated, resdto.FromCreateResult(result))
}

// @Summary Auction status
// @Description Derived phase and per-seat commit/reveal presence; identifies the caller's seat when X-Seat-Token resolves
// @Tags auctions
// @Produce json
// @Param id path string true "Auction ID"
// @Param X-Seat-Token header string false "Seat token"
// @Success 200 {object} resdto.StatusResponse
// @Failure 404 {object} map[string]string
// @Router /auctions/{id} [get]
func (h *AuctionHandler) GetStatus(c *gin.Context) {
	view, err := h.q.GetStatus(c.Request.Context(), c.Param("id"), c.GetHeader(SeatTokenHeader))
	if err != nil {
		h.abortProtocolError(c, err, "Get status failed")
		return
	}
	c.JSON(http.StatusOK, resdto.FromStatusView(view))
}

// @Summary Auction result
// @Description Winner and both bids, disclosed to both parties only after both reveals
// @Tags auctions
// @Produce json
// @Param id path string true "Auction ID"
// @Success 200 {object} resdto.ResultResponse
// @Failure 404 {object} map[string]string
// @Router /auctions/{id}/result [get]
func (h *AuctionHandler) GetResult(c *gin.Context) {
	view, err := h.q.GetResult(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.abortProtocolError(c, err, "Get result failed")
		return
	}
	c.JSON(http.StatusOK, resdto.FromResultView(view))
}

// @Summary Submit commit
// @Description Store a seat's commitment digest; one-shot per seat
// @Tags auctions
// @Accept json
// @Produce json
// @Param id path string true "Auction ID"
// @Param X-Seat-Token header string true "Seat token"
// @Param request body reqdto.CommitRequest true "Commit request"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /auctions/{id}/commit [post]
func (h *AuctionHandler) Commit(c *gin.Context) {
	var req reqdto.CommitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	if err := h.cmds.Commit(c.Request.Context(), c.Param("id"), c.GetHeader(SeatTokenHeader), req.CommitHash); err != nil {
		h.abortProtocolError(c, err, "Commit failed")
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Reset commit
// @Description Clear this seat's commitment; allowed only while the counterpart has not committed
// @Tags auctions
// @Produce json
// @Param id path string true "Auction ID"
// @Param X-Seat-Token header string true "Seat token"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /auctions/{id}/commit [delete]
func (h *AuctionHandler) ResetCommit(c *gin.Context) {
	if err := h.cmds.ResetCommit(c.Request.Context(), c.Param("id"), c.GetHeader(SeatTokenHeader)); err != nil {
		h.abortProtocolError(c, err, "Reset commit failed")
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Reveal bid
// @Description Disclose the bid and secret; verified against the stored commitment
// @Tags auctions
// @Accept json
// @Produce json
// @Param id path string true "Auction ID"
// @Param X-Seat-Token header string true "Seat token"
// @Param request body reqdto.RevealRequest true "Reveal request"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 412 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /auctions/{id}/reveal [post]
func (h *AuctionHandler) Reveal(c *gin.Context) {
	var req reqdto.RevealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	if err := h.cmds.Reveal(c.Request.Context(), c.Param("id"), c.GetHeader(SeatTokenHeader), req.Bid.String(), req.Secret); err != nil {
		h.abortProtocolError(c, err, "Reveal failed")
		return
	}
	c.Status(http.StatusNoContent)
}

// abortProtocolError maps engine outcomes onto HTTP statuses. Messages stay
// generic: they tell a legitimate caller what to fix without disclosing
// anything about the counterpart's state.
func (h *AuctionHandler) abortProtocolError(c *gin.Context, err error, msg string) {
	switch {
	case isValidationError(err):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
	case errors.Is(err, errs.ErrAuctionNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Auction not found", nil)
	case errors.Is(err, errs.ErrAlreadyCommitted),
		errors.Is(err, errs.ErrAlreadyRevealed),
		errors.Is(err, errs.ErrResetConflict):
		httperr.AbortWithError(c, http.StatusConflict, err, "Operation conflicts with current auction state", nil)
	case errors.Is(err, errs.ErrRevealPrecondition):
		httperr.AbortWithError(c, http.StatusPreconditionFailed, err, "Both commits are required before reveal", nil)
	case errors.Is(err, errs.ErrHashMismatch):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Reveal does not match the stored commitment", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, msg, nil)
	}
}

func isValidationError(err error) bool {
	for _, sentinel := range []error{
		auction.ErrEmptyTitle,
		auction.ErrTitleTooLong,
		auction.ErrMetadataTooLong,
		auction.ErrInvalidBid,
		auction.ErrInvalidDigest,
		auction.ErrEmptySecret,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
