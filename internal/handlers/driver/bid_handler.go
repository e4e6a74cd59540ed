package driver

import (
	"net/http"

	"tripbid/internal/services"
	"tripbid/internal/utils"
	"tripbid/internal/validators"

	"github.com/gin-gonic/gin"
)

type BidHandler struct {
	bidService services.BidService
}

func NewBidHandler(bidService services.BidService) *BidHandler {
	return &BidHandler{
		bidService: bidService,
	}
}

// SubmitBid creates a bid, or updates it when bid_id names an existing one.
func (h *BidHandler) SubmitBid(c *gin.Context) {
	var request validators.SubmitBidRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if errs := validators.ValidateStruct(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.Details())
		return
	}

	result, err := h.bidService.SubmitBid(c.Request.Context(), request.ToCommand())
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, utils.CodeUnknown, utils.ErrUnknown)
		return
	}

	message := utils.MsgBidSubmitted
	if result.Updated {
		message = utils.MsgBidUpdated
	}
	utils.SuccessResponse(c, message, result)
}
