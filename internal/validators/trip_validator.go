package validators

import (
	"strings"

	"tripbid/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type StartTripRequest struct {
	RequestID   string   `json:"request_id" validate:"required,object_id"`
	PickLat     *float64 `json:"pick_lat" validate:"required,min=-90,max=90"`
	PickLng     *float64 `json:"pick_lng" validate:"required,min=-180,max=180"`
	PickAddress *string  `json:"pick_address" validate:"omitempty,max=255"`
	RideOTP     *string  `json:"ride_otp" validate:"omitempty,max=10"`
}

// ToCommand converts a validated request into a start command for callerDriverID.
func (r *StartTripRequest) ToCommand(callerDriverID primitive.ObjectID) *models.StartTripCommand {
	requestID, _ := primitive.ObjectIDFromHex(r.RequestID)

	cmd := &models.StartTripCommand{
		RequestID:      requestID,
		CallerDriverID: callerDriverID,
		PickLat:        *r.PickLat,
		PickLng:        *r.PickLng,
		RideOTP:        r.RideOTP,
	}
	if r.PickAddress != nil && strings.TrimSpace(*r.PickAddress) != "" {
		address := strings.TrimSpace(*r.PickAddress)
		cmd.PickAddress = &address
	}
	return cmd
}

// SubmitBidRequest leaves bid_id unchecked: an id that does not resolve to a
// bid is treated as a new bid.
type SubmitBidRequest struct {
	BidID        string   `json:"bid_id"`
	UserID       string   `json:"user_id" validate:"required,object_id"`
	RequestID    string   `json:"request_id" validate:"required,object_id"`
	DriverID     string   `json:"driver_id" validate:"required,object_id"`
	DefaultPrice *float64 `json:"default_price" validate:"required,price"`
	BidPrice     *float64 `json:"bid_price" validate:"required,price"`
}

func (r *SubmitBidRequest) ToCommand() *models.SubmitBidCommand {
	userID, _ := primitive.ObjectIDFromHex(r.UserID)
	requestID, _ := primitive.ObjectIDFromHex(r.RequestID)
	driverID, _ := primitive.ObjectIDFromHex(r.DriverID)

	return &models.SubmitBidCommand{
		BidID:        strings.TrimSpace(r.BidID),
		UserID:       userID,
		RequestID:    requestID,
		DriverID:     driverID,
		DefaultPrice: *r.DefaultPrice,
		BidPrice:     *r.BidPrice,
	}
}
