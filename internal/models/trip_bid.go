package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TripBid is one driver's price offer on a trip request. Several bids may
// exist for the same request and driver; records are keyed by ID only.
type TripBid struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID       primitive.ObjectID `json:"user_id" bson:"user_id" validate:"required"`
	RequestID    primitive.ObjectID `json:"request_id" bson:"request_id" validate:"required"`
	DriverID     primitive.ObjectID `json:"driver_id" bson:"driver_id" validate:"required"`
	DefaultPrice float64            `json:"default_price" bson:"default_price"`
	BidPrice     float64            `json:"bid_price" bson:"bid_price"`
	IsAccepted   bool               `json:"is_accepted" bson:"is_accepted" default:"false"`
	CreatedAt    time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at" bson:"updated_at"`
}

// SubmitBidCommand carries a raw BidID so that an unknown or malformed id can
// fall back to creating a new bid.
type SubmitBidCommand struct {
	BidID        string
	UserID       primitive.ObjectID
	RequestID    primitive.ObjectID
	DriverID     primitive.ObjectID
	DefaultPrice float64
	BidPrice     float64
}

type BidResult struct {
	BidID              string  `json:"bid_id"`
	UserID             string  `json:"user_id"`
	RequestID          string  `json:"request_id"`
	DriverID           string  `json:"driver_id"`
	DefaultPrice       float64 `json:"default_price"`
	BidPrice           float64 `json:"bid_price"`
	ConvertedUpdatedAt string  `json:"converted_updated_at"`
	ConvertedCreatedAt string  `json:"converted_created_at"`
	Updated            bool    `json:"-"`
}
