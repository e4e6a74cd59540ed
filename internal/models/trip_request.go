package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TripRequest is a rider's ride request. Its pickup place is embedded so the
// start transition and the pickup snapshot are written in one document update.
type TripRequest struct {
	ID            primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	RequestNumber string              `json:"request_number" bson:"request_number"`
	UserID        primitive.ObjectID  `json:"user_id" bson:"user_id" validate:"required"`
	DriverID      *primitive.ObjectID `json:"driver_id" bson:"driver_id"`
	IsTripStart   bool                `json:"is_trip_start" bson:"is_trip_start" default:"false"`
	IsCompleted   bool                `json:"is_completed" bson:"is_completed" default:"false"`
	IsCancelled   bool                `json:"is_cancelled" bson:"is_cancelled" default:"false"`
	IfDispatch    bool                `json:"if_dispatch" bson:"if_dispatch" default:"false"`
	RideOTP       string              `json:"-" bson:"ride_otp"`
	TripStartTime *time.Time          `json:"trip_start_time" bson:"trip_start_time"`
	PickupPlace   PickupPlace         `json:"request_place" bson:"request_place"`
	CreatedAt     time.Time           `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at" bson:"updated_at"`
}

type PickupPlace struct {
	PickLat     float64 `json:"pick_lat" bson:"pick_lat"`
	PickLng     float64 `json:"pick_lng" bson:"pick_lng"`
	PickAddress string  `json:"pick_address" bson:"pick_address"`
	DropLat     float64 `json:"drop_lat" bson:"drop_lat"`
	DropLng     float64 `json:"drop_lng" bson:"drop_lng"`
	DropAddress string  `json:"drop_address" bson:"drop_address"`
}

// IsAssignedTo reports whether driverID is the request's assigned driver.
func (r *TripRequest) IsAssignedTo(driverID primitive.ObjectID) bool {
	return r.DriverID != nil && *r.DriverID == driverID
}

// StartState is the write applied when a driver starts a trip. ExpectedDriverID
// is part of the compare-and-set filter together with the lifecycle flags.
type StartState struct {
	ExpectedDriverID primitive.ObjectID
	PickLat          float64
	PickLng          float64
	PickAddress      *string
	StartedAt        time.Time
}

type StartTripCommand struct {
	RequestID      primitive.ObjectID
	CallerDriverID primitive.ObjectID
	PickLat        float64
	PickLng        float64
	PickAddress    *string
	RideOTP        *string
}

// TripRequestView is the rider-facing snapshot sent with trip status events.
type TripRequestView struct {
	ID            string        `json:"id"`
	RequestNumber string        `json:"request_number"`
	UserID        string        `json:"user_id"`
	DriverID      string        `json:"driver_id,omitempty"`
	IsTripStart   bool          `json:"is_trip_start"`
	IsCompleted   bool          `json:"is_completed"`
	IsCancelled   bool          `json:"is_cancelled"`
	IfDispatch    bool          `json:"if_dispatch"`
	TripStartTime *time.Time    `json:"trip_start_time"`
	PickLat       float64       `json:"pick_lat"`
	PickLng       float64       `json:"pick_lng"`
	PickAddress   string        `json:"pick_address"`
	DropLat       float64       `json:"drop_lat"`
	DropLng       float64       `json:"drop_lng"`
	DropAddress   string        `json:"drop_address"`
	DriverDetail  *DriverDetail `json:"driverDetail,omitempty"`
}

func NewTripRequestView(r *TripRequest, driver *Driver) *TripRequestView {
	view := &TripRequestView{
		ID:            r.ID.Hex(),
		RequestNumber: r.RequestNumber,
		UserID:        r.UserID.Hex(),
		IsTripStart:   r.IsTripStart,
		IsCompleted:   r.IsCompleted,
		IsCancelled:   r.IsCancelled,
		IfDispatch:    r.IfDispatch,
		TripStartTime: r.TripStartTime,
		PickLat:       r.PickupPlace.PickLat,
		PickLng:       r.PickupPlace.PickLng,
		PickAddress:   r.PickupPlace.PickAddress,
		DropLat:       r.PickupPlace.DropLat,
		DropLng:       r.PickupPlace.DropLng,
		DropAddress:   r.PickupPlace.DropAddress,
	}
	if r.DriverID != nil {
		view.DriverID = r.DriverID.Hex()
	}
	if driver != nil {
		view.DriverDetail = driver.Detail()
	}
	return view
}
