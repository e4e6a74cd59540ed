package models

type PushEnum string

const (
	PushEnumDriverStartedTrip PushEnum = "driver_started_the_trip"
)

// TripStatusEvent is the body sent over the socket and bus channels.
type TripStatusEvent struct {
	Success        bool             `json:"success"`
	SuccessMessage PushEnum         `json:"success_message"`
	Result         *TripRequestView `json:"result"`
}
