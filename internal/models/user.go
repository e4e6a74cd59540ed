package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserType string
type DevicePlatform string

const (
	UserTypeRider  UserType = "rider"
	UserTypeDriver UserType = "driver"
	UserTypeAdmin  UserType = "admin"

	DevicePlatformAndroid DevicePlatform = "android"
	DevicePlatformIOS     DevicePlatform = "ios"
)

type User struct {
	ID             primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name           string             `json:"name" bson:"name"`
	Email          string             `json:"email" bson:"email"`
	Mobile         string             `json:"mobile" bson:"mobile"`
	Language       string             `json:"lang" bson:"lang" default:"en"`
	UserType       UserType           `json:"user_type" bson:"user_type"`
	DeviceToken    string             `json:"device_token" bson:"device_token"`
	DevicePlatform DevicePlatform     `json:"device_platform" bson:"device_platform"`
	CreatedAt      time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at" bson:"updated_at"`
}
