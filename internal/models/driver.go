package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type DriverStatus string

const (
	DriverStatusOnline  DriverStatus = "online"
	DriverStatusOffline DriverStatus = "offline"
	DriverStatusBusy    DriverStatus = "busy"
)

type Driver struct {
	ID             primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID         primitive.ObjectID `json:"user_id" bson:"user_id" validate:"required"`
	Name           string             `json:"name" bson:"name"`
	Mobile         string             `json:"mobile" bson:"mobile"`
	ProfilePicture string             `json:"profile_picture" bson:"profile_picture"`
	Rating         float64            `json:"rating" bson:"rating" default:"0"`
	CarMake        string             `json:"car_make" bson:"car_make"`
	CarModel       string             `json:"car_model" bson:"car_model"`
	CarNumber      string             `json:"car_number" bson:"car_number"`
	CarColor       string             `json:"car_color" bson:"car_color"`
	Status         DriverStatus       `json:"status" bson:"status" default:"offline"`
	CreatedAt      time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at" bson:"updated_at"`
}

type DriverDetail struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Mobile         string  `json:"mobile"`
	ProfilePicture string  `json:"profile_picture"`
	Rating         float64 `json:"rating"`
	CarMake        string  `json:"car_make"`
	CarModel       string  `json:"car_model"`
	CarNumber      string  `json:"car_number"`
	CarColor       string  `json:"car_color"`
}

func (d *Driver) Detail() *DriverDetail {
	return &DriverDetail{
		ID:             d.ID.Hex(),
		Name:           d.Name,
		Mobile:         d.Mobile,
		ProfilePicture: d.ProfilePicture,
		Rating:         d.Rating,
		CarMake:        d.CarMake,
		CarModel:       d.CarModel,
		CarNumber:      d.CarNumber,
		CarColor:       d.CarColor,
	}
}
