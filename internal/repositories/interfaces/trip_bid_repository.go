package interfaces

import (
	"context"

	"tripbid/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TripBidRepository interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.TripBid, error)

	// Upsert writes bid by ID, inserting it when no record exists. A zero ID
	// is assigned a new one. Timestamps on bid are refreshed from the store.
	Upsert(ctx context.Context, bid *models.TripBid) error
}
