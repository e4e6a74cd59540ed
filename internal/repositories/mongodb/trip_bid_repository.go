package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tripbid/internal/models"
	"tripbid/internal/repositories/interfaces"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const tripBidsCollection = "trip_bids"

type tripBidRepository struct {
	collection *mongo.Collection
}

func NewTripBidRepository(db *mongo.Database) interfaces.TripBidRepository {
	return &tripBidRepository{
		collection: db.Collection(tripBidsCollection),
	}
}

func (r *tripBidRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.TripBid, error) {
	var bid models.TripBid
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&bid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("trip bid %s: %w", id.Hex(), interfaces.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get trip bid: %w", err)
	}

	return &bid, nil
}

func (r *tripBidRepository) Upsert(ctx context.Context, bid *models.TripBid) error {
	if bid.ID.IsZero() {
		bid.ID = primitive.NewObjectID()
	}
	now := time.Now()

	update := bson.M{
		"$set": bson.M{
			"user_id":       bid.UserID,
			"request_id":    bid.RequestID,
			"driver_id":     bid.DriverID,
			"default_price": bid.DefaultPrice,
			"bid_price":     bid.BidPrice,
			"updated_at":    now,
		},
		"$setOnInsert": bson.M{
			"is_accepted": false,
			"created_at":  now,
		},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var saved models.TripBid
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": bid.ID}, update, opts).Decode(&saved)
	if err != nil {
		return fmt.Errorf("failed to upsert trip bid: %w", err)
	}

	*bid = saved
	return nil
}
