package mongodb

import (
	"context"
	"errors"
	"fmt"

	"tripbid/internal/models"
	"tripbid/internal/repositories/interfaces"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const tripRequestsCollection = "requests"

type tripRequestRepository struct {
	collection *mongo.Collection
}

func NewTripRequestRepository(db *mongo.Database) interfaces.TripRequestRepository {
	return &tripRequestRepository{
		collection: db.Collection(tripRequestsCollection),
	}
}

func (r *tripRequestRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.TripRequest, error) {
	var request models.TripRequest
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&request)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("trip request %s: %w", id.Hex(), interfaces.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get trip request: %w", err)
	}

	return &request, nil
}

func (r *tripRequestRepository) UpdateStartState(ctx context.Context, id primitive.ObjectID, state *models.StartState) error {
	filter := startStateFilter(id, state.ExpectedDriverID)

	set := bson.M{
		"is_trip_start":          true,
		"trip_start_time":        state.StartedAt,
		"request_place.pick_lat": state.PickLat,
		"request_place.pick_lng": state.PickLng,
		"updated_at":             state.StartedAt,
	}
	if state.PickAddress != nil {
		set["request_place.pick_address"] = *state.PickAddress
	}

	result, err := r.collection.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update trip start state: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("trip request %s: %w", id.Hex(), interfaces.ErrStaleRecord)
	}

	return nil
}

// startStateFilter matches the request only while every start guard still holds.
func startStateFilter(id, driverID primitive.ObjectID) bson.M {
	return bson.M{
		"_id":           id,
		"driver_id":     driverID,
		"is_trip_start": false,
		"is_completed":  false,
		"is_cancelled":  false,
	}
}
