package mongodb

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStartStateFilterGuardsLifecycle(t *testing.T) {
	id := primitive.NewObjectID()
	driverID := primitive.NewObjectID()

	filter := startStateFilter(id, driverID)

	if filter["_id"] != id || filter["driver_id"] != driverID {
		t.Errorf("filter does not pin the request and driver: %v", filter)
	}
	for _, flag := range []string{"is_trip_start", "is_completed", "is_cancelled"} {
		if filter[flag] != false {
			t.Errorf("filter[%s] = %v, want false", flag, filter[flag])
		}
	}
}
