package interfaces

import (
	"context"

	"tripbid/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TripRequestRepository interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.TripRequest, error)

	// UpdateStartState marks the request started and overwrites its pickup
	// place. The write only applies while the request is still unstarted,
	// uncompleted, uncancelled and assigned to state.ExpectedDriverID;
	// otherwise ErrStaleRecord is returned.
	UpdateStartState(ctx context.Context, id primitive.ObjectID, state *models.StartState) error
}
