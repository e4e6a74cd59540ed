package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"tripbid/internal/models"
	"tripbid/internal/repositories/interfaces"
	"tripbid/pkg/push"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeTripRepo applies UpdateStartState with the same conditional filter the
// Mongo repository uses.
type fakeTripRepo struct {
	mu         sync.Mutex
	trips      map[primitive.ObjectID]models.TripRequest
	forceStale int
	writes     int
}

func newFakeTripRepo(trips ...models.TripRequest) *fakeTripRepo {
	r := &fakeTripRepo{trips: make(map[primitive.ObjectID]models.TripRequest)}
	for _, t := range trips {
		r.trips[t.ID] = t
	}
	return r
}

func (r *fakeTripRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.TripRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.trips[id]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	return &t, nil
}

func (r *fakeTripRepo) UpdateStartState(ctx context.Context, id primitive.ObjectID, state *models.StartState) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.forceStale > 0 {
		r.forceStale--
		return interfaces.ErrStaleRecord
	}

	t, ok := r.trips[id]
	if !ok || !t.IsAssignedTo(state.ExpectedDriverID) || t.IsTripStart || t.IsCompleted || t.IsCancelled {
		return interfaces.ErrStaleRecord
	}

	startedAt := state.StartedAt
	t.IsTripStart = true
	t.TripStartTime = &startedAt
	t.PickupPlace.PickLat = state.PickLat
	t.PickupPlace.PickLng = state.PickLng
	if state.PickAddress != nil {
		t.PickupPlace.PickAddress = *state.PickAddress
	}
	r.trips[id] = t
	r.writes++
	return nil
}

func (r *fakeTripRepo) get(id primitive.ObjectID) models.TripRequest {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.trips[id]
}

type fakeUserRepo struct {
	users map[primitive.ObjectID]*models.User
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	return u, nil
}

type fakeDriverRepo struct {
	drivers map[primitive.ObjectID]*models.Driver
}

func (r *fakeDriverRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Driver, error) {
	d, ok := r.drivers[id]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	return d, nil
}

func (r *fakeDriverRepo) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Driver, error) {
	for _, d := range r.drivers {
		if d.UserID == userID {
			return d, nil
		}
	}
	return nil, interfaces.ErrNotFound
}

type sentPush struct {
	userID primitive.ObjectID
	title  string
	body   string
	data   map[string]string
}

type sentEvent struct {
	target  string
	event   string
	key     string
	payload interface{}
}

type recordingNotifier struct {
	mu      sync.Mutex
	pushes  []sentPush
	sockets []sentEvent
	bus     []sentEvent
}

func (n *recordingNotifier) SendPush(userID primitive.ObjectID, title, body string, data map[string]string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.pushes = append(n.pushes, sentPush{userID: userID, title: title, body: body, data: data})
}

func (n *recordingNotifier) SendSocket(channel, event string, payload interface{}) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sockets = append(n.sockets, sentEvent{target: channel, event: event, payload: payload})
}

func (n *recordingNotifier) SendBus(topic string, payload interface{}, partitionKey string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.bus = append(n.bus, sentEvent{target: topic, key: partitionKey, payload: payload})
}

func (n *recordingNotifier) pushCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.pushes)
}

type fakeBidRepo struct {
	mu        sync.Mutex
	bids      map[primitive.ObjectID]models.TripBid
	upsertErr error
	getErr    error
	now       time.Time
}

func newFakeBidRepo() *fakeBidRepo {
	return &fakeBidRepo{
		bids: make(map[primitive.ObjectID]models.TripBid),
		now:  time.Date(2024, 3, 9, 14, 5, 0, 0, time.UTC),
	}
}

func (r *fakeBidRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.TripBid, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.getErr != nil {
		return nil, r.getErr
	}
	b, ok := r.bids[id]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	return &b, nil
}

func (r *fakeBidRepo) Upsert(ctx context.Context, bid *models.TripBid) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.upsertErr != nil {
		return r.upsertErr
	}
	if bid.ID.IsZero() {
		bid.ID = primitive.NewObjectID()
	}
	if existing, ok := r.bids[bid.ID]; ok {
		bid.CreatedAt = existing.CreatedAt
	} else {
		bid.CreatedAt = r.now
	}
	bid.UpdatedAt = r.now
	r.bids[bid.ID] = *bid
	return nil
}

func (r *fakeBidRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.bids)
}

type mirrorWrite struct {
	path   string
	fields map[string]interface{}
}

type fakeMirror struct {
	mu     sync.Mutex
	writes []mirrorWrite
	err    error
}

func (m *fakeMirror) SetPath(ctx context.Context, path string, fields map[string]interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writes = append(m.writes, mirrorWrite{path: path, fields: fields})
	return m.err
}

func (m *fakeMirror) latest() (mirrorWrite, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.writes) == 0 {
		return mirrorWrite{}, false
	}
	return m.writes[len(m.writes)-1], true
}

type sentRequest struct {
	platform string
	request  *push.NotificationRequest
}

type fakePushSender struct {
	mu   sync.Mutex
	sent []sentRequest
	err  error
}

func (f *fakePushSender) Send(ctx context.Context, platform string, request *push.NotificationRequest) (*push.NotificationResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentRequest{platform: platform, request: request})
	if f.err != nil {
		return nil, f.err
	}
	return &push.NotificationResponse{Success: true}, nil
}

type fakeSocket struct {
	mu    sync.Mutex
	rooms []string
}

func (f *fakeSocket) SendToRoom(roomID, eventType string, payload interface{}) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rooms = append(f.rooms, roomID)
	return 1, nil
}

type fakeBus struct {
	mu   sync.Mutex
	keys []string
}

func (f *fakeBus) Publish(ctx context.Context, topic string, key string, payload interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.keys = append(f.keys, key)
	return nil
}

var errStoreDown = errors.New("store unavailable")
