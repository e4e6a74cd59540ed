package services

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"tripbid/internal/models"
	"tripbid/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type tripFixture struct {
	repo     *fakeTripRepo
	notifier *recordingNotifier
	service  TripService
	trip     models.TripRequest
	driver   *models.Driver
	rider    *models.User
}

func newTripFixture(t *testing.T, mutate func(*models.TripRequest), config TripServiceConfig) *tripFixture {
	t.Helper()

	driverID := primitive.NewObjectID()
	rider := &models.User{ID: primitive.NewObjectID(), Name: "Rider", Language: "es", DeviceToken: "token-1"}
	driver := &models.Driver{ID: driverID, UserID: primitive.NewObjectID(), Name: "Dora", CarNumber: "KA-01"}

	trip := models.TripRequest{
		ID:            primitive.NewObjectID(),
		RequestNumber: "REQ_000001",
		UserID:        rider.ID,
		DriverID:      &driverID,
		RideOTP:       "4821",
		PickupPlace:   models.PickupPlace{PickLat: 1, PickLng: 2, PickAddress: "Old street"},
	}
	if mutate != nil {
		mutate(&trip)
	}

	if config.StartAttempts == 0 {
		config.StartAttempts = 3
	}

	repo := newFakeTripRepo(trip)
	notifier := &recordingNotifier{}
	service := NewTripService(
		repo,
		&fakeDriverRepo{drivers: map[primitive.ObjectID]*models.Driver{driverID: driver}},
		&fakeUserRepo{users: map[primitive.ObjectID]*models.User{rider.ID: rider}},
		notifier,
		NewLocalizer("en"),
		config,
		logger.Discard(),
	)

	return &tripFixture{repo: repo, notifier: notifier, service: service, trip: trip, driver: driver, rider: rider}
}

func (f *tripFixture) command() *models.StartTripCommand {
	return &models.StartTripCommand{
		RequestID:      f.trip.ID,
		CallerDriverID: f.driver.ID,
		PickLat:        10.0,
		PickLng:        20.0,
	}
}

func strPtr(s string) *string { return &s }

func TestStartTripSuccess(t *testing.T) {
	f := newTripFixture(t, nil, TripServiceConfig{})

	if err := f.service.StartTrip(context.Background(), f.command()); err != nil {
		t.Fatalf("StartTrip() error = %v", err)
	}

	stored := f.repo.get(f.trip.ID)
	if !stored.IsTripStart || stored.TripStartTime == nil {
		t.Fatalf("trip not marked started: %+v", stored)
	}
	if stored.PickupPlace.PickLat != 10.0 || stored.PickupPlace.PickLng != 20.0 {
		t.Errorf("pickup = (%v, %v), want (10, 20)", stored.PickupPlace.PickLat, stored.PickupPlace.PickLng)
	}
	if stored.PickupPlace.PickAddress != "Old street" {
		t.Errorf("pickup address overwritten without one supplied: %q", stored.PickupPlace.PickAddress)
	}

	if got := f.notifier.pushCount(); got != 1 {
		t.Fatalf("pushes = %d, want 1", got)
	}
	sent := f.notifier.pushes[0]
	if sent.userID != f.rider.ID {
		t.Errorf("push sent to %s, want rider %s", sent.userID.Hex(), f.rider.ID.Hex())
	}
	if sent.title != "Viaje iniciado" {
		t.Errorf("title = %q, want rider language text", sent.title)
	}
	if sent.data["notification_enum"] != string(models.PushEnumDriverStartedTrip) {
		t.Errorf("notification_enum = %q", sent.data["notification_enum"])
	}

	var view models.TripRequestView
	if err := json.Unmarshal([]byte(sent.data["result"]), &view); err != nil {
		t.Fatalf("result payload is not JSON: %v", err)
	}
	if !view.IsTripStart || view.PickLat != 10.0 {
		t.Errorf("snapshot does not reflect the committed start: %+v", view)
	}
	if view.DriverDetail == nil || view.DriverDetail.Name != "Dora" {
		t.Errorf("snapshot missing driver detail: %+v", view.DriverDetail)
	}

	if len(f.notifier.sockets) != 0 || len(f.notifier.bus) != 0 {
		t.Error("socket and bus channels should stay idle by default")
	}
}

func TestStartTripOverwritesAddressWhenSupplied(t *testing.T) {
	f := newTripFixture(t, nil, TripServiceConfig{})
	cmd := f.command()
	cmd.PickAddress = strPtr("Gate 4")

	if err := f.service.StartTrip(context.Background(), cmd); err != nil {
		t.Fatalf("StartTrip() error = %v", err)
	}
	if got := f.repo.get(f.trip.ID).PickupPlace.PickAddress; got != "Gate 4" {
		t.Errorf("pickup address = %q, want %q", got, "Gate 4")
	}
}

func TestStartTripTwiceReportsAlreadyStarted(t *testing.T) {
	f := newTripFixture(t, nil, TripServiceConfig{})

	if err := f.service.StartTrip(context.Background(), f.command()); err != nil {
		t.Fatalf("first StartTrip() error = %v", err)
	}

	second := f.command()
	second.PickLat, second.PickLng = 55, 66
	err := f.service.StartTrip(context.Background(), second)
	if !errors.Is(err, ErrTripAlreadyStarted) {
		t.Fatalf("second StartTrip() error = %v, want ErrTripAlreadyStarted", err)
	}

	if got := f.notifier.pushCount(); got != 1 {
		t.Errorf("pushes = %d, want 1", got)
	}
	if stored := f.repo.get(f.trip.ID); stored.PickupPlace.PickLat != 10.0 {
		t.Errorf("pickup changed by rejected call: %v", stored.PickupPlace.PickLat)
	}
}

func TestStartTripGuards(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*models.TripRequest)
		command func(*tripFixture, *models.StartTripCommand)
		want    error
	}{
		{
			name: "unknown request",
			command: func(f *tripFixture, cmd *models.StartTripCommand) {
				cmd.RequestID = primitive.NewObjectID()
			},
			want: ErrTripNotFound,
		},
		{
			name: "otp mismatch",
			command: func(f *tripFixture, cmd *models.StartTripCommand) {
				cmd.RideOTP = strPtr("0000")
			},
			want: ErrInvalidOTP,
		},
		{
			name: "otp checked before driver",
			command: func(f *tripFixture, cmd *models.StartTripCommand) {
				cmd.RideOTP = strPtr("0000")
				cmd.CallerDriverID = primitive.NewObjectID()
			},
			want: ErrInvalidOTP,
		},
		{
			name: "other driver",
			command: func(f *tripFixture, cmd *models.StartTripCommand) {
				cmd.CallerDriverID = primitive.NewObjectID()
			},
			want: ErrNotAssignedDriver,
		},
		{
			name:   "no driver assigned",
			mutate: func(r *models.TripRequest) { r.DriverID = nil },
			want:   ErrNotAssignedDriver,
		},
		{
			name:   "started before completed",
			mutate: func(r *models.TripRequest) { r.IsTripStart = true; r.IsCompleted = true },
			want:   ErrTripAlreadyStarted,
		},
		{
			name:   "completed",
			mutate: func(r *models.TripRequest) { r.IsCompleted = true },
			want:   ErrTripAlreadyCompleted,
		},
		{
			name:   "cancelled",
			mutate: func(r *models.TripRequest) { r.IsCancelled = true },
			want:   ErrTripCancelled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTripFixture(t, tt.mutate, TripServiceConfig{})
			cmd := f.command()
			if tt.command != nil {
				tt.command(f, cmd)
			}

			err := f.service.StartTrip(context.Background(), cmd)
			if !errors.Is(err, tt.want) {
				t.Fatalf("StartTrip() error = %v, want %v", err, tt.want)
			}
			if f.repo.writes != 0 {
				t.Errorf("rejected start wrote %d times", f.repo.writes)
			}
			if stored := f.repo.get(f.trip.ID); stored.PickupPlace.PickLat != f.trip.PickupPlace.PickLat {
				t.Errorf("pickup mutated by rejected start")
			}
			if f.notifier.pushCount() != 0 {
				t.Errorf("rejected start sent a notification")
			}
		})
	}
}

func TestStartTripMatchingOTP(t *testing.T) {
	f := newTripFixture(t, nil, TripServiceConfig{})
	cmd := f.command()
	cmd.RideOTP = strPtr("4821")

	if err := f.service.StartTrip(context.Background(), cmd); err != nil {
		t.Fatalf("StartTrip() error = %v", err)
	}
}

func TestStartTripDispatchModeSkipsNotification(t *testing.T) {
	f := newTripFixture(t, func(r *models.TripRequest) { r.IfDispatch = true }, TripServiceConfig{
		SocketEnabled: true,
		BusEnabled:    true,
	})

	if err := f.service.StartTrip(context.Background(), f.command()); err != nil {
		t.Fatalf("StartTrip() error = %v", err)
	}
	if !f.repo.get(f.trip.ID).IsTripStart {
		t.Fatal("dispatch-mode trip should still be started")
	}
	if f.notifier.pushCount() != 0 || len(f.notifier.sockets) != 0 || len(f.notifier.bus) != 0 {
		t.Error("dispatch-mode trip should not notify on any channel")
	}
}

func TestStartTripOptionalChannels(t *testing.T) {
	f := newTripFixture(t, nil, TripServiceConfig{
		SocketEnabled:   true,
		BusEnabled:      true,
		TripStatusTopic: "trip_status",
	})

	if err := f.service.StartTrip(context.Background(), f.command()); err != nil {
		t.Fatalf("StartTrip() error = %v", err)
	}

	if len(f.notifier.sockets) != 1 {
		t.Fatalf("socket sends = %d, want 1", len(f.notifier.sockets))
	}
	socket := f.notifier.sockets[0]
	if socket.target != "user_"+f.rider.ID.Hex() || socket.event != EventTripStatus {
		t.Errorf("socket send = %+v", socket)
	}
	event, ok := socket.payload.(*models.TripStatusEvent)
	if !ok || !event.Success || event.SuccessMessage != models.PushEnumDriverStartedTrip {
		t.Errorf("socket payload = %#v", socket.payload)
	}

	if len(f.notifier.bus) != 1 {
		t.Fatalf("bus sends = %d, want 1", len(f.notifier.bus))
	}
	if bus := f.notifier.bus[0]; bus.target != "trip_status" || bus.key != f.rider.ID.Hex() {
		t.Errorf("bus send = %+v", bus)
	}
}

func TestStartTripRetriesStaleWrite(t *testing.T) {
	f := newTripFixture(t, nil, TripServiceConfig{StartAttempts: 3})
	f.repo.forceStale = 2

	if err := f.service.StartTrip(context.Background(), f.command()); err != nil {
		t.Fatalf("StartTrip() error = %v", err)
	}
	if !f.repo.get(f.trip.ID).IsTripStart {
		t.Fatal("trip should be started after retry")
	}
}

func TestStartTripConflictAfterAttempts(t *testing.T) {
	f := newTripFixture(t, nil, TripServiceConfig{StartAttempts: 2})
	f.repo.forceStale = 2

	err := f.service.StartTrip(context.Background(), f.command())
	if !errors.Is(err, ErrStartConflict) {
		t.Fatalf("StartTrip() error = %v, want ErrStartConflict", err)
	}
	if f.notifier.pushCount() != 0 {
		t.Error("conflicted start should not notify")
	}
}

func TestStartTripConcurrentCallsStartOnce(t *testing.T) {
	f := newTripFixture(t, nil, TripServiceConfig{StartAttempts: 3})

	const callers = 16
	errs := make([]error, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = f.service.StartTrip(context.Background(), f.command())
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, ErrTripAlreadyStarted):
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}

	if succeeded != 1 {
		t.Fatalf("%d callers started the trip, want exactly 1", succeeded)
	}
	if f.repo.writes != 1 {
		t.Errorf("store writes = %d, want 1", f.repo.writes)
	}
	if got := f.notifier.pushCount(); got != 1 {
		t.Errorf("pushes = %d, want 1", got)
	}
}

func TestStartTripNotificationLookupFailureDoesNotFail(t *testing.T) {
	f := newTripFixture(t, nil, TripServiceConfig{})
	// the rider is missing from the user store
	f.service.(*tripService).userRepo = &fakeUserRepo{}

	if err := f.service.StartTrip(context.Background(), f.command()); err != nil {
		t.Fatalf("StartTrip() error = %v", err)
	}
	if f.notifier.pushCount() != 1 {
		t.Fatal("push should still be sent in the default language")
	}
	if got := f.notifier.pushes[0].title; got != "Trip Started" {
		t.Errorf("title = %q, want default language text", got)
	}
}
