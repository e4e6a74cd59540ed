package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"tripbid/internal/models"
	"tripbid/internal/observability"
	"tripbid/internal/repositories/interfaces"
	"tripbid/pkg/logger"
	"tripbid/pkg/websocket"
)

const EventTripStatus = "trip_status"

type TripService interface {
	// StartTrip marks the request started by its assigned driver and
	// overwrites the pickup place with the driver's position. Notification
	// runs after the write is committed and never affects the result.
	StartTrip(ctx context.Context, cmd *models.StartTripCommand) error
}

type TripServiceConfig struct {
	StartAttempts   int
	LookupTimeout   time.Duration
	SocketEnabled   bool
	BusEnabled      bool
	TripStatusTopic string
}

type tripService struct {
	tripRepo   interfaces.TripRequestRepository
	driverRepo interfaces.DriverRepository
	userRepo   interfaces.UserRepository
	notifier   NotificationService
	localizer  Localizer
	config     TripServiceConfig
	now        func() time.Time
	log        *logger.Logger
}

func NewTripService(
	tripRepo interfaces.TripRequestRepository,
	driverRepo interfaces.DriverRepository,
	userRepo interfaces.UserRepository,
	notifier NotificationService,
	localizer Localizer,
	config TripServiceConfig,
	log *logger.Logger,
) TripService {
	if config.StartAttempts < 1 {
		config.StartAttempts = 1
	}
	if config.LookupTimeout <= 0 {
		config.LookupTimeout = 2 * time.Second
	}
	return &tripService{
		tripRepo:   tripRepo,
		driverRepo: driverRepo,
		userRepo:   userRepo,
		notifier:   notifier,
		localizer:  localizer,
		config:     config,
		now:        time.Now,
		log:        log,
	}
}

func (s *tripService) StartTrip(ctx context.Context, cmd *models.StartTripCommand) error {
	trip, err := s.commitStart(ctx, cmd)
	observability.TripStartTotal.WithLabelValues(startResult(err)).Inc()
	if err != nil {
		return err
	}

	s.log.WithContext(ctx).LogTripEvent(trip.ID, "trip_started", map[string]interface{}{
		"driver_id":   cmd.CallerDriverID.Hex(),
		"if_dispatch": trip.IfDispatch,
	})

	if !trip.IfDispatch {
		s.notifyStarted(ctx, trip)
	}

	return nil
}

// commitStart runs the guard checks and the conditional write, reloading and
// re-checking when the record changed underneath. It returns the request as
// it stands after the write.
func (s *tripService) commitStart(ctx context.Context, cmd *models.StartTripCommand) (*models.TripRequest, error) {
	for attempt := 1; ; attempt++ {
		trip, err := s.tripRepo.GetByID(ctx, cmd.RequestID)
		if err != nil {
			if errors.Is(err, interfaces.ErrNotFound) {
				return nil, ErrTripNotFound
			}
			return nil, fmt.Errorf("failed to load trip request: %w", err)
		}

		if err := checkStartable(trip, cmd); err != nil {
			return nil, err
		}

		state := &models.StartState{
			ExpectedDriverID: cmd.CallerDriverID,
			PickLat:          cmd.PickLat,
			PickLng:          cmd.PickLng,
			PickAddress:      cmd.PickAddress,
			StartedAt:        s.now().UTC(),
		}

		err = s.tripRepo.UpdateStartState(ctx, trip.ID, state)
		if err == nil {
			applyStartState(trip, state)
			return trip, nil
		}
		if !errors.Is(err, interfaces.ErrStaleRecord) {
			return nil, fmt.Errorf("failed to start trip: %w", err)
		}
		if attempt >= s.config.StartAttempts {
			return nil, ErrStartConflict
		}

		observability.TripStartRetries.Inc()
		s.log.WithContext(ctx).WithField("request_id", trip.ID.Hex()).
			Debugf("Trip request changed during start, retrying (attempt %d)", attempt)
	}
}

func checkStartable(trip *models.TripRequest, cmd *models.StartTripCommand) error {
	if cmd.RideOTP != nil && *cmd.RideOTP != trip.RideOTP {
		return ErrInvalidOTP
	}
	if !trip.IsAssignedTo(cmd.CallerDriverID) {
		return ErrNotAssignedDriver
	}
	if trip.IsTripStart {
		return ErrTripAlreadyStarted
	}
	if trip.IsCompleted {
		return ErrTripAlreadyCompleted
	}
	if trip.IsCancelled {
		return ErrTripCancelled
	}
	return nil
}

func applyStartState(trip *models.TripRequest, state *models.StartState) {
	startedAt := state.StartedAt
	trip.IsTripStart = true
	trip.TripStartTime = &startedAt
	trip.UpdatedAt = startedAt
	trip.PickupPlace.PickLat = state.PickLat
	trip.PickupPlace.PickLng = state.PickLng
	if state.PickAddress != nil {
		trip.PickupPlace.PickAddress = *state.PickAddress
	}
}

func (s *tripService) notifyStarted(ctx context.Context, trip *models.TripRequest) {
	lookupCtx, cancel := context.WithTimeout(ctx, s.config.LookupTimeout)
	defer cancel()

	log := s.log.WithContext(ctx).WithField("request_id", trip.ID.Hex())

	var driver *models.Driver
	if trip.DriverID != nil {
		d, err := s.driverRepo.GetByID(lookupCtx, *trip.DriverID)
		if err != nil {
			log.WithError(err).Warn("Failed to load driver detail for trip notification")
		} else {
			driver = d
		}
	}

	lang := ""
	if user, err := s.userRepo.GetByID(lookupCtx, trip.UserID); err != nil {
		log.WithError(err).Warn("Failed to load rider language for trip notification")
	} else {
		lang = user.Language
	}

	view := models.NewTripRequestView(trip, driver)
	result, err := json.Marshal(view)
	if err != nil {
		log.WithError(err).Error("Failed to encode trip snapshot")
		return
	}

	title := s.localizer.Translate(lang, MsgTripStartedTitle)
	body := s.localizer.Translate(lang, MsgTripStartedBody)
	s.notifier.SendPush(trip.UserID, title, body, map[string]string{
		"notification_enum": string(models.PushEnumDriverStartedTrip),
		"result":            string(result),
	})

	event := &models.TripStatusEvent{
		Success:        true,
		SuccessMessage: models.PushEnumDriverStartedTrip,
		Result:         view,
	}
	if s.config.SocketEnabled {
		s.notifier.SendSocket(websocket.UserRoom(trip.UserID.Hex()), EventTripStatus, event)
	}
	if s.config.BusEnabled {
		s.notifier.SendBus(s.config.TripStatusTopic, event, trip.UserID.Hex())
	}
}

func startResult(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrStartConflict):
		return "conflict"
	case errors.Is(err, ErrTripNotFound), errors.Is(err, ErrInvalidOTP), errors.Is(err, ErrNotAssignedDriver),
		errors.Is(err, ErrTripAlreadyStarted), errors.Is(err, ErrTripAlreadyCompleted), errors.Is(err, ErrTripCancelled):
		return "rejected"
	default:
		return "error"
	}
}
