package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tripbid/internal/models"
	"tripbid/internal/observability"
	"tripbid/internal/repositories/interfaces"
	"tripbid/internal/utils"
	"tripbid/pkg/logger"
	"tripbid/pkg/realtime"
	"tripbid/pkg/worker"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BidService interface {
	// SubmitBid updates the bid named by cmd.BidID, or creates a new one when
	// the id is empty or unknown, then mirrors it for live observers. Any
	// failure is reported as ErrBidUnknown.
	SubmitBid(ctx context.Context, cmd *models.SubmitBidCommand) (*models.BidResult, error)
}

type BidServiceConfig struct {
	MirrorPathPrefix string
	MirrorTimeout    time.Duration
	Location         *time.Location
}

type bidService struct {
	bidRepo interfaces.TripBidRepository
	mirror  realtime.Mirror
	pool    *worker.Pool
	config  BidServiceConfig
	log     *logger.Logger
}

func NewBidService(
	bidRepo interfaces.TripBidRepository,
	mirror realtime.Mirror,
	pool *worker.Pool,
	config BidServiceConfig,
	log *logger.Logger,
) BidService {
	if config.Location == nil {
		config.Location = time.UTC
	}
	return &bidService{
		bidRepo: bidRepo,
		mirror:  mirror,
		pool:    pool,
		config:  config,
		log:     log,
	}
}

func (s *bidService) SubmitBid(ctx context.Context, cmd *models.SubmitBidCommand) (*models.BidResult, error) {
	bid, updated, err := s.resolveBid(ctx, cmd.BidID)
	if err != nil {
		return nil, s.fail(ctx, "created", err)
	}

	mode := "created"
	if updated {
		mode = "updated"
	}

	bid.UserID = cmd.UserID
	bid.RequestID = cmd.RequestID
	bid.DriverID = cmd.DriverID
	bid.DefaultPrice = cmd.DefaultPrice
	bid.BidPrice = cmd.BidPrice

	if err := s.bidRepo.Upsert(ctx, bid); err != nil {
		return nil, s.fail(ctx, mode, err)
	}

	observability.BidSubmissionsTotal.WithLabelValues(mode, "ok").Inc()
	s.log.WithContext(ctx).LogBidEvent(bid.ID, "bid_"+mode, map[string]interface{}{
		"request_id": bid.RequestID.Hex(),
		"driver_id":  bid.DriverID.Hex(),
		"bid_price":  bid.BidPrice,
	})

	s.mirrorBid(bid)

	return &models.BidResult{
		BidID:              bid.ID.Hex(),
		UserID:             bid.UserID.Hex(),
		RequestID:          bid.RequestID.Hex(),
		DriverID:           bid.DriverID.Hex(),
		DefaultPrice:       bid.DefaultPrice,
		BidPrice:           bid.BidPrice,
		ConvertedUpdatedAt: utils.FormatDisplayTime(bid.UpdatedAt, s.config.Location),
		ConvertedCreatedAt: utils.FormatDisplayTime(bid.CreatedAt, s.config.Location),
		Updated:            updated,
	}, nil
}

// resolveBid returns the stored bid for rawID, or a fresh one when rawID is
// empty, malformed or unknown.
func (s *bidService) resolveBid(ctx context.Context, rawID string) (*models.TripBid, bool, error) {
	if rawID == "" {
		return &models.TripBid{}, false, nil
	}

	id, err := primitive.ObjectIDFromHex(rawID)
	if err != nil {
		return &models.TripBid{}, false, nil
	}

	bid, err := s.bidRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return &models.TripBid{}, false, nil
		}
		return nil, false, fmt.Errorf("failed to load bid: %w", err)
	}
	return bid, true, nil
}

func (s *bidService) mirrorBid(bid *models.TripBid) {
	path := realtime.Path(s.config.MirrorPathPrefix, bid.RequestID.Hex())
	fields := map[string]interface{}{
		"driver_id":     bid.DriverID.Hex(),
		"request_id":    bid.RequestID.Hex(),
		"user_id":       bid.UserID.Hex(),
		"default_price": bid.DefaultPrice,
		"bid_price":     bid.BidPrice,
		"is_accepted":   0,
		"updated_at":    realtime.ServerTimestamp,
	}

	queued := s.pool.Submit(worker.Job{
		Name:    "mirror_bid",
		Timeout: s.config.MirrorTimeout,
		Run: func(ctx context.Context) error {
			err := s.mirror.SetPath(ctx, path, fields)
			observability.MirrorWritesTotal.WithLabelValues(observability.Result(err)).Inc()
			if err != nil {
				return fmt.Errorf("mirror bid %s at %s: %w", bid.ID.Hex(), path, err)
			}
			return nil
		},
	})
	if !queued {
		observability.MirrorWritesTotal.WithLabelValues("dropped").Inc()
	}
}

func (s *bidService) fail(ctx context.Context, mode string, err error) error {
	observability.BidSubmissionsTotal.WithLabelValues(mode, "error").Inc()
	s.log.WithContext(ctx).WithError(err).Error("Failed to submit bid")
	return ErrBidUnknown
}
