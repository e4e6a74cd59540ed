package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"tripbid/internal/models"
	"tripbid/pkg/logger"
	"tripbid/pkg/realtime"
	"tripbid/pkg/worker"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type bidFixture struct {
	repo    *fakeBidRepo
	mirror  *fakeMirror
	pool    *worker.Pool
	service BidService
}

func newBidFixture(t *testing.T) *bidFixture {
	t.Helper()

	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		t.Skipf("timezone data unavailable: %v", err)
	}

	repo := newFakeBidRepo()
	mirror := &fakeMirror{}
	pool := worker.NewPool(worker.Config{Workers: 1, QueueSize: 8}, logger.Discard())
	t.Cleanup(pool.Close)

	service := NewBidService(repo, mirror, pool, BidServiceConfig{
		MirrorPathPrefix: "trip-bids",
		MirrorTimeout:    time.Second,
		Location:         loc,
	}, logger.Discard())

	return &bidFixture{repo: repo, mirror: mirror, pool: pool, service: service}
}

func bidCommand(bidID string, price float64) *models.SubmitBidCommand {
	return &models.SubmitBidCommand{
		BidID:        bidID,
		UserID:       primitive.NewObjectID(),
		RequestID:    primitive.NewObjectID(),
		DriverID:     primitive.NewObjectID(),
		DefaultPrice: 100,
		BidPrice:     price,
	}
}

func TestSubmitBidCreates(t *testing.T) {
	f := newBidFixture(t)
	cmd := bidCommand("", 120)

	result, err := f.service.SubmitBid(context.Background(), cmd)
	if err != nil {
		t.Fatalf("SubmitBid() error = %v", err)
	}

	if result.Updated {
		t.Error("new bid reported as updated")
	}
	if result.BidID == "" || result.RequestID != cmd.RequestID.Hex() || result.BidPrice != 120 {
		t.Errorf("result = %+v", result)
	}
	// 14:05 UTC is 19:35 in Asia/Kolkata.
	if result.ConvertedCreatedAt != "09 Mar 2024 07:35 PM" {
		t.Errorf("converted_created_at = %q", result.ConvertedCreatedAt)
	}
	if f.repo.count() != 1 {
		t.Errorf("stored bids = %d, want 1", f.repo.count())
	}
}

func TestSubmitBidUpdatesExisting(t *testing.T) {
	f := newBidFixture(t)

	first, err := f.service.SubmitBid(context.Background(), bidCommand("", 120))
	if err != nil {
		t.Fatalf("first SubmitBid() error = %v", err)
	}

	second, err := f.service.SubmitBid(context.Background(), bidCommand(first.BidID, 135))
	if err != nil {
		t.Fatalf("second SubmitBid() error = %v", err)
	}

	if !second.Updated {
		t.Error("resubmission with a known id should be an update")
	}
	if second.BidID != first.BidID {
		t.Errorf("bid id changed from %s to %s", first.BidID, second.BidID)
	}
	if second.BidPrice != 135 {
		t.Errorf("bid price = %v, want 135", second.BidPrice)
	}
	if f.repo.count() != 1 {
		t.Errorf("stored bids = %d, want 1", f.repo.count())
	}
}

func TestSubmitBidUnknownIDCreates(t *testing.T) {
	for _, id := range []string{"not-an-object-id", primitive.NewObjectID().Hex()} {
		t.Run(id, func(t *testing.T) {
			f := newBidFixture(t)

			result, err := f.service.SubmitBid(context.Background(), bidCommand(id, 90))
			if err != nil {
				t.Fatalf("SubmitBid() error = %v", err)
			}
			if result.Updated {
				t.Error("unknown id should fall back to create")
			}
			if result.BidID == id {
				t.Error("created bid should get a fresh id")
			}
		})
	}
}

func TestSubmitBidMirrorsLatestBid(t *testing.T) {
	f := newBidFixture(t)
	cmd := bidCommand("", 120)

	first, err := f.service.SubmitBid(context.Background(), cmd)
	if err != nil {
		t.Fatalf("SubmitBid() error = %v", err)
	}
	update := bidCommand(first.BidID, 140)
	update.RequestID = cmd.RequestID
	if _, err := f.service.SubmitBid(context.Background(), update); err != nil {
		t.Fatalf("SubmitBid() error = %v", err)
	}
	f.pool.Close()

	write, ok := f.mirror.latest()
	if !ok {
		t.Fatal("no mirror write")
	}
	if write.path != "trip-bids/"+cmd.RequestID.Hex() {
		t.Errorf("path = %q", write.path)
	}
	if write.fields["bid_price"] != 140.0 {
		t.Errorf("mirrored bid_price = %v, want latest 140", write.fields["bid_price"])
	}
	if write.fields["is_accepted"] != 0 {
		t.Errorf("is_accepted = %v, want 0", write.fields["is_accepted"])
	}
	if write.fields["updated_at"] != realtime.ServerTimestamp {
		t.Errorf("updated_at should be the server timestamp sentinel")
	}
}

func TestSubmitBidMirrorFailureIsIgnored(t *testing.T) {
	f := newBidFixture(t)
	f.mirror.err = errStoreDown

	if _, err := f.service.SubmitBid(context.Background(), bidCommand("", 120)); err != nil {
		t.Fatalf("SubmitBid() error = %v, mirror failures must not surface", err)
	}
}

func TestSubmitBidStoreFailures(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*fakeBidRepo)
		bidID string
	}{
		{name: "upsert fails", setup: func(r *fakeBidRepo) { r.upsertErr = errStoreDown }},
		{name: "lookup fails", setup: func(r *fakeBidRepo) { r.getErr = errStoreDown }, bidID: primitive.NewObjectID().Hex()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newBidFixture(t)
			tt.setup(f.repo)

			result, err := f.service.SubmitBid(context.Background(), bidCommand(tt.bidID, 120))
			if !errors.Is(err, ErrBidUnknown) {
				t.Fatalf("SubmitBid() error = %v, want ErrBidUnknown", err)
			}
			if errors.Is(err, errStoreDown) {
				t.Error("store error detail leaked through")
			}
			if result != nil {
				t.Errorf("result = %+v, want nil", result)
			}
			f.pool.Close()
			if _, ok := f.mirror.latest(); ok {
				t.Error("failed submission should not be mirrored")
			}
		})
	}
}
