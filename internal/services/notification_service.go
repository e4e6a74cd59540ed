package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tripbid/internal/observability"
	"tripbid/internal/repositories/interfaces"
	"tripbid/pkg/logger"
	"tripbid/pkg/push"
	"tripbid/pkg/worker"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NotificationService fans trip events out to push, socket and bus channels.
// Every method is fire-and-forget: delivery runs on the worker pool after the
// call returns and failures are only logged.
type NotificationService interface {
	SendPush(userID primitive.ObjectID, title, body string, data map[string]string)
	SendSocket(channel, event string, payload interface{})
	SendBus(topic string, payload interface{}, partitionKey string)
}

type PushSender interface {
	Send(ctx context.Context, platform string, request *push.NotificationRequest) (*push.NotificationResponse, error)
}

type SocketSender interface {
	SendToRoom(roomID, eventType string, payload interface{}) (int, error)
}

type BusPublisher interface {
	Publish(ctx context.Context, topic string, key string, payload interface{}) error
}

var errNoDeviceToken = errors.New("user has no device token")

type NotificationConfig struct {
	Timeout time.Duration
}

type notificationService struct {
	pool     *worker.Pool
	userRepo interfaces.UserRepository
	push     PushSender
	socket   SocketSender
	bus      BusPublisher
	config   NotificationConfig
	log      *logger.Logger
}

// NewNotificationService wires the delivery channels. socket and bus may be
// nil, in which case the corresponding sends are no-ops.
func NewNotificationService(
	pool *worker.Pool,
	userRepo interfaces.UserRepository,
	pushSender PushSender,
	socket SocketSender,
	bus BusPublisher,
	config NotificationConfig,
	log *logger.Logger,
) NotificationService {
	return &notificationService{
		pool:     pool,
		userRepo: userRepo,
		push:     pushSender,
		socket:   socket,
		bus:      bus,
		config:   config,
		log:      log,
	}
}

func (s *notificationService) SendPush(userID primitive.ObjectID, title, body string, data map[string]string) {
	if s.push == nil {
		return
	}

	s.submit("push", func(ctx context.Context) error {
		err := s.deliverPush(ctx, userID, title, body, data)
		observability.NotificationsTotal.WithLabelValues("push", observability.Result(err)).Inc()
		if err != nil {
			return fmt.Errorf("push to user %s: %w", userID.Hex(), err)
		}
		return nil
	})
}

func (s *notificationService) deliverPush(ctx context.Context, userID primitive.ObjectID, title, body string, data map[string]string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.DeviceToken == "" {
		return errNoDeviceToken
	}

	request := &push.NotificationRequest{
		Token:    user.DeviceToken,
		Title:    title,
		Body:     body,
		Data:     data,
		Sound:    "default",
		Priority: "high",
		Android:  &push.AndroidConfig{Priority: "high", Sound: "default"},
	}

	_, err = s.push.Send(ctx, string(user.DevicePlatform), request)
	return err
}

func (s *notificationService) SendSocket(channel, event string, payload interface{}) {
	if s.socket == nil {
		return
	}

	s.submit("socket", func(ctx context.Context) error {
		_, err := s.socket.SendToRoom(channel, event, payload)
		observability.NotificationsTotal.WithLabelValues("socket", observability.Result(err)).Inc()
		return err
	})
}

func (s *notificationService) SendBus(topic string, payload interface{}, partitionKey string) {
	if s.bus == nil {
		return
	}

	s.submit("bus", func(ctx context.Context) error {
		err := s.bus.Publish(ctx, topic, partitionKey, payload)
		observability.NotificationsTotal.WithLabelValues("bus", observability.Result(err)).Inc()
		return err
	})
}

func (s *notificationService) submit(channel string, run func(ctx context.Context) error) {
	queued := s.pool.Submit(worker.Job{
		Name:    "notify_" + channel,
		Timeout: s.config.Timeout,
		Run:     run,
	})
	if !queued {
		observability.NotificationsTotal.WithLabelValues(channel, "dropped").Inc()
	}
}
