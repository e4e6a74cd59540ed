package push

import (
	"context"
	"fmt"
	"time"

	"github.com/sideshow/apns2"
	"github.com/sideshow/apns2/payload"
	"github.com/sideshow/apns2/token"
)

type APNSConfig struct {
	KeyFile    string
	KeyID      string
	TeamID     string
	BundleID   string
	Production bool
}

// APNSProvider delivers directly to iOS devices with token based auth.
type APNSProvider struct {
	client *apns2.Client
	topic  string
}

func NewAPNSProvider(config APNSConfig) (*APNSProvider, error) {
	authKey, err := token.AuthKeyFromFile(config.KeyFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load apns auth key: %w", err)
	}

	client := apns2.NewTokenClient(&token.Token{
		AuthKey: authKey,
		KeyID:   config.KeyID,
		TeamID:  config.TeamID,
	})
	if config.Production {
		client = client.Production()
	} else {
		client = client.Development()
	}

	return &APNSProvider{client: client, topic: config.BundleID}, nil
}

func (a *APNSProvider) SendNotification(ctx context.Context, request *NotificationRequest) (*NotificationResponse, error) {
	response, err := a.client.PushWithContext(ctx, a.buildNotification(request))
	if err != nil {
		return &NotificationResponse{Error: err.Error(), Token: request.Token}, err
	}
	if !response.Sent() {
		return &NotificationResponse{Error: response.Reason, Token: request.Token},
			fmt.Errorf("apns rejected notification (%d): %s", response.StatusCode, response.Reason)
	}

	return &NotificationResponse{MessageID: response.ApnsID, Success: true, Token: request.Token}, nil
}

func (a *APNSProvider) buildNotification(request *NotificationRequest) *apns2.Notification {
	body := payload.NewPayload()
	if request.Title != "" {
		body.AlertTitle(request.Title)
	}
	if request.Body != "" {
		body.AlertBody(request.Body)
	}
	if request.Sound != "" {
		body.Sound(request.Sound)
	}
	for key, value := range request.Data {
		body.Custom(key, value)
	}

	notification := &apns2.Notification{
		DeviceToken: request.Token,
		Topic:       a.topic,
		PushType:    apns2.PushTypeAlert,
		Payload:     body,
		Priority:    apns2.PriorityLow,
	}
	if request.Priority == "high" {
		notification.Priority = apns2.PriorityHigh
	}
	if request.TTL > 0 {
		notification.Expiration = time.Now().Add(time.Duration(request.TTL) * time.Second)
	}

	return notification
}
