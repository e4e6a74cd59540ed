package push

import (
	"context"
	"errors"
)

var ErrNoProvider = errors.New("no push provider configured")

// Router sends through the provider registered for a device platform and
// falls back to Default for unknown platforms.
type Router struct {
	Default    PushProvider
	ByPlatform map[string]PushProvider
}

func (r *Router) Send(ctx context.Context, platform string, request *NotificationRequest) (*NotificationResponse, error) {
	provider := r.Default
	if p, ok := r.ByPlatform[platform]; ok && p != nil {
		provider = p
	}
	if provider == nil {
		return nil, ErrNoProvider
	}
	return provider.SendNotification(ctx, request)
}
