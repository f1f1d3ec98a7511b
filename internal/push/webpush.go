// Package push is the wire-level adapter for web push delivery.
package push

import (
	"context"
	"fmt"
	"net/http"

	webpush "github.com/SherClockHolmes/webpush-go"

	"github.com/crier-dev/crier/internal/domain"
	internal_errors "github.com/crier-dev/crier/internal/errors"
)

// Transport delivers one opaque payload to one subscription endpoint.
type Transport interface {
	Send(ctx context.Context, sub domain.PushSubscription, payload []byte) error
}

type WebPush struct {
	vapidPublicKey  string
	vapidPrivateKey string
	subscriber      string // contact email baked into the VAPID claim
	ttl             int    // seconds the push service may hold the message
}

func New(vapidPublicKey, vapidPrivateKey, subscriberEmail string) *WebPush {
	return &WebPush{
		vapidPublicKey:  vapidPublicKey,
		vapidPrivateKey: vapidPrivateKey,
		subscriber:      subscriberEmail,
		ttl:             60,
	}
}

// Send pushes the payload to a single endpoint. A 404 or 410 from the
// push service means the client unsubscribed or the registration
// expired; that is reported as EndpointGone so the caller can prune
// the registration. Anything else non-2xx is a transient failure.
func (w *WebPush) Send(ctx context.Context, sub domain.PushSubscription, payload []byte) error {
	resp, err := webpush.SendNotificationWithContext(ctx, payload, &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256dh,
			Auth:   sub.Auth,
		},
	}, &webpush.Options{
		Subscriber:      w.subscriber,
		VAPIDPublicKey:  w.vapidPublicKey,
		VAPIDPrivateKey: w.vapidPrivateKey,
		TTL:             w.ttl,
	})
	if err != nil {
		return fmt.Errorf("web push request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		return internal_errors.EndpointGone
	case resp.StatusCode >= 400:
		return fmt.Errorf("push service returned status %d", resp.StatusCode)
	}
	return nil
}
