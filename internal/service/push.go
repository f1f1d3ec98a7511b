package service

import (
	"net/http"

	"github.com/crier-dev/crier/internal/domain"
	"github.com/crier-dev/crier/internal/errors"
)

type PushService interface {
	PublicKey() (string, error)
	Subscribe(userId domain.UserId, sub domain.PushSubscription, subscribe bool) error
}

// Push manages client push registrations. Delivery itself lives in the
// Notifier; this only handles the registration lifecycle.
type Push struct {
	storage        PushStorage
	vapidPublicKey string
}

type PushStorage interface {
	SavePushSubscription(sub domain.PushSubscription) error
	DeletePushSubscription(userId domain.UserId, endpoint string) error
}

func NewPush(storage PushStorage, vapidPublicKey string) PushService {
	return &Push{storage, vapidPublicKey}
}

// PublicKey returns the VAPID public key clients need to register.
// A server without keys configured cannot do push at all, so the
// caller gets a 503 rather than an empty key.
func (p *Push) PublicKey() (string, error) {
	if p.vapidPublicKey == "" {
		return "", &errors.ErrorWithStatusCode{Message: "Server does not have a valid VAPID public key", StatusCode: http.StatusServiceUnavailable}
	}
	return p.vapidPublicKey, nil
}

func (p *Push) Subscribe(userId domain.UserId, sub domain.PushSubscription, subscribe bool) error {
	if sub.Endpoint == "" {
		return &errors.ErrorWithStatusCode{Message: "Invalid subscription", StatusCode: http.StatusBadRequest}
	}
	sub.UserId = userId
	if subscribe {
		return p.storage.SavePushSubscription(sub)
	}
	return p.storage.DeletePushSubscription(userId, sub.Endpoint)
}
