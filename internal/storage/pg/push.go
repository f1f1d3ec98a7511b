package pg

import (
	"fmt"

	"github.com/crier-dev/crier/internal/domain"
)

// SavePushSubscription registers a push endpoint for a user. Repeating
// the same registration is a no-op.
func (s *Storage) SavePushSubscription(sub domain.PushSubscription) error {
	_, err := s.db.Exec(`
        INSERT INTO push_subscriptions (user_id, endpoint, p256dh, auth)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (user_id, endpoint) DO NOTHING
    `, sub.UserId, sub.Endpoint, sub.P256dh, sub.Auth)
	if err != nil {
		return fmt.Errorf("failed to save push subscription: %w", err)
	}
	return nil
}

// DeletePushSubscription removes a registration. Removing one that is
// already gone is not an error: fan-out prunes dead endpoints
// concurrently with users unsubscribing.
func (s *Storage) DeletePushSubscription(userId domain.UserId, endpoint string) error {
	_, err := s.db.Exec(`
        DELETE FROM push_subscriptions WHERE user_id = $1 AND endpoint = $2
    `, userId, endpoint)
	if err != nil {
		return fmt.Errorf("failed to delete push subscription: %w", err)
	}
	return nil
}

func (s *Storage) UserPushSubscriptions(userId domain.UserId) ([]domain.PushSubscription, error) {
	rows, err := s.db.Query(`
        SELECT id, user_id, endpoint, p256dh, auth, created
        FROM push_subscriptions
        WHERE user_id = $1
    `, userId)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch push subscriptions: %w", err)
	}
	defer rows.Close()

	var subs []domain.PushSubscription
	for rows.Next() {
		var sub domain.PushSubscription
		if err := rows.Scan(&sub.Id, &sub.UserId, &sub.Endpoint, &sub.P256dh, &sub.Auth, &sub.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan push subscription: %w", err)
		}
		subs = append(subs, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return subs, nil
}
