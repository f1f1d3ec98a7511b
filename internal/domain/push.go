package domain

import "time"

// PushSubscription holds one browser push registration for a user.
// Endpoint plus the p256dh/auth key pair is everything the web push
// protocol needs to address a single client.
type PushSubscription struct {
	Id        int64     `json:"id"`
	UserId    UserId    `json:"user_id"`
	Endpoint  string    `json:"endpoint"`
	P256dh    string    `json:"p256dh"`
	Auth      string    `json:"auth"`
	CreatedAt time.Time `json:"created_at"`
}

// PushPayload is the message delivered to every subscriber when a post
// crosses its board's vote threshold.
type PushPayload struct {
	Username  Username  `json:"username"`
	BoardName BoardName `json:"board_name"`
	Message   string    `json:"message"`
}
