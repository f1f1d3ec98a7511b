package domain

import (
	"time"
)

// to iterate thru layers: handler -> service -> storage
type BoardCreationData struct {
	Name          BoardName
	Description   string
	VoteThreshold int
	CreatedBy     UserId
}

type BoardMetadata struct {
	Id            BoardId   `json:"board_id"`
	Name          BoardName `json:"board_name"`
	Description   string    `json:"board_description"`
	VoteThreshold int       `json:"board_vote_threshold"`
	MemberCount   int       `json:"board_member_count"`
	CreatedBy     UserId    `json:"created_by"`
	CreatedAt     time.Time `json:"board_date"`

	// Subscribed is a viewer-specific flag, filled in relative to the
	// requesting user. Never persisted.
	Subscribed bool `json:"subscribed"`
}

type Board struct {
	BoardMetadata
	Posts []Post `json:"board_posts,omitempty"`
}
