package domain

import "time"

type PostCreationData struct {
	Board       BoardId
	Subject     PostSubject
	Description string
	Author      UserId
}

type PostMetadata struct {
	Id          PostId      `json:"post_id"`
	Board       BoardId     `json:"board_id"`
	Subject     PostSubject `json:"post_subject"`
	Description string      `json:"post_description"`
	Author      UserId      `json:"post_author"`
	CreatedAt   time.Time   `json:"post_date"`

	// Vote state. Upvotes is a cached derivative of the voter set and
	// equals its size for any post that has not been notified yet.
	// Once Notified flips to true both are frozen.
	Upvotes      int       `json:"post_upvotes"`
	Notified     bool      `json:"post_notified"`
	LastActivity time.Time `json:"last_activity"`

	// Upvoted is a viewer-specific flag. Never persisted.
	Upvoted bool `json:"upvoted"`
}

type Post struct {
	PostMetadata
	Comments []Comment `json:"post_comments,omitempty"`
}

// VoteResult is what a toggle returns: the fresh count and whether the
// voter is a member of the voter set after the toggle.
type VoteResult struct {
	Upvotes int  `json:"upvotes"`
	Voted   bool `json:"voted"`
}
