package domain

import "time"

type CommentCreationData struct {
	Post    PostId
	Author  UserId
	Message CommentMsg
}

type Comment struct {
	Id        CommentId  `json:"comment_id"`
	Post      PostId     `json:"post_id"`
	Author    UserId     `json:"comment_author"`
	Message   CommentMsg `json:"comment_message"`
	CreatedAt time.Time  `json:"comment_date"`
	Upvotes   int        `json:"comment_upvotes"`

	// Viewer-specific flag, never persisted.
	Upvoted bool `json:"upvoted"`
}
