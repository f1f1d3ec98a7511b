package domain

type (
	Username = string
	Password = string
	UserId   = int64

	BoardId   = int64
	BoardName = string

	PostId      = int64
	PostSubject = string

	CommentId  = int64
	CommentMsg = string
)
