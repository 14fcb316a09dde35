package domain

type (
	Email    = string
	Password = string
	UserId   = int64

	ThreadId  = int64
	CommentId = int64
)
