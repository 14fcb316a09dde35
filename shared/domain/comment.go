package domain

import "time"

type Comment struct {
	Id              CommentId
	CreatorId       UserId
	ThreadId        ThreadId
	ParentCommentId *CommentId // nil for a top-level comment
	Content         string
	CreatedAt       time.Time
	Likes           IdSet
}

// to iterate thru layers: handler -> service
type CommentCreationData struct {
	ThreadId *ThreadId
	// HasParent tells an explicit null parent (top-level) apart from a missing
	// parentCommentId field.
	HasParent       bool
	ParentCommentId *CommentId
	Content         *string
}

type CommentUpdateData struct {
	Id      *CommentId
	Content *string
}
