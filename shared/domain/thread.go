package domain

import "time"

type Thread struct {
	Id        ThreadId
	CreatorId UserId
	Title     string
	Content   string
	IsPublic  bool
	Lock      bool
	CreatedAt time.Time
	Likes     IdSet
	Watchees  IdSet

	// Seq is the insertion order, used to break createdAt ties.
	Seq uint64
}

// to iterate thru layers: handler -> service
type ThreadCreationData struct {
	Title    *string
	Content  *string
	IsPublic *bool
}

type ThreadUpdateData struct {
	Id       *ThreadId
	Title    *string
	Content  *string
	IsPublic *bool
	Lock     *bool
}

// Toggle is a like/watch request for a thread or a comment.
type Toggle struct {
	Id     *int64
	TurnOn *bool
}
