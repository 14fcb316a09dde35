package api

import (
	"encoding/json"
	"time"

	"github.com/itchan-dev/forum/shared/domain"
)

type CreateCommentRequest struct {
	ThreadId        *domain.ThreadId `json:"threadId" validate:"required"`
	ParentCommentId NullableId       `json:"parentCommentId"`
	Content         *string          `json:"content" validate:"required"`
}

type UpdateCommentRequest struct {
	Id      *domain.CommentId `json:"id" validate:"required"`
	Content *string           `json:"content"`
}

type CommentResponse struct {
	Id              domain.CommentId  `json:"id"`
	CreatorId       domain.UserId     `json:"creatorId"`
	ThreadId        domain.ThreadId   `json:"threadId"`
	ParentCommentId *domain.CommentId `json:"parentCommentId"`
	Content         string            `json:"content"`
	ContentHtml     string            `json:"contentHtml"`
	CreatedAt       time.Time         `json:"createdAt"`
	Likes           domain.IdSet      `json:"likes"`
}

// NullableId tells a key set to null apart from a key that is absent.
type NullableId struct {
	Present bool
	Id      *int64
}

func (n *NullableId) UnmarshalJSON(data []byte) error {
	n.Present = true
	n.Id = nil
	if string(data) == "null" {
		return nil
	}
	var id int64
	if err := json.Unmarshal(data, &id); err != nil {
		return err
	}
	n.Id = &id
	return nil
}
