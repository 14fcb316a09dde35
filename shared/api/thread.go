package api

import (
	"time"

	"github.com/itchan-dev/forum/shared/domain"
)

type CreateThreadRequest struct {
	Title    *string `json:"title" validate:"required"`
	IsPublic *bool   `json:"isPublic" validate:"required"`
	Content  *string `json:"content" validate:"required"`
}

type UpdateThreadRequest struct {
	Id       *domain.ThreadId `json:"id" validate:"required"`
	Title    *string          `json:"title"`
	IsPublic *bool            `json:"isPublic"`
	Content  *string          `json:"content"`
	Lock     *bool            `json:"lock"`
}

type ThreadResponse struct {
	Id          domain.ThreadId `json:"id"`
	CreatorId   domain.UserId   `json:"creatorId"`
	Title       string          `json:"title"`
	Content     string          `json:"content"`
	ContentHtml string          `json:"contentHtml"`
	IsPublic    bool            `json:"isPublic"`
	Lock        bool            `json:"lock"`
	CreatedAt   time.Time       `json:"createdAt"`
	Likes       domain.IdSet    `json:"likes"`
	Watchees    domain.IdSet    `json:"watchees"`
}
