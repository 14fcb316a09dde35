package handler

import (
	"context"

	"github.com/itchan-dev/forum/backend/internal/service"
	"github.com/itchan-dev/forum/shared/markdown"
)

// Pinger reports whether the snapshot backend is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	auth     service.AuthService
	thread   service.ThreadService
	comment  service.CommentService
	user     service.UserService
	health   Pinger
	markdown *markdown.Renderer
}

func New(auth service.AuthService, thread service.ThreadService, comment service.CommentService, user service.UserService, health Pinger, md *markdown.Renderer) *Handler {
	return &Handler{
		auth:     auth,
		thread:   thread,
		comment:  comment,
		user:     user,
		health:   health,
		markdown: md,
	}
}
