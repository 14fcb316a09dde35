package handler

import (
	"net/http"
	"strconv"

	"github.com/itchan-dev/forum/shared/api"
	"github.com/itchan-dev/forum/shared/domain"
	"github.com/itchan-dev/forum/shared/errors"
	mw "github.com/itchan-dev/forum/shared/middleware"
	"github.com/itchan-dev/forum/shared/utils"
)

// actor returns the user resolved by the auth middleware.
func actor(w http.ResponseWriter, r *http.Request) (domain.UserId, bool) {
	userId, ok := mw.GetUserIdFromContext(r)
	if !ok {
		utils.WriteError(w, r, errors.Access("Missing authorization token"))
	}
	return userId, ok
}

// queryInt64 returns nil when the parameter is absent.
func queryInt64(r *http.Request, name string) (*int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	val, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, errors.Input("Invalid %s: must be an integer", name)
	}
	return &val, nil
}

func writeOK(w http.ResponseWriter) {
	utils.WriteJSON(w, http.StatusOK, api.EmptyResponse{})
}

func (h *Handler) threadResponse(t domain.Thread) api.ThreadResponse {
	return api.ThreadResponse{
		Id:          t.Id,
		CreatorId:   t.CreatorId,
		Title:       t.Title,
		Content:     t.Content,
		ContentHtml: h.markdown.Render(t.Content),
		IsPublic:    t.IsPublic,
		Lock:        t.Lock,
		CreatedAt:   t.CreatedAt,
		Likes:       t.Likes,
		Watchees:    t.Watchees,
	}
}

func (h *Handler) commentResponse(c domain.Comment) api.CommentResponse {
	return api.CommentResponse{
		Id:              c.Id,
		CreatorId:       c.CreatorId,
		ThreadId:        c.ThreadId,
		ParentCommentId: c.ParentCommentId,
		Content:         c.Content,
		ContentHtml:     h.markdown.Render(c.Content),
		CreatedAt:       c.CreatedAt,
		Likes:           c.Likes,
	}
}

func userResponse(u domain.User) api.UserResponse {
	return api.UserResponse{
		Id:    u.Id,
		Email: u.Email,
		Name:  u.Name,
		Image: u.Image,
		Admin: u.Admin,
	}
}
