package handler

import (
	"net/http"

	"github.com/itchan-dev/forum/shared/api"
	"github.com/itchan-dev/forum/shared/domain"
	"github.com/itchan-dev/forum/shared/utils"
)

func (h *Handler) GetComments(w http.ResponseWriter, r *http.Request) {
	userId, ok := actor(w, r)
	if !ok {
		return
	}
	threadId, err := queryInt64(r, "threadId")
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	comments, err := h.comment.List(userId, threadId)
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	resp := make([]api.CommentResponse, 0, len(comments))
	for _, c := range comments {
		resp = append(resp, h.commentResponse(c))
	}
	utils.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) CreateComment(w http.ResponseWriter, r *http.Request) {
	userId, ok := actor(w, r)
	if !ok {
		return
	}
	var body api.CreateCommentRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteError(w, r, err)
		return
	}
	id, err := h.comment.Create(r.Context(), userId, domain.CommentCreationData{
		ThreadId:        body.ThreadId,
		HasParent:       body.ParentCommentId.Present,
		ParentCommentId: body.ParentCommentId.Id,
		Content:         body.Content,
	})
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, api.IdResponse{Id: id})
}

func (h *Handler) UpdateComment(w http.ResponseWriter, r *http.Request) {
	userId, ok := actor(w, r)
	if !ok {
		return
	}
	var body api.UpdateCommentRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteError(w, r, err)
		return
	}
	if err := h.comment.Update(r.Context(), userId, domain.CommentUpdateData{Id: body.Id, Content: body.Content}); err != nil {
		utils.WriteError(w, r, err)
		return
	}
	writeOK(w)
}

func (h *Handler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	userId, ok := actor(w, r)
	if !ok {
		return
	}
	var body api.IdRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteError(w, r, err)
		return
	}
	if err := h.comment.Delete(r.Context(), userId, body.Id); err != nil {
		utils.WriteError(w, r, err)
		return
	}
	writeOK(w)
}

func (h *Handler) LikeComment(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, h.comment.Like)
}
