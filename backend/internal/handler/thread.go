package handler

import (
	"net/http"

	"github.com/itchan-dev/forum/shared/api"
	"github.com/itchan-dev/forum/shared/domain"
	"github.com/itchan-dev/forum/shared/utils"
)

func (h *Handler) GetThreads(w http.ResponseWriter, r *http.Request) {
	userId, ok := actor(w, r)
	if !ok {
		return
	}
	start, err := queryInt64(r, "start")
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	var startPtr *int
	if start != nil {
		s := int(*start)
		startPtr = &s
	}
	ids, err := h.thread.List(userId, startPtr)
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, ids)
}

func (h *Handler) GetThread(w http.ResponseWriter, r *http.Request) {
	userId, ok := actor(w, r)
	if !ok {
		return
	}
	id, err := queryInt64(r, "id")
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	thread, err := h.thread.Get(userId, id)
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, h.threadResponse(thread))
}

func (h *Handler) CreateThread(w http.ResponseWriter, r *http.Request) {
	userId, ok := actor(w, r)
	if !ok {
		return
	}
	var body api.CreateThreadRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteError(w, r, err)
		return
	}
	id, err := h.thread.Create(r.Context(), userId, domain.ThreadCreationData{
		Title:    body.Title,
		Content:  body.Content,
		IsPublic: body.IsPublic,
	})
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, api.IdResponse{Id: id})
}

func (h *Handler) UpdateThread(w http.ResponseWriter, r *http.Request) {
	userId, ok := actor(w, r)
	if !ok {
		return
	}
	var body api.UpdateThreadRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteError(w, r, err)
		return
	}
	err := h.thread.Update(r.Context(), userId, domain.ThreadUpdateData{
		Id:       body.Id,
		Title:    body.Title,
		Content:  body.Content,
		IsPublic: body.IsPublic,
		Lock:     body.Lock,
	})
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	writeOK(w)
}

func (h *Handler) DeleteThread(w http.ResponseWriter, r *http.Request) {
	userId, ok := actor(w, r)
	if !ok {
		return
	}
	var body api.IdRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteError(w, r, err)
		return
	}
	if err := h.thread.Delete(r.Context(), userId, body.Id); err != nil {
		utils.WriteError(w, r, err)
		return
	}
	writeOK(w)
}

func (h *Handler) LikeThread(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, h.thread.Like)
}

func (h *Handler) WatchThread(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, h.thread.Watch)
}
