package handler

import (
	"context"
	"net/http"

	"github.com/itchan-dev/forum/shared/api"
	"github.com/itchan-dev/forum/shared/domain"
	"github.com/itchan-dev/forum/shared/utils"
)

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	userId, ok := actor(w, r)
	if !ok {
		return
	}
	id, err := queryInt64(r, "userId")
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	user, err := h.user.Get(userId, id)
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, userResponse(user))
}

func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	userId, ok := actor(w, r)
	if !ok {
		return
	}
	var body api.UpdateUserRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteError(w, r, err)
		return
	}
	err := h.user.Update(r.Context(), userId, domain.UserUpdateData{
		Email:    body.Email,
		Password: body.Password,
		Name:     body.Name,
		Image:    body.Image,
	})
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	writeOK(w)
}

func (h *Handler) SetAdmin(w http.ResponseWriter, r *http.Request) {
	userId, ok := actor(w, r)
	if !ok {
		return
	}
	var body api.SetAdminRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteError(w, r, err)
		return
	}
	if err := h.user.SetAdmin(r.Context(), userId, domain.Toggle{Id: body.UserId, TurnOn: body.TurnOn}); err != nil {
		utils.WriteError(w, r, err)
		return
	}
	writeOK(w)
}

// toggle serves the like and watch endpoints.
func (h *Handler) toggle(w http.ResponseWriter, r *http.Request, apply func(ctx context.Context, actor domain.UserId, toggle domain.Toggle) error) {
	userId, ok := actor(w, r)
	if !ok {
		return
	}
	var body api.ToggleRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteError(w, r, err)
		return
	}
	if err := apply(r.Context(), userId, domain.Toggle{Id: body.Id, TurnOn: body.TurnOn}); err != nil {
		utils.WriteError(w, r, err)
		return
	}
	writeOK(w)
}
