package handlers

import (
	"net/http"

	"socialnet/internal/repository"
)

type UpdateProfileRequest struct {
	DisplayName *string `json:"displayName" validate:"omitempty,max=100"`
	Bio         *string `json:"bio" validate:"omitempty,max=500"`
	AvatarURL   *string `json:"avatarUrl" validate:"omitempty,url,max=500"`
}

func (h *Handlers) GetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.UserService.GetProfile(r.Context(), pathParam(r, "username"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, profile, http.StatusOK)
}

func (h *Handlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	claims, ok := currentClaims(w, r)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	user, err := h.UserService.UpdateProfile(r.Context(), repository.UpdateProfileRequest{
		UserID:      claims.UserID,
		DisplayName: req.DisplayName,
		Bio:         req.Bio,
		AvatarURL:   req.AvatarURL,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, user, http.StatusOK)
}

func (h *Handlers) Follow(w http.ResponseWriter, r *http.Request) {
	claims, ok := currentClaims(w, r)
	if !ok {
		return
	}

	username := pathParam(r, "username")

	created, err := h.UserService.Follow(r.Context(), claims.UserID, username)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	if !created {
		writeMessage(w, "Вы уже подписаны на "+username)
		return
	}

	writeMessage(w, "Вы подписались на "+username)
}

func (h *Handlers) Unfollow(w http.ResponseWriter, r *http.Request) {
	claims, ok := currentClaims(w, r)
	if !ok {
		return
	}

	username := pathParam(r, "username")

	if err := h.UserService.Unfollow(r.Context(), claims.UserID, username); err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeMessage(w, "Вы отписались от "+username)
}

func (h *Handlers) ListFollowers(w http.ResponseWriter, r *http.Request) {
	page, limit, ok := pagination(w, r)
	if !ok {
		return
	}

	users, err := h.UserService.ListFollowers(r.Context(), pathParam(r, "username"), page, limit)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, users, http.StatusOK)
}

func (h *Handlers) ListFollowing(w http.ResponseWriter, r *http.Request) {
	page, limit, ok := pagination(w, r)
	if !ok {
		return
	}

	users, err := h.UserService.ListFollowing(r.Context(), pathParam(r, "username"), page, limit)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, users, http.StatusOK)
}

// ListUsers is the admin-only user listing.
func (h *Handlers) ListUsers(w http.ResponseWriter, r *http.Request) {
	page, limit, ok := pagination(w, r)
	if !ok {
		return
	}

	users, err := h.UserService.ListUsers(r.Context(), page, limit)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, users, http.StatusOK)
}
