package handlers

import (
	"net/http"
)

func (h *Handlers) LikePost(w http.ResponseWriter, r *http.Request) {
	claims, ok := currentClaims(w, r)
	if !ok {
		return
	}

	created, err := h.LikeService.LikePost(r.Context(), pathParam(r, "post_id"), claims.UserID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	if !created {
		writeMessage(w, "Вы уже поставили лайк этому посту")
		return
	}

	writeMessage(w, "Лайк поставлен")
}

func (h *Handlers) UnlikePost(w http.ResponseWriter, r *http.Request) {
	claims, ok := currentClaims(w, r)
	if !ok {
		return
	}

	if err := h.LikeService.UnlikePost(r.Context(), pathParam(r, "post_id"), claims.UserID); err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeMessage(w, "Лайк снят")
}

func (h *Handlers) ListLikers(w http.ResponseWriter, r *http.Request) {
	users, err := h.LikeService.ListLikers(r.Context(), pathParam(r, "post_id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, users, http.StatusOK)
}
