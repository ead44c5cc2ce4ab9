package handlers

import (
	"net/http"
)

func (h *Handlers) Feed(w http.ResponseWriter, r *http.Request) {
	claims, ok := currentClaims(w, r)
	if !ok {
		return
	}

	page, limit, ok := pagination(w, r)
	if !ok {
		return
	}

	posts, err := h.FeedService.GetFeed(r.Context(), claims.UserID, page, limit)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, posts, http.StatusOK)
}
