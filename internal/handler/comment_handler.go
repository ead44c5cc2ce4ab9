package handlers

import (
	"net/http"

	"socialnet/internal/repository"
)

type CreateCommentRequest struct {
	Content string `json:"content" validate:"required,max=2000"`
}

func (h *Handlers) CreateComment(w http.ResponseWriter, r *http.Request) {
	claims, ok := currentClaims(w, r)
	if !ok {
		return
	}

	var req CreateCommentRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	comment, err := h.CommentService.CreateComment(r.Context(), repository.CreateCommentRequest{
		PostID:   pathParam(r, "post_id"),
		AuthorID: claims.UserID,
		Content:  req.Content,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, comment, http.StatusCreated)
}

func (h *Handlers) ListComments(w http.ResponseWriter, r *http.Request) {
	page, limit, ok := pagination(w, r)
	if !ok {
		return
	}

	comments, err := h.CommentService.ListComments(r.Context(), pathParam(r, "post_id"), page, limit)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, comments, http.StatusOK)
}

func (h *Handlers) DeleteComment(w http.ResponseWriter, r *http.Request) {
	claims, ok := currentClaims(w, r)
	if !ok {
		return
	}

	if err := h.CommentService.DeleteComment(r.Context(), pathParam(r, "id"), actorFromClaims(claims)); err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeMessage(w, "Комментарий удален")
}
