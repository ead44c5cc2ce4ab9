package handlers

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strings"

	"github.com/dustin/go-humanize"

	"socialnet/internal/models"
	"socialnet/internal/repository"
)

// room for the text fields of a multipart post on top of the image itself
const multipartOverhead = 1 << 20

type CreatePostRequest struct {
	Title      *string `json:"title" validate:"omitempty,max=200"`
	Content    string  `json:"content" validate:"required"`
	Visibility string  `json:"visibility"`
}

type UpdatePostRequest struct {
	Title      *string `json:"title" validate:"omitempty,max=200"`
	Content    *string `json:"content"`
	Visibility *string `json:"visibility"`
}

func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	claims, ok := currentClaims(w, r)
	if !ok {
		return
	}

	var serviceReq repository.CreatePostRequest

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		req, closeFile, ok := h.readMultipartPost(w, r)
		if !ok {
			return
		}
		defer closeFile()
		serviceReq = req
	} else {
		var req CreatePostRequest
		if !h.decodeJSON(w, r, &req) {
			return
		}
		serviceReq = repository.CreatePostRequest{
			Title:      req.Title,
			Content:    req.Content,
			Visibility: req.Visibility,
		}
	}

	serviceReq.AuthorID = claims.UserID

	post, err := h.PostService.CreatePost(r.Context(), serviceReq)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, post, http.StatusCreated)
}

// readMultipartPost parses content, title, visibility and an optional image
// field. The returned func closes the uploaded file.
func (h *Handlers) readMultipartPost(w http.ResponseWriter, r *http.Request) (repository.CreatePostRequest, func(), bool) {
	var req repository.CreatePostRequest
	noop := func() {}

	// setting the size limit from the config
	r.Body = http.MaxBytesReader(w, r.Body, h.Cfg.MaxUploadSize+multipartOverhead)
	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			WriteError(w, fmt.Sprintf("Файл слишком большой (макс. %s)",
				humanize.IBytes(uint64(h.Cfg.MaxUploadSize))), http.StatusUnprocessableEntity)
		} else {
			WriteError(w, "Ошибка при обработке формы", http.StatusUnprocessableEntity)
		}
		return req, noop, false
	}

	req.Content = r.FormValue("content")
	req.Visibility = r.FormValue("visibility")
	if title := r.FormValue("title"); title != "" {
		req.Title = &title
	}

	if strings.TrimSpace(req.Content) == "" {
		WriteError(w, "Неверные данные: content (required)", http.StatusUnprocessableEntity)
		return req, noop, false
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return req, noop, true
		}
		WriteError(w, "Не удалось получить файл", http.StatusUnprocessableEntity)
		return req, noop, false
	}

	req.Image = &repository.Upload{
		FileName: header.Filename,
		Size:     header.Size,
		Body:     file,
	}

	return req, func() { file.Close() }, true
}

// ListPosts lists public posts, optionally by one author and matching q.
func (h *Handlers) ListPosts(w http.ResponseWriter, r *http.Request) {
	page, limit, ok := pagination(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	filter := models.PostFilter{
		Username: query.Get("username"),
		Search:   strings.TrimSpace(query.Get("q")),
		Page:     page,
		Limit:    limit,
	}

	posts, err := h.PostService.ListPosts(r.Context(), filter)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, posts, http.StatusOK)
}

func (h *Handlers) GetPost(w http.ResponseWriter, r *http.Request) {
	post, err := h.PostService.GetPost(r.Context(), pathParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, post, http.StatusOK)
}

func (h *Handlers) UpdatePost(w http.ResponseWriter, r *http.Request) {
	claims, ok := currentClaims(w, r)
	if !ok {
		return
	}

	var req UpdatePostRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	post, err := h.PostService.UpdatePost(r.Context(), repository.UpdatePostRequest{
		PostID:     pathParam(r, "id"),
		ActorID:    claims.UserID,
		Title:      req.Title,
		Content:    req.Content,
		Visibility: req.Visibility,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, post, http.StatusOK)
}

func (h *Handlers) DeletePost(w http.ResponseWriter, r *http.Request) {
	claims, ok := currentClaims(w, r)
	if !ok {
		return
	}

	if err := h.PostService.DeletePost(r.Context(), pathParam(r, "id"), actorFromClaims(claims)); err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeMessage(w, "Пост удален")
}
