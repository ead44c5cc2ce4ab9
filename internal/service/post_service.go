package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"socialnet/internal/config"
	"socialnet/internal/events"
	"socialnet/internal/models"
	"socialnet/internal/repository"
	"socialnet/internal/storage"
)

const maxTitleLength = 200

type PostService interface {
	CreatePost(ctx context.Context, req repository.CreatePostRequest) (*models.Post, error)
	ListPosts(ctx context.Context, filter models.PostFilter) ([]*models.Post, error)
	GetPost(ctx context.Context, postID string) (*models.Post, error)
	UpdatePost(ctx context.Context, req repository.UpdatePostRequest) (*models.Post, error)
	DeletePost(ctx context.Context, postID string, actor Actor) error
}

type postService struct {
	postRepo repository.PostRepository
	storage  storage.Storage
	events   events.Publisher
	cfg      *config.Config
}

func NewPostService(postRepo repository.PostRepository, storage storage.Storage, publisher events.Publisher, cfg *config.Config) PostService {
	return &postService{
		postRepo: postRepo,
		storage:  storage,
		events:   publisher,
		cfg:      cfg,
	}
}

func validatePostFields(title *string, content string, visibility string) error {
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("%w: текст поста не может быть пустым", ErrValidation)
	}
	if title != nil && utf8.RuneCountInString(*title) > maxTitleLength {
		return fmt.Errorf("%w: заголовок длиннее %d символов", ErrValidation, maxTitleLength)
	}
	if !models.ValidVisibility(visibility) {
		return fmt.Errorf("%w: видимость должна быть public, followers или private", ErrValidation)
	}
	return nil
}

func (p *postService) CreatePost(ctx context.Context, req repository.CreatePostRequest) (*models.Post, error) {
	if req.Visibility == "" {
		req.Visibility = models.VisibilityPublic
	}

	if err := validatePostFields(req.Title, req.Content, req.Visibility); err != nil {
		return nil, err
	}

	post := &models.Post{
		AuthorID:   req.AuthorID,
		Title:      req.Title,
		Content:    req.Content,
		Visibility: req.Visibility,
	}

	if req.Image != nil {
		imageURL, err := p.saveImage(ctx, req.Image)
		if err != nil {
			return nil, err
		}
		post.ImageURL = &imageURL
	}

	err := p.postRepo.Create(ctx, post)
	if err != nil {
		if post.ImageURL != nil {
			p.deleteImage(ctx, *post.ImageURL)
		}
		return nil, notFound(err, "автор")
	}

	publish(p.events, events.PostCreated, events.PostEvent{
		PostID:     post.PostID,
		AuthorID:   post.AuthorID,
		Visibility: post.Visibility,
		OccurredAt: post.CreatedAt,
	})

	return post, nil
}

func (p *postService) saveImage(ctx context.Context, upload *repository.Upload) (string, error) {
	if p.storage == nil {
		return "", fmt.Errorf("%w: загрузка изображений отключена", ErrValidation)
	}

	image, err := storage.ReadImage(upload.Body, p.cfg.MaxUploadSize)
	if err != nil {
		if errors.Is(err, storage.ErrInvalidImage) {
			return "", fmt.Errorf("%w: %v", ErrValidation, err)
		}
		return "", err
	}

	fileName := uuid.New().String() + image.Extension

	imageURL, err := p.storage.UploadImage(ctx, fileName, bytes.NewReader(image.Data), image.Size(), image.ContentType)
	if err != nil {
		return "", fmt.Errorf("ошибка загрузки изображения: %w", err)
	}

	return imageURL, nil
}

func (p *postService) deleteImage(ctx context.Context, imageURL string) {
	if p.storage == nil {
		return
	}
	if err := p.storage.DeleteImage(ctx, imageURL); err != nil {
		log.Printf("Предупреждение: не удалось удалить изображение %s: %v", imageURL, err)
	}
}

func (p *postService) ListPosts(ctx context.Context, filter models.PostFilter) ([]*models.Post, error) {
	return p.postRepo.ListPublic(ctx, filter)
}

func (p *postService) GetPost(ctx context.Context, postID string) (*models.Post, error) {
	if err := checkID(postID, "пост"); err != nil {
		return nil, err
	}

	post, err := p.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, notFound(err, "пост")
	}

	return post, nil
}

// UpdatePost applies only the fields present in req. Only the author may
// edit a post.
func (p *postService) UpdatePost(ctx context.Context, req repository.UpdatePostRequest) (*models.Post, error) {
	post, err := p.GetPost(ctx, req.PostID)
	if err != nil {
		return nil, err
	}

	if post.AuthorID != req.ActorID {
		return nil, fmt.Errorf("%w: редактировать пост может только автор", ErrForbidden)
	}

	if req.Title != nil {
		post.Title = req.Title
	}
	if req.Content != nil {
		post.Content = *req.Content
	}
	if req.Visibility != nil {
		post.Visibility = *req.Visibility
	}

	if err := validatePostFields(post.Title, post.Content, post.Visibility); err != nil {
		return nil, err
	}

	err = p.postRepo.Update(ctx, post)
	if err != nil {
		return nil, notFound(err, "пост")
	}

	return post, nil
}

// DeletePost removes the post with its comments and likes. The stored image
// is removed on a best-effort basis.
func (p *postService) DeletePost(ctx context.Context, postID string, actor Actor) error {
	post, err := p.GetPost(ctx, postID)
	if err != nil {
		return err
	}

	if !actor.CanModify(post.AuthorID) {
		return fmt.Errorf("%w: удалить пост может только автор или администратор", ErrForbidden)
	}

	err = p.postRepo.Delete(ctx, postID)
	if err != nil {
		return notFound(err, "пост")
	}

	if post.ImageURL != nil {
		p.deleteImage(ctx, *post.ImageURL)
	}

	publish(p.events, events.PostDeleted, events.PostEvent{
		PostID:     post.PostID,
		AuthorID:   post.AuthorID,
		OccurredAt: time.Now().UTC(),
	})

	return nil
}
