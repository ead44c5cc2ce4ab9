package service

import (
	"context"
	"fmt"
	"strings"

	"socialnet/internal/events"
	"socialnet/internal/models"
	"socialnet/internal/repository"
)

type CommentService interface {
	CreateComment(ctx context.Context, req repository.CreateCommentRequest) (*models.Comment, error)
	ListComments(ctx context.Context, postID string, page, limit int) ([]*models.Comment, error)
	DeleteComment(ctx context.Context, commentID string, actor Actor) error
}

type commentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	events      events.Publisher
}

func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository, publisher events.Publisher) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		events:      publisher,
	}
}

func (s *commentService) ensurePost(ctx context.Context, postID string) error {
	if err := checkID(postID, "пост"); err != nil {
		return err
	}

	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return notFound(err, "пост")
	}

	return nil
}

func (s *commentService) CreateComment(ctx context.Context, req repository.CreateCommentRequest) (*models.Comment, error) {
	if strings.TrimSpace(req.Content) == "" {
		return nil, fmt.Errorf("%w: комментарий не может быть пустым", ErrValidation)
	}

	if err := s.ensurePost(ctx, req.PostID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID:   req.PostID,
		AuthorID: req.AuthorID,
		Content:  req.Content,
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, notFound(err, "пост")
	}

	publish(s.events, events.CommentCreated, events.CommentEvent{
		CommentID:  comment.CommentID,
		PostID:     comment.PostID,
		AuthorID:   comment.AuthorID,
		OccurredAt: comment.CreatedAt,
	})

	return comment, nil
}

func (s *commentService) ListComments(ctx context.Context, postID string, page, limit int) ([]*models.Comment, error) {
	if err := s.ensurePost(ctx, postID); err != nil {
		return nil, err
	}

	return s.commentRepo.ListByPost(ctx, postID, limit, models.Offset(page, limit))
}

func (s *commentService) DeleteComment(ctx context.Context, commentID string, actor Actor) error {
	if err := checkID(commentID, "комментарий"); err != nil {
		return err
	}

	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return notFound(err, "комментарий")
	}

	if !actor.CanModify(comment.AuthorID) {
		return fmt.Errorf("%w: удалить комментарий может только автор или администратор", ErrForbidden)
	}

	if err := s.commentRepo.Delete(ctx, commentID); err != nil {
		return notFound(err, "комментарий")
	}

	return nil
}
