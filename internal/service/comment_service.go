// Package service contains the business logic between HTTP handlers and the
// repository layer.
package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"commentboard/internal/cache"
	"commentboard/internal/models"
	"commentboard/internal/repository"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const maxCommentLen = 10000

// CommentService validates input and orchestrates repository and cache access.
// Every comment created through it is attributed to the fixed Admin identity.
type CommentService struct {
	commentRepo repository.CommentRepository
	redis       *redis.Client
}

// NewCommentService creates a new CommentService. The Redis client may be nil;
// the service then serves every list straight from the repository.
func NewCommentService(commentRepo repository.CommentRepository, redisClient *redis.Client) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		redis:       redisClient,
	}
}

// ListComments returns all comments newest first, read through the cache when
// one is configured.
func (s *CommentService) ListComments(ctx context.Context) ([]*models.Comment, error) {
	if comments, ok := cache.GetCommentList(ctx, s.redis); ok {
		return comments, nil
	}

	comments, err := s.commentRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	cache.SetCommentList(ctx, s.redis, comments)
	return comments, nil
}

// CreateComment persists a new comment with the trimmed text, the fixed Admin
// author, zero likes, and no image.
func (s *CommentService) CreateComment(ctx context.Context, text string) (*models.Comment, error) {
	trimmed, err := validateText(text)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Author: models.DefaultAuthor,
		Text:   trimmed,
		Likes:  0,
		Image:  nil,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	cache.InvalidateCommentList(ctx, s.redis)
	return comment, nil
}

// UpdateComment rewrites the text of an existing comment. Every other field
// is left untouched.
func (s *CommentService) UpdateComment(ctx context.Context, id uint, text string) (*models.Comment, error) {
	trimmed, err := validateText(text)
	if err != nil {
		return nil, err
	}

	updated, err := s.commentRepo.UpdateText(ctx, id, trimmed)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Comment not found")
		}
		return nil, err
	}

	cache.InvalidateCommentList(ctx, s.redis)
	return updated, nil
}

// DeleteComment removes a comment permanently and returns its last state.
func (s *CommentService) DeleteComment(ctx context.Context, id uint) (*models.Comment, error) {
	deleted, err := s.commentRepo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Comment not found")
		}
		return nil, err
	}

	cache.InvalidateCommentList(ctx, s.redis)
	return deleted, nil
}

func validateText(text string) (string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", models.NewValidationError("Text is required and must be a string")
	}
	if utf8.RuneCountInString(trimmed) > maxCommentLen {
		return "", models.NewValidationError("Comment too long (max 10000 characters)")
	}
	return trimmed, nil
}
