package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"commentboard/internal/cache"
	"commentboard/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	listFn       func(context.Context) ([]*models.Comment, error)
	createFn     func(context.Context, *models.Comment) error
	updateTextFn func(context.Context, uint, string) (*models.Comment, error)
	deleteFn     func(context.Context, uint) (*models.Comment, error)
}

func (s *commentRepoStub) List(ctx context.Context) ([]*models.Comment, error) {
	return s.listFn(ctx)
}
func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) UpdateText(ctx context.Context, id uint, text string) (*models.Comment, error) {
	return s.updateTextFn(ctx, id, text)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint) (*models.Comment, error) {
	return s.deleteFn(ctx, id)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		listFn:   func(_ context.Context) ([]*models.Comment, error) { return []*models.Comment{}, nil },
		createFn: func(_ context.Context, _ *models.Comment) error { return nil },
		updateTextFn: func(_ context.Context, _ uint, text string) (*models.Comment, error) {
			return &models.Comment{Text: text}, nil
		},
		deleteFn: func(_ context.Context, _ uint) (*models.Comment, error) {
			return &models.Comment{}, nil
		},
	}
}

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeValidation, appErr.Code)
}

func assertNotFoundError(t *testing.T, err error) {
	t.Helper()
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}

func TestCommentService_CreateComment_Validation(t *testing.T) {
	t.Parallel()

	svc := NewCommentService(noopCommentRepo(), nil)
	ctx := context.Background()

	t.Run("empty text", func(t *testing.T) {
		t.Parallel()
		_, err := svc.CreateComment(ctx, "")
		assertValidationError(t, err)
	})

	t.Run("whitespace-only text", func(t *testing.T) {
		t.Parallel()
		_, err := svc.CreateComment(ctx, "   \t\n")
		assertValidationError(t, err)
	})

	t.Run("text too long", func(t *testing.T) {
		t.Parallel()
		_, err := svc.CreateComment(ctx, strings.Repeat("x", 10001))
		assertValidationError(t, err)
	})
}

func TestCommentService_CreateComment_Success(t *testing.T) {
	t.Parallel()

	repo := noopCommentRepo()
	var stored *models.Comment
	repo.createFn = func(_ context.Context, c *models.Comment) error {
		c.ID = 42
		c.Date = time.Now().UTC()
		stored = c
		return nil
	}

	svc := NewCommentService(repo, nil)
	created, err := svc.CreateComment(context.Background(), "  hello board  ")
	require.NoError(t, err)

	assert.Equal(t, uint(42), created.ID)
	assert.Equal(t, "hello board", created.Text, "text must be trimmed before persistence")
	assert.Equal(t, models.DefaultAuthor, created.Author)
	assert.Equal(t, 0, created.Likes)
	assert.Nil(t, created.Image)
	assert.Same(t, stored, created)
}

func TestCommentService_CreateComment_RepoError(t *testing.T) {
	t.Parallel()

	repoErr := errors.New("connection refused")
	repo := noopCommentRepo()
	repo.createFn = func(_ context.Context, _ *models.Comment) error { return repoErr }

	svc := NewCommentService(repo, nil)
	_, err := svc.CreateComment(context.Background(), "hello")
	assert.ErrorIs(t, err, repoErr)
}

func TestCommentService_UpdateComment(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("trims before update", func(t *testing.T) {
		t.Parallel()
		repo := noopCommentRepo()
		var gotText string
		repo.updateTextFn = func(_ context.Context, id uint, text string) (*models.Comment, error) {
			gotText = text
			return &models.Comment{ID: id, Text: text}, nil
		}
		svc := NewCommentService(repo, nil)

		updated, err := svc.UpdateComment(ctx, 7, "  hi  ")
		require.NoError(t, err)
		assert.Equal(t, "hi", gotText)
		assert.Equal(t, "hi", updated.Text)
	})

	t.Run("blank text rejected before store access", func(t *testing.T) {
		t.Parallel()
		repo := noopCommentRepo()
		repo.updateTextFn = func(_ context.Context, _ uint, _ string) (*models.Comment, error) {
			t.Fatal("repository must not be reached for invalid input")
			return nil, nil
		}
		svc := NewCommentService(repo, nil)

		_, err := svc.UpdateComment(ctx, 7, "   ")
		assertValidationError(t, err)
	})

	t.Run("missing row maps to not found", func(t *testing.T) {
		t.Parallel()
		repo := noopCommentRepo()
		repo.updateTextFn = func(_ context.Context, _ uint, _ string) (*models.Comment, error) {
			return nil, gorm.ErrRecordNotFound
		}
		svc := NewCommentService(repo, nil)

		_, err := svc.UpdateComment(ctx, 99, "hi")
		assertNotFoundError(t, err)
	})
}

func TestCommentService_DeleteComment(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("returns deleted row", func(t *testing.T) {
		t.Parallel()
		repo := noopCommentRepo()
		repo.deleteFn = func(_ context.Context, id uint) (*models.Comment, error) {
			return &models.Comment{ID: id, Text: "gone"}, nil
		}
		svc := NewCommentService(repo, nil)

		deleted, err := svc.DeleteComment(ctx, 3)
		require.NoError(t, err)
		assert.Equal(t, uint(3), deleted.ID)
		assert.Equal(t, "gone", deleted.Text)
	})

	t.Run("missing row maps to not found", func(t *testing.T) {
		t.Parallel()
		repo := noopCommentRepo()
		repo.deleteFn = func(_ context.Context, _ uint) (*models.Comment, error) {
			return nil, gorm.ErrRecordNotFound
		}
		svc := NewCommentService(repo, nil)

		_, err := svc.DeleteComment(ctx, 99)
		assertNotFoundError(t, err)
	})
}

func TestCommentService_ListComments_CacheReadThrough(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	ctx := context.Background()

	listCalls := 0
	repo := noopCommentRepo()
	repo.listFn = func(_ context.Context) ([]*models.Comment, error) {
		listCalls++
		return []*models.Comment{{ID: 1, Author: "Admin", Text: "cached?"}}, nil
	}

	svc := NewCommentService(repo, rdb)

	first, err := svc.ListComments(ctx)
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, 1, listCalls)

	// Second list is served from the cache
	second, err := svc.ListComments(ctx)
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, "cached?", second[0].Text)
	assert.Equal(t, 1, listCalls)

	// A mutation invalidates, so the next list hits the repository again
	createRepo := repo
	createRepo.createFn = func(_ context.Context, c *models.Comment) error {
		c.ID = 2
		return nil
	}
	_, err = svc.CreateComment(ctx, "new one")
	require.NoError(t, err)

	assert.False(t, mr.Exists(cache.CommentListKey), "mutation must invalidate the cached list")

	_, err = svc.ListComments(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, listCalls)
}

func TestCommentService_ListComments_NoCacheClient(t *testing.T) {
	t.Parallel()

	listCalls := 0
	repo := noopCommentRepo()
	repo.listFn = func(_ context.Context) ([]*models.Comment, error) {
		listCalls++
		return []*models.Comment{}, nil
	}

	svc := NewCommentService(repo, nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		comments, err := svc.ListComments(ctx)
		require.NoError(t, err)
		assert.Empty(t, comments)
	}
	assert.Equal(t, 3, listCalls)
}
