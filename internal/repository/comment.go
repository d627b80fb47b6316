// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"time"

	"commentboard/internal/models"
	"commentboard/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CommentRepository defines interface for comment operations
type CommentRepository interface {
	List(ctx context.Context) ([]*models.Comment, error)
	Create(ctx context.Context, comment *models.Comment) error
	UpdateText(ctx context.Context, id uint, text string) (*models.Comment, error)
	Delete(ctx context.Context, id uint) (*models.Comment, error)
}

type commentRepository struct {
	db      *gorm.DB
	metrics *observability.DatabaseMetrics
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db, metrics: observability.NewDatabaseMetrics()}
}

// List returns every comment ordered by date descending (newest first).
func (r *commentRepository) List(ctx context.Context) ([]*models.Comment, error) {
	defer r.metrics.TrackQuery("list", "comments")()

	comments := []*models.Comment{}
	err := r.db.WithContext(ctx).Order("date desc").Find(&comments).Error
	return comments, err
}

// Create inserts a comment. The store assigns the ID; Date defaults to the
// creation instant when the caller left it zero.
func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	defer r.metrics.TrackQuery("create", "comments")()

	if comment.Date.IsZero() {
		comment.Date = time.Now().UTC()
	}
	return r.db.WithContext(ctx).Create(comment).Error
}

// UpdateText rewrites the text column on the matching row in a single
// update-returning statement, leaving every other field untouched. Returns
// gorm.ErrRecordNotFound when no row matches, including a row deleted
// between request parsing and the update itself.
func (r *commentRepository) UpdateText(ctx context.Context, id uint, text string) (*models.Comment, error) {
	defer r.metrics.TrackQuery("update", "comments")()

	var comment models.Comment
	res := r.db.WithContext(ctx).Model(&comment).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Update("text", text)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &comment, nil
}

// Delete removes the matching row permanently and returns its prior state
// from the delete-returning statement. Returns gorm.ErrRecordNotFound when
// no row matches.
func (r *commentRepository) Delete(ctx context.Context, id uint) (*models.Comment, error) {
	defer r.metrics.TrackQuery("delete", "comments")()

	var comment models.Comment
	res := r.db.WithContext(ctx).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Delete(&comment)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &comment, nil
}
