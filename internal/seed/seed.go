// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"commentboard/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumComments int
	MaxDays     int
	ShouldClean bool
}

// Seeder populates the comments table with realistic development data.
type Seeder struct {
	db   *gorm.DB
	opts Options
	rng  *rand.Rand
}

// NewSeeder creates a new Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB, opts Options) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	if opts.MaxDays <= 0 {
		opts.MaxDays = 90
	}
	return &Seeder{
		db:   db,
		opts: opts,
		rng:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ClearAll truncates the comments table.
func (s *Seeder) ClearAll() error {
	return s.db.Exec("DELETE FROM comments").Error
}

// Run inserts NumComments fake comments with a realistic date spread,
// varied like counts, and occasional image URLs.
func (s *Seeder) Run() error {
	for i := 0; i < s.opts.NumComments; i++ {
		comment := s.BuildComment()
		if err := s.db.Create(comment).Error; err != nil {
			return fmt.Errorf("seed comment %d: %w", i+1, err)
		}
	}
	return nil
}

// BuildComment constructs a fake comment without persisting it.
func (s *Seeder) BuildComment() *models.Comment {
	comment := &models.Comment{
		Author: gofakeit.Name(),
		Text:   gofakeit.HipsterSentence(gofakeit.Number(4, 18)),
		Date:   s.randomDate(),
		Likes:  gofakeit.Number(0, 250),
	}

	// Roughly one in five comments gets an image
	if s.rng.Intn(5) == 0 {
		url := gofakeit.ImageURL(640, 480)
		comment.Image = &url
	}

	return comment
}

func (s *Seeder) randomDate() time.Time {
	offset := time.Duration(s.rng.Int63n(int64(s.opts.MaxDays) * int64(24*time.Hour)))
	return time.Now().UTC().Add(-offset)
}
