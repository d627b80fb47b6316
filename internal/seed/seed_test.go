package seed

import (
	"testing"
	"time"

	"commentboard/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupSeedDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Comment{}))
	return db
}

func TestSeederRun(t *testing.T) {
	db := setupSeedDB(t)
	seeder := NewSeeder(db, Options{NumComments: 25, MaxDays: 30})

	require.NoError(t, seeder.Run())

	var count int64
	require.NoError(t, db.Model(&models.Comment{}).Count(&count).Error)
	assert.EqualValues(t, 25, count)

	var comments []models.Comment
	require.NoError(t, db.Find(&comments).Error)

	oldest := time.Now().UTC().AddDate(0, 0, -31)
	for _, c := range comments {
		assert.NotEmpty(t, c.Author)
		assert.NotEmpty(t, c.Text)
		assert.GreaterOrEqual(t, c.Likes, 0)
		assert.LessOrEqual(t, c.Likes, 250)
		assert.True(t, c.Date.After(oldest), "date %v older than the configured spread", c.Date)
		assert.False(t, c.Date.After(time.Now().UTC().Add(time.Minute)))
	}
}

func TestSeederClearAll(t *testing.T) {
	db := setupSeedDB(t)
	seeder := NewSeeder(db, Options{NumComments: 5})

	require.NoError(t, seeder.Run())
	require.NoError(t, seeder.ClearAll())

	var count int64
	require.NoError(t, db.Model(&models.Comment{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestBuildCommentFields(t *testing.T) {
	seeder := NewSeeder(nil, Options{NumComments: 1, MaxDays: 7})

	sawImage := false
	for i := 0; i < 50; i++ {
		comment := seeder.BuildComment()
		assert.NotEmpty(t, comment.Author)
		assert.NotEmpty(t, comment.Text)
		if comment.Image != nil {
			sawImage = true
			assert.Contains(t, *comment.Image, "http")
		}
	}
	// With a one-in-five chance across 50 builds an image is essentially certain
	assert.True(t, sawImage)
}

func TestMaxDaysDefault(t *testing.T) {
	seeder := NewSeeder(nil, Options{NumComments: 1})
	assert.Equal(t, 90, seeder.opts.MaxDays)
}
