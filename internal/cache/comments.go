package cache

import (
	"context"
	"encoding/json"
	"time"

	"commentboard/internal/models"

	"github.com/redis/go-redis/v9"
)

const (
	// CommentListKey holds the JSON-encoded full comment list, newest first.
	CommentListKey = "comments:list"
	// CommentListTTL bounds staleness if an invalidation is ever missed.
	CommentListTTL = 30 * time.Second
)

// GetCommentList returns the cached comment list, or ok=false on a miss,
// decode failure, or when no client is configured. Cache errors are never
// surfaced to callers; the store remains authoritative.
func GetCommentList(ctx context.Context, rdb *redis.Client) ([]*models.Comment, bool) {
	if rdb == nil {
		return nil, false
	}
	payload, err := rdb.Get(ctx, CommentListKey).Bytes()
	if err != nil {
		return nil, false
	}
	var comments []*models.Comment
	if err := json.Unmarshal(payload, &comments); err != nil {
		return nil, false
	}
	return comments, true
}

// SetCommentList stores the comment list with a short TTL. Best effort.
func SetCommentList(ctx context.Context, rdb *redis.Client, comments []*models.Comment) {
	if rdb == nil {
		return
	}
	payload, err := json.Marshal(comments)
	if err != nil {
		return
	}
	rdb.Set(ctx, CommentListKey, payload, CommentListTTL)
}

// InvalidateCommentList drops the cached list. Called after every mutation.
func InvalidateCommentList(ctx context.Context, rdb *redis.Client) {
	if rdb == nil {
		return
	}
	rdb.Del(ctx, CommentListKey)
}
