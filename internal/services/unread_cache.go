package services

import (
	"context"
	"log"
	"strconv"
	"time"

	"github.com/skillswap-app/skillswap-backend/internal/database"
)

const (
	unreadKeyPrefix = "unread:user:"
	unreadCacheTTL  = 30 * time.Second
)

func unreadKey(userID string) string {
	return unreadKeyPrefix + userID
}

// CachedUnreadCount returns the user's total unread count, serving from Redis
// when fresh and recomputing from Mongo on a miss. Returns the Mongo value
// directly when Redis is unavailable.
func CachedUnreadCount(ctx context.Context, userID string) (int, error) {
	if database.RedisClient != nil {
		if raw, err := database.RedisClient.Get(ctx, unreadKey(userID)).Result(); err == nil {
			if n, err := strconv.Atoi(raw); err == nil {
				return n, nil
			}
		}
	}

	total, err := Chat.TotalUnreadCount(ctx, userID)
	if err != nil {
		return 0, err
	}

	if database.RedisClient != nil {
		if err := database.RedisClient.Set(ctx, unreadKey(userID), total, unreadCacheTTL).Err(); err != nil {
			log.Printf("unread_cache: set failed for user %s: %v", userID, err)
		}
	}
	return total, nil
}

// InvalidateUnreadCount drops the cached total. Call after sending a message
// or marking a conversation read.
func InvalidateUnreadCount(ctx context.Context, userIDs ...string) {
	if database.RedisClient == nil || len(userIDs) == 0 {
		return
	}
	keys := make([]string, len(userIDs))
	for i, id := range userIDs {
		keys[i] = unreadKey(id)
	}
	if err := database.RedisClient.Del(ctx, keys...).Err(); err != nil {
		log.Printf("unread_cache: invalidate failed: %v", err)
	}
}
