package users

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const emailKeyPrefix = "users:email:" // users:email:{lowercased address}

// Cache is a redis read-through in front of the directory's email lookups.
// Collaborator search hits the directory on every keystroke in the frontend,
// so the hot path is FindByEmail.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

func (c *Cache) key(email string) string {
	return emailKeyPrefix + strings.ToLower(strings.TrimSpace(email))
}

// GetByEmail returns the cached projection, or nil on a miss. Cache errors
// are reported as misses so redis outages only cost latency.
func (c *Cache) GetByEmail(ctx context.Context, email string) *User {
	data, err := c.client.Get(ctx, c.key(email)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("[users] cache get failed: %v", err)
		}
		return nil
	}

	var u User
	if err := json.Unmarshal([]byte(data), &u); err != nil {
		return nil
	}
	return &u
}

func (c *Cache) PutByEmail(ctx context.Context, u *User) {
	if u == nil || u.Email == "" {
		return
	}
	data, err := json.Marshal(u)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, c.key(u.Email), data, c.ttl).Err(); err != nil {
		log.Printf("[users] cache put failed: %v", err)
	}
}

// InvalidateEmail drops the cached projection after a profile upsert.
func (c *Cache) InvalidateEmail(ctx context.Context, email string) {
	if email == "" {
		return
	}
	if err := c.client.Del(ctx, c.key(email)).Err(); err != nil {
		log.Printf("[users] cache invalidate failed: %v", err)
	}
}
