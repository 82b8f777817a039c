package prefs

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// VisitorCookie identifies a browser across requests for the Redis store.
const VisitorCookie = "visitor_id"

// RedisClient is the subset of *redis.Client used by RedisStore.
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
}

// RedisStore keeps one visitor's preferences under
// portfolio:prefs:<visitor>:<key>.
type RedisStore struct {
	client  RedisClient
	visitor string
	ttl     time.Duration
}

// NewRedisStore scopes a store to visitor. A zero ttl keeps keys forever.
func NewRedisStore(client RedisClient, visitor string, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, visitor: visitor, ttl: ttl}
}

// NewRedisClient connects using a redis:// URL.
func NewRedisClient(rawURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(strings.TrimSpace(rawURL))
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return redis.NewClient(opts), nil
}

// Get returns the stored value or ErrNotFound.
func (s *RedisStore) Get(ctx context.Context, key string) (string, error) {
	value, err := s.client.Get(ctx, s.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("redis get %s: %w", key, err)
	}
	return value, nil
}

// Set stores the value with the configured TTL.
func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.key(key), value, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (s *RedisStore) key(name string) string {
	return "portfolio:prefs:" + s.visitor + ":" + name
}

// VisitorID returns the visitor identifier carried by r, minting and setting
// a new one when the cookie is absent or malformed.
func VisitorID(w http.ResponseWriter, r *http.Request, secure bool) string {
	if cookie, err := r.Cookie(VisitorCookie); err == nil {
		if id, err := uuid.Parse(cookie.Value); err == nil {
			return id.String()
		}
	}
	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     VisitorCookie,
		Value:    id,
		Path:     "/",
		MaxAge:   int(CookieMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}
