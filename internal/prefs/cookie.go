package prefs

import (
	"context"
	"net/http"
	"sync"
	"time"
)

// CookieMaxAge is how long a preference cookie survives.
const CookieMaxAge = 365 * 24 * time.Hour

// CookieStore keeps each preference in a cookie of the same name. It is
// bound to a single request/response pair; values set during the request
// are visible to later Gets on the same store.
type CookieStore struct {
	r      *http.Request
	w      http.ResponseWriter
	secure bool

	mu      sync.Mutex
	written map[string]string
}

// NewCookieStore binds a store to one HTTP exchange.
func NewCookieStore(w http.ResponseWriter, r *http.Request, secure bool) *CookieStore {
	return &CookieStore{r: r, w: w, secure: secure, written: make(map[string]string)}
}

// Get returns the cookie value or ErrNotFound.
func (s *CookieStore) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	value, ok := s.written[key]
	s.mu.Unlock()
	if ok {
		return value, nil
	}
	cookie, err := s.r.Cookie(key)
	if err != nil || cookie.Value == "" {
		return "", ErrNotFound
	}
	return cookie.Value, nil
}

// Set emits a Set-Cookie header on the bound response.
func (s *CookieStore) Set(_ context.Context, key, value string) error {
	http.SetCookie(s.w, &http.Cookie{
		Name:     key,
		Value:    value,
		Path:     "/",
		MaxAge:   int(CookieMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	s.mu.Lock()
	s.written[key] = value
	s.mu.Unlock()
	return nil
}
