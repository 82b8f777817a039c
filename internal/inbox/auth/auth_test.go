package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestVerifier(t *testing.T) {
	hash, err := HashPassword("s3cret", bcrypt.MinCost)
	require.NoError(t, err)
	v, err := NewVerifier(hash)
	require.NoError(t, err)
	require.True(t, v.Configured())

	tests := []struct {
		name     string
		password string
		success  bool
		detail   string
	}{
		{"correct", "s3cret", true, ""},
		{"wrong", "guess", false, DetailInvalid},
		{"empty", "", false, DetailEmpty},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := v.Verify(context.Background(), tt.password)
			require.NoError(t, err)
			assert.Equal(t, tt.success, got.Success)
			assert.Equal(t, tt.detail, got.Error)
		})
	}
}

func TestVerifier_Unconfigured(t *testing.T) {
	v, err := NewVerifier("  ")
	require.NoError(t, err)
	assert.False(t, v.Configured())

	got, err := v.Verify(context.Background(), "anything")
	require.NoError(t, err)
	assert.False(t, got.Success)
	assert.Equal(t, DetailNotConfigured, got.Error)
}

func TestVerifier_MalformedHash(t *testing.T) {
	_, err := NewVerifier("plaintext")
	require.Error(t, err)
}

func TestHashPassword_RequiresPassword(t *testing.T) {
	_, err := HashPassword("", 0)
	require.Error(t, err)
}

func TestLimiter_PerClientBudget(t *testing.T) {
	l := NewLimiter(1, 2)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	assert.True(t, l.Allow("10.0.0.1"))
	assert.True(t, l.Allow("10.0.0.1"))
	assert.False(t, l.Allow("10.0.0.1"))
	assert.True(t, l.Allow("10.0.0.2"), "other clients keep their own budget")

	now = now.Add(time.Minute)
	assert.True(t, l.Allow("10.0.0.1"))
}

func TestLimiter_ForgetsIdleVisitors(t *testing.T) {
	l := NewLimiter(1, 1)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }
	l.Allow("a")
	l.Allow("b")

	now = now.Add(time.Hour)
	l.Allow("c")
	assert.Len(t, l.visitors, 1)
}

func TestLimiter_Middleware(t *testing.T) {
	l := NewLimiter(1, 1)
	h := l.Middleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	do := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/functions/v1/verify-admin-password", nil)
		req.RemoteAddr = "192.0.2.1:4321"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusNoContent, do().Code)
	rec := do()
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, DetailTooManyAttempts, body["error"])
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "[::1]:8080"
	assert.Equal(t, "::1", ClientIP(req))
	req.RemoteAddr = "203.0.113.9"
	assert.Equal(t, "203.0.113.9", ClientIP(req))
}
